// Package session holds the client-side mirror of the signed-in user and
// their compositions.
//
// A Store is created explicitly and owned by whoever constructs it; there is
// no package-level state, so independent sessions use independent stores.
// Only the Store mutates its records. Callers read snapshots via User and
// Compositions.
//
// Merges are applied field by field. When two responses race, whichever
// merge runs last wins for each field it carries; callers that need strict
// ordering must serialize their requests.
package session

import (
	"sync"

	"github.com/dmitrijs2005/gsapi/internal/client/models"
)

type Store struct {
	mu           sync.RWMutex
	user         models.User
	compositions []models.Composition
}

func NewStore() *Store {
	return &Store{}
}

// MergeMe applies a partial user update. A nil update is a no-op.
func (s *Store) MergeMe(up *models.UserUpdate) {
	if up == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.Apply(*up)
}

// MergeCompositions decodes every payload and then merges the list
// positionally: entry i of the response supersedes local entry i, extra
// entries are appended and local entries past the end of the response are
// kept. If any payload fails to decode the store is left untouched.
func (s *Store) MergeCompositions(ws []models.WireComposition) error {
	decoded, err := models.DecodeCompositions(ws)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range decoded {
		if i < len(s.compositions) {
			s.compositions[i] = c
			continue
		}
		s.compositions = append(s.compositions, c)
	}
	return nil
}

// Clear removes every field from the user record. Compositions are kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.Reset()
}

// User returns a copy of the current user record.
func (s *Store) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Compositions returns a deep copy of the composition list.
func (s *Store) Compositions() []models.Composition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Composition, len(s.compositions))
	for i, c := range s.compositions {
		out[i] = c.Clone()
	}
	return out
}
