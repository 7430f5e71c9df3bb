package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gsapi/internal/client/models"
	"github.com/dmitrijs2005/gsapi/internal/client/session"
	"github.com/dmitrijs2005/gsapi/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "https://api.gridsound.com/"

	contentType     = "application/json; charset=utf-8"
	requestIDHeader = "X-Request-Id"
)

// Client issues API calls and keeps the signed-in user's state in a
// session.Store.
type Client struct {
	baseURL   string
	transport Transport
	store     *session.Store
	log       logging.Logger
}

// Profile is a user together with their compositions.
type Profile struct {
	User         models.User
	Compositions []models.Composition
}

// mePayload is the data of responses that describe a user.
type mePayload struct {
	User         *models.WireUser         `json:"user"`
	Compositions []models.WireComposition `json:"compositions"`
}

// New returns a Client sending requests relative to baseURL. A nil store
// gets a fresh session.Store; a nil logger discards output.
func New(baseURL string, t Transport, store *session.Store, log logging.Logger) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if store == nil {
		store = session.NewStore()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{baseURL: baseURL, transport: t, store: store, log: log}
}

// Store returns the session state this client merges into.
func (c *Client) Store() *session.Store {
	return c.store
}

func (c *Client) fetch(ctx context.Context, method, path string, body any) (*Result, error) {
	reqID := uuid.NewString()
	log := c.log.With("request_id", reqID, "method", method, "path", path)

	req := &Request{
		Method: method,
		URL:    c.baseURL + path,
		Header: map[string]string{
			"Content-Type":  contentType,
			requestIDHeader: reqID,
		},
	}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		req.Body = b
	}

	log.Debug(ctx, "sending request")
	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		log.Error(ctx, "transport failure", "error", err)
		return nil, err
	}

	res := Normalize(resp.Body)
	if !res.OK {
		e := fail(res)
		log.Warn(ctx, "request failed", "status", resp.StatusCode, "code", e.Code, "reason", e.Reason)
		return nil, e
	}

	log.Debug(ctx, "request succeeded", "status", resp.StatusCode)
	return &res, nil
}

func decodeData(path string, res *Result, v any) error {
	if len(res.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Data, v); err != nil {
		return malformed(path, err)
	}
	return nil
}

// assignMe merges a user-describing response into the store and returns
// the store's view afterwards.
func (c *Client) assignMe(path string, res *Result) (*Profile, error) {
	var p mePayload
	if err := decodeData(path, res, &p); err != nil {
		return nil, err
	}

	if p.Compositions != nil {
		if err := c.store.MergeCompositions(p.Compositions); err != nil {
			return nil, malformed(path, err)
		}
	}
	if p.User != nil {
		up := p.User.Update()
		c.store.MergeMe(&up)
	}

	return &Profile{User: c.store.User(), Compositions: c.store.Compositions()}, nil
}
