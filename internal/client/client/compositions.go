package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gsapi/internal/client/models"
)

// SaveComposition uploads cmp.Data, serialized to a string under the
// "composition" key. The store is not updated; call GetMe to refresh it.
func (c *Client) SaveComposition(ctx context.Context, cmp models.Composition) (json.RawMessage, error) {
	w, err := cmp.Wire()
	if err != nil {
		return nil, fmt.Errorf("encode composition %q: %w", cmp.ID, err)
	}
	res, err := c.fetch(ctx, http.MethodPost, "saveComposition", map[string]string{"composition": w.Data})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) DeleteComposition(ctx context.Context, id string) (json.RawMessage, error) {
	res, err := c.fetch(ctx, http.MethodPost, "deleteComposition", map[string]string{"id": id})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}
