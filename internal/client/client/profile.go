package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gsapi/internal/client/models"
)

// ProfileUpdate lists the fields UpdateMyInfo may change. Only present
// fields are sent.
type ProfileUpdate struct {
	Email       models.Opt[string]
	Firstname   models.Opt[string]
	Lastname    models.Opt[string]
	Avatar      models.Opt[string]
	EmailPublic models.Opt[bool]
}

func (u ProfileUpdate) body() map[string]any {
	m := make(map[string]any)
	put := func(key string, v any, set bool) {
		if set {
			m[key] = v
		}
	}
	put("email", u.Email.Value, u.Email.Set)
	put("firstname", u.Firstname.Value, u.Firstname.Set)
	put("lastname", u.Lastname.Value, u.Lastname.Set)
	put("avatar", u.Avatar.Value, u.Avatar.Set)
	put("emailpublic", u.EmailPublic.Value, u.EmailPublic.Set)
	return m
}

// UpdateMyInfo changes the signed-in user's profile and merges the
// server's answer into the store.
func (c *Client) UpdateMyInfo(ctx context.Context, u ProfileUpdate) (*Profile, error) {
	res, err := c.fetch(ctx, http.MethodPost, "updateMyInfo", u.body())
	if err != nil {
		return nil, err
	}
	return c.assignMe("updateMyInfo", res)
}

// GetUser fetches any user's public profile and compositions. The result
// is independent of the session store.
func (c *Client) GetUser(ctx context.Context, username string) (*Profile, error) {
	path := "getUser?username=" + url.QueryEscape(username)
	res, err := c.fetch(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var p mePayload
	if err := decodeData("getUser", res, &p); err != nil {
		return nil, err
	}
	if p.User == nil {
		return nil, malformed("getUser", errors.New("missing user"))
	}
	comps, err := models.DecodeCompositions(p.Compositions)
	if err != nil {
		return nil, malformed("getUser", err)
	}
	return &Profile{User: p.User.User(), Compositions: comps}, nil
}
