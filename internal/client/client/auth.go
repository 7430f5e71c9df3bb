package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// GetMe fetches the signed-in user and their compositions.
func (c *Client) GetMe(ctx context.Context) (*Profile, error) {
	res, err := c.fetch(ctx, http.MethodGet, "getMe", nil)
	if err != nil {
		return nil, err
	}
	return c.assignMe("getMe", res)
}

func (c *Client) Login(ctx context.Context, email, pass string) (*Profile, error) {
	body := map[string]string{"email": email, "pass": pass}
	res, err := c.fetch(ctx, http.MethodPost, "login", body)
	if err != nil {
		return nil, err
	}
	return c.assignMe("login", res)
}

// Signup creates an account; the server signs the new user in.
func (c *Client) Signup(ctx context.Context, username, email, pass string) (*Profile, error) {
	body := map[string]string{"username": username, "email": email, "pass": pass}
	res, err := c.fetch(ctx, http.MethodPost, "createUser", body)
	if err != nil {
		return nil, err
	}
	return c.assignMe("createUser", res)
}

// ResendConfirmationEmail asks the server to mail the signed-in user's
// address again. It returns ErrNotConnected without a request when the
// store holds no email.
func (c *Client) ResendConfirmationEmail(ctx context.Context) (json.RawMessage, error) {
	email, ok := c.store.User().Email.Get()
	if !ok {
		return nil, ErrNotConnected
	}
	res, err := c.fetch(ctx, http.MethodPost, "resendConfirmationEmail", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) RecoverPassword(ctx context.Context, email string) (json.RawMessage, error) {
	res, err := c.fetch(ctx, http.MethodPost, "recoverPassword", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// ResetPassword sets a new password using the code from a recovery email.
func (c *Client) ResetPassword(ctx context.Context, email, code, pass string) (json.RawMessage, error) {
	body := map[string]string{"email": email, "code": code, "pass": pass}
	res, err := c.fetch(ctx, http.MethodPost, "resetPassword", body)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Logout ends the server session and clears the user record. The
// composition list is left as is.
func (c *Client) Logout(ctx context.Context) (json.RawMessage, error) {
	res, err := c.fetch(ctx, http.MethodPost, "logout", map[string]bool{"confirm": true})
	if err != nil {
		return nil, err
	}
	c.store.Clear()
	return res.Data, nil
}
