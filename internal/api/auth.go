package api

import (
	"context"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and the authenticated user.
// The caller persists both via the session store; the client itself never
// writes to the TokenSource.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, "POST", "/auth/login", loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the token server-side. A failure is not fatal; the
// local session is cleared regardless by the caller.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "POST", "/auth/logout", nil, nil)
}
