package api

import (
	"context"

	"asset-dashboard/internal/models"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, "auth", "POST", "/api/auth/login", nil, "", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account. The caller signs in separately.
func (c *Client) Register(ctx context.Context, username, password string) error {
	req := models.RegisterRequest{Username: username, Password: password}
	return c.do(ctx, "auth", "POST", "/api/auth/register", nil, "", req, nil)
}
