package api

import (
	"context"

	"asset-dashboard/internal/models"
)

// ListUsers fetches the admin roster projection.
func (c *Client) ListUsers(ctx context.Context, token string) ([]models.UserSummary, error) {
	var users []models.UserSummary
	err := c.do(ctx, "users", "GET", "/api/users", nil, token, nil, &users)
	return users, err
}
