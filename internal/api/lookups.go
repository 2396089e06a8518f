package api

import (
	"context"
	"fmt"

	"asset-dashboard/internal/models"
)

// Categories and statuses share the same lookup CRUD shape; the backend
// enforces name uniqueness.

func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var categories []models.Category
	err := c.do(ctx, "categories", "GET", "/api/categories", nil, token, nil, &categories)
	return categories, err
}

func (c *Client) CreateCategory(ctx context.Context, token, name string) error {
	return c.do(ctx, "categories", "POST", "/api/categories", nil, token, models.LookupRequest{Name: name}, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int64, name string) error {
	return c.do(ctx, "categories", "PUT", fmt.Sprintf("/api/categories/%d", id), nil, token, models.LookupRequest{Name: name}, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "categories", "DELETE", fmt.Sprintf("/api/categories/%d", id), nil, token, nil, nil)
}

func (c *Client) ListStatuses(ctx context.Context, token string) ([]models.Status, error) {
	var statuses []models.Status
	err := c.do(ctx, "statuses", "GET", "/api/statuses", nil, token, nil, &statuses)
	return statuses, err
}

func (c *Client) CreateStatus(ctx context.Context, token, name string) error {
	return c.do(ctx, "statuses", "POST", "/api/statuses", nil, token, models.LookupRequest{Name: name}, nil)
}

func (c *Client) UpdateStatus(ctx context.Context, token string, id int64, name string) error {
	return c.do(ctx, "statuses", "PUT", fmt.Sprintf("/api/statuses/%d", id), nil, token, models.LookupRequest{Name: name}, nil)
}

func (c *Client) DeleteStatus(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "statuses", "DELETE", fmt.Sprintf("/api/statuses/%d", id), nil, token, nil, nil)
}
