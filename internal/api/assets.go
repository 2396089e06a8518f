package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"asset-dashboard/internal/models"
)

// ListAssets fetches one page of the assets assigned to the caller.
func (c *Client) ListAssets(ctx context.Context, token string, page, size int) (models.Page[models.Asset], error) {
	query := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	var result models.Page[models.Asset]
	err := c.do(ctx, "assets", "GET", "/api/assets/my-assets", query, token, nil, &result)
	return result, err
}

// GetAsset fetches a single asset by ID.
func (c *Client) GetAsset(ctx context.Context, token string, id int64) (models.Asset, error) {
	var asset models.Asset
	err := c.do(ctx, "assets", "GET", fmt.Sprintf("/api/assets/%d", id), nil, token, nil, &asset)
	return asset, err
}

// CreateAsset creates a new asset.
func (c *Client) CreateAsset(ctx context.Context, token string, req models.AssetRequest) error {
	return c.do(ctx, "assets", "POST", "/api/assets", nil, token, req, nil)
}

// UpdateAsset replaces an existing asset.
func (c *Client) UpdateAsset(ctx context.Context, token string, id int64, req models.AssetRequest) error {
	return c.do(ctx, "assets", "PUT", fmt.Sprintf("/api/assets/%d", id), nil, token, req, nil)
}

// DeleteAsset removes an asset.
func (c *Client) DeleteAsset(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "assets", "DELETE", fmt.Sprintf("/api/assets/%d", id), nil, token, nil, nil)
}
