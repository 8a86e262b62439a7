package client

import (
	"context"
	"net/url"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// ListApps returns the apps visible to the server's API key.
func (c *Client) ListApps(ctx context.Context) ([]domain.App, error) {
	var apps []domain.App
	if err := c.get(ctx, "/api/v1/apps", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListProducts returns the in-app purchases of appID.
func (c *Client) ListProducts(ctx context.Context, appID string) ([]domain.RemoteProduct, error) {
	var products []domain.RemoteProduct
	if err := c.get(ctx, "/api/v1/apps/"+url.PathEscape(appID)+"/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}
