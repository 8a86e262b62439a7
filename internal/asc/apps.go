package asc

import (
	"context"
	"fmt"
	"net/http"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

type appAttributes struct {
	Name     string `json:"name"`
	BundleID string `json:"bundleId"`
	SKU      string `json:"sku"`
}

// ListApps returns every app visible to the credentials.
func (c *Client) ListApps(ctx context.Context) ([]domain.App, error) {
	res, err := listAll[appAttributes](ctx, c, fmt.Sprintf("/v1/apps?limit=%d", maxPageLimit))
	if err != nil {
		return nil, err
	}
	apps := make([]domain.App, 0, len(res))
	for _, r := range res {
		apps = append(apps, domain.App{
			ID:       r.ID,
			Name:     r.Attributes.Name,
			BundleID: r.Attributes.BundleID,
			SKU:      r.Attributes.SKU,
		})
	}
	return apps, nil
}

// Ping performs the cheapest authenticated call to confirm credentials work.
func (c *Client) Ping(ctx context.Context) error {
	var page listDocument[appAttributes]
	return c.Do(ctx, http.MethodGet, "/v1/apps?limit=1", nil, &page)
}
