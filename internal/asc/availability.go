package asc

import (
	"context"
	"fmt"
	"net/http"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

type territoryAttributes struct {
	Currency string `json:"currency"`
}

// ListTerritories returns every sales territory.
func (c *Client) ListTerritories(ctx context.Context) ([]domain.Territory, error) {
	res, err := listAll[territoryAttributes](ctx, c, fmt.Sprintf("/v1/territories?limit=%d", maxPageLimit))
	if err != nil {
		return nil, err
	}
	territories := make([]domain.Territory, 0, len(res))
	for _, r := range res {
		territories = append(territories, domain.Territory{
			ID:       r.ID,
			Currency: r.Attributes.Currency,
		})
	}
	return territories, nil
}

type availabilityAttributes struct {
	AvailableInNewTerritories bool `json:"availableInNewTerritories"`
}

// CreateAvailability makes a product purchasable in territoryIDs and in
// territories App Store Connect adds later.
func (c *Client) CreateAvailability(
	ctx context.Context,
	productID string,
	territoryIDs []string,
) error {
	req := requestDocument{
		Data: resourceObject{
			Type: typeAvailabilities,
			Attributes: availabilityAttributes{
				AvailableInNewTerritories: true,
			},
			Relationships: map[string]any{
				"inAppPurchase":        relateOne(typeInAppPurchases, productID),
				"availableTerritories": relateMany(typeTerritories, territoryIDs),
			},
		},
	}
	return c.Do(ctx, http.MethodPost, "/v1/inAppPurchaseAvailabilities", req, nil)
}
