package asc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

type pricePointAttributes struct {
	CustomerPrice string `json:"customerPrice"`
	PriceTier     string `json:"priceTier"`
	Proceeds      string `json:"proceeds"`
}

// ListPricePoints returns the price points a product may use in territory.
func (c *Client) ListPricePoints(
	ctx context.Context,
	productID, territory string,
) ([]domain.PricePoint, error) {
	path := fmt.Sprintf(
		"/v2/inAppPurchases/%s/pricePoints?filter[territory]=%s&limit=%d",
		url.PathEscape(productID),
		url.QueryEscape(territory),
		maxPageLimit,
	)
	res, err := listAll[pricePointAttributes](ctx, c, path)
	if err != nil {
		return nil, err
	}
	points := make([]domain.PricePoint, 0, len(res))
	for _, r := range res {
		points = append(points, domain.PricePoint{
			ID:            r.ID,
			CustomerPrice: r.Attributes.CustomerPrice,
			Tier:          r.Attributes.PriceTier,
			Proceeds:      r.Attributes.Proceeds,
		})
	}
	return points, nil
}

type priceAttributes struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// CreatePriceSchedule sets pricePointID as the manual price of a product with
// territory as the base territory.
func (c *Client) CreatePriceSchedule(
	ctx context.Context,
	productID, pricePointID, territory string,
) error {
	req := requestDocument{
		Data: resourceObject{
			Type: typePriceSchedules,
			Relationships: map[string]any{
				"baseTerritory": relateOne(typeTerritories, territory),
				"inAppPurchase": relateOne(typeInAppPurchases, productID),
				"manualPrices":  relateMany(typePrices, []string{includedPriceRef}),
			},
		},
		Included: []resourceObject{{
			Type:       typePrices,
			ID:         includedPriceRef,
			Attributes: priceAttributes{},
			Relationships: map[string]any{
				"inAppPurchaseV2":         relateOne(typeInAppPurchases, productID),
				"inAppPurchasePricePoint": relateOne(typePricePoints, pricePointID),
			},
		}},
	}
	return c.Do(ctx, http.MethodPost, "/v1/inAppPurchasePriceSchedules", req, nil)
}
