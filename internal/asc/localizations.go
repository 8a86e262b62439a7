package asc

import (
	"context"
	"net/http"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

type localizationAttributes struct {
	Locale      string `json:"locale,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	State       string `json:"state,omitempty"`
}

// CreateLocalization adds display text for one locale to a product.
func (c *Client) CreateLocalization(
	ctx context.Context,
	productID string,
	loc domain.Localization,
) (*domain.Localization, error) {
	req := requestDocument{
		Data: resourceObject{
			Type: typeLocalizations,
			Attributes: localizationAttributes{
				Locale:      loc.Locale,
				Name:        loc.Name,
				Description: loc.Description,
			},
			Relationships: map[string]any{
				"inAppPurchaseV2": relateOne(typeInAppPurchases, productID),
			},
		},
	}

	var resp singleDocument[localizationAttributes]
	if err := c.Do(ctx, http.MethodPost, "/v1/inAppPurchaseLocalizations", req, &resp); err != nil {
		return nil, err
	}

	out := loc
	out.ID = resp.Data.ID
	if resp.Data.Attributes.State != "" {
		out.State = resp.Data.Attributes.State
	}
	return &out, nil
}
