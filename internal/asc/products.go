package asc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

type productAttributes struct {
	Name              string `json:"name,omitempty"`
	ProductID         string `json:"productId,omitempty"`
	InAppPurchaseType string `json:"inAppPurchaseType,omitempty"`
	State             string `json:"state,omitempty"`
	FamilySharable    bool   `json:"familySharable"`
	ContentHosting    bool   `json:"contentHosting,omitempty"`
}

func toRemoteProduct(r resource[productAttributes]) *domain.RemoteProduct {
	return &domain.RemoteProduct{
		ID:              r.ID,
		ProductID:       r.Attributes.ProductID,
		ReferenceName:   r.Attributes.Name,
		Type:            domain.ParseProductType(r.Attributes.InAppPurchaseType),
		State:           domain.ParseProductState(r.Attributes.State),
		FamilyShareable: r.Attributes.FamilySharable,
		ContentHosting:  r.Attributes.ContentHosting,
	}
}

// ListProducts returns the in-app purchases of an app.
func (c *Client) ListProducts(ctx context.Context, appID string) ([]domain.RemoteProduct, error) {
	path := fmt.Sprintf("/v1/apps/%s/inAppPurchasesV2?limit=%d", url.PathEscape(appID), maxPageLimit)
	res, err := listAll[productAttributes](ctx, c, path)
	if err != nil {
		return nil, err
	}
	products := make([]domain.RemoteProduct, 0, len(res))
	for _, r := range res {
		products = append(products, *toRemoteProduct(r))
	}
	return products, nil
}

// CreateProduct registers spec as a new in-app purchase of appID.
func (c *Client) CreateProduct(
	ctx context.Context,
	appID string,
	spec domain.ProductSpec,
) (*domain.RemoteProduct, error) {
	req := requestDocument{
		Data: resourceObject{
			Type: typeInAppPurchases,
			Attributes: productAttributes{
				Name:              spec.DisplayName,
				ProductID:         spec.ProductID,
				InAppPurchaseType: string(spec.Type),
				FamilySharable:    spec.FamilyShareable,
			},
			Relationships: map[string]any{
				"app": relateOne(typeApps, appID),
			},
		},
	}

	var resp singleDocument[productAttributes]
	if err := c.Do(ctx, http.MethodPost, "/v2/inAppPurchases", req, &resp); err != nil {
		return nil, err
	}
	return toRemoteProduct(resp.Data), nil
}

type productUpdateAttributes struct {
	Name           string `json:"name"`
	FamilySharable bool   `json:"familySharable"`
}

// UpdateProduct changes the reference name and family sharing of a product.
func (c *Client) UpdateProduct(
	ctx context.Context,
	id, referenceName string,
	familyShareable bool,
) (*domain.RemoteProduct, error) {
	req := requestDocument{
		Data: resourceObject{
			Type: typeInAppPurchases,
			ID:   id,
			Attributes: productUpdateAttributes{
				Name:           referenceName,
				FamilySharable: familyShareable,
			},
		},
	}

	var resp singleDocument[productAttributes]
	path := "/v2/inAppPurchases/" + url.PathEscape(id)
	if err := c.Do(ctx, http.MethodPatch, path, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data.ID == "" {
		return &domain.RemoteProduct{
			ID:              id,
			ReferenceName:   referenceName,
			FamilyShareable: familyShareable,
		}, nil
	}
	return toRemoteProduct(resp.Data), nil
}

// DeleteProduct removes an in-app purchase.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/v2/inAppPurchases/"+url.PathEscape(id), nil, nil)
}
