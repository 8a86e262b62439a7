package asc

import (
	"context"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// Gateway is the set of App Store Connect operations the provisioner uses.
type Gateway interface {
	Ping(ctx context.Context) error
	ListApps(ctx context.Context) ([]domain.App, error)
	ListProducts(ctx context.Context, appID string) ([]domain.RemoteProduct, error)
	CreateProduct(ctx context.Context, appID string, spec domain.ProductSpec) (*domain.RemoteProduct, error)
	UpdateProduct(ctx context.Context, id, referenceName string, familyShareable bool) (*domain.RemoteProduct, error)
	DeleteProduct(ctx context.Context, id string) error
	ListPricePoints(ctx context.Context, productID, territory string) ([]domain.PricePoint, error)
	CreatePriceSchedule(ctx context.Context, productID, pricePointID, territory string) error
	CreateLocalization(ctx context.Context, productID string, loc domain.Localization) (*domain.Localization, error)
	ListTerritories(ctx context.Context) ([]domain.Territory, error)
	CreateAvailability(ctx context.Context, productID string, territoryIDs []string) error
	UploadScreenshot(ctx context.Context, productID, fileName string, data []byte) error
}

var _ Gateway = (*Client)(nil)
