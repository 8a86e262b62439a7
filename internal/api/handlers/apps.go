package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/asc-iap/internal/asc"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// AppLister defines the catalog methods required by the apps handler.
type AppLister interface {
	ListApps(ctx context.Context) ([]domain.App, error)
	ListProducts(ctx context.Context, appID string) ([]domain.RemoteProduct, error)
}

// AppsHandler lists apps and their in-app purchases.
type AppsHandler struct {
	catalog AppLister
}

// NewAppsHandler creates a new AppsHandler.
func NewAppsHandler(catalog AppLister) *AppsHandler {
	return &AppsHandler{catalog: catalog}
}

// ListAppsOutput is the response body for listing apps.
type ListAppsOutput struct {
	Body []domain.App
}

// ListProductsInput is the request path for listing an app's products.
type ListProductsInput struct {
	AppID string `path:"app_id" doc:"App Store Connect app ID"`
}

// ListProductsOutput is the response body for listing products.
type ListProductsOutput struct {
	Body []domain.RemoteProduct
}

// ListApps returns every app visible to the API key.
func (h *AppsHandler) ListApps(ctx context.Context, _ *struct{}) (*ListAppsOutput, error) {
	apps, err := h.catalog.ListApps(ctx)
	if err != nil {
		return nil, upstreamError("listing apps failed", err)
	}
	if apps == nil {
		apps = []domain.App{}
	}
	return &ListAppsOutput{Body: apps}, nil
}

// ListProducts returns the in-app purchases of one app.
func (h *AppsHandler) ListProducts(
	ctx context.Context,
	input *ListProductsInput,
) (*ListProductsOutput, error) {
	products, err := h.catalog.ListProducts(ctx, input.AppID)
	if err != nil {
		return nil, upstreamError("listing products failed", err)
	}
	if products == nil {
		products = []domain.RemoteProduct{}
	}
	return &ListProductsOutput{Body: products}, nil
}

// upstreamError maps an App Store Connect failure to a huma error. A 404
// from upstream stays a 404; everything else is a 502.
func upstreamError(msg string, err error) error {
	var apiErr *asc.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusNotFound {
		return huma.Error404NotFound(msg + ": " + apiErr.Message())
	}
	return huma.Error502BadGateway(msg + ": " + err.Error())
}

// RegisterAppRoutes registers app catalog endpoints with the Huma API.
func RegisterAppRoutes(api huma.API, h *AppsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-apps",
		Method:      http.MethodGet,
		Path:        "/api/v1/apps",
		Summary:     "List apps",
		Description: "Returns every App Store Connect app visible to the configured API key.",
		Tags:        []string{"apps"},
		Errors:      []int{http.StatusBadGateway},
	}, h.ListApps)

	huma.Register(api, huma.Operation{
		OperationID: "list-app-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/apps/{app_id}/products",
		Summary:     "List in-app purchases",
		Description: "Returns the in-app purchases defined for an app.",
		Tags:        []string{"apps"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.ListProducts)
}
