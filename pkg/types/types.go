// Package domain defines the core catalog types for the in-app purchase
// provisioner.
package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ProductType is the App Store Connect in-app purchase type.
type ProductType string

// Product type constants.
const (
	ProductConsumable    ProductType = "CONSUMABLE"
	ProductNonConsumable ProductType = "NON_CONSUMABLE"
	ProductAutoRenewable ProductType = "AUTO_RENEWABLE"
	ProductNonRenewing   ProductType = "NON_RENEWING"
)

var productTypes = []ProductType{
	ProductConsumable,
	ProductNonConsumable,
	ProductAutoRenewable,
	ProductNonRenewing,
}

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	return slices.Contains(productTypes, t)
}

// ParseProductType maps a raw API value to a ProductType. Unknown values
// fall back to ProductConsumable.
func ParseProductType(s string) ProductType {
	t := ProductType(s)
	if t.Valid() {
		return t
	}
	return ProductConsumable
}

// ProductState is the server-driven lifecycle state of a remote product.
type ProductState string

// Product state constants.
const (
	StateCreated                 ProductState = "CREATED"
	StateMissingMetadata         ProductState = "MISSING_METADATA"
	StateDeveloperSignedOff      ProductState = "DEVELOPER_SIGNED_OFF"
	StateDeveloperActionNeeded   ProductState = "DEVELOPER_ACTION_NEEDED"
	StatePendingBinaryApproval   ProductState = "PENDING_BINARY_APPROVAL"
	StateWaitingForReview        ProductState = "WAITING_FOR_REVIEW"
	StateInReview                ProductState = "IN_REVIEW"
	StatePendingDeveloperRelease ProductState = "PENDING_DEVELOPER_RELEASE"
	StateReadyForSale            ProductState = "READY_FOR_SALE"
	StateApproved                ProductState = "APPROVED"
	StateRejected                ProductState = "REJECTED"
	StateRemoved                 ProductState = "REMOVED"
)

var productStates = []ProductState{
	StateCreated,
	StateMissingMetadata,
	StateDeveloperSignedOff,
	StateDeveloperActionNeeded,
	StatePendingBinaryApproval,
	StateWaitingForReview,
	StateInReview,
	StatePendingDeveloperRelease,
	StateReadyForSale,
	StateApproved,
	StateRejected,
	StateRemoved,
}

// ParseProductState maps a raw API value to a ProductState. Unknown values
// fall back to StateCreated.
func ParseProductState(s string) ProductState {
	st := ProductState(s)
	if slices.Contains(productStates, st) {
		return st
	}
	return StateCreated
}

// ProductSpec is one requested catalog entry. It is produced outside the
// orchestrator (file import, API request) and never mutated by it.
type ProductSpec struct {
	ProductID       string      `json:"product_id"                 yaml:"product_id"`
	DisplayName     string      `json:"display_name"               yaml:"display_name"`
	Description     string      `json:"description,omitempty"      yaml:"description"`
	Price           string      `json:"price,omitempty"            yaml:"price"`
	Type            ProductType `json:"type,omitempty"             yaml:"type"`
	FamilyShareable bool        `json:"family_shareable,omitempty" yaml:"family_shareable"`
}

// ErrInvalidProduct is wrapped by ProductSpec.Validate failures.
var ErrInvalidProduct = errors.New("invalid product")

// Normalized returns a copy of s with an empty Type set to ProductConsumable.
func (s ProductSpec) Normalized() ProductSpec {
	if s.Type == "" {
		s.Type = ProductConsumable
	}
	return s
}

// Validate checks the fields App Store Connect requires to create s.
func (s ProductSpec) Validate() error {
	var errs []error
	if s.ProductID == "" {
		errs = append(errs, fmt.Errorf("%w: product_id is required", ErrInvalidProduct))
	}
	if s.DisplayName == "" {
		errs = append(errs, fmt.Errorf("%w: display_name is required", ErrInvalidProduct))
	}
	if s.Type != "" && !s.Type.Valid() {
		errs = append(errs, fmt.Errorf("%w: unknown type %q", ErrInvalidProduct, s.Type))
	}
	return errors.Join(errs...)
}

// RemoteProduct is an in-app purchase as reported by App Store Connect.
type RemoteProduct struct {
	ID              string       `json:"id"`
	ProductID       string       `json:"product_id"`
	ReferenceName   string       `json:"reference_name"`
	Type            ProductType  `json:"type"`
	State           ProductState `json:"state"`
	FamilyShareable bool         `json:"family_shareable"`
	ContentHosting  bool         `json:"content_hosting"`
}

// App is an App Store Connect application.
type App struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BundleID string `json:"bundle_id"`
	SKU      string `json:"sku"`
}

// PricePoint is an allowed price for a product in one territory.
type PricePoint struct {
	ID            string `json:"id"`
	CustomerPrice string `json:"customer_price"`
	Tier          string `json:"tier,omitempty"`
	Proceeds      string `json:"proceeds,omitempty"`
}

// Territory is a sales region.
type Territory struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
}

// Localization is the per-locale display text of a product.
type Localization struct {
	ID          string `json:"id,omitempty"`
	Locale      string `json:"locale"`
	Name        string `json:"name"`
	Description string `json:"description"`
	State       string `json:"state,omitempty"`
}

// UploadOperation is one pre-authorized upload request for a slice of a file.
type UploadOperation struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Offset  int64             `json:"offset"`
	Length  int64             `json:"length"`
	Headers map[string]string `json:"headers,omitempty"`
}

// UploadTicket is the reservation returned for a review screenshot.
type UploadTicket struct {
	ScreenshotID string            `json:"screenshot_id"`
	Operations   []UploadOperation `json:"operations"`
}

// BatchOutcome is the terminal result for one ProductSpec in a batch run.
type BatchOutcome struct {
	ProductID string `json:"product_id"`
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
}

// BatchSummary is the terminal result of a batch run. Outcomes are in input
// order and cover only the items that were attempted.
type BatchSummary struct {
	Outcomes   []BatchOutcome `json:"outcomes"`
	Succeeded  int            `json:"succeeded"`
	Failed     int            `json:"failed"`
	Cancelled  bool           `json:"cancelled"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Attempted returns the number of items that produced an outcome.
func (s *BatchSummary) Attempted() int {
	return len(s.Outcomes)
}

// CommonPrices are suggested USD price levels. They are not enforced.
var CommonPrices = []string{
	"0.99", "1.99", "2.99", "4.99", "6.99",
	"9.99", "14.99", "19.99", "29.99", "49.99", "99.99",
}

// ExcludedTerritories are the mainland China, Hong Kong, Macau and Taiwan
// territory codes, removed from availability when exclusion is requested.
var ExcludedTerritories = map[string]struct{}{
	"CHN": {}, "CN": {},
	"HKG": {}, "HK": {},
	"MAC": {}, "MO": {},
	"TWN": {}, "TW": {},
}

// IsExcludedTerritory reports whether id is in ExcludedTerritories.
func IsExcludedTerritory(id string) bool {
	_, ok := ExcludedTerritories[id]
	return ok
}

// FilterExcludedTerritories returns territories without the excluded set.
func FilterExcludedTerritories(territories []Territory) []Territory {
	out := make([]Territory, 0, len(territories))
	for _, t := range territories {
		if IsExcludedTerritory(t.ID) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SupportedLocales maps App Store Connect locale codes to English names.
var SupportedLocales = map[string]string{
	"zh-Hans": "Chinese (Simplified)",
	"zh-Hant": "Chinese (Traditional)",
	"en-US":   "English (U.S.)",
	"ja":      "Japanese",
	"ko":      "Korean",
	"de-DE":   "German",
	"fr-FR":   "French",
	"es-ES":   "Spanish (Spain)",
	"it":      "Italian",
	"pt-BR":   "Portuguese (Brazil)",
	"ru":      "Russian",
	"ar":      "Arabic",
}
