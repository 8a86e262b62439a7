package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

func TestParseProductType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want domain.ProductType
	}{
		{"CONSUMABLE", domain.ProductConsumable},
		{"NON_CONSUMABLE", domain.ProductNonConsumable},
		{"AUTO_RENEWABLE", domain.ProductAutoRenewable},
		{"NON_RENEWING", domain.ProductNonRenewing},
		{"", domain.ProductConsumable},
		{"SUBSCRIPTION", domain.ProductConsumable},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.ParseProductType(tt.in))
		})
	}
}

func TestParseProductState(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.StateReadyForSale, domain.ParseProductState("READY_FOR_SALE"))
	assert.Equal(t, domain.StateCreated, domain.ParseProductState("SOMETHING_NEW"))
}

func TestProductSpec_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    domain.ProductSpec
		wantErr []string
	}{
		{
			name: "valid",
			spec: domain.ProductSpec{ProductID: "com.example.gems", DisplayName: "Gems", Type: domain.ProductConsumable},
		},
		{
			name: "empty type is allowed",
			spec: domain.ProductSpec{ProductID: "com.example.gems", DisplayName: "Gems"},
		},
		{
			name:    "missing ids",
			spec:    domain.ProductSpec{},
			wantErr: []string{"product_id is required", "display_name is required"},
		},
		{
			name:    "unknown type",
			spec:    domain.ProductSpec{ProductID: "a", DisplayName: "b", Type: "SUBSCRIPTION"},
			wantErr: []string{`unknown type "SUBSCRIPTION"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.spec.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidProduct)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestProductSpec_Normalized(t *testing.T) {
	t.Parallel()

	spec := domain.ProductSpec{ProductID: "a"}
	assert.Equal(t, domain.ProductConsumable, spec.Normalized().Type)
	assert.Empty(t, spec.Type)

	spec.Type = domain.ProductNonConsumable
	assert.Equal(t, domain.ProductNonConsumable, spec.Normalized().Type)
}

func TestFilterExcludedTerritories(t *testing.T) {
	t.Parallel()

	in := []domain.Territory{
		{ID: "USA"}, {ID: "CHN"}, {ID: "HKG"}, {ID: "JPN"}, {ID: "MAC"}, {ID: "TWN"}, {ID: "TW"},
	}
	got := domain.FilterExcludedTerritories(in)
	assert.Equal(t, []domain.Territory{{ID: "USA"}, {ID: "JPN"}}, got)
	assert.Len(t, in, 7)
}

func TestBatchSummary_Attempted(t *testing.T) {
	t.Parallel()

	s := domain.BatchSummary{Outcomes: make([]domain.BatchOutcome, 3)}
	assert.Equal(t, 3, s.Attempted())
}
