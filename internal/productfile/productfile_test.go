package productfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/asc-iap/internal/productfile"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    []domain.ProductSpec
		wantErr string
	}{
		{
			name: "document with products key",
			data: `
products:
  - product_id: com.example.gems
    display_name: Gems
    description: 100 gems
    price: "0.99"
  - product_id: com.example.pro
    display_name: Pro
    type: NON_CONSUMABLE
    family_shareable: true
`,
			want: []domain.ProductSpec{
				{ProductID: "com.example.gems", DisplayName: "Gems", Description: "100 gems", Price: "0.99", Type: domain.ProductConsumable},
				{ProductID: "com.example.pro", DisplayName: "Pro", Type: domain.ProductNonConsumable, FamilyShareable: true},
			},
		},
		{
			name: "bare json list",
			data: `[{"product_id": "com.example.gems", "display_name": "Gems", "price": "1.99"}]`,
			want: []domain.ProductSpec{
				{ProductID: "com.example.gems", DisplayName: "Gems", Price: "1.99", Type: domain.ProductConsumable},
			},
		},
		{
			name:    "empty file",
			data:    "",
			wantErr: "no products declared",
		},
		{
			name:    "empty products list",
			data:    "products: []\n",
			wantErr: "no products declared",
		},
		{
			name:    "unknown field",
			data:    "- product_id: a\n  display_name: A\n  colour: red\n",
			wantErr: "field colour not found",
		},
		{
			name:    "invalid product",
			data:    "- product_id: a\n- display_name: B\n",
			wantErr: "product 1: invalid product: display_name is required",
		},
		{
			name:    "duplicate product id",
			data:    "- {product_id: a, display_name: A}\n- {product_id: a, display_name: B}\n",
			wantErr: `product 2: duplicate product_id "a" (first at 1)`,
		},
		{
			name:    "malformed yaml",
			data:    "products: [",
			wantErr: "parsing product file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := productfile.Parse([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- {product_id: a, display_name: A}\n"), 0o600))

	got, err := productfile.Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ProductID)

	_, err = productfile.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading product file")
}
