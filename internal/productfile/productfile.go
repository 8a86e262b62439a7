// Package productfile reads declared-schema product lists for batch runs.
//
// A file is YAML or JSON holding either a bare list of products or a
// document with a top-level "products" key:
//
//	products:
//	  - product_id: com.example.gems.small
//	    display_name: Small Gem Pack
//	    description: 100 gems
//	    price: "0.99"
//	    type: CONSUMABLE
package productfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// ErrEmpty is returned when a file declares no products.
var ErrEmpty = errors.New("no products declared")

type document struct {
	Products []domain.ProductSpec `yaml:"products"`
}

// Load reads and validates the product file at path.
func Load(path string) ([]domain.ProductSpec, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading product file: %w", err)
	}
	return Parse(data)
}

// Parse decodes products from data, rejecting unknown fields and duplicate
// product IDs. Empty types default to CONSUMABLE.
func Parse(data []byte) ([]domain.ProductSpec, error) {
	products, err := decode(data)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrEmpty
	}

	seen := make(map[string]int, len(products))
	var errs []error
	for i := range products {
		if err := products[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("product %d: %w", i+1, err))
			continue
		}
		if first, dup := seen[products[i].ProductID]; dup {
			errs = append(errs, fmt.Errorf("product %d: duplicate product_id %q (first at %d)",
				i+1, products[i].ProductID, first))
			continue
		}
		seen[products[i].ProductID] = i + 1
		products[i] = products[i].Normalized()
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return products, nil
}

func decode(data []byte) ([]domain.ProductSpec, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing product file: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, ErrEmpty
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if node.Content[0].Kind == yaml.SequenceNode {
		var products []domain.ProductSpec
		if err := dec.Decode(&products); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing product file: %w", err)
		}
		return products, nil
	}

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing product file: %w", err)
	}
	return doc.Products, nil
}
