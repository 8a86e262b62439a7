package asc

import (
	"context"
	"fmt"
	"net/http"
)

// Resource type names used in request and response documents.
const (
	typeApps              = "apps"
	typeInAppPurchases    = "inAppPurchases"
	typePrices            = "inAppPurchasePrices"
	typePricePoints       = "inAppPurchasePricePoints"
	typePriceSchedules    = "inAppPurchasePriceSchedules"
	typeLocalizations     = "inAppPurchaseLocalizations"
	typeAvailabilities    = "inAppPurchaseAvailabilities"
	typeTerritories       = "territories"
	typeReviewScreenshots = "inAppPurchaseAppStoreReviewScreenshots"
)

// includedPriceRef is the local identifier linking a price schedule to the
// price resource carried in the same request.
const includedPriceRef = "${price1}"

const maxPageLimit = 200

type linkage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type toOne struct {
	Data linkage `json:"data"`
}

type toMany struct {
	Data []linkage `json:"data"`
}

func relateOne(typ, id string) toOne {
	return toOne{Data: linkage{Type: typ, ID: id}}
}

func relateMany(typ string, ids []string) toMany {
	data := make([]linkage, 0, len(ids))
	for _, id := range ids {
		data = append(data, linkage{Type: typ, ID: id})
	}
	return toMany{Data: data}
}

type resourceObject struct {
	Type          string         `json:"type"`
	ID            string         `json:"id,omitempty"`
	Attributes    any            `json:"attributes,omitempty"`
	Relationships map[string]any `json:"relationships,omitempty"`
}

type requestDocument struct {
	Data     resourceObject   `json:"data"`
	Included []resourceObject `json:"included,omitempty"`
}

type resource[A any] struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes A      `json:"attributes"`
}

type pageLinks struct {
	Next string `json:"next"`
}

type singleDocument[A any] struct {
	Data resource[A] `json:"data"`
}

type listDocument[A any] struct {
	Data  []resource[A] `json:"data"`
	Links pageLinks     `json:"links"`
}

// listAll follows next links from path until the collection is exhausted.
func listAll[A any](ctx context.Context, c *Client, path string) ([]resource[A], error) {
	var all []resource[A]
	next := path
	for next != "" {
		var page listDocument[A]
		if err := c.Do(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if page.Links.Next == next {
			return nil, fmt.Errorf("pagination loop at %s", next)
		}
		next = page.Links.Next
	}
	return all, nil
}
