package main

import (
	"crypto/md5" //nolint:gosec // verifies the Content-MD5 integrity header
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"net/http"
	"slices"
	"strconv"
	"sync"
)

const defaultChunkSize int64 = 512 * 1024

var productTypes = []string{"CONSUMABLE", "NON_CONSUMABLE", "AUTO_RENEWABLE", "NON_RENEWING"}

// Suggested USD price levels offered as price points in every territory.
var priceLevels = []string{
	"0.99", "1.99", "2.99", "3.99", "4.99", "5.99", "6.99", "7.99", "8.99",
	"9.99", "14.99", "19.99", "24.99", "29.99", "49.99", "99.99",
}

type app struct {
	id, name, bundleID, sku string
}

type territory struct {
	id, currency string
}

type product struct {
	id             string
	appID          string
	productID      string
	name           string
	typ            string
	state          string
	familySharable bool

	pricePointID  string
	locales       []string
	territories   []string
	screenshotIDs []string
}

type screenshot struct {
	id        string
	productID string
	fileName  string
	size      int64
	parts     []bool
	received  int64
	uploaded  bool
}

// store is the in-memory state of the mock server.
type store struct {
	chunkSize int64

	mu          sync.Mutex
	nextID      int
	apps        []app
	territories []territory
	products    map[string]*product
	order       []string
	screenshots map[string]*screenshot
}

func newStore(chunkSize int64) *store {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &store{
		chunkSize: chunkSize,
		nextID:    6450000000,
		apps: []app{
			{id: "1234567890", name: "Puzzle Quest", bundleID: "com.example.puzzlequest", sku: "PQ001"},
			{id: "1234567891", name: "Space Miner", bundleID: "com.example.spaceminer", sku: "SM001"},
		},
		territories: []territory{
			{"USA", "USD"}, {"CAN", "CAD"}, {"GBR", "GBP"}, {"DEU", "EUR"}, {"FRA", "EUR"},
			{"JPN", "JPY"}, {"KOR", "KRW"}, {"AUS", "AUD"}, {"BRA", "BRL"}, {"IND", "INR"},
			{"CHN", "CNY"}, {"HKG", "HKD"}, {"MAC", "MOP"}, {"TWN", "TWD"},
		},
		products:    make(map[string]*product),
		screenshots: make(map[string]*screenshot),
	}
}

func (s *store) newID() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}

func (s *store) findApp(id string) (app, bool) {
	for _, a := range s.apps {
		if a.id == id {
			return a, true
		}
	}
	return app{}, false
}

func (p *product) resource() resource {
	return resource{
		Type: "inAppPurchases",
		ID:   p.id,
		Attributes: map[string]any{
			"name":              p.name,
			"productId":         p.productID,
			"inAppPurchaseType": p.typ,
			"state":             p.state,
			"familySharable":    p.familySharable,
			"contentHosting":    false,
		},
	}
}

// refreshState moves a product out of MISSING_METADATA once it has a price,
// a localization and availability.
func (p *product) refreshState() {
	if p.state == "MISSING_METADATA" && p.pricePointID != "" && len(p.locales) > 0 && len(p.territories) > 0 {
		p.state = "READY_TO_SUBMIT"
	}
}

func (s *store) listApps(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := make([]resource, 0, len(s.apps))
	for _, a := range s.apps {
		items = append(items, resource{
			Type: "apps",
			ID:   a.id,
			Attributes: map[string]any{
				"name":     a.name,
				"bundleId": a.bundleID,
				"sku":      a.sku,
			},
		})
	}
	s.mu.Unlock()
	writePage(w, r, items)
}

func (s *store) listProducts(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")

	s.mu.Lock()
	if _, ok := s.findApp(appID); !ok {
		s.mu.Unlock()
		writeNotFound(w, "apps", appID)
		return
	}
	items := []resource{}
	for _, id := range s.order {
		if p := s.products[id]; p.appID == appID {
			items = append(items, p.resource())
		}
	}
	s.mu.Unlock()
	writePage(w, r, items)
}

func (s *store) createProduct(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeRequest(w, r, "inAppPurchases")
	if !ok {
		return
	}
	data := doc.Data
	appID := data.one("app")
	productID := data.str("productId")
	name := data.str("name")
	typ := data.str("inAppPurchaseType")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findApp(appID); !ok {
		writeNotFound(w, "apps", appID)
		return
	}
	switch {
	case productID == "":
		writeError(w, http.StatusConflict, "ENTITY_ERROR.ATTRIBUTE.REQUIRED",
			"An attribute value is required.", "The attribute 'productId' is required.")
		return
	case name == "":
		writeError(w, http.StatusConflict, "ENTITY_ERROR.ATTRIBUTE.REQUIRED",
			"An attribute value is required.", "The attribute 'name' is required.")
		return
	case !slices.Contains(productTypes, typ):
		writeError(w, http.StatusConflict, "ENTITY_ERROR.ATTRIBUTE.INVALID",
			"An attribute value is invalid.",
			fmt.Sprintf("'%s' is not a valid value for 'inAppPurchaseType'.", typ))
		return
	}
	for _, id := range s.order {
		if s.products[id].productID == productID {
			writeError(w, http.StatusConflict, "ENTITY_ERROR.ATTRIBUTE.INVALID.DUPLICATE",
				"The provided entity includes an attribute with a value that has already been used",
				fmt.Sprintf("The product ID %s has already been used.", productID))
			return
		}
	}

	p := &product{
		id:             s.newID(),
		appID:          appID,
		productID:      productID,
		name:           name,
		typ:            typ,
		state:          "MISSING_METADATA",
		familySharable: data.boolean("familySharable"),
	}
	s.products[p.id] = p
	s.order = append(s.order, p.id)
	writeJSON(w, http.StatusCreated, singleDocument{Data: p.resource()})
}

func (s *store) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, ok := decodeRequest(w, r, "inAppPurchases")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		writeNotFound(w, "inAppPurchases", id)
		return
	}
	if name := doc.Data.str("name"); name != "" {
		p.name = name
	}
	if _, set := doc.Data.Attributes["familySharable"]; set {
		p.familySharable = doc.Data.boolean("familySharable")
	}
	writeJSON(w, http.StatusOK, singleDocument{Data: p.resource()})
}

func (s *store) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		writeNotFound(w, "inAppPurchases", id)
		return
	}
	delete(s.products, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	w.WriteHeader(http.StatusNoContent)
}

func (s *store) listPricePoints(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	terr := r.URL.Query().Get("filter[territory]")
	if terr == "" {
		terr = "USA"
	}

	s.mu.Lock()
	_, ok := s.products[id]
	s.mu.Unlock()
	if !ok {
		writeNotFound(w, "inAppPurchases", id)
		return
	}

	items := make([]resource, 0, len(priceLevels))
	for i, price := range priceLevels {
		items = append(items, resource{
			Type: "inAppPurchasePricePoints",
			ID:   fmt.Sprintf("%s-%s-%d", id, terr, i+1),
			Attributes: map[string]any{
				"customerPrice": price,
				"priceTier":     strconv.Itoa(i + 1),
				"proceeds":      proceeds(price),
			},
		})
	}
	writePage(w, r, items)
}

// proceeds is the price less a 30% commission, rounded down to the cent.
func proceeds(price string) string {
	f, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return "0"
	}
	cents := int64(math.Round(f*100)) * 70 / 100
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func (s *store) createPriceSchedule(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeRequest(w, r, "inAppPurchasePriceSchedules")
	if !ok {
		return
	}
	id := doc.Data.one("inAppPurchase")

	var pricePoint string
	for _, inc := range doc.Included {
		if inc.Type == "inAppPurchasePrices" {
			pricePoint = inc.one("inAppPurchasePricePoint")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		writeNotFound(w, "inAppPurchases", id)
		return
	}
	if pricePoint == "" {
		writeError(w, http.StatusConflict, "ENTITY_ERROR.RELATIONSHIP.REQUIRED",
			"A relationship is required.", "The included price must reference a price point.")
		return
	}
	p.pricePointID = pricePoint
	p.refreshState()
	writeJSON(w, http.StatusCreated, singleDocument{Data: resource{Type: "inAppPurchasePriceSchedules", ID: p.id}})
}

func (s *store) createLocalization(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeRequest(w, r, "inAppPurchaseLocalizations")
	if !ok {
		return
	}
	id := doc.Data.one("inAppPurchaseV2")
	locale := doc.Data.str("locale")

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		writeNotFound(w, "inAppPurchases", id)
		return
	}
	if slices.Contains(p.locales, locale) {
		writeError(w, http.StatusConflict, "ENTITY_ERROR.ATTRIBUTE.INVALID.DUPLICATE",
			"The provided entity includes an attribute with a value that has already been used",
			fmt.Sprintf("A localization for %s already exists.", locale))
		return
	}
	p.locales = append(p.locales, locale)
	p.refreshState()

	writeJSON(w, http.StatusCreated, singleDocument{Data: resource{
		Type: "inAppPurchaseLocalizations",
		ID:   s.newID(),
		Attributes: map[string]any{
			"locale":      locale,
			"name":        doc.Data.str("name"),
			"description": doc.Data.str("description"),
			"state":       "PREPARE_FOR_SUBMISSION",
		},
	}})
}

func (s *store) listTerritories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := make([]resource, 0, len(s.territories))
	for _, t := range s.territories {
		items = append(items, resource{
			Type:       "territories",
			ID:         t.id,
			Attributes: map[string]any{"currency": t.currency},
		})
	}
	s.mu.Unlock()
	writePage(w, r, items)
}

func (s *store) createAvailability(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeRequest(w, r, "inAppPurchaseAvailabilities")
	if !ok {
		return
	}
	id := doc.Data.one("inAppPurchase")

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		writeNotFound(w, "inAppPurchases", id)
		return
	}
	p.territories = doc.Data.many("availableTerritories")
	p.refreshState()
	writeJSON(w, http.StatusCreated, singleDocument{Data: resource{Type: "inAppPurchaseAvailabilities", ID: p.id}})
}

func (s *store) reserveScreenshot(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeRequest(w, r, "inAppPurchaseAppStoreReviewScreenshots")
	if !ok {
		return
	}
	id := doc.Data.one("inAppPurchaseV2")
	size := doc.Data.number("fileSize")

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		writeNotFound(w, "inAppPurchases", id)
		return
	}
	if size <= 0 {
		writeError(w, http.StatusConflict, "ENTITY_ERROR.ATTRIBUTE.INVALID",
			"An attribute value is invalid.", "fileSize must be positive.")
		return
	}

	shot := &screenshot{
		id:        s.newID(),
		productID: id,
		fileName:  doc.Data.str("fileName"),
		size:      size,
	}
	var ops []map[string]any
	for offset := int64(0); offset < size; offset += s.chunkSize {
		length := min(s.chunkSize, size-offset)
		ops = append(ops, map[string]any{
			"method": http.MethodPut,
			"url":    absoluteURL(r, fmt.Sprintf("/upload/%s/%d", shot.id, len(shot.parts)), nil),
			"offset": offset,
			"length": length,
			"requestHeaders": []map[string]string{
				{"name": "Content-Type", "value": "image/png"},
			},
		})
		shot.parts = append(shot.parts, false)
	}
	s.screenshots[shot.id] = shot
	p.screenshotIDs = append(p.screenshotIDs, shot.id)

	writeJSON(w, http.StatusCreated, singleDocument{Data: resource{
		Type: "inAppPurchaseAppStoreReviewScreenshots",
		ID:   shot.id,
		Attributes: map[string]any{
			"fileName":         shot.fileName,
			"fileSize":         shot.size,
			"uploadOperations": ops,
		},
	}})
}

func (s *store) uploadPart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	part, err := strconv.Atoi(r.PathValue("part"))
	if err != nil {
		http.Error(w, "bad part", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "reading body", http.StatusBadRequest)
		return
	}
	if want := r.Header.Get("Content-MD5"); want != "" {
		sum := md5.Sum(body) //nolint:gosec // integrity check only
		if base64.StdEncoding.EncodeToString(sum[:]) != want {
			http.Error(w, "Content-MD5 mismatch", http.StatusBadRequest)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shot, ok := s.screenshots[id]
	if !ok || part < 0 || part >= len(shot.parts) {
		http.NotFound(w, r)
		return
	}
	if !shot.parts[part] {
		shot.parts[part] = true
		shot.received += int64(len(body))
	}
	w.WriteHeader(http.StatusOK)
}

func (s *store) commitScreenshot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, ok := decodeRequest(w, r, "inAppPurchaseAppStoreReviewScreenshots")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shot, ok := s.screenshots[id]
	if !ok {
		writeNotFound(w, "inAppPurchaseAppStoreReviewScreenshots", id)
		return
	}
	if doc.Data.boolean("uploaded") {
		if slices.Contains(shot.parts, false) || shot.received != shot.size {
			writeError(w, http.StatusConflict, "ENTITY_ERROR.ATTRIBUTE.INVALID",
				"The upload is incomplete.",
				fmt.Sprintf("received %d of %d bytes", shot.received, shot.size))
			return
		}
		shot.uploaded = true
	}
	writeJSON(w, http.StatusOK, singleDocument{Data: resource{
		Type: "inAppPurchaseAppStoreReviewScreenshots",
		ID:   shot.id,
		Attributes: map[string]any{
			"fileName": shot.fileName,
			"fileSize": shot.size,
			"uploaded": shot.uploaded,
		},
	}})
}
