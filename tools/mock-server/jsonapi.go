package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id,omitempty"`
	Attributes    map[string]any          `json:"attributes,omitempty"`
	Relationships map[string]relationship `json:"relationships,omitempty"`
}

type relationship struct {
	Data json.RawMessage `json:"data"`
}

type linkage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// one returns the ID of a to-one relationship.
func (r resource) one(name string) string {
	rel, ok := r.Relationships[name]
	if !ok {
		return ""
	}
	var l linkage
	if err := json.Unmarshal(rel.Data, &l); err != nil {
		return ""
	}
	return l.ID
}

// many returns the IDs of a to-many relationship.
func (r resource) many(name string) []string {
	rel, ok := r.Relationships[name]
	if !ok {
		return nil
	}
	var ls []linkage
	if err := json.Unmarshal(rel.Data, &ls); err != nil {
		return nil
	}
	ids := make([]string, 0, len(ls))
	for _, l := range ls {
		ids = append(ids, l.ID)
	}
	return ids
}

func (r resource) str(name string) string {
	s, _ := r.Attributes[name].(string)
	return s
}

func (r resource) boolean(name string) bool {
	b, _ := r.Attributes[name].(bool)
	return b
}

func (r resource) number(name string) int64 {
	f, _ := r.Attributes[name].(float64)
	return int64(f)
}

type requestDocument struct {
	Data     resource   `json:"data"`
	Included []resource `json:"included,omitempty"`
}

type links struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
}

type singleDocument struct {
	Data resource `json:"data"`
}

type listDocument struct {
	Data  []resource `json:"data"`
	Links links      `json:"links"`
}

type errorObject struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func decodeRequest(w http.ResponseWriter, r *http.Request, wantType string) (*requestDocument, bool) {
	var doc requestDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "PARAMETER_ERROR.INVALID",
			"The request entity is not valid JSON.", err.Error())
		return nil, false
	}
	if doc.Data.Type != wantType {
		writeError(w, http.StatusConflict, "ENTITY_ERROR.INCLUDED.INVALID",
			"The resource type is not valid.",
			fmt.Sprintf("expected type %q, got %q", wantType, doc.Data.Type))
		return nil, false
	}
	return &doc, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, title, detail string) {
	writeJSON(w, status, map[string][]errorObject{
		"errors": {{
			Status: strconv.Itoa(status),
			Code:   code,
			Title:  title,
			Detail: detail,
		}},
	})
}

func writeNotFound(w http.ResponseWriter, typ, id string) {
	writeError(w, http.StatusNotFound, "NOT_FOUND",
		"The specified resource does not exist",
		fmt.Sprintf("There is no resource of type '%s' with id '%s'", typ, id))
}

// writePage writes items[offset:offset+limit] with a links.next cursor when
// more items remain. The cursor is the next offset.
func writePage(w http.ResponseWriter, r *http.Request, items []resource) {
	q := r.URL.Query()

	limit := defaultLimit
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = min(v, maxLimit)
	}
	offset := 0
	if v, err := strconv.Atoi(q.Get("cursor")); err == nil && v >= 0 {
		offset = v
	}

	page := []resource{}
	if offset < len(items) {
		page = items[offset:min(offset+limit, len(items))]
	}

	self := absoluteURL(r, r.URL.Path, q)
	doc := listDocument{Data: page, Links: links{Self: self}}
	if offset+limit < len(items) {
		next := url.Values{}
		for k, v := range q {
			next[k] = v
		}
		next.Set("cursor", strconv.Itoa(offset+limit))
		next.Set("limit", strconv.Itoa(limit))
		doc.Links.Next = absoluteURL(r, r.URL.Path, next)
	}
	writeJSON(w, http.StatusOK, doc)
}

func absoluteURL(r *http.Request, path string, q url.Values) string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: path}
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
