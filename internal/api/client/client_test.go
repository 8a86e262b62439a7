package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/asc-iap/internal/batch"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListBatches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{
			name:       "problem detail",
			status:     http.StatusNotFound,
			body:       `{"title":"Not Found","status":404,"detail":"batch run not found"}`,
			wantDetail: "batch run not found",
		},
		{
			name:       "problem title only",
			status:     http.StatusBadGateway,
			body:       `{"title":"Bad Gateway","status":502}`,
			wantDetail: "Bad Gateway",
		},
		{
			name:       "plain text",
			status:     http.StatusInternalServerError,
			body:       "internal\n",
			wantDetail: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).GetBatch(context.Background(), "run-1")
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.Equal(t, tt.status == http.StatusNotFound, IsNotFound(err))
		})
	}
}

func TestClient_StartBatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/batches", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req StartBatchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "app-1", req.AppID)
		assert.Len(t, req.Products, 1)
		if assert.NotNil(t, req.ExcludeChina) {
			assert.False(t, *req.ExcludeChina)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "run-42"})
	}))
	defer srv.Close()

	exclude := false
	id, err := New(srv.URL).StartBatch(context.Background(), &StartBatchRequest{
		AppID:        "app-1",
		Products:     []domain.ProductSpec{{ProductID: "com.example.gems", DisplayName: "Gems"}},
		ExcludeChina: &exclude,
	})
	require.NoError(t, err)
	assert.Equal(t, "run-42", id)
}

func TestClient_GetBatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/batches/run-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(batch.Snapshot{
			ID:        "run-1",
			State:     batch.StateCompleted,
			Total:     2,
			Processed: 2,
			Succeeded: 1,
			Failed:    1,
		})
	}))
	defer srv.Close()

	snap, err := New(srv.URL).GetBatch(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, batch.StateCompleted, snap.State)
	assert.Equal(t, 1, snap.Failed)
}

func TestClient_ListBatches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/batches", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]batch.Snapshot{{ID: "a"}, {ID: "b"}})
	}))
	defer srv.Close()

	runs, err := New(srv.URL).ListBatches(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[1].ID)
}

func TestClient_CancelBatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/batches/run-1", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"status":"cancelling"}`))
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).CancelBatch(context.Background(), "run-1"))
}

func TestClient_ListApps(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/apps":
			_ = json.NewEncoder(w).Encode([]domain.App{{ID: "app-1", Name: "Puzzle Quest"}})
		case "/api/v1/apps/app-1/products":
			_ = json.NewEncoder(w).Encode([]domain.RemoteProduct{{ID: "iap-1", ProductID: "com.example.gems"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	apps, err := c.ListApps(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Puzzle Quest", apps[0].Name)

	products, err := c.ListProducts(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "com.example.gems", products[0].ProductID)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://example.com/", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
	assert.Equal(t, "http://example.com", c.baseURL)
}
