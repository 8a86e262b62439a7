package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/asc-iap/internal/asc"
	"github.com/donaldgifford/asc-iap/internal/asc/mocks"
	"github.com/donaldgifford/asc-iap/internal/batch"
	"github.com/donaldgifford/asc-iap/internal/config"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

type stubRunner struct {
	started []batch.Request
}

func (s *stubRunner) Start(req batch.Request) (string, error) {
	s.started = append(s.started, req)
	return "run-1", nil
}

func (*stubRunner) Get(string) (batch.Snapshot, error) { return batch.Snapshot{}, batch.ErrRunNotFound }
func (*stubRunner) List() []batch.Snapshot             { return nil }
func (*stubRunner) Cancel(string) error                { return batch.ErrRunNotFound }

func TestNewServer_Routes(t *testing.T) {
	t.Parallel()

	tokens := mocks.NewMockTokenProvider(t)
	tokens.EXPECT().Token(mock.Anything).Return("jwt", nil).Maybe()

	gw := mocks.NewMockGateway(t)
	gw.EXPECT().ListApps(mock.Anything).Return([]domain.App{{ID: "app-1", Name: "Puzzle Quest"}}, nil).Maybe()

	runner := &stubRunner{}
	cfg := config.Default()
	noExclude := false
	cfg.Batch.ExcludeChina = &noExclude

	e := newServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), tokens, gw, runner,
		asc.NewRateLimiter(3600, 10))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "healthz", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK, wantBody: `"ok"`},
		{name: "readyz", method: http.MethodGet, path: "/readyz", wantStatus: http.StatusOK, wantBody: `"ready"`},
		{name: "apps", method: http.MethodGet, path: "/api/v1/apps", wantStatus: http.StatusOK, wantBody: "Puzzle Quest"},
		{
			name:       "start batch",
			method:     http.MethodPost,
			path:       "/api/v1/batches",
			body:       `{"app_id":"app-1","products":[{"product_id":"a","display_name":"A"}]}`,
			wantStatus: http.StatusAccepted,
			wantBody:   `"run-1"`,
		},
		{name: "unknown run", method: http.MethodGet, path: "/api/v1/batches/nope", wantStatus: http.StatusNotFound},
		{name: "openapi document", method: http.MethodGet, path: "/openapi.json", wantStatus: http.StatusOK, wantBody: "start-batch"},
		{name: "quota", method: http.MethodGet, path: "/api/v1/quota", wantStatus: http.StatusOK, wantBody: `"hourly_limit":3600`},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK, wantBody: "asciap_"},
		{name: "swagger ui", method: http.MethodGet, path: "/swagger/index.html", wantStatus: http.StatusOK, wantBody: "/openapi.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader = http.NoBody
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}

	require.Len(t, runner.started, 1)
	assert.False(t, runner.started[0].ExcludeChina, "server config default applies")
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printSummary(&buf, &domain.BatchSummary{
		Outcomes: []domain.BatchOutcome{
			{ProductID: "com.example.gems", Succeeded: true, Message: "created"},
			{ProductID: "com.example.pro", Succeeded: false, Message: "duplicate product id"},
		},
		Succeeded: 1,
		Failed:    1,
		Cancelled: true,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "com.example.gems")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "duplicate product id")
	assert.Contains(t, out, "Cancelled:")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "a b", truncate("a\nb", 10))
}

func TestOpenAPICmd(t *testing.T) {
	// Not parallel: cobra initializers touch the global viper instance.
	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		wantBody string
	}{
		{name: "yaml default", wantBody: "operationId: start-batch"},
		{name: "json", args: []string{"--format", "json"}, wantBody: `"operationId": "list-apps"`},
		{name: "unknown format", args: []string{"--format", "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := openapiCmd()
			cmd.SetOut(&out)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantBody)
		})
	}
}
