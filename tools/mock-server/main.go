// Package main implements a mock App Store Connect API server for local
// development. It keeps apps, territories and in-app purchases in memory so
// asc-iap can run full batches without real credentials or side effects.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	chunkSize := flag.Int64("chunk-size", defaultChunkSize, "screenshot upload slice size in bytes")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	st := newStore(*chunkSize)
	logger.Info("seeded store", "apps", len(st.apps), "territories", len(st.territories))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock App Store Connect server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      newHandler(logger, st),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newHandler(logger *slog.Logger, st *store) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /v1/apps", st.listApps)
	api.HandleFunc("GET /v1/apps/{id}/inAppPurchasesV2", st.listProducts)
	api.HandleFunc("POST /v2/inAppPurchases", st.createProduct)
	api.HandleFunc("PATCH /v2/inAppPurchases/{id}", st.updateProduct)
	api.HandleFunc("DELETE /v2/inAppPurchases/{id}", st.deleteProduct)
	api.HandleFunc("GET /v2/inAppPurchases/{id}/pricePoints", st.listPricePoints)
	api.HandleFunc("POST /v1/inAppPurchasePriceSchedules", st.createPriceSchedule)
	api.HandleFunc("POST /v1/inAppPurchaseLocalizations", st.createLocalization)
	api.HandleFunc("GET /v1/territories", st.listTerritories)
	api.HandleFunc("POST /v1/inAppPurchaseAvailabilities", st.createAvailability)
	api.HandleFunc("POST /v1/inAppPurchaseAppStoreReviewScreenshots", st.reserveScreenshot)
	api.HandleFunc("PATCH /v1/inAppPurchaseAppStoreReviewScreenshots/{id}", st.commitScreenshot)

	mux := http.NewServeMux()
	mux.Handle("/v1/", requireBearer(logger, api))
	mux.Handle("/v2/", requireBearer(logger, api))
	// Upload URLs are pre-authorized and carry no bearer token.
	mux.HandleFunc("PUT /upload/{id}/{part}", st.uploadPart)

	return requestLogger(logger, mux)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// requireBearer rejects requests without a bearer token. The token itself
// is not verified.
func requireBearer(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if len(auth) <= len("Bearer ") || auth[:len("Bearer ")] != "Bearer " {
			logger.Warn("request missing bearer token", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "NOT_AUTHORIZED",
				"Authentication credentials are missing or invalid.",
				"Provide a properly configured and signed bearer token.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
