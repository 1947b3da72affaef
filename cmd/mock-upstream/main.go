// Command mock-upstream serves fake insurer and e-challan APIs for local runs
// with USE_MOCK_DATA=false. Set API_KEY_HASH (or API_KEY) to require the
// X-API-Key header.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"motorhub/internal/platform/logger"
	"motorhub/pkg/secrets"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// keyChecker prefers a stored hash (from "motorctl upstream-key") and falls
// back to hashing a plain API_KEY at startup.
func keyChecker(hash, plain string) (*secrets.KeyChecker, error) {
	switch {
	case hash != "":
		return secrets.NewKeyChecker(hash), nil
	case plain != "":
		h, err := secrets.Hash(plain)
		if err != nil {
			return nil, err
		}
		return secrets.NewKeyChecker(h), nil
	}
	return nil, nil
}

func main() {
	log := logger.New()
	addr := getEnv("MOCK_UPSTREAM_ADDR", ":8090")
	latency, err := time.ParseDuration(getEnv("MOCK_LATENCY", "100ms"))
	if err != nil {
		log.Warn("invalid MOCK_LATENCY, using 100ms", "error", err)
		latency = 100 * time.Millisecond
	}

	keys, err := keyChecker(os.Getenv("API_KEY_HASH"), os.Getenv("API_KEY"))
	if err != nil {
		log.Error("invalid api key configuration", "error", err)
		os.Exit(1)
	}
	u := &upstream{
		keys:    keys,
		latency: latency,
		now:     time.Now,
		logger:  log,
	}
	srv := &http.Server{Addr: addr, Handler: u.routes(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("mock upstream listening", "addr", addr, "latency", latency, "api_key_required", keys != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
