package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"motorhub/internal/app"
	jwttoken "motorhub/internal/jwt_token"
	"motorhub/internal/platform/config"
	"motorhub/internal/platform/logger"
	"motorhub/internal/platform/telemetry"
	httptransport "motorhub/internal/transport/http"
	"motorhub/pkg/platform/middleware/request"
)

const (
	shutdownTimeout   = 10 * time.Second
	poolStatsInterval = 15 * time.Second
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing motorhub",
		"addr", cfg.Server.Addr,
		"environment", cfg.Server.Environment,
		"mock_data", cfg.Lookup.UseMockData,
		"notification_store", cfg.Notification.Store,
	)

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry, cfg.Server.Environment, os.Stdout)
	if err != nil {
		log.Error("telemetry init failed", "error", err)
		return err
	}

	a, err := app.New(ctx, cfg, log, prometheus.DefaultRegisterer)
	if err != nil {
		log.Error("startup failed", "error", err)
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("closing resources failed", "error", err)
		}
	}()

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.TokenTTL)
	jwtService.SetEnv(cfg.Server.Environment)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Validator:      jwttoken.NewJWTServiceAdapter(jwtService),
		Health:         a.Health,
		Insurance:      a.Insurance,
		Challan:        a.Challan,
		Notifications:  a.Notifications,
		Metrics:        request.NewMetrics(prometheus.DefaultRegisterer),
		MetricsHandler: promhttp.Handler(),
		RateLimit:      a.RateLimit,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if a.Redis != nil {
		g.Go(func() error {
			ticker := time.NewTicker(poolStatsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					a.Redis.RecordPoolStats()
				}
			}
		})
	}
	g.Go(func() error {
		a.SweepRateLimits(gctx, cfg.RateLimit.Window)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		if err := srv.Shutdown(sctx); err != nil {
			errs = append(errs, err)
		}
		if err := shutdownTracing(sctx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}
