// Package app builds the services, stores and clients described by the
// configuration. The server and the CLI share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	challanfetcher "motorhub/internal/challan/fetcher"
	challan "motorhub/internal/challan/service"
	insurancefetcher "motorhub/internal/insurance/fetcher"
	insurance "motorhub/internal/insurance/service"
	lookupmetrics "motorhub/internal/lookup/metrics"
	"motorhub/internal/lookup/providers"
	lookup "motorhub/internal/lookup/service"
	"motorhub/internal/lookup/tracer"
	notificationmetrics "motorhub/internal/notification/metrics"
	notification "motorhub/internal/notification/service"
	"motorhub/internal/notification/store"
	platformbadger "motorhub/internal/platform/badger"
	"motorhub/internal/platform/config"
	"motorhub/internal/platform/database"
	"motorhub/internal/platform/health"
	"motorhub/internal/platform/kafka/admin"
	"motorhub/internal/platform/kafka/producer"
	redisclient "motorhub/internal/platform/redis"
	"motorhub/internal/platform/telemetry"
	ratelimitmetrics "motorhub/internal/ratelimit/metrics"
	ratelimit "motorhub/internal/ratelimit/middleware"
	ratelimitmodels "motorhub/internal/ratelimit/models"
	"motorhub/internal/ratelimit/store/bucket"
	"motorhub/pkg/platform/circuit"
	"motorhub/pkg/platform/events"
)

const (
	topicPartitions  = 3
	topicReplication = 1
)

// App holds everything built from a Config. Close releases it in reverse
// order of construction.
type App struct {
	Config        config.Config
	Logger        *slog.Logger
	Health        *health.Handler
	Insurance     *insurance.Service
	Challan       *challan.Service
	Notifications *notification.Service
	// RateLimit is nil when rate limiting is disabled.
	RateLimit *ratelimit.Middleware

	// Optional infrastructure, nil when not configured.
	Redis    *redisclient.Client
	Database *database.Pool
	Badger   *platformbadger.DB
	Producer *producer.Producer

	// memoryBuckets is set when rate limit counters live in this process.
	memoryBuckets *bucket.InMemoryBucketStore
	closers       []func() error
}

// New connects the configured infrastructure and builds the services.
// Metrics register with reg; pass nil to skip metrics.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (_ *App, err error) {
	a := &App{Config: cfg, Logger: logger, Health: health.New(cfg.Server.Environment)}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	if err := a.connect(ctx); err != nil {
		return nil, err
	}

	publisher, err := a.publisher(ctx)
	if err != nil {
		return nil, err
	}

	opts := []lookup.Option{
		lookup.WithLogger(logger),
		lookup.WithPublisher(publisher),
		lookup.WithFetchTimeout(cfg.Lookup.FetchTimeout),
		lookup.WithLimits(cfg.Lookup.RecentSearchLimit, cfg.Lookup.SavedReportLimit),
	}
	if cfg.Telemetry.TraceExporter != telemetry.ExporterNone {
		opts = append(opts, lookup.WithTracer(tracer.NewOTel()))
	}
	var nopts []notification.Option
	var rlMetrics ratelimit.Metrics
	if reg != nil {
		opts = append(opts, lookup.WithMetrics(lookupmetrics.New(reg)))
		nopts = append(nopts, notification.WithMetrics(notificationmetrics.New(reg)))
		rlMetrics = ratelimitmetrics.New(reg)
	}

	insuranceFetcher, challanFetcher := a.fetchers()
	a.Insurance = insurance.New(insuranceFetcher, opts...)
	a.Challan = challan.New(challanFetcher, opts...)

	kv, err := a.notificationStore(ctx)
	if err != nil {
		return nil, err
	}
	a.Notifications = notification.New(kv, append(nopts,
		notification.WithLogger(logger),
		notification.WithPublisher(publisher),
		notification.WithLogLimit(cfg.Notification.LogLimit),
		notification.WithPromptPolicy(cfg.Notification.PromptCooldown, cfg.Notification.MaxPrompts),
	)...)

	if cfg.RateLimit.Enabled {
		a.RateLimit = ratelimit.New(a.bucketStore(), map[ratelimitmodels.Class]ratelimitmodels.Limit{
			ratelimitmodels.ClassUpstream: {Requests: cfg.RateLimit.UpstreamRequests, Window: cfg.RateLimit.Window},
			ratelimitmodels.ClassDefault:  {Requests: cfg.RateLimit.DefaultRequests, Window: cfg.RateLimit.Window},
		}, logger, rlMetrics)
	}

	return a, nil
}

func (a *App) bucketStore() ratelimit.BucketStore {
	if a.Redis != nil {
		return bucket.NewRedis(a.Redis.Client)
	}
	a.memoryBuckets = bucket.NewInMemoryBucketStore()
	return a.memoryBuckets
}

// SweepRateLimits drops idle in-process rate limit windows every interval
// until ctx is done. It returns at once when counters live in redis.
func (a *App) SweepRateLimits(ctx context.Context, interval time.Duration) {
	if a.memoryBuckets == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := a.memoryBuckets.Sweep(now); n > 0 {
				a.Logger.DebugContext(ctx, "swept idle rate limit windows", "count", n)
			}
		}
	}
}

// connect opens the shared clients that are configured.
func (a *App) connect(ctx context.Context) error {
	rc, err := redisclient.New(ctx, a.Config.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rc != nil {
		a.Redis = rc
		a.closers = append(a.closers, rc.Close)
		a.Health.RegisterCheck("redis", rc.Health)
	}

	pool, err := database.New(ctx, a.Config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if pool != nil {
		a.Database = pool
		a.closers = append(a.closers, pool.Close)
		a.Health.RegisterCheck("database", pool.Health)
	}
	return nil
}

func (a *App) publisher(ctx context.Context) (events.Publisher, error) {
	kc := a.Config.Kafka
	if kc.Brokers == "" {
		return events.LogPublisher{Logger: a.Logger}, nil
	}

	p, err := producer.New(producer.DefaultConfig(kc.Brokers), a.Logger)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	a.Producer = p
	a.closers = append(a.closers, p.Close)
	a.Health.RegisterCheck("kafka", func(ctx context.Context) error {
		if !p.Healthy(ctx) {
			return errors.New("kafka brokers unreachable")
		}
		return nil
	})

	if err := admin.EnsureTopic(ctx, p.Client(), kc.LookupTopic, topicPartitions, topicReplication); err != nil {
		a.Logger.WarnContext(ctx, "could not ensure event topic", "topic", kc.LookupTopic, "error", err)
	}
	return events.NewKafkaPublisher(p, kc.LookupTopic, a.Logger), nil
}

func (a *App) fetchers() (insurance.Fetcher, challan.Fetcher) {
	lc := a.Config.Lookup
	if lc.UseMockData {
		a.Logger.Info("using mock lookup data", "latency", lc.MockLatency)
		return insurancefetcher.NewMock(lc.MockLatency), challanfetcher.NewMock(lc.MockLatency)
	}

	adapter := func(id, baseURL string) *providers.HTTPAdapter {
		breaker := circuit.New(id,
			circuit.WithFailureThreshold(lc.BreakerFailures),
			circuit.WithCooldown(lc.BreakerCooldown),
		)
		ad := providers.NewHTTPAdapter(providers.HTTPAdapterConfig{
			ID:      id,
			BaseURL: baseURL,
			APIKey:  lc.APIKey,
			Timeout: lc.UpstreamTimeout,
			Breaker: breaker,
			Logger:  a.Logger,
		})
		a.Health.RegisterCheck(id, func(context.Context) error {
			if breaker.IsOpen() {
				return fmt.Errorf("%s circuit open", id)
			}
			return nil
		})
		return ad
	}
	return insurancefetcher.NewHTTP(adapter("insurance-upstream", lc.InsuranceBaseURL)),
		challanfetcher.NewHTTP(adapter("challan-upstream", lc.ChallanBaseURL))
}

func (a *App) notificationStore(ctx context.Context) (store.KVStore, error) {
	switch a.Config.Notification.Store {
	case config.StoreMemory, "":
		return store.NewInMemory(), nil

	case config.StoreBadger:
		db, err := platformbadger.Open(platformbadger.FromConfig(a.Config.Badger, a.Logger))
		if err != nil {
			return nil, err
		}
		a.Badger = db
		a.closers = append(a.closers, db.Close)
		a.Health.RegisterCheck("badger", db.Health)
		return store.NewBadger(db), nil

	case config.StoreRedis:
		if a.Redis == nil {
			return nil, errors.New("NOTIFICATION_STORE=redis requires REDIS_URL")
		}
		return store.NewRedis(a.Redis.Client), nil

	case config.StorePostgres:
		if a.Database == nil {
			return nil, errors.New("NOTIFICATION_STORE=postgres requires DATABASE_URL")
		}
		if err := a.Database.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return store.NewPostgres(a.Database.DB()), nil

	default:
		return nil, fmt.Errorf("unknown notification store %q", a.Config.Notification.Store)
	}
}

// Close releases every client New opened.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
