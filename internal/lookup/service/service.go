// Package service implements the lookup flow shared by the insurance and
// challan features: validate the registration, fetch it upstream once per
// owner, and record the outcome in the owner's slice.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"motorhub/internal/lookup/metrics"
	"motorhub/internal/lookup/state"
	"motorhub/internal/lookup/tracer"
	id "motorhub/pkg/domain"
	dErrors "motorhub/pkg/domain-errors"
	"motorhub/pkg/platform/events"
	psync "motorhub/pkg/platform/sync"
	"motorhub/pkg/requestcontext"
)

// DefaultFetchTimeout bounds an upstream fetch once it is detached from the caller.
const DefaultFetchTimeout = 30 * time.Second

// FetchFunc fetches the full report for a validated registration.
type FetchFunc[R state.Report] func(ctx context.Context, reg id.RegistrationNumber) (R, error)

type settings struct {
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       tracer.Tracer
	publisher    events.Publisher
	fetchTimeout time.Duration
	maxRecent    int
	maxSaved     int
	messages     Messages
}

// Option configures a Service.
type Option func(*settings)

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *settings) {
		if t != nil {
			s.tracer = t
		}
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *settings) {
		if p != nil {
			s.publisher = p
		}
	}
}

func WithFetchTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithLimits sets the recent-search and saved-report caps. Non-positive
// values keep the defaults.
func WithLimits(maxRecent, maxSaved int) Option {
	return func(s *settings) {
		s.maxRecent = maxRecent
		s.maxSaved = maxSaved
	}
}

func WithMessages(m Messages) Option {
	return func(s *settings) { s.messages = m }
}

// Service owns every user's slice for one lookup domain.
type Service[R state.Report] struct {
	settings
	domain string
	fetch  FetchFunc[R]
	stores *state.Stores[R]
	group  singleflight.Group

	// pending counts each owner's fetches in flight. It is only touched
	// inside a store update, so it moves in step with the owner's slice.
	pendingMu sync.Mutex
	pending   map[id.UserID]int

	txLocks *psync.KeyedMutex
}

func New[R state.Report](domain string, fetch FetchFunc[R], opts ...Option) *Service[R] {
	s := settings{
		logger:       slog.Default(),
		tracer:       tracer.NewNoop(),
		publisher:    events.NoopPublisher{},
		fetchTimeout: DefaultFetchTimeout,
		maxRecent:    state.DefaultMaxRecentSearches,
		maxSaved:     state.DefaultMaxSavedReports,
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.messages = s.messages.withDefaults()
	return &Service[R]{
		settings: s,
		domain:   domain,
		fetch:    fetch,
		stores:   state.NewStores[R](s.maxRecent, s.maxSaved),
		pending:  make(map[id.UserID]int),
		txLocks:  psync.NewKeyedMutex(64),
	}
}

func (s *Service[R]) Domain() string { return s.domain }

// Messages returns the user-facing error texts in use.
func (s *Service[R]) Messages() Messages { return s.messages }

// Logger, Tracer and Metrics expose the configured dependencies to the
// domain services built on top of this one. Metrics may be nil.
func (s *Service[R]) Logger() *slog.Logger { return s.logger }

func (s *Service[R]) Tracer() tracer.Tracer { return s.tracer }

func (s *Service[R]) Metrics() *metrics.Metrics { return s.metrics }

func (s *Service[R]) store(owner id.UserID) *state.Store[R] {
	st := s.stores.For(owner)
	if s.metrics != nil {
		s.metrics.SetActiveOwners(s.domain, s.stores.Len())
	}
	return st
}

// apply runs actions atomically against owner's slice.
func (s *Service[R]) apply(owner id.UserID, fn func(state.State[R]) []state.Action[R]) state.State[R] {
	return s.store(owner).Update(func(cur state.State[R]) []state.Action[R] {
		actions := fn(cur)
		if s.metrics != nil {
			for _, a := range actions {
				s.metrics.RecordAction(s.domain, a.Kind.String())
			}
		}
		return actions
	})
}

// track adds delta to owner's in-flight fetches and returns the new count.
func (s *Service[R]) track(owner id.UserID, delta int) int {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	n := s.pending[owner] + delta
	if n <= 0 {
		delete(s.pending, owner)
		return 0
	}
	s.pending[owner] = n
	return n
}

func (s *Service[R]) dispatch(owner id.UserID, actions ...state.Action[R]) state.State[R] {
	return s.apply(owner, func(state.State[R]) []state.Action[R] { return actions })
}

// Search validates raw, fetches the report and records the outcome in the
// owner's slice: loading first, then data plus a recent-search entry, or the
// error message with the previous data left in place.
//
// The request state is per owner, not per registration. While another of the
// owner's fetches is still running the slice stays loading: a success
// publishes its data without clearing the flag, and a failure is returned to
// its caller without being recorded in the slice.
//
// Concurrent searches by the same owner for the same registration share one
// upstream fetch. The fetch is detached from ctx: a caller that gives up gets
// ctx.Err(), and the result still lands in the slice.
func (s *Service[R]) Search(ctx context.Context, owner id.UserID, raw string) (result R, err error) {
	reg, err := id.ParseRegistrationNumber(raw)
	if err != nil {
		return result, err
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanSearch,
		tracer.String(tracer.AttrDomain, s.domain),
		tracer.String(tracer.AttrRegistration, reg.Redacted()),
	)
	defer func() { span.End(err) }()

	start := time.Now()
	key := owner.String() + "|" + reg.String()
	ch := s.group.DoChan(key, func() (any, error) {
		return s.fetchAndRecord(context.WithoutCancel(ctx), owner, reg)
	})

	select {
	case <-ctx.Done():
		return result, ctx.Err()
	case res := <-ch:
		span.SetAttributes(tracer.Bool(tracer.AttrShared, res.Shared))
		if res.Shared && s.metrics != nil {
			s.metrics.RecordShared(s.domain)
		}
		if s.metrics != nil {
			s.metrics.RecordSearch(s.domain, Outcome(res.Err), time.Since(start).Seconds())
		}
		if res.Err != nil {
			return result, res.Err
		}
		return res.Val.(R), nil
	}
}

func (s *Service[R]) fetchAndRecord(ctx context.Context, owner id.UserID, reg id.RegistrationNumber) (R, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, tracer.SpanFetch, tracer.String(tracer.AttrDomain, s.domain))

	s.apply(owner, func(state.State[R]) []state.Action[R] {
		s.track(owner, 1)
		return []state.Action[R]{state.SetLoading[R](true)}
	})

	report, err := s.fetch(ctx, reg)
	if err == nil && report.Key() != reg.String() {
		err = dErrors.New(dErrors.CodeUnavailable, s.messages.Unavailable)
		s.logger.ErrorContext(ctx, "fetcher returned a report for another registration",
			"domain", s.domain,
			"requested", reg.Redacted(),
		)
	}
	if err != nil {
		translated := TranslateError(err, s.messages)
		span.End(err)
		s.apply(owner, func(state.State[R]) []state.Action[R] {
			if s.track(owner, -1) > 0 {
				return nil
			}
			return []state.Action[R]{state.SetError[R](dErrors.Message(translated))}
		})
		s.logger.WarnContext(ctx, "lookup failed",
			"domain", s.domain,
			"registration", reg.Redacted(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		s.emit(ctx, owner, events.TypeSearched, reg, Outcome(translated), nil)
		var zero R
		return zero, translated
	}
	span.End(nil)

	s.apply(owner, func(state.State[R]) []state.Action[R] {
		actions := []state.Action[R]{state.SetData(report), state.AddRecentSearch[R](reg.String())}
		if s.track(owner, -1) > 0 {
			actions = append(actions, state.SetLoading[R](true))
		}
		return actions
	})
	s.logger.InfoContext(ctx, "lookup succeeded",
		"domain", s.domain,
		"registration", reg.Redacted(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emit(ctx, owner, events.TypeSearched, reg, metrics.OutcomeSuccess, nil)
	return report, nil
}

func (s *Service[R]) emit(ctx context.Context, owner id.UserID, eventType string, reg id.RegistrationNumber, outcome string, attrs map[string]string) {
	s.publisher.Publish(ctx, events.Event{
		Type:       eventType,
		Domain:     s.domain,
		Owner:      owner.String(),
		Subject:    reg.Redacted(),
		Outcome:    outcome,
		Platform:   requestcontext.Platform(ctx),
		Attributes: attrs,
		OccurredAt: requestcontext.Now(ctx),
	})
}

// Emit publishes a domain event for reg on behalf of the embedding service.
func (s *Service[R]) Emit(ctx context.Context, owner id.UserID, eventType string, reg id.RegistrationNumber, outcome string, attrs map[string]string) {
	s.emit(ctx, owner, eventType, reg, outcome, attrs)
}

// LockRegistration serialises owner's transactions on reg, such as payments
// and renewals, so each one checks the state the previous one left behind.
// The returned func releases the lock.
func (s *Service[R]) LockRegistration(owner id.UserID, reg id.RegistrationNumber) (unlock func()) {
	return s.txLocks.Lock(owner.String() + "|" + reg.String())
}

// State returns a snapshot of owner's slice.
func (s *Service[R]) State(owner id.UserID) state.State[R] {
	return s.store(owner).State()
}

// Current returns the last successful result for owner.
func (s *Service[R]) Current(owner id.UserID) (R, bool) {
	return s.State(owner).Current()
}

// ClearError dismisses the error shown for the last failed request.
func (s *Service[R]) ClearError(owner id.UserID) state.State[R] {
	return s.dispatch(owner, state.ClearError[R]())
}

// Reset forgets everything held for owner.
func (s *Service[R]) Reset(owner id.UserID) {
	s.stores.Drop(owner)
	if s.metrics != nil {
		s.metrics.SetActiveOwners(s.domain, s.stores.Len())
	}
}

func (s *Service[R]) Recent(owner id.UserID) []string {
	return s.State(owner).Recent.Items()
}

func (s *Service[R]) RemoveRecent(owner id.UserID, raw string) []string {
	return s.dispatch(owner, state.RemoveRecentSearch[R](id.NormalizeRegistration(raw))).Recent.Items()
}

func (s *Service[R]) ClearRecent(owner id.UserID) {
	s.dispatch(owner, state.ClearRecentSearches[R]())
}

// SaveCurrent saves the current result for raw. The registration must be the
// one most recently looked up.
func (s *Service[R]) SaveCurrent(ctx context.Context, owner id.UserID, raw string) (R, error) {
	var saved R
	reg, err := id.ParseRegistrationNumber(raw)
	if err != nil {
		return saved, err
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanSave, tracer.String(tracer.AttrDomain, s.domain))
	var found bool
	s.apply(owner, func(cur state.State[R]) []state.Action[R] {
		current, ok := cur.Current()
		if !ok || current.Key() != reg.String() {
			return nil
		}
		saved, found = current, true
		return []state.Action[R]{state.SaveReport(current)}
	})
	if !found {
		err := dErrors.New(dErrors.CodeNotFound, "search for this vehicle before saving it")
		span.End(err)
		return saved, err
	}
	span.End(nil)

	s.emit(ctx, owner, events.TypeReportSaved, reg, metrics.OutcomeSuccess, nil)
	return saved, nil
}

// Refresh replaces the current result and any saved copy that share r's
// key, leaving positions unchanged. It reports whether anything matched.
func (s *Service[R]) Refresh(owner id.UserID, r R) bool {
	var matched bool
	s.apply(owner, func(cur state.State[R]) []state.Action[R] {
		var actions []state.Action[R]
		if current, ok := cur.Current(); ok && current.Key() == r.Key() {
			actions = append(actions, state.SetData(r))
		}
		if _, ok := cur.Saved.Get(r.Key()); ok {
			actions = append(actions, state.SaveReport(r))
		}
		matched = len(actions) > 0
		return actions
	})
	return matched
}

func (s *Service[R]) Saved(owner id.UserID) []R {
	return s.State(owner).Saved.Items()
}

// SavedReport returns the saved report for raw.
func (s *Service[R]) SavedReport(owner id.UserID, raw string) (R, error) {
	r, ok := s.State(owner).Saved.Get(id.NormalizeRegistration(raw))
	if !ok {
		return r, dErrors.New(dErrors.CodeNotFound, "saved report not found")
	}
	return r, nil
}

func (s *Service[R]) RemoveSaved(owner id.UserID, raw string) []R {
	return s.dispatch(owner, state.RemoveSavedReport[R](id.NormalizeRegistration(raw))).Saved.Items()
}

func (s *Service[R]) ClearSaved(owner id.UserID) {
	s.dispatch(owner, state.ClearSavedReports[R]())
}

// Find returns the report for raw from the current result or, failing that,
// the saved reports.
func (s *Service[R]) Find(owner id.UserID, raw string) (R, bool) {
	key := id.NormalizeRegistration(raw)
	st := s.State(owner)
	if current, ok := st.Current(); ok && current.Key() == key {
		return current, true
	}
	return st.Saved.Get(key)
}
