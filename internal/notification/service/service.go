// Package service keeps each owner's notification log and push-permission
// record as JSON blobs in a key-value store.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"motorhub/internal/notification/metrics"
	"motorhub/internal/notification/models"
	"motorhub/internal/notification/store"
	"motorhub/internal/sentinel"
	id "motorhub/pkg/domain"
	dErrors "motorhub/pkg/domain-errors"
	"motorhub/pkg/platform/events"
	psync "motorhub/pkg/platform/sync"
	"motorhub/pkg/requestcontext"
)

const Domain = "notification"

const storageUnavailable = "notification storage is unavailable, please try again later"

type Service struct {
	store     store.KVStore
	locks     *psync.KeyedMutex
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher events.Publisher
	limit     int
	policy    models.PromptPolicy
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithLogLimit caps the stored log. Non-positive values keep the default.
func WithLogLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithPromptPolicy sets the permission prompt cooldown and prompt cap.
func WithPromptPolicy(cooldown time.Duration, maxPrompts int) Option {
	return func(s *Service) {
		if cooldown >= 0 {
			s.policy.Cooldown = cooldown
		}
		if maxPrompts >= 0 {
			s.policy.MaxPrompts = maxPrompts
		}
	}
}

func New(kv store.KVStore, opts ...Option) *Service {
	s := &Service{
		store:     kv,
		locks:     psync.NewKeyedMutex(0),
		logger:    slog.Default(),
		publisher: events.NoopPublisher{},
		limit:     models.DefaultLogLimit,
		policy:    models.DefaultPromptPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append records entry at the head of owner's log, dropping the oldest entries
// beyond the cap. ID, time and platform are filled in when empty.
func (s *Service) Append(ctx context.Context, owner id.UserID, entry models.Entry) (models.Entry, error) {
	entry = s.complete(ctx, entry)
	err := s.locks.Do(owner.String(), func() error {
		return s.appendLocked(ctx, owner, entry)
	})
	if err != nil {
		return models.Entry{}, err
	}
	return entry, nil
}

// List returns up to limit entries, newest first. A non-positive limit returns
// the whole log.
func (s *Service) List(ctx context.Context, owner id.UserID, limit int) ([]models.Entry, error) {
	entries, err := s.readLog(ctx, owner)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Clear removes owner's log. The permission record is kept.
func (s *Service) Clear(ctx context.Context, owner id.UserID) error {
	return s.locks.Do(owner.String(), func() error {
		if err := s.store.Delete(ctx, store.LogKey(owner)); err != nil {
			return s.storeError(ctx, "delete", err)
		}
		return nil
	})
}

// Permission returns owner's permission record, undetermined if none is stored.
func (s *Service) Permission(ctx context.Context, owner id.UserID) (models.Permission, error) {
	return s.readPermission(ctx, owner)
}

// PromptDecision reports whether the client should show the permission dialog.
func (s *Service) PromptDecision(ctx context.Context, owner id.UserID) (models.Permission, models.PromptDecision, error) {
	p, err := s.readPermission(ctx, owner)
	if err != nil {
		return models.Permission{}, models.PromptDecision{}, err
	}
	d := p.Decide(requestcontext.Now(ctx), s.policy)
	if s.metrics != nil {
		s.metrics.RecordPromptDecision(d.Reason)
	}
	return p, d, nil
}

// RecordPrompt notes that the dialog was shown. It is rejected once the user
// has answered.
func (s *Service) RecordPrompt(ctx context.Context, owner id.UserID) (models.Permission, error) {
	var out models.Permission
	err := s.locks.Do(owner.String(), func() error {
		p, err := s.readPermission(ctx, owner)
		if err != nil {
			return err
		}
		if p.Status.Decided() {
			return dErrors.New(dErrors.CodeConflict, "notification permission has already been "+string(p.Status))
		}

		now := requestcontext.Now(ctx)
		p.PromptCount++
		p.LastPromptedAt = &now
		if err := s.writePermission(ctx, owner, p); err != nil {
			return err
		}
		out = p
		return s.appendLocked(ctx, owner, s.complete(ctx, models.Entry{
			Kind:  models.KindPermissionRequested,
			Title: "Notification permission requested",
		}))
	})
	return out, err
}

// RecordDecision stores the user's answer. A later answer replaces an earlier
// one, since users can change the setting from the OS.
func (s *Service) RecordDecision(ctx context.Context, owner id.UserID, status models.PermissionStatus) (models.Permission, error) {
	kind, ok := decisionKinds[status]
	if !ok {
		return models.Permission{}, dErrors.New(dErrors.CodeValidation, "status must be one of [granted denied]")
	}

	var out models.Permission
	err := s.locks.Do(owner.String(), func() error {
		p, err := s.readPermission(ctx, owner)
		if err != nil {
			return err
		}
		now := requestcontext.Now(ctx)
		p.Status = status
		p.DecidedAt = &now
		if err := s.writePermission(ctx, owner, p); err != nil {
			return err
		}
		out = p
		return s.appendLocked(ctx, owner, s.complete(ctx, models.Entry{
			Kind:  kind,
			Title: "Notification permission " + string(status),
		}))
	})
	return out, err
}

var decisionKinds = map[models.PermissionStatus]models.Kind{
	models.PermissionGranted: models.KindPermissionGranted,
	models.PermissionDenied:  models.KindPermissionDenied,
}

func (s *Service) complete(ctx context.Context, e models.Entry) models.Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = requestcontext.Now(ctx)
	}
	if e.Platform == "" {
		e.Platform = requestcontext.Platform(ctx)
	}
	return e
}

// appendLocked must run under owner's lock.
func (s *Service) appendLocked(ctx context.Context, owner id.UserID, entry models.Entry) error {
	entries, err := s.readLog(ctx, owner)
	if err != nil {
		return err
	}
	entries = append([]models.Entry{entry}, entries...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	blob, err := json.Marshal(entries)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode notification log")
	}
	if err := s.store.Set(ctx, store.LogKey(owner), blob); err != nil {
		return s.storeError(ctx, "set", err)
	}

	if s.metrics != nil {
		s.metrics.RecordEntry(string(entry.Kind))
	}
	s.publisher.Publish(ctx, events.Event{
		Type:       events.TypeNotificationLog,
		Domain:     Domain,
		Owner:      owner.String(),
		Outcome:    string(entry.Kind),
		Platform:   entry.Platform,
		Attributes: map[string]string{"entry_id": entry.ID},
		OccurredAt: entry.At,
	})
	return nil
}

func (s *Service) readLog(ctx context.Context, owner id.UserID) ([]models.Entry, error) {
	entries := []models.Entry{}
	ok, err := s.read(ctx, store.LogKey(owner), "log", &entries)
	if err != nil || !ok || entries == nil {
		return []models.Entry{}, err
	}
	return entries, nil
}

func (s *Service) readPermission(ctx context.Context, owner id.UserID) (models.Permission, error) {
	p := models.NewPermission()
	ok, err := s.read(ctx, store.PermissionKey(owner), "permission", &p)
	if err != nil {
		return models.Permission{}, err
	}
	if !ok || p.Status == "" {
		return models.NewPermission(), nil
	}
	return p, nil
}

func (s *Service) writePermission(ctx context.Context, owner id.UserID, p models.Permission) error {
	blob, err := json.Marshal(p)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode notification permission")
	}
	if err := s.store.Set(ctx, store.PermissionKey(owner), blob); err != nil {
		return s.storeError(ctx, "set", err)
	}
	return nil
}

// read decodes the blob at key into dst. A missing or undecodable blob
// reports false with no error; the caller starts from empty.
func (s *Service) read(ctx context.Context, key, blob string, dst any) (bool, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, s.storeError(ctx, "get", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt notification blob",
			"blob", blob,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.RecordCorrupt(blob)
		}
		return false, nil
	}
	return true, nil
}

func (s *Service) storeError(ctx context.Context, operation string, err error) error {
	s.logger.ErrorContext(ctx, "notification store failed",
		"operation", operation,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.RecordStoreError(operation)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, storageUnavailable)
}
