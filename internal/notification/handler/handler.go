// Package handler serves the notification log and permission routes.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"motorhub/internal/notification/models"
	id "motorhub/pkg/domain"
	dErrors "motorhub/pkg/domain-errors"
	"motorhub/pkg/platform/httputil"
	"motorhub/pkg/requestcontext"
)

// Service is the notification log and permission tracker.
type Service interface {
	Append(ctx context.Context, owner id.UserID, entry models.Entry) (models.Entry, error)
	List(ctx context.Context, owner id.UserID, limit int) ([]models.Entry, error)
	Clear(ctx context.Context, owner id.UserID) error
	PromptDecision(ctx context.Context, owner id.UserID) (models.Permission, models.PromptDecision, error)
	RecordPrompt(ctx context.Context, owner id.UserID) (models.Permission, error)
	RecordDecision(ctx context.Context, owner id.UserID, status models.PermissionStatus) (models.Permission, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: svc, logger: logger}
}

// Register mounts everything under /notifications.
func (h *Handler) Register(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/log", h.handleList)
		r.Post("/log", h.handleAppend)
		r.Delete("/log", h.handleClear)

		r.Get("/permission", h.handleGetPermission)
		r.Post("/permission/prompt", h.handlePrompt)
		r.Post("/permission/decision", h.handleDecision)
	})
}

func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	owner, err := httputil.RequireUserID(r.Context(), h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return id.UserID{}, false
	}
	return owner, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := h.service.List(r.Context(), owner, limit)
	if err != nil {
		h.fail(w, r, "list notifications failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.LogResponse{Entries: entries, Count: len(entries)})
}

func (h *Handler) handleAppend(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AppendRequest](w, r, h.logger)
	if !ok {
		return
	}

	entry, err := h.service.Append(r.Context(), owner, req.Entry())
	if err != nil {
		h.fail(w, r, "append notification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	if err := h.service.Clear(r.Context(), owner); err != nil {
		h.fail(w, r, "clear notifications failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetPermission(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	p, d, err := h.service.PromptDecision(r.Context(), owner)
	if err != nil {
		h.fail(w, r, "load notification permission failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.PermissionResponse{Permission: p, Decision: d})
}

func (h *Handler) handlePrompt(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	if _, err := h.service.RecordPrompt(r.Context(), owner); err != nil {
		h.fail(w, r, "record permission prompt failed", err)
		return
	}
	h.handleGetPermission(w, r)
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.DecisionRequest](w, r, h.logger)
	if !ok {
		return
	}
	if _, err := h.service.RecordDecision(r.Context(), owner, req.Status); err != nil {
		h.fail(w, r, "record permission decision failed", err)
		return
	}
	h.handleGetPermission(w, r)
}
