// Package handler exposes a lookup service over HTTP. Each domain mounts it
// under its own prefix and adds its transactional routes alongside.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"motorhub/internal/lookup/service"
	"motorhub/internal/lookup/state"
	id "motorhub/pkg/domain"
	"motorhub/pkg/platform/httputil"
	"motorhub/pkg/requestcontext"
)

type Handler[R state.Report] struct {
	logger  *slog.Logger
	service *service.Service[R]
}

func New[R state.Report](svc *service.Service[R], logger *slog.Logger) *Handler[R] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler[R]{logger: logger, service: svc}
}

// Register mounts the lookup routes on r, which is expected to be scoped to
// the domain prefix and to sit behind the auth middleware.
func (h *Handler[R]) Register(r chi.Router) {
	r.Post("/search", h.handleSearch)
	r.Get("/state", h.handleGetState)
	r.Delete("/state", h.handleResetState)
	r.Delete("/state/error", h.handleClearError)

	r.Get("/recent", h.handleListRecent)
	r.Delete("/recent", h.handleClearRecent)
	r.Delete("/recent/{registration}", h.handleRemoveRecent)

	r.Get("/saved", h.handleListSaved)
	r.Post("/saved", h.handleSave)
	r.Delete("/saved", h.handleClearSaved)
	r.Get("/saved/{registration}", h.handleGetSaved)
	r.Delete("/saved/{registration}", h.handleRemoveSaved)
}

// Owner resolves the authenticated owner, writing the error response when it
// is missing. Domain handlers use it for their own routes.
func (h *Handler[R]) Owner(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	owner, err := httputil.RequireUserID(r.Context(), h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return id.UserID{}, false
	}
	return owner, true
}

// WriteState writes the owner's current slice.
func (h *Handler[R]) WriteState(w http.ResponseWriter, status int, owner id.UserID) {
	httputil.WriteJSON(w, status, toStateResponse(h.service.State(owner)))
}

func (h *Handler[R]) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RegistrationRequest](w, r, h.logger)
	if !ok {
		return
	}

	if _, err := h.service.Search(ctx, owner, req.Registration); err != nil {
		h.logger.InfoContext(ctx, "search failed",
			"domain", h.service.Domain(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	h.WriteState(w, http.StatusOK, owner)
}

func (h *Handler[R]) handleGetState(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	h.WriteState(w, http.StatusOK, owner)
}

func (h *Handler[R]) handleResetState(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	h.service.Reset(owner)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[R]) handleClearError(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStateResponse(h.service.ClearError(owner)))
}

func (h *Handler[R]) handleListRecent(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RecentResponse{RecentSearches: nonNil(h.service.Recent(owner))})
}

func (h *Handler[R]) handleClearRecent(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	h.service.ClearRecent(owner)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[R]) handleRemoveRecent(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	remaining := h.service.RemoveRecent(owner, chi.URLParam(r, "registration"))
	httputil.WriteJSON(w, http.StatusOK, RecentResponse{RecentSearches: nonNil(remaining)})
}

func (h *Handler[R]) handleListSaved(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SavedResponse[R]{SavedReports: nonNil(h.service.Saved(owner))})
}

func (h *Handler[R]) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RegistrationRequest](w, r, h.logger)
	if !ok {
		return
	}

	saved, err := h.service.SaveCurrent(ctx, owner, req.Registration)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ReportResponse[R]{Report: saved})
}

func (h *Handler[R]) handleClearSaved(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	h.service.ClearSaved(owner)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[R]) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	report, err := h.service.SavedReport(owner, chi.URLParam(r, "registration"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReportResponse[R]{Report: report})
}

func (h *Handler[R]) handleRemoveSaved(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.Owner(w, r)
	if !ok {
		return
	}
	remaining := h.service.RemoveSaved(owner, chi.URLParam(r, "registration"))
	httputil.WriteJSON(w, http.StatusOK, SavedResponse[R]{SavedReports: nonNil(remaining)})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
