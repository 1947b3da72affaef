package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"motorhub/internal/insurance/models"
	lookuphandler "motorhub/internal/lookup/handler"
	lookup "motorhub/internal/lookup/service"
	id "motorhub/pkg/domain"
	"motorhub/pkg/platform/httputil"
	"motorhub/pkg/requestcontext"
)

// Renewer renews insurance policies.
type Renewer interface {
	RenewPolicy(ctx context.Context, owner id.UserID, req models.RenewalRequest) (*models.RenewalResponse, error)
}

// Handler serves the insurance lookup routes and policy renewal.
type Handler struct {
	lookup  *lookuphandler.Handler[models.Report]
	renewer Renewer
	logger  *slog.Logger
}

func New(svc *lookup.Service[models.Report], renewer Renewer, logger *slog.Logger) *Handler {
	return &Handler{
		lookup:  lookuphandler.New(svc, logger),
		renewer: renewer,
		logger:  logger,
	}
}

// Register mounts everything under /insurance.
func (h *Handler) Register(r chi.Router) {
	r.Route("/insurance", func(r chi.Router) {
		h.lookup.Register(r)
		r.Post("/renew", h.handleRenew)
	})
}

func (h *Handler) handleRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.lookup.Owner(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.RenewalRequest](w, r, h.logger)
	if !ok {
		return
	}

	resp, err := h.renewer.RenewPolicy(ctx, owner, *req)
	if err != nil {
		h.logger.InfoContext(ctx, "policy renewal failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
