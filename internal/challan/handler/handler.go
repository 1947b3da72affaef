package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"motorhub/internal/challan/models"
	lookuphandler "motorhub/internal/lookup/handler"
	lookup "motorhub/internal/lookup/service"
	id "motorhub/pkg/domain"
	"motorhub/pkg/platform/httputil"
	"motorhub/pkg/requestcontext"
)

// Payer settles challans.
type Payer interface {
	PayChallan(ctx context.Context, owner id.UserID, req models.PaymentRequest) (*models.PaymentResponse, error)
}

// Handler serves the challan lookup routes and payment.
type Handler struct {
	lookup *lookuphandler.Handler[models.Report]
	payer  Payer
	logger *slog.Logger
}

func New(svc *lookup.Service[models.Report], payer Payer, logger *slog.Logger) *Handler {
	return &Handler{
		lookup: lookuphandler.New(svc, logger),
		payer:  payer,
		logger: logger,
	}
}

// Register mounts everything under /challan.
func (h *Handler) Register(r chi.Router) {
	r.Route("/challan", func(r chi.Router) {
		h.lookup.Register(r)
		r.Post("/pay", h.handlePay)
	})
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.lookup.Owner(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.PaymentRequest](w, r, h.logger)
	if !ok {
		return
	}

	resp, err := h.payer.PayChallan(ctx, owner, *req)
	if err != nil {
		h.logger.InfoContext(ctx, "challan payment failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
