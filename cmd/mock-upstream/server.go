package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	challanfetcher "motorhub/internal/challan/fetcher"
	challanmodels "motorhub/internal/challan/models"
	insurancefetcher "motorhub/internal/insurance/fetcher"
	insurancemodels "motorhub/internal/insurance/models"
	"motorhub/internal/lookup/providers"
	id "motorhub/pkg/domain"
	"motorhub/pkg/secrets"
)

// upstream serves deterministic insurer and e-challan responses with the
// status codes real providers use, so the HTTP fetchers can be exercised
// without external systems. Registrations ending in 0000 are unknown, 9999
// fail with 503 and 8888 have their payments declined.
type upstream struct {
	// keys is nil when the upstream accepts anonymous calls.
	keys    *secrets.KeyChecker
	latency time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (u *upstream) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "motorhub-mock-upstream"})
	})

	r.Group(func(r chi.Router) {
		r.Use(u.delay, u.requireKey)
		r.Get("/v1/insurance/{registration}", u.handleInsurance)
		r.Post("/v1/insurance/{registration}/renew", u.handleRenew)
		r.Get("/v1/challans/{registration}", u.handleChallans)
		r.Post("/v1/challans/{registration}/pay", u.handlePay)
	})
	return r
}

func (u *upstream) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u.latency > 0 {
			select {
			case <-time.After(u.latency):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (u *upstream) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u.keys != nil && u.keys.Check(r.Header.Get("X-API-Key")) != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "missing or invalid X-API-Key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (u *upstream) registration(w http.ResponseWriter, r *http.Request) (id.RegistrationNumber, bool) {
	reg, err := id.ParseRegistrationNumber(chi.URLParam(r, "registration"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: err.Error()})
		return id.RegistrationNumber{}, false
	}
	return reg, true
}

func (u *upstream) handleInsurance(w http.ResponseWriter, r *http.Request) {
	reg, ok := u.registration(w, r)
	if !ok {
		return
	}
	report, err := insurancefetcher.Generate(reg, u.now())
	u.respond(w, r, report, err)
}

func (u *upstream) handleRenew(w http.ResponseWriter, r *http.Request) {
	reg, ok := u.registration(w, r)
	if !ok {
		return
	}
	var req insurancemodels.RenewalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "invalid request body"})
		return
	}
	receipt, err := insurancefetcher.Renew(reg, req, u.now())
	u.respond(w, r, receipt, err)
}

func (u *upstream) handleChallans(w http.ResponseWriter, r *http.Request) {
	reg, ok := u.registration(w, r)
	if !ok {
		return
	}
	report, err := challanfetcher.Generate(reg, u.now())
	u.respond(w, r, report, err)
}

func (u *upstream) handlePay(w http.ResponseWriter, r *http.Request) {
	reg, ok := u.registration(w, r)
	if !ok {
		return
	}
	var req challanmodels.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "invalid request body"})
		return
	}
	receipt, err := challanfetcher.Pay(reg, req, u.now())
	u.respond(w, r, receipt, err)
}

func (u *upstream) respond(w http.ResponseWriter, r *http.Request, body any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, body)
		return
	}
	category := providers.GetCategory(err)
	msg := err.Error()
	var pe *providers.ProviderError
	if errors.As(err, &pe) {
		msg = pe.Message
	}
	u.logger.InfoContext(r.Context(), "simulated upstream failure", "path", r.URL.Path, "category", category)
	writeJSON(w, statusFor(category), errorBody{Error: string(category), Message: msg})
}

func statusFor(c providers.ErrorCategory) int {
	switch c {
	case providers.ErrorNotFound:
		return http.StatusNotFound
	case providers.ErrorRejected:
		return http.StatusUnprocessableEntity
	case providers.ErrorProviderOutage:
		return http.StatusServiceUnavailable
	case providers.ErrorRateLimited:
		return http.StatusTooManyRequests
	case providers.ErrorAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
