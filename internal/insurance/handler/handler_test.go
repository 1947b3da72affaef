package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Renewer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"motorhub/internal/insurance/fetcher"
	"motorhub/internal/insurance/handler/mocks"
	"motorhub/internal/insurance/models"
	"motorhub/internal/insurance/service"
	lookuphandler "motorhub/internal/lookup/handler"
	id "motorhub/pkg/domain"
	dErrors "motorhub/pkg/domain-errors"
	"motorhub/pkg/platform/httputil"
	"motorhub/pkg/requestcontext"
	"motorhub/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	renewer *mocks.MockRenewer
	router  *chi.Mux
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.renewer = mocks.NewMockRenewer(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(fetcher.NewMock(0))

	s.router = chi.NewRouter()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithUserID(r.Context(), testutil.TestIDs.UserID1)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	New(svc.Service, s.renewer, logger).Register(s.router)
}

func (s *HandlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestLookupRoutesAreMounted() {
	w := s.post("/insurance/search", `{"registration":"MH12AB1234"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp lookuphandler.StateResponse[models.Report]
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Require().NotNil(resp.CurrentData)
	s.Equal("MH12AB1234", resp.CurrentData.Registration)

	w = s.post("/insurance/search", `{"registration":"MH12AB9999"}`)
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *HandlerSuite) TestRenew() {
	s.renewer.EXPECT().
		RenewPolicy(gomock.Any(), testutil.TestIDs.UserID1, models.RenewalRequest{
			Registration: "MH12AB1234",
			PlanType:     models.PlanComprehensive,
			TermYears:    1,
		}).
		DoAndReturn(func(_ context.Context, _ id.UserID, req models.RenewalRequest) (*models.RenewalResponse, error) {
			return &models.RenewalResponse{
				Receipt: models.RenewalReceipt{ReceiptID: "rcpt-1", Registration: req.Registration, RenewedAt: time.Now()},
				Report:  models.Report{Registration: req.Registration},
			}, nil
		})

	w := s.post("/insurance/renew", `{"registration":"mh12 ab1234","plan_type":"comprehensive"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp models.RenewalResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal("rcpt-1", resp.Receipt.ReceiptID)
}

func (s *HandlerSuite) TestRenewValidation() {
	w := s.post("/insurance/renew", `{"registration":"MH12AB1234","plan_type":"gold"}`)
	s.Equal(http.StatusBadRequest, w.Code)

	var resp httputil.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal("plan_type must be one of [comprehensive third_party]", resp.Description)
}

func (s *HandlerSuite) TestRenewServiceError() {
	s.renewer.EXPECT().RenewPolicy(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeConflict, models.NotRenewableMessage))

	w := s.post("/insurance/renew", `{"registration":"MH12AB1234","plan_type":"third_party","term_years":1}`)
	s.Equal(http.StatusConflict, w.Code)
}
