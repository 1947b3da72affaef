package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Payer

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"motorhub/internal/challan/fetcher"
	"motorhub/internal/challan/handler/mocks"
	"motorhub/internal/challan/models"
	"motorhub/internal/challan/service"
	dErrors "motorhub/pkg/domain-errors"
	"motorhub/pkg/platform/httputil"
	"motorhub/pkg/requestcontext"
	"motorhub/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	payer  *mocks.MockPayer
	router *chi.Mux
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.payer = mocks.NewMockPayer(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(r.Context(), testutil.TestIDs.UserID1)))
		})
	})
	New(service.New(fetcher.NewMock(0)).Service, s.payer, logger).Register(s.router)
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestLookupRoutesAreMounted() {
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/challan/search", `{"registration":"KA05MN4321"}`).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/challan/search", `{"registration":"KA05MN0000"}`).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/challan/recent", "").Code)
}

func (s *HandlerSuite) TestPay() {
	want := models.PaymentRequest{Registration: "KA05MN4321", ChallanIDs: []string{"KA260101000001"}, Method: models.MethodCard}
	s.payer.EXPECT().PayChallan(gomock.Any(), testutil.TestIDs.UserID1, want).
		Return(&models.PaymentResponse{Receipt: models.PaymentReceipt{ReceiptID: "rcpt-1", Amount: 500}}, nil)

	w := s.do(http.MethodPost, "/challan/pay", `{"registration":"ka05 mn 4321","challan_ids":["KA260101000001"],"payment_method":"card"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp models.PaymentResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal("rcpt-1", resp.Receipt.ReceiptID)
}

func (s *HandlerSuite) TestPayValidation() {
	w := s.do(http.MethodPost, "/challan/pay", `{"registration":"KA05MN4321","challan_ids":[],"payment_method":"card"}`)
	s.Equal(http.StatusBadRequest, w.Code)

	var resp httputil.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal("validation_error", resp.Error)
}

func (s *HandlerSuite) TestPayConflict() {
	s.payer.EXPECT().PayChallan(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeConflict, "challan KA260101000001 is paid and cannot be paid"))

	w := s.do(http.MethodPost, "/challan/pay", `{"registration":"KA05MN4321","challan_ids":["KA260101000001"],"payment_method":"upi"}`)
	s.Equal(http.StatusConflict, w.Code)
}
