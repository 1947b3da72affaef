package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

import (
	"encoding/json"
	"errors"
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

	"motorhub/internal/notification/handler/mocks"
	"motorhub/internal/notification/models"
	"motorhub/internal/notification/service"
	"motorhub/internal/notification/store"
	dErrors "motorhub/pkg/domain-errors"
	"motorhub/pkg/platform/httputil"
	"motorhub/pkg/requestcontext"
	"motorhub/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  *chi.Mux
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func withOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithUserID(r.Context(), testutil.TestIDs.UserID1)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	s.router.Use(withOwner)
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestListWithLimit() {
	s.service.EXPECT().List(gomock.Any(), testutil.TestIDs.UserID1, 2).
		Return([]models.Entry{{ID: "a", Kind: models.KindReceived}, {ID: "b", Kind: models.KindOpened}}, nil)

	w := s.do(http.MethodGet, "/notifications/log?limit=2", "")
	s.Require().Equal(http.StatusOK, w.Code)

	var resp models.LogResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal(2, resp.Count)
	s.Equal("a", resp.Entries[0].ID)
}

func (s *HandlerSuite) TestListRejectsBadLimit() {
	for _, q := range []string{"0", "-1", "ten"} {
		w := s.do(http.MethodGet, "/notifications/log?limit="+q, "")
		s.Equal(http.StatusBadRequest, w.Code, q)
	}
}

func (s *HandlerSuite) TestAppend() {
	s.service.EXPECT().
		Append(gomock.Any(), testutil.TestIDs.UserID1, models.Entry{Kind: models.KindOpened, Title: "Challan paid"}).
		Return(models.Entry{ID: "e1", Kind: models.KindOpened, Title: "Challan paid", At: time.Now()}, nil)

	w := s.do(http.MethodPost, "/notifications/log", `{"kind":" Opened ","title":" Challan paid "}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	var entry models.Entry
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&entry))
	s.Equal("e1", entry.ID)
}

func (s *HandlerSuite) TestAppendValidation() {
	w := s.do(http.MethodPost, "/notifications/log", `{"kind":"permission_granted","title":"x"}`)
	s.Require().Equal(http.StatusBadRequest, w.Code)

	var resp httputil.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Contains(resp.Description, "kind must be one of")

	w = s.do(http.MethodPost, "/notifications/log", `{`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestClear() {
	s.service.EXPECT().Clear(gomock.Any(), testutil.TestIDs.UserID1).Return(nil)
	w := s.do(http.MethodDelete, "/notifications/log", "")
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerSuite) TestStoreUnavailable() {
	s.service.EXPECT().Clear(gomock.Any(), gomock.Any()).
		Return(dErrors.Wrap(errors.New("dial tcp"), dErrors.CodeUnavailable, "notification storage is unavailable"))
	w := s.do(http.MethodDelete, "/notifications/log", "")
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *HandlerSuite) TestPromptConflict() {
	s.service.EXPECT().RecordPrompt(gomock.Any(), testutil.TestIDs.UserID1).
		Return(models.Permission{}, dErrors.New(dErrors.CodeConflict, "notification permission has already been granted"))
	w := s.do(http.MethodPost, "/notifications/permission/prompt", "")
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerSuite) TestDecision() {
	granted := models.Permission{Status: models.PermissionGranted, PromptCount: 1}
	gomock.InOrder(
		s.service.EXPECT().RecordDecision(gomock.Any(), testutil.TestIDs.UserID1, models.PermissionGranted).Return(granted, nil),
		s.service.EXPECT().PromptDecision(gomock.Any(), testutil.TestIDs.UserID1).
			Return(granted, models.PromptDecision{Reason: models.ReasonAlreadyDecided}, nil),
	)

	w := s.do(http.MethodPost, "/notifications/permission/decision", `{"status":"granted"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp models.PermissionResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal(models.PermissionGranted, resp.Permission.Status)
	s.False(resp.Decision.Prompt)
}

func (s *HandlerSuite) TestDecisionValidation() {
	w := s.do(http.MethodPost, "/notifications/permission/decision", `{"status":"maybe"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestMissingOwnerContext() {
	r := chi.NewRouter()
	New(s.service, nil).Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/log", nil))
	s.Equal(http.StatusInternalServerError, w.Code)
}

// TestPromptFlow runs the routes against the real service and store.
func TestPromptFlow(t *testing.T) {
	svc := service.New(store.NewInMemory(), service.WithPromptPolicy(time.Hour, 2))
	r := chi.NewRouter()
	r.Use(withOwner)
	New(svc, nil).Register(r)

	call := func(method, path, body string) models.PermissionResponse {
		t.Helper()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
		if w.Code != http.StatusOK {
			t.Fatalf("%s %s: status %d: %s", method, path, w.Code, w.Body.String())
		}
		var resp models.PermissionResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := call(http.MethodGet, "/notifications/permission", ""); !resp.Decision.Prompt {
		t.Fatalf("expected prompt for a new user, got %+v", resp.Decision)
	}
	resp := call(http.MethodPost, "/notifications/permission/prompt", "")
	if resp.Permission.PromptCount != 1 || resp.Decision.Reason != models.ReasonCooldown {
		t.Fatalf("unexpected state after prompt: %+v", resp)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/log", nil))
	var log models.LogResponse
	if err := json.NewDecoder(w.Body).Decode(&log); err != nil {
		t.Fatal(err)
	}
	if log.Count != 1 || log.Entries[0].Kind != models.KindPermissionRequested {
		t.Fatalf("expected one permission_requested entry, got %+v", log)
	}
}
