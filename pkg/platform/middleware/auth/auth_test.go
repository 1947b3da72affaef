package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"motorhub/pkg/requestcontext"
)

const testUserID = "550e8400-e29b-41d4-a716-446655440001"

type MockJWTValidator struct {
	mock.Mock
}

func (m *MockJWTValidator) ValidateToken(tokenString string) (*JWTClaims, error) {
	args := m.Called(tokenString)
	if claims := args.Get(0); claims != nil {
		return claims.(*JWTClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

type captureHandler struct {
	called bool
	ctx    context.Context
}

func (c *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.called = true
	c.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	validator *MockJWTValidator
	next      *captureHandler
	handler   http.Handler
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.validator = new(MockJWTValidator)
	s.next = &captureHandler{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.handler = RequireAuth(s.validator, logger)(s.next)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) serve(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/insurance/state", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) TestValidToken() {
	s.validator.On("ValidateToken", "good").Return(&JWTClaims{UserID: testUserID, JTI: "j1"}, nil)

	w := s.serve("Bearer good")

	s.Equal(http.StatusOK, w.Code)
	s.Require().True(s.next.called)
	s.Equal(testUserID, requestcontext.UserID(s.next.ctx).String())
	s.validator.AssertExpectations(s.T())
}

func (s *AuthMiddlewareTestSuite) TestRejections() {
	s.Run("missing header", func() {
		w := s.serve("")
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Contains(w.Body.String(), "Missing or invalid Authorization header")
	})

	s.Run("wrong scheme", func() {
		w := s.serve("Basic Zm9vOmJhcg==")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("invalid token", func() {
		s.validator.On("ValidateToken", "bad").Return(nil, errors.New("invalid token")).Once()
		w := s.serve("Bearer bad")
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Contains(w.Body.String(), "Invalid or expired token")
	})

	s.Run("subject is not a uuid", func() {
		s.validator.On("ValidateToken", "odd").Return(&JWTClaims{UserID: "alice"}, nil).Once()
		w := s.serve("Bearer odd")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.False(s.next.called)
}
