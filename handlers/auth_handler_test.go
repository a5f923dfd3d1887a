package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmartsolutions/bookstore-api/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAuthenticator is a mock implementation of CredentialAuthenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (*auth.Principal, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Principal), args.Error(1)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(principal *auth.Principal) (string, error) {
	args := m.Called(principal)
	return args.String(0), args.Error(1)
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/Auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Login(w, req)
	return w
}

func TestLogin(t *testing.T) {
	logger := zap.NewNop()

	t.Run("valid credentials return 200 with a token", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		issuer := new(MockTokenIssuer)
		h := NewAuthHandler(authenticator, issuer, logger)

		principal := &auth.Principal{Subject: "User1", Roles: []string{"Admin"}}
		authenticator.On("Authenticate", mock.Anything, "User1", "admin123").Return(principal, nil)
		issuer.On("Issue", principal).Return("signed.jwt.token", nil)

		w := postLogin(t, h, `{"username":"User1","password":"admin123"}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "signed.jwt.token", resp.Token)
		authenticator.AssertExpectations(t)
		issuer.AssertExpectations(t)
	})

	t.Run("invalid credentials return 401 with the generic message", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		issuer := new(MockTokenIssuer)
		h := NewAuthHandler(authenticator, issuer, logger)

		authenticator.On("Authenticate", mock.Anything, "User1", "wrong").
			Return(nil, auth.ErrInvalidCredentials)

		w := postLogin(t, h, `{"username":"User1","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username or password", strings.TrimSpace(w.Body.String()))
		issuer.AssertNotCalled(t, "Issue")
	})

	t.Run("missing username or password returns 400", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		issuer := new(MockTokenIssuer)
		h := NewAuthHandler(authenticator, issuer, logger)

		for _, body := range []string{
			`{"username":"User1"}`,
			`{"password":"admin123"}`,
			`{}`,
		} {
			w := postLogin(t, h, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		}
		authenticator.AssertNotCalled(t, "Authenticate")
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		issuer := new(MockTokenIssuer)
		h := NewAuthHandler(authenticator, issuer, logger)

		w := postLogin(t, h, `{"username":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure returns 500 without leaking the cause", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		issuer := new(MockTokenIssuer)
		h := NewAuthHandler(authenticator, issuer, logger)

		authenticator.On("Authenticate", mock.Anything, "User1", "admin123").
			Return(nil, errors.New("connection refused"))

		w := postLogin(t, h, `{"username":"User1","password":"admin123"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("issuance failure returns 500", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		issuer := new(MockTokenIssuer)
		h := NewAuthHandler(authenticator, issuer, logger)

		principal := &auth.Principal{Subject: "User1", Roles: []string{"Admin"}}
		authenticator.On("Authenticate", mock.Anything, "User1", "admin123").Return(principal, nil)
		issuer.On("Issue", principal).Return("", errors.New("key unavailable"))

		w := postLogin(t, h, `{"username":"User1","password":"admin123"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
