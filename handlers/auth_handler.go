package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cmartsolutions/bookstore-api/auth"
	"github.com/cmartsolutions/bookstore-api/middleware"
	"github.com/cmartsolutions/bookstore-api/utils"
	"go.uber.org/zap"
)

// CredentialAuthenticator validates username/password pairs
type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*auth.Principal, error)
}

// TokenIssuer mints tokens for authenticated principals
type TokenIssuer interface {
	Issue(principal *auth.Principal) (string, error)
}

// LoginRequest is the body of POST /Auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token string `json:"Token"`
}

// AuthHandler handles login requests
type AuthHandler struct {
	authenticator CredentialAuthenticator
	issuer        TokenIssuer
	logger        *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authenticator CredentialAuthenticator, issuer TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		issuer:        issuer,
		logger:        logger,
	}
}

// Login handles POST /Auth/login. Unknown usernames and wrong passwords
// produce the same generic 401 message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteBadRequest(w, "Invalid request body.")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.WriteBadRequest(w, "username and password required")
		return
	}

	principal, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.WriteUnauthorized(w, "Invalid username or password")
			return
		}
		h.logger.Error("authentication failed",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		utils.WriteInternalServerError(w, "An internal error occurred.")
		return
	}

	token, err := h.issuer.Issue(principal)
	if err != nil {
		h.logger.Error("token issuance failed",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		utils.WriteInternalServerError(w, "An internal error occurred.")
		return
	}

	h.logger.Info("login successful", zap.String("subject", principal.Subject))
	_ = utils.WriteOK(w, LoginResponse{Token: token})
}
