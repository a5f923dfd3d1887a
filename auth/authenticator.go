package auth

import (
	"context"
	"errors"

	"github.com/cmartsolutions/bookstore-api/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords. The two cases are intentionally indistinguishable to the
// caller so responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator checks username/password pairs against the user store
type Authenticator struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(users repositories.UserRepository, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		users:  users,
		logger: logger,
	}
}

// Authenticate verifies the credentials and returns the principal for
// the account. The plaintext password exists only for the duration of
// this call and is never logged.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			a.logger.Warn("login attempt for unknown username",
				zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Warn("login attempt with wrong password",
			zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		Subject: user.Username,
		Roles:   user.Roles,
	}, nil
}
