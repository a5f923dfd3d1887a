package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed is returned when the token is structurally invalid
	ErrTokenMalformed = errors.New("token malformed")

	// ErrBadSignature is returned when the token signature does not verify
	ErrBadSignature = errors.New("token signature invalid")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrWrongIssuer is returned when the token issuer does not match
	ErrWrongIssuer = errors.New("token issuer invalid")

	// ErrWrongAudience is returned when the token audience does not match
	ErrWrongAudience = errors.New("token audience invalid")
)

// Claims are the facts baked into issued tokens: subject and roles plus
// the registered issuer/audience/time claims. No credential material is
// ever included.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// TokenConfig holds the process-wide signing parameters. Constructed
// once at startup from configuration and immutable afterwards.
type TokenConfig struct {
	SigningKey []byte
	Issuer     string
	Audience   string
	Lifetime   time.Duration
}

// TokenIssuer produces signed, time-bounded tokens for principals
type TokenIssuer struct {
	cfg TokenConfig
	now func() time.Time
}

// NewTokenIssuer creates a new TokenIssuer
func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	if cfg.Lifetime == 0 {
		cfg.Lifetime = time.Hour
	}
	return &TokenIssuer{
		cfg: cfg,
		now: time.Now,
	}
}

// Issue produces an HS256-signed token encoding the principal's subject
// and roles. Issuance is a pure function of the principal and the clock.
func (i *TokenIssuer) Issue(principal *Principal) (string, error) {
	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Subject,
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.Lifetime)),
		},
		Roles: principal.Roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.cfg.SigningKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// TokenVerifier validates inbound tokens against the configured signing
// key, issuer and audience
type TokenVerifier struct {
	cfg TokenConfig
	now func() time.Time
}

// NewTokenVerifier creates a new TokenVerifier
func NewTokenVerifier(cfg TokenConfig) *TokenVerifier {
	return &TokenVerifier{
		cfg: cfg,
		now: time.Now,
	}
}

// Verify checks, in order: structural well-formedness, signature,
// issuer, audience, expiry. It short-circuits on the first failure and
// returns the matching sentinel; callers surface every variant as the
// same generic authentication failure, the sentinel is for logging only.
func (v *TokenVerifier) Verify(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrTokenMalformed
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.cfg.SigningKey, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}
	if !token.Valid {
		return nil, ErrBadSignature
	}

	// Claim checks run manually so the failure ordering is fixed:
	// issuer, then audience, then expiry.
	if claims.Issuer != v.cfg.Issuer {
		return nil, ErrWrongIssuer
	}
	if !containsAudience(claims.Audience, v.cfg.Audience) {
		return nil, ErrWrongAudience
	}
	if claims.ExpiresAt == nil || !v.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	return &Principal{
		Subject: claims.Subject,
		Roles:   claims.Roles,
	}, nil
}

func containsAudience(audiences jwt.ClaimStrings, expected string) bool {
	for _, aud := range audiences {
		if aud == expected {
			return true
		}
	}
	return false
}
