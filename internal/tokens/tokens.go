package tokens

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/scratchboard/dashboard/internal/config"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Authenticator issues and checks admin bearer tokens.
type Authenticator interface {
	Issue(ctx context.Context, subject string) (string, error)
	Verify(ctx context.Context, raw string) error
	Revoke(ctx context.Context, raw string) error
}

// Revocations remembers revoked tokens. *sessions.Blacklist satisfies it.
type Revocations interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// New picks the authenticator for cfg.Admin.AuthMode.
func New(cfg *config.Config, rev Revocations) (Authenticator, error) {
	switch cfg.Admin.AuthMode {
	case config.AuthModeStatic, "":
		return NewStatic(cfg.Admin.Token), nil
	case config.AuthModeJWT:
		return NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, rev), nil
	default:
		return nil, fmt.Errorf("unknown admin auth mode %q", cfg.Admin.AuthMode)
	}
}

// StaticAuthenticator hands out one fixed token and accepts only that.
type StaticAuthenticator struct {
	token string
}

func NewStatic(token string) *StaticAuthenticator {
	return &StaticAuthenticator{token: token}
}

func (s *StaticAuthenticator) Issue(ctx context.Context, subject string) (string, error) {
	return s.token, nil
}

func (s *StaticAuthenticator) Verify(ctx context.Context, raw string) error {
	if raw == "" || subtle.ConstantTimeCompare([]byte(raw), []byte(s.token)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// Revoke is a no-op: the static token stays valid until reconfigured.
func (s *StaticAuthenticator) Revoke(ctx context.Context, raw string) error {
	return nil
}

// JWTAuthenticator issues short-lived HS256 tokens.
type JWTAuthenticator struct {
	secret []byte
	ttl    time.Duration
	rev    Revocations
	now    func() time.Time
}

func NewJWT(secret string, ttl time.Duration, rev Revocations) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), ttl: ttl, rev: rev, now: time.Now}
}

func (a *JWTAuthenticator) Issue(ctx context.Context, subject string) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString(a.secret)
}

func (a *JWTAuthenticator) parse(raw string) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &claims, nil
}

func (a *JWTAuthenticator) Verify(ctx context.Context, raw string) error {
	if _, err := a.parse(raw); err != nil {
		return err
	}
	if a.rev == nil {
		return nil
	}
	revoked, err := a.rev.Contains(ctx, raw)
	if err != nil {
		return fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return fmt.Errorf("%w: revoked", ErrInvalidToken)
	}
	return nil
}

// Revoke blacklists raw for the rest of its lifetime.
func (a *JWTAuthenticator) Revoke(ctx context.Context, raw string) error {
	claims, err := a.parse(raw)
	if err != nil {
		return err
	}
	if a.rev == nil {
		return nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(a.now())
	}
	return a.rev.Add(ctx, raw, ttl)
}
