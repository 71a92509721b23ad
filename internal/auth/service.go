package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/agonglab/ssgs-web/internal/market"
	"github.com/agonglab/ssgs-web/internal/session"
)

const (
	providerGoogle = "google"
	planFree       = "FREE"
	freeMaxUsage   = 3
)

// ErrBadCredential indicates the Google credential could not be decoded.
var ErrBadCredential = errors.New("auth: invalid credential")

// Service performs the login exchange and session validation against the
// backend. It owns the mapping from backend accounts to session profiles.
type Service struct {
	client *market.Client
	log    *zap.Logger
	now    func() time.Time
}

func NewService(client *market.Client, log *zap.Logger) *Service {
	return &Service{client: client, log: log, now: time.Now}
}

// googleClaims is the subset of the Google ID token we care about. The token
// signature is NOT verified here; the backend owns verification, we only lift
// display fields out of the payload.
type googleClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// DecodeCredential extracts profile claims from a Google ID token without
// verifying its signature.
func DecodeCredential(credential string) (market.GoogleUser, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return market.GoogleUser{}, ErrBadCredential
	}
	var claims googleClaims
	if _, _, err := jwt.NewParser().ParseUnverified(credential, &claims); err != nil {
		return market.GoogleUser{}, fmt.Errorf("%w: %v", ErrBadCredential, err)
	}
	if claims.Subject == "" {
		return market.GoogleUser{}, fmt.Errorf("%w: missing subject", ErrBadCredential)
	}
	return market.GoogleUser{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
		Sub:     claims.Subject,
	}, nil
}

// Login decodes the credential, exchanges it with the backend, and returns
// the profile to persist. A fresh login always starts on the free plan.
func (s *Service) Login(ctx context.Context, credential string) (*session.User, error) {
	gu, err := DecodeCredential(credential)
	if err != nil {
		return nil, err
	}
	if err := s.client.Login(ctx, credential, gu); err != nil {
		return nil, err
	}
	return &session.User{
		ID:         gu.Sub,
		Email:      gu.Email,
		Name:       gu.Name,
		Picture:    gu.Picture,
		Provider:   providerGoogle,
		Plan:       planFree,
		UsageCount: 0,
		MaxUsage:   freeMaxUsage,
		CreatedAt:  s.now().UTC(),
	}, nil
}

// DemoLogin returns a canned profile for trying the product without a Google
// account.
func (s *Service) DemoLogin() *session.User {
	return &session.User{
		ID:         "demo_user",
		Email:      "demo@example.com",
		Name:       "데모 사용자",
		Provider:   "demo",
		Plan:       planFree,
		UsageCount: 0,
		MaxUsage:   freeMaxUsage,
		CreatedAt:  s.now().UTC(),
	}
}

// Validate asks the backend for its view of the current user. Any failure
// means the stored session should be dropped.
func (s *Service) Validate(ctx context.Context, current *session.User) (*session.User, error) {
	acc, err := s.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	refreshed := accountToUser(acc)
	if refreshed.CreatedAt.IsZero() && current != nil {
		refreshed.CreatedAt = current.CreatedAt
	}
	return refreshed, nil
}

// Logout ends the backend session best-effort; local state is cleared by the
// caller regardless.
func (s *Service) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn("backend logout", zap.Error(err))
	}
}

func accountToUser(acc market.Account) *session.User {
	u := &session.User{
		ID:         acc.ID,
		Email:      acc.Email,
		Name:       acc.Name,
		Picture:    acc.Picture,
		Provider:   acc.Provider,
		Plan:       acc.Plan,
		UsageCount: acc.UsageCount,
		MaxUsage:   acc.MaxUsage,
	}
	if u.Provider == "" {
		u.Provider = providerGoogle
	}
	if u.Plan == "" {
		u.Plan = planFree
	}
	if u.MaxUsage == 0 {
		u.MaxUsage = freeMaxUsage
	}
	if ts, err := time.Parse(time.RFC3339, acc.CreatedAt); err == nil {
		u.CreatedAt = ts
	}
	return u
}
