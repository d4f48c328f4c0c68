// Package service contains application services for authentication and
// the per-user record resources.
package service

import (
	"context"
	"fmt"
	"time"

	pkgcrypto "github.com/avolkov/fittrack/internal/crypto"
	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/limiter"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/avolkov/fittrack/internal/repository"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService defines account registration and authentication.
type AuthService interface {
	// Register creates a new account and issues an access token for it.
	Register(ctx context.Context, username, email, password string) (model.Tokens, uuid.UUID, error)
	// Login applies rate limiting and authenticates the user.
	Login(ctx context.Context, username, password, ip string) (model.Tokens, uuid.UUID, error)
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	signKey  []byte
	tokenTTL time.Duration
	lim      limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, tokenTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, signKey: signKey, tokenTTL: tokenTTL, lim: lim}
}

// Register creates a new user with a fresh per-user salt and issues a token.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (model.Tokens, uuid.UUID, error) {
	if username == "" || email == "" || password == "" {
		return model.Tokens{}, uuid.Nil, fmt.Errorf("%w: username, email and password are required", errs.ErrValidation)
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return model.Tokens{}, uuid.Nil, err
	}
	salt, err := pkgcrypto.NewSalt()
	if err != nil {
		return model.Tokens{}, uuid.Nil, err
	}

	u := &model.User{
		ID:       uid,
		Username: username,
		Email:    email,
		PwdHash:  pkgcrypto.HashPassword([]byte(password), salt),
		SaltAuth: salt,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return model.Tokens{}, uuid.Nil, err
	}

	tok, err := s.issueAccessToken(uid)
	if err != nil {
		return model.Tokens{}, uuid.Nil, err
	}
	return tok, uid, nil
}

// Login authenticates with rate limiting by (username, ip).
func (s *AuthServiceImpl) Login(ctx context.Context, username, password, ip string) (model.Tokens, uuid.UUID, error) {
	if username == "" || password == "" {
		return model.Tokens{}, uuid.Nil, fmt.Errorf("%w: username and password are required", errs.ErrValidation)
	}
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, username, ipHash)
	if err != nil {
		return model.Tokens{}, uuid.Nil, err
	}
	if !allowed {
		return model.Tokens{}, uuid.Nil, errs.ErrRateLimited
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		// record failure; lock may engage at the threshold
		if locked, _, ferr := s.lim.Failure(ctx, username, ipHash); ferr == nil && locked {
			return model.Tokens{}, uuid.Nil, errs.ErrRateLimited
		}
		// unknown user and wrong password are indistinguishable
		return model.Tokens{}, uuid.Nil, fmt.Errorf("%w: invalid username or password", errs.ErrUnauthorized)
	}

	// reset counters (best-effort)
	_ = s.lim.Success(ctx, username, ipHash)

	tok, err := s.issueAccessToken(u.ID)
	if err != nil {
		return model.Tokens{}, uuid.Nil, err
	}
	return tok, u.ID, nil
}

// issueAccessToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueAccessToken(userID uuid.UUID) (model.Tokens, error) {
	now := time.Now()
	exp := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: signed, ExpiresAt: exp}, nil
}
