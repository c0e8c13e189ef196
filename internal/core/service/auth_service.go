package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-api/internal/core/domain"
	"github.com/taskhive/task-api/internal/core/ports"
)

// ErrMissingFields rejects a registration with a blank email, username, or
// password. The handler's validator normally catches this first; the check
// here keeps the service safe when called from other entry points.
var ErrMissingFields = errors.New("email, username and password are required")

// PasswordHasher abstracts the one-way salted digest used for credentials.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

// TokenIssuer abstracts the bearer-token side of the codec. A ttl of 0 means
// the issuer's default.
type TokenIssuer interface {
	Issue(principalID string, ttl time.Duration) (string, error)
}

// LoginLimiter throttles failed login attempts per identifier.
type LoginLimiter interface {
	// Allow reports whether another attempt is permitted right now.
	Allow(ctx context.Context, email string) (bool, error)
	// Failure records a failed attempt.
	Failure(ctx context.Context, email string) error
	// Success resets the counter after a successful login.
	Success(ctx context.Context, email string) error
}

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.UserRepository
	hasher  PasswordHasher
	tokens  TokenIssuer
	limiter LoginLimiter
	log     zerolog.Logger
}

// NewAuthService wires the credential store, hasher, token issuer, and
// optional login limiter (nil disables throttling).
func NewAuthService(repo ports.UserRepository, hasher PasswordHasher, tokens TokenIssuer, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, limiter: limiter, log: log}
}

// Register creates a principal and issues its first token. The user record is
// written only after hashing succeeds, and no token is issued unless the
// write committed, so a failure leaves no partial state behind.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(created.ID, 0)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created.Sanitized(), tok, nil
}

// Login verifies credentials and issues a fresh token. An unknown email and a
// wrong password both return domain.ErrInvalidCredentials so the endpoint
// cannot be used to enumerate registered identifiers.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// Limiter outage fails open: throttling is best-effort.
			s.log.Warn().Err(err).Msg("login limiter unavailable")
		} else if !ok {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Success(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login counter")
		}
	}

	tok, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return tok, user.Sanitized(), nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Failure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
