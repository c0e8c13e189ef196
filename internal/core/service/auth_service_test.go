package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/task-api/internal/core/crypto"
	"github.com/taskhive/task-api/internal/core/domain"
	"github.com/taskhive/task-api/internal/core/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "user-" + string(rune('0'+r.nextID))
	r.users[copy.Email] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubLimiter struct {
	allowed  bool
	allowErr error
	failures int
	resets   int
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	return l.allowed, l.allowErr
}

func (l *stubLimiter) Failure(_ context.Context, _ string) error {
	l.failures++
	return nil
}

func (l *stubLimiter) Success(_ context.Context, _ string) error {
	l.resets++
	return nil
}

func newTestAuthService(repo *stubUserRepo, limiter LoginLimiter) (*AuthService, *token.Codec) {
	codec := token.NewCodec("test-secret", time.Hour)
	hasher := crypto.NewHasher(bcrypt.MinCost)
	return NewAuthService(repo, hasher, codec, limiter, zerolog.Nop()), codec
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newTestAuthService(repo, nil)

	user, tok, err := svc.Register(context.Background(), " Alice@X.COM ", "alice", "Secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash != "" {
		t.Fatalf("returned user carries password digest")
	}

	stored := repo.users["alice@x.com"]
	if stored == nil {
		t.Fatalf("user not persisted under normalized email")
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "Secret123" {
		t.Fatalf("stored digest looks wrong: %q", stored.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secret123")); err != nil {
		t.Fatalf("stored digest does not verify: %v", err)
	}

	id, _, err := codec.Validate(tok)
	if err != nil {
		t.Fatalf("registration token invalid: %v", err)
	}
	if id != user.ID {
		t.Fatalf("token principal = %q, want %q", id, user.ID)
	}
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo(), nil)

	cases := [][3]string{
		{"", "alice", "pass"},
		{"a@x.com", "", "pass"},
		{"a@x.com", "alice", ""},
	}
	for _, c := range cases {
		if _, _, err := svc.Register(context.Background(), c[0], c[1], c[2]); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("Register(%q,%q,...): expected ErrMissingFields, got %v", c[0], c[1], err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo(), nil)

	if _, _, err := svc.Register(context.Background(), "bob@x.com", "bob", "pass"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "BOB@X.COM", "bob2", "pass"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for same email, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "other@x.com", "bob", "pass"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for same username, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: true}
	svc, codec := newTestAuthService(repo, limiter)

	if _, _, err := svc.Register(context.Background(), "alice@x.com", "alice", "Secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong-case identifier normalizes to the stored one.
	tok, user, err := svc.Login(context.Background(), "ALICE@X.COM", "Secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token")
	}
	if user == nil || user.Email != "alice@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatalf("login leaked password digest")
	}
	if id, _, err := codec.Validate(tok); err != nil || id != user.ID {
		t.Fatalf("login token invalid: id=%q err=%v", id, err)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset after success, got %d", limiter.resets)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: true}
	svc, _ := newTestAuthService(repo, limiter)

	_, _, _ = svc.Register(context.Background(), "dave@x.com", "dave", "Secret123")

	if _, _, err := svc.Login(context.Background(), "dave@x.com", "Secret124"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", limiter.failures)
	}
}

func TestAuthService_Login_UnknownEmailIsGeneric(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo(), nil)

	_, _, err := svc.Login(context.Background(), "ghost@x.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown email must not surface as user-not-found")
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &stubLimiter{allowed: false})

	_, _, _ = svc.Register(context.Background(), "eve@x.com", "eve", "pass")

	if _, _, err := svc.Login(context.Background(), "eve@x.com", "pass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterOutageFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: false, allowErr: errors.New("redis down")}
	svc, _ := newTestAuthService(repo, limiter)

	_, _, _ = svc.Register(context.Background(), "frank@x.com", "frank", "pass")

	if _, _, err := svc.Login(context.Background(), "frank@x.com", "pass"); err != nil {
		t.Fatalf("expected fail-open login, got %v", err)
	}
}
