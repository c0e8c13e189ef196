package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-api/internal/core/domain"
	"github.com/taskhive/task-api/internal/core/token"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func (r *stubUserRepo) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func gateFixture(t *testing.T) (*echo.Echo, *token.Codec, *stubUserRepo) {
	t.Helper()
	e := echo.New()
	codec := token.NewCodec("gate-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "alice@x.com", Username: "alice", PasswordHash: "digest"},
	}}
	return e, codec, repo
}

func runGate(e *echo.Echo, codec *token.Codec, repo *stubUserRepo, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(codec, repo)(next)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	e, codec, repo := gateFixture(t)

	tok, err := codec.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	called := false
	rec := runGate(e, codec, repo, "Bearer "+tok, func(c echo.Context) error {
		called = true
		user := Principal(c)
		if user == nil || user.ID != "user-1" {
			t.Fatalf("principal not attached: %+v", user)
		}
		if user.PasswordHash != "" {
			t.Fatalf("principal carries password digest")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e, codec, repo := gateFixture(t)

	rec := runGate(e, codec, repo, "", func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	e, codec, repo := gateFixture(t)

	rec := runGate(e, codec, repo, "Token abc", func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	e, codec, repo := gateFixture(t)

	rec := runGate(e, codec, repo, "Bearer not-a-token", func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	e, codec, repo := gateFixture(t)

	tok, err := codec.Issue("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec := runGate(e, codec, repo, "Bearer "+tok, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_StoreFailureIsNotUnauthorized(t *testing.T) {
	e, codec, repo := gateFixture(t)
	repo.findErr = errors.New("connection reset")

	tok, err := codec.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec := runGate(e, codec, repo, "Bearer "+tok, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// A store outage must not masquerade as a bad token: the error is
	// propagated for the central handler to log and map to a 500.
	if rec.Code == http.StatusUnauthorized {
		t.Fatalf("store failure reported as 401")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuth_PrincipalDeletedAfterIssuance(t *testing.T) {
	e, codec, repo := gateFixture(t)

	tok, err := codec.Issue("user-gone", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec := runGate(e, codec, repo, "Bearer "+tok, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
