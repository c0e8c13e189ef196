package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/task-api/internal/core/domain"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	tok, err := c.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, exp, err := c.Validate(tok)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if id != "user-1" {
		t.Fatalf("principal id = %q, want user-1", id)
	}
	until := time.Until(exp)
	if until <= 50*time.Minute || until > time.Hour {
		t.Fatalf("expiry %v out of expected window", until)
	}
}

func TestCodec_Expired(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	tok, err := c.Issue("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := c.Validate(tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestCodec_TamperedToken(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	tok, err := c.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip one character in every position of the payload segment; each
	// variant must be rejected.
	raw := []byte(tok)
	for i := range raw {
		if raw[i] == '.' {
			continue
		}
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == tok {
			continue
		}
		if _, _, err := c.Validate(string(mutated)); err == nil {
			t.Fatalf("tampered token at byte %d validated", i)
		}
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour)
	verifier := NewCodec("secret-b", time.Hour)

	tok, err := issuer.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := verifier.Validate(tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized across secrets, got %v", err)
	}
}

func TestCodec_RejectsWrongSigningMethod(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	// alg=none token with a valid-looking payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := c.Validate(tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for alg=none, got %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	c := NewCodec("secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, _, err := c.Validate(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("Validate(%q): expected ErrUnauthorized, got %v", tok, err)
		}
	}
}

func TestCodec_DefaultTTL(t *testing.T) {
	c := NewCodec("secret", 0)

	tok, err := c.Issue("user-1", 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, exp, err := c.Validate(tok)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	until := time.Until(exp)
	if until < 6*24*time.Hour || until > 7*24*time.Hour {
		t.Fatalf("default ttl %v, want about 7 days", until)
	}
}
