package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unihub/portal/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret-value", time.Hour)

	for _, subject := range []string{"alice", "bob.smith", "user@with-symbols_42"} {
		token, err := codec.Issue(subject)
		if err != nil {
			t.Fatalf("issue %q: %v", subject, err)
		}
		got, err := codec.Verify(token)
		if err != nil {
			t.Fatalf("verify %q: %v", subject, err)
		}
		if got != subject {
			t.Fatalf("expected subject %q, got %q", subject, got)
		}
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := NewTokenCodec("test-secret-value", time.Hour).WithClock(fixedClock(issuedAt))

	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := codec.WithClock(fixedClock(issuedAt.Add(59 * time.Minute))).Verify(token); err != nil {
		t.Fatalf("expected token valid before expiry, got %v", err)
	}

	_, err = codec.WithClock(fixedClock(issuedAt.Add(2 * time.Hour))).Verify(token)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
	if !IsExpired(err) {
		t.Fatalf("expected expiry cause, got %v", err)
	}
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	codec := NewTokenCodec("test-secret-value", time.Hour)
	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	// Swap the payload for one naming another subject, keep the old signature.
	forged, err := NewTokenCodec("test-secret-value", time.Hour).Issue("mallory")
	if err != nil {
		t.Fatalf("issue forged: %v", err)
	}
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	if _, err := codec.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	token, err := NewTokenCodec("secret-one-value", time.Hour).Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenCodec("secret-two-value", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenCodec_RejectsGarbageAndOtherAlgorithms(t *testing.T) {
	codec := NewTokenCodec("test-secret-value", time.Hour)

	if _, err := codec.Verify("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := codec.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret-value"))
	if err != nil {
		t.Fatalf("sign HS512: %v", err)
	}
	if _, err := codec.Verify(hs512); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512 with the right secret, got %v", err)
	}
}

func TestTokenCodec_RequiresExpiry(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"}).
		SignedString([]byte("test-secret-value"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenCodec("test-secret-value", time.Hour).Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken without exp, got %v", err)
	}
}

func TestTokenCodec_IssueRejectsEmptySubject(t *testing.T) {
	if _, err := NewTokenCodec("test-secret-value", time.Hour).Issue(""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
