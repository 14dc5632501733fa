package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("secret", time.Hour)

	raw, err := s.Issue("64f1c0ffee", "ana@example.com", "motorista")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := s.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "64f1c0ffee" || claims.Role != "motorista" || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != Issuer {
		t.Fatalf("expected issuer %s, got %s", Issuer, claims.Issuer)
	}
}

func TestSigner_Expiry(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	issuedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issuedAt }

	raw, err := s.Issue("u1", "", "cliente")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	s.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	if _, err := s.Parse(raw); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	s.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	if _, err := s.Parse(raw); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid after expiry, got %v", err)
	}
}

func TestSigner_RejectsForeignTokens(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	exp := time.Now().Add(time.Hour).Unix()

	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return raw
	}

	cases := map[string]string{
		"wrong secret":   sign(jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"iss": Issuer, "sub": "u1", "role": "cliente", "exp": exp}),
		"wrong issuer":   sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"iss": "someone", "sub": "u1", "role": "cliente", "exp": exp}),
		"no expiry":      sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"iss": Issuer, "sub": "u1", "role": "cliente"}),
		"missing sub":    sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"iss": Issuer, "role": "cliente", "exp": exp}),
		"missing role":   sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"iss": Issuer, "sub": "u1", "exp": exp}),
		"other hs alg":   sign(jwt.SigningMethodHS512, []byte("secret"), jwt.MapClaims{"iss": Issuer, "sub": "u1", "role": "cliente", "exp": exp}),
		"unsigned token": sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"iss": Issuer, "sub": "u1", "role": "cliente", "exp": exp}),
		"garbage":        "not-a-token",
	}

	for name, raw := range cases {
		if _, err := s.Parse(raw); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}
