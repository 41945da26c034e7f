package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"staffloop/globals"
)

func signedToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	called := false
	h := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		if id, ok := r.Context().Value(globals.UserIDKey).(string); ok {
			t.Fatalf("anonymous request carried user id %q", id)
		}
	})

	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil), nil)
	if !called {
		t.Fatal("handler was not called")
	}
}

func TestOptionalAuthAttachesUser(t *testing.T) {
	h := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id, ok := r.Context().Value(globals.UserIDKey).(string)
		if !ok || id != "u1" {
			t.Fatalf("expected user u1 in context, got %q", id)
		}
	})

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, "u1", time.Hour))
	h(httptest.NewRecorder(), r, nil)
}

func TestValidateJWT(t *testing.T) {
	if _, err := ValidateJWT(""); err == nil {
		t.Fatal("empty header validated")
	}
	if _, err := ValidateJWT("Bearer not-a-token"); err == nil {
		t.Fatal("garbage token validated")
	}
	if _, err := ValidateJWT("Bearer " + signedToken(t, "u1", -time.Hour)); err == nil {
		t.Fatal("expired token validated")
	}

	claims, err := ValidateJWT("Bearer " + signedToken(t, "u1", time.Hour))
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("wrong claims: %+v", claims)
	}
}
