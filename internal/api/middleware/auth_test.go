package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, role string, exp *time.Time) string {
	t.Helper()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "staff-1",
			Issuer:   "ludoteca-identity",
			Audience: jwt.ClaimStrings{"ludoteca-admin"},
		},
		Role: role,
	}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newAuth() *Authenticator {
	return NewAuthenticator(AuthConfig{
		Secret:    secret,
		Issuer:    "ludoteca-identity",
		Audience:  "ludoteca-admin",
		AdminRole: "admin",
	}, nopLogger{})
}

func call(a *Authenticator, header string) (int, string) {
	var subject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = GetAdminID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/daycare", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	a.Auth(next).ServeHTTP(rec, req)
	return rec.Code, subject
}

func TestAuth(t *testing.T) {
	a := newAuth()
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	code, subject := call(a, "Bearer "+sign(t, jwt.SigningMethodHS256, []byte(secret), "admin", &future))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "staff-1", subject)

	cases := map[string]struct {
		header string
		code   int
	}{
		"missing header": {"", http.StatusUnauthorized},
		"not bearer":     {"Basic abc", http.StatusUnauthorized},
		"garbage":        {"Bearer abc.def.ghi", http.StatusUnauthorized},
		"expired":        {"Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), "admin", &past), http.StatusUnauthorized},
		"no expiry":      {"Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), "admin", nil), http.StatusUnauthorized},
		"wrong secret":   {"Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), "admin", &future), http.StatusUnauthorized},
		"wrong alg":      {"Bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), "admin", &future), http.StatusUnauthorized},
		"not admin":      {"Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), "parent", &future), http.StatusForbidden},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, _ := call(a, tc.header)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc", seen)
}
