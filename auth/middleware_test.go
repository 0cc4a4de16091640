package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beneficiarydesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func validToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := GenerateToken(&models.AppUser{
		ID:    "u1",
		Email: "staff@example.com",
		Role:  role,
	}, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestMiddleware_MissingAuthorization(t *testing.T) {
	a := NewAuthenticator(testSecret)

	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/api/beneficiaries", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Authorization missing"}`, rec.Body.String())
}

func TestMiddleware_MalformedAuthorizationHeader(t *testing.T) {
	a := NewAuthenticator(testSecret)

	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"token scheme", `Token token="xyz"`},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bare token", validToken(t, "admin")},
		{"empty bearer", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/beneficiaries", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMiddleware_InvalidOrExpiredToken(t *testing.T) {
	a := NewAuthenticator(testSecret)

	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	expired, err := GenerateToken(&models.AppUser{ID: "u1", Role: "staff"}, testSecret, -time.Minute)
	require.NoError(t, err)
	foreign, err := GenerateToken(&models.AppUser{ID: "u1", Role: "staff"}, []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong secret", foreign},
		{"garbage", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/beneficiaries", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"success":false,"message":"Invalid or expired token"}`, rec.Body.String())
		})
	}
}

func TestMiddleware_SetsIdentity(t *testing.T) {
	a := NewAuthenticator(testSecret)

	var got *Identity
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIdentity(r.Context())
		require.True(t, ok)
		got = id
	}))

	req := httptest.NewRequest("GET", "/api/beneficiaries", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t, "STAFF"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "staff@example.com", got.Email)
	assert.Equal(t, "staff", got.Role, "role claim must come out normalized")
}

func TestRequireRoles(t *testing.T) {
	a := NewAuthenticator(testSecret)

	tests := []struct {
		name     string
		role     string
		allowed  []string
		expected int
	}{
		{"exact match", "admin", []string{"admin"}, http.StatusOK},
		{"one of several", "receptionist", []string{"admin", "receptionist"}, http.StatusOK},
		{"wrong role", "staff", []string{"admin"}, http.StatusForbidden},
		{"mixed case gate", "staff", []string{"Staff", "ADMIN"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := a.Middleware(RequireRoles(tt.allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})))

			req := httptest.NewRequest("PUT", "/api/beneficiaries/1", nil)
			req.Header.Set("Authorization", "Bearer "+validToken(t, tt.role))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
			assert.Equal(t, tt.expected == http.StatusOK, called)
		})
	}
}

func TestRequireRoles_NoIdentity(t *testing.T) {
	// RequireRoles without the authenticator in front treats the request as
	// unauthenticated, not forbidden.
	handler := RequireRoles("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/api/users", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
