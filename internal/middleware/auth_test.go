package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveWithAuth(authorization string) *httptest.ResponseRecorder {
	handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// Feature: storefront, Property 8: Admin endpoints reject missing tokens
func TestProperty_ProtectedEndpointsRejectMissingTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests without authorization header are rejected", prop.ForAll(
		func(pathSuffix string, method string) bool {
			handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

			req := httptest.NewRequest(method, "/api/admin/"+pathSuffix, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
		gen.OneConstOf("GET", "POST", "PUT", "DELETE"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: storefront, Property 9: Garbage bearer tokens are rejected
func TestProperty_InvalidTokenFormatRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("invalid token formats are rejected", prop.ForAll(
		func(invalidToken string) bool {
			return serveWithAuth("Bearer "+invalidToken).Code == http.StatusUnauthorized
		},
		gen.AnyString(),
	))

	properties.Property("tokens without Bearer prefix are rejected", prop.ForAll(
		func(token string) bool {
			return serveWithAuth(token).Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAuthMiddleware_ValidTokenPopulatesContext(t *testing.T) {
	token, err := IssueToken(testSecret, "ops@example.com", RoleAdmin, time.Hour)
	require.NoError(t, err)

	var subject, role string
	handler := AuthMiddleware(testSecret, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = GetSubject(r.Context())
		role, _ = GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ops@example.com", subject)
	assert.Equal(t, RoleAdmin, role)
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	expired, err := IssueToken(testSecret, "ops", RoleAdmin, -time.Hour)
	require.NoError(t, err)

	wrongSecret, err := IssueToken("other-secret", "ops", RoleAdmin, time.Hour)
	require.NoError(t, err)

	noRole, err := IssueToken(testSecret, "ops", "", time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		token   string
		message string
	}{
		{name: "expired", token: expired, message: "token expired"},
		{name: "wrong secret", token: wrongSecret, message: "invalid token"},
		{name: "missing role", token: noRole, message: "invalid token claims"},
		{name: "alg none", token: unsigned, message: "invalid token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serveWithAuth("Bearer " + tc.token)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.message)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	logger := zap.NewNop()
	handler := AuthMiddleware(testSecret, logger)(RequireAdmin(logger)(okHandler()))

	testCases := []struct {
		role string
		want int
	}{
		{role: RoleAdmin, want: http.StatusOK},
		{role: "customer", want: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.role, func(t *testing.T) {
			token, err := IssueToken(testSecret, "someone", tc.role, time.Hour)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequireRole_WithoutAuthIsForbidden(t *testing.T) {
	handler := RequireRole([]string{RoleAdmin}, zap.NewNop())(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
