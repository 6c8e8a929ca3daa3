package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

func TestPolicy_Requirement(t *testing.T) {
	policy := NewPolicy(DefaultRules())

	tests := []struct {
		name     string
		method   string
		path     string
		want     Requirement
		wantRole domain.Role
	}{
		{name: "login is public", method: http.MethodPost, path: "/api/auth/login", want: Public},
		{name: "signup is public", method: http.MethodPost, path: "/api/auth/signup", want: Public},
		{name: "refresh is public", method: http.MethodPost, path: "/api/auth/refresh", want: Public},
		{name: "health is public", method: http.MethodGet, path: "/health/ready", want: Public},
		{name: "docs are public", method: http.MethodGet, path: "/docs/index.html", want: Public},
		{name: "catalog read is public", method: http.MethodGet, path: "/api/books", want: Public},
		{name: "single book read is public", method: http.MethodGet, path: "/api/books/12", want: Public},
		{name: "book reviews read is public", method: http.MethodGet, path: "/api/books/12/reviews", want: Public},
		{name: "catalog write needs auth", method: http.MethodPost, path: "/api/books", want: AuthenticatedAny},
		{name: "profile needs auth", method: http.MethodGet, path: "/api/users/me", want: AuthenticatedAny},
		{name: "orders need auth", method: http.MethodPost, path: "/api/orders", want: AuthenticatedAny},
		{name: "admin needs role", method: http.MethodGet, path: "/api/admin/users", want: AuthenticatedRole, wantRole: domain.RoleAdmin},
		{name: "admin book write needs role", method: http.MethodPost, path: "/api/admin/books", want: AuthenticatedRole, wantRole: domain.RoleAdmin},
		{name: "unknown route falls back to auth", method: http.MethodGet, path: "/something/else", want: AuthenticatedAny},
		{name: "prefix must match whole segment", method: http.MethodGet, path: "/api/booksellers", want: AuthenticatedAny},
		{name: "admin rule matches regardless of case", method: http.MethodGet, path: "/API/admin/users", want: AuthenticatedRole, wantRole: domain.RoleAdmin},
		{name: "mixed-case admin path", method: http.MethodDelete, path: "/Api/Admin/Books/3", want: AuthenticatedRole, wantRole: domain.RoleAdmin},
		{name: "public catalog read regardless of case", method: http.MethodGet, path: "/API/Books/12", want: Public},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := policy.Requirement(tt.method, tt.path)
			assert.Equal(t, tt.want, rule.Requirement)
			if tt.want == AuthenticatedRole {
				assert.Equal(t, tt.wantRole, rule.Role)
			}
		})
	}
}

func TestPolicy_LongestPrefixWins(t *testing.T) {
	policy := NewPolicy([]Rule{
		{Prefix: "/", Requirement: AuthenticatedAny},
		{Prefix: "/api", Requirement: AuthenticatedRole, Role: domain.RoleAdmin},
		{Prefix: "/api/public", Requirement: Public},
	})

	assert.Equal(t, AuthenticatedAny, policy.Requirement(http.MethodGet, "/else").Requirement)
	assert.Equal(t, AuthenticatedRole, policy.Requirement(http.MethodGet, "/api/private").Requirement)
	assert.Equal(t, Public, policy.Requirement(http.MethodGet, "/api/public/thing").Requirement)
}

func TestPolicy_MethodSpecificBeatsAnyMethod(t *testing.T) {
	policy := NewPolicy([]Rule{
		{Prefix: "/api/things", Requirement: AuthenticatedAny},
		{Method: http.MethodGet, Prefix: "/api/things", Requirement: Public},
	})

	assert.Equal(t, Public, policy.Requirement(http.MethodGet, "/api/things/1").Requirement)
	assert.Equal(t, AuthenticatedAny, policy.Requirement(http.MethodPost, "/api/things").Requirement)
}

func TestPolicy_Exempt(t *testing.T) {
	policy := NewPolicy(DefaultRules())

	assert.True(t, policy.Exempt(http.MethodPost, "/api/auth/login"))
	assert.True(t, policy.Exempt(http.MethodGet, "/api/books/3"))
	assert.False(t, policy.Exempt(http.MethodGet, "/api/orders"))
	assert.False(t, policy.Exempt(http.MethodGet, "/api/admin/stats"))
}
