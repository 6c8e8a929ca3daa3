package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookstore-service/internal/domain"
	apperrors "github.com/spec-kit/bookstore-service/pkg/util"
)

// Requirement is what a route demands from the caller.
type Requirement int

const (
	// Public routes pass regardless of identity.
	Public Requirement = iota
	// AuthenticatedAny requires some verified identity, any role.
	AuthenticatedAny
	// AuthenticatedRole requires a verified identity with a specific role.
	AuthenticatedRole
)

// Rule binds a path prefix (optionally qualified by method) to a requirement.
type Rule struct {
	Method      string // empty matches any method
	Prefix      string
	Requirement Requirement
	Role        domain.Role // set only for AuthenticatedRole
}

// Policy is the static route-to-requirement table. Matching is
// longest-prefix-wins so a broad rule ("everything requires auth") can be
// overridden by narrower ones ("GET /api/books is public"). A method-specific
// rule beats an any-method rule of the same prefix length.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from a rule table. The table should contain a
// rule for "/" so the function is total; without one unmatched routes
// default to AuthenticatedAny. Prefixes are stored lowercased because
// matching is case-insensitive.
func NewPolicy(rules []Rule) *Policy {
	normalized := make([]Rule, len(rules))
	for i, rule := range rules {
		rule.Prefix = strings.ToLower(rule.Prefix)
		normalized[i] = rule
	}
	return &Policy{rules: normalized}
}

// DefaultRules is the service's route table.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/", Requirement: AuthenticatedAny},
		{Prefix: "/api/auth", Requirement: Public},
		{Prefix: "/health", Requirement: Public},
		{Prefix: "/docs", Requirement: Public},
		{Method: fiber.MethodGet, Prefix: "/api/books", Requirement: Public},
		{Prefix: "/api/admin", Requirement: AuthenticatedRole, Role: domain.RoleAdmin},
	}
}

// Requirement resolves the rule governing the given method and path. Fiber
// dispatches paths case-insensitively, so the table must match the same way;
// a case-sensitive match would let /API/admin slip past the /api/admin rule
// onto the admin handlers.
func (p *Policy) Requirement(method, path string) Rule {
	path = strings.ToLower(path)

	best := Rule{Prefix: "/", Requirement: AuthenticatedAny}
	bestLen := -1
	bestMethodSpecific := false

	for _, rule := range p.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if !matchPrefix(path, rule.Prefix) {
			continue
		}
		length := len(rule.Prefix)
		methodSpecific := rule.Method != ""
		if length > bestLen || (length == bestLen && methodSpecific && !bestMethodSpecific) {
			best = rule
			bestLen = length
			bestMethodSpecific = methodSpecific
		}
	}
	return best
}

// Exempt reports whether the route needs no authentication at all.
func (p *Policy) Exempt(method, path string) bool {
	return p.Requirement(method, path).Requirement == Public
}

// Enforce is the single place requests are rejected for missing or
// insufficient identity. The gate upstream only classifies; this middleware
// fails closed.
func (p *Policy) Enforce() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule := p.Requirement(c.Method(), c.Path())

		switch rule.Requirement {
		case Public:
			return c.Next()
		case AuthenticatedAny:
			if _, ok := IdentityFromContext(c); !ok {
				return apperrors.NewUnauthorized("authentication required")
			}
			return c.Next()
		case AuthenticatedRole:
			identity, ok := IdentityFromContext(c)
			if !ok {
				return apperrors.NewUnauthorized("authentication required")
			}
			if identity.Role != rule.Role {
				return apperrors.NewForbidden("insufficient role")
			}
			return c.Next()
		default:
			return apperrors.NewUnauthorized("authentication required")
		}
	}
}

func matchPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
