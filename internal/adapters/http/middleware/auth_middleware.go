package middleware

import (
	"errors"
	"strings"

	"fixithub/internal/core/domain"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// principalKey is the Locals key holding the authenticated domain.Principal
const principalKey = "principal"

// PrincipalResolver turns an access token into a principal
type PrincipalResolver interface {
	ResolvePrincipal(accessToken string) (domain.Principal, error)
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(resolver PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Find the token (header first, then cookie)
		accessToken := extractAccessToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, domain.ErrUnauthenticated.Error())
		}

		// 2. Validate token
		principal, err := resolver.ResolvePrincipal(accessToken)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 3. Set principal in context
		c.Locals(principalKey, principal)
		c.Locals("userID", principal.ID)
		c.Locals("role", string(principal.Role))

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			return response.Unauthorized(c, domain.ErrUnauthenticated.Error())
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if principal.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, domain.ErrForbidden.Error())
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// CurrentPrincipal returns the principal set by AuthMiddleware
func CurrentPrincipal(c *fiber.Ctx) (domain.Principal, bool) {
	principal, ok := c.Locals(principalKey).(domain.Principal)
	return principal, ok
}

func extractAccessToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Cookies("access_token")
}
