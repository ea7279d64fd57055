package handlers

import (
	"errors"
	"log"
	"strconv"

	"fixithub/internal/adapters/http/middleware"
	"fixithub/internal/core/domain"
	"fixithub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError translates a domain error into the HTTP error envelope.
// Unknown errors are logged and answered with a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return response.ValidationFailed(c, ve.Message, ve.Fields)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked),
		errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, err.Error())

	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrProtectedAccount),
		errors.Is(err, domain.ErrCannotDeleteSelf),
		errors.Is(err, domain.ErrCannotChangeOwnRole):
		return response.Forbidden(c, err.Error())

	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, domain.ErrDuplicateIdentity),
		errors.Is(err, domain.ErrDuplicateReview),
		errors.Is(err, domain.ErrAlreadyAssigned),
		errors.Is(err, domain.ErrProfileExists):
		return response.Conflict(c, err.Error())

	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrJobNotCompleted),
		errors.Is(err, domain.ErrInvalidRole):
		return response.BadRequest(c, err.Error())
	}

	log.Printf("❌ %s %s failed: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, "Internal server error")
}

// principal returns the authenticated caller set by AuthMiddleware
func principal(c *fiber.Ctx) (domain.Principal, error) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return p, nil
}

// paramID parses a positive numeric route parameter
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError("Invalid "+name, nil)
	}
	return uint(id), nil
}

// queryUint parses an optional numeric query parameter
func queryUint(c *fiber.Ctx, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError("Validation failed", map[string]string{
			name: "Must be a positive integer",
		})
	}
	id := uint(v)
	return &id, nil
}

// queryBool parses an optional boolean query parameter
func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError("Validation failed", map[string]string{
			name: "Must be true or false",
		})
	}
	return &v, nil
}

func invalidBody(c *fiber.Ctx) error {
	return response.BadRequest(c, "Invalid request body")
}
