package services

import (
	"context"
	"time"

	"fixithub/internal/core/domain"
	"fixithub/internal/core/policy"
	"fixithub/internal/pkg/validator"
)

// EventPublisher delivers domain events to a broker (Redis streams or no-op)
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// dateLayout is the accepted format of date-only input fields
const dateLayout = "2006-01-02"

// authorize turns a policy decision into ErrForbidden
func authorize(p domain.Principal, action policy.Action, r *policy.Resource) error {
	if !policy.Can(p, action, r) {
		return domain.ErrForbidden
	}
	return nil
}

// validateInput runs struct tag validation
func validateInput(input any) error {
	if fields := validator.Struct(input); fields != nil {
		return domain.NewValidationError("Validation failed", fields)
	}
	return nil
}

// parseDate parses a YYYY-MM-DD field as a UTC midnight
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError("Validation failed", map[string]string{
			field: "Date has wrong format. Use YYYY-MM-DD",
		})
	}
	return t, nil
}

// today returns the current local calendar date as a UTC midnight, the same
// representation parseDate produces
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint {
	return &v
}
