package domain

import "strings"

// Role represents user role in the system
type Role string

const (
	RoleClient   Role = "client"
	RoleHandyman Role = "handyman"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleHandyman, RoleAdmin:
		return true
	}
	return false
}

// SelfService reports whether r may be chosen at public registration
func (r Role) SelfService() bool {
	return r == RoleClient || r == RoleHandyman
}

// Principal is the authenticated identity making a request
type Principal struct {
	ID       uint
	Email    string
	FullName string
	Role     Role
}

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Handyman categories
const (
	CategoryElectrician = "electrician"
	CategoryPlumber     = "plumber"
	CategoryCarpenter   = "carpenter"
	CategoryOther       = "other"
)

// Subscription plans
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Payment purposes
const (
	PurposeJobCommission = "job_commission"
	PurposeSubscription  = "subscription"
	PurposeAdPayment     = "ad_payment"
)

// Payment statuses
const (
	PaymentPending    = "pending"
	PaymentSuccessful = "successful"
	PaymentFailed     = "failed"
)

// SMS statuses
const (
	SMSSent   = "sent"
	SMSFailed = "failed"
)
