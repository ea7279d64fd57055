// Package policy decides whether a principal may perform an action.
//
// The role table is static and enumerable; object-level rules are applied on
// top of it whenever the caller supplies the resource being acted on. A role
// grant is necessary but never sufficient once a resource is known.
package policy

import "fixithub/internal/core/domain"

// Action names an operation gated by the policy
type Action string

const (
	CreateJob       Action = "job:create"
	AcceptJob       Action = "job:accept"
	ListJobs        Action = "job:list"
	ViewJob         Action = "job:view"
	BrowseOpenJobs  Action = "job:browse_open"
	StartJob        Action = "job:start"
	CompleteJob     Action = "job:complete"
	CancelJob       Action = "job:cancel"
	PostReview      Action = "review:create"
	ViewReviews     Action = "review:list"
	CreateProfile   Action = "profile:create"
	EditProfile     Action = "profile:edit"
	VerifyProfile   Action = "profile:verify"
	ViewProfiles    Action = "profile:list"
	CreateJobAd     Action = "ad:create"
	EditJobAd       Action = "ad:edit"
	ViewJobAds      Action = "ad:list"
	CreatePayment   Action = "payment:create"
	ViewPayment     Action = "payment:view"
	SetPaymentState Action = "payment:set_status"
	ManageAccounts  Action = "account:manage"
	DeactivateUser  Action = "account:deactivate"
	RegisterAdmin   Action = "account:register_admin"
	ViewSMSLogs     Action = "sms:list"
	ViewDashboard   Action = "dashboard:view"
)

// Decision is the outcome of an authorization check
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Resource describes the record an action targets. Zero fields mean "not
// applicable"; callers fill in what the action needs.
type Resource struct {
	OwnerID    uint             // client of a job, owner of an ad/payment/profile, or the account itself
	AssigneeID *uint            // handyman assigned to a job
	JobStatus  domain.JobStatus // current job status
	Role       domain.Role      // role of a target account
}

var table = map[domain.Role]map[Action]bool{
	domain.RoleClient: {
		CreateJob:     true,
		ListJobs:      true,
		ViewJob:       true,
		CancelJob:     true,
		PostReview:    true,
		ViewReviews:   true,
		ViewProfiles:  true,
		ViewJobAds:    true,
		CreatePayment: true,
		ViewPayment:   true,
	},
	domain.RoleHandyman: {
		AcceptJob:      true,
		ListJobs:       true,
		ViewJob:        true,
		BrowseOpenJobs: true,
		StartJob:       true,
		CompleteJob:    true,
		CancelJob:      true,
		ViewReviews:    true,
		CreateProfile:  true,
		EditProfile:    true,
		ViewProfiles:   true,
		CreateJobAd:    true,
		EditJobAd:      true,
		ViewJobAds:     true,
		CreatePayment:  true,
		ViewPayment:    true,
	},
	domain.RoleAdmin: {
		ListJobs:        true,
		ViewJob:         true,
		BrowseOpenJobs:  true,
		StartJob:        true,
		CompleteJob:     true,
		CancelJob:       true,
		ViewReviews:     true,
		EditProfile:     true,
		VerifyProfile:   true,
		ViewProfiles:    true,
		EditJobAd:       true,
		ViewJobAds:      true,
		CreatePayment:   true,
		ViewPayment:     true,
		SetPaymentState: true,
		ManageAccounts:  true,
		DeactivateUser:  true,
		RegisterAdmin:   true,
		ViewSMSLogs:     true,
		ViewDashboard:   true,
	},
}

// Actions returns every action known to the policy
func Actions() []Action {
	return []Action{
		CreateJob, AcceptJob, ListJobs, ViewJob, BrowseOpenJobs, StartJob, CompleteJob, CancelJob,
		PostReview, ViewReviews, CreateProfile, EditProfile, VerifyProfile, ViewProfiles,
		CreateJobAd, EditJobAd, ViewJobAds, CreatePayment, ViewPayment, SetPaymentState,
		ManageAccounts, DeactivateUser, RegisterAdmin, ViewSMSLogs, ViewDashboard,
	}
}

// RoleAllows reports the role-table entry alone
func RoleAllows(role domain.Role, action Action) bool {
	return table[role][action]
}

// Authorize decides whether p may perform action on r. A nil resource
// evaluates the role table only.
func Authorize(p domain.Principal, action Action, r *Resource) Decision {
	if !RoleAllows(p.Role, action) {
		return Deny
	}
	if r == nil {
		return Allow
	}
	return Decision(objectAllows(p, action, r))
}

// Can is Authorize as a bool
func Can(p domain.Principal, action Action, r *Resource) bool {
	return Authorize(p, action, r) == Allow
}

func objectAllows(p domain.Principal, action Action, r *Resource) bool {
	switch action {
	case CreateJob, PostReview, CreatePayment, CreateProfile, CreateJobAd:
		return r.OwnerID == p.ID

	case AcceptJob:
		return r.AssigneeID == nil && r.JobStatus == domain.JobPending

	case ViewJob:
		switch p.Role {
		case domain.RoleAdmin:
			return true
		case domain.RoleClient:
			return r.OwnerID == p.ID
		case domain.RoleHandyman:
			if isAssignee(p, r) {
				return true
			}
			return r.AssigneeID == nil && r.JobStatus == domain.JobPending
		}
		return false

	case StartJob, CompleteJob:
		return p.IsAdmin() || isAssignee(p, r)

	case CancelJob:
		switch p.Role {
		case domain.RoleAdmin:
			return true
		case domain.RoleClient:
			return r.OwnerID == p.ID
		case domain.RoleHandyman:
			return isAssignee(p, r)
		}
		return false

	case EditProfile, EditJobAd, ViewPayment:
		return p.IsAdmin() || r.OwnerID == p.ID

	case DeactivateUser:
		return r.Role != domain.RoleAdmin
	}

	// Remaining actions have no object-level rule beyond the role grant
	return true
}

func isAssignee(p domain.Principal, r *Resource) bool {
	return r.AssigneeID != nil && *r.AssigneeID == p.ID
}
