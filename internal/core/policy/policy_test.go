package policy

import (
	"testing"

	"fixithub/internal/core/domain"
)

func uintPtr(v uint) *uint { return &v }

var (
	client   = domain.Principal{ID: 1, Role: domain.RoleClient}
	other    = domain.Principal{ID: 2, Role: domain.RoleClient}
	handyman = domain.Principal{ID: 3, Role: domain.RoleHandyman}
	rival    = domain.Principal{ID: 4, Role: domain.RoleHandyman}
	admin    = domain.Principal{ID: 5, Role: domain.RoleAdmin}
)

func TestRoleTable(t *testing.T) {
	tests := []struct {
		action Action
		want   map[domain.Role]bool
	}{
		{CreateJob, map[domain.Role]bool{domain.RoleClient: true}},
		{AcceptJob, map[domain.Role]bool{domain.RoleHandyman: true}},
		{ListJobs, map[domain.Role]bool{domain.RoleClient: true, domain.RoleHandyman: true, domain.RoleAdmin: true}},
		{PostReview, map[domain.Role]bool{domain.RoleClient: true}},
		{CreateProfile, map[domain.Role]bool{domain.RoleHandyman: true}},
		{ManageAccounts, map[domain.Role]bool{domain.RoleAdmin: true}},
		{DeactivateUser, map[domain.Role]bool{domain.RoleAdmin: true}},
		{ViewSMSLogs, map[domain.Role]bool{domain.RoleAdmin: true}},
		{RegisterAdmin, map[domain.Role]bool{domain.RoleAdmin: true}},
		{VerifyProfile, map[domain.Role]bool{domain.RoleAdmin: true}},
	}

	for _, tt := range tests {
		for _, role := range []domain.Role{domain.RoleClient, domain.RoleHandyman, domain.RoleAdmin} {
			if got := RoleAllows(role, tt.action); got != tt.want[role] {
				t.Errorf("RoleAllows(%s, %s) = %v, want %v", role, tt.action, got, tt.want[role])
			}
		}
	}
}

func TestUnknownRoleIsDeniedEverything(t *testing.T) {
	ghost := domain.Principal{ID: 9, Role: domain.Role("superuser")}
	for _, a := range Actions() {
		if Can(ghost, a, nil) {
			t.Errorf("unknown role allowed %s", a)
		}
	}
}

func TestEveryActionHasAGrantee(t *testing.T) {
	for _, a := range Actions() {
		granted := false
		for _, role := range []domain.Role{domain.RoleClient, domain.RoleHandyman, domain.RoleAdmin} {
			granted = granted || RoleAllows(role, a)
		}
		if !granted {
			t.Errorf("action %s is granted to no role", a)
		}
	}
}

func TestJobObjectRules(t *testing.T) {
	pending := &Resource{OwnerID: client.ID, JobStatus: domain.JobPending}
	assigned := &Resource{OwnerID: client.ID, AssigneeID: uintPtr(handyman.ID), JobStatus: domain.JobAccepted}

	tests := []struct {
		name   string
		who    domain.Principal
		action Action
		res    *Resource
		want   bool
	}{
		{"client views own job", client, ViewJob, pending, true},
		{"client cannot view other client's job", other, ViewJob, pending, false},
		{"admin views any job", admin, ViewJob, assigned, true},
		{"handyman views open job", handyman, ViewJob, pending, true},
		{"handyman views assigned job", handyman, ViewJob, assigned, true},
		{"rival cannot view someone else's assigned job", rival, ViewJob, assigned, false},
		{"handyman accepts open job", handyman, AcceptJob, pending, true},
		{"handyman cannot accept assigned job", rival, AcceptJob, assigned, false},
		{"handyman cannot accept non-pending job", handyman, AcceptJob, &Resource{JobStatus: domain.JobCancelled}, false},
		{"client cannot accept", client, AcceptJob, pending, false},
		{"assignee starts job", handyman, StartJob, assigned, true},
		{"rival cannot start job", rival, StartJob, assigned, false},
		{"client cannot complete job", client, CompleteJob, assigned, false},
		{"admin completes job", admin, CompleteJob, assigned, true},
		{"owner cancels job", client, CancelJob, assigned, true},
		{"other client cannot cancel", other, CancelJob, assigned, false},
		{"assignee cancels job", handyman, CancelJob, assigned, true},
		{"rival cannot cancel", rival, CancelJob, assigned, false},
		{"client creates job as self", client, CreateJob, &Resource{OwnerID: client.ID}, true},
		{"client cannot create job for another", client, CreateJob, &Resource{OwnerID: other.ID}, false},
		{"job owner posts review", client, PostReview, &Resource{OwnerID: client.ID}, true},
		{"non-owner cannot post review", other, PostReview, &Resource{OwnerID: client.ID}, false},
		{"handyman cannot post review", handyman, PostReview, &Resource{OwnerID: handyman.ID}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(tt.who, tt.action, tt.res); got != tt.want {
				t.Fatalf("Can = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccountAndOwnershipRules(t *testing.T) {
	if !Can(admin, DeactivateUser, &Resource{Role: domain.RoleClient}) {
		t.Error("admin cannot deactivate a client")
	}
	if Can(admin, DeactivateUser, &Resource{Role: domain.RoleAdmin}) {
		t.Error("admin target must be protected")
	}
	if Can(client, DeactivateUser, &Resource{Role: domain.RoleHandyman}) {
		t.Error("client allowed to deactivate")
	}
	if !Can(handyman, EditJobAd, &Resource{OwnerID: handyman.ID}) {
		t.Error("owner cannot edit own ad")
	}
	if Can(rival, EditJobAd, &Resource{OwnerID: handyman.ID}) {
		t.Error("rival allowed to edit ad")
	}
	if !Can(admin, ViewPayment, &Resource{OwnerID: client.ID}) {
		t.Error("admin cannot view payment")
	}
	if Can(other, ViewPayment, &Resource{OwnerID: client.ID}) {
		t.Error("client allowed to view another client's payment")
	}
}
