package domain

import "testing"

func TestCanTransition(t *testing.T) {
	all := []JobStatus{JobPending, JobAccepted, JobInProgress, JobCompleted, JobCancelled}
	allowed := map[[2]JobStatus]bool{
		{JobPending, JobAccepted}:     true,
		{JobPending, JobCancelled}:    true,
		{JobAccepted, JobInProgress}:  true,
		{JobAccepted, JobCancelled}:   true,
		{JobInProgress, JobCompleted}: true,
		{JobInProgress, JobCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]JobStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []JobStatus{JobCompleted, JobCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []JobStatus{JobPending, JobAccepted, JobInProgress} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if JobStatus("paused").Valid() {
		t.Error("unknown status reported valid")
	}
}

func TestRoleSelfService(t *testing.T) {
	if !RoleClient.SelfService() || !RoleHandyman.SelfService() {
		t.Fatal("client and handyman must be self-service roles")
	}
	if RoleAdmin.SelfService() || Role("superuser").SelfService() {
		t.Fatal("admin or unknown role accepted for self-service")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("invalid input", map[string]string{"role": "not allowed", "active": "not allowed"})
	if got := err.Error(); got != "invalid input (active: not allowed; role: not allowed)" {
		t.Fatalf("Error() = %q", got)
	}
	if !IsValidation(err) {
		t.Fatal("IsValidation returned false")
	}
}
