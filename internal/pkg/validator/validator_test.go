package validator

import "testing"

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=client handyman"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
}

func TestStruct(t *testing.T) {
	if errs := Struct(signup{Email: "a@b.co", Password: "12345678", Role: "client", Rating: 3}); errs != nil {
		t.Fatalf("valid struct rejected: %v", errs)
	}

	errs := Struct(signup{Email: "nope", Password: "short", Role: "admin", Rating: 9})
	for _, field := range []string{"email", "password", "role", "rating"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for %q in %v", field, errs)
		}
	}
	if errs["role"] != "Must be one of: client handyman" {
		t.Errorf("role message = %q", errs["role"])
	}
}
