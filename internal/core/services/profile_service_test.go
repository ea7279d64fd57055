package services

import (
	"context"
	"errors"
	"testing"

	"fixithub/internal/core/domain"
)

func TestProfileUpdateAndVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	owner, _ := f.register(t, domain.RoleHandyman)
	rival, _ := f.register(t, domain.RoleHandyman)
	client, _ := f.register(t, domain.RoleClient)

	if _, err := f.profile.Create(ctx, owner, &CreateProfileInput{Category: domain.CategoryPlumber, ExperienceYears: 2}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if _, err := f.profile.Create(ctx, owner, &CreateProfileInput{Category: domain.CategoryOther}); !errors.Is(err, domain.ErrProfileExists) {
		t.Errorf("second profile: err = %v, want ErrProfileExists", err)
	}

	years := 7
	premium := domain.PlanPremium
	bogus := "astronaut"

	tests := []struct {
		name  string
		actor domain.Principal
		id    uint
		input *UpdateProfileDetailsInput
		want  error
	}{
		{"rival handyman", rival, owner.ID, &UpdateProfileDetailsInput{ExperienceYears: &years}, domain.ErrForbidden},
		{"client", client, owner.ID, &UpdateProfileDetailsInput{ExperienceYears: &years}, domain.ErrForbidden},
		{"missing profile", admin, rival.ID, &UpdateProfileDetailsInput{ExperienceYears: &years}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.profile.Update(ctx, tt.actor, tt.id, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := f.profile.Update(ctx, owner, owner.ID, &UpdateProfileDetailsInput{Category: &bogus}); !domain.IsValidation(err) {
		t.Errorf("unknown category: err = %v, want ValidationError", err)
	}

	updated, err := f.profile.Update(ctx, owner, owner.ID, &UpdateProfileDetailsInput{ExperienceYears: &years})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.ExperienceYears != years || updated.Category != domain.CategoryPlumber {
		t.Errorf("updated = years %d, category %q", updated.ExperienceYears, updated.Category)
	}
	updated, err = f.profile.Update(ctx, admin, owner.ID, &UpdateProfileDetailsInput{SubscriptionPlan: &premium})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.SubscriptionPlan != premium || updated.ExperienceYears != years {
		t.Errorf("updated = plan %q, years %d", updated.SubscriptionPlan, updated.ExperienceYears)
	}
	if _, err := f.profile.Update(ctx, owner, owner.ID, &UpdateProfileDetailsInput{ExperienceYears: &years}); err != nil {
		t.Errorf("unchanged update: %v", err)
	}

	if _, err := f.profile.Verify(ctx, owner, owner.ID, true); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("self verify: err = %v, want ErrForbidden", err)
	}
	if _, err := f.profile.Verify(ctx, admin, rival.ID, true); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("verify missing profile: err = %v, want ErrNotFound", err)
	}
	for i := 0; i < 2; i++ {
		verified, err := f.profile.Verify(ctx, admin, owner.ID, true)
		if err != nil {
			t.Fatalf("verify %d: %v", i, err)
		}
		if !verified.IsVerified {
			t.Errorf("verify %d: profile not verified", i)
		}
	}
}

func TestListProfilesFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	client, _ := f.register(t, domain.RoleClient)

	categories := []string{domain.CategoryPlumber, domain.CategoryPlumber, domain.CategoryCarpenter}
	var first domain.Principal
	for i, category := range categories {
		h, _ := f.register(t, domain.RoleHandyman)
		if _, err := f.profile.Create(ctx, h, &CreateProfileInput{Category: category}); err != nil {
			t.Fatalf("create profile %d: %v", i, err)
		}
		if i == 0 {
			first = h
		}
	}
	if _, err := f.profile.Verify(ctx, admin, first.ID, true); err != nil {
		t.Fatalf("verify: %v", err)
	}

	yes, no := true, false
	tests := []struct {
		name  string
		input *ListProfilesInput
		want  int64
	}{
		{"all", &ListProfilesInput{}, 3},
		{"by category", &ListProfilesInput{Category: domain.CategoryPlumber}, 2},
		{"verified only", &ListProfilesInput{Verified: &yes}, 1},
		{"unverified plumbers", &ListProfilesInput{Category: domain.CategoryPlumber, Verified: &no}, 1},
		{"empty category", &ListProfilesInput{Category: domain.CategoryElectrician}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.profile.List(ctx, client, tt.input)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if resp.Meta.Total != tt.want {
				t.Errorf("total = %d, want %d", resp.Meta.Total, tt.want)
			}
		})
	}

	if _, err := f.profile.Get(ctx, client, first.ID); err != nil {
		t.Errorf("get: %v", err)
	}
}
