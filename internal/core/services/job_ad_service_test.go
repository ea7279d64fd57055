package services

import (
	"context"
	"errors"
	"testing"

	"fixithub/internal/core/domain"
)

func day(offset int) string {
	return today().AddDate(0, 0, offset).Format(dateLayout)
}

func (f *fixture) createAd(t *testing.T, handyman domain.Principal) uint {
	t.Helper()
	ad, err := f.ads.Create(context.Background(), handyman, &CreateJobAdInput{
		Title:       "  Same-day plumbing  ",
		Description: "Leaks, taps and geysers",
		StartDate:   day(0),
		EndDate:     day(30),
	})
	if err != nil {
		t.Fatalf("create ad: %v", err)
	}
	if ad.Title != "Same-day plumbing" || !ad.IsActive {
		t.Fatalf("ad = %+v", ad)
	}
	return ad.ID
}

func TestCreateJobAdWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	handyman, _ := f.register(t, domain.RoleHandyman)
	client, _ := f.register(t, domain.RoleClient)

	tests := []struct {
		name       string
		start, end string
		wantField  string
		wantActive bool
	}{
		{"single day", day(0), day(0), "", true},
		{"already over", day(-10), day(-1), "", false},
		{"end before start", day(5), day(4), "end_date", false},
		{"bad start", "05/01/2030", day(4), "start_date", false},
		{"bad end", day(1), "tomorrow", "end_date", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ad, err := f.ads.Create(ctx, handyman, &CreateJobAdInput{
				Title:       "Carpentry",
				Description: "Doors and shelves",
				StartDate:   tt.start,
				EndDate:     tt.end,
			})
			if tt.wantField != "" {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) || ve.Fields[tt.wantField] == "" {
					t.Fatalf("err = %v, want %s ValidationError", err, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if ad.IsActive != tt.wantActive {
				t.Errorf("active = %t, want %t", ad.IsActive, tt.wantActive)
			}
		})
	}

	if _, err := f.ads.Create(ctx, client, &CreateJobAdInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client create: err = %v, want ErrForbidden", err)
	}
	blank := &CreateJobAdInput{Title: "   ", Description: "x", StartDate: day(0), EndDate: day(1)}
	if _, err := f.ads.Create(ctx, handyman, blank); !domain.IsValidation(err) {
		t.Errorf("blank title: err = %v, want ValidationError", err)
	}
}

func TestJobAdOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	owner, _ := f.register(t, domain.RoleHandyman)
	rival, _ := f.register(t, domain.RoleHandyman)
	client, _ := f.register(t, domain.RoleClient)

	id := f.createAd(t, owner)
	title := "Night plumbing"

	for _, actor := range []domain.Principal{rival, client} {
		if _, err := f.ads.Update(ctx, actor, id, &UpdateJobAdInput{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("update by %s %d: err = %v, want ErrForbidden", actor.Role, actor.ID, err)
		}
		if err := f.ads.Delete(ctx, actor, id); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("delete by %s %d: err = %v, want ErrForbidden", actor.Role, actor.ID, err)
		}
	}
	if _, err := f.ads.Update(ctx, owner, 9999, &UpdateJobAdInput{Title: &title}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing ad: err = %v, want ErrNotFound", err)
	}

	early := day(-1)
	if _, err := f.ads.Update(ctx, owner, id, &UpdateJobAdInput{EndDate: &early}); !domain.IsValidation(err) {
		t.Errorf("end before stored start: err = %v, want ValidationError", err)
	}

	updated, err := f.ads.Update(ctx, owner, id, &UpdateJobAdInput{Title: &title})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != title || updated.StartDate != day(0) || updated.EndDate != day(30) {
		t.Errorf("updated = %+v", updated)
	}

	off := false
	if _, err := f.ads.Update(ctx, admin, id, &UpdateJobAdInput{IsActive: &off}); err != nil {
		t.Fatalf("admin update: %v", err)
	}

	lists := []struct {
		name  string
		actor domain.Principal
		mine  bool
		want  int64
	}{
		{"inactive ad hidden from browsing", client, false, 0},
		{"owner still sees own ad", owner, true, 1},
		{"rival has none", rival, true, 0},
	}
	for _, tt := range lists {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.ads.List(ctx, tt.actor, tt.mine, 1, 20)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if resp.Meta.Total != tt.want {
				t.Errorf("total = %d, want %d", resp.Meta.Total, tt.want)
			}
		})
	}

	if err := f.ads.Delete(ctx, owner, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.ads.Delete(ctx, owner, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("delete twice: err = %v, want ErrNotFound", err)
	}
}
