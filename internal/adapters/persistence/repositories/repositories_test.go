package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/core/domain"
	"fixithub/internal/pkg/testdb"

	"gorm.io/gorm"
)

var seq int

func createUser(t *testing.T, db *gorm.DB, role domain.Role) *models.User {
	t.Helper()
	seq++
	user := &models.User{
		Email:    fmt.Sprintf("%s%d@example.com", role, seq),
		FullName: fmt.Sprintf("%s %d", role, seq),
		Phone:    fmt.Sprintf("+1555%06d", seq),
		Password: "x",
		Role:     string(role),
		IsActive: true,
	}
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createJob(t *testing.T, db *gorm.DB, clientID uint) *models.JobRequest {
	t.Helper()
	job := &models.JobRequest{
		ClientID:      clientID,
		Category:      domain.CategoryPlumber,
		Description:   "Leaking sink",
		Location:      "Nairobi",
		PreferredDate: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
		Status:        string(domain.JobPending),
	}
	if err := NewJobRepository(db).Create(context.Background(), job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func createProfile(t *testing.T, db *gorm.DB, handymanID uint) {
	t.Helper()
	profile := &models.HandymanProfile{
		HandymanID:       handymanID,
		Category:         domain.CategoryPlumber,
		SubscriptionPlan: domain.PlanFree,
	}
	if err := NewHandymanProfileRepository(db).Create(context.Background(), profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}
}

// completeJob drives a job through accept, start and complete
func completeJob(t *testing.T, jobs JobRepository, jobID, handymanID uint) {
	t.Helper()
	ctx := context.Background()
	if ok, err := jobs.Accept(ctx, jobID, handymanID); err != nil || !ok {
		t.Fatalf("accept: ok=%v err=%v", ok, err)
	}
	steps := [][2]domain.JobStatus{
		{domain.JobAccepted, domain.JobInProgress},
		{domain.JobInProgress, domain.JobCompleted},
	}
	for _, step := range steps {
		if ok, err := jobs.Transition(ctx, jobID, string(step[0]), string(step[1])); err != nil || !ok {
			t.Fatalf("transition %s -> %s: ok=%v err=%v", step[0], step[1], ok, err)
		}
	}
}

func TestJobAcceptIsConditional(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	jobs := NewJobRepository(db)

	client := createUser(t, db, domain.RoleClient)
	h1 := createUser(t, db, domain.RoleHandyman)
	h2 := createUser(t, db, domain.RoleHandyman)
	job := createJob(t, db, client.ID)

	ok, err := jobs.Accept(ctx, job.ID, h1.ID)
	if err != nil || !ok {
		t.Fatalf("first accept: ok=%v err=%v", ok, err)
	}

	ok, err = jobs.Accept(ctx, job.ID, h2.ID)
	if err != nil {
		t.Fatalf("second accept: %v", err)
	}
	if ok {
		t.Fatal("second accept succeeded on an assigned job")
	}

	got, err := jobs.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HandymanID == nil || *got.HandymanID != h1.ID {
		t.Errorf("handyman = %v, want %d", got.HandymanID, h1.ID)
	}
	if got.Status != string(domain.JobAccepted) {
		t.Errorf("status = %q, want accepted", got.Status)
	}

	if ok, _ := jobs.Accept(ctx, 9999, h1.ID); ok {
		t.Error("accept of a missing job reported success")
	}
}

func TestJobAcceptConcurrent(t *testing.T) {
	db := testdb.New(t)
	jobs := NewJobRepository(db)

	client := createUser(t, db, domain.RoleClient)
	job := createJob(t, db, client.ID)

	const n = 8
	handymen := make([]*models.User, n)
	for i := range handymen {
		handymen[i] = createUser(t, db, domain.RoleHandyman)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for _, h := range handymen {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			ok, err := jobs.Accept(context.Background(), job.ID, id)
			if err != nil {
				t.Errorf("accept: %v", err)
				return
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(h.ID)
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("wins = %d, want exactly 1", wins)
	}
}

func TestTransitionBumpsJobsCompleted(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	jobs := NewJobRepository(db)
	profiles := NewHandymanProfileRepository(db)

	client := createUser(t, db, domain.RoleClient)
	handyman := createUser(t, db, domain.RoleHandyman)
	createProfile(t, db, handyman.ID)
	job := createJob(t, db, client.ID)

	// A stale source status does not move the job
	if ok, err := jobs.Transition(ctx, job.ID, string(domain.JobInProgress), string(domain.JobCompleted)); err != nil || ok {
		t.Fatalf("stale transition: ok=%v err=%v", ok, err)
	}

	completeJob(t, jobs, job.ID, handyman.ID)

	profile, err := profiles.GetByHandymanID(ctx, handyman.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.JobsCompleted != 1 {
		t.Errorf("jobs_completed = %d, want 1", profile.JobsCompleted)
	}
	if profile.Handyman == nil || profile.Handyman.ID != handyman.ID {
		t.Error("profile handyman not preloaded")
	}
}

func TestCreateWithRatingKeepsMean(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	jobs := NewJobRepository(db)
	reviews := NewReviewRepository(db)
	profiles := NewHandymanProfileRepository(db)

	client := createUser(t, db, domain.RoleClient)
	handyman := createUser(t, db, domain.RoleHandyman)
	createProfile(t, db, handyman.ID)

	ratings := []int{5, 3, 4}
	var firstJob uint
	for _, rating := range ratings {
		job := createJob(t, db, client.ID)
		completeJob(t, jobs, job.ID, handyman.ID)
		if firstJob == 0 {
			firstJob = job.ID
		}

		review := &models.Review{JobID: job.ID, ClientID: client.ID, HandymanID: handyman.ID, Rating: rating}
		if err := reviews.CreateWithRating(ctx, review); err != nil {
			t.Fatalf("create review: %v", err)
		}
	}

	// A second review of the same job is rejected and leaves the aggregate alone
	dup := &models.Review{JobID: firstJob, ClientID: client.ID, HandymanID: handyman.ID, Rating: 1}
	if err := reviews.CreateWithRating(ctx, dup); err == nil {
		t.Fatal("duplicate review accepted")
	}

	profile, err := profiles.GetByHandymanID(ctx, handyman.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.RatingCount != 3 {
		t.Errorf("rating_count = %d, want 3", profile.RatingCount)
	}
	if math.Abs(profile.Rating-4.0) > 1e-9 {
		t.Errorf("rating = %v, want 4", profile.Rating)
	}
	if profile.JobsCompleted != 3 {
		t.Errorf("jobs_completed = %d, want 3", profile.JobsCompleted)
	}

	exists, err := reviews.ExistsByJobID(ctx, firstJob)
	if err != nil || !exists {
		t.Errorf("ExistsByJobID = %v, %v", exists, err)
	}
}

func TestDeleteCascade(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	jobs := NewJobRepository(db)

	client := createUser(t, db, domain.RoleClient)
	handyman := createUser(t, db, domain.RoleHandyman)
	createProfile(t, db, handyman.ID)
	job := createJob(t, db, client.ID)
	completeJob(t, jobs, job.ID, handyman.ID)

	review := &models.Review{JobID: job.ID, ClientID: client.ID, HandymanID: handyman.ID, Rating: 5}
	if err := NewReviewRepository(db).CreateWithRating(ctx, review); err != nil {
		t.Fatalf("create review: %v", err)
	}
	if err := NewSMSLogRepository(db).Create(ctx, &models.SMSLog{UserID: handyman.ID, Message: "hi", Phone: handyman.Phone, Status: domain.SMSSent}); err != nil {
		t.Fatalf("create sms: %v", err)
	}

	// Deleting the handyman keeps the client's job but clears the assignment
	if err := users.DeleteCascade(ctx, handyman.ID); err != nil {
		t.Fatalf("delete handyman: %v", err)
	}
	got, err := jobs.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("job after handyman delete: %v", err)
	}
	if got.HandymanID != nil {
		t.Errorf("handyman_id = %d, want NULL", *got.HandymanID)
	}
	if exists, _ := NewReviewRepository(db).ExistsByJobID(ctx, job.ID); exists {
		t.Error("review of deleted handyman survived")
	}
	if exists, _ := NewHandymanProfileRepository(db).ExistsByHandymanID(ctx, handyman.ID); exists {
		t.Error("profile of deleted handyman survived")
	}

	// Deleting the client removes its jobs
	if err := users.DeleteCascade(ctx, client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	if _, err := jobs.GetByID(ctx, job.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("job after client delete: err = %v, want ErrNotFound", err)
	}

	if err := users.DeleteCascade(ctx, client.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestRefreshTokenRevokeOnce(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	tokens := NewRefreshTokenRepository(db)

	user := createUser(t, db, domain.RoleClient)
	live := &models.RefreshToken{UserID: user.ID, TokenHash: "live", ExpiresAt: time.Now().Add(time.Hour)}
	stale := &models.RefreshToken{UserID: user.ID, TokenHash: "stale", ExpiresAt: time.Now().Add(-time.Hour)}
	for _, tok := range []*models.RefreshToken{live, stale} {
		if err := tokens.Create(ctx, tok); err != nil {
			t.Fatalf("create token: %v", err)
		}
	}

	if err := tokens.Revoke(ctx, live.ID); err != nil {
		t.Fatalf("first revoke: %v", err)
	}
	if err := tokens.Revoke(ctx, live.ID); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Errorf("second revoke: err = %v, want ErrTokenRevoked", err)
	}

	got, err := tokens.GetByTokenHash(ctx, "live")
	if err != nil {
		t.Fatalf("get revoked token: %v", err)
	}
	if !got.IsRevoked() {
		t.Error("token not marked revoked")
	}

	purged, err := tokens.DeleteExpired(ctx)
	if err != nil || purged != 1 {
		t.Errorf("DeleteExpired = %d, %v; want 1", purged, err)
	}
}

func TestDeactivateExpiredAds(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	ads := NewJobAdRepository(db)

	handyman := createUser(t, db, domain.RoleHandyman)
	today := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		title string
		end   time.Time
	}{
		{"expired", today.AddDate(0, 0, -1)},
		{"ends today", today},
		{"running", today.AddDate(0, 1, 0)},
	}
	for _, tc := range cases {
		ad := &models.JobAd{
			HandymanID:  handyman.ID,
			Title:       tc.title,
			Description: "ad",
			IsActive:    true,
			StartDate:   today.AddDate(0, -1, 0),
			EndDate:     tc.end,
		}
		if err := ads.Create(ctx, ad); err != nil {
			t.Fatalf("create ad: %v", err)
		}
	}

	n, err := ads.DeactivateExpired(ctx, today)
	if err != nil || n != 1 {
		t.Fatalf("DeactivateExpired = %d, %v; want 1", n, err)
	}

	active, total, err := ads.List(ctx, nil, true, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(active) != 2 {
		t.Errorf("active ads = %d (total %d), want 2", len(active), total)
	}
}

func TestUnchangedUpdatesAreNotMissingRows(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	profiles := NewHandymanProfileRepository(db)

	user := createUser(t, db, domain.RoleHandyman)
	createProfile(t, db, user.ID)
	profile, err := profiles.GetByHandymanID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"reactivate active user", func() error { return users.SetActive(ctx, user.ID, true) }, nil},
		{"unverify unverified profile", func() error { return profiles.SetVerified(ctx, user.ID, false) }, nil},
		{"save unchanged profile", func() error { return profiles.Update(ctx, profile) }, nil},
		{"missing user", func() error { return users.SetActive(ctx, 9999, true) }, domain.ErrNotFound},
		{"missing profile", func() error { return profiles.SetVerified(ctx, 9999, true) }, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
