package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"fixithub/internal/adapters/events"
	"fixithub/internal/adapters/http/middleware"
	"fixithub/internal/config"
	"fixithub/internal/pkg/testdb"

	"github.com/gofiber/fiber/v2"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Detail  string            `json:"detail"`
	Errors  map[string]string `json:"errors"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		AppMode:       "dev",
		AuthRateLimit: 1000,
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Cookie: config.CookieConfig{SameSite: "Lax"},
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, testdb.New(t), cfg, events.NopPublisher{})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env
}

// register signs up an account and returns its access token
func register(t *testing.T, app *fiber.App, email, phone, role string) string {
	t.Helper()
	status, env := do(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"email":     email,
		"full_name": "Test " + role,
		"phone":     phone,
		"password":  "correct-horse",
		"role":      role,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d (%s)", email, status, env.Detail)
	}

	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.AccessToken == "" {
		t.Fatalf("register %s: no access token in %s", email, env.Data)
	}
	return data.AccessToken
}

func TestPublicEndpoints(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"root", http.MethodGet, "/", http.StatusOK},
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"api info", http.MethodGet, "/api/", http.StatusOK},
		{"jobs need auth", http.MethodGet, "/api/job-requests", http.StatusUnauthorized},
		{"me needs auth", http.MethodGet, "/api/me", http.StatusUnauthorized},
		{"dashboard needs auth", http.MethodGet, "/api/dashboard", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, app, tt.method, tt.path, "", nil)
			if status != tt.want {
				t.Fatalf("status = %d, want %d", status, tt.want)
			}
		})
	}
}

func TestInvalidTokenRejected(t *testing.T) {
	app := newTestApp(t)
	status, _ := do(t, app, http.MethodGet, "/api/me", "not-a-jwt", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
}

func TestClientJobFlow(t *testing.T) {
	app := newTestApp(t)
	client := register(t, app, "client@example.com", "+15550000001", "client")
	handyman := register(t, app, "fixer@example.com", "+15550000002", "handyman")

	preferred := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	job := map[string]string{
		"category":        "plumber",
		"job_description": "Kitchen tap drips",
		"job_location":    "Nakuru",
		"preferred_date":  preferred,
	}

	status, env := do(t, app, http.MethodPost, "/api/job-requests", client, job)
	if status != http.StatusCreated {
		t.Fatalf("create job: status %d (%s %v)", status, env.Detail, env.Errors)
	}
	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if created.Status != "pending" {
		t.Errorf("status = %q, want pending", created.Status)
	}

	jobPath := "/api/job-requests/" + strconv.FormatUint(uint64(created.ID), 10)

	if status, _ := do(t, app, http.MethodPost, "/api/job-requests", handyman, job); status != http.StatusForbidden {
		t.Errorf("handyman create: status %d, want 403", status)
	}
	if status, _ := do(t, app, http.MethodPost, jobPath+"/accept", client, nil); status != http.StatusForbidden {
		t.Errorf("client accept: status %d, want 403", status)
	}
	if status, _ := do(t, app, http.MethodPost, jobPath+"/accept", handyman, nil); status != http.StatusOK {
		t.Errorf("handyman accept: status %d, want 200", status)
	}
	if status, _ := do(t, app, http.MethodPost, jobPath+"/accept", handyman, nil); status != http.StatusConflict {
		t.Errorf("second accept: status %d, want 409", status)
	}
	if status, _ := do(t, app, http.MethodPost, jobPath+"/complete", handyman, nil); status != http.StatusBadRequest {
		t.Errorf("complete from accepted: status %d, want 400", status)
	}

	status, env = do(t, app, http.MethodPost, "/api/reviews", client, map[string]any{"job": created.ID, "rating": 5})
	if status != http.StatusBadRequest {
		t.Errorf("review of unfinished job: status %d, want 400 (%s)", status, env.Detail)
	}

	job["preferred_date"] = "02/01/2030"
	status, env = do(t, app, http.MethodPost, "/api/job-requests", client, job)
	if status != http.StatusBadRequest || env.Errors["preferred_date"] == "" {
		t.Errorf("bad date: status %d errors %v", status, env.Errors)
	}
}

func TestAdminRoutesForbidClients(t *testing.T) {
	app := newTestApp(t)
	client := register(t, app, "someone@example.com", "+15550000003", "client")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/sms-logs"},
		{http.MethodGet, "/api/users/all"},
		{http.MethodPost, "/api/users/1/ban"},
		{http.MethodPost, "/api/admin-register"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			status, _ := do(t, app, p.method, p.path, client, nil)
			if status != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", status)
			}
		})
	}

	status, env := do(t, app, http.MethodGet, "/api/me", client, nil)
	if status != http.StatusOK {
		t.Fatalf("me: status %d", status)
	}
	var me struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.User.Email != "someone@example.com" || me.User.Role != "client" {
		t.Errorf("me = %+v", me.User)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	app := newTestApp(t)
	status, _ := do(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"email":     "sneaky@example.com",
		"full_name": "Sneaky",
		"phone":     "+15550000009",
		"password":  "correct-horse",
		"role":      "admin",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}
