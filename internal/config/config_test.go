package config

import (
	"strings"
	"testing"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/pkg/testdb"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantErr   bool
		wantLimit int
		wantMode  string
	}{
		{
			name:      "defaults",
			env:       map[string]string{},
			wantLimit: 10,
			wantMode:  "dev",
		},
		{
			name:      "prod with custom limit",
			env:       map[string]string{"APP_MODE": " prod ", "AUTH_RATE_LIMIT": "25"},
			wantLimit: 25,
			wantMode:  "prod",
		},
		{
			name:      "bad limit falls back",
			env:       map[string]string{"AUTH_RATE_LIMIT": "lots"},
			wantLimit: 10,
			wantMode:  "dev",
		},
		{
			name:    "unknown mode",
			env:     map[string]string{"APP_MODE": "staging"},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"DB_DRIVER": "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"APP_MODE", "AUTH_RATE_LIMIT", "DB_DRIVER"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.AppMode != tt.wantMode {
				t.Errorf("AppMode = %q, want %q", cfg.AppMode, tt.wantMode)
			}
			if cfg.AuthRateLimit != tt.wantLimit {
				t.Errorf("AuthRateLimit = %d, want %d", cfg.AuthRateLimit, tt.wantLimit)
			}
			if cfg.Maintenance.Cron == "" {
				t.Error("maintenance schedule not defaulted")
			}
		})
	}
}

func TestSeederCreatesAdminOnce(t *testing.T) {
	db := testdb.New(t)
	admin := AdminSeedConfig{
		Email:    "Root@FixItHub.app",
		Password: "bootstrap-pass",
		Phone:    "+15551234567",
		FullName: "Root",
	}

	for i := 0; i < 2; i++ {
		if err := NewSeeder(db, admin).Run(); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	var users []models.User
	if err := db.Where("role = ?", "admin").Find(&users).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("admins = %d, want 1", len(users))
	}
	if users[0].Email != "root@fixithub.app" {
		t.Errorf("email = %q, want normalized", users[0].Email)
	}
}

func TestSeederSkipsWithoutSettings(t *testing.T) {
	db := testdb.New(t)
	if err := NewSeeder(db, AdminSeedConfig{}).Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("users = %d, want 0", count)
	}
}

func TestHealthCheck(t *testing.T) {
	if err := HealthCheck(nil); err == nil {
		t.Error("nil database reported healthy")
	}
	if err := HealthCheck(testdb.New(t)); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(DatabaseConfig{
		Host:     "db",
		Port:     "3306",
		User:     "fixit",
		Password: "secret",
		DBName:   "fixithub",
	})

	if !strings.HasPrefix(dsn, "fixit:secret@tcp(db:3306)/fixithub?") {
		t.Errorf("dsn = %q", dsn)
	}
	for _, opt := range []string{"parseTime=True", "loc=UTC", "clientFoundRows=true"} {
		if !strings.Contains(dsn, opt) {
			t.Errorf("dsn %q missing %s", dsn, opt)
		}
	}
	if strings.Contains(dsn, "loc=Local") {
		t.Errorf("dsn %q uses local time", dsn)
	}
}
