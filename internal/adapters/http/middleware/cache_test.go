package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestNoCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/me", NoCacheHeaders(), func(c *fiber.Ctx) error { return c.SendString("me") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	want := map[string]string{
		"Cache-Control": "no-store, no-cache, must-revalidate",
		"Pragma":        "no-cache",
		"Expires":       "0",
	}
	for k, v := range want {
		if got := resp.Header.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestPrivateCacheHeaders(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		handler fiber.Handler
		want    string
	}{
		{"successful listing", http.MethodGet, func(c *fiber.Ctx) error { return c.SendString("[]") }, "private, max-age=90"},
		{"error response", http.MethodGet, func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNotFound) }, ""},
		{"write method", http.MethodPost, func(c *fiber.Ctx) error { return c.SendString("ok") }, ""},
		{"handler override", http.MethodGet, func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderCacheControl, "no-store")
			return c.SendString("[]")
		}, "no-store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Add(tt.method, "/ads", PrivateCacheHeaders(90*time.Second), tt.handler)

			resp, err := app.Test(httptest.NewRequest(tt.method, "/ads", nil), -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if got := resp.Header.Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}
