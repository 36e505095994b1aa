package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ankit-bind/shared-space-seekers/internal/metrics"
)

func newViewerApp(defaultViewerID string) *fiber.App {
	app := fiber.New()
	app.Use(ViewerSession(defaultViewerID))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	return app
}

func TestViewerSessionUsesDefaultViewer(t *testing.T) {
	resp, err := newViewerApp("current-user").Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "current-user" {
		t.Fatalf("expected current-user, got %q", body)
	}
}

func TestViewerSessionHonoursHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(ViewerHeader, "guest-7")

	resp, err := newViewerApp("current-user").Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "guest-7" {
		t.Fatalf("expected guest-7, got %q", body)
	}
}

func TestViewerSessionRejectsMissingViewer(t *testing.T) {
	resp, err := newViewerApp("").Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequestMetricsCountsByRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMetrics())
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	counter := metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("expected 2 requests counted, got %v", got)
	}
}
