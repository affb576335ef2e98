package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/moodlog/api/internal/handlers"
	"github.com/moodlog/api/internal/middleware"
	"github.com/moodlog/api/internal/services"
)

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()
	services.InitSessionSecret("middleware-test-secret")

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})

	app.Get("/required", middleware.AuthRequired(), func(c *fiber.Ctx) error {
		userID, _ := middleware.UserID(c)
		return c.JSON(fiber.Map{"user_id": userID})
	})
	app.Get("/optional", middleware.AuthOptional(), func(c *fiber.Ctx) error {
		if userID, ok := middleware.UserID(c); ok {
			return c.JSON(fiber.Map{"user_id": userID})
		}
		return c.JSON(fiber.Map{"anonymous": true})
	})

	return app
}

func request(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

func TestAuthRequiredAcceptsValidSession(t *testing.T) {
	app := newAuthTestApp(t)

	token, err := services.IssueToken(7)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	resp := request(t, app, "/required", token)
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestAuthRequiredRejectsMissingAndInvalid(t *testing.T) {
	app := newAuthTestApp(t)

	for _, cookie := range []string{"", "not-a-token", "a.b.c"} {
		resp := request(t, app, "/required", cookie)
		if resp.StatusCode != 401 {
			t.Errorf("Cookie %q: expected status 401, got %d", cookie, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestAuthOptionalPassesAnonymously(t *testing.T) {
	app := newAuthTestApp(t)

	for _, cookie := range []string{"", "not-a-token"} {
		resp := request(t, app, "/optional", cookie)
		if resp.StatusCode != 200 {
			t.Errorf("Cookie %q: expected status 200, got %d", cookie, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestAuthOptionalResolvesValidSession(t *testing.T) {
	app := newAuthTestApp(t)

	token, err := services.IssueToken(9)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	resp := request(t, app, "/optional", token)
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}
