package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/moodlog/api/internal/config"
	"github.com/moodlog/api/internal/handlers"
	"github.com/moodlog/api/internal/middleware"
	"github.com/moodlog/api/internal/models"
	"github.com/moodlog/api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp creates an in-memory SQLite database and a Fiber app with the
// full API routing, mirroring cmd/server.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Mood{},
		&models.Activity{},
		&models.Entry{},
		&models.EntryActivity{},
		&models.EntryImage{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	services.InitSessionSecret("handler-test-secret")

	cfg := &config.Config{
		DBType:        "sqlite",
		DBDatabase:    ":memory:",
		SessionDomain: "localhost",
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})

	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	catalogHandler := &handlers.CatalogHandler{DB: db}
	entryHandler := &handlers.EntryHandler{DB: db}

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/auth", authHandler.Login)
	api.Delete("/auth", middleware.AuthRequired(), authHandler.Logout)
	api.Get("/auth", middleware.AuthOptional(), authHandler.Me)
	api.Post("/mood", middleware.AuthRequired(), catalogHandler.CreateMood)
	api.Get("/mood", middleware.AuthRequired(), catalogHandler.ListMoods)
	api.Post("/activity", middleware.AuthRequired(), catalogHandler.CreateActivity)
	api.Get("/activity", middleware.AuthRequired(), catalogHandler.ListActivities)
	api.Post("/entry", middleware.AuthRequired(), entryHandler.CreateEntry)
	api.Get("/entry", middleware.AuthRequired(), entryHandler.ListEntries)
	api.Get("/entry/:id", middleware.AuthRequired(), entryHandler.GetEntryByID)

	return app, db
}

// doJSON performs a JSON request against the app, attaching the session
// cookie when non-empty.
func doJSON(t *testing.T, app *fiber.App, method, path, cookie string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	resp.Body.Close()
}

// registerAndLogin creates an account and returns its session cookie value.
func registerAndLogin(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/register", "", map[string]string{
		"email": email, "password": password,
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Register failed with status %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/auth", "", map[string]string{
		"email": email, "password": password,
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Login failed with status %d", resp.StatusCode)
	}
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == services.SessionCookieName && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("Login response did not set a session cookie")
	return ""
}

func TestRegisterLoginMeLogoutFlow(t *testing.T) {
	app, _ := setupTestApp(t)

	// Anonymous identity before login
	resp := doJSON(t, app, "GET", "/api/auth", "", nil)
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	var anon map[string]interface{}
	decodeBody(t, resp, &anon)
	if anon["anonymous"] != true {
		t.Errorf("Expected anonymous marker, got %v", anon)
	}

	cookie := registerAndLogin(t, app, "alice@x.com", "pw1")

	// Identity with session
	resp = doJSON(t, app, "GET", "/api/auth", cookie, nil)
	var me map[string]interface{}
	decodeBody(t, resp, &me)
	if me["email"] != "alice@x.com" {
		t.Errorf("Expected email alice@x.com, got %v", me["email"])
	}

	// Logout clears the cookie
	resp = doJSON(t, app, "DELETE", "/api/auth", cookie, nil)
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	cleared := false
	for _, c := range resp.Cookies() {
		if c.Name == services.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	resp.Body.Close()
	if !cleared {
		t.Error("Expected logout to expire the session cookie")
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	app, _ := setupTestApp(t)

	body := map[string]string{"email": "alice@x.com", "password": "pw1"}
	resp := doJSON(t, app, "POST", "/api/register", "", body)
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/register", "", body)
	if resp.StatusCode != 409 {
		t.Errorf("Expected status 409, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLoginFailureShapeIsUniform(t *testing.T) {
	app, _ := setupTestApp(t)
	registerAndLogin(t, app, "alice@x.com", "pw1")

	resp := doJSON(t, app, "POST", "/api/auth", "", map[string]string{
		"email": "alice@x.com", "password": "wrong",
	})
	var wrongPassword map[string]interface{}
	status1 := resp.StatusCode
	decodeBody(t, resp, &wrongPassword)

	resp = doJSON(t, app, "POST", "/api/auth", "", map[string]string{
		"email": "nobody@x.com", "password": "wrong",
	})
	var unknownEmail map[string]interface{}
	status2 := resp.StatusCode
	decodeBody(t, resp, &unknownEmail)

	if status1 != 401 || status2 != 401 {
		t.Errorf("Expected 401/401, got %d/%d", status1, status2)
	}
	if wrongPassword["message"] != unknownEmail["message"] || wrongPassword["type"] != unknownEmail["type"] {
		t.Errorf("Login failures must be indistinguishable: %v vs %v", wrongPassword, unknownEmail)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app, _ := setupTestApp(t)

	for _, route := range []struct{ method, path string }{
		{"POST", "/api/mood"},
		{"GET", "/api/mood"},
		{"POST", "/api/activity"},
		{"GET", "/api/activity"},
		{"POST", "/api/entry"},
		{"GET", "/api/entry"},
		{"GET", "/api/entry/1"},
		{"DELETE", "/api/auth"},
	} {
		resp := doJSON(t, app, route.method, route.path, "", nil)
		if resp.StatusCode != 401 {
			t.Errorf("%s %s: expected status 401, got %d", route.method, route.path, resp.StatusCode)
		}
		resp.Body.Close()

		resp = doJSON(t, app, route.method, route.path, "garbage-token", nil)
		if resp.StatusCode != 401 {
			t.Errorf("%s %s with bad cookie: expected status 401, got %d", route.method, route.path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestMoodAndActivityRoutes(t *testing.T) {
	app, _ := setupTestApp(t)
	cookie := registerAndLogin(t, app, "alice@x.com", "pw1")

	resp := doJSON(t, app, "POST", "/api/mood", cookie, map[string]interface{}{
		"name": "Happy", "icon": "😀", "value": 5,
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Create mood failed with status %d", resp.StatusCode)
	}
	var mood map[string]interface{}
	decodeBody(t, resp, &mood)
	if mood["name"] != "Happy" || mood["id"] == nil {
		t.Errorf("Unexpected mood response: %v", mood)
	}

	resp = doJSON(t, app, "POST", "/api/mood", cookie, map[string]interface{}{
		"name": "Sad", "icon": "😢", "value": 1,
	})
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/mood", cookie, nil)
	var moods []map[string]interface{}
	decodeBody(t, resp, &moods)
	if len(moods) != 2 || moods[0]["name"] != "Happy" {
		t.Errorf("Expected [Happy, Sad] by value desc, got %v", moods)
	}

	resp = doJSON(t, app, "POST", "/api/activity", cookie, map[string]interface{}{
		"name": "Run", "icon": "🏃",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Create activity failed with status %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/activity", cookie, nil)
	var activities []map[string]interface{}
	decodeBody(t, resp, &activities)
	if len(activities) != 1 || activities[0]["name"] != "Run" {
		t.Errorf("Unexpected activities: %v", activities)
	}
}

func TestEntryRoutes(t *testing.T) {
	app, _ := setupTestApp(t)
	cookie := registerAndLogin(t, app, "alice@x.com", "pw1")

	var mood, activity map[string]interface{}
	resp := doJSON(t, app, "POST", "/api/mood", cookie, map[string]interface{}{
		"name": "Happy", "value": 5,
	})
	decodeBody(t, resp, &mood)
	resp = doJSON(t, app, "POST", "/api/activity", cookie, map[string]interface{}{
		"name": "Run",
	})
	decodeBody(t, resp, &activity)

	resp = doJSON(t, app, "POST", "/api/entry", cookie, map[string]interface{}{
		"mood_id":      mood["id"],
		"desc":         "great morning",
		"activity_ids": []interface{}{activity["id"]},
		"image_urls":   "https://img.example/a.jpg", // single value, not an array
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Create entry failed with status %d", resp.StatusCode)
	}
	var created map[string]interface{}
	decodeBody(t, resp, &created)

	moodObj, _ := created["mood"].(map[string]interface{})
	if moodObj == nil || moodObj["name"] != "Happy" {
		t.Errorf("Expected inlined mood Happy, got %v", created["mood"])
	}
	acts, _ := created["activities"].([]interface{})
	if len(acts) != 1 {
		t.Errorf("Expected one inlined activity, got %v", created["activities"])
	}
	images, _ := created["images"].([]interface{})
	if len(images) != 1 {
		t.Errorf("Expected one image, got %v", created["images"])
	}

	// List
	resp = doJSON(t, app, "GET", "/api/entry", cookie, nil)
	var list []map[string]interface{}
	decodeBody(t, resp, &list)
	if len(list) != 1 {
		t.Fatalf("Expected one entry, got %d", len(list))
	}

	// Get by id
	id := int(created["id"].(float64))
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/entry/%d", id), cookie, nil)
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Unknown id
	resp = doJSON(t, app, "GET", "/api/entry/99999", cookie, nil)
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestEntryOwnershipAcrossUsers(t *testing.T) {
	app, _ := setupTestApp(t)
	aliceCookie := registerAndLogin(t, app, "alice@x.com", "pw1")
	bobCookie := registerAndLogin(t, app, "bob@x.com", "pw2")

	var bobMood map[string]interface{}
	resp := doJSON(t, app, "POST", "/api/mood", bobCookie, map[string]interface{}{
		"name": "BobHappy", "value": 3,
	})
	decodeBody(t, resp, &bobMood)

	var bobEntry map[string]interface{}
	resp = doJSON(t, app, "POST", "/api/entry", bobCookie, map[string]interface{}{
		"mood_id": bobMood["id"],
	})
	decodeBody(t, resp, &bobEntry)

	// Alice cannot read Bob's entry
	id := int(bobEntry["id"].(float64))
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/entry/%d", id), aliceCookie, nil)
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for foreign entry, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Alice cannot reference Bob's mood
	resp = doJSON(t, app, "POST", "/api/entry", aliceCookie, map[string]interface{}{
		"mood_id": bobMood["id"],
	})
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for foreign mood reference, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Alice's listings stay empty
	resp = doJSON(t, app, "GET", "/api/entry", aliceCookie, nil)
	var list []map[string]interface{}
	decodeBody(t, resp, &list)
	if len(list) != 0 {
		t.Errorf("Expected empty list for alice, got %v", list)
	}
}
