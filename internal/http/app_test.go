package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	"stockroom/internal/repos"
)

// newTestApp wires the JSON API exactly as the server does, against an
// in-memory database.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	cfg := config.Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		MediaDir:  t.TempDir(),
	}
	deps := handlers.NewDeps(db, cfg)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(handlers.TokenGuard(deps.Tokens, deps.UserRepo))

	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/", deps.UserHandler.Register)
	users.Post("/login", deps.UserHandler.Login)
	users.Get("/profile", handlers.RequireAuth, deps.UserHandler.Profile)
	users.Put("/profile", handlers.RequireAuth, deps.UserHandler.UpdateProfile)
	users.Delete("/profile", handlers.RequireAuth, deps.UserHandler.DeleteProfile)
	users.Get("/inventories", handlers.RequireAuth, deps.UserHandler.MyInventories)
	users.Get("/products", handlers.RequireAuth, deps.UserHandler.MyProducts)
	users.Get("/", handlers.RequireAuth, deps.UserHandler.List)
	users.Get("/:id", handlers.RequireAuth, deps.UserHandler.Get)
	users.Put("/:id", handlers.RequireAuth, deps.UserHandler.Update)
	users.Put("/:id/password", handlers.RequireAuth, deps.UserHandler.UpdatePassword)

	inventories := api.Group("/inventories", handlers.RequireAuth)
	inventories.Post("/", deps.InventoryHandler.Create)
	inventories.Get("/", deps.InventoryHandler.List)
	inventories.Get("/statistics", deps.InventoryHandler.Statistics)
	inventories.Get("/:id", deps.InventoryHandler.Get)
	inventories.Put("/:id", deps.InventoryHandler.Update)
	inventories.Delete("/:id", deps.InventoryHandler.Delete)

	products := api.Group("/products", handlers.RequireAuth)
	products.Post("/", deps.ProductHandler.Create)
	products.Get("/", deps.ProductHandler.List)
	products.Get("/statistics", deps.ProductHandler.Statistics)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Put("/:id", deps.ProductHandler.Update)
	products.Delete("/:id", deps.ProductHandler.Delete)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
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
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

// registerAndLogin creates a user through the API and returns its token.
func registerAndLogin(t *testing.T, app *fiber.App, username, email string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/v1/users", "", fiber.Map{
		"username": username,
		"email":    email,
		"password": "Passw0rd!",
		"name":     "Test User",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/v1/users/login", "", fiber.Map{
		"email":    email,
		"password": "Passw0rd!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	if out.Token == "" {
		t.Fatal("login returned no token")
	}
	return out.Token
}
