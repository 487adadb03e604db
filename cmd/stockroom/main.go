package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer with a friendly JSON body; never leak internals.
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	deps := handlers.NewDeps(db, cfg)

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/media/")
		},
	}))
	app.Use(handlers.TokenGuard(deps.Tokens, deps.UserRepo))

	// ---------- Media ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /media -> %s", mediaDir)

	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- API routes ----------
	api := app.Group("/api/v1")

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	})

	users := api.Group("/users")
	users.Post("/", deps.UserHandler.Register)
	users.Post("/login", loginLimiter, deps.UserHandler.Login)
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

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
