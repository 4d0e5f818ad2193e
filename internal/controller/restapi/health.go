package restapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger is anything the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func newHealthRoutes(app *fiber.App, db, store Pinger) {
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/readyz", func(ctx *fiber.Ctx) error {
		if err := db.Ping(ctx.UserContext()); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(fiber.Map{"status": "postgres unavailable"})
		}

		if err := store.Ping(ctx.UserContext()); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(fiber.Map{"status": "object storage unavailable"})
		}

		return ctx.JSON(fiber.Map{"status": "ready"})
	})
}
