package server

import (
	"strconv"

	"gamedata-worker/core/queue"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultJobsLimit caps the /jobs listing when no limit is given.
const defaultJobsLimit = 50

// New builds the status server. It exposes health, recent job state and
// prometheus metrics; there is no public API surface beyond that.
func New(db *gorm.DB, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Context())
		}
		if err != nil {
			log.Warn("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/jobs", func(c *fiber.Ctx) error {
		limit := defaultJobsLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid limit"})
			}
			limit = parsed
		}

		jobs, err := queue.Recent(c.Context(), db, limit)
		if err != nil {
			log.Error("Failed to list jobs", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list jobs"})
		}

		stats, err := queue.Stats(c.Context(), db)
		if err != nil {
			log.Error("Failed to count jobs", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to count jobs"})
		}

		return c.JSON(fiber.Map{"stats": stats, "jobs": jobs})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}
