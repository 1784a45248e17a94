package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewApp(handler SchedulerHandler) *fiber.App {
	app := fiber.New()
	app.Use(logger.New())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Post("/qlearning", handler.QLearning)
		v1.Get("/qlearning/runs/:id/snapshots/:seq", handler.Snapshot)
	}
	return app
}
