package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hellodemo/internal/service"
)

// Routes carries the explicitly wired dependencies of the HTTP layer.
// A nil Hello leaves /hello/hello unregistered; a nil Metrics leaves /metrics out.
type Routes struct {
	DB         *sql.DB
	Hello      service.HelloService
	Metrics    prometheus.Gatherer
	Components func() []string
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, r Routes) {
	app.Get("/health", HealthCheck(r.DB))
	app.Get("/healthz", LivenessProbe())

	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.Metrics, promhttp.HandlerOpts{})))
	}
	if r.Components != nil {
		app.Get("/components", ListComponents(r.Components))
	}
	if r.Hello != nil {
		hello := app.Group("/hello")
		hello.Get("/hello", Hello(r.Hello))
	}
}

// Hello godoc
// @Summary Greeting with the temp_table count for uid 2
// @Produce plain
// @Success 200 {string} string "hello2"
// @Failure 500 {object} errorPayload
// @Router /hello/hello [get]
func Hello(svc service.HelloService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := svc.Hello(c.UserContext())
		if err != nil {
			// Rendered as 500 INTERNAL_ERROR by ErrorHandler
			return err
		}
		return c.SendString(body)
	}
}

// HealthCheck godoc
// @Summary Readiness probe; pings the database
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return fiber.ErrServiceUnavailable
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return fiber.ErrServiceUnavailable
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListComponents godoc
// @Summary Names of the registered application components, in registration order
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /components [get]
func ListComponents(names func() []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"components": names()})
	}
}
