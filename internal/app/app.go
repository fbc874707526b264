package app

import (
	"fmt"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"answerhub/internal/database"
	handlers "answerhub/internal/http/handler"
	"answerhub/internal/http/middleware"
	"answerhub/internal/service"
	"answerhub/internal/storage"
)

// New assembles the Fiber application shared by the standalone server and
// the Lambda entrypoint: global middleware, metrics endpoint, and routes.
func New(mgr *database.Manager, svc service.AnswerService, files storage.FileStore) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Uploads carry no size limit; this only bounds what fasthttp buffers.
		BodyLimit: 1 << 30,
	})

	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, mgr, svc, files)

	return app, nil
}
