package handler

import (
	"github.com/gofiber/fiber/v2"

	"answerhub/internal/service"
	"answerhub/internal/storage"
)

// RegisterRoutes attaches the HTTP surface to the provided Fiber app.
// All /api routes run behind the EnsureStore gate; health probes and docs do
// not touch the store.
func RegisterRoutes(app *fiber.App, store StoreProbe, svc service.AnswerService, files storage.FileStore) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", EnsureStore(store))
	api.Get("/answers", ListAnswers(svc))
	api.Post("/upload", UploadAnswer(svc))
	api.Delete("/answers/:id", DeleteAnswer(svc))
	api.Get("/uploads/:fileName", ServeUpload(files))
}
