package docs

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
)

const swaggerUIPage = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: "%s", dom_id: "#swagger-ui" });
  </script>
</body>
</html>`

// Handler serves the API document and its Swagger UI page.
type Handler struct {
	spec *openapi3.T
}

// NewHandler creates a Handler for spec.
func NewHandler(spec *openapi3.T) *Handler {
	return &Handler{spec: spec}
}

// RegisterRoutes mounts GET /docs and GET /docs/openapi.json.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	docRoutes := router.Group("/docs")
	docRoutes.Get("/", h.HandleUI)
	docRoutes.Get("/openapi.json", h.HandleSpec)
}

// HandleUI renders the Swagger UI page.
func (h *Handler) HandleUI(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(fmt.Sprintf(swaggerUIPage, h.spec.Info.Title, "/docs/openapi.json"))
}

// HandleSpec returns the OpenAPI document.
func (h *Handler) HandleSpec(c *fiber.Ctx) error {
	return c.JSON(h.spec)
}
