// Package openapi serves Swagger UI for the generated OpenAPI 3.1 document
// and renders that document for offline use.
package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
)

// SpecPath is where the huma adapter serves the JSON document.
const SpecPath = "/openapi.json"

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>asc-iap API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "` + SpecPath + `",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`

// RegisterRoutes adds Swagger UI endpoints to the Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/swagger/index.html", serveUI)
	e.GET("/swagger", redirectToUI)
	e.GET("/swagger/", redirectToUI)
}

func serveUI(c echo.Context) error {
	return c.HTML(http.StatusOK, swaggerUIHTML)
}

func redirectToUI(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
}

// Render returns the OpenAPI document of api as "json" or "yaml".
func Render(api huma.API, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(api.OpenAPI(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling openapi document: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := api.OpenAPI().YAML()
		if err != nil {
			return nil, fmt.Errorf("marshaling openapi document: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown openapi format %q (want json or yaml)", format)
	}
}
