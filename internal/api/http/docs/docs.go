// Package docs serves the OpenAPI document and a Swagger UI page for it.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

const SpecPath = "/docs/apispec_1.json"

//go:embed openapi.yaml
var openAPIYAML []byte

const swaggerUI = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Social Graph API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({url: "` + SpecPath + `", dom_id: "#swagger-ui"});
    };
  </script>
</body>
</html>`

type Handler struct {
	spec []byte
}

// New decodes the embedded YAML document once and keeps its JSON form.
func New() (*Handler, error) {
	spec, err := toJSON(openAPIYAML)
	if err != nil {
		return nil, err
	}
	return &Handler{spec: spec}, nil
}

func toJSON(doc []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("parse openapi yaml: %w", err)
	}
	out, err := json.Marshal(normalize(v))
	if err != nil {
		return nil, fmt.Errorf("encode openapi json: %w", err)
	}
	return out, nil
}

// normalize turns non-string mapping keys into strings so the document can
// be encoded as JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/")
	})
	r.GET("/docs/", h.UI)
	r.GET(SpecPath, h.Spec)
}

func (h *Handler) UI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUI))
}

func (h *Handler) Spec(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", h.spec)
}
