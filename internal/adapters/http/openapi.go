package http

import (
	"embed"
	"encoding/json"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML embed.FS

var (
	openAPIJSON     []byte
	openAPIJSONOnce sync.Once
	openAPIJSONErr  error
)

// getOpenAPIJSON returns the OpenAPI specification as JSON, converted from
// the embedded YAML on first access and cached.
func getOpenAPIJSON() ([]byte, error) {
	openAPIJSONOnce.Do(func() {
		var data []byte
		data, openAPIJSONErr = openAPIYAML.ReadFile("openapi.yaml")
		if openAPIJSONErr != nil {
			return
		}

		var spec map[string]interface{}
		if openAPIJSONErr = yaml.Unmarshal(data, &spec); openAPIJSONErr != nil {
			return
		}

		openAPIJSON, openAPIJSONErr = json.MarshalIndent(spec, "", "  ")
	})
	return openAPIJSON, openAPIJSONErr
}

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Nimbus API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/openapi.json",
      dom_id: "#swagger-ui",
    });
  </script>
</body>
</html>
`

// handleSwaggerUI serves an interactive documentation page backed by the
// OpenAPI specification.
func (s *Server) handleSwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(swaggerUIPage))
}
