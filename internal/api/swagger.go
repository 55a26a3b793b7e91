package api

import (
	"net/http"

	"github.com/swaggo/swag"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SwaggerUIHandler returns a handler for Swagger UI reading the OpenAPI document from /openapi.json.
func SwaggerUIHandler() http.HandlerFunc {
	return httpSwagger.Handler(httpSwagger.URL("/openapi.json"))
}

// OpenAPISpecHandler serves the registered swagger document.
func OpenAPISpecHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "API documentation unavailable"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	}
}
