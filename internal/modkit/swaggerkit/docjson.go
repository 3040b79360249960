// Package swaggerkit mounts the Swagger UI and the OpenAPI document it renders
package swaggerkit

import "net/http"

// docJSON is hand-maintained next to the swag annotations on the handlers
const docJSON = `{
  "openapi": "3.0.3",
  "info": {"title": "socialfeed API", "version": "1"},
  "components": {
    "securitySchemes": {"bearer": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}},
    "parameters": {
      "limit": {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 50, "default": 10}},
      "cursor": {"name": "cursor", "in": "query", "schema": {"type": "string"}}
    }
  },
  "paths": {
    "/api/v1/feed/home": {
      "get": {
        "tags": ["Feed"],
        "summary": "Posts by authors the viewer follows, newest first",
        "security": [{"bearer": []}],
        "parameters": [{"$ref": "#/components/parameters/limit"}, {"$ref": "#/components/parameters/cursor"}],
        "responses": {"200": {"description": "ok"}, "400": {"description": "bad limit or cursor"}, "401": {"description": "no viewer"}}
      }
    },
    "/api/v1/feed/explore": {
      "get": {
        "tags": ["Feed"],
        "summary": "All posts, newest first; likes are resolved when a bearer token is sent",
        "parameters": [{"$ref": "#/components/parameters/limit"}, {"$ref": "#/components/parameters/cursor"}],
        "responses": {"200": {"description": "ok"}, "400": {"description": "bad limit or cursor"}}
      }
    },
    "/api/v1/meta/health": {"get": {"tags": ["Meta"], "responses": {"200": {"description": "ok"}}}},
    "/api/v1/meta/ready": {"get": {"tags": ["Meta"], "responses": {"200": {"description": "ok"}, "503": {"description": "store unavailable"}}}},
    "/api/v1/meta/version": {"get": {"tags": ["Meta"], "responses": {"200": {"description": "ok"}}}}
  }
}`

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(docJSON))
	}
}
