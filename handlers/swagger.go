package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the dashboard API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>scratch dashboard - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "scratch-dashboard", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer" } },
    "schemas": {
      "Message": { "type": "object", "properties": { "message": { "type": "string" } } },
      "Link": {
        "type": "object",
        "additionalProperties": true,
        "properties": {
          "id": { "type": "string" },
          "house_name": { "type": "string" },
          "link": { "type": "string" },
          "status": { "type": "string" }
        }
      },
      "DailyData": {
        "type": "object",
        "properties": {
          "last_updated": { "type": "string", "nullable": true },
          "balance": { "type": "number" },
          "winners": { "type": "integer" },
          "best_times": { "type": "string" },
          "good_moment": { "type": "boolean" },
          "recommended_link_id": { "type": "string", "nullable": true }
        }
      }
    }
  },
  "paths": {
    "/api/dashboard": {
      "get": { "summary": "Public dashboard; regenerates daily data once per day", "responses": { "200": { "description": "links with is_recommended, daily_data and total_houses" } } }
    },
    "/api/links": {
      "get": { "summary": "List links", "security": [{ "bearer": [] }], "responses": { "200": { "description": "all links" }, "401": { "description": "token missing" }, "403": { "description": "token invalid" } } },
      "post": { "summary": "Create link", "security": [{ "bearer": [] }], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Link" } } } }, "responses": { "201": { "description": "created link" }, "400": { "description": "missing house_name, link or status" } } }
    },
    "/api/links/{id}": {
      "put": { "summary": "Merge fields into a link", "security": [{ "bearer": [] }], "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "string" } }], "responses": { "200": { "description": "updated link" }, "400": { "description": "empty body" }, "404": { "description": "unknown id" } } },
      "delete": { "summary": "Delete link", "security": [{ "bearer": [] }], "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "string" } }], "responses": { "200": { "description": "deleted" }, "404": { "description": "unknown id" } } }
    },
    "/api/daily-data": {
      "get": { "summary": "Current daily data", "security": [{ "bearer": [] }], "responses": { "200": { "description": "daily data" } } },
      "put": { "summary": "Override daily data fields", "security": [{ "bearer": [] }], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/DailyData" } } } }, "responses": { "200": { "description": "updated daily data" }, "400": { "description": "empty body or unknown recommended_link_id" } } }
    },
    "/api/admin/login": {
      "post": { "summary": "Admin login", "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "username": { "type": "string" }, "password": { "type": "string" } } } } } }, "responses": { "200": { "description": "token returned" }, "401": { "description": "invalid credentials" } } }
    },
    "/api/admin/logout": {
      "post": { "summary": "Revoke the presented token", "security": [{ "bearer": [] }], "responses": { "200": { "description": "logged out" } } }
    },
    "/health": { "get": { "summary": "Liveness", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness", "responses": { "200": { "description": "ready" }, "503": { "description": "store unreachable" } } } }
  }
}`
