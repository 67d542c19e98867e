package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>cphub — Swagger</title>
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

// Minimal OpenAPI document describing the public API surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "cphub", "version": "v0.1.0" },
  "paths": {
    "/api/auth/register": {
      "post": {
        "summary": "Register a new account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"},"leetcodeUsername":{"type":"string"},"codeforcesUsername":{"type":"string"},"codechefUsername":{"type":"string"}}}}}},
        "responses": { "201": { "description": "account created, access token returned" }, "409": { "description": "username or email already taken" } }
      }
    },
    "/api/auth/login": {
      "post": {
        "summary": "Log in with email and password",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "access token returned, refresh cookie set" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/auth/logout": {
      "post": { "summary": "Clear the refresh cookie", "responses": { "200": { "description": "logged out" } } }
    },
    "/api/auth/refresh": {
      "post": { "summary": "Mint a new access token from the refresh cookie", "responses": { "200": { "description": "new access token" }, "401": { "description": "missing or invalid refresh token" } } }
    },
    "/api/platform/popular": {
      "get": { "summary": "Curated list of well-known handles per platform", "responses": { "200": { "description": "handles grouped by platform" } } }
    },
    "/api/platform/{platform}/{username}": {
      "get": { "summary": "Normalized stats for a handle on leetcode, codeforces or codechef", "responses": { "200": { "description": "normalized stats" }, "404": { "description": "unknown handle" } } }
    },
    "/api/user/profile": {
      "get": { "summary": "Authenticated user's profile", "responses": { "200": { "description": "profile" }, "401": { "description": "missing access token" } } },
      "put": { "summary": "Update linked platform handles", "responses": { "200": { "description": "updated profile" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } }
  }
}`
