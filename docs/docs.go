// Package docs holds the OpenAPI description served under /swagger. The document is kept by hand
// next to the handler annotations; every /v1 route in the permission table must appear in it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/auth/register": {"post": {"tags": ["Auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/v1/auth/login": {"post": {"tags": ["Auth"], "summary": "Login a user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/v1/auth/refresh-token": {"post": {"tags": ["Auth"], "summary": "Refresh user token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/v1/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Logout a user", "responses": {"200": {"description": "OK"}}}},
        "/v1/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["Me"], "summary": "Get the signed-in user", "responses": {"200": {"description": "OK"}}}},
        "/v1/me/role": {"put": {"security": [{"BearerAuth": []}], "tags": ["Me"], "summary": "Choose a role", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/v1/spaces": {
            "get": {"tags": ["Space"], "summary": "Search spaces", "parameters": [
                {"type": "string", "name": "location", "in": "query"},
                {"type": "integer", "name": "min_capacity", "in": "query"},
                {"type": "number", "name": "max_price", "in": "query"},
                {"type": "string", "name": "type", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["Space"], "summary": "List a new space", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}
        },
        "/v1/spaces/mine": {"get": {"security": [{"BearerAuth": []}], "tags": ["Space"], "summary": "List my spaces", "parameters": [
                {"type": "integer", "name": "page", "in": "query"},
                {"type": "integer", "name": "limit", "in": "query"},
                {"type": "string", "name": "sort_by", "in": "query", "enum": ["created_at", "title", "price_per_hour", "capacity"]},
                {"type": "string", "name": "sort_dir", "in": "query", "enum": ["ASC", "DESC"]},
                {"type": "boolean", "name": "active", "in": "query"}
            ], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/v1/spaces/{id}": {"get": {"tags": ["Space"], "summary": "Get a space by ID", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/v1/spaces/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["Space"], "summary": "Change the status of a space", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/v1/bookings": {"post": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Request a booking", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}},
        "/v1/bookings/quote": {"post": {"tags": ["Booking"], "summary": "Quote a booking", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/v1/dashboard/owner": {"get": {"security": [{"BearerAuth": []}], "tags": ["Dashboard"], "summary": "Owner dashboard", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/v1/dashboard/tenant": {"get": {"security": [{"BearerAuth": []}], "tags": ["Dashboard"], "summary": "Tenant dashboard", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Locally API",
	Description:      "Space rental marketplace: owners list spaces, tenants search and request bookings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
