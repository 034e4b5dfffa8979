// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Database connectivity", "responses": {"200": {"description": "healthy"}, "503": {"description": "dependency unavailable", "schema": {"$ref": "#/definitions/Error"}}}}},
        "/healthz": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "alive"}}}},
        "/register": {"post": {"tags": ["users"], "summary": "Create an account", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}], "responses": {"201": {"description": "created"}, "400": {"description": "validation error", "schema": {"$ref": "#/definitions/Error"}}, "409": {"description": "email already in use", "schema": {"$ref": "#/definitions/Error"}}}}},
        "/login": {"post": {"tags": ["users"], "summary": "Exchange credentials for a token", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}], "responses": {"200": {"description": "token and user"}, "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/Error"}}}}},
        "/api/user/{id}": {"get": {"tags": ["users"], "summary": "Get a user", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "user without password"}, "404": {"description": "not found", "schema": {"$ref": "#/definitions/Error"}}}}},
        "/api/update_user": {"put": {"tags": ["users"], "summary": "Update body profile; BMI and TDEE are derived when omitted", "responses": {"200": {"description": "updated or unchanged"}}}},
        "/api/update_basic_info": {"post": {"tags": ["users"], "summary": "Update name, email and profile image", "consumes": ["multipart/form-data"], "parameters": [{"in": "formData", "name": "userID", "type": "string", "required": true}, {"in": "formData", "name": "fullname", "type": "string", "required": true}, {"in": "formData", "name": "email", "type": "string", "required": true}, {"in": "formData", "name": "image", "type": "file"}], "responses": {"200": {"description": "updated user"}}}},
        "/api/update_password": {"put": {"tags": ["users"], "summary": "Change password", "responses": {"200": {"description": "updated"}, "400": {"description": "current password incorrect", "schema": {"$ref": "#/definitions/Error"}}}}},
        "/api/delete_user": {"delete": {"tags": ["users"], "summary": "Delete a user and their meals", "responses": {"200": {"description": "deleted"}}}},
        "/meals": {"post": {"tags": ["meals"], "summary": "Append entries to a day", "responses": {"200": {"description": "day document"}}}},
        "/api/user/{id}/meals": {"get": {"tags": ["meals"], "summary": "Meals of a day", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "query", "name": "date", "type": "string", "description": "YYYY-MM-DD, today when omitted"}], "responses": {"200": {"description": "meals"}}}},
        "/api/user/{id}/update_meal": {"put": {"tags": ["meals"], "summary": "Replace one entry's nutrients", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "entries and totals"}, "404": {"description": "meal or entry not found", "schema": {"$ref": "#/definitions/Error"}}}}},
        "/api/user/{id}/delete_meal": {"delete": {"tags": ["meals"], "summary": "Remove one entry and renumber the rest", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "entries and totals"}}}},
        "/food": {"post": {"tags": ["food"], "summary": "Nutrition per 100 g", "responses": {"200": {"description": "cached"}, "201": {"description": "looked up and stored"}, "502": {"description": "upstream failure", "schema": {"$ref": "#/definitions/Error"}}}}},
        "/detect": {"post": {"tags": ["food"], "summary": "Detect foods in an image", "consumes": ["multipart/form-data"], "parameters": [{"in": "formData", "name": "image", "type": "file", "required": true}], "responses": {"200": {"description": "labels with confidence"}, "400": {"description": "missing or undecodable image", "schema": {"$ref": "#/definitions/Error"}}}}},
        "/upload": {
            "get": {"tags": ["images"], "summary": "List image metadata", "parameters": [{"in": "query", "name": "userId", "type": "string"}, {"in": "query", "name": "limit", "type": "integer"}, {"in": "query", "name": "offset", "type": "integer"}], "responses": {"200": {"description": "page of images"}}},
            "post": {"tags": ["images"], "summary": "Store an image", "consumes": ["multipart/form-data"], "parameters": [{"in": "formData", "name": "file", "type": "file", "required": true}, {"in": "formData", "name": "userId", "type": "string"}], "responses": {"201": {"description": "fileId and url"}}}
        },
        "/upload/{id}": {
            "get": {"tags": ["images"], "summary": "Stream an image", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "image bytes"}, "404": {"description": "not found", "schema": {"$ref": "#/definitions/Error"}}}},
            "delete": {"tags": ["images"], "summary": "Delete an image", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"204": {"description": "deleted"}}}
        },
        "/api/user/{id}/ai-nutrition-advice": {"post": {"tags": ["advice"], "summary": "Generate advice for a day", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "snapshot and advice"}}}},
        "/api/statistics/{id}": {"get": {"tags": ["statistics"], "summary": "Meals and goal progress", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "query", "name": "range", "type": "string", "enum": ["Week", "30 Days", "60 Days", "90 Days"]}], "responses": {"200": {"description": "statistics"}}}},
        "/api/support_message": {"post": {"tags": ["support"], "summary": "Open a support ticket", "responses": {"201": {"description": "ticket id"}}}},
        "/api/support_messages": {"get": {"tags": ["support"], "summary": "List tickets", "security": [{"BearerAuth": []}], "parameters": [{"in": "query", "name": "status", "type": "string"}, {"in": "query", "name": "priority", "type": "string"}, {"in": "query", "name": "inquiryType", "type": "string"}, {"in": "query", "name": "page", "type": "integer"}, {"in": "query", "name": "limit", "type": "integer"}], "responses": {"200": {"description": "messages and pagination"}, "401": {"description": "missing token"}, "403": {"description": "not an admin"}}}},
        "/api/support_message/{id}": {"get": {"tags": ["support"], "summary": "Get a ticket", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "ticket"}}}},
        "/api/support_message/{id}/status": {"put": {"tags": ["support"], "summary": "Move a ticket forward", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "updated"}, "409": {"description": "backward move", "schema": {"$ref": "#/definitions/Error"}}}}},
        "/api/support_stats": {"get": {"tags": ["support"], "summary": "Ticket counts and recent tickets", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "stats"}}}}
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"request_id": {"type": "string"}, "error": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}}}},
        "RegisterRequest": {"type": "object", "required": ["username", "email", "password"], "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Nutritrack API",
	Description:      "Meal logging, food lookup, detection, advice and support tickets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
