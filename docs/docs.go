// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a shipper or driver", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/v1/fretes": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["fretes"], "summary": "List the caller's fretes", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["fretes"], "summary": "Request a new frete", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}
        },
        "/v1/fretes/disponiveis": {"get": {"security": [{"BearerAuth": []}], "tags": ["fretes"], "summary": "List fretes open for drivers", "responses": {"200": {"description": "OK"}}}},
        "/v1/fretes/codigo/{codigo}": {"get": {"security": [{"BearerAuth": []}], "tags": ["fretes"], "summary": "Get a frete by its code", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}},
        "/v1/fretes/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["fretes"], "summary": "Get a frete", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}},
        "/v1/fretes/{id}/eventos": {"get": {"security": [{"BearerAuth": []}], "tags": ["fretes"], "summary": "Audit trail of a frete", "responses": {"200": {"description": "OK"}}}},
        "/v1/fretes/{id}/aceitar": {"post": {"security": [{"BearerAuth": []}], "tags": ["fretes"], "summary": "Accept an available frete", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/v1/fretes/{id}/status": {"put": {"security": [{"BearerAuth": []}], "tags": ["fretes"], "summary": "Move a frete to another status", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}},
        "/v1/fretes/{id}/cancelar": {"put": {"security": [{"BearerAuth": []}], "tags": ["fretes"], "summary": "Cancel a frete", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/v1/veiculos": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["veiculos"], "summary": "List the calling driver's vehicles", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["veiculos"], "summary": "Register a vehicle for the calling driver", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/v1/admin/fretes/{id}": {"put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Correct a frete manually", "responses": {"200": {"description": "OK"}}}},
        "/v1/admin/fretes/{id}/motorista": {"put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Hand a frete to another driver", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Broday Transportes API",
	Description:      "Freight lifecycle API: shippers request fretes, drivers accept and deliver them, admins correct them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
