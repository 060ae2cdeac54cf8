// Package docs registers the Secretariat API description with swag so the
// swagger UI can serve it. Regenerate with swag init (see server/swagger.go).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "secrglue maintainers",
            "url": "https://github.com/raysh454/secrglue"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/secr/areas/getpeople/": {
            "get": {
                "description": "Autocomplete source. Terms shorter than three characters return an empty list.",
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Search people by name",
                "parameters": [
                    {"type": "string", "description": "search term", "name": "q", "in": "query", "required": true},
                    {"type": "string", "description": "alias of q", "name": "term", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/server.Suggestion"}}}
                }
            }
        },
        "/secr/areas/getemails/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "List a person's email addresses",
                "parameters": [
                    {"type": "integer", "description": "person id", "name": "id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/server.Option"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/secr/groups/get_ads/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "List the directors of an area",
                "parameters": [
                    {"type": "integer", "description": "area id", "name": "area", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/server.Option"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/secr/proceedings/ajax/order-slide/": {
            "post": {
                "description": "Requires the X-CSRFToken header to match the csrftoken cookie.",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["proceedings"],
                "summary": "Move a slide within its session",
                "parameters": [
                    {"type": "string", "description": "csrf token", "name": "X-CSRFToken", "in": "header", "required": true},
                    {"type": "string", "description": "slide name", "name": "slide_name", "in": "formData", "required": true},
                    {"type": "integer", "description": "new zero-based index", "name": "order", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.OrderSlideResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/secr/ws/slides": {
            "get": {
                "description": "WebSocket; each message is a SlideOrderEvent.",
                "tags": ["proceedings"],
                "summary": "Slide order event feed",
                "responses": {
                    "101": {"description": "Switching Protocols", "schema": {"$ref": "#/definitions/server.SlideOrderEvent"}}
                }
            }
        }
    },
    "definitions": {
        "server.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "not found"}}
        },
        "server.Option": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "100"},
                "value": {"type": "string", "example": "Jane Doe"}
            }
        },
        "server.OrderSlideResponse": {
            "type": "object",
            "properties": {
                "order": {"type": "integer", "example": 0},
                "slide": {"type": "string", "example": "slides-120-httpbis-chairs"},
                "slides": {"type": "array", "items": {"type": "string"}}
            }
        },
        "server.SlideOrderEvent": {
            "type": "object",
            "properties": {
                "group": {"type": "string", "example": "httpbis"},
                "meeting": {"type": "string", "example": "120"},
                "order": {"type": "integer", "example": 0},
                "slide": {"type": "string", "example": "slides-120-httpbis-chairs"},
                "slides": {"type": "array", "items": {"type": "string"}},
                "type": {"type": "string", "example": "slide_order"}
            }
        },
        "server.Suggestion": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "example": "Jane Doe (100)"},
                "value": {"type": "string", "example": "Jane Doe (100)"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Secretariat API",
	Description:      "Lookup and ordering endpoints used by the secretariat admin pages. Unsafe methods require the X-CSRFToken header to echo the csrftoken cookie.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
