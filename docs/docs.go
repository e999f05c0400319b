// Package docs is generated by swaggo/swag from the handler annotations in cmd/api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Site owner"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/site": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Site"],
                "summary": "Public site settings",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reviews": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "List reviews",
                "parameters": [{"type": "integer", "description": "Maximum number of reviews", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "Reviews", "schema": {"type": "array", "items": {"$ref": "#/definitions/reviews.Review"}}},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"},
                    "503": {"description": "Store unreachable"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "Submit a review",
                "parameters": [{"description": "Review payload", "name": "review", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.ReviewPayload"}}],
                "responses": {
                    "201": {"description": "Review submitted"},
                    "400": {"description": "Bad Request"},
                    "429": {"description": "Too Many Requests"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/reviews/avatar": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "Upload a review avatar",
                "parameters": [{"type": "file", "description": "Avatar image", "name": "avatar", "in": "formData", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/testimonials": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "List testimonials",
                "parameters": [{"type": "integer", "description": "Maximum number of testimonials", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "Testimonials", "schema": {"type": "array", "items": {"$ref": "#/definitions/reviews.Review"}}},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"},
                    "503": {"description": "Store unreachable"}
                }
            }
        },
        "/theme": {
            "get": {"produces": ["application/json"], "tags": ["Theme"], "summary": "Current accent colour", "responses": {"200": {"description": "OK"}}},
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Theme"],
                "summary": "Select the accent colour",
                "parameters": [{"description": "Colour", "name": "theme", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.SetThemePayload"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}, "500": {"description": "Internal Server Error"}},
                "security": [{"BasicAuth": []}]
            }
        },
        "/theme/palette": {
            "get": {"produces": ["application/json"], "tags": ["Theme"], "summary": "Selectable accent colours", "responses": {"200": {"description": "OK"}}}
        },
        "/theme/vars.css": {
            "get": {"produces": ["text/css"], "tags": ["Theme"], "summary": "Accent style variables", "responses": {"200": {"description": "OK"}}}
        },
        "/contact": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Contact"],
                "summary": "Send a contact message",
                "parameters": [{"description": "Contact form", "name": "message", "in": "body", "required": true, "schema": {"$ref": "#/definitions/contact.Input"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/admin/contact": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List contact messages",
                "parameters": [
                    {"type": "boolean", "description": "Only unread messages", "name": "unread", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/admin/contact/{messageID}/read": {
            "patch": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Mark a contact message read",
                "parameters": [{"type": "string", "description": "Message ID", "name": "messageID", "in": "path", "required": true}],
                "responses": {"200": {"description": "marked as read"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/health": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["Ops"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "reviews.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "content": {"type": "string"},
                "rating": {"type": "integer"},
                "avatar": {"type": "string"},
                "approved": {"type": "boolean"},
                "initial": {"type": "string"}
            }
        },
        "main.ReviewPayload": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "role": {"type": "string"},
                "content": {"type": "string"},
                "rating": {"type": "integer"},
                "avatar": {"type": "string"}
            }
        },
        "main.SetThemePayload": {
            "type": "object",
            "properties": {"color": {"type": "string"}}
        },
        "contact.Input": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Folio API",
	Description:      "Reviews, testimonials, accent theme and contact form for a personal portfolio site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
