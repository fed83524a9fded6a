// Package backoffice holds the OpenAPI document served under /swagger/.
//
// Regenerate with:
//
//	swag init -g internal/backoffice/http/router.go -o api/backoffice --parseDependency
package backoffice

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/backoffice"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/adminsdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.AuthEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/adminsdk.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.AuthEnvelope"}},
                    "401": {"description": "Invalid or expired refresh token", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "401": {"description": "Unauthorized or user not found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log out",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/adminsdk.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "List users",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "in": "query", "name": "page"},
                    {"type": "integer", "in": "query", "name": "limit"},
                    {"type": "string", "in": "query", "name": "search"},
                    {"type": "string", "in": "query", "name": "roleId"},
                    {"enum": ["ACTIVE", "INACTIVE"], "type": "string", "in": "query", "name": "status"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Create a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/adminsdk.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "400": {"description": "Validation failed or unknown role", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "409": {"description": "Duplicate entry found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Get a user",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Update a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/adminsdk.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "409": {"description": "Duplicate entry found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Delete a user",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/users/{id}/role": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Assign a role to a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/adminsdk.AssignRoleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/roles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Roles"],
                "summary": "List roles",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Roles"],
                "summary": "Create a role",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/adminsdk.CreateRoleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "409": {"description": "Duplicate entry found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/roles/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Roles"],
                "summary": "Get a role",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "404": {"description": "Role not found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Roles"],
                "summary": "Update a role",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/adminsdk.UpdateRoleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "404": {"description": "Role not found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Roles"],
                "summary": "Delete a role",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}},
                    "404": {"description": "Role not found", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/permissions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Roles"],
                "summary": "List permissions",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Dashboard"],
                "summary": "Dashboard statistics",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adminsdk.Envelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "status, timestamp", "schema": {"$ref": "#/definitions/adminsdk.HealthResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/adminsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/adminsdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/adminsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "adminsdk.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "meta": {"$ref": "#/definitions/adminsdk.PageMeta"},
                "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "adminsdk.AuthEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/adminsdk.AuthData"}
            }
        },
        "adminsdk.PageMeta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "adminsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "adminsdk.RefreshRequest": {
            "type": "object",
            "properties": {
                "refreshToken": {"type": "string"}
            }
        },
        "adminsdk.AuthData": {
            "type": "object",
            "properties": {
                "accessToken": {"type": "string"},
                "refreshToken": {"type": "string"},
                "user": {"$ref": "#/definitions/adminsdk.User"}
            }
        },
        "adminsdk.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]},
                "roleId": {"type": "string"},
                "role": {"$ref": "#/definitions/adminsdk.Role"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "adminsdk.Role": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "adminsdk.CreateUserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]},
                "roleId": {"type": "string"}
            }
        },
        "adminsdk.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]},
                "roleId": {"type": "string"}
            }
        },
        "adminsdk.AssignRoleRequest": {
            "type": "object",
            "properties": {
                "roleId": {"type": "string"}
            }
        },
        "adminsdk.CreateRoleRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "adminsdk.UpdateRoleRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "adminsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/adminsdk.HealthChecks"}
            }
        },
        "adminsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "signer": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Back-office API",
	Description:      "Authentication, user and role management for the back-office dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
