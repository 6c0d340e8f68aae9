// Package docs registers the OpenAPI description served under /swagger in
// dev mode.
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
        "/login": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Login form",
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "already authenticated, redirect to /tasks"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Start a session",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "redirect to /tasks, or back to /login with a flash message"}
                }
            }
        },
        "/logout": {
            "get": {
                "tags": ["auth"],
                "summary": "End the session",
                "responses": {
                    "302": {"description": "redirect to /login"}
                }
            }
        },
        "/register": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Registration form",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "redirect to /login on success, back to /register otherwise"}
                }
            }
        },
        "/tasks": {
            "get": {
                "produces": ["text/html"],
                "tags": ["tasks"],
                "summary": "Task list of the current user",
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "anonymous, redirect to /login"}
                }
            }
        },
        "/add_task": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["tasks"],
                "summary": "Create a task",
                "parameters": [
                    {"type": "string", "description": "Task title; blank titles are ignored", "name": "title", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "redirect to /tasks"}
                }
            }
        },
        "/complete_task/{id}": {
            "get": {
                "tags": ["tasks"],
                "summary": "Toggle completion of an owned task",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "redirect to /tasks"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/delete_task/{id}": {
            "get": {
                "tags": ["tasks"],
                "summary": "Delete an owned task",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "redirect to /tasks"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.HealthResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "time": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "todolist",
	Description:      "Personal to-do list with per-user tasks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
