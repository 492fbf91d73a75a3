// Package docs registers the demo server's OpenAPI document with swag so
// http-swagger can serve it at /swagger/doc.json.
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
    "paths": {
        "/get": {
            "get": {
                "produces": ["application/json"],
                "summary": "Echo a GET request",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/demoserver.EchoRecord"}}}
            }
        },
        "/post": {
            "post": {
                "produces": ["application/json"],
                "summary": "Echo a POST request and its body",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/demoserver.EchoRecord"}}}
            }
        },
        "/put": {
            "put": {
                "produces": ["application/json"],
                "summary": "Echo a PUT request and its body",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/demoserver.EchoRecord"}}}
            }
        },
        "/patch": {
            "patch": {
                "produces": ["application/json"],
                "summary": "Echo a PATCH request and its body",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/demoserver.EchoRecord"}}}
            }
        },
        "/delete": {
            "delete": {
                "produces": ["application/json"],
                "summary": "Echo a DELETE request",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/demoserver.EchoRecord"}}}
            }
        },
        "/anything": {
            "get": {
                "produces": ["application/json"],
                "summary": "Echo any method",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/demoserver.EchoRecord"}}}
            }
        },
        "/status/{code}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Respond with the given status code",
                "parameters": [{"type": "integer", "name": "code", "in": "path", "required": true}],
                "responses": {"default": {"description": "The requested status"}}
            }
        },
        "/delay/{ms}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Echo after sleeping ms milliseconds",
                "parameters": [{"type": "integer", "name": "ms", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/demoserver.EchoRecord"}}}
            }
        },
        "/text": {
            "get": {
                "produces": ["text/plain"],
                "summary": "Plain text body, for decode error testing",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "demoserver.EchoRecord": {
            "type": "object",
            "properties": {
                "method": {"type": "string"},
                "url": {"type": "string"},
                "path": {"type": "string"},
                "headers": {"type": "object", "additionalProperties": {"type": "string"}},
                "args": {"type": "object", "additionalProperties": {"type": "string"}},
                "data": {"type": "string"},
                "json": {},
                "received_at": {"type": "string"}
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
	Title:            "reqs demo server",
	Description:      "JSON echo endpoints for trying out reqs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
