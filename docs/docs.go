// Package docs registers the OpenAPI description served under /swagger.
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
        "/api/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a league admin",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.SignupInput"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Email already taken"}}
            }
        },
        "/api/auth/verify-otp": {
            "post": {
                "tags": ["auth"],
                "summary": "Verify the emailed one-time code",
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.VerifyOTPInput"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid or expired code"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in and receive a bearer token",
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.LoginResult"}}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/api/leagues": {
            "get": {
                "tags": ["leagues"],
                "summary": "List leagues",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["leagues"],
                "summary": "Create a league and generate its schedule",
                "parameters": [
                    {"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.CreateLeagueInput"}},
                    {"in": "query", "name": "includeEliminator", "type": "boolean", "description": "Add the eliminator match (default false)"},
                    {"in": "query", "name": "includeKnockouts", "type": "boolean", "description": "Add semi-finals and final (default true)"}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid league"}, "409": {"description": "Name taken"}}
            }
        },
        "/api/leagues/{leagueID}/details": {
            "get": {
                "tags": ["leagues"],
                "summary": "League with its teams and schedule",
                "parameters": [{"in": "path", "name": "leagueID", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        }
    },
    "definitions": {
        "services.SignupInput": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string", "minLength": 6}}
        },
        "services.VerifyOTPInput": {
            "type": "object",
            "required": ["email", "otp"],
            "properties": {"email": {"type": "string"}, "otp": {"type": "string"}}
        },
        "services.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "services.LoginResult": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "userId": {"type": "string"}, "expires_at": {"type": "string"}}
        },
        "services.CreateLeagueInput": {
            "type": "object",
            "required": ["name", "league_format", "no_of_teams", "teams", "start_date", "end_date"],
            "properties": {
                "name": {"type": "string"},
                "league_format": {"type": "string", "enum": ["SINGLE_ROUND_ROBIN", "DOUBLE_ROUND_ROBIN", "GROUP"]},
                "no_of_teams": {"type": "integer"},
                "no_of_overs": {"type": "integer"},
                "teams": {"type": "array", "items": {"type": "string"}},
                "start_date": {"type": "string", "example": "2026-03-01"},
                "end_date": {"type": "string", "example": "2026-03-20"},
                "venue": {"type": "string"},
                "umpires": {"type": "array", "items": {"type": "string"}}
            }
        }
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
	Title:            "CricInnings League API",
	Description:      "Cricket league administration: leagues, teams, squads and generated fixtures.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
