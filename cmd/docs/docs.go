// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/ledger_backend/main.go -o cmd/docs
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
        "/templates": {
            "get": {"tags": ["templates"], "summary": "List template kinds", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}}
        },
        "/templates/resolve": {
            "post": {"tags": ["templates"], "summary": "Preview the accounts a template posts to",
                "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/owners/{owner_id}/entries": {
            "get": {"tags": ["journal-entries"], "summary": "List journal entries", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "owner_id", "in": "path", "required": true},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "sourceType", "in": "query"},
                    {"type": "string", "name": "dateFrom", "in": "query"},
                    {"type": "string", "name": "dateTo", "in": "query"},
                    {"type": "string", "name": "order", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "nextToken", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["journal-entries"], "summary": "Post a journal entry",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "owner_id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"}, "500": {"description": "Internal Server Error"}}}
        },
        "/owners/{owner_id}/entries/count": {
            "get": {"tags": ["journal-entries"], "summary": "Count journal entries", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "owner_id", "in": "path", "required": true},
                    {"type": "string", "name": "status", "in": "query"}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/owners/{owner_id}/entries/{entry_id}": {
            "get": {"tags": ["journal-entries"], "summary": "Get a journal entry", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "owner_id", "in": "path", "required": true},
                    {"type": "string", "name": "entry_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/owners/{owner_id}/entries/{entry_id}/reverse": {
            "post": {"tags": ["journal-entries"], "summary": "Reverse a journal entry",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "owner_id", "in": "path", "required": true},
                    {"type": "string", "name": "entry_id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}, "409": {"description": "Conflict"},
                    "422": {"description": "Unprocessable Entity"}}}
        },
        "/owners/{owner_id}/sources/{source_type}/{document_id}/entries": {
            "get": {"tags": ["journal-entries"], "summary": "List entries for a source document", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/owners/{owner_id}/sources/{source_type}/{document_id}/entries/count": {
            "get": {"tags": ["journal-entries"], "summary": "Count entries for a source document", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/owners/{owner_id}/sources/{source_type}/{document_id}/reverse": {
            "post": {"tags": ["journal-entries"], "summary": "Reverse every posted entry of a source document",
                "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/owners/{owner_id}/transactions/{transaction_id}/entries": {
            "get": {"tags": ["journal-entries"], "summary": "List entries for a business transaction", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/owners/{owner_id}/transactions/{transaction_id}/reverse": {
            "post": {"tags": ["journal-entries"], "summary": "Reverse every posted entry of a business transaction",
                "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/owners/{owner_id}/sequence": {
            "get": {"tags": ["sequence"], "summary": "Show the entry number counter", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/owners/{owner_id}/sequence/reserve": {
            "post": {"tags": ["sequence"], "summary": "Reserve a block of entry numbers",
                "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/owners/{owner_id}/lock-date": {
            "get": {"tags": ["lock-date"], "summary": "Get the period lock date", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["lock-date"], "summary": "Close or reopen accounting periods",
                "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/owners/{owner_id}/lock-date/check": {
            "get": {"tags": ["lock-date"], "summary": "Check whether a date is locked", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Bookkeeping Ledger API",
	Description:      "Double-entry journal posting, reversal and query API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
