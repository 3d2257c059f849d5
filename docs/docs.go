// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/catalog/fiscal-codes": {
            "get": {"tags": ["catalog"], "summary": "Withholding rate table", "responses": {"200": {"description": "OK"}}}
        },
        "/catalog/income-natures": {
            "get": {
                "tags": ["catalog"],
                "summary": "Income-nature catalog",
                "parameters": [{"in": "query", "name": "fiscal_code", "type": "string"}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/records": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["records"],
                "summary": "List or filter fiscal records",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["records"],
                "summary": "Create a fiscal record",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RecordRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/records/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "Get a fiscal record", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "Replace a fiscal record", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "Delete a fiscal record", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/records/{id}/pay": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "Mark a record as paid today", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/records/document/{number}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["queries"], "summary": "Find a record by document number", "parameters": [{"in": "path", "name": "number", "required": true, "type": "string"}, {"in": "query", "name": "org_unit", "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/records/autocomplete": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["queries"], "summary": "Document numbers starting with a term", "parameters": [{"in": "query", "name": "term", "required": true, "type": "string"}, {"in": "query", "name": "size", "type": "integer"}], "responses": {"200": {"description": "OK"}}}
        },
        "/records/status/{status}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["queries"], "summary": "List records with a given status", "parameters": [{"in": "path", "name": "status", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/payers": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["queries"], "summary": "Payers with payments in a month", "parameters": [{"in": "query", "name": "period", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/aggregates": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["aggregates"], "summary": "Totals per org unit", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/aggregates/annual/{year}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["aggregates"], "summary": "Totals by invoice month, all statuses", "parameters": [{"in": "path", "name": "year", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/aggregates/withheld": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["aggregates"], "summary": "Total withheld on paid records of one org unit invoiced in a month", "responses": {"200": {"description": "OK"}}}
        },
        "/exports/records.csv": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["exports"], "summary": "Export filtered records as CSV", "produces": ["text/csv"], "responses": {"200": {"description": "OK"}}}
        },
        "/exports/annual/{file}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["exports"], "summary": "Annual paid totals workbook", "parameters": [{"in": "path", "name": "file", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/exports/monthly": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["exports"], "summary": "Archive a month's paid records to object storage", "responses": {"201": {"description": "Created"}}}
        }
    },
    "definitions": {
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string", "example": "ops@example.com"}, "password": {"type": "string"}}
        },
        "handler.RecordRequest": {
            "type": "object",
            "required": ["org_unit", "document_number", "payer_tax_id", "invoice_number", "invoice_date", "income_nature", "gross_amount"],
            "properties": {
                "org_unit": {"type": "string", "example": "PRIMARY"},
                "document_number": {"type": "string", "example": "123AB456789"},
                "payer_tax_id": {"type": "string", "example": "12345678000195"},
                "invoice_number": {"type": "integer", "example": 1542},
                "invoice_date": {"type": "string", "example": "2024-03-15"},
                "payment_date": {"type": "string", "example": "2024-04-02"},
                "income_nature": {"type": "string", "example": "17040"},
                "fiscal_code": {"type": "string", "example": "6190"},
                "gross_amount": {"type": "string", "example": "1000.00"}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "DARF Withholding API",
	Description:      "Fiscal records with federal tax withholding, queries, aggregates and exports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
