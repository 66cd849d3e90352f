// Package swagger holds the OpenAPI description of the checkout HTTP API.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/checkouts": {
            "post": {
                "description": "Build an order, apply discount rules in order, then pay, deliver and notify",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkouts"],
                "summary": "Run a checkout",
                "parameters": [
                    {
                        "description": "Checkout request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/infrastructure.CheckoutRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Checkout completed",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/infrastructure.SuccessResponse"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"$ref": "#/definitions/infrastructure.CheckoutResponse"}
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Unknown method or rule type",
                        "schema": {"$ref": "#/definitions/errors.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {"$ref": "#/definitions/errors.ErrorResponse"}
                    },
                    "502": {
                        "description": "Payment, delivery or notification failed",
                        "schema": {"$ref": "#/definitions/errors.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "message": {"type": "string"}
            }
        },
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.ErrorBody"},
                "trace_id": {"type": "string"}
            }
        },
        "infrastructure.CheckoutRequest": {
            "type": "object",
            "properties": {
                "delivery_method": {"type": "string", "example": "courier"},
                "items": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/infrastructure.ItemRequest"}
                },
                "notification_method": {"type": "string", "example": "email"},
                "payment_method": {"type": "string", "example": "credit_card"},
                "rules": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/infrastructure.RuleRequest"}
                }
            }
        },
        "infrastructure.CheckoutResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Order successfully processed. Total: $1120.00"},
                "order_id": {"type": "string", "example": "9b2f6c1e-6a1d-4a43-9a4e-0f4f5f0b6d3e"},
                "subtotal": {"type": "string", "example": "1300.00"},
                "total": {"type": "string", "example": "1120.00"}
            }
        },
        "infrastructure.ItemRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Laptop"},
                "quantity": {"type": "integer", "example": 1},
                "unit_price": {"type": "number", "example": 1200}
            }
        },
        "infrastructure.RuleRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "percentage"},
                "value": {"type": "number", "example": 10}
            }
        },
        "infrastructure.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "trace_id": {"type": "string", "example": "550e8400-e29b-41d4-a716-446655440000"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Checkout API",
	Description:      "Order checkout with ordered discount rules and pluggable payment, delivery and notification methods",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
