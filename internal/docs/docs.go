// Package docs registers the OpenAPI document of the products API with swag.
//
//	@title			REST API Go / Fiber / GORM
//	@version		1.0.0
//	@description	API Docs for products management
//	@BasePath		/
//
//	@tag.name			Products
//	@tag.description	API operations related to products
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
    "tags": [
        {
            "description": "API operations related to products",
            "name": "Products"
        }
    ],
    "paths": {
        "/api/products": {
            "get": {
                "description": "Returns every product, highest ID first",
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Get a list of products",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.ProductListResponse"}
                    }
                }
            },
            "post": {
                "description": "Creates a new record in the database. Availability defaults to true.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Create a new product",
                "parameters": [
                    {
                        "description": "Product to create",
                        "name": "product",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.ProductRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/handlers.ProductResponse"}
                    },
                    "400": {
                        "description": "Bad Request - Invalid input",
                        "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}
                    }
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "description": "Returns a product based on the ID",
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Get a product by ID",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "The ID of the product to retrieve",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.ProductResponse"}
                    },
                    "400": {
                        "description": "Bad Request - Invalid ID",
                        "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            },
            "put": {
                "description": "Overwrites name, price and availability and returns the updated product",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Update a product by ID",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "The ID of the product to update",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New product values",
                        "name": "product",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.ProductRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.ProductResponse"}
                    },
                    "400": {
                        "description": "Bad Request - Invalid ID or Invalid input data",
                        "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            },
            "patch": {
                "description": "Flips the stored availability of the product. The request body is ignored.",
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Toggle product availability",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "The ID of the product to update",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.ProductResponse"}
                    },
                    "400": {
                        "description": "Bad Request - Invalid ID",
                        "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            },
            "delete": {
                "description": "Removes a product from the database and returns it",
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Delete a product by ID",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "The ID of the product to delete",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.ProductResponse"}
                    },
                    "400": {
                        "description": "Bad Request - Invalid ID",
                        "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "models.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Teclado"},
                "price": {"type": "number", "example": 200},
                "availability": {"type": "boolean", "example": true},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "handlers.ProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 255, "example": "Teclado"},
                "price": {"type": "number", "minimum": 0.01, "maximum": 99999999.99, "example": 300},
                "availability": {"type": "boolean", "example": true}
            }
        },
        "handlers.ProductResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/models.Product"}
            }
        },
        "handlers.ProductListResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/models.Product"}
                }
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Producto no encontrado"}
            }
        },
        "validation.FieldError": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "field"},
                "value": {},
                "msg": {"type": "string", "example": "ID no valido"},
                "path": {"type": "string", "example": "id"},
                "location": {"type": "string", "example": "params"}
            }
        },
        "handlers.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "errors": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/validation.FieldError"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "REST API Go / Fiber / GORM",
	Description:      "API Docs for products management",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
