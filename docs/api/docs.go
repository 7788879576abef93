// Package api registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs/api
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/agrolime/limeportal",
            "email": "info@localnerve.com"
        },
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/audit-logs": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Recent admin mutations",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Maximum rows (default 100, at most 1000)",
                        "type": "integer"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/calculator-usage": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Calculator runs per calculator",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/fertilization-products": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "All fertilization products, including inactive",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Create a fertilization product",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "name": "product",
                        "in": "body",
                        "required": true,
                        "description": "Product",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/fertilization-products/{id}": {
            "put": {
                "tags": [
                    "Admin"
                ],
                "summary": "Replace a fertilization product",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Product ID",
                        "type": "string"
                    },
                    {
                        "name": "product",
                        "in": "body",
                        "required": true,
                        "description": "Product",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Admin"
                ],
                "summary": "Delete a fertilization product",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Product ID",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/images": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "All portal images, including inactive",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "name": "section",
                        "in": "query",
                        "required": false,
                        "description": "Page section",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Add a portal image",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "name": "image",
                        "in": "body",
                        "required": true,
                        "description": "Image",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/images/{id}": {
            "put": {
                "tags": [
                    "Admin"
                ],
                "summary": "Replace a portal image",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Image ID",
                        "type": "string"
                    },
                    {
                        "name": "image",
                        "in": "body",
                        "required": true,
                        "description": "Image",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Admin"
                ],
                "summary": "Delete a portal image",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Image ID",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/leads": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Contact form leads",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "Lead status filter",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/leads/{id}/status": {
            "patch": {
                "tags": [
                    "Admin"
                ],
                "summary": "Set a lead's follow-up status",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Lead ID",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "body",
                        "required": true,
                        "description": "new, contacted or closed",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/liming-products": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "All liming products, including inactive",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Create a liming product",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                },
                "parameters": [
                    {
                        "name": "product",
                        "in": "body",
                        "required": true,
                        "description": "Product",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/liming-products/{id}": {
            "put": {
                "tags": [
                    "Admin"
                ],
                "summary": "Replace a liming product",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Product ID",
                        "type": "string"
                    },
                    {
                        "name": "product",
                        "in": "body",
                        "required": true,
                        "description": "Product",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Admin"
                ],
                "summary": "Delete a liming product",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Product ID",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/profiles": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "All user profiles",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/profiles/{id}/role": {
            "patch": {
                "tags": [
                    "Admin"
                ],
                "summary": "Grant or revoke the admin role",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Profile ID",
                        "type": "string"
                    },
                    {
                        "name": "role",
                        "in": "body",
                        "required": true,
                        "description": "user or admin",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/reports/requests.xlsx": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Liming requests as Excel workbook",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                },
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "Request status filter",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/requests": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "All liming requests",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "Status filter",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/admin/requests/{id}/status": {
            "patch": {
                "tags": [
                    "Admin"
                ],
                "summary": "Move a liming request through its workflow",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Request ID",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "body",
                        "required": true,
                        "description": "New status",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/calculators/convert": {
            "post": {
                "tags": [
                    "Calculators"
                ],
                "summary": "Convert between nutrient forms",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "description": "Mass and forms",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/calculators/economic-loss": {
            "post": {
                "tags": [
                    "Calculators"
                ],
                "summary": "Yield and money lost to soil acidity",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "description": "pH, yield, price and area",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/calculators/liming": {
            "post": {
                "tags": [
                    "Calculators"
                ],
                "summary": "Liming dose for a parcel",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "description": "Soil and product",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/calculators/nutrient": {
            "post": {
                "tags": [
                    "Calculators"
                ],
                "summary": "Product dose for a nutrient requirement",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "description": "Requirement and product content",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/config/public": {
            "get": {
                "tags": [
                    "Public"
                ],
                "summary": "Public site configuration",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Service health",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "503": {
                        "description": "Service Unavailable"
                    }
                }
            }
        },
        "/images": {
            "get": {
                "tags": [
                    "Public"
                ],
                "summary": "Active portal images",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                },
                "parameters": [
                    {
                        "name": "section",
                        "in": "query",
                        "required": false,
                        "description": "Page section",
                        "type": "string"
                    }
                ]
            }
        },
        "/leads": {
            "post": {
                "tags": [
                    "Public"
                ],
                "summary": "Submit the contact form",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                },
                "parameters": [
                    {
                        "name": "lead",
                        "in": "body",
                        "required": true,
                        "description": "Contact form",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/portal/analyses/{id}": {
            "delete": {
                "tags": [
                    "Portal"
                ],
                "summary": "Delete a soil analysis",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Analysis ID",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/portal/parcels": {
            "get": {
                "tags": [
                    "Portal"
                ],
                "summary": "Own parcels",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Portal"
                ],
                "summary": "Add a parcel",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "name": "parcel",
                        "in": "body",
                        "required": true,
                        "description": "Parcel",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/portal/parcels/{id}": {
            "get": {
                "tags": [
                    "Portal"
                ],
                "summary": "One own parcel",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Parcel ID",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "Portal"
                ],
                "summary": "Update a parcel",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Parcel ID",
                        "type": "string"
                    },
                    {
                        "name": "parcel",
                        "in": "body",
                        "required": true,
                        "description": "Parcel",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Portal"
                ],
                "summary": "Delete a parcel and its soil analyses",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Parcel ID",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/portal/parcels/{id}/analyses": {
            "get": {
                "tags": [
                    "Portal"
                ],
                "summary": "Soil analyses of a parcel, newest first",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Parcel ID",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Portal"
                ],
                "summary": "Add soil analyses",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Parcel ID",
                        "type": "string"
                    },
                    {
                        "name": "analyses",
                        "in": "body",
                        "required": true,
                        "description": "Analyses",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/portal/profile": {
            "get": {
                "tags": [
                    "Portal"
                ],
                "summary": "Own profile",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "Portal"
                ],
                "summary": "Update own profile",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "parameters": [
                    {
                        "name": "profile",
                        "in": "body",
                        "required": true,
                        "description": "Profile",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/portal/reports/parcels.pdf": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Parcel report as PDF",
                "produces": [
                    "application/pdf"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/portal/reports/parcels.xlsx": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Parcel report as Excel workbook",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/portal/requests": {
            "get": {
                "tags": [
                    "Portal"
                ],
                "summary": "Own liming requests",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Portal"
                ],
                "summary": "Request a liming service",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Request",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/portal/requests/{id}/cancel": {
            "post": {
                "tags": [
                    "Portal"
                ],
                "summary": "Cancel an own liming request",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Request ID",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/portal/sync": {
            "get": {
                "tags": [
                    "Portal"
                ],
                "summary": "Snapshot of everything the portal caches",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/products/fertilization": {
            "get": {
                "tags": [
                    "Public"
                ],
                "summary": "Active fertilization products",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/products/liming": {
            "get": {
                "tags": [
                    "Public"
                ],
                "summary": "Active liming products",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "name": "cookie_session",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Lime Portal API",
	Description:      "Liming and fertilization consultancy portal: product catalog, calculators, customer parcels and liming requests",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
