// Package docs registra el documento OpenAPI servido en /swagger/*.
// Se mantiene a mano junto a las anotaciones godoc de los handlers;
// si cambia una ruta o un payload, actualizar docTemplate.
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
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión (setea cookie \"session\")",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/auth.Result"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/auth.Result"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/auth.Result"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Cerrar sesión (borra cookie)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Result"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Usuario de la sesión actual",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.userResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Crear cuenta",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/auth.Result"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/auth.Result"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/auth.Result"}}
                }
            }
        },
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listado paginado de mascotas",
                "parameters": [
                    {"type": "string", "description": "busca en nombre de mascota o dueño", "name": "q", "in": "query"},
                    {"type": "integer", "description": "página (1-based)", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.ListResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Alta de mascota (dueño = usuario de la sesión)",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/pets.Result"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Perfil de mascota",
                "parameters": [{"type": "integer", "description": "id", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.PetResponse"}},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Edición de mascota (solo dueño)",
                "parameters": [{"type": "integer", "description": "id", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/pets.Result"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Baja de mascota (solo dueño)",
                "parameters": [{"type": "integer", "description": "id", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.Result"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/pets.Result"}}
                }
            }
        }
    },
    "definitions": {
        "auth.Result": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "auth.userResponse": {
            "type": "object",
            "properties": {
                "contact": {"type": "string"},
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "pets.ListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/pets.PetResponse"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "q": {"type": "string"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "pets.PetResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "string"},
                "birth_date": {"type": "string"},
                "breed": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "is_owner": {"type": "boolean"},
                "name": {"type": "string"},
                "owner_name": {"type": "string"},
                "owner_phone": {"type": "string"},
                "owner_user_id": {"type": "integer"},
                "type": {"$ref": "#/definitions/pets.Type"},
                "updated_at": {"type": "string"}
            }
        },
        "pets.Result": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "id": {"type": "integer"},
                "success": {"type": "boolean"}
            }
        },
        "pets.Type": {
            "type": "string",
            "enum": ["DOG", "CAT"],
            "x-enum-varnames": ["TypeDog", "TypeCat"]
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "softpet API",
	Description:      "Registro de mascotas multiusuario: sesiones, ownership y validación.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
