// Package docs registra el documento OpenAPI con swag. Regenerar con
// `swag init -g cmd/api/main.go` tras cambiar las anotaciones de los handlers.
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Registrar usuario", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/me": {
            "get": {"tags": ["users"], "summary": "Perfil propio", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["users"], "summary": "Actualizar perfil", "responses": {"200": {"description": "OK"}}}
        },
        "/me/following": {"get": {"tags": ["follows"], "summary": "Mascotas seguidas", "responses": {"200": {"description": "OK"}}}},
        "/pets": {
            "post": {"tags": ["pets"], "summary": "Crear mascota", "responses": {"201": {"description": "Created"}}},
            "get": {"tags": ["pets"], "summary": "Mis mascotas", "responses": {"200": {"description": "OK"}}}
        },
        "/pets/public": {"get": {"tags": ["pets"], "summary": "Mascotas públicas", "responses": {"200": {"description": "OK"}}}},
        "/pets/{petID}": {
            "get": {"tags": ["pets"], "summary": "Ver mascota", "parameters": [{"type": "integer", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["pets"], "summary": "Actualizar mascota", "parameters": [{"type": "integer", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/pets/{petID}/recommendations": {"get": {"tags": ["pets"], "summary": "Recomendaciones de cuidado", "parameters": [{"type": "integer", "name": "petID", "in": "path", "required": true}, {"type": "boolean", "name": "refresh", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/pets/{petID}/follow": {
            "get": {"tags": ["follows"], "summary": "¿Sigo a esta mascota?", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["follows"], "summary": "Seguir mascota", "responses": {"201": {"description": "Created"}}},
            "delete": {"tags": ["follows"], "summary": "Dejar de seguir", "responses": {"204": {"description": "No Content"}}}
        },
        "/pets/{petID}/posts": {"get": {"tags": ["posts"], "summary": "Posts de una mascota", "responses": {"200": {"description": "OK"}}}},
        "/pets/{petID}/medical-records": {
            "post": {"tags": ["medical"], "summary": "Crear registro médico", "responses": {"201": {"description": "Created"}}},
            "get": {"tags": ["medical"], "summary": "Historial médico", "responses": {"200": {"description": "OK"}}}
        },
        "/feed": {"get": {"tags": ["posts"], "summary": "Feed", "parameters": [{"type": "integer", "name": "limit", "in": "query"}, {"type": "integer", "name": "offset", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/posts": {"post": {"tags": ["posts"], "summary": "Crear post", "responses": {"201": {"description": "Created"}}}},
        "/posts/{postID}/like": {
            "post": {"tags": ["posts"], "summary": "Like", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["posts"], "summary": "Quitar like", "responses": {"200": {"description": "OK"}}}
        },
        "/posts/{postID}/comments": {
            "post": {"tags": ["posts"], "summary": "Comentar", "responses": {"201": {"description": "Created"}}},
            "get": {"tags": ["posts"], "summary": "Comentarios", "responses": {"200": {"description": "OK"}}}
        },
        "/matches": {"get": {"tags": ["matches"], "summary": "Mis swipes/matches", "parameters": [{"type": "boolean", "name": "mutual", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/matches/potential": {"get": {"tags": ["matches"], "summary": "Candidatos", "responses": {"200": {"description": "OK"}}}},
        "/matches/swipe": {"post": {"tags": ["matches"], "summary": "Swipe", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/uploads": {"post": {"tags": ["uploads"], "summary": "Subir imagen", "consumes": ["multipart/form-data"], "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}], "responses": {"201": {"description": "Created"}}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "pet-social API",
	Description:      "Red social de mascotas: perfiles, posts, follows, matches e historial médico.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
