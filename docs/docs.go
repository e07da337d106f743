// Package docs описание HTTP API для Swagger UI
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Проверка состояния",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}},
                    "503": {"description": "Журнал недоступен", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/api/intents": {
            "get": {
                "produces": ["application/json"],
                "tags": ["intents"],
                "summary": "Каталог намерений",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.IntentsResponse"}}
                }
            }
        },
        "/api/classify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["routing"],
                "summary": "Классифицировать сообщение",
                "parameters": [
                    {"description": "Сообщение", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ClassifyResponse"}},
                    "400": {"description": "Неверный запрос", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/extract": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["routing"],
                "summary": "Извлечь сущности",
                "parameters": [
                    {"description": "Сообщение", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ExtractResponse"}},
                    "400": {"description": "Неверный запрос", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/route": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["routing"],
                "summary": "Маршрутизировать сообщение",
                "parameters": [
                    {"description": "Сообщение", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RouteResponse"}},
                    "400": {"description": "Неверный запрос", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/resolve": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resolver"],
                "summary": "Разрешить ссылку на имя",
                "parameters": [
                    {"description": "Ссылка и кандидаты", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ResolveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resolver.Resolution"}},
                    "400": {"description": "Неверный запрос", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/journal/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Последние решения",
                "parameters": [
                    {"type": "integer", "description": "Количество записей", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.JournalRecentResponse"}},
                    "400": {"description": "Неверный запрос", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Журнал отключен", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/journal/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Статистика намерений",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.JournalStatsResponse"}},
                    "503": {"description": "Журнал отключен", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/errors/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Метрики ошибок API",
                "parameters": [
                    {"type": "integer", "description": "Сколько последних ошибок вернуть", "name": "last", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.TextRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "example": "три кастома мелиса"},
                "format": {"type": "string", "enum": ["text", "html"], "example": "text"},
                "trace": {"type": "boolean"}
            }
        },
        "classification.Decision": {
            "type": "object",
            "properties": {
                "intent": {"type": "string"},
                "rule": {"type": "integer"},
                "priority": {"type": "integer"},
                "match_kind": {"type": "string", "enum": ["phrase", "keyword", "pattern", "fallback"]},
                "trigger": {"type": "string"},
                "vetoed": {"type": "array", "items": {"type": "string"}},
                "gated": {"type": "array", "items": {"type": "string"}}
            }
        },
        "extractors.EntitySet": {
            "type": "object",
            "properties": {
                "primary_reference": {"type": "string"},
                "references": {"type": "array", "items": {"type": "string"}},
                "numbers": {"type": "array", "items": {"type": "integer"}},
                "category": {"type": "string"},
                "date_text": {"type": "string"},
                "comment_text": {"type": "string"},
                "comment_target": {"type": "string", "enum": ["order", "shoot", "account"]}
            }
        },
        "router.PrefilterResult": {
            "type": "object",
            "properties": {
                "passed": {"type": "boolean"},
                "reason": {"type": "string", "enum": ["empty", "bot_command", "too_short", "gibberish"]},
                "message": {"type": "string"}
            }
        },
        "handlers.ClassifyResponse": {
            "type": "object",
            "properties": {
                "intent": {"type": "string", "example": "CREATE_ORDER"},
                "description": {"type": "string"},
                "decision": {"$ref": "#/definitions/classification.Decision"},
                "generation": {"type": "integer"}
            }
        },
        "handlers.ExtractResponse": {
            "type": "object",
            "properties": {
                "entities": {"$ref": "#/definitions/extractors.EntitySet"},
                "generation": {"type": "integer"}
            }
        },
        "handlers.RouteResponse": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "intent": {"type": "string"},
                "entities": {"$ref": "#/definitions/extractors.EntitySet"},
                "prefilter": {"$ref": "#/definitions/router.PrefilterResult"},
                "decision": {"$ref": "#/definitions/classification.Decision"},
                "generation": {"type": "integer"},
                "journal_id": {"type": "string"}
            }
        },
        "handlers.IntentsResponse": {
            "type": "object",
            "properties": {
                "schema_version": {"type": "integer"},
                "rules_version": {"type": "integer"},
                "generation": {"type": "integer"},
                "intents": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "intent": {"type": "string"},
                            "description": {"type": "string"},
                            "examples": {"type": "array", "items": {"type": "string"}},
                            "has_rule": {"type": "boolean"}
                        }
                    }
                }
            }
        },
        "resolver.Candidate": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "aliases": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.ResolveRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string", "example": "мелисы"},
                "candidates": {"type": "array", "items": {"$ref": "#/definitions/resolver.Candidate"}}
            }
        },
        "resolver.Match": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "aliases": {"type": "array", "items": {"type": "string"}},
                "score": {"type": "number"},
                "match_type": {"type": "string", "enum": ["exact", "alias", "stem", "substring", "fuzzy"]}
            }
        },
        "resolver.Resolution": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["found", "confirm", "multiple", "not_found"]},
                "match": {"$ref": "#/definitions/resolver.Match"},
                "matches": {"type": "array", "items": {"$ref": "#/definitions/resolver.Match"}}
            }
        },
        "database.JournalEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "request_id": {"type": "string"},
                "text": {"type": "string"},
                "intent": {"type": "string"},
                "rule": {"type": "integer"},
                "match_kind": {"type": "string"},
                "primary_reference": {"type": "string"},
                "numbers": {"type": "array", "items": {"type": "integer"}},
                "category": {"type": "string"},
                "passed": {"type": "boolean"},
                "reason": {"type": "string"},
                "generation": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "handlers.JournalRecentResponse": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/database.JournalEntry"}},
                "count": {"type": "integer"}
            }
        },
        "handlers.JournalStatsResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "intents": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "intent": {"type": "string"},
                            "count": {"type": "integer"}
                        }
                    }
                }
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "generation": {"type": "integer"},
                "rules_version": {"type": "integer"},
                "rules": {"type": "integer"},
                "journal": {"type": "string", "example": "ok"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "timestamp": {"type": "string"},
                "request_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo описание API, экспортируется для переопределения хоста при запуске
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9999",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Intent Router API",
	Description:      "Определение намерений и извлечение сущностей из сообщений чата",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
