// Package docs registers the swagger document of the scheduling service.
// Regenerate with: swag init -g cmd/scheduling-service/main.go -o internal/scheduler/docs
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
        "/watchlist": {
            "get": {
                "description": "Get the scheduled tickers, cron expression and next run time",
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Get the watchlist",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.WatchlistResponse"}}
                }
            }
        },
        "/watchlist/run": {
            "post": {
                "description": "Publish an analysis request for every watchlist ticker outside its cooldown",
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Enqueue the whole watchlist now",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}}
                }
            }
        },
        "/watchlist/{ticker}/enqueue": {
            "post": {
                "description": "Publish an analysis request for a single ticker",
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Enqueue one ticker",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "ticker", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Skipped because of cooldown", "schema": {"$ref": "#/definitions/dto.EnqueueResponse"}},
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.EnqueueResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/sentimentdto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/sentimentdto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.EnqueueResponse": {
            "type": "object",
            "properties": {
                "enqueued": {"type": "boolean"},
                "message_id": {"type": "string"},
                "reason": {"type": "string"},
                "ticker": {"type": "string"}
            }
        },
        "sentimentdto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "dto.WatchlistResponse": {
            "type": "object",
            "properties": {
                "cooldown": {"type": "string"},
                "cron": {"type": "string"},
                "next_run": {"type": "string"},
                "tickers": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Sentiment Watchlist Scheduler API",
	Description:      "Publishes scheduled sentiment analysis requests for a ticker watchlist.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
