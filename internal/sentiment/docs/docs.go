// Package docs registers the swagger document of the sentiment api service.
// Regenerate with: swag init -g cmd/api-service/main.go -o internal/sentiment/docs
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
                "description": "Report classifier and schema readiness. Always 200 so degraded state stays observable.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/history": {
            "get": {
                "description": "Get the newest stored records, optionally for one ticker. At most 100 records are returned.",
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Get stored sentiment records",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "ticker", "in": "query"},
                    {"type": "integer", "description": "Maximum number of records (1-100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HistoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/predict": {
            "post": {
                "description": "Run the sentiment model on arbitrary text without storing it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sentiment"],
                "summary": "Classify a single text",
                "parameters": [
                    {"description": "Text to classify", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PredictRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/sentiment": {
            "get": {
                "description": "Fetch recent news for a ticker, classify every headline and store the results",
                "produces": ["application/json"],
                "tags": ["sentiment"],
                "summary": "Analyze news sentiment for a ticker",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "ticker", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AnalysisResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AnalysisResult": {
            "type": "object",
            "properties": {
                "counts": {"$ref": "#/definitions/dto.SentimentCounts"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.AnalyzedItem"}},
                "persisted": {"type": "boolean"},
                "ticker": {"type": "string"},
                "verdict": {"type": "string"}
            }
        },
        "dto.AnalyzedItem": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number"},
                "headline": {"type": "string"},
                "published": {"type": "string"},
                "sentiment": {"type": "string"},
                "source": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "classifier_state": {"type": "string"},
                "model_loaded": {"type": "boolean"},
                "schema_ready": {"type": "boolean"},
                "status": {"type": "string"}
            }
        },
        "dto.HistoryResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/dto.SentimentRecordResponse"}}
            }
        },
        "dto.PredictRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "dto.PredictResponse": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number"},
                "input_preview": {"type": "string"},
                "sentiment": {"type": "string"}
            }
        },
        "dto.SentimentCounts": {
            "type": "object",
            "properties": {
                "bearish": {"type": "integer"},
                "bullish": {"type": "integer"},
                "neutral": {"type": "integer"},
                "total_analyzed": {"type": "integer"}
            }
        },
        "dto.SentimentRecordResponse": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number"},
                "created_at": {"type": "string"},
                "headline": {"type": "string"},
                "id": {"type": "integer"},
                "sentiment": {"type": "string"},
                "source": {"type": "string"},
                "ticker": {"type": "string"}
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
	Title:            "Financial News Sentiment API",
	Description:      "Scores financial news headlines for a ticker and keeps the history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
