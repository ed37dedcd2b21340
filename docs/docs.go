// Package docs registers the OpenAPI document served at /swagger/doc.json
// when the daemon is built with -tags swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "searchd maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/should_search": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Score an observation and store the prediction",
                "parameters": [
                    {
                        "description": "Observation",
                        "name": "observation",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.Observation"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/search_result": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Record the real outcome for a stored prediction",
                "parameters": [
                    {
                        "description": "Outcome",
                        "name": "outcome",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.OutcomeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.OutcomeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/predictions": {
            "get": {
                "produces": ["application/json"],
                "summary": "List stored predictions, newest first",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "maximum rows to return",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictionsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "summary": "Model and store status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["text/plain"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["text/plain"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "types.Observation": {
            "type": "object",
            "properties": {
                "observation_id": {"type": "string"},
                "Type": {"type": "string"},
                "Date": {"type": "string"},
                "Part of a policing operation": {"type": "boolean"},
                "Latitude": {"type": "number"},
                "Longitude": {"type": "number"},
                "Gender": {"type": "string"},
                "Age range": {"type": "string"},
                "Officer-defined ethnicity": {"type": "string"},
                "Legislation": {"type": "string"},
                "Object of search": {"type": "string"},
                "station": {"type": "string"}
            }
        },
        "types.PredictResponse": {
            "type": "object",
            "properties": {
                "observation_id": {"type": "string"},
                "outcome": {"type": "boolean"},
                "proba": {"type": "number"}
            }
        },
        "types.OutcomeRequest": {
            "type": "object",
            "properties": {
                "observation_id": {"type": "string"},
                "outcome": {"type": "boolean"}
            }
        },
        "types.OutcomeResponse": {
            "type": "object",
            "properties": {
                "observation_id": {"type": "string"},
                "outcome": {"type": "boolean"},
                "predicted_outcome": {"type": "boolean"}
            }
        },
        "types.PredictionsResponse": {
            "type": "object",
            "properties": {
                "predictions": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/types.PredictionRecord"}
                }
            }
        },
        "types.PredictionRecord": {
            "type": "object",
            "properties": {
                "observation_id": {"type": "string"},
                "observation": {"type": "object"},
                "prediction": {"type": "boolean"},
                "proba": {"type": "number"},
                "true_class": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string"},
                "model": {"type": "object"},
                "store": {"type": "object"},
                "error": {"type": "string"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds the exported document metadata, in the shape swag's
// generated output uses so http-swagger can resolve /swagger/doc.json.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "searchd API",
	Description:      "HTTP API serving stop-and-search predictions from a pre-trained classifier.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
