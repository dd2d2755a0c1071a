// Package docs registers the OpenAPI document served under /swagger.
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
        "/trips/filter": {
            "post": {
                "description": "Skips language understanding and runs search, enrichment, filtering and scheduling directly.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Build an itinerary from structured trip parameters",
                "parameters": [
                    {
                        "description": "Trip parameters",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.TripParameters"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TripResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorBody"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.ErrorBody"}}
                }
            }
        },
        "/trips/resolve": {
            "post": {
                "description": "Extracts trip parameters from the prompt, then searches, filters and schedules places.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Resolve a free-text trip request into an itinerary",
                "parameters": [
                    {
                        "description": "Free-text trip request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.ResolveTripRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TripResponse"}},
                    "400": {"description": "Invalid or unactionable request", "schema": {"$ref": "#/definitions/api.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorBody"}},
                    "502": {"description": "Place directory or language model unavailable", "schema": {"$ref": "#/definitions/api.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "request_id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "types.Coordinates": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "types.ResolveTripRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string", "example": "Two days in Lisbon with my partner, we love seafood"}
            }
        },
        "types.ScheduledPlace": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "category": {"type": "string", "enum": ["restaurant", "tourist", "transit"]},
                "name": {"type": "string"},
                "location": {"$ref": "#/definitions/types.Coordinates"},
                "business_status": {"type": "string"},
                "rating": {"type": "number"},
                "user_ratings_total": {"type": "integer"},
                "price_level": {"type": "integer"},
                "opening_hours": {"type": "string"},
                "description": {"type": "string"},
                "address": {"type": "string"},
                "icon": {"type": "string"},
                "score": {"type": "number"},
                "day": {"type": "integer"},
                "time": {"type": "string", "example": "09:30"}
            }
        },
        "types.TripParameters": {
            "type": "object",
            "properties": {
                "locations": {"type": "array", "items": {"type": "string"}},
                "origin": {"type": "string"},
                "duration": {"type": "integer"},
                "mode_of_transport": {"type": "string", "enum": ["DRIVING", "WALKING", "BICYCLING", "TRANSIT"]},
                "budget": {"type": "string", "enum": ["low", "medium", "high"]},
                "timings": {"type": "string", "example": "07:00-20:00"},
                "distance": {"type": "number"},
                "cuisine": {"type": "string"},
                "attraction": {"type": "string"},
                "no_of_people": {"type": "integer"},
                "type_of_trip": {"type": "string"}
            }
        },
        "types.TripResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "prompt": {"$ref": "#/definitions/types.TripParameters"},
                "places": {"type": "array", "items": {"$ref": "#/definitions/types.ScheduledPlace"}}
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
	Title:            "Trip Itinerary API",
	Description:      "Turns free-text trip requests into day-by-day itineraries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
