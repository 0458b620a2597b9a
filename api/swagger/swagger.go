package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Availability API",
        "description": "Free-slot availability service in front of the Cal.com booking platform",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Free-slot computation"},
        {"name": "Bookings", "description": "Booking forwarding and event types"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "Free slots for a date or date range",
                "parameters": [
                    {"name": "username", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/slots/range": {
            "get": {
                "tags": ["Availability"],
                "summary": "Free slots for an explicit date range",
                "parameters": [
                    {"name": "username", "in": "query", "type": "string", "required": true},
                    {"name": "dateFrom", "in": "query", "type": "string", "required": true},
                    {"name": "dateTo", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/free-schedule": {
            "get": {
                "tags": ["Availability"],
                "summary": "Free intervals from date-pinned schedule entries",
                "parameters": [
                    {"name": "username", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/event-types": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List bookable event types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/bookings": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Forward a booking to the upstream platform",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "FreeSlot": {
            "type": "object",
            "properties": {
                "start": {"type": "string", "example": "2024-03-01T09:00:00+05:30"},
                "end": {"type": "string", "example": "2024-03-01T12:00:00+05:30"}
            }
        },
        "CreateBookingRequest": {
            "type": "object",
            "required": ["start"],
            "properties": {
                "eventTypeId": {"type": "integer"},
                "eventTypeSlug": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "object"},
                "metadata": {"type": "object"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
