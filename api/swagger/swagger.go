package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Internship Roster API",
        "description": "Roster and schedule tracker for hospital internship students",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Shared-password sessions"},
        {"name": "Roster", "description": "Student roster and schedules"},
        {"name": "Import", "description": "CSV ingestion"},
        {"name": "Export", "description": "CSV downloads"},
        {"name": "Attendance", "description": "Attendance ledger"},
        {"name": "Visits", "description": "Hospital site visits"},
        {"name": "Settings", "description": "Application settings"},
        {"name": "Stats", "description": "Dataset summary"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Log in with a shared password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid password"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Log out",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/verify": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Verify the current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/password": {
            "put": {
                "tags": ["Authentication"],
                "summary": "Rotate a shared password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Admin role required"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Roster"],
                "summary": "List students with schedules",
                "parameters": [
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "hospital", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{studentNumber}/schedules": {
            "get": {
                "tags": ["Roster"],
                "summary": "List one student's schedules",
                "parameters": [
                    {"name": "studentNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/schedules/{id}": {
            "put": {
                "tags": ["Roster"],
                "summary": "Edit a schedule entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Entry not found"}
                }
            }
        },
        "/schedules/{id}/absence": {
            "post": {
                "tags": ["Roster"],
                "summary": "Mark a schedule entry absent",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Entry not found"}
                }
            }
        },
        "/import/unified": {
            "post": {
                "tags": ["Import"],
                "summary": "Import the unified CSV",
                "consumes": ["text/csv", "multipart/form-data"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "No valid student rows"}
                }
            }
        },
        "/import/legacy": {
            "post": {
                "tags": ["Import"],
                "summary": "Import the legacy two-section CSV",
                "consumes": ["text/csv", "multipart/form-data"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "No valid student rows"}
                }
            }
        },
        "/roster": {
            "delete": {
                "tags": ["Import"],
                "summary": "Delete the whole roster",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/export/unified": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the unified CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/export/legacy": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the legacy two-section CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/export/template": {
            "get": {
                "tags": ["Export"],
                "summary": "Download a blank import template",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance marks",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "period", "in": "query", "type": "integer"},
                    {"name": "student_number", "in": "query", "type": "string"},
                    {"name": "track", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record an attendance mark",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Attendance"],
                "summary": "Delete an attendance mark",
                "parameters": [
                    {"name": "student_number", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "period", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/attendance/export/csv": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download the attendance ledger as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/attendance/export/pdf": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download the attendance ledger as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF payload"}
                }
            }
        },
        "/visits": {
            "get": {
                "tags": ["Visits"],
                "summary": "List hospital visits",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Visits"],
                "summary": "Confirm a hospital visit",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordVisitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Visits"],
                "summary": "Delete a hospital visit",
                "parameters": [
                    {"name": "hospital", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "List settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/settings/{key}": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get one setting",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Setting not found"}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Set one setting",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertSettingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Credential keys are not writable here"}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Dataset summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["viewer", "admin"]},
                "password": {"type": "string"}
            },
            "required": ["role", "password"]
        },
        "UpdatePasswordRequest": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["viewer", "admin"]},
                "password": {"type": "string"}
            },
            "required": ["role", "password"]
        },
        "UpdateScheduleRequest": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"}
            },
            "required": ["symbol"]
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "properties": {
                "student_number": {"type": "string"},
                "attendance_date": {"type": "string"},
                "period": {"type": "integer"},
                "status": {"type": "string"}
            },
            "required": ["student_number", "attendance_date", "period", "status"]
        },
        "RecordVisitRequest": {
            "type": "object",
            "properties": {
                "hospital": {"type": "string"},
                "visit_date": {"type": "string"},
                "comment": {"type": "string"},
                "visited_by": {"type": "string"}
            },
            "required": ["hospital", "visit_date"]
        },
        "UpsertSettingRequest": {
            "type": "object",
            "properties": {
                "value": {"type": "string"}
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
