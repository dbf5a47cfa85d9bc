package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lecturer Admin API",
        "description": "Internal administration of lecturers, courses, assignments and qualifications",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Lecturers",
            "description": "Lecturer roster"
        },
        {
            "name": "Courses",
            "description": "Course catalogue"
        },
        {
            "name": "Assignments",
            "description": "Lecturer to course assignments"
        },
        {
            "name": "Qualifications",
            "description": "Lecturer experience and lead time per course"
        },
        {
            "name": "Exports",
            "description": "CSV and PDF downloads of filtered listings"
        }
    ],
    "paths": {
        "/lecturers": {
            "get": {
                "tags": [
                    "Lecturers"
                ],
                "summary": "List lecturers",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Zero-based page index"
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page size (max 100)"
                    },
                    {
                        "name": "sortBy",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Sort column"
                    },
                    {
                        "name": "sortOrder",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "asc or desc"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Global search"
                    },
                    {
                        "name": "type",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Comma separated lecturer types"
                    },
                    {
                        "name": "courseLevelPreference",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Comma separated preferences; bachelor or master also match both"
                    },
                    {
                        "name": "courseId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Comma separated course ids"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Lecturers"
                ],
                "summary": "Create lecturer",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateLecturerRequest"
                        }
                    }
                ]
            }
        },
        "/lecturers/export": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Export lecturers matching the listing state",
                "responses": {
                    "200": {
                        "description": "File download",
                        "schema": {
                            "type": "file"
                        },
                        "headers": {
                            "X-Export-Truncated": {
                                "type": "boolean",
                                "description": "True when the file holds fewer rows than matched"
                            },
                            "X-Total-Count": {
                                "type": "integer",
                                "description": "Rows matching the listing state"
                            }
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "csv (default) or pdf"
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf"
                ]
            }
        },
        "/lecturers/bulk-delete": {
            "post": {
                "tags": [
                    "Lecturers"
                ],
                "summary": "Delete several lecturers",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/BulkDeleteRequest"
                        }
                    }
                ]
            }
        },
        "/lecturers/{id}": {
            "get": {
                "tags": [
                    "Lecturers"
                ],
                "summary": "Get lecturer",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    }
                ]
            },
            "put": {
                "tags": [
                    "Lecturers"
                ],
                "summary": "Update lecturer",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateLecturerRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Lecturers"
                ],
                "summary": "Delete lecturer with its assignments and qualifications",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    }
                ]
            }
        },
        "/lecturers/{id}/courses": {
            "get": {
                "tags": [
                    "Assignments"
                ],
                "summary": "List courses assigned to a lecturer",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    }
                ]
            },
            "put": {
                "tags": [
                    "Assignments"
                ],
                "summary": "Reconcile the courses of a lecturer",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetAssignmentsRequest"
                        }
                    }
                ]
            }
        },
        "/lecturers/{id}/qualifications": {
            "get": {
                "tags": [
                    "Qualifications"
                ],
                "summary": "List qualifications of a lecturer",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    }
                ]
            },
            "put": {
                "tags": [
                    "Qualifications"
                ],
                "summary": "Reconcile the qualifications of a lecturer",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetQualificationsRequest"
                        }
                    }
                ]
            }
        },
        "/courses": {
            "get": {
                "tags": [
                    "Courses"
                ],
                "summary": "List courses",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Zero-based page index"
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page size (max 100)"
                    },
                    {
                        "name": "sortBy",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Sort column"
                    },
                    {
                        "name": "sortOrder",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "asc or desc"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Global search"
                    },
                    {
                        "name": "isOpen",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Comma separated open flags"
                    },
                    {
                        "name": "courseLevel",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Comma separated course levels"
                    },
                    {
                        "name": "semester",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Comma separated semesters, none for courses without one"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Courses"
                ],
                "summary": "Create course",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateCourseRequest"
                        }
                    }
                ]
            }
        },
        "/courses/export": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Export courses matching the listing state",
                "responses": {
                    "200": {
                        "description": "File download",
                        "schema": {
                            "type": "file"
                        },
                        "headers": {
                            "X-Export-Truncated": {
                                "type": "boolean",
                                "description": "True when the file holds fewer rows than matched"
                            },
                            "X-Total-Count": {
                                "type": "integer",
                                "description": "Rows matching the listing state"
                            }
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "csv (default) or pdf"
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf"
                ]
            }
        },
        "/courses/bulk-delete": {
            "post": {
                "tags": [
                    "Courses"
                ],
                "summary": "Delete several courses",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/BulkDeleteRequest"
                        }
                    }
                ]
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": [
                    "Courses"
                ],
                "summary": "Get course",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    }
                ]
            },
            "put": {
                "tags": [
                    "Courses"
                ],
                "summary": "Update course",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateCourseRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Courses"
                ],
                "summary": "Delete course with its assignments and qualifications",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    }
                ]
            }
        },
        "/courses/{id}/lecturers": {
            "get": {
                "tags": [
                    "Assignments"
                ],
                "summary": "List lecturers assigned to a course",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    }
                ]
            },
            "put": {
                "tags": [
                    "Assignments"
                ],
                "summary": "Reconcile the lecturers of a course",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetAssignmentsRequest"
                        }
                    }
                ]
            }
        },
        "/courses/{id}/qualifications": {
            "get": {
                "tags": [
                    "Qualifications"
                ],
                "summary": "List qualifications for a course",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    }
                ]
            },
            "put": {
                "tags": [
                    "Qualifications"
                ],
                "summary": "Reconcile the qualifications of a course",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetQualificationsRequest"
                        }
                    }
                ]
            }
        },
        "/assignments": {
            "post": {
                "tags": [
                    "Assignments"
                ],
                "summary": "Assign a lecturer to a course",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RelationPair"
                        }
                    }
                ]
            }
        },
        "/assignments/{lecturerId}/{courseId}": {
            "delete": {
                "tags": [
                    "Assignments"
                ],
                "summary": "Remove an assignment",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "lecturerId",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    },
                    {
                        "name": "courseId",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    }
                ]
            }
        },
        "/qualifications": {
            "post": {
                "tags": [
                    "Qualifications"
                ],
                "summary": "Record a qualification",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateQualificationRequest"
                        }
                    }
                ]
            }
        },
        "/qualifications/{lecturerId}/{courseId}": {
            "put": {
                "tags": [
                    "Qualifications"
                ],
                "summary": "Create or replace qualification attributes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "lecturerId",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    },
                    {
                        "name": "courseId",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/QualificationAttributes"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Qualifications"
                ],
                "summary": "Remove a qualification",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "lecturerId",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Lecturer ID"
                    },
                    {
                        "name": "courseId",
                        "in": "path",
                        "type": "string",
                        "format": "uuid",
                        "required": true,
                        "description": "Course ID"
                    }
                ]
            }
        }
    },
    "definitions": {
        "CreateLecturerRequest": {
            "type": "object",
            "required": [
                "firstName",
                "lastName",
                "email",
                "phone",
                "type",
                "courseLevelPreference"
            ],
            "properties": {
                "title": {
                    "type": "string"
                },
                "firstName": {
                    "type": "string"
                },
                "secondName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string",
                    "format": "email"
                },
                "phone": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "internal",
                        "external"
                    ]
                },
                "courseLevelPreference": {
                    "type": "string",
                    "enum": [
                        "bachelor",
                        "master",
                        "both"
                    ]
                },
                "courseIds": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    }
                },
                "qualifications": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/QualificationInput"
                    }
                }
            }
        },
        "UpdateLecturerRequest": {
            "type": "object",
            "required": [
                "firstName",
                "lastName",
                "email",
                "phone",
                "type",
                "courseLevelPreference"
            ],
            "properties": {
                "title": {
                    "type": "string"
                },
                "firstName": {
                    "type": "string"
                },
                "secondName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string",
                    "format": "email"
                },
                "phone": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "internal",
                        "external"
                    ]
                },
                "courseLevelPreference": {
                    "type": "string",
                    "enum": [
                        "bachelor",
                        "master",
                        "both"
                    ]
                }
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": [
                "name",
                "isOpen",
                "courseLevel"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "isOpen": {
                    "type": "boolean"
                },
                "courseLevel": {
                    "type": "string",
                    "enum": [
                        "bachelor",
                        "master"
                    ]
                },
                "semester": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 12,
                    "x-nullable": true
                },
                "lecturerIds": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    }
                }
            }
        },
        "UpdateCourseRequest": {
            "type": "object",
            "required": [
                "name",
                "isOpen",
                "courseLevel"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "isOpen": {
                    "type": "boolean"
                },
                "courseLevel": {
                    "type": "string",
                    "enum": [
                        "bachelor",
                        "master"
                    ]
                },
                "semester": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 12,
                    "x-nullable": true
                }
            }
        },
        "QualificationInput": {
            "type": "object",
            "required": [
                "experience",
                "leadTime"
            ],
            "properties": {
                "lecturerId": {
                    "type": "string",
                    "format": "uuid"
                },
                "courseId": {
                    "type": "string",
                    "format": "uuid"
                },
                "experience": {
                    "type": "string",
                    "enum": [
                        "none",
                        "other_uni",
                        "provadis"
                    ]
                },
                "leadTime": {
                    "type": "string",
                    "enum": [
                        "short",
                        "four_weeks",
                        "more_weeks"
                    ]
                }
            }
        },
        "QualificationAttributes": {
            "type": "object",
            "required": [
                "experience",
                "leadTime"
            ],
            "properties": {
                "experience": {
                    "type": "string",
                    "enum": [
                        "none",
                        "other_uni",
                        "provadis"
                    ]
                },
                "leadTime": {
                    "type": "string",
                    "enum": [
                        "short",
                        "four_weeks",
                        "more_weeks"
                    ]
                }
            }
        },
        "RelationPair": {
            "type": "object",
            "required": [
                "lecturerId",
                "courseId"
            ],
            "properties": {
                "lecturerId": {
                    "type": "string",
                    "format": "uuid"
                },
                "courseId": {
                    "type": "string",
                    "format": "uuid"
                }
            }
        },
        "CreateQualificationRequest": {
            "type": "object",
            "required": [
                "lecturerId",
                "courseId",
                "experience",
                "leadTime"
            ],
            "properties": {
                "lecturerId": {
                    "type": "string",
                    "format": "uuid"
                },
                "courseId": {
                    "type": "string",
                    "format": "uuid"
                },
                "experience": {
                    "type": "string",
                    "enum": [
                        "none",
                        "other_uni",
                        "provadis"
                    ]
                },
                "leadTime": {
                    "type": "string",
                    "enum": [
                        "short",
                        "four_weeks",
                        "more_weeks"
                    ]
                }
            }
        },
        "BulkDeleteRequest": {
            "type": "object",
            "required": [
                "ids"
            ],
            "properties": {
                "ids": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "minItems": 1,
                    "maxItems": 500
                }
            }
        },
        "SetAssignmentsRequest": {
            "type": "object",
            "properties": {
                "ids": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    }
                }
            }
        },
        "SetQualificationsRequest": {
            "type": "object",
            "properties": {
                "qualifications": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/QualificationInput"
                    }
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "pageIndex": {
                    "type": "integer"
                },
                "pageSize": {
                    "type": "integer"
                },
                "pageCount": {
                    "type": "integer"
                },
                "rowCount": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "details": {
                    "type": "object"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
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
