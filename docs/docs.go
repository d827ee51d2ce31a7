// Package docs holds the generated swagger spec. Regenerate with:
//
//	swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/favorites": {
            "post": {
                "tags": ["favorites"],
                "summary": "Favorite a candidate",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/favorites/{job_id}": {
            "get": {
                "tags": ["favorites"],
                "summary": "List favorites",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/roles": {
            "get": {
                "tags": ["roles"],
                "summary": "List roles",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/search/cancel": {
            "post": {
                "tags": ["search"],
                "summary": "Cancel search",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/search/search": {
            "post": {
                "tags": ["search"],
                "summary": "Search and rank candidates",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/upload/jd": {
            "post": {
                "tags": ["upload"],
                "summary": "Upload JD",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/upload/resumes/{jd_id}": {
            "post": {
                "tags": ["upload"],
                "summary": "Upload resumes",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Recruiter Platform API",
	Description:      "API for the multi-tenant recruiter platform: JD/resume upload and parsing, candidate search, LLM ranking and favorites.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
