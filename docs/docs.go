// Package docs builds the Swagger 2.0 description of the API and registers it with swag,
// where http-swagger serves it at /swagger/doc.json.
package docs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"boardgame-catalog-api/internal/application"

	"github.com/go-openapi/spec"
	"github.com/swaggo/swag"
)

// Info describes the API in the generated document
type Info struct {
	Title       string
	Description string
	Version     string
	Host        string
	BasePath    string
}

// DefaultInfo is used when the server does not override it
var DefaultInfo = Info{
	Title:       "Board Game Catalog API",
	Description: "CRUD API for games, users and reviews. Write operations require a login session.",
	Version:     "1.0.0",
	BasePath:    "/",
}

var examples = map[string]map[string]any{
	"game": {
		"title":         "Memoir '44",
		"publisher":     "Days of Wonder",
		"yearPublished": 2004,
		"minPlayers":    2,
		"maxPlayers":    2,
		"playTime":      60,
		"complexity":    "Medium",
		"genre":         "Wargame, Scenario-based",
		"description":   "A historical board game on the battles of World War II.",
	},
	"user": {
		"username": "boardgamer",
		"email":    "boardgamer@example.com",
		"reviews":  []string{},
	},
	"review": {
		"userId":  "665f1b2c3d4e5f6a7b8c9d0e",
		"gameId":  "665f1b2c3d4e5f6a7b8c9d0f",
		"rating":  4.5,
		"comment": "Great introduction to wargames.",
	},
}

// Build returns the Swagger document for the given resource schemas
func Build(info Info, resources ...application.Schema) *spec.Swagger {
	doc := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{InfoProps: spec.InfoProps{
				Title:       info.Title,
				Description: info.Description,
				Version:     info.Version,
			}},
			Host:        info.Host,
			BasePath:    info.BasePath,
			Consumes:    []string{"application/json"},
			Produces:    []string{"application/json"},
			Paths:       &spec.Paths{Paths: map[string]spec.PathItem{}},
			Definitions: spec.Definitions{},
		},
	}

	doc.Definitions["Message"] = *objectSchema(map[string]spec.Schema{
		"message": *spec.StringProperty(),
	}, "message")
	doc.Definitions["CreatedID"] = *objectSchema(map[string]spec.Schema{
		"id": *spec.StringProperty().WithDescription("24 character hex object id"),
	}, "id")
	doc.Definitions["ValidationErrors"] = *objectSchema(map[string]spec.Schema{
		"errors": *spec.ArrayProperty(spec.MapProperty(spec.StringProperty())).
			WithDescription("One {field: message} entry per failing field, in rule order"),
	}, "errors")

	for _, schema := range resources {
		addResource(doc, schema)
	}
	addAuthRoutes(doc)

	return doc
}

func addResource(doc *spec.Swagger, schema application.Schema) {
	input := objectSchema(map[string]spec.Schema{})
	var required []string
	for _, field := range schema.Fields {
		input.SetProperty(field.Name, *fieldSchema(field))
		if !field.Optional {
			required = append(required, field.Name)
		}
	}
	if ex, ok := examples[schema.Kind]; ok {
		input.WithExample(ex)
	}

	record := objectSchema(map[string]spec.Schema{
		"id": *spec.StringProperty(),
	})
	for name, prop := range input.Properties {
		record.SetProperty(name, prop)
	}

	inputName := schema.Label + "Input"
	doc.Definitions[schema.Label] = *record
	doc.Definitions[inputName] = *input.WithRequired(required...)

	tag := schema.Collection
	collectionPath := "/" + schema.Collection
	itemPath := collectionPath + "/{id}"

	list := spec.NewOperation("list"+schema.Label+"s").
		WithTags(tag).
		WithSummary(fmt.Sprintf("List all %s", schema.Collection)).
		RespondsWith(http.StatusOK, response("OK", spec.ArrayProperty(spec.RefSchema("#/definitions/"+schema.Label)))).
		RespondsWith(http.StatusInternalServerError, messageResponse("Store failure"))

	create := spec.NewOperation("create"+schema.Label).
		WithTags(tag).
		WithSummary(fmt.Sprintf("Create a %s", schema.Kind)).
		WithDescription("Requires a login session. Numeric strings are coerced to numbers.").
		AddParam(spec.BodyParam("body", spec.RefSchema("#/definitions/"+inputName)).AsRequired()).
		RespondsWith(http.StatusCreated, response("Created", spec.RefSchema("#/definitions/CreatedID"))).
		RespondsWith(http.StatusUnauthorized, messageResponse("Not logged in")).
		RespondsWith(http.StatusUnprocessableEntity, response("Validation failed", spec.RefSchema("#/definitions/ValidationErrors"))).
		RespondsWith(http.StatusInternalServerError, messageResponse("Store failure"))

	get := spec.NewOperation("get"+schema.Label).
		WithTags(tag).
		WithSummary(fmt.Sprintf("Get a %s by id", schema.Kind)).
		RespondsWith(http.StatusOK, response("OK", spec.RefSchema("#/definitions/"+schema.Label))).
		RespondsWith(http.StatusBadRequest, messageResponse("Malformed id")).
		RespondsWith(http.StatusNotFound, messageResponse("No such "+schema.Kind))

	update := spec.NewOperation("update"+schema.Label).
		WithTags(tag).
		WithSummary(fmt.Sprintf("Update a %s", schema.Kind)).
		WithDescription("Requires a login session. Only supplied fields are changed.").
		AddParam(spec.BodyParam("body", spec.RefSchema("#/definitions/"+schema.Label)).AsRequired()).
		RespondsWith(http.StatusOK, messageResponse("Updated")).
		RespondsWith(http.StatusBadRequest, messageResponse("Malformed id")).
		RespondsWith(http.StatusUnauthorized, messageResponse("Not logged in")).
		RespondsWith(http.StatusNotFound, messageResponse("No such "+schema.Kind)).
		RespondsWith(http.StatusUnprocessableEntity, response("Validation failed", spec.RefSchema("#/definitions/ValidationErrors")))

	remove := spec.NewOperation("delete"+schema.Label).
		WithTags(tag).
		WithSummary(fmt.Sprintf("Delete a %s", schema.Kind)).
		WithDescription("Requires a login session. Deleting twice returns 404.").
		RespondsWith(http.StatusNoContent, spec.NewResponse().WithDescription("Deleted")).
		RespondsWith(http.StatusBadRequest, messageResponse("Malformed id")).
		RespondsWith(http.StatusUnauthorized, messageResponse("Not logged in")).
		RespondsWith(http.StatusNotFound, messageResponse("No such "+schema.Kind))

	doc.Paths.Paths[collectionPath] = spec.PathItem{PathItemProps: spec.PathItemProps{
		Get:  list,
		Post: create,
	}}
	doc.Paths.Paths[itemPath] = spec.PathItem{PathItemProps: spec.PathItemProps{
		Get:        get,
		Put:        update,
		Delete:     remove,
		Parameters: []spec.Parameter{*spec.PathParam("id").Typed("string", "").WithDescription(schema.Label + " id")},
	}}
}

func addAuthRoutes(doc *spec.Swagger) {
	redirect := func(id, summary string) *spec.Operation {
		return spec.NewOperation(id).
			WithTags("auth").
			WithSummary(summary).
			WithProduces("text/html").
			RespondsWith(http.StatusFound, spec.NewResponse().WithDescription("Redirect"))
	}

	doc.Paths.Paths["/login"] = spec.PathItem{PathItemProps: spec.PathItemProps{
		Get: redirect("login", "Start the Google login"),
	}}
	doc.Paths.Paths["/auth/google/callback"] = spec.PathItem{PathItemProps: spec.PathItemProps{
		Get: redirect("loginCallback", "Complete the Google login").
			AddParam(spec.QueryParam("code").Typed("string", "")).
			AddParam(spec.QueryParam("state").Typed("string", "")),
	}}
	doc.Paths.Paths["/logout"] = spec.PathItem{PathItemProps: spec.PathItemProps{
		Get: redirect("logout", "End the session"),
	}}
	doc.Paths.Paths["/secrets"] = spec.PathItem{PathItemProps: spec.PathItemProps{
		Get: spec.NewOperation("secrets").
			WithTags("auth").
			WithSummary("Page for logged-in users").
			WithProduces("text/html").
			RespondsWith(http.StatusOK, spec.NewResponse().WithDescription("Shows the display name")).
			RespondsWith(http.StatusUnauthorized, messageResponse("Not logged in")),
	}}
	doc.Paths.Paths["/health"] = spec.PathItem{PathItemProps: spec.PathItemProps{
		Get: spec.NewOperation("health").
			WithTags("ops").
			RespondsWith(http.StatusOK, spec.NewResponse().WithDescription("OK")),
	}}
}

func fieldSchema(field application.FieldRule) *spec.Schema {
	switch field.Type {
	case application.EmailField:
		return spec.StrFmtProperty("email")
	case application.IntegerField:
		s := spec.Int64Property()
		if field.Min != nil {
			s.WithMinimum(float64(*field.Min), false)
		}
		return s
	case application.NumberField:
		return spec.Float64Property()
	case application.StringListField:
		return spec.ArrayProperty(spec.StringProperty())
	default:
		return spec.StringProperty()
	}
}

func objectSchema(props map[string]spec.Schema, required ...string) *spec.Schema {
	s := new(spec.Schema).Typed("object", "").WithProperties(props)
	if len(required) > 0 {
		s.WithRequired(required...)
	}
	return s
}

func response(description string, schema *spec.Schema) *spec.Response {
	return spec.NewResponse().WithDescription(description).WithSchema(schema)
}

func messageResponse(description string) *spec.Response {
	return response(description, spec.RefSchema("#/definitions/Message"))
}

// document is the swag.Swagger registered under swag.Name. Register may replace its content.
type document struct {
	mu   sync.RWMutex
	data []byte
}

// ReadDoc implements swag.Swagger
func (d *document) ReadDoc() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return string(d.data)
}

var (
	registered   = &document{}
	registerOnce sync.Once
)

// Register publishes doc to swag so http-swagger can serve it
func Register(doc *spec.Swagger) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode swagger document: %w", err)
	}

	registered.mu.Lock()
	registered.data = data
	registered.mu.Unlock()

	registerOnce.Do(func() {
		swag.Register(swag.Name, registered)
	})
	return nil
}

// JSON returns the registered document
func JSON() ([]byte, error) {
	doc, err := swag.ReadDoc(swag.Name)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}
