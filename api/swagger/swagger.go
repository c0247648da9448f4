package swagger

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/swaggo/swag"

	"github.com/noah-isme/brgy-tracker-api/internal/dto"
	"github.com/noah-isme/brgy-tracker-api/internal/models"
)

type documentedResource struct {
	res    models.Resource
	tag    string
	model  reflect.Type
	create reflect.Type
	update reflect.Type
}

var documented = []documentedResource{
	{models.SeniorResource, "Seniors", reflect.TypeOf(models.Senior{}), reflect.TypeOf(models.SeniorCreate{}), reflect.TypeOf(models.SeniorUpdate{})},
	{models.PWDResource, "PWDs", reflect.TypeOf(models.PWD{}), reflect.TypeOf(models.PWDCreate{}), reflect.TypeOf(models.PWDUpdate{})},
	{models.BenefitResource, "Benefits", reflect.TypeOf(models.Benefit{}), reflect.TypeOf(models.BenefitCreate{}), reflect.TypeOf(models.BenefitUpdate{})},
	{models.VisitResource, "Visits", reflect.TypeOf(models.Visit{}), reflect.TypeOf(models.VisitCreate{}), reflect.TypeOf(models.VisitUpdate{})},
	{models.AssistanceDriveResource, "Assistance Drives", reflect.TypeOf(models.AssistanceDrive{}), reflect.TypeOf(models.AssistanceDriveCreate{}), reflect.TypeOf(models.AssistanceDriveUpdate{})},
}

type object = map[string]any

var (
	dateType     = reflect.TypeOf(models.Date{})
	timeType     = reflect.TypeOf(time.Time{})
	benefTypeRef = reflect.TypeOf(models.BeneficiaryType(""))
)

// buildDoc renders the Swagger 2.0 document from the resource definitions.
func buildDoc() string {
	paths := object{
		"/health": object{"get": op("Meta", "Liveness probe", nil, object{"200": ref("OK", "HealthStatus")})},
		"/ready": object{"get": op("Meta", "Readiness probe", nil, object{
			"200": ref("Ready", "HealthStatus"),
			"503": ref("A dependency is unreachable", "HealthStatus"),
		})},
		"/api": object{"get": op("Meta", "API directory", nil, object{"200": ref("OK", "APIDirectory")})},
		"/api/dashboard": object{"get": op("Dashboard", "Dashboard counts", nil, object{
			"200": ref("OK", "DashboardSummary"),
			"500": errorResponse(http.StatusInternalServerError),
		})},
	}
	definitions := object{
		"FieldError": schemaOf(reflect.TypeOf(struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		}{}), false),
		"Error": object{
			"type": "object",
			"properties": object{
				"code":    object{"type": "string"},
				"message": object{"type": "string"},
				"status":  object{"type": "integer"},
				"details": object{"type": "array", "items": object{"$ref": "#/definitions/FieldError"}},
			},
		},
		"ErrorEnvelope": object{
			"type":       "object",
			"properties": object{"error": object{"$ref": "#/definitions/Error"}},
		},
		"HealthStatus":     schemaOf(reflect.TypeOf(dto.HealthStatus{}), false),
		"APIDirectory":     schemaOf(reflect.TypeOf(dto.APIDirectory{}), false),
		"DashboardSummary": schemaOf(reflect.TypeOf(dto.DashboardSummary{}), false),
	}

	tags := []object{{"name": "Meta"}, {"name": "Dashboard"}}
	for _, d := range documented {
		tags = append(tags, object{"name": d.tag})
		model, create, update := d.model.Name(), d.create.Name(), d.update.Name()
		definitions[model] = schemaOf(d.model, false)
		definitions[create] = schemaOf(d.create, true)
		definitions[update] = schemaOf(d.update, false)

		label := strings.ToLower(d.res.Label)
		listParams := []object{
			{"name": "skip", "in": "query", "type": "integer", "default": 0, "minimum": 0},
			{"name": "limit", "in": "query", "type": "integer", "default": models.DefaultLimit, "minimum": 1, "maximum": models.MaxLimit},
		}
		for _, f := range d.res.Filters {
			listParams = append(listParams, object{"name": f.Column, "in": "query", "type": filterType(f.Kind)})
		}
		idParam := object{"name": "id", "in": "path", "required": true, "type": "integer", "format": "int64"}

		base := "/api/" + d.res.Name
		paths[base] = object{
			"get": op(d.tag, "List "+label+" records", listParams, object{
				"200": object{
					"description": "OK",
					"headers":     object{"X-Total-Count": object{"type": "integer"}},
					"schema":      object{"type": "array", "items": object{"$ref": "#/definitions/" + model}},
				},
				"422": errorResponse(http.StatusUnprocessableEntity),
			}),
			"post": op(d.tag, "Create "+label, []object{body(create)}, object{
				"201": ref("Created", model),
				"422": errorResponse(http.StatusUnprocessableEntity),
			}),
		}
		paths[base+"/{id}"] = object{
			"get": op(d.tag, "Get "+label, []object{idParam}, object{
				"200": ref("OK", model),
				"404": errorResponse(http.StatusNotFound),
				"422": errorResponse(http.StatusUnprocessableEntity),
			}),
			"put": op(d.tag, "Partially update "+label, []object{idParam, body(update)}, object{
				"200": ref("OK", model),
				"404": errorResponse(http.StatusNotFound),
				"422": errorResponse(http.StatusUnprocessableEntity),
			}),
			"delete": op(d.tag, "Delete "+label, []object{idParam}, object{
				"204": object{"description": "Deleted"},
				"404": errorResponse(http.StatusNotFound),
			}),
		}
	}

	doc := object{
		"swagger": "2.0",
		"info": object{
			"title":       "Barangay Senior & PWD Support Tracker API",
			"description": "Registry of senior citizens and persons with disability with benefits, visits and assistance drives.",
			"version":     "1.0.0",
		},
		"basePath":    "/",
		"schemes":     []string{"http"},
		"consumes":    []string{"application/json"},
		"produces":    []string{"application/json"},
		"tags":        tags,
		"paths":       paths,
		"definitions": definitions,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

func op(tag, summary string, params []object, responses object) object {
	o := object{"tags": []string{tag}, "summary": summary, "responses": responses}
	if len(params) > 0 {
		o["parameters"] = params
	}
	return o
}

func ref(description, definition string) object {
	return object{"description": description, "schema": object{"$ref": "#/definitions/" + definition}}
}

func errorResponse(status int) object {
	return ref(http.StatusText(status), "ErrorEnvelope")
}

func body(definition string) object {
	return object{"name": "payload", "in": "body", "required": true, "schema": object{"$ref": "#/definitions/" + definition}}
}

func filterType(kind models.FilterKind) string {
	switch kind {
	case models.FilterBool:
		return "boolean"
	case models.FilterInt:
		return "integer"
	default:
		return "string"
	}
}

// schemaOf describes a struct by its json tags. When withRequired is set
// fields tagged validate:"required" are listed as required.
func schemaOf(t reflect.Type, withRequired bool) object {
	props := object{}
	var required []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		prop := typeSchema(f.Type)
		if rules := f.Tag.Get("validate"); rules != "" {
			for _, rule := range strings.Split(rules, ",") {
				if limit, ok := strings.CutPrefix(rule, "max="); ok {
					if n, err := strconv.Atoi(limit); err == nil {
						prop["maxLength"] = n
					}
				}
				if rule == "required" && withRequired {
					required = append(required, name)
				}
			}
		}
		props[name] = prop
	}
	schema := object{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func typeSchema(t reflect.Type) object {
	nullable := false
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		nullable = true
	}
	if value, ok := optionalValue(t); ok {
		t = value
		nullable = true
	}

	var s object
	switch {
	case t == dateType:
		s = object{"type": "string", "format": "date"}
	case t == timeType:
		s = object{"type": "string", "format": "date-time"}
	case t == benefTypeRef:
		s = object{"type": "string", "enum": []string{string(models.BeneficiarySenior), string(models.BeneficiaryPWD)}}
	case t.Kind() == reflect.Bool:
		s = object{"type": "boolean"}
	case t.Kind() == reflect.Int64 || t.Kind() == reflect.Int:
		s = object{"type": "integer"}
	case t.Kind() == reflect.Float64:
		s = object{"type": "number"}
	case t.Kind() == reflect.Map:
		s = object{"type": "object", "additionalProperties": typeSchema(t.Elem())}
	default:
		s = object{"type": "string"}
	}
	if nullable {
		s["x-nullable"] = true
	}
	return s
}

// optionalValue unwraps models.Optional[T] to T.
func optionalValue(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Struct || t.PkgPath() != dateType.PkgPath() || !strings.HasPrefix(t.Name(), "Optional[") {
		return nil, false
	}
	f, ok := t.FieldByName("Value")
	if !ok {
		return nil, false
	}
	return f.Type, true
}

type swaggerDoc struct {
	doc string
}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return s.doc
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{doc: buildDoc()})
}
