// Package web holds the embedded HTML templates and static assets of the
// dashboard.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strconv"
	"time"

	"github.com/noah-isme/brgy-tracker-api/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Templates parses every page template with the shared helpers.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

// Funcs are the helpers available to page templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"opt":  optional,
		"date": formatDate,
		"peso": peso,
		"yesno": func(v bool) string {
			if v {
				return "Yes"
			}
			return "No"
		},
	}
}

func optional(v any) string {
	switch t := v.(type) {
	case *string:
		if t == nil || *t == "" {
			return "-"
		}
		return *t
	case *int64:
		if t == nil {
			return "-"
		}
		return strconv.FormatInt(*t, 10)
	case *models.Date:
		if t == nil {
			return "-"
		}
		return t.String()
	case nil:
		return "-"
	default:
		return fmt.Sprint(t)
	}
}

func formatDate(v any) string {
	switch t := v.(type) {
	case models.Date:
		return t.String()
	case time.Time:
		return t.UTC().Format("2006-01-02 15:04")
	default:
		return fmt.Sprint(t)
	}
}

func peso(v *float64) string {
	if v == nil {
		return "-"
	}
	return "PHP " + strconv.FormatFloat(*v, 'f', 2, 64)
}
