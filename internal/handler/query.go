package handler

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brgy-tracker-api/internal/models"
	appErrors "github.com/noah-isme/brgy-tracker-api/pkg/errors"
)

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Validation("invalid id", appErrors.FieldError{Field: "id", Message: "must be an integer"})
	}
	return id, nil
}

// parseListQuery reads skip, limit and the resource's filters from the
// query string. Empty filter values are treated as absent and unknown
// parameters are ignored.
func parseListQuery(c *gin.Context, res models.Resource, defaultLimit int) (models.ListQuery, error) {
	query := models.ListQuery{Limit: defaultLimit, Filters: make(map[string]any)}
	var details []appErrors.FieldError

	if raw := strings.TrimSpace(c.Query("skip")); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, appErrors.FieldError{Field: "skip", Message: "must be an integer"})
		}
		query.Skip = skip
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, appErrors.FieldError{Field: "limit", Message: "must be an integer"})
		}
		query.Limit = limit
	}
	if len(details) == 0 {
		if query.Skip < 0 {
			details = append(details, appErrors.FieldError{Field: "skip", Message: "must be greater than or equal to 0"})
		}
		if query.Limit < 1 || query.Limit > models.MaxLimit {
			details = append(details, appErrors.FieldError{Field: "limit", Message: "must be between 1 and " + strconv.Itoa(models.MaxLimit)})
		}
	}

	for _, f := range res.Filters {
		raw := strings.TrimSpace(c.Query(f.Column))
		if raw == "" {
			continue
		}
		switch f.Kind {
		case models.FilterBool:
			v, ok := parseBool(raw)
			if !ok {
				details = append(details, appErrors.FieldError{Field: f.Column, Message: "must be a boolean"})
				continue
			}
			query.Filters[f.Column] = v
		case models.FilterInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				details = append(details, appErrors.FieldError{Field: f.Column, Message: "must be an integer"})
				continue
			}
			query.Filters[f.Column] = v
		default:
			query.Filters[f.Column] = raw
		}
	}

	if len(details) > 0 {
		return models.ListQuery{}, appErrors.Validation("invalid query parameters", details...)
	}
	return query, nil
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// bindJSON decodes the request body into dest, reporting malformed JSON
// and type mismatches as validation failures.
func bindJSON(c *gin.Context, dest interface{}) error {
	err := c.ShouldBindJSON(dest)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return appErrors.Validation("invalid request body",
			appErrors.FieldError{Field: field, Message: "must be of type " + typeErr.Type.String()})
	case errors.Is(err, io.EOF):
		return appErrors.Validation("invalid request body",
			appErrors.FieldError{Field: "body", Message: "request body is required"})
	default:
		return appErrors.Validation("invalid request body",
			appErrors.FieldError{Field: "body", Message: err.Error()})
	}
}
