package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type validationValuer interface {
	ValidationValue() any
}

// NewValidator returns a validator that understands Date and Optional
// fields and reports field names using their JSON keys.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(Date); ok {
			return d.Time
		}
		return nil
	}, Date{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if o, ok := field.Interface().(validationValuer); ok {
			return o.ValidationValue()
		}
		return nil
	}, Optional[string]{}, Optional[bool]{}, Optional[int64]{}, Optional[float64]{}, Optional[Date]{})
	return v
}
