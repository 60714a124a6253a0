package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/sales_backend/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError lists failing fields and the rule each one broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func validateStruct(input any) error {
	if err := validate.Struct(input); err != nil {
		fields := utils.ProcessValidationErrors(err)
		if len(fields) == 0 {
			return err
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}

func fieldError(field string, rule string) error {
	return &ValidationError{Fields: map[string]string{field: rule}}
}
