package model

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports every field that failed its rule.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldRule binds a record field to a validator tag.
type fieldRule[T any] struct {
	field string
	value func(*T) any
	tag   string
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// check runs every rule against rec and collects the failures.
func check[T any](rec *T, rules []fieldRule[T]) error {
	failed := make(map[string]string)
	for _, rule := range rules {
		err := engine().Var(rule.value(rec), rule.tag)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			failed[rule.field] = describe(fieldErrs[0])
			continue
		}
		failed[rule.field] = err.Error()
	}
	if len(failed) > 0 {
		return &ValidationError{Fields: failed}
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = fieldErrs
	}
	return ok
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "url", "uri":
		return "value is not a valid URL"
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
