// Package validation checks raw form submissions against a declared field
// schema. Fields are validated in declaration order and the first violation
// is reported; unknown input fields are ignored.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

type FieldType string

const (
	TypeString     FieldType = "string"
	TypeNumber     FieldType = "number"
	TypeBoolean    FieldType = "boolean"
	TypeStringList FieldType = "stringList"
)

// Field declares one schema entry. Zero bounds mean unbounded. Number
// fields never reject: values that are missing, of the wrong type, or
// outside [Min, Max] fall back to zero.
type Field struct {
	Name            string
	Type            FieldType
	Required        bool
	MinLen          int
	MaxLen          int
	Min             int
	Max             int
	Enum            []string
	Email           bool
	EmptyOK         bool // optional email fields accept ""
	RequiredMessage string
	FormatMessage   string
}

// Schema is an ordered field list; order decides which violation is
// reported first.
type Schema []Field

// Error carries the first violated field and a human-readable reason.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether the address matches the accepted syntax.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Validate checks input against the schema and returns the validated subset
// keyed by field name, or the first violation. Pure function of its inputs.
func Validate(input map[string]interface{}, schema Schema) (map[string]interface{}, *Error) {
	validated := make(map[string]interface{}, len(schema))

	for _, field := range schema {
		raw, present := input[field.Name]

		switch field.Type {
		case TypeString:
			if verr := validateString(field, raw, present, validated); verr != nil {
				return nil, verr
			}
		case TypeNumber:
			validated[field.Name] = coerceNumber(field, raw, present)
		case TypeBoolean:
			if !present || raw == nil {
				continue
			}
			b, ok := raw.(bool)
			if !ok {
				return nil, &Error{Field: field.Name, Message: fmt.Sprintf("%s must be a boolean", field.Name)}
			}
			validated[field.Name] = b
		case TypeStringList:
			if !present || raw == nil {
				continue
			}
			list, verr := coerceStringList(field, raw)
			if verr != nil {
				return nil, verr
			}
			validated[field.Name] = list
		}
	}

	return validated, nil
}

func validateString(field Field, raw interface{}, present bool, validated map[string]interface{}) *Error {
	if !present || raw == nil {
		if field.Required {
			return &Error{Field: field.Name, Message: requiredMessage(field)}
		}
		return nil
	}

	str, ok := raw.(string)
	if !ok {
		return &Error{Field: field.Name, Message: fmt.Sprintf("%s must be a string", field.Name)}
	}

	if field.Required && len(str) == 0 {
		return &Error{Field: field.Name, Message: requiredMessage(field)}
	}

	if field.MinLen > 0 && len(str) < field.MinLen {
		msg := field.FormatMessage
		if msg == "" {
			msg = fmt.Sprintf("%s must be at least %d characters", field.Name, field.MinLen)
		}
		return &Error{Field: field.Name, Message: msg}
	}
	if field.MaxLen > 0 && len(str) > field.MaxLen {
		return &Error{Field: field.Name, Message: fmt.Sprintf("%s must be at most %d characters", field.Name, field.MaxLen)}
	}

	if field.Email && !(field.EmptyOK && strings.TrimSpace(str) == "") {
		if !emailRegex.MatchString(strings.TrimSpace(str)) {
			msg := field.FormatMessage
			if msg == "" {
				msg = "Invalid email address"
			}
			return &Error{Field: field.Name, Message: msg}
		}
	}

	if len(field.Enum) > 0 {
		found := false
		for _, enumVal := range field.Enum {
			if str == enumVal {
				found = true
				break
			}
		}
		if !found {
			return &Error{
				Field:   field.Name,
				Message: fmt.Sprintf("%s must be one of: %s", field.Name, strings.Join(field.Enum, ", ")),
			}
		}
	}

	validated[field.Name] = str
	return nil
}

// coerceNumber converts JSON numbers (float64 after decoding) into a bounded
// int. Anything unparseable or out of range becomes zero rather than a
// rejection.
func coerceNumber(field Field, raw interface{}, present bool) int {
	if !present || raw == nil {
		return 0
	}

	var n int
	switch v := raw.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case int64:
		n = int(v)
	default:
		return 0
	}

	if n < field.Min || (field.Max > 0 && n > field.Max) {
		return 0
	}
	return n
}

func coerceStringList(field Field, raw interface{}) ([]string, *Error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, &Error{Field: field.Name, Message: fmt.Sprintf("%s must be a list of strings", field.Name)}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, &Error{Field: field.Name, Message: fmt.Sprintf("%s must be a list of strings", field.Name)}
		}
		out = append(out, str)
	}
	return out, nil
}

func requiredMessage(field Field) string {
	if field.RequiredMessage != "" {
		return field.RequiredMessage
	}
	return fmt.Sprintf("%s is required", field.Name)
}
