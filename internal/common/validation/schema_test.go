// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() Schema {
	return Schema{
		{Name: "name", Type: TypeString, Required: true, MaxLen: 100, RequiredMessage: "Name is required"},
		{Name: "email", Type: TypeString, Required: true, Email: true, FormatMessage: "Invalid email address", RequiredMessage: "Invalid email address"},
		{Name: "topic", Type: TypeString, Required: true, Enum: []string{"driver-support", "other"}},
		{Name: "message", Type: TypeString, Required: true, MinLen: 10, MaxLen: 5000, FormatMessage: "Message must be at least 10 characters", RequiredMessage: "Message is required"},
		{Name: "years", Type: TypeNumber, Min: 0, Max: 50},
		{Name: "hasCdl", Type: TypeBoolean},
		{Name: "endorsements", Type: TypeStringList},
	}
}

func validInput() map[string]interface{} {
	return map[string]interface{}{
		"name":    "John Doe",
		"email":   "john@example.com",
		"topic":   "driver-support",
		"message": "I have a question about dispatch.",
		"years":   5.0, // float64 to match JSON unmarshaling
		"hasCdl":  true,
	}
}

func TestValidate_Success(t *testing.T) {
	fields, verr := Validate(validInput(), testSchema())

	require.Nil(t, verr)
	assert.Equal(t, "John Doe", fields["name"])
	assert.Equal(t, "john@example.com", fields["email"])
	assert.Equal(t, 5, fields["years"])
	assert.Equal(t, true, fields["hasCdl"])
}

func TestValidate_FirstViolationInDeclarationOrder(t *testing.T) {
	input := validInput()
	delete(input, "name")
	input["email"] = "not-an-email"

	_, verr := Validate(input, testSchema())

	require.NotNil(t, verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "Name is required", verr.Message)
}

func TestValidate_StringRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		field   string
		message string
	}{
		{
			name:    "missing required field",
			mutate:  func(in map[string]interface{}) { delete(in, "name") },
			field:   "name",
			message: "Name is required",
		},
		{
			name:    "empty required field",
			mutate:  func(in map[string]interface{}) { in["name"] = "" },
			field:   "name",
			message: "Name is required",
		},
		{
			name:    "invalid email",
			mutate:  func(in map[string]interface{}) { in["email"] = "john@" },
			field:   "email",
			message: "Invalid email address",
		},
		{
			name:    "enum violation",
			mutate:  func(in map[string]interface{}) { in["topic"] = "billing" },
			field:   "topic",
			message: "topic must be one of: driver-support, other",
		},
		{
			name:    "too short",
			mutate:  func(in map[string]interface{}) { in["message"] = "short" },
			field:   "message",
			message: "Message must be at least 10 characters",
		},
		{
			name:    "wrong type",
			mutate:  func(in map[string]interface{}) { in["name"] = 42.0 },
			field:   "name",
			message: "name must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			_, verr := Validate(input, testSchema())

			require.NotNil(t, verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestValidate_NumbersNeverReject(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int
	}{
		{name: "in range", value: 12.0, want: 12},
		{name: "above max falls back to zero", value: 99.0, want: 0},
		{name: "negative falls back to zero", value: -3.0, want: 0},
		{name: "wrong type falls back to zero", value: "ten", want: 0},
		{name: "missing falls back to zero", value: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			if tt.value == nil {
				delete(input, "years")
			} else {
				input["years"] = tt.value
			}

			fields, verr := Validate(input, testSchema())

			require.Nil(t, verr)
			assert.Equal(t, tt.want, fields["years"])
		})
	}
}

func TestValidate_OptionalEmailAcceptsEmpty(t *testing.T) {
	schema := Schema{
		{Name: "email", Type: TypeString, Email: true, EmptyOK: true, FormatMessage: "Invalid email"},
	}

	_, verr := Validate(map[string]interface{}{"email": ""}, schema)
	assert.Nil(t, verr)

	_, verr = Validate(map[string]interface{}{"email": "bad@"}, schema)
	require.NotNil(t, verr)
	assert.Equal(t, "Invalid email", verr.Message)
}

func TestValidate_StringList(t *testing.T) {
	input := validInput()
	input["endorsements"] = []interface{}{"H", "N"}

	fields, verr := Validate(input, testSchema())
	require.Nil(t, verr)
	assert.Equal(t, []string{"H", "N"}, fields["endorsements"])

	input["endorsements"] = []interface{}{"H", 7.0}
	_, verr = Validate(input, testSchema())
	require.NotNil(t, verr)
	assert.Equal(t, "endorsements", verr.Field)
}

func TestValidate_UnknownFieldsIgnored(t *testing.T) {
	input := validInput()
	input["admin"] = true
	input["role"] = "superuser"

	fields, verr := Validate(input, testSchema())

	require.Nil(t, verr)
	assert.NotContains(t, fields, "admin")
	assert.NotContains(t, fields, "role")
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("driver@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.domain.co"))
	assert.False(t, ValidateEmail("driver@"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail("plain"))
}
