// Package intake implements the submission pipeline for the public website
// forms: validation, duplicate guarding, record building and persistence.
package intake

import "trucking-site/internal/common/validation"

// ContactTopics are the accepted contact-form topic values.
var ContactTopics = []string{"driver-support", "customer-service", "compliance", "other"}

// ContactSchema validates contact-form payloads. Field order is the order
// violations are reported in.
var ContactSchema = validation.Schema{
	{Name: "name", Type: validation.TypeString, Required: true, MaxLen: 100, RequiredMessage: "Name is required"},
	{Name: "company", Type: validation.TypeString, MaxLen: 100},
	{Name: "email", Type: validation.TypeString, Required: true, Email: true, RequiredMessage: "Invalid email address", FormatMessage: "Invalid email address"},
	{Name: "topic", Type: validation.TypeString, Required: true, Enum: ContactTopics},
	{Name: "message", Type: validation.TypeString, Required: true, MinLen: 10, MaxLen: 5000, RequiredMessage: "Message is required", FormatMessage: "Message must be at least 10 characters"},
}

// ApplicationSchema validates driver-application payloads. Email is optional
// but must be well formed when present; the phone-or-email requirement is a
// cross-field check applied after schema validation.
var ApplicationSchema = validation.Schema{
	{Name: "firstName", Type: validation.TypeString, Required: true, MaxLen: 50, RequiredMessage: "First name is required"},
	{Name: "lastName", Type: validation.TypeString, Required: true, MaxLen: 50, RequiredMessage: "Last name is required"},
	{Name: "email", Type: validation.TypeString, Email: true, EmptyOK: true, FormatMessage: "Invalid email"},
	{Name: "phone", Type: validation.TypeString, MaxLen: 20},
	{Name: "dateOfBirth", Type: validation.TypeString},
	{Name: "referralSource", Type: validation.TypeString},
	{Name: "hasCdl", Type: validation.TypeBoolean},
	{Name: "hasMedCard", Type: validation.TypeBoolean},
	{Name: "cdlClass", Type: validation.TypeString},
	{Name: "cdlState", Type: validation.TypeString},
	{Name: "cdlNumber", Type: validation.TypeString},
	{Name: "endorsements", Type: validation.TypeStringList},
	{Name: "yearsExperience", Type: validation.TypeNumber, Min: 0, Max: 50},
	{Name: "monthsExperience", Type: validation.TypeNumber, Min: 0, Max: 11},
	{Name: "currentLocation", Type: validation.TypeString},
	{Name: "availableDate", Type: validation.TypeString},
	{Name: "applicationSource", Type: validation.TypeString},
}
