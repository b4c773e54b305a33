package intake

import (
	"strings"
	"time"
	"unicode"

	"trucking-site/internal/models"
)

// NormalizeEmail trims and lowercases an email for matching and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CleanPhone strips everything but digits so formatting variants of the
// same number compare equal.
func CleanPhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func optionalString(fields map[string]interface{}, name string) *string {
	v, ok := fields[name].(string)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func stringField(fields map[string]interface{}, name string) string {
	v, _ := fields[name].(string)
	return strings.TrimSpace(v)
}

func boolField(fields map[string]interface{}, name string) bool {
	v, _ := fields[name].(bool)
	return v
}

func intField(fields map[string]interface{}, name string) int {
	v, _ := fields[name].(int)
	return v
}

func stringListField(fields map[string]interface{}, name string) []string {
	v, ok := fields[name].([]string)
	if !ok {
		return []string{}
	}
	return v
}

// BuildContactRecord assembles the stored contact submission from validated
// fields. Deterministic given the clock and id.
func BuildContactRecord(fields map[string]interface{}, submissionID string, now time.Time) *models.ContactSubmission {
	return &models.ContactSubmission{
		SubmissionID: submissionID,
		Name:         stringField(fields, "name"),
		Company:      optionalString(fields, "company"),
		Email:        NormalizeEmail(stringField(fields, "email")),
		Topic:        stringField(fields, "topic"),
		Message:      strings.TrimSpace(stringField(fields, "message")),
		Status:       "new",
		Source:       "website",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// BuildApplicationRecord assembles the stored driver application from
// validated fields. PhoneClean is only set when a phone was supplied.
func BuildApplicationRecord(fields map[string]interface{}, now time.Time) *models.DriverApplication {
	phone := stringField(fields, "phone")
	source := stringField(fields, "applicationSource")
	if source == "" {
		source = "website"
	}
	app := &models.DriverApplication{
		FirstName:         stringField(fields, "firstName"),
		LastName:          stringField(fields, "lastName"),
		Phone:             phone,
		Email:             NormalizeEmail(stringField(fields, "email")),
		DateOfBirth:       optionalString(fields, "dateOfBirth"),
		Status:            "new",
		StatusUpdatedAt:   now,
		ApplicationSource: source,
		ReferralSource:    optionalString(fields, "referralSource"),
		HasCDL:            boolField(fields, "hasCdl"),
		HasMedCard:        boolField(fields, "hasMedCard"),
		CDLClass:          optionalString(fields, "cdlClass"),
		CDLState:          optionalString(fields, "cdlState"),
		CDLNumber:         optionalString(fields, "cdlNumber"),
		Endorsements:      stringListField(fields, "endorsements"),
		YearsExperience:   intField(fields, "yearsExperience"),
		MonthsExperience:  intField(fields, "monthsExperience"),
		CurrentLocation:   optionalString(fields, "currentLocation"),
		AvailableDate:     optionalString(fields, "availableDate"),
		Notes:             "",
		SelfApplied:       true,
		CreatedAt:         now,
		UpdatedAt:         now,
		CreatedBy:         "website-form",
	}
	if phone != "" {
		app.PhoneClean = CleanPhone(phone)
	}
	return app
}
