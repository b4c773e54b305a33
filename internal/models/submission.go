// Package models defines the persisted record shapes for website intake.
package models

import "time"

// ContactSubmission is a stored contact-form message.
type ContactSubmission struct {
	SubmissionID string    `json:"submissionId"`
	Name         string    `json:"name"`
	Company      *string   `json:"company"`
	Email        string    `json:"email"`
	Topic        string    `json:"topic"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DriverApplication is a stored driver job application. Optional fields are
// pointers so absent values persist as JSON null rather than zero values.
type DriverApplication struct {
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Phone             string    `json:"phone"`
	PhoneClean        string    `json:"phoneClean,omitempty"`
	Email             string    `json:"email"`
	DateOfBirth       *string   `json:"dateOfBirth"`
	Status            string    `json:"status"`
	StatusUpdatedAt   time.Time `json:"statusUpdatedAt"`
	ApplicationSource string    `json:"applicationSource"`
	ReferralSource    *string   `json:"referralSource"`
	HasCDL            bool      `json:"hasCdl"`
	HasMedCard        bool      `json:"hasMedCard"`
	CDLClass          *string   `json:"cdlClass"`
	CDLState          *string   `json:"cdlState"`
	CDLNumber         *string   `json:"cdlNumber"`
	Endorsements      []string  `json:"endorsements"`
	YearsExperience   int       `json:"yearsExperience"`
	MonthsExperience  int       `json:"monthsExperience"`
	CurrentLocation   *string   `json:"currentLocation"`
	AvailableDate     *string   `json:"availableDate"`
	Notes             string    `json:"notes"`
	SelfApplied       bool      `json:"selfApplied"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	CreatedBy         string    `json:"createdBy"`
}
