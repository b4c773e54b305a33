// Package site holds the company identity and the static legal page content
// served alongside the intake API.
package site

// Company identity used across pages, notifications and legal text.
const (
	CompanyName    = "Smith & Williams Trucking"
	DispatchEmail  = "dispatch@smithwilliamstrucking.com"
	DispatchPhone  = "951-437-5474"
	CompanyTagline = "Family-owned trucking, coast to coast."
)

// SMS compliance lines carriers require verbatim on messaging pages.
const (
	SMSConsentLine   = "Mobile information will not be sold or shared with third parties for promotional or marketing purposes."
	SMSFrequencyLine = "Message frequency varies."
	SMSStopLine      = "Reply STOP to unsubscribe at any time."
	SMSHelpLine      = "Reply HELP for assistance or contact us at " + DispatchEmail + "."
	SMSRatesLine     = "Message and data rates may apply."
)
