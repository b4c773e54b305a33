package site

import (
	"fmt"
	"html/template"
	"strings"
)

// Page is a static legal or informational page.
type Page struct {
	Path  string
	Title string
	Body  template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | ` + CompanyName + `</title>
</head>
<body>
<header><h1>` + CompanyName + `</h1></header>
<main>
<h2>{{.Title}}</h2>
{{.Body}}
</main>
<footer>
<p>` + CompanyName + ` &middot; ` + DispatchPhone + ` &middot; <a href="mailto:` + DispatchEmail + `">` + DispatchEmail + `</a></p>
</footer>
</body>
</html>
`))

// Render produces the full HTML document for a page.
func (p Page) Render() (string, error) {
	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, p); err != nil {
		return "", fmt.Errorf("render page %s: %w", p.Path, err)
	}
	return sb.String(), nil
}

// Pages returns the static pages in registration order. Aliases share the
// body of the page they point at.
func Pages() []Page {
	privacy := Page{
		Path:  "/privacy-policy",
		Title: "Privacy Policy",
		Body: template.HTML(`
<p>` + CompanyName + ` respects your privacy. This policy describes what we
collect through our website forms and how we use it.</p>
<p>We collect the contact details and application information you submit,
including name, email address and phone number, solely to respond to your
inquiry or process your driver application.</p>
<p>` + SMSConsentLine + `</p>
<p>We retain submissions only as long as needed for the purpose you
submitted them. To request deletion of your information, contact
<a href="mailto:` + DispatchEmail + `">` + DispatchEmail + `</a> or call
` + DispatchPhone + `.</p>`),
	}

	terms := Page{
		Path:  "/terms-and-conditions",
		Title: "Terms and Conditions",
		Body: template.HTML(`
<p>By using the ` + CompanyName + ` website you agree to these terms.</p>
<p>Content on this site is provided for general information about our
freight and driver hiring services and may change without notice.</p>
<p>Submitting a form does not create an employment or carrier agreement;
all engagements are subject to our standard contracts and verification.</p>
<p>Questions about these terms can be sent to
<a href="mailto:` + DispatchEmail + `">` + DispatchEmail + `</a>.</p>`),
	}

	sms := Page{
		Path:  "/sms-policy",
		Title: "SMS Policy",
		Body: template.HTML(`
<p>By providing your phone number to ` + CompanyName + ` you consent to
receive text messages about your inquiry, application status and dispatch
coordination.</p>
<p>` + SMSFrequencyLine + ` ` + SMSRatesLine + `</p>
<p>` + SMSStopLine + ` ` + SMSHelpLine + `</p>
<p>` + SMSConsentLine + `</p>`),
	}

	return []Page{
		privacy,
		terms,
		sms,
		{Path: "/privacy", Title: privacy.Title, Body: privacy.Body},
		{Path: "/terms", Title: terms.Title, Body: terms.Body},
	}
}

// Home is the landing page.
func Home() Page {
	return Page{
		Path:  "/",
		Title: CompanyTagline,
		Body: template.HTML(`
<p>` + CompanyName + ` is a family-owned carrier moving freight nationwide.</p>
<p>Shippers: reach dispatch at ` + DispatchPhone + ` or
<a href="mailto:` + DispatchEmail + `">` + DispatchEmail + `</a>.</p>
<p>Drivers: apply through our online application and our team will follow up.</p>
<p><a href="/privacy-policy">Privacy Policy</a> &middot;
<a href="/terms-and-conditions">Terms and Conditions</a> &middot;
<a href="/sms-policy">SMS Policy</a></p>`),
	}
}
