// internal/site/pages_test.go
package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages_AllRender(t *testing.T) {
	pages := append(Pages(), Home())

	paths := map[string]bool{}
	for _, page := range pages {
		html, err := page.Render()
		require.NoError(t, err, "page %s", page.Path)
		assert.Contains(t, html, CompanyName)
		assert.Contains(t, html, page.Title)
		assert.False(t, paths[page.Path], "duplicate path %s", page.Path)
		paths[page.Path] = true
	}

	for _, want := range []string{"/", "/privacy-policy", "/terms-and-conditions", "/sms-policy", "/privacy", "/terms"} {
		assert.True(t, paths[want], "missing page %s", want)
	}
}

func TestPages_AliasesShareContent(t *testing.T) {
	byPath := map[string]Page{}
	for _, page := range Pages() {
		byPath[page.Path] = page
	}

	assert.Equal(t, byPath["/privacy-policy"].Body, byPath["/privacy"].Body)
	assert.Equal(t, byPath["/terms-and-conditions"].Body, byPath["/terms"].Body)
}

func TestSMSPolicy_CarrierRequiredLines(t *testing.T) {
	var sms Page
	for _, page := range Pages() {
		if page.Path == "/sms-policy" {
			sms = page
		}
	}
	require.NotEmpty(t, sms.Path)

	html, err := sms.Render()
	require.NoError(t, err)
	assert.Contains(t, html, SMSFrequencyLine)
	assert.Contains(t, html, SMSConsentLine)
	assert.Contains(t, html, "STOP")
	assert.Contains(t, html, "HELP")
}
