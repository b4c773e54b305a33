// internal/server/server_test.go
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trucking-site/internal/common/config"
	"trucking-site/internal/common/logger"
	"trucking-site/internal/intake"
	"trucking-site/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Address = ":0"
	cfg.Server.ReadTimeout = 5000
	cfg.Server.WriteTimeout = 5000
	return cfg
}

func newTestServer(t *testing.T, docStore store.DocumentStore, contactDedup, applyDedup bool) *Server {
	t.Helper()
	log := logger.NewTestLogger(t)
	guard := intake.NewGuard(docStore, nil, 24*time.Hour, intake.SystemClock{}, log)
	contact := intake.New(intake.ContactPolicy(contactDedup), docStore, guard, nil, time.Second, log)
	apply := intake.New(intake.ApplicationPolicy(applyDedup), docStore, guard, nil, time.Second, log)
	return New(testConfig(), contact, apply, docStore, log)
}

func postJSON(t *testing.T, srv *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func contactPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"topic":   "customer-service",
		"message": "Requesting a quote for a dedicated lane.",
	}
}

func applyPayload() map[string]interface{} {
	return map[string]interface{}{
		"firstName":       "John",
		"lastName":        "Smith",
		"phone":           "(555) 123-4567",
		"hasCdl":          true,
		"yearsExperience": 7,
	}
}

// ==========================
// Contact Endpoint Tests
// ==========================

func TestContactEndpoint_Success(t *testing.T) {
	srv := newTestServer(t, store.NewMemory(), false, false)

	rec := postJSON(t, srv, "/api/contact", contactPayload())

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Your message has been received. We will respond shortly.", body["message"])
	assert.Regexp(t, `^CS-\d+-[0-9a-z]{9}$`, body["submissionId"])
}

func TestContactEndpoint_ValidationError(t *testing.T) {
	srv := newTestServer(t, store.NewMemory(), false, false)

	payload := contactPayload()
	payload["email"] = "not-an-email"
	rec := postJSON(t, srv, "/api/contact", payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email address", decodeResponse(t, rec)["error"])
}

func TestContactEndpoint_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, store.NewMemory(), false, false)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeResponse(t, rec)["error"])
}

func TestContactEndpoint_StoreUnavailableStillSucceeds(t *testing.T) {
	srv := newTestServer(t, store.NewUnavailable(), false, false)

	rec := postJSON(t, srv, "/api/contact", contactPayload())

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["submissionId"])
}

func TestContactEndpoint_GetNotAllowed(t *testing.T) {
	srv := newTestServer(t, store.NewMemory(), false, false)

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ==========================
// Apply Endpoint Tests
// ==========================

func TestApplyEndpoint_Success(t *testing.T) {
	docStore := store.NewMemory()
	srv := newTestServer(t, docStore, false, false)

	rec := postJSON(t, srv, "/api/apply", applyPayload())

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Application submitted successfully", body["message"])
	assert.NotEmpty(t, body["applicationId"])
	assert.Equal(t, 1, docStore.Count(intake.ApplicationCollection))
}

func TestApplyEndpoint_MissingContactChannel(t *testing.T) {
	srv := newTestServer(t, store.NewMemory(), false, false)

	payload := applyPayload()
	delete(payload, "phone")
	rec := postJSON(t, srv, "/api/apply", payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Phone or email is required", decodeResponse(t, rec)["error"])
}

func TestApplyEndpoint_DuplicateIs429(t *testing.T) {
	srv := newTestServer(t, store.NewMemory(), false, true)

	first := postJSON(t, srv, "/api/apply", applyPayload())
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, srv, "/api/apply", applyPayload())
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t,
		"An application with this phone was recently submitted. Please wait 24 hours.",
		decodeResponse(t, second)["error"],
	)
}

func TestApplyEndpoint_StoreUnavailableIs503(t *testing.T) {
	srv := newTestServer(t, store.NewUnavailable(), false, false)

	rec := postJSON(t, srv, "/api/apply", applyPayload())

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t,
		"Application system is being configured. Please try again later or call us directly.",
		decodeResponse(t, rec)["error"],
	)
}

// ==========================
// Operational Endpoint Tests
// ==========================

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, store.NewMemory(), false, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["store"])
}

func TestHealthEndpoint_StoreUnavailable(t *testing.T) {
	srv := newTestServer(t, store.NewUnavailable(), false, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unavailable", decodeResponse(t, rec)["store"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, store.NewMemory(), false, false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ==========================
// Static Page Tests
// ==========================

func TestStaticPages(t *testing.T) {
	srv := newTestServer(t, store.NewMemory(), false, false)

	tests := []struct {
		path      string
		fragments []string
	}{
		{
			path:      "/",
			fragments: []string{"Smith & Williams Trucking", "951-437-5474", "dispatch@smithwilliamstrucking.com"},
		},
		{
			path:      "/privacy-policy",
			fragments: []string{"Privacy Policy", "Mobile information will not be sold"},
		},
		{
			path:      "/terms-and-conditions",
			fragments: []string{"Terms and Conditions"},
		},
		{
			path:      "/sms-policy",
			fragments: []string{"Message frequency varies.", "STOP", "HELP"},
		},
		{
			path:      "/privacy",
			fragments: []string{"Privacy Policy"},
		},
		{
			path:      "/terms",
			fragments: []string{"Terms and Conditions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			for _, fragment := range tt.fragments {
				assert.Contains(t, rec.Body.String(), fragment)
			}
		})
	}
}
