package server

import (
	"encoding/json"
	"net/http"

	"trucking-site/internal/common/logger"
	"trucking-site/internal/intake"
)

// contactHandler serves POST /api/contact.
type contactHandler struct {
	pipeline *intake.Pipeline
	logger   logger.Logger
}

func (h *contactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeBody(w, r)
	if !ok {
		return
	}

	receipt, err := h.pipeline.Process(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"submissionId": receipt.ID,
		"message":      "Your message has been received. We will respond shortly.",
	})
}

// applyHandler serves POST /api/apply.
type applyHandler struct {
	pipeline *intake.Pipeline
	logger   logger.Logger
}

func (h *applyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeBody(w, r)
	if !ok {
		return
	}

	receipt, err := h.pipeline.Process(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       "Application submitted successfully",
		"applicationId": receipt.ID,
	})
}

// decodeBody parses the request body into a raw field map. A body that is
// not a JSON object is a validation-level rejection, not a server error.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var input map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input == nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Invalid request body",
		})
		return nil, false
	}
	return input, true
}
