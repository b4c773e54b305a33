package server

import (
	"encoding/json"
	"net/http"

	apperrors "trucking-site/internal/common/errors"
	"trucking-site/internal/common/logger"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps a pipeline error onto the stable response contract. Only
// the safe message crosses the wire; details stay in the log.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	stdErr := apperrors.AsStandard(err)
	if stdErr == nil {
		stdErr = apperrors.NewInternalError(err)
	}

	status := apperrors.HTTPStatus(stdErr.Code)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
	}

	writeJSON(w, status, map[string]interface{}{
		"error": stdErr.Message,
	})
}
