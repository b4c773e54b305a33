package server

import (
	"net/http"

	"trucking-site/internal/common/logger"
	"trucking-site/internal/site"
)

// pageHandler serves one pre-rendered static page.
func pageHandler(page site.Page, log logger.Logger) http.HandlerFunc {
	html, err := page.Render()
	if err != nil {
		log.Error("page render failed", map[string]interface{}{
			"path":  page.Path,
			"error": err.Error(),
		})
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if html == "" {
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}
}
