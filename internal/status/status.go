// Package status serves the optional poll-mode HTTP surface: a liveness
// probe and the running delivery counters.
package status

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"linkdrop/internal/domain/share"
)

// Source supplies the counters. *share.Consumer satisfies it.
type Source interface {
	Stats() share.Stats
}

func NewRouter(src Source) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"ok": true,
			"ts": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, src.Stats())
	})

	return r
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
