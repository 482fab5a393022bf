package handlers

import (
	"net/http"
	"runtime"
	"time"
)

// Health reports process liveness plus a snapshot of the in-memory dataset.
// The endpoint is public and unauthenticated so probes can reach it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"uptime":      time.Since(h.startTime).Round(time.Second).String(),
		"goroutines":  runtime.NumGoroutine(),
		"allocMB":     m.Alloc / 1024 / 1024,
		"lastUpdated": h.store.LastUpdated().Format(time.RFC3339),
		"counts": map[string]int{
			"users":     len(h.store.Users()),
			"locations": len(h.store.Locations()),
			"drugs":     len(h.store.Drugs()),
			"patients":  len(h.store.Patients()),
			"distributions": len(h.store.CentralDistributions()) +
				len(h.store.StateDistributions()),
		},
	})
}
