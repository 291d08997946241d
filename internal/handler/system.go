package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type SystemHandler struct {
	service   string
	db        Pinger
	startTime time.Time
}

// NewSystemHandler builds the health endpoint. db may be nil when the server
// runs on the in-memory store.
func NewSystemHandler(service string, db Pinger) *SystemHandler {
	return &SystemHandler{
		service:   service,
		db:        db,
		startTime: time.Now(),
	}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	body := map[string]interface{}{
		"service":        h.service,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
			body["database"] = "unreachable"
		} else {
			body["database"] = "ok"
		}
	}
	body["status"] = status

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
