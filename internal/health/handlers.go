package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	CheckMenu(ctx context.Context, timeout time.Duration) error
	CheckSessions(ctx context.Context, timeout time.Duration) error
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker         Checker
	MenuTimeout     time.Duration
	SessionsTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	ctx := r.Context()
	menuStatus := "ok"
	if err := h.Checker.CheckMenu(ctx, h.menuTimeout()); err != nil {
		menuStatus = err.Error()
	}
	sessionsStatus := "ok"
	if err := h.Checker.CheckSessions(ctx, h.sessionsTimeout()); err != nil {
		sessionsStatus = err.Error()
	}
	status := map[string]string{
		"menu":     menuStatus,
		"sessions": sessionsStatus,
	}
	if menuStatus != "ok" || sessionsStatus != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) menuTimeout() time.Duration {
	if h.MenuTimeout <= 0 {
		return 200 * time.Millisecond
	}
	return h.MenuTimeout
}

func (h Handler) sessionsTimeout() time.Duration {
	if h.SessionsTimeout <= 0 {
		return 200 * time.Millisecond
	}
	return h.SessionsTimeout
}
