package order

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/noah-isme/backend-kantin/internal/common"
)

// Stream pushes order snapshots to the client as Server-Sent Events. The
// current snapshot is replayed on attach; every completed operation delivers
// the next one.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	state, err := h.Svc.Get(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "streaming unsupported", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Buffered so a slow client never blocks the publishing operation; a full
	// buffer drops intermediate snapshots, the next change carries the latest.
	snapshots := make(chan Snapshot, 16)
	cancel := state.Observe().Subscribe(func(snap Snapshot) {
		select {
		case snapshots <- snap:
		default:
		}
	})
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-snapshots:
			data, err := json.Marshal(h.snapshotBody(id, snap))
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
