package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/plus3/blockfall/driver"
)

type handlers struct {
	src SnapshotSource
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (h *handlers) session(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, snap)
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, snap.Stats)
}

func (h *handlers) board(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strings.Join(snap.Rows, "\n") + "\n"))
}

func (h *handlers) snapshot(w http.ResponseWriter) (*driver.Snapshot, bool) {
	snap := h.src.Snapshot()
	if snap == nil {
		http.Error(w, "no session published", http.StatusServiceUnavailable)
		return nil, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
