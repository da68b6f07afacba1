package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"straightenup/internal/platform/bus"
)

// StreamHandler exposes the change feed as Server-Sent Events. Back-office
// views listen here and refetch a collection when its name arrives. An
// optional ?topics=carts,orders narrows the feed to the named collections.
//
//	GET /mall/stream
type StreamHandler struct {
	bus *bus.Bus
}

func NewStreamHandler(b *bus.Bus) http.Handler {
	return &StreamHandler{bus: b}
}

// heartbeat keeps intermediaries from closing an idle stream.
const heartbeatInterval = 30 * time.Second

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.bus == nil {
		writeErr(w, http.StatusInternalServerError, "stream handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	topics := parseTopics(r.URL.Query().Get("topics"))

	// subscribe before the headers go out so a client that has seen the
	// response start never misses an event published right after.
	events, cancel := h.bus.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case collection, open := <-events:
			if !open {
				return
			}
			if topics != nil && !topics[collection] {
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", collection)
			flusher.Flush()
		}
	}
}

// parseTopics turns "carts, orders" into a lookup set. A nil set means the
// client did not ask to filter and gets every collection.
func parseTopics(raw string) map[string]bool {
	var set map[string]bool
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if set == nil {
			set = map[string]bool{}
		}
		set[t] = true
	}
	return set
}
