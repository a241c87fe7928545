package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
	"github.com/Pasindu991182/food-delivery-system/internal/store"
	"github.com/Pasindu991182/food-delivery-system/internal/tracking"
)

// handleStreamOrderEvents streams an order's status changes as server-sent
// events. The first event is the current status. The stream ends with a
// "done" event once the order is delivered, or a "deleted" event if the order
// is removed.
func (s *Server) handleStreamOrderEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, err := s.store.GetOrder(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "order", "get")
		return
	}

	// A topic closed since the read above yields a closed channel, which the
	// loop below resolves against the store.
	ch, unsub := s.broker.Subscribe(id)
	defer func() { unsub() }()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Disable write timeout for long-lived SSE connections.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		s.logger.Debug("set write deadline for SSE", "error", err)
	}

	w.WriteHeader(http.StatusOK)
	flusher, canFlush := w.(http.Flusher)
	flush := func() {
		if canFlush {
			flusher.Flush()
		}
	}
	finish := func(event, data string) {
		_ = writeSSEEvent(w, event, data)
		flush()
	}

	if err := writeSSEJSON(w, tracking.Event{OrderID: o.ID, OID: o.OID, Status: o.Status, At: s.now().UTC()}); err != nil {
		return
	}
	last := o.Status
	if last == model.OrderStatusDelivered {
		finish("done", "order delivered")
		return
	}
	flush()

	for {
		select {
		case e, ok := <-ch:
			if ok {
				if err := writeSSEJSON(w, e); err != nil {
					return
				}
				last = e.Status
				flush()
				continue
			}

			cur, err := s.store.GetOrder(r.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				finish("deleted", "order deleted")
				return
			}
			if err != nil {
				s.logger.Error("reload order for stream", "order_id", id, "error", err)
				return
			}
			if cur.Status != last {
				if err := writeSSEJSON(w, tracking.Event{OrderID: cur.ID, OID: cur.OID, Status: cur.Status, At: s.now().UTC()}); err != nil {
					return
				}
				last = cur.Status
				flush()
			}
			if cur.Status == model.OrderStatusDelivered {
				finish("done", "order delivered")
				return
			}

			// Moved back from Delivered: follow the reopened topic.
			unsub()
			ch, unsub = s.broker.Subscribe(id)
		case <-r.Context().Done():
			return
		}
	}
}

// writeSSEJSON writes v as a single SSE data event.
func writeSSEJSON(w http.ResponseWriter, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeSSEData(w, string(b))
}

// writeSSEData writes a line as an SSE data event. Multi-line strings are
// split so that each segment gets its own "data:" prefix.
func writeSSEData(w http.ResponseWriter, line string) error {
	for seg := range strings.SplitSeq(line, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", seg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

// writeSSEEvent writes a named SSE event (event: <type>\ndata: <data>\n\n).
func writeSSEEvent(w http.ResponseWriter, eventType, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\n", eventType); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return nil
}
