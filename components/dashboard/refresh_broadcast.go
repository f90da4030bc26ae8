package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// BroadcastHook fans out widget events to in-process subscribers. Slow
// subscribers drop events rather than block the dashboard service.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]subscriber
	next int
}

type subscriber struct {
	ch   chan WidgetEvent
	area string
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{subs: make(map[int]subscriber)}
}

// WidgetUpdated satisfies the RefreshHook interface and broadcasts events.
func (h *BroadcastHook) WidgetUpdated(_ context.Context, event WidgetEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.area != "" && event.AreaCode != "" && sub.area != event.AreaCode {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of every widget event and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan WidgetEvent, func()) {
	return h.SubscribeArea("")
}

// SubscribeArea only delivers events for area, plus area-less events.
func (h *BroadcastHook) SubscribeArea(area string) (<-chan WidgetEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan WidgetEvent, 8)
	h.subs[id] = subscriber{ch: ch, area: area}
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.ch)
		}
	}
	return ch, cancel
}

// Subscribers reports the number of live subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

const (
	// streamHeartbeat keeps idle WebSocket and SSE connections open through
	// proxies while the front desk leaves the dashboard on screen.
	streamHeartbeat = 25 * time.Second
	wsWriteWait     = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// stream delivers events for area to send until ctx ends, done closes or
// send fails. send receives nil on every heartbeat tick.
func (h *BroadcastHook) stream(ctx context.Context, area string, done <-chan struct{}, send func(*WidgetEvent) error) {
	events, cancel := h.SubscribeArea(area)
	defer cancel()
	ticker := time.NewTicker(streamHeartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			if send(nil) != nil {
				return
			}
		case event, ok := <-events:
			if !ok || send(&event) != nil {
				return
			}
		}
	}
}

// ServeWebSocket upgrades the request and writes each widget event as a JSON
// text frame. The optional "area" query parameter narrows the stream.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// the read loop handles pong and close frames; clients never send data
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	h.stream(r.Context(), r.URL.Query().Get("area"), closed, func(event *WidgetEvent) error {
		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
			return err
		}
		if event == nil {
			return conn.WriteMessage(websocket.PingMessage, nil)
		}
		return conn.WriteJSON(event)
	})
}

// ServeSSE streams widget events as server-sent "widget" events. Each event
// carries an increasing id; heartbeats are SSE comments.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")

	flush := func() {}
	if flusher, ok := w.(http.Flusher); ok {
		flush = flusher.Flush
	}
	flush()

	seq := 0
	h.stream(r.Context(), r.URL.Query().Get("area"), nil, func(event *WidgetEvent) error {
		if event == nil {
			if _, err := io.WriteString(w, ": heartbeat\n\n"); err != nil {
				return err
			}
			flush()
			return nil
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		seq++
		if _, err := fmt.Fprintf(w, "event: widget\ndata: %s\nid: %d\n\n", payload, seq); err != nil {
			return err
		}
		flush()
		return nil
	})
}
