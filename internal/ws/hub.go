// Package ws pushes published snapshots to WebSocket subscribers so dashboard
// clients see new reports without polling the HTTP surface.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/coastal-hazard-console/internal/console"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
	"github.com/couchcryptid/coastal-hazard-console/internal/view"
)

// SnapshotMessage is the envelope broadcast after every cache replacement.
// It carries the rendered view-models so thin clients need no mapping logic.
type SnapshotMessage struct {
	Type      string     `json:"type"`
	Seq       uint64     `json:"seq"`
	Source    string     `json:"source"`
	FetchedAt time.Time  `json:"fetched_at"`
	Count     int        `json:"count"`
	MapLayer  view.Layer `json:"map_layer"`
	Rows      []view.Row `json:"rows"`
}

// Hub fans published snapshots out to connected clients. It implements the
// refresh listener contract: broadcasts fire only after the cache has been
// replaced, so a subscriber never receives a mix of old and new reports.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{} // closed when Run exits

	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.RWMutex
	clients map[*Client]bool
	lastSeq uint64
}

// NewHub creates a hub with no subscribers. Run must be started before
// clients attach.
func NewHub(logger *slog.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
		logger:     logger,
		metrics:    metrics,
		clients:    make(map[*Client]bool),
	}
}

// Run drives registration and broadcasting until ctx is cancelled, then
// closes every remaining connection. Call it once per hub.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.metrics.SubscriberCount.Set(0)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()

			h.metrics.SubscriberCount.Set(float64(count))
			h.logger.Info("subscriber connected", "client_id", client.id, "subscribers", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()

			h.metrics.SubscriberCount.Set(float64(count))
			h.logger.Info("subscriber disconnected", "client_id", client.id, "subscribers", count)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop it rather than stall the others.
					delete(h.clients, client)
					close(client.send)
					h.logger.Warn("dropped slow subscriber", "client_id", client.id)
				}
			}
			h.metrics.SubscriberCount.Set(float64(len(h.clients)))
			h.mu.Unlock()
		}
	}
}

// SnapshotPublished renders the snapshot and queues it for broadcast. A
// snapshot at or below the last queued sequence is dropped: the sequence
// check and the enqueue happen under one lock, so a slow refresh can never
// push subscribers back onto older data.
func (h *Hub) SnapshotPublished(snap console.Snapshot) {
	msg := SnapshotMessage{
		Type:      "snapshot",
		Seq:       snap.Seq,
		Source:    string(snap.Source),
		FetchedAt: snap.FetchedAt,
		Count:     len(snap.Reports),
		MapLayer:  view.BuildMapLayer(snap.Reports),
		Rows:      view.BuildTableRows(snap.Reports),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal snapshot broadcast", "seq", snap.Seq, "error", err)
		return
	}

	h.mu.Lock()
	if snap.Seq <= h.lastSeq {
		h.mu.Unlock()
		h.logger.Info("discarded stale snapshot broadcast", "seq", snap.Seq)
		return
	}
	h.lastSeq = snap.Seq

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast queue full, dropping snapshot", "seq", snap.Seq)
	}
	h.mu.Unlock()
}

// Stats returns the subscriber count and the last broadcast sequence.
func (h *Hub) Stats() (subscribers int, lastSeq uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients), h.lastSeq
}
