package console

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
)

// ReportSource fetches the active-report collection from the remote API.
type ReportSource interface {
	ActiveReports(ctx context.Context, hours int) ([]domain.RawReport, error)
}

// Listener is notified after a snapshot has been published. The WebSocket hub
// and any renderer caches hang off this; notification strictly follows cache
// replacement so a listener never observes a half-replaced collection.
type Listener interface {
	SnapshotPublished(snap Snapshot)
}

// Refresher runs one fetch-map-publish cycle over the hazard report source.
type Refresher struct {
	source    ReportSource
	store     *Store
	geocoder  domain.Geocoder // optional, nil disables name enrichment
	listeners []Listener
	logger    *slog.Logger
	metrics   *observability.Metrics
	window    time.Duration
	clock     clockwork.Clock

	// publishMu serializes store replacement and listener notification, so
	// listeners observe snapshots in sequence order even when a manual and a
	// scheduled refresh resolve back to back.
	publishMu sync.Mutex
}

// NewRefresher creates a Refresher. Listeners are notified in registration
// order after every successful publish.
func NewRefresher(
	source ReportSource,
	store *Store,
	geocoder domain.Geocoder,
	logger *slog.Logger,
	metrics *observability.Metrics,
	window time.Duration,
	clock clockwork.Clock,
) *Refresher {
	return &Refresher{
		source:   source,
		store:    store,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
		window:   window,
		clock:    clock,
	}
}

// Subscribe registers a listener for published snapshots. Not safe to call
// once refreshes have started.
func (r *Refresher) Subscribe(l Listener) {
	r.listeners = append(r.listeners, l)
}

// Refresh performs one full cycle: fetch active reports, map them to
// view-models, publish the snapshot wholesale, notify listeners. On fetch
// failure the built-in sample set is published instead (tagged as fallback)
// so the map never goes blank during an outage. The returned error reports
// the fetch failure even when the fallback published fine.
func (r *Refresher) Refresh(ctx context.Context, trigger string) (Snapshot, error) {
	seq := r.store.NextSeq()

	hours := int(r.window / time.Hour)
	raws, err := r.source.ActiveReports(ctx, hours)
	if err != nil {
		r.logger.Warn("refresh fetch failed, falling back to sample data",
			"trigger", trigger, "seq", seq, "error", err)

		snap := Snapshot{
			Seq:       seq,
			Reports:   domain.SampleReports(),
			FetchedAt: r.clock.Now(),
			Source:    SourceFallback,
		}
		r.publish(snap, trigger)
		return snap, err
	}

	reports, dropped := domain.MapReports(raws)
	if dropped > 0 {
		r.metrics.ReportsDropped.Add(float64(dropped))
		r.logger.Warn("dropped records with implausible coordinates",
			"trigger", trigger, "dropped", dropped)
	}
	reports = domain.ResolveLocationNames(ctx, reports, r.geocoder, r.logger)

	snap := Snapshot{
		Seq:       seq,
		Reports:   reports,
		FetchedAt: r.clock.Now(),
		Source:    SourceLive,
	}
	r.publish(snap, trigger)
	return snap, nil
}

func (r *Refresher) publish(snap Snapshot, trigger string) {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	if !r.store.Publish(snap) {
		r.metrics.RefreshDiscards.Inc()
		r.logger.Info("discarded stale refresh response", "seq", snap.Seq, "trigger", trigger)
		return
	}

	r.metrics.RefreshCycles.WithLabelValues(trigger, string(snap.Source)).Inc()
	r.metrics.SnapshotReports.Set(float64(len(snap.Reports)))

	for _, l := range r.listeners {
		l.SnapshotPublished(snap)
	}

	r.logger.Info("snapshot published",
		"seq", snap.Seq,
		"trigger", trigger,
		"source", snap.Source,
		"reports", len(snap.Reports),
	)
}
