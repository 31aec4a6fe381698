package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
)

// --- mocks ---

type mockReportSource struct {
	mu      sync.Mutex
	raws    []domain.RawReport
	err     error
	calls   int
	release chan struct{} // when non-nil, ActiveReports blocks until closed
}

func (m *mockReportSource) ActiveReports(ctx context.Context, _ int) ([]domain.RawReport, error) {
	m.mu.Lock()
	m.calls++
	raws, err, release := m.raws, m.err, m.release
	m.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return raws, err
}

func (m *mockReportSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type recordingListener struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

func (l *recordingListener) SnapshotPublished(snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshots = append(l.snapshots, snap)
}

func (l *recordingListener) published() []Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Snapshot(nil), l.snapshots...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRefresher(source ReportSource, store *Store, clock clockwork.Clock) *Refresher {
	return NewRefresher(source, store, nil, testLogger(), observability.NewMetricsForTesting(), 24*time.Hour, clock)
}

// --- tests ---

func TestRefresher_Refresh_ReplacesSnapshotWholesale(t *testing.T) {
	store := NewStore()
	clock := clockwork.NewFakeClock()
	source := &mockReportSource{
		raws: []domain.RawReport{
			{ID: "rep-1", HazardType: "tsunami", Severity: 5, Latitude: 13.08, Longitude: 80.27},
			{ID: "rep-2", Latitude: 15.55, Longitude: 73.76},
		},
	}

	r := newTestRefresher(source, store, clock)

	snap, err := r.Refresh(context.Background(), "manual")
	require.NoError(t, err)

	assert.Equal(t, SourceLive, snap.Source)
	require.Len(t, snap.Reports, 2)
	assert.Equal(t, "rep-1", snap.Reports[0].ID)
	assert.Equal(t, domain.SeverityHigh, snap.Reports[0].SeverityLevel)
	assert.Equal(t, domain.HazardOther, snap.Reports[1].HazardType, "missing type defaults to other")

	// Second fetch returns a disjoint set; the old reports must be gone entirely.
	source.mu.Lock()
	source.raws = []domain.RawReport{{ID: "rep-3", Latitude: 19.81, Longitude: 85.83}}
	source.mu.Unlock()

	snap2, err := r.Refresh(context.Background(), "manual")
	require.NoError(t, err)
	require.Len(t, snap2.Reports, 1)
	assert.Equal(t, "rep-3", snap2.Reports[0].ID)

	current := store.Current()
	if diff := cmp.Diff(snap2.Reports, current.Reports); diff != "" {
		t.Fatalf("store holds a different collection than the published snapshot (-want +got):\n%s", diff)
	}
}

func TestRefresher_Refresh_FallsBackToSampleData(t *testing.T) {
	store := NewStore()
	clock := clockwork.NewFakeClock()
	source := &mockReportSource{err: errors.New("connection refused")}

	r := newTestRefresher(source, store, clock)

	snap, err := r.Refresh(context.Background(), "scheduled")
	require.Error(t, err, "the fetch failure is still reported")

	assert.Equal(t, SourceFallback, snap.Source)
	assert.Equal(t, len(domain.SampleReports()), len(snap.Reports), "map renders exactly the sample set")
	assert.Equal(t, SourceFallback, store.Current().Source)
}

func TestRefresher_Refresh_NotifiesListenersAfterPublish(t *testing.T) {
	store := NewStore()
	listener := &recordingListener{}
	source := &mockReportSource{
		raws: []domain.RawReport{{ID: "rep-1", Latitude: 13.0, Longitude: 80.0}},
	}

	r := newTestRefresher(source, store, clockwork.NewFakeClock())
	r.Subscribe(listener)

	snap, err := r.Refresh(context.Background(), "manual")
	require.NoError(t, err)

	published := listener.published()
	require.Len(t, published, 1)
	assert.Equal(t, snap.Seq, published[0].Seq)

	// The store was already replaced when the listener fired, so ids can never mix.
	require.Len(t, published[0].Reports, 1)
	assert.Equal(t, store.Current().Reports[0].ID, published[0].Reports[0].ID)
}

func TestRefresher_StaleResponseDiscarded(t *testing.T) {
	store := NewStore()
	clock := clockwork.NewFakeClock()

	release := make(chan struct{})
	slowSource := &mockReportSource{
		raws:    []domain.RawReport{{ID: "stale", Latitude: 13.0, Longitude: 80.0}},
		release: release,
	}
	fastSource := &mockReportSource{
		raws: []domain.RawReport{{ID: "fresh", Latitude: 14.0, Longitude: 81.0}},
	}

	slow := newTestRefresher(slowSource, store, clock)
	fast := newTestRefresher(fastSource, store, clock)

	// Start the slow refresh first; it allocates the lower sequence.
	done := make(chan Snapshot, 1)
	go func() {
		snap, _ := slow.Refresh(context.Background(), "scheduled")
		done <- snap
	}()

	// Wait for the slow fetch to be in flight before racing it.
	require.Eventually(t, func() bool { return slowSource.callCount() == 1 }, time.Second, time.Millisecond)

	// The fast manual refresh resolves first and publishes.
	_, err := fast.Refresh(context.Background(), "manual")
	require.NoError(t, err)
	assert.Equal(t, "fresh", store.Current().Reports[0].ID)

	// Now let the slow response land: it must be discarded, not published.
	close(release)
	<-done
	assert.Equal(t, "fresh", store.Current().Reports[0].ID, "stale response must not overwrite fresher data")
}

func TestStore_PublishAndReadiness(t *testing.T) {
	store := NewStore()

	require.Error(t, store.CheckReadiness(context.Background()), "empty store is not ready")

	seq1 := store.NextSeq()
	seq2 := store.NextSeq()

	assert.True(t, store.Publish(Snapshot{Seq: seq2, Source: SourceLive}))
	assert.False(t, store.Publish(Snapshot{Seq: seq1, Source: SourceLive}), "lower sequence is stale")
	assert.Equal(t, seq2, store.Current().Seq)

	require.NoError(t, store.CheckReadiness(context.Background()))
}
