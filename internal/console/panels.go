package console

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/coastal-hazard-console/internal/adapter/hazardapi"
	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
)

// PanelSource provides the remote data backing the dashboard side panels.
type PanelSource interface {
	Stats(ctx context.Context) (hazardapi.DashboardStats, error)
	Trends(ctx context.Context) ([]hazardapi.TrendPoint, error)
	Alerts(ctx context.Context) ([]domain.AuthorityAlert, error)
}

// PanelState carries a panel's inline error state. A failed panel renders its
// own error message without blocking sibling panels.
type PanelState struct {
	Err       string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatsPanel is the statistics panel plus its state.
type StatsPanel struct {
	PanelState
	Data hazardapi.DashboardStats `json:"data"`
}

// TrendsPanel is the trend-chart panel plus its state.
type TrendsPanel struct {
	PanelState
	Data []hazardapi.TrendPoint `json:"data"`
}

// AlertsPanel is the authority-alerts panel plus its state.
type AlertsPanel struct {
	PanelState
	Data []domain.AuthorityAlert `json:"data"`
}

// Dashboard refreshes and caches the side panels. Each panel fetch fails
// independently: one broken endpoint degrades one panel, not the dashboard.
type Dashboard struct {
	source  PanelSource
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	mu     sync.RWMutex
	stats  StatsPanel
	trends TrendsPanel
	alerts AlertsPanel
}

// NewDashboard creates a Dashboard with empty panels.
func NewDashboard(source PanelSource, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Dashboard {
	return &Dashboard{
		source:  source,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// Refresh re-fetches all panels. A panel that fails keeps its previous data
// and records the failure inline; siblings are unaffected.
func (d *Dashboard) Refresh(ctx context.Context) {
	d.RefreshStats(ctx)
	d.RefreshTrends(ctx)
	d.RefreshAlerts(ctx)
}

// RefreshStats re-fetches only the statistics panel.
func (d *Dashboard) RefreshStats(ctx context.Context) {
	stats, err := d.source.Stats(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.UpdatedAt = d.clock.Now()
	if err != nil {
		d.stats.Err = err.Error()
		d.panelFailed("stats", err)
		return
	}
	d.stats = StatsPanel{PanelState: PanelState{UpdatedAt: d.clock.Now()}, Data: stats}
}

// RefreshTrends re-fetches only the trend panel.
func (d *Dashboard) RefreshTrends(ctx context.Context) {
	trends, err := d.source.Trends(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.trends.UpdatedAt = d.clock.Now()
	if err != nil {
		d.trends.Err = err.Error()
		d.panelFailed("trends", err)
		return
	}
	d.trends = TrendsPanel{PanelState: PanelState{UpdatedAt: d.clock.Now()}, Data: trends}
}

// RefreshAlerts re-fetches only the authority-alerts panel.
func (d *Dashboard) RefreshAlerts(ctx context.Context) {
	alerts, err := d.source.Alerts(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts.UpdatedAt = d.clock.Now()
	if err != nil {
		d.alerts.Err = err.Error()
		d.panelFailed("alerts", err)
		return
	}
	d.alerts = AlertsPanel{PanelState: PanelState{UpdatedAt: d.clock.Now()}, Data: alerts}
}

// Stats returns the statistics panel.
func (d *Dashboard) Stats() StatsPanel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// Trends returns the trend panel.
func (d *Dashboard) Trends() TrendsPanel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.trends
}

// Alerts returns the authority-alerts panel.
func (d *Dashboard) Alerts() AlertsPanel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.alerts
}

func (d *Dashboard) panelFailed(panel string, err error) {
	d.metrics.PanelFailures.WithLabelValues(panel).Inc()
	d.logger.Warn("panel refresh failed", "panel", panel, "error", err)
}
