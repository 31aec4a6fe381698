package console

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/coastal-hazard-console/internal/adapter/hazardapi"
	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
)

// ReviewSource performs the authority-side mutations on the remote API.
type ReviewSource interface {
	VerifyReport(ctx context.Context, reportID, status, verifierID string) (hazardapi.VerifyResponse, error)
	CreateAlert(ctx context.Context, req hazardapi.AlertRequest) (domain.AuthorityAlert, error)
}

// AlertPanelRefresher re-fetches the authority-alerts panel after a new alert
// is issued.
type AlertPanelRefresher interface {
	RefreshAlerts(ctx context.Context)
}

// Reviewer runs the verification and authority-alert flows. Both are
// fire-and-refresh: no optimistic cache update, the new state appears once the
// follow-up refresh lands.
type Reviewer struct {
	api        ReviewSource
	refresh    RefreshTrigger
	alertPanel AlertPanelRefresher
	verifierID string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewReviewer creates a Reviewer acting as the configured verifier identity.
func NewReviewer(api ReviewSource, refresh RefreshTrigger, alertPanel AlertPanelRefresher, verifierID string, logger *slog.Logger, metrics *observability.Metrics) *Reviewer {
	return &Reviewer{
		api:        api,
		refresh:    refresh,
		alertPanel: alertPanel,
		verifierID: verifierID,
		logger:     logger,
		metrics:    metrics,
	}
}

// Verify posts a verification decision, then triggers exactly one cache
// refresh. Decision must be "verified" or "rejected".
func (r *Reviewer) Verify(ctx context.Context, reportID, decision string) (hazardapi.VerifyResponse, error) {
	if decision != domain.StatusVerified && decision != domain.StatusRejected {
		return hazardapi.VerifyResponse{}, &ValidationError{
			Rule:    "decision",
			Message: fmt.Sprintf("decision must be %q or %q, got %q", domain.StatusVerified, domain.StatusRejected, decision),
		}
	}
	if reportID == "" {
		return hazardapi.VerifyResponse{}, &ValidationError{Rule: "required", Message: "report id is required"}
	}

	resp, err := r.api.VerifyReport(ctx, reportID, decision, r.verifierID)
	if err != nil {
		return hazardapi.VerifyResponse{}, err
	}

	r.metrics.Verifications.Inc()
	r.logger.Info("report verified",
		"report_id", reportID,
		"decision", decision,
		"verifier_id", r.verifierID,
	)

	if _, err := r.refresh.RefreshNow(ctx); err != nil {
		r.logger.Warn("post-verification refresh degraded", "error", err)
	}
	return resp, nil
}

// IssueAlert creates an authority alert for a report, then re-fetches the
// alerts panel.
func (r *Reviewer) IssueAlert(ctx context.Context, req hazardapi.AlertRequest) (domain.AuthorityAlert, error) {
	if req.ReportID == "" || req.AuthorityType == "" || req.Message == "" {
		return domain.AuthorityAlert{}, &ValidationError{Rule: "required", Message: "report id, authority type and message are required"}
	}
	if req.Status == "" {
		req.Status = domain.AlertStandard
	}

	alert, err := r.api.CreateAlert(ctx, req)
	if err != nil {
		return domain.AuthorityAlert{}, err
	}

	r.metrics.AlertsIssued.Inc()
	r.logger.Info("authority alert issued",
		"alert_id", alert.ID,
		"report_id", req.ReportID,
		"authority_type", req.AuthorityType,
		"status", req.Status,
	)

	r.alertPanel.RefreshAlerts(ctx)
	return alert, nil
}
