package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coastal-hazard-console/internal/adapter/hazardapi"
	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
)

type mockReviewSource struct {
	verifyCalls  int
	lastReportID string
	lastStatus   string
	lastVerifier string
	verifyResp   hazardapi.VerifyResponse
	verifyErr    error

	alertCalls int
	lastAlert  hazardapi.AlertRequest
	alertResp  domain.AuthorityAlert
	alertErr   error
}

func (m *mockReviewSource) VerifyReport(_ context.Context, reportID, status, verifierID string) (hazardapi.VerifyResponse, error) {
	m.verifyCalls++
	m.lastReportID = reportID
	m.lastStatus = status
	m.lastVerifier = verifierID
	return m.verifyResp, m.verifyErr
}

func (m *mockReviewSource) CreateAlert(_ context.Context, req hazardapi.AlertRequest) (domain.AuthorityAlert, error) {
	m.alertCalls++
	m.lastAlert = req
	return m.alertResp, m.alertErr
}

type mockAlertPanel struct {
	calls int
}

func (m *mockAlertPanel) RefreshAlerts(context.Context) {
	m.calls++
}

func newTestReviewer(api ReviewSource, refresh RefreshTrigger, panel AlertPanelRefresher) *Reviewer {
	return NewReviewer(api, refresh, panel, "admin", testLogger(), observability.NewMetricsForTesting())
}

func TestReviewer_Verify_OnePostOneRefresh(t *testing.T) {
	api := &mockReviewSource{
		verifyResp: hazardapi.VerifyResponse{Status: "success", ReportID: "abc123", NewStatus: "verified"},
	}
	refresh := &mockRefreshTrigger{}

	r := newTestReviewer(api, refresh, &mockAlertPanel{})

	resp, err := r.Verify(context.Background(), "abc123", "verified")
	require.NoError(t, err)

	assert.Equal(t, 1, api.verifyCalls, "exactly one verification request")
	assert.Equal(t, "abc123", api.lastReportID)
	assert.Equal(t, "verified", api.lastStatus)
	assert.Equal(t, "admin", api.lastVerifier)

	assert.Equal(t, 1, refresh.calls, "exactly one refresh after the decision lands")
	assert.Equal(t, "verified", resp.NewStatus)
}

func TestReviewer_Verify_RejectDecision(t *testing.T) {
	api := &mockReviewSource{verifyResp: hazardapi.VerifyResponse{NewStatus: "rejected"}}
	refresh := &mockRefreshTrigger{}
	r := newTestReviewer(api, refresh, &mockAlertPanel{})

	_, err := r.Verify(context.Background(), "rep-5", "rejected")
	require.NoError(t, err)
	assert.Equal(t, "rejected", api.lastStatus)
	assert.Equal(t, 1, refresh.calls)
}

func TestReviewer_Verify_InvalidDecision(t *testing.T) {
	api := &mockReviewSource{}
	refresh := &mockRefreshTrigger{}
	r := newTestReviewer(api, refresh, &mockAlertPanel{})

	tests := []struct {
		name     string
		reportID string
		decision string
	}{
		{name: "unknown decision", reportID: "rep-1", decision: "approved"},
		{name: "pending is not a decision", reportID: "rep-1", decision: "pending"},
		{name: "empty report id", reportID: "", decision: "verified"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Verify(context.Background(), tc.reportID, tc.decision)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Zero(t, api.verifyCalls)
			assert.Zero(t, refresh.calls)
		})
	}
}

func TestReviewer_Verify_APIFailureSkipsRefresh(t *testing.T) {
	api := &mockReviewSource{verifyErr: errors.New("report not found")}
	refresh := &mockRefreshTrigger{}
	r := newTestReviewer(api, refresh, &mockAlertPanel{})

	_, err := r.Verify(context.Background(), "missing", "verified")
	require.Error(t, err)
	assert.Zero(t, refresh.calls, "no refresh when the decision did not land")
}

func TestReviewer_IssueAlert(t *testing.T) {
	api := &mockReviewSource{
		alertResp: domain.AuthorityAlert{ID: "alert-9", ReportID: "rep-3", Status: "urgent"},
	}
	panel := &mockAlertPanel{}
	r := newTestReviewer(api, &mockRefreshTrigger{}, panel)

	alert, err := r.IssueAlert(context.Background(), hazardapi.AlertRequest{
		ReportID:      "rep-3",
		AuthorityType: "coast_guard",
		Message:       "evacuate the northern beach",
		Status:        "urgent",
	})
	require.NoError(t, err)

	assert.Equal(t, "alert-9", alert.ID)
	assert.Equal(t, 1, api.alertCalls)
	assert.Equal(t, 1, panel.calls, "the alerts panel re-fetches after issuing")
}

func TestReviewer_IssueAlert_DefaultsStatus(t *testing.T) {
	api := &mockReviewSource{}
	r := newTestReviewer(api, &mockRefreshTrigger{}, &mockAlertPanel{})

	_, err := r.IssueAlert(context.Background(), hazardapi.AlertRequest{
		ReportID:      "rep-4",
		AuthorityType: "disaster_management",
		Message:       "monitor water levels",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AlertStandard, api.lastAlert.Status)
}

func TestReviewer_IssueAlert_MissingFields(t *testing.T) {
	api := &mockReviewSource{}
	panel := &mockAlertPanel{}
	r := newTestReviewer(api, &mockRefreshTrigger{}, panel)

	_, err := r.IssueAlert(context.Background(), hazardapi.AlertRequest{ReportID: "rep-5"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, api.alertCalls)
	assert.Zero(t, panel.calls)
}
