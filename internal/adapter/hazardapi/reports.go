package hazardapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
)

// MediaFile is one attachment on a report submission.
type MediaFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReportSubmission carries a validated citizen report ready for upload.
type ReportSubmission struct {
	ReporterID   string
	Latitude     float64
	Longitude    float64
	LocationName string
	HazardType   string
	Severity     int
	Description  string
	WeatherJSON  string // optional, pre-validated JSON object
	Media        []MediaFile
}

// SubmitResponse is the server's acknowledgement of a new report.
type SubmitResponse struct {
	Status             string  `json:"status"`
	ReportID           string  `json:"report_id"`
	PriorityScore      float64 `json:"priority_score"`
	NearbyReportsCount int     `json:"nearby_reports_count"`
	Message            string  `json:"message"`
}

// VerifyResponse is the server's acknowledgement of a verification decision.
type VerifyResponse struct {
	Status     string `json:"status"`
	ReportID   string `json:"report_id"`
	NewStatus  string `json:"new_status"`
	VerifiedBy string `json:"verified_by"`
}

// ReportFilter narrows a /api/reports/filter query. Zero values are omitted.
type ReportFilter struct {
	Location    string
	HazardType  string
	StartDate   string
	EndDate     string
	MinSeverity int
	Status      string
}

// ActiveReports lists reports within the given time window in hours.
func (c *Client) ActiveReports(ctx context.Context, hours int) ([]domain.RawReport, error) {
	query := url.Values{}
	if hours > 0 {
		query.Set("hours", strconv.Itoa(hours))
	}

	var raws []domain.RawReport
	if err := c.get(ctx, "active_reports", "/api/reports/active", query, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// Report fetches a single report with full detail.
func (c *Client) Report(ctx context.Context, id string) (domain.RawReport, error) {
	var raw domain.RawReport
	if err := c.get(ctx, "report_detail", "/api/reports/"+url.PathEscape(id), nil, &raw); err != nil {
		return domain.RawReport{}, err
	}
	return raw, nil
}

// FilterReports queries reports by the given criteria.
func (c *Client) FilterReports(ctx context.Context, f ReportFilter) ([]domain.RawReport, error) {
	query := url.Values{}
	if f.Location != "" {
		query.Set("location", f.Location)
	}
	if f.HazardType != "" {
		query.Set("hazard_type", f.HazardType)
	}
	if f.StartDate != "" {
		query.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		query.Set("end_date", f.EndDate)
	}
	if f.MinSeverity > 0 {
		query.Set("min_severity", strconv.Itoa(f.MinSeverity))
	}
	if f.Status != "" {
		query.Set("verification_status", f.Status)
	}

	var raws []domain.RawReport
	if err := c.get(ctx, "filter_reports", "/api/reports/filter", query, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// VerifyReport posts a verification decision for a report.
func (c *Client) VerifyReport(ctx context.Context, reportID, status, verifierID string) (VerifyResponse, error) {
	body := map[string]string{
		"status":      status,
		"verifier_id": verifierID,
	}

	var resp VerifyResponse
	err := c.postJSON(ctx, "verify_report", "/api/reports/"+url.PathEscape(reportID)+"/verify", body, &resp)
	if err != nil {
		return VerifyResponse{}, err
	}
	return resp, nil
}

// SubmitReport uploads a new report as multipart form data, files included.
func (c *Client) SubmitReport(ctx context.Context, sub ReportSubmission) (SubmitResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"user_id":     sub.ReporterID,
		"latitude":    strconv.FormatFloat(sub.Latitude, 'f', -1, 64),
		"longitude":   strconv.FormatFloat(sub.Longitude, 'f', -1, 64),
		"hazard_type": sub.HazardType,
		"severity":    strconv.Itoa(sub.Severity),
		"description": sub.Description,
	}
	if sub.LocationName != "" {
		fields["location_name"] = sub.LocationName
	}
	if sub.WeatherJSON != "" {
		fields["weather_conditions"] = sub.WeatherJSON
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return SubmitResponse{}, fmt.Errorf("write form field %s: %w", name, err)
		}
	}

	for _, media := range sub.Media {
		part, err := w.CreateFormFile("media_files", media.Filename)
		if err != nil {
			return SubmitResponse{}, fmt.Errorf("create form file %s: %w", media.Filename, err)
		}
		if _, err := part.Write(media.Content); err != nil {
			return SubmitResponse{}, fmt.Errorf("write form file %s: %w", media.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return SubmitResponse{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	var resp SubmitResponse
	err := c.postMultipart(ctx, "submit_report", "/api/reports/submit", w.FormDataContentType(), &buf, &resp)
	if err != nil {
		return SubmitResponse{}, err
	}
	return resp, nil
}
