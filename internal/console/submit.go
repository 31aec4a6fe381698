package console

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/coastal-hazard-console/internal/adapter/hazardapi"
	"github.com/couchcryptid/coastal-hazard-console/internal/config"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
)

// ValidationError is a submission rejected client-side, before any network
// call. Rule names the failed check for metrics and tests.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmitSource uploads a validated report to the remote API.
type SubmitSource interface {
	SubmitReport(ctx context.Context, sub hazardapi.ReportSubmission) (hazardapi.SubmitResponse, error)
}

// RefreshTrigger requests an out-of-band refresh cycle after a mutation.
type RefreshTrigger interface {
	RefreshNow(ctx context.Context) (Snapshot, error)
}

// Submitter runs the report submission flow: client-side validation, multipart
// upload, then a cache refresh so the new report appears without waiting for
// the next scheduled cycle.
type Submitter struct {
	api      SubmitSource
	refresh  RefreshTrigger
	bounds   config.Bounds
	maxBytes int64
	maxFiles int
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewSubmitter creates a Submitter with the configured validation ceilings.
func NewSubmitter(api SubmitSource, refresh RefreshTrigger, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Submitter {
	return &Submitter{
		api:      api,
		refresh:  refresh,
		bounds:   cfg.Bounds,
		maxBytes: cfg.MaxMediaBytes,
		maxFiles: cfg.MaxMediaFiles,
		logger:   logger,
		metrics:  metrics,
	}
}

// Submit validates and uploads a citizen report. Validation failures return a
// *ValidationError and never touch the network; the caller keeps its input for
// retry. On upload success one refresh cycle is triggered.
func (s *Submitter) Submit(ctx context.Context, sub hazardapi.ReportSubmission) (hazardapi.SubmitResponse, error) {
	if err := s.validate(sub); err != nil {
		s.metrics.ValidationRejects.WithLabelValues(err.Rule).Inc()
		s.metrics.Submissions.WithLabelValues("rejected").Inc()
		return hazardapi.SubmitResponse{}, err
	}

	resp, err := s.api.SubmitReport(ctx, sub)
	if err != nil {
		s.metrics.Submissions.WithLabelValues("failed").Inc()
		return hazardapi.SubmitResponse{}, err
	}

	s.metrics.Submissions.WithLabelValues("accepted").Inc()
	s.logger.Info("report submitted",
		"report_id", resp.ReportID,
		"hazard_type", sub.HazardType,
		"priority_score", resp.PriorityScore,
	)

	if _, err := s.refresh.RefreshNow(ctx); err != nil {
		// The report is in; a degraded refresh only delays its appearance.
		s.logger.Warn("post-submission refresh degraded", "error", err)
	}
	return resp, nil
}

func (s *Submitter) validate(sub hazardapi.ReportSubmission) *ValidationError {
	if sub.ReporterID == "" || sub.HazardType == "" || sub.Description == "" {
		return &ValidationError{Rule: "required", Message: "reporter id, hazard type and description are required"}
	}
	if sub.Severity < 1 || sub.Severity > 5 {
		return &ValidationError{Rule: "required", Message: "severity must be between 1 and 5"}
	}

	if sub.Latitude == 0 && sub.Longitude == 0 {
		return &ValidationError{Rule: "location", Message: "a report location must be selected"}
	}
	if !s.bounds.Contains(sub.Latitude, sub.Longitude) {
		return &ValidationError{
			Rule: "bounds",
			Message: fmt.Sprintf("location (%.4f, %.4f) is outside the coastal coverage area (lat %.1f–%.1f, lon %.1f–%.1f)",
				sub.Latitude, sub.Longitude, s.bounds.MinLat, s.bounds.MaxLat, s.bounds.MinLon, s.bounds.MaxLon),
		}
	}

	if len(sub.Media) > s.maxFiles {
		return &ValidationError{
			Rule:    "media_count",
			Message: fmt.Sprintf("at most %d media files may be attached, got %d", s.maxFiles, len(sub.Media)),
		}
	}
	for _, media := range sub.Media {
		if int64(len(media.Content)) > s.maxBytes {
			return &ValidationError{
				Rule:    "media_size",
				Message: fmt.Sprintf("file %s exceeds the %d MB limit", media.Filename, s.maxBytes/(1024*1024)),
			}
		}
		if !strings.HasPrefix(media.ContentType, "image/") && !strings.HasPrefix(media.ContentType, "video/") {
			return &ValidationError{
				Rule:    "media_type",
				Message: fmt.Sprintf("file %s has unsupported type %s, only images and videos are accepted", media.Filename, media.ContentType),
			}
		}
	}

	if sub.WeatherJSON != "" {
		var weather map[string]any
		if err := json.Unmarshal([]byte(sub.WeatherJSON), &weather); err != nil {
			return &ValidationError{Rule: "weather", Message: "weather conditions must be a valid JSON object"}
		}
	}

	return nil
}
