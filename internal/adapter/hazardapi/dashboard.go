package hazardapi

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
)

// DashboardStats summarizes the last 24 hours of reporting activity.
type DashboardStats struct {
	TotalReports       int            `json:"total_reports"`
	VerifiedReports    int            `json:"verified_reports"`
	ActiveHazards      int            `json:"active_hazards"`
	HighPriorityAlerts int            `json:"high_priority_alerts"`
	HotspotCount       int            `json:"hotspot_count"`
	AverageSeverity    float64        `json:"average_severity"`
	HazardDistribution map[string]int `json:"hazard_distribution"`
	LastUpdated        string         `json:"last_updated"`
}

// TrendPoint is one bucket in the report-volume trend series.
type TrendPoint struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// Weather is a current-conditions snapshot for a coordinate pair.
type Weather struct {
	Temperature        float64 `json:"temperature"`
	WindSpeed          float64 `json:"wind_speed"`
	WindDirection      string  `json:"wind_direction"`
	Humidity           float64 `json:"humidity"`
	Pressure           float64 `json:"pressure"`
	WeatherDescription string  `json:"weather_description"`
	Precipitation      float64 `json:"precipitation"`
	WaveHeight         float64 `json:"wave_height"`
	Timestamp          string  `json:"timestamp"`
}

// SocialMediaPost is one inbound post to run hazard analysis on.
type SocialMediaPost struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// SocialMediaAlert is a hazard signal extracted from social posts.
type SocialMediaAlert struct {
	PostID     string  `json:"post_id"`
	HazardType string  `json:"hazard_type"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

// AlertRequest creates a new authority alert for a report.
type AlertRequest struct {
	ReportID      string `json:"report_id"`
	AuthorityType string `json:"authority_type"`
	Message       string `json:"message"`
	Status        string `json:"status"`
}

// Stats fetches the dashboard statistics panel.
func (c *Client) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	if err := c.get(ctx, "dashboard_stats", "/api/dashboard/stats", nil, &stats); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

// Trends fetches the report-volume trend series.
func (c *Client) Trends(ctx context.Context) ([]TrendPoint, error) {
	var points []TrendPoint
	if err := c.get(ctx, "dashboard_trends", "/api/dashboard/trends", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// DashboardReports fetches the report listing backing the dashboard table.
func (c *Client) DashboardReports(ctx context.Context) ([]domain.RawReport, error) {
	var raws []domain.RawReport
	if err := c.get(ctx, "dashboard_reports", "/api/dashboard/reports", nil, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// Alerts lists existing authority alerts.
func (c *Client) Alerts(ctx context.Context) ([]domain.AuthorityAlert, error) {
	var alerts []domain.AuthorityAlert
	if err := c.get(ctx, "alerts", "/api/alerts", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// CreateAlert posts a new authority alert record.
func (c *Client) CreateAlert(ctx context.Context, req AlertRequest) (domain.AuthorityAlert, error) {
	var alert domain.AuthorityAlert
	if err := c.postJSON(ctx, "create_alert", "/api/alerts", req, &alert); err != nil {
		return domain.AuthorityAlert{}, err
	}
	return alert, nil
}

// AnalyzeSocialMedia submits posts for hazard signal extraction.
func (c *Client) AnalyzeSocialMedia(ctx context.Context, posts []SocialMediaPost) ([]SocialMediaAlert, error) {
	body := map[string]any{"posts": posts}

	var resp struct {
		Alerts []SocialMediaAlert `json:"alerts"`
	}
	if err := c.postJSON(ctx, "analyze_social_media", "/api/analyze/social-media", body, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// CurrentWeather fetches conditions for a coordinate pair.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (Weather, error) {
	query := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}

	var weather Weather
	if err := c.get(ctx, "weather", "/api/weather", query, &weather); err != nil {
		return Weather{}, err
	}
	return weather, nil
}
