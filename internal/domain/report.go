package domain

import (
	"time"
)

// Hazard types accepted by the remote API. Unrecognized values map to
// HazardOther during ingestion rather than being rejected.
const (
	HazardTsunami         = "tsunami"
	HazardCyclone         = "cyclone"
	HazardFlood           = "flood"
	HazardStormSurge      = "storm_surge"
	HazardHighWaves       = "high_waves"
	HazardCoastalFlooding = "coastal_flooding"
	HazardCoastalErosion  = "coastal_erosion"
	HazardRipCurrent      = "rip_current"
	HazardOther           = "other"
)

// Verification statuses for citizen reports.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Authority alert statuses. These appear only on alert records, never on
// citizen reports.
const (
	AlertUrgent        = "urgent"
	AlertHighPriority  = "high_priority"
	AlertStandard      = "standard"
	AlertInformational = "informational"
)

// HazardWeights are the base priority weights per hazard type, mirroring the
// remote API's scoring model. Used by the demo seeder and surfaced on
// view-models for operator triage.
var HazardWeights = map[string]float64{
	HazardTsunami:         5.0,
	HazardStormSurge:      4.5,
	HazardCyclone:         4.5,
	HazardCoastalFlooding: 3.5,
	HazardHighWaves:       3.0,
	HazardRipCurrent:      3.0,
	HazardCoastalErosion:  2.0,
	HazardOther:           1.0,
}

// Geo is a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Plausible reports whether the pair can be drawn on a map. The remote API
// occasionally emits zeroed coordinates for unlocated reports; those render
// in the Gulf of Guinea, so they are treated as implausible too.
func (g Geo) Plausible() bool {
	if g.Lat == 0 && g.Lon == 0 {
		return false
	}
	return g.Lat >= -90 && g.Lat <= 90 && g.Lon >= -180 && g.Lon <= 180
}

// RawReport is the wire shape of a report record as served by the remote API.
type RawReport struct {
	ID           string         `json:"id"`
	HazardType   string         `json:"hazard_type"`
	Severity     int            `json:"severity"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	LocationName string         `json:"location_name"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Timestamp    string         `json:"timestamp"`
	Status       string         `json:"verification_status"`
	Priority     *float64       `json:"priority_score"`
	MediaURLs    []string       `json:"media_urls"`
	Weather      map[string]any `json:"weather_conditions,omitempty"`
}

// HazardReport is the immutable view-model the console renders from. Instances
// are built fresh on every fetch cycle; nothing mutates them in place.
type HazardReport struct {
	ID            string
	Geo           Geo
	HazardType    string
	SeverityRaw   int
	SeverityLevel SeverityLevel
	Status        string
	Title         string
	Description   string
	LocationName  string
	Timestamp     time.Time
	MediaURLs     []string
	PriorityScore *float64
	FetchedAt     time.Time
}

// AuthorityAlert links a hazard report to a responding authority. Created only
// through the review flow; renderers never mutate alert records.
type AuthorityAlert struct {
	ID            string    `json:"id"`
	ReportID      string    `json:"report_id"`
	AuthorityType string    `json:"authority_type"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// MapReport converts a raw API record into a view-model, applying the
// documented ingestion defaults: missing severity → 0, missing hazard type →
// "other", missing status → "pending".
func MapReport(raw RawReport) HazardReport {
	hazardType := raw.HazardType
	if hazardType == "" {
		hazardType = HazardOther
	}
	status := raw.Status
	if status == "" {
		status = StatusPending
	}

	severity := raw.Severity
	if severity < 0 {
		severity = 0
	}
	if severity > 5 {
		severity = 5
	}

	return HazardReport{
		ID:            raw.ID,
		Geo:           Geo{Lat: raw.Latitude, Lon: raw.Longitude},
		HazardType:    hazardType,
		SeverityRaw:   severity,
		SeverityLevel: DeriveSeverityLevel(severity),
		Status:        status,
		Title:         raw.Title,
		Description:   raw.Description,
		LocationName:  raw.LocationName,
		Timestamp:     parseTimestamp(raw.Timestamp),
		MediaURLs:     raw.MediaURLs,
		PriorityScore: raw.Priority,
		FetchedAt:     clock.Now(),
	}
}

// MapReports converts a fetched collection wholesale. Records with implausible
// coordinates are dropped and counted; duplicate IDs keep the last record so
// the snapshot invariant (unique IDs) always holds.
func MapReports(raws []RawReport) (reports []HazardReport, dropped int) {
	byID := make(map[string]int, len(raws))
	reports = make([]HazardReport, 0, len(raws))

	for _, raw := range raws {
		r := MapReport(raw)
		if !r.Geo.Plausible() {
			dropped++
			continue
		}
		if i, seen := byID[r.ID]; seen {
			reports[i] = r
			continue
		}
		byID[r.ID] = len(reports)
		reports = append(reports, r)
	}
	return reports, dropped
}

// parseTimestamp accepts the API's ISO-8601 timestamps with or without a zone
// offset. Unparseable values yield the zero time; renderers show those as
// "unknown" rather than failing the whole snapshot.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
