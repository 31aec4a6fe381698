package view

import (
	"strings"

	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
)

// Marker colors keyed by hazard type. Unrecognized types fall back to
// colorFallback so a new server-side type still renders.
var hazardColors = map[string]string{
	domain.HazardTsunami:         "#d32f2f",
	domain.HazardCyclone:         "#7b1fa2",
	domain.HazardFlood:           "#1976d2",
	domain.HazardStormSurge:      "#0288d1",
	domain.HazardHighWaves:       "#0097a7",
	domain.HazardCoastalFlooding: "#00796b",
	domain.HazardCoastalErosion:  "#795548",
	domain.HazardRipCurrent:      "#f57c00",
	domain.HazardOther:           "#607d8b",
}

const colorFallback = "#607d8b"

// Impact circle radius in meters per severity tier.
var severityRadiusMeters = map[domain.SeverityLevel]float64{
	domain.SeverityLow:    2000,
	domain.SeverityMedium: 5000,
	domain.SeverityHigh:   10000,
}

// Severity tier colors, shared with the table renderer so the two stay
// visually consistent.
var severityColors = map[domain.SeverityLevel]string{
	domain.SeverityLow:    "#388e3c",
	domain.SeverityMedium: "#f9a825",
	domain.SeverityHigh:   "#d32f2f",
}

// Marker is one point on the map layer.
type Marker struct {
	ReportID string  `json:"report_id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Color    string  `json:"color"`
	Label    string  `json:"label"`
}

// Circle is one impact circle centered on a report.
type Circle struct {
	ReportID     string  `json:"report_id"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	RadiusMeters float64 `json:"radius_meters"`
	Color        string  `json:"color"`
}

// Layer is a complete map overlay built from one snapshot. Consumers replace
// their previous layer wholesale; there is no incremental diff.
type Layer struct {
	Markers []Marker `json:"markers"`
	Circles []Circle `json:"circles"`
}

// BuildMapLayer renders one marker and one impact circle per report. The
// layer is rebuilt from scratch on every call; report counts are tens, not
// thousands, so a full rebuild stays cheap.
func BuildMapLayer(reports []domain.HazardReport) Layer {
	layer := Layer{
		Markers: make([]Marker, 0, len(reports)),
		Circles: make([]Circle, 0, len(reports)),
	}

	for _, r := range reports {
		color := hazardColor(r.HazardType)
		layer.Markers = append(layer.Markers, Marker{
			ReportID: r.ID,
			Lat:      r.Geo.Lat,
			Lon:      r.Geo.Lon,
			Color:    color,
			Label:    hazardLabel(r.HazardType),
		})
		layer.Circles = append(layer.Circles, Circle{
			ReportID:     r.ID,
			Lat:          r.Geo.Lat,
			Lon:          r.Geo.Lon,
			RadiusMeters: severityRadius(r.SeverityLevel),
			Color:        severityColor(r.SeverityLevel),
		})
	}
	return layer
}

func hazardColor(hazardType string) string {
	if c, ok := hazardColors[hazardType]; ok {
		return c
	}
	return colorFallback
}

func severityRadius(level domain.SeverityLevel) float64 {
	if r, ok := severityRadiusMeters[level]; ok {
		return r
	}
	return severityRadiusMeters[domain.SeverityLow]
}

// hazardLabel turns a wire hazard type into a display label, e.g.
// "storm_surge" into "Storm Surge".
func hazardLabel(hazardType string) string {
	words := strings.Split(hazardType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func severityColor(level domain.SeverityLevel) string {
	if c, ok := severityColors[level]; ok {
		return c
	}
	return severityColors[domain.SeverityLow]
}
