package view

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
)

// Status badge colors for the table's status column.
var statusColors = map[string]string{
	domain.StatusPending:      "#f9a825",
	domain.StatusVerified:     "#388e3c",
	domain.StatusRejected:     "#b0bec5",
	domain.AlertUrgent:        "#d32f2f",
	domain.AlertHighPriority:  "#f57c00",
	domain.AlertStandard:      "#1976d2",
	domain.AlertInformational: "#607d8b",
}

const truncatedIDLen = 8

// Row is one report rendered for the list view. All free-text fields are
// HTML-escaped here because report text originates from untrusted public
// submissions; consumers may insert them into markup verbatim.
type Row struct {
	ID            string               `json:"id"`
	ShortID       string               `json:"short_id"`
	HazardType    string               `json:"hazard_type"`
	TypeLabel     string               `json:"type_label"`
	TypeColor     string               `json:"type_color"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	LocationName  string               `json:"location_name"`
	Stars         string               `json:"stars"`
	SeverityRaw   int                  `json:"severity_raw"`
	SeverityLevel domain.SeverityLevel `json:"severity_level"`
	SeverityColor string               `json:"severity_color"`
	Timestamp     string               `json:"timestamp"`
	RelativeTime  string               `json:"relative_time"`
	Status        string               `json:"status"`
	StatusColor   string               `json:"status_color"`
	MediaCount    int                  `json:"media_count"`
	PriorityScore *float64             `json:"priority_score,omitempty"`
}

// BuildTableRows renders the report collection as list rows, one per report,
// in snapshot order. The whole slice is rebuilt per call, mirroring the map
// layer's full-redraw contract.
func BuildTableRows(reports []domain.HazardReport) []Row {
	now := clock.Now()

	rows := make([]Row, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, Row{
			ID:            r.ID,
			ShortID:       shortID(r.ID),
			HazardType:    r.HazardType,
			TypeLabel:     hazardLabel(r.HazardType),
			TypeColor:     hazardColor(r.HazardType),
			Title:         html.EscapeString(r.Title),
			Description:   html.EscapeString(r.Description),
			LocationName:  html.EscapeString(r.LocationName),
			Stars:         starGlyphs(r.SeverityRaw),
			SeverityRaw:   r.SeverityRaw,
			SeverityLevel: r.SeverityLevel,
			SeverityColor: severityColor(r.SeverityLevel),
			Timestamp:     r.Timestamp.Format(time.RFC3339),
			RelativeTime:  relativeTime(now, r.Timestamp),
			Status:        r.Status,
			StatusColor:   statusColor(r.Status),
			MediaCount:    len(r.MediaURLs),
			PriorityScore: r.PriorityScore,
		})
	}
	return rows
}

func shortID(id string) string {
	if len(id) <= truncatedIDLen {
		return id
	}
	return id[:truncatedIDLen]
}

// starGlyphs renders severity as five star slots, filled count clamped to
// [0,5].
func starGlyphs(severity int) string {
	if severity < 0 {
		severity = 0
	}
	if severity > 5 {
		severity = 5
	}
	return strings.Repeat("★", severity) + strings.Repeat("☆", 5-severity)
}

func statusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[domain.StatusPending]
}

// relativeTime formats the distance between now and ts for the table's
// "when" column. A zero timestamp renders as unknown.
func relativeTime(now, ts time.Time) string {
	if ts.IsZero() {
		return "unknown"
	}

	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
