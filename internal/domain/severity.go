package domain

// SeverityLevel is the three-tier bucket derived from a raw 0–5 severity score.
type SeverityLevel string

const (
	SeverityLow    SeverityLevel = "low"
	SeverityMedium SeverityLevel = "medium"
	SeverityHigh   SeverityLevel = "high"
)

// DeriveSeverityLevel buckets a raw severity score: ≥4 high, ≥2 medium,
// otherwise low. Missing severity defaults to 0 upstream and lands in low.
func DeriveSeverityLevel(raw int) SeverityLevel {
	switch {
	case raw >= 4:
		return SeverityHigh
	case raw >= 2:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// PriorityScore reproduces the remote API's scoring model: base weight per
// hazard type, scaled by severity/5, with a clustering bonus of 0.2 per nearby
// report capped at 2.0. The console does not rank by this locally; the demo
// seeder uses it to label generated traffic the way real records arrive.
func PriorityScore(hazardType string, severity, nearbyReports int) float64 {
	base, ok := HazardWeights[hazardType]
	if !ok {
		base = HazardWeights[HazardOther]
	}

	multiplier := float64(severity) / 5.0
	bonus := float64(nearbyReports) * 0.2
	if bonus > 2.0 {
		bonus = 2.0
	}

	score := base * multiplier * (1 + bonus)
	return roundTo2(score)
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
