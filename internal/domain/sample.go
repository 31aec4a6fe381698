package domain

// SampleReports returns the built-in fallback dataset used when a refresh
// cannot reach the remote API. The map and table stay populated during an
// outage instead of going blank; snapshots built from this set are tagged so
// callers can tell fallback data from live data.
//
// Coordinates are real Indian coastal locations so the fallback renders
// inside the default coverage bounds.
func SampleReports() []HazardReport {
	now := clock.Now()

	reports := []HazardReport{
		{
			ID:           "sample-tsunami-001",
			Geo:          Geo{Lat: 13.0827, Lon: 80.2707},
			HazardType:   HazardTsunami,
			SeverityRaw:  5,
			Status:       StatusVerified,
			Title:        "Unusual water recession at Marina Beach",
			Description:  "Rapid sea withdrawal observed along the shoreline, possible tsunami precursor.",
			LocationName: "Chennai, Tamil Nadu",
		},
		{
			ID:           "sample-cyclone-002",
			Geo:          Geo{Lat: 19.8135, Lon: 85.8312},
			HazardType:   HazardCyclone,
			SeverityRaw:  4,
			Status:       StatusVerified,
			Title:        "Cyclonic winds near Puri coast",
			Description:  "Sustained high winds and heavy rain, fishing boats recalled to harbour.",
			LocationName: "Puri, Odisha",
		},
		{
			ID:           "sample-surge-003",
			Geo:          Geo{Lat: 21.6417, Lon: 87.5082},
			HazardType:   HazardStormSurge,
			SeverityRaw:  3,
			Status:       StatusPending,
			Title:        "Storm surge flooding beach road",
			Description:  "Sea water crossing the embankment at high tide near Digha.",
			LocationName: "Digha, West Bengal",
		},
		{
			ID:           "sample-waves-004",
			Geo:          Geo{Lat: 8.3833, Lon: 76.9833},
			HazardType:   HazardHighWaves,
			SeverityRaw:  3,
			Status:       StatusPending,
			Title:        "High swell waves at Kovalam",
			Description:  "Waves overtopping the sea wall, beach access closed.",
			LocationName: "Kovalam, Kerala",
		},
		{
			ID:           "sample-rip-005",
			Geo:          Geo{Lat: 15.5491, Lon: 73.7632},
			HazardType:   HazardRipCurrent,
			SeverityRaw:  2,
			Status:       StatusPending,
			Title:        "Rip current warning at Baga beach",
			Description:  "Strong offshore pull reported by lifeguards, two swimmers assisted.",
			LocationName: "Baga, Goa",
		},
		{
			ID:           "sample-erosion-006",
			Geo:          Geo{Lat: 22.2587, Lon: 71.1924},
			HazardType:   HazardCoastalErosion,
			SeverityRaw:  1,
			Status:       StatusPending,
			Title:        "Shoreline erosion near fishing village",
			Description:  "Gradual loss of beach front observed over the past week.",
			LocationName: "Gujarat coast",
		},
	}

	for i := range reports {
		reports[i].SeverityLevel = DeriveSeverityLevel(reports[i].SeverityRaw)
		reports[i].Timestamp = now
		reports[i].FetchedAt = now
	}
	return reports
}
