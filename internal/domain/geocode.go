package domain

import (
	"context"
	"log/slog"
)

// ResolveLocationNames fills in missing location names by reverse geocoding
// report coordinates. If geocoder is nil or a lookup fails, the report keeps
// its empty name (graceful degradation); the snapshot is never blocked on the
// geocoding provider.
func ResolveLocationNames(ctx context.Context, reports []HazardReport, geocoder Geocoder, logger *slog.Logger) []HazardReport {
	if geocoder == nil {
		return reports
	}

	for i := range reports {
		if reports[i].LocationName != "" {
			continue
		}

		result, err := geocoder.ReverseGeocode(ctx, reports[i].Geo.Lat, reports[i].Geo.Lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"report_id", reports[i].ID,
				"lat", reports[i].Geo.Lat,
				"lon", reports[i].Geo.Lon,
				"error", err,
			)
			continue
		}
		if result.FormattedAddress != "" {
			reports[i].LocationName = result.FormattedAddress
		}
	}
	return reports
}
