package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
)

func TestBuildMapLayer(t *testing.T) {
	reports := []domain.HazardReport{
		{
			ID:            "rep-1",
			Geo:           domain.Geo{Lat: 13.0827, Lon: 80.2707},
			HazardType:    domain.HazardTsunami,
			SeverityRaw:   5,
			SeverityLevel: domain.SeverityHigh,
		},
		{
			ID:            "rep-2",
			Geo:           domain.Geo{Lat: 15.5527, Lon: 73.7624},
			HazardType:    domain.HazardRipCurrent,
			SeverityRaw:   2,
			SeverityLevel: domain.SeverityMedium,
		},
	}

	layer := BuildMapLayer(reports)

	require.Len(t, layer.Markers, 2)
	require.Len(t, layer.Circles, 2)

	assert.Equal(t, "rep-1", layer.Markers[0].ReportID)
	assert.Equal(t, hazardColors[domain.HazardTsunami], layer.Markers[0].Color)
	assert.Equal(t, "Tsunami", layer.Markers[0].Label)
	assert.Equal(t, 13.0827, layer.Markers[0].Lat)

	assert.Equal(t, float64(10000), layer.Circles[0].RadiusMeters, "high severity gets the widest circle")
	assert.Equal(t, float64(5000), layer.Circles[1].RadiusMeters)
	assert.Equal(t, severityColors[domain.SeverityHigh], layer.Circles[0].Color)
}

func TestBuildMapLayer_UnknownTypeFallsBack(t *testing.T) {
	layer := BuildMapLayer([]domain.HazardReport{
		{ID: "rep-1", HazardType: "underwater_volcano", SeverityLevel: domain.SeverityLow},
	})

	require.Len(t, layer.Markers, 1)
	assert.Equal(t, colorFallback, layer.Markers[0].Color)
	assert.Equal(t, "Underwater Volcano", layer.Markers[0].Label)
	assert.Equal(t, float64(2000), layer.Circles[0].RadiusMeters)
}

func TestBuildMapLayer_Empty(t *testing.T) {
	layer := BuildMapLayer(nil)
	assert.Empty(t, layer.Markers)
	assert.Empty(t, layer.Circles)
}

func TestBuildMapLayer_FullRebuild(t *testing.T) {
	first := BuildMapLayer([]domain.HazardReport{
		{ID: "old-1", HazardType: domain.HazardFlood},
		{ID: "old-2", HazardType: domain.HazardFlood},
	})
	require.Len(t, first.Markers, 2)

	// A later snapshot with disjoint ids produces a layer with no trace of
	// the previous one.
	second := BuildMapLayer([]domain.HazardReport{
		{ID: "new-1", HazardType: domain.HazardCyclone},
	})
	require.Len(t, second.Markers, 1)
	assert.Equal(t, "new-1", second.Markers[0].ReportID)
}
