package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock geocoder ---

type mockGeocoder struct {
	forwardResult GeocodingResult
	forwardErr    error
	reverseResult GeocodingResult
	reverseErr    error
	forwardCalls  int
	reverseCalls  int
}

func (m *mockGeocoder) ForwardGeocode(_ context.Context, _ string) (GeocodingResult, error) {
	m.forwardCalls++
	return m.forwardResult, m.forwardErr
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.reverseCalls++
	return m.reverseResult, m.reverseErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveLocationNames_FillsMissingNames(t *testing.T) {
	geocoder := &mockGeocoder{
		reverseResult: GeocodingResult{FormattedAddress: "Chennai, Tamil Nadu, India"},
	}

	reports := []HazardReport{
		{ID: "a", Geo: Geo{Lat: 13.08, Lon: 80.27}},
		{ID: "b", Geo: Geo{Lat: 15.55, Lon: 73.76}, LocationName: "Baga, Goa"},
	}

	out := ResolveLocationNames(context.Background(), reports, geocoder, discardLogger())

	assert.Equal(t, "Chennai, Tamil Nadu, India", out[0].LocationName)
	assert.Equal(t, "Baga, Goa", out[1].LocationName)
	assert.Equal(t, 1, geocoder.reverseCalls, "named reports must not be geocoded")
}

func TestResolveLocationNames_NilGeocoder(t *testing.T) {
	reports := []HazardReport{{ID: "a", Geo: Geo{Lat: 13.08, Lon: 80.27}}}

	out := ResolveLocationNames(context.Background(), reports, nil, discardLogger())

	assert.Empty(t, out[0].LocationName)
}

func TestResolveLocationNames_LookupFailure(t *testing.T) {
	geocoder := &mockGeocoder{reverseErr: errors.New("provider down")}
	reports := []HazardReport{{ID: "a", Geo: Geo{Lat: 13.08, Lon: 80.27}}}

	out := ResolveLocationNames(context.Background(), reports, geocoder, discardLogger())

	assert.Empty(t, out[0].LocationName, "failed lookups leave the name empty")
}

func TestResolveLocationNames_EmptyResult(t *testing.T) {
	geocoder := &mockGeocoder{}
	reports := []HazardReport{{ID: "a", Geo: Geo{Lat: 13.08, Lon: 80.27}}}

	out := ResolveLocationNames(context.Background(), reports, geocoder, discardLogger())

	assert.Empty(t, out[0].LocationName)
}
