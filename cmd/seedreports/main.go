// Command seedreports posts synthetic citizen hazard reports to a running
// Unified Hazard API, useful for demoing the console against an empty
// backend. It generates plausible Indian-coast coordinates and hazard mixes
// through the same client the console uses.
//
// Usage:
//
//	go run ./cmd/seedreports -api-url http://localhost:8000 -count 25
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/coastal-hazard-console/internal/adapter/hazardapi"
	"github.com/couchcryptid/coastal-hazard-console/internal/config"
	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
)

// Coastal hotspots the generator scatters reports around.
var hotspots = []struct {
	name string
	lat  float64
	lon  float64
}{
	{"Chennai Marina Beach", 13.0500, 80.2824},
	{"Visakhapatnam RK Beach", 17.7139, 83.3241},
	{"Puri Beach", 19.7983, 85.8249},
	{"Kochi Fort Beach", 9.9658, 76.2421},
	{"Mumbai Juhu Beach", 19.0883, 72.8264},
	{"Goa Calangute", 15.5439, 73.7553},
	{"Kanyakumari", 8.0883, 77.5385},
	{"Digha Beach", 21.6270, 87.5090},
}

var descriptions = map[string][]string{
	domain.HazardTsunami:         {"sudden sea withdrawal observed", "unusual wave train approaching shore"},
	domain.HazardStormSurge:      {"water level well above the high-tide mark", "surge flooding the beach road"},
	domain.HazardCyclone:         {"very strong gusts, fishing boats recalled", "rotating cloud bank offshore"},
	domain.HazardHighWaves:       {"waves overtopping the sea wall", "swimmers pulled back by lifeguards"},
	domain.HazardCoastalFlooding: {"sea water entering the market street", "ground floor shops taking in water"},
	domain.HazardRipCurrent:      {"strong channel of water moving seaward", "two swimmers rescued from a rip"},
	domain.HazardCoastalErosion:  {"fresh scarp cut into the dune line", "palm trees undercut near the shore"},
	domain.HazardOther:           {"dead fish washing ashore in numbers", "oil sheen visible along the tideline"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	apiURL := flag.String("api-url", "http://localhost:8000", "base URL of the Unified Hazard API")
	count := flag.Int("count", 10, "number of reports to submit")
	interval := flag.Duration("interval", 500*time.Millisecond, "pause between submissions")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for reproducible batches")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	cfg := &config.Config{
		APIBaseURL: *apiURL,
		APITimeout: 30 * time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := hazardapi.NewClient(cfg, logger, observability.NewMetricsForTesting())

	hazardTypes := make([]string, 0, len(descriptions))
	for ht := range descriptions {
		hazardTypes = append(hazardTypes, ht)
	}

	ctx := context.Background()
	for i := 0; i < *count; i++ {
		sub := randomSubmission(rng, hazardTypes)

		resp, err := client.SubmitReport(ctx, sub)
		if err != nil {
			log.Printf("submit %d/%d failed: %v", i+1, *count, err)
			continue
		}

		expected := domain.PriorityScore(sub.HazardType, sub.Severity, resp.NearbyReportsCount)
		log.Printf("submit %d/%d: id=%s type=%s severity=%d priority=%.2f (local estimate %.2f)",
			i+1, *count, resp.ReportID, sub.HazardType, sub.Severity, resp.PriorityScore, expected)

		time.Sleep(*interval)
	}
	return nil
}

func randomSubmission(rng *rand.Rand, hazardTypes []string) hazardapi.ReportSubmission {
	spot := hotspots[rng.Intn(len(hotspots))]
	hazardType := hazardTypes[rng.Intn(len(hazardTypes))]
	lines := descriptions[hazardType]

	// Scatter within ~2km of the hotspot.
	lat := spot.lat + (rng.Float64()-0.5)*0.04
	lon := spot.lon + (rng.Float64()-0.5)*0.04

	return hazardapi.ReportSubmission{
		ReporterID:   "seed-" + uuid.NewString()[:8],
		Latitude:     lat,
		Longitude:    lon,
		LocationName: spot.name,
		HazardType:   hazardType,
		Severity:     1 + rng.Intn(5),
		Description:  fmt.Sprintf("%s near %s", lines[rng.Intn(len(lines))], spot.name),
	}
}
