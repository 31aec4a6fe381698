// Package domain models citizen-submitted coastal hazard reports.
//
// # Data Source
//
// Reports originate from the Unified Hazard API, a remote JSON/HTTP service
// that stores citizen submissions (location, hazard type, 0–5 severity,
// description, optional media) and authority alerts. The console polls
// GET /api/reports/active and rebuilds its view-models from scratch on every
// cycle; old HazardReport instances are discarded, never updated in place, so
// renderers can never observe a half-updated record.
//
// # Ingestion Defaults
//
// The remote API tolerates sparse submissions, so raw records may omit fields.
// Mapping applies documented defaults rather than rejecting:
//
//	missing severity            → 0 (renders as severity level "low")
//	missing hazard_type         → "other"
//	missing verification_status → "pending"
//	unparseable timestamp       → zero time (rendered as "unknown")
//
// Records with implausible coordinates (outside WGS-84 range, or the 0,0
// null island sentinel) are dropped and counted instead of being drawn into
// the Gulf of Guinea.
//
// # Severity Classification
//
// The raw 0–5 severity score buckets into three tiers used consistently by
// the map (impact circle radius) and table (star colour banding):
//
//	raw ≥ 4 → high | raw ≥ 2 → medium | raw < 2 → low
//
// # Priority Scoring
//
// The remote API ranks reports by a priority score: a per-hazard base weight
// (tsunami 5.0 down to other 1.0) scaled by severity/5 with a clustering
// bonus capped at 2.0. The console treats the score as display-only but
// reproduces the formula in [PriorityScore] so generated demo traffic carries
// realistic values.
//
// # Fallback Dataset
//
// [SampleReports] is a fixed built-in set of plausible Indian-coast reports
// substituted when a refresh cannot reach the remote API. Snapshots built
// from it are tagged as fallback data so the degradation is observable.
package domain
