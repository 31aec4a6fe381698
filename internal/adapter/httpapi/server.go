// Package httpapi exposes the console's own HTTP surface: operational
// endpoints, rendered view-models for dashboard clients, the mutating report
// flows, and the WebSocket upgrade for live snapshot push.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/coastal-hazard-console/internal/adapter/hazardapi"
	"github.com/couchcryptid/coastal-hazard-console/internal/console"
	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
	"github.com/couchcryptid/coastal-hazard-console/internal/view"
	"github.com/couchcryptid/coastal-hazard-console/internal/ws"
)

// SnapshotProvider serves the current snapshot and the readiness signal.
type SnapshotProvider interface {
	Current() console.Snapshot
	CheckReadiness(ctx context.Context) error
}

// RefreshRunner triggers an out-of-band refresh cycle.
type RefreshRunner interface {
	RefreshNow(ctx context.Context) (console.Snapshot, error)
}

// ReportSubmitter runs the validated submission flow.
type ReportSubmitter interface {
	Submit(ctx context.Context, sub hazardapi.ReportSubmission) (hazardapi.SubmitResponse, error)
}

// ReportReviewer runs the authority-side flows.
type ReportReviewer interface {
	Verify(ctx context.Context, reportID, decision string) (hazardapi.VerifyResponse, error)
	IssueAlert(ctx context.Context, req hazardapi.AlertRequest) (domain.AuthorityAlert, error)
}

// PanelProvider serves the cached dashboard side panels.
type PanelProvider interface {
	Stats() console.StatsPanel
	Trends() console.TrendsPanel
	Alerts() console.AlertsPanel
}

// Server is the console's HTTP front door.
type Server struct {
	httpServer *http.Server
	store      SnapshotProvider
	refresh    RefreshRunner
	submitter  ReportSubmitter
	reviewer   ReportReviewer
	panels     PanelProvider
	hub        *ws.Hub
	logger     *slog.Logger

	maxUploadBytes int64
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The console serves first-party dashboard clients only.
	CheckOrigin: func(*http.Request) bool { return true },
}

// NewServer wires the full route table.
func NewServer(
	addr string,
	store SnapshotProvider,
	refresh RefreshRunner,
	submitter ReportSubmitter,
	reviewer ReportReviewer,
	panels PanelProvider,
	hub *ws.Hub,
	maxUploadBytes int64,
	logger *slog.Logger,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:          store,
		refresh:        refresh,
		submitter:      submitter,
		reviewer:       reviewer,
		panels:         panels,
		hub:            hub,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/map-layer", s.handleMapLayer)
	mux.HandleFunc("GET /api/table", s.handleTable)
	mux.HandleFunc("GET /api/panels", s.handlePanels)

	mux.HandleFunc("POST /api/reports", s.handleSubmit)
	mux.HandleFunc("POST /api/reports/{id}/verify", s.handleVerify)
	mux.HandleFunc("POST /api/alerts", s.handleAlert)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	mux.HandleFunc("GET /ws", s.handleWebSocket)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"seq":        snap.Seq,
		"source":     snap.Source,
		"fetched_at": snap.FetchedAt,
		"count":      len(snap.Reports),
		"reports":    snap.Reports,
	})
}

func (s *Server) handleMapLayer(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, view.BuildMapLayer(s.store.Current().Reports))
}

func (s *Server) handleTable(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, view.BuildTableRows(s.store.Current().Reports))
}

func (s *Server) handlePanels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":  s.panels.Stats(),
		"trends": s.panels.Trends(),
		"alerts": s.panels.Alerts(),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	// Cut oversized uploads off at the wire instead of reading them fully
	// only for the size validation to reject them.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	sub, err := s.parseSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := s.submitter.Submit(r.Context(), sub)
	if err != nil {
		s.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	resp, err := s.reviewer.Verify(r.Context(), r.PathValue("id"), body.Decision)
	if err != nil {
		s.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAlert(w http.ResponseWriter, r *http.Request) {
	var req hazardapi.AlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	alert, err := s.reviewer.IssueAlert(r.Context(), req)
	if err != nil {
		s.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, alert)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := s.refresh.RefreshNow(r.Context())
	if err != nil {
		// The fallback snapshot still published; report both.
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":  err.Error(),
			"seq":    snap.Seq,
			"source": snap.Source,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"seq":    snap.Seq,
		"source": snap.Source,
		"count":  len(snap.Reports),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	s.hub.Attach(conn)
}

// parseSubmission maps a multipart form onto the submission flow's input.
// Validation proper happens in the flow; this only decodes the transport.
func (s *Server) parseSubmission(r *http.Request) (hazardapi.ReportSubmission, error) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		return hazardapi.ReportSubmission{}, errors.New("invalid multipart form")
	}

	lat, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		return hazardapi.ReportSubmission{}, errors.New("latitude must be a number")
	}
	lon, err := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		return hazardapi.ReportSubmission{}, errors.New("longitude must be a number")
	}

	severity := 0
	if raw := r.FormValue("severity"); raw != "" {
		severity, err = strconv.Atoi(raw)
		if err != nil {
			return hazardapi.ReportSubmission{}, errors.New("severity must be an integer")
		}
	}

	sub := hazardapi.ReportSubmission{
		ReporterID:   r.FormValue("user_id"),
		Latitude:     lat,
		Longitude:    lon,
		LocationName: r.FormValue("location_name"),
		HazardType:   r.FormValue("hazard_type"),
		Severity:     severity,
		Description:  r.FormValue("description"),
		WeatherJSON:  r.FormValue("weather_conditions"),
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["media_files"] {
			file, err := header.Open()
			if err != nil {
				return hazardapi.ReportSubmission{}, errors.New("unreadable media file")
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return hazardapi.ReportSubmission{}, errors.New("unreadable media file")
			}
			sub.Media = append(sub.Media, hazardapi.MediaFile{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     content,
			})
		}
	}
	return sub, nil
}

// writeFlowError maps flow errors onto status codes: validation failures are
// the caller's fault, remote API errors pass their status through, transport
// failures surface as a bad gateway.
func (s *Server) writeFlowError(w http.ResponseWriter, err error) {
	var verr *console.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Message,
			"rule":  verr.Rule,
		})
		return
	}

	var apiErr *hazardapi.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.StatusCode, map[string]string{"error": apiErr.Message})
		return
	}

	writeError(w, http.StatusBadGateway, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
