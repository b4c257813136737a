// Package api exposes the scan engine over HTTP. Authentication, rate
// limiting and request logging belong to the surrounding service; this
// boundary only decodes, validates and renders.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"compliscan/scan-engine/internal/engine"
	"compliscan/scan-engine/internal/model"
	"compliscan/scan-engine/internal/security"
)

type Server struct {
	Engine       *engine.Engine
	MaxCodeBytes int
	Log          *zap.SugaredLogger
}

func NewServer(eng *engine.Engine, maxCodeBytes int, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{Engine: eng, MaxCodeBytes: maxCodeBytes, Log: log}
}

// Routes wires the engine's endpoints onto a chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/compliance/check", s.handleComplianceCheck)
	r.Post("/security/scan", s.handleSecurityScan)
	r.Get("/health", s.handleHealth)
	return r
}

func (s *Server) handleComplianceCheck(w http.ResponseWriter, r *http.Request) {
	s.runScan(w, r, false)
}

// handleSecurityScan is the legacy alias: identical response shape, with
// an implicit all-standards request.
func (s *Server) handleSecurityScan(w http.ResponseWriter, r *http.Request) {
	s.runScan(w, r, true)
}

func (s *Server) runScan(w http.ResponseWriter, r *http.Request, allStandards bool) {
	var req model.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorBody("invalid json"))
		return
	}
	if allStandards {
		req.Standards = nil
	}
	if err := security.ValidateScanRequest(req, s.MaxCodeBytes); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorBody(err.Error()))
		return
	}

	result, err := s.Engine.Scan(r.Context(), req.Code, req.Standards)
	if err != nil {
		if err == engine.ErrEmptyCode {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorBody(err.Error()))
			return
		}
		s.Log.Errorw("scan failed", "error", err)
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, errorBody("scan aborted"))
		return
	}

	render.JSON(w, r, toScanResponse(result))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":    "ok",
		"standards": s.Engine.Standards(),
	})
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
