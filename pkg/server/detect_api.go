package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/voltbos/voltbos/pkg/log"
	"github.com/voltbos/voltbos/pkg/populate"
	"github.com/voltbos/voltbos/pkg/storage"
	"github.com/voltbos/voltbos/pkg/types"
)

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := r.URL.Query().Get("projectID")
	if projectID == "" {
		writeJSONError(w, "projectID required", http.StatusBadRequest)
		return
	}

	cfg, err := s.detector.Run(ctx, projectID)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			writeJSONError(w, "project not found", http.StatusNotFound)
			return
		}
		log.Ctx(ctx).ErrorContext(ctx, "detection failed", slog.String("projectID", projectID), slog.Any("error", err))
		writeJSONError(w, "detection failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, cfg)
}

type populateRequest struct {
	ProjectID string `json:"projectID"`
	DryRun    bool   `json:"dryRun"`
	Force     bool   `json:"force"`
}

type populateResponse struct {
	RunID     string                     `json:"runId"`
	Detection types.ProjectConfiguration `json:"detection"`
	Result    populate.Result            `json:"result"`
	Summary   string                     `json:"summary"`
	Error     string                     `json:"error,omitempty"`
}

// handlePopulate runs detection and writes the resolved slot fields back to
// the project record in one call.
func (s *Server) handlePopulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req populateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// since we failed to read, don't return JSON error
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.ProjectID == "" {
		writeJSONError(w, "projectID required", http.StatusBadRequest)
		return
	}

	cfg, err := s.detector.Run(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			writeJSONError(w, "project not found", http.StatusNotFound)
			return
		}
		log.Ctx(ctx).ErrorContext(ctx, "detection failed", slog.String("projectID", req.ProjectID), slog.Any("error", err))
		writeJSONError(w, "detection failed", http.StatusInternalServerError)
		return
	}

	res, err := s.populator.Populate(ctx, req.ProjectID, cfg, populate.Options{
		DryRun: req.DryRun,
		Force:  req.Force,
	})
	resp := populateResponse{
		RunID:     cfg.RunID,
		Detection: cfg,
		Result:    res,
		Summary:   res.Summary(),
	}
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "populate failed", slog.String("projectID", req.ProjectID), slog.Any("error", err))
		// return the computed fields alongside the error so the caller can
		// retry the write without re-running detection
		resp.Error = "populate failed"
		writeJSONStatus(w, resp, http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp)
}
