package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/voltbos/voltbos/pkg/log"
	"github.com/voltbos/voltbos/pkg/utility"
)

func (s *Server) handleSystemDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := r.URL.Query().Get("projectID")
	if projectID == "" {
		writeJSONError(w, "projectID required", http.StatusBadRequest)
		return
	}

	details, err := s.storage.GetSystemDetails(ctx, projectID)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get system details", slog.String("projectID", projectID), slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, details)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := r.URL.Query().Get("projectID")
	if projectID == "" {
		writeJSONError(w, "projectID required", http.StatusBadRequest)
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if v := r.URL.Query().Get("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSONError(w, "invalid start", http.StatusBadRequest)
			return
		}
		start = t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSONError(w, "invalid end", http.StatusBadRequest)
			return
		}
		end = t
	}

	runs, err := s.storage.GetConfigurationHistory(ctx, projectID, start, end)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get configuration history", slog.String("projectID", projectID), slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, runs)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projects, err := s.storage.ListProjects(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to list projects", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, projects)
}

func (s *Server) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rows, err := s.catalog.List(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to list catalog", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, rows)
}

type utilityInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s *Server) handleListUtilities(w http.ResponseWriter, r *http.Request) {
	codes := utility.All()
	infos := make([]utilityInfo, len(codes))
	for i, c := range codes {
		infos[i] = utilityInfo{Code: string(c), Name: c.DisplayName()}
	}

	writeJSON(w, infos)
}
