// Package server exposes the query pipeline over HTTP. The API mirrors
// the contract consumed by the web frontend: POST /run_query takes a
// query plus CSV data and returns the per-stage log, the formatted
// plan trees, and the result rows; GET /health reports liveness.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/siftdb/sift/internal/ingest"
	"github.com/siftdb/sift/internal/pipeline"
	"github.com/siftdb/sift/internal/row"
	"github.com/siftdb/sift/internal/sqlparser"
)

// Server handles query requests against an optional preloaded catalog.
type Server struct {
	cfg  Config
	base row.Catalog
}

// New creates a Server. base may be nil when every request carries its
// own CSV data.
func New(cfg Config, base row.Catalog) *Server {
	return &Server{cfg: cfg, base: base}
}

// Handler returns the routed handler with CORS middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/run_query", s.handleRunQuery).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.cfg.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return cors(r)
}

type queryRequest struct {
	SQLQuery  string `json:"sql_query"`
	CSVData   string `json:"csv_data"`
	TableName string `json:"table_name"`
}

type queryStages struct {
	Logical  string       `json:"logical"`
	Optimize string       `json:"optimize"`
	Physical string       `json:"physical"`
	Execute  []row.Record `json:"execute"`
}

type queryResponse struct {
	Token  string              `json:"token"`
	Log    []pipeline.StageLog `json:"log"`
	Rules  []string            `json:"applied_rules"`
	Stages queryStages         `json:"stages"`
}

type errorResponse struct {
	Error string              `json:"error"`
	Log   []pipeline.StageLog `json:"log"`
}

func (s *Server) handleRunQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.SQLQuery = strings.TrimSpace(req.SQLQuery)
	req.CSVData = strings.TrimSpace(req.CSVData)
	req.TableName = strings.TrimSpace(req.TableName)
	if req.TableName == "" {
		req.TableName = "t1"
	}

	if req.SQLQuery == "" {
		writeError(w, http.StatusBadRequest, "SQL query is required")
		return
	}

	catalog := s.base
	var loadLog []pipeline.StageLog
	if req.CSVData != "" {
		loaded, err := ingest.ParseCatalog(req.CSVData, req.TableName)
		if err != nil {
			writeError(w, http.StatusBadRequest, "data error: "+err.Error())
			return
		}
		catalog = loaded
		rows := len(loaded[row.CanonicalName(req.TableName)])
		loadLog = append(loadLog, pipeline.StageLog{
			Stage:   "data",
			Message: fmt.Sprintf("data loaded: %d records into table %q", rows, req.TableName),
		})
	} else if len(catalog) == 0 {
		writeError(w, http.StatusBadRequest, "CSV data is required")
		return
	}

	result, err := pipeline.Run(req.SQLQuery, catalog)
	if err != nil {
		if sqlparser.IsSyntaxError(err) {
			writeError(w, http.StatusBadRequest, "query error: "+err.Error())
			return
		}
		slog.Error("pipeline failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error: "+err.Error())
		return
	}

	slog.Info("query executed",
		"token", result.Token,
		"table", req.TableName,
		"rows", len(result.Records),
		"rules", result.AppliedRules)

	writeJSON(w, http.StatusOK, queryResponse{
		Token: result.Token,
		Log:   append(loadLog, result.Log...),
		Rules: result.AppliedRules,
		Stages: queryStages{
			Logical:  result.LogicalTree,
			Optimize: result.OptimizedTree,
			Physical: result.PhysicalTree,
			Execute:  result.Records,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "query planner API is running",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error: msg,
		Log:   []pipeline.StageLog{{Stage: "error", Message: msg}},
	})
}
