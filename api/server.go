// Package api - thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs rating logic.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/engine"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/report"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
	"github.com/DaniloReis10/TarifadorTest-sub000/store/sqlite"
)

// Server is the API server
type Server struct {
	mux     *http.ServeMux
	version string
	store   *sqlite.Store
	engine  *engine.Engine
}

// NewServer creates a new API server over an opened record store
func NewServer(version string, store *sqlite.Store) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		version: version,
		store:   store,
		engine:  engine.New(),
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /report", s.handleReport)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleReport handles POST /report
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	period, err := parsePeriod(&req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	policy, err := parsePolicy(req.Policy)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	scope := sqlite.Scope{OrganizationID: req.OrganizationID, CompanyID: req.CompanyID}
	engineReq, err := s.store.BuildRequest(ctx, period, scope, policy)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	engineReq.Parallel = req.Parallel
	engineReq.WithUst = req.WithUst

	tree, err := s.engine.Run(ctx, engineReq)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, &ReportResponse{
		Report: report.Assemble(tree),
		Metadata: &ResponseMetadata{
			InputHash:     computeInputHash(&req),
			EngineVersion: s.version,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "tarifador",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Pricing
// configuration faults are 422: the request was fine, the catalog is not.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	domainErr, ok := err.(*errors.Error)
	if !ok {
		s.writeError(w, string(errors.TypeInternal), err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Type {
	case errors.TypeInput, errors.TypeInvalidPeriod, errors.TypeConfig:
		status = http.StatusBadRequest
	case errors.TypePriceNotConfigured, errors.TypeAmbiguousPrice, errors.TypeUstConfig:
		status = http.StatusUnprocessableEntity
	case errors.TypeNotFound:
		status = http.StatusNotFound
	}
	s.writeError(w, string(domainErr.Type), domainErr.Message, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Helper functions

func parsePeriod(req *ReportRequest) (types.Period, error) {
	if req.Month != "" {
		parts := strings.SplitN(req.Month, "-", 2)
		if len(parts) != 2 {
			return types.Period{}, errors.Newf(errors.TypeInput, "bad month %q, want YYYY-MM", req.Month)
		}
		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return types.Period{}, errors.Newf(errors.TypeInput, "bad month %q, want YYYY-MM", req.Month)
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return types.Period{}, errors.Newf(errors.TypeInput, "bad month %q, want YYYY-MM", req.Month)
		}
		return types.MonthPeriod(year, time.Month(month)), nil
	}

	start, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return types.Period{}, errors.Newf(errors.TypeInput, "bad period_start %q, want YYYY-MM-DD", req.PeriodStart)
	}
	end, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return types.Period{}, errors.Newf(errors.TypeInput, "bad period_end %q, want YYYY-MM-DD", req.PeriodEnd)
	}
	return types.NewPeriod(start, end)
}

func parsePolicy(doc PolicyDoc) (types.RatingPolicy, error) {
	policy := types.RatingPolicy{}
	if doc.UstValue != "" {
		value, err := decimal.NewFromString(doc.UstValue)
		if err != nil {
			return policy, errors.Newf(errors.TypeInput, "bad ust_value %q", doc.UstValue)
		}
		policy.UstValue = value
	}
	if len(doc.OrgOverrides) > 0 {
		policy.OrgOverrides = make(map[int64]types.MobileFoldRule, len(doc.OrgOverrides))
		for orgID, raw := range doc.OrgOverrides {
			rule := types.MobileFoldRule(raw)
			switch rule {
			case types.FoldByContract, types.FoldAlwaysVC1:
				policy.OrgOverrides[orgID] = rule
			default:
				return policy, errors.Newf(errors.TypeInput, "unknown fold rule %q for organization %d", raw, orgID)
			}
		}
	}
	return policy, nil
}

func computeInputHash(req *ReportRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
