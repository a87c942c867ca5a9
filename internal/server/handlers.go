package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rshade/ecofocus/internal/cache"
	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/logging"
	"github.com/rshade/ecofocus/internal/recipe"
	"github.com/rshade/ecofocus/internal/simulator"
)

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalogVersion"`
}

// SimulationResponse is returned by POST /api/textile/simulator.
type SimulationResponse struct {
	CatalogVersion string        `json:"catalogVersion"`
	Query          recipe.Query  `json:"query"`
	Impacts        impact.Vector `json:"impacts"`
	ImpactsPerKg   impact.Vector `json:"impactsPerKg"`
	UseCycles      int           `json:"useCycles"`
}

// DetailedResponse is returned by POST /api/textile/simulator/detailed.
type DetailedResponse struct {
	CatalogVersion string            `json:"catalogVersion"`
	Query          recipe.Query      `json:"query"`
	Result         *simulator.Result `json:"result"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		CatalogVersion: s.Snapshot().Manifest().Version,
	})
}

// handleImpacts lists impact definitions, optionally restricted with
// ?scope=textile.
func (s *Server) handleImpacts(w http.ResponseWriter, r *http.Request) {
	defs := s.Snapshot().Definitions()
	if scope := r.URL.Query().Get("scope"); scope != "" {
		writeJSON(w, http.StatusOK, defs.ForScope(impact.Scope(scope)))
		return
	}
	writeJSON(w, http.StatusOK, defs.All())
}

func (s *Server) handleProcesses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot().Processes())
}

func (s *Server) handleMaterials(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot().Materials())
}

func (s *Server) handleProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot().Products())
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	q, ok := decodeQuery(w, r)
	if !ok {
		s.metrics.simulations.WithLabelValues(outcomeRejected).Inc()
		return
	}
	snap := s.Snapshot()
	res, err := s.simulate(r.Context(), snap, q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	perKg, err := res.ImpactsPerKg()
	if err != nil {
		// A zero mass product has no per-kg impacts; report zeros.
		perKg = impact.Zero()
	}
	writeJSON(w, http.StatusOK, SimulationResponse{
		CatalogVersion: snap.Manifest().Version,
		Query:          q,
		Impacts:        res.Impacts,
		ImpactsPerKg:   perKg,
		UseCycles:      res.UseCycles,
	})
}

func (s *Server) handleSimulateDetailed(w http.ResponseWriter, r *http.Request) {
	q, ok := decodeQuery(w, r)
	if !ok {
		s.metrics.simulations.WithLabelValues(outcomeRejected).Inc()
		return
	}
	snap := s.Snapshot()
	res, err := s.simulate(r.Context(), snap, q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DetailedResponse{
		CatalogVersion: snap.Manifest().Version,
		Query:          q,
		Result:         res,
	})
}

// simulate resolves and runs q against snap, going through the memo.
func (s *Server) simulate(ctx context.Context, snap *catalog.Snapshot, q recipe.Query) (*simulator.Result, error) {
	key, err := cache.Key(snap.Digest(), q)
	if err != nil {
		return nil, err
	}
	if s.memo != nil {
		if v, found := s.memo.Get(key); found {
			s.metrics.simulations.WithLabelValues(outcomeMemo).Inc()
			return v.(*simulator.Result), nil
		}
	}

	r, err := recipe.Resolve(snap, q)
	if err != nil {
		s.metrics.simulations.WithLabelValues(outcomeRejected).Inc()
		return nil, err
	}
	res, err := simulator.Simulate(ctx, snap, r)
	if err != nil {
		s.metrics.simulations.WithLabelValues(outcomeFailed).Inc()
		return nil, err
	}
	s.metrics.simulations.WithLabelValues(outcomeComputed).Inc()

	// A reload may have flushed the memo while this ran.
	if s.memo != nil && s.Snapshot() == snap {
		s.memo.SetDefault(key, res)
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "server").
		Str("product", string(q.Product)).
		Str("memo_key", key).
		Msg("simulation computed")
	return res, nil
}

func decodeQuery(w http.ResponseWriter, r *http.Request) (recipe.Query, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	var q recipe.Query
	if err := dec.Decode(&q); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("invalid query: %v", err),
		})
		return recipe.Query{}, false
	}
	return q, true
}
