package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"grid-dispatch/internal/api/models"
	"grid-dispatch/internal/config"
	"grid-dispatch/internal/data"
	"grid-dispatch/internal/opf"
	"grid-dispatch/internal/sim"
)

// RunStore keeps finished runs in memory so clients can fetch summaries and
// dispatch ledgers after the simulate call returns.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*sim.Result
}

func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string]*sim.Result)}
}

func (s *RunStore) Put(res *sim.Result) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.runs[id] = res
	s.mu.Unlock()
	return id
}

func (s *RunStore) Get(id string) (*sim.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.runs[id]
	return res, ok
}

// SimulationHandler handles simulation-related requests.
type SimulationHandler struct {
	cfg   *config.Config
	cache *data.InputCache
	store *RunStore
}

func NewSimulationHandler(cfg *config.Config, cache *data.InputCache, store *RunStore) *SimulationHandler {
	return &SimulationHandler{cfg: cfg, cache: cache, store: store}
}

// RunSimulation handles POST /api/v1/simulate.
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	cfg := h.cfg
	if req.DisableImports != nil {
		override := *cfg
		override.Network.DisableImports = *req.DisableImports
		cfg = &override
	}

	inputs, err := h.cache.Load(cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "DATA_LOAD_ERROR", Message: err.Error()},
		})
		return
	}

	solver, err := opf.ForName(cfg.Solver.Name, cfg.Solver.Tolerance)
	if err != nil {
		badRequest(c, "INVALID_SOLVER", err.Error())
		return
	}
	engine := sim.New(cfg, solver)

	var res *sim.Result
	if req.Start != "" || req.End != "" {
		start, end, err := parseWindow(req.Start, req.End)
		if err != nil {
			badRequest(c, "INVALID_WINDOW", err.Error())
			return
		}
		res, err = engine.RunWindow(inputs, start, end)
		if err != nil {
			badRequest(c, "WINDOW_ERROR", err.Error())
			return
		}
	} else {
		years := req.Years
		if len(years) == 0 {
			years = cfg.Scenario.Years
		}
		res, err = engine.RunYears(inputs, years)
		if err != nil {
			badRequest(c, "SIMULATION_ERROR", err.Error())
			return
		}
	}

	runID := h.store.Put(res)
	c.JSON(http.StatusOK, models.NewRunResponse(runID, res))
}

// GetRun handles GET /api/v1/runs/:id.
func (h *SimulationHandler) GetRun(c *gin.Context) {
	res, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "RUN_NOT_FOUND", Message: "unknown run id"},
		})
		return
	}
	c.JSON(http.StatusOK, models.NewRunResponse(c.Param("id"), res))
}

// GetDispatch handles GET /api/v1/runs/:id/dispatch?year=2025.
func (h *SimulationHandler) GetDispatch(c *gin.Context) {
	res, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "RUN_NOT_FOUND", Message: "unknown run id"},
		})
		return
	}

	var yr *sim.YearResult
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			badRequest(c, "INVALID_YEAR", fmt.Sprintf("invalid year %q", yearStr))
			return
		}
		for i := range res.Years {
			if res.Years[i].Year == year {
				yr = &res.Years[i]
				break
			}
		}
	} else if len(res.Years) > 0 {
		yr = &res.Years[0]
	}
	if yr == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "YEAR_NOT_FOUND", Message: "year is not part of this run"},
		})
		return
	}
	if !yr.Feasible {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NO_SOLUTION", Message: yr.Message},
		})
		return
	}

	rows := make([]models.DispatchRow, len(yr.Snapshots))
	for i, ts := range yr.Snapshots {
		gen := map[string]float64{}
		for _, fuel := range yr.Fuels() {
			gen[fuel] = yr.GenByFuel[fuel][i]
		}
		rows[i] = models.DispatchRow{
			Timestamp:         ts.Format(time.RFC3339),
			GenerationMW:      gen,
			TotalGenerationMW: yr.TotalGenerationAt(i),
			TotalDemandMW:     yr.Demand[i],
		}
	}
	c.JSON(http.StatusOK, gin.H{"year": yr.Year, "rows": rows, "count": len(rows)})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: message},
	})
}

// parseWindow accepts YYYY-MM-DD or YYYY-MM-DD HH:MM bounds.
func parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	parse := func(s string) (time.Time, error) {
		for _, layout := range []string{"2006-01-02", "2006-01-02 15:04", time.RFC3339} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	start, err := parse(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parse(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
