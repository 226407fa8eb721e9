package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grid-dispatch/internal/api/models"
	"grid-dispatch/internal/config"
	"grid-dispatch/internal/data"
)

// DatasetHandler reports on the configured input files.
type DatasetHandler struct {
	cfg   *config.Config
	cache *data.InputCache
}

func NewDatasetHandler(cfg *config.Config, cache *data.InputCache) *DatasetHandler {
	return &DatasetHandler{cfg: cfg, cache: cache}
}

// ListDatasets handles GET /api/v1/datasets. Row counts double as a quick
// check that the CSVs parsed without loss.
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	inputs, err := h.cache.Load(h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "DATA_LOAD_ERROR", Message: err.Error()},
		})
		return
	}

	datasets := []models.DatasetInfo{
		{ID: "demand", Path: h.cfg.Paths.Demand, Rows: inputs.Demand.Len()},
		{ID: "power_plants", Path: h.cfg.Paths.Plants, Rows: len(inputs.Plants)},
		{ID: "transmission_lines", Path: h.cfg.Paths.Lines, Rows: len(inputs.Lines)},
		{ID: "fuel_costs", Path: h.cfg.Paths.FuelCosts, Rows: len(inputs.FuelCosts)},
		{ID: "fuel_constraints", Path: h.cfg.Paths.FuelConstraints, Rows: len(inputs.FuelConstraints)},
	}
	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}
