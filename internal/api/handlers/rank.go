package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grid-dispatch/internal/analysis"
	"grid-dispatch/internal/api/models"
	"grid-dispatch/internal/config"
	"grid-dispatch/internal/data"
)

// RankHandler serves the adequacy ranking.
type RankHandler struct {
	cfg   *config.Config
	cache *data.InputCache
}

func NewRankHandler(cfg *config.Config, cache *data.InputCache) *RankHandler {
	return &RankHandler{cfg: cfg, cache: cache}
}

// RankYears handles GET /api/v1/rank: configured years sorted tightest
// capacity margin first.
func (h *RankHandler) RankYears(c *gin.Context) {
	inputs, err := h.cache.Load(h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "DATA_LOAD_ERROR", Message: err.Error()},
		})
		return
	}

	ranked := analysis.RankByScarcity(h.cfg.Scenario.Years, inputs.Demand, inputs.Plants)
	entries := make([]models.RankEntry, len(ranked))
	for i, r := range ranked {
		entries[i] = models.RankEntry{
			Rank:                 i + 1,
			Year:                 r.Year,
			PeakDemandMW:         r.PeakDemandMW,
			InstalledCapacityMW:  r.InstalledCapacityMW,
			CapacityMarginAtPeak: r.CapacityMarginAtPeak,
			TotalDemandGWh:       r.TotalDemandMWh / 1e3,
		}
	}
	c.JSON(http.StatusOK, gin.H{"years": entries})
}
