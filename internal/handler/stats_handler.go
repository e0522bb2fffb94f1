package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rescue-academy/internship-roster-api/internal/service"
	"github.com/rescue-academy/internship-roster-api/pkg/response"
)

// StatsHandler serves the dashboard summary.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new handler.
func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Summary godoc
// @Summary Dataset summary
// @Description Counts of students, hospitals, schedule dates and visits, plus the symbol vocabulary
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *StatsHandler) Summary(c *gin.Context) {
	stats, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
