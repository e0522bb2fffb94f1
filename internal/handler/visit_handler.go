package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/internal/service"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
	"github.com/rescue-academy/internship-roster-api/pkg/response"
)

// VisitHandler serves hospital site-visit confirmations.
type VisitHandler struct {
	service *service.VisitService
}

// NewVisitHandler creates a new handler.
func NewVisitHandler(svc *service.VisitService) *VisitHandler {
	return &VisitHandler{service: svc}
}

// Record godoc
// @Summary Confirm a hospital visit
// @Description Insert or overwrite the visit for (hospital, date)
// @Tags Visits
// @Accept json
// @Produce json
// @Param payload body service.RecordVisitRequest true "Visit payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /visits [post]
func (h *VisitHandler) Record(c *gin.Context) {
	var req service.RecordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid visit payload"))
		return
	}

	visit, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visit, nil)
}

// List godoc
// @Summary List hospital visits
// @Description List visits, optionally for one date
// @Tags Visits
// @Produce json
// @Param date query string false "Visit date"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /visits [get]
func (h *VisitHandler) List(c *gin.Context) {
	visits, err := h.service.List(c.Request.Context(), models.VisitFilter{Date: c.Query("date")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visits, nil)
}

// Remove godoc
// @Summary Delete a hospital visit
// @Description Remove the visit for the exact (hospital, date) key
// @Tags Visits
// @Produce json
// @Param hospital query string true "Hospital"
// @Param date query string true "Visit date"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /visits [delete]
func (h *VisitHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Query("hospital"), c.Query("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
