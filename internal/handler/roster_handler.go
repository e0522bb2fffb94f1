package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/internal/service"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
	"github.com/rescue-academy/internship-roster-api/pkg/response"
)

// RosterHandler serves the roster listing and schedule edits.
type RosterHandler struct {
	service *service.RosterService
}

// NewRosterHandler creates a new handler.
func NewRosterHandler(svc *service.RosterService) *RosterHandler {
	return &RosterHandler{service: svc}
}

// List godoc
// @Summary List students with schedules
// @Description List roster students, filterable by name, hospital and date
// @Tags Roster
// @Produce json
// @Param name query string false "Partial match on name or kana"
// @Param hospital query string false "Partial match on hospital"
// @Param date query string false "Schedule date (M/D, YYYY/M/D or YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students [get]
func (h *RosterHandler) List(c *gin.Context) {
	filter := models.RosterFilter{
		Name:     c.Query("name"),
		Hospital: c.Query("hospital"),
		Date:     c.Query("date"),
	}

	students, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, students, nil)
}

// Schedules godoc
// @Summary List one student's schedules
// @Description List schedule entries for a student by student number
// @Tags Roster
// @Produce json
// @Param studentNumber path string true "7-digit student number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{studentNumber}/schedules [get]
func (h *RosterHandler) Schedules(c *gin.Context) {
	entries, err := h.service.SchedulesByStudentNumber(c.Request.Context(), c.Param("studentNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// UpdateSchedule godoc
// @Summary Edit a schedule entry
// @Description Overwrite a schedule entry's symbol; the description follows the symbol
// @Tags Roster
// @Accept json
// @Produce json
// @Param id path int true "Schedule entry ID"
// @Param payload body service.UpdateScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/{id} [put]
func (h *RosterHandler) UpdateSchedule(c *gin.Context) {
	id, ok := scheduleID(c)
	if !ok {
		return
	}
	var req service.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}

	entry, err := h.service.UpdateScheduleSymbol(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// MarkAbsent godoc
// @Summary Mark a schedule entry absent
// @Description Overwrite a schedule entry with the absence symbol
// @Tags Roster
// @Produce json
// @Param id path int true "Schedule entry ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/{id}/absence [post]
func (h *RosterHandler) MarkAbsent(c *gin.Context) {
	id, ok := scheduleID(c)
	if !ok {
		return
	}
	entry, err := h.service.MarkScheduleAbsent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

func scheduleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid schedule id"))
		return 0, false
	}
	return id, true
}
