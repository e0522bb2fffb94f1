package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	"github.com/rescue-academy/internship-roster-api/internal/service"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
	"github.com/rescue-academy/internship-roster-api/pkg/response"
)

// AttendanceHandler serves the attendance ledger.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler creates a new handler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// Mark godoc
// @Summary Record an attendance mark
// @Description Insert or overwrite the mark for (student, date, period)
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	record, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// List godoc
// @Summary List attendance marks
// @Description List attendance records, filterable by date, period, student and track
// @Tags Attendance
// @Produce json
// @Param date query string false "Attendance date"
// @Param period query int false "Period"
// @Param student_number query string false "Student number"
// @Param track query string false "Track"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter, err := attendanceFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Remove godoc
// @Summary Delete an attendance mark
// @Description Remove the mark for the exact (student, date, period) key
// @Tags Attendance
// @Produce json
// @Param student_number query string true "Student number"
// @Param date query string true "Attendance date"
// @Param period query int true "Period"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [delete]
func (h *AttendanceHandler) Remove(c *gin.Context) {
	period, err := strconv.Atoi(c.Query("period"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid period"))
		return
	}
	if err := h.service.Remove(c.Request.Context(), c.Query("student_number"), c.Query("date"), period); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Download the attendance ledger as CSV
// @Tags Attendance
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Router /attendance/export/csv [get]
func (h *AttendanceHandler) ExportCSV(c *gin.Context) {
	filter, err := attendanceFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.service.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendCSV(c, "attendance", payload)
}

// ExportPDF godoc
// @Summary Download the attendance ledger as PDF
// @Tags Attendance
// @Produce application/pdf
// @Success 200 {string} string "PDF payload"
// @Router /attendance/export/pdf [get]
func (h *AttendanceHandler) ExportPDF(c *gin.Context) {
	filter, err := attendanceFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.service.ExportPDF(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("attendance_%s.pdf", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}

func attendanceFilter(c *gin.Context) (models.AttendanceFilter, error) {
	filter := models.AttendanceFilter{
		Date:          c.Query("date"),
		StudentNumber: c.Query("student_number"),
		Track:         c.Query("track"),
	}
	if raw := c.Query("period"); raw != "" {
		period, err := strconv.Atoi(raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid period")
		}
		filter.Period = &period
	}
	return filter, nil
}
