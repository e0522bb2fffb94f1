package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rescue-academy/internship-roster-api/internal/service"
	"github.com/rescue-academy/internship-roster-api/pkg/response"
)

const csvContentType = "text/csv; charset=utf-8"

// ExportHandler streams roster CSV downloads.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Unified godoc
// @Summary Download the unified CSV
// @Description Export the roster in the 12-column unified format
// @Tags Export
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Router /export/unified [get]
func (h *ExportHandler) Unified(c *gin.Context) {
	payload, err := h.service.ExportUnified(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	sendCSV(c, "roster_unified", payload)
}

// Legacy godoc
// @Summary Download the legacy two-section CSV
// @Description Export the roster in the sectioned student/schedule format
// @Tags Export
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Router /export/legacy [get]
func (h *ExportHandler) Legacy(c *gin.Context) {
	payload, err := h.service.ExportLegacy(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	sendCSV(c, "roster_legacy", payload)
}

// Template godoc
// @Summary Download a blank import template
// @Description Export a header-only unified CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Router /export/template [get]
func (h *ExportHandler) Template(c *gin.Context) {
	payload, err := h.service.ExportTemplate()
	if err != nil {
		response.Error(c, err)
		return
	}
	sendCSV(c, "roster_template", payload)
}

func sendCSV(c *gin.Context, name string, payload []byte) {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, csvContentType, payload)
}
