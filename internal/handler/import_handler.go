package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rescue-academy/internship-roster-api/internal/service"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
	"github.com/rescue-academy/internship-roster-api/pkg/response"
)

// maxImportBytes bounds uploaded CSV size.
const maxImportBytes = 10 << 20

// ImportHandler accepts CSV uploads that replace the roster dataset.
type ImportHandler struct {
	service *service.ImportService
	metrics *service.MetricsService
}

// NewImportHandler creates a new handler.
func NewImportHandler(svc *service.ImportService, metrics *service.MetricsService) *ImportHandler {
	return &ImportHandler{service: svc, metrics: metrics}
}

// Unified godoc
// @Summary Import the unified CSV
// @Description Replace the whole roster from a 12-column unified CSV
// @Tags Import
// @Accept text/csv
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /import/unified [post]
func (h *ImportHandler) Unified(c *gin.Context) {
	h.runImport(c, "unified", h.service.ImportUnified)
}

// Legacy godoc
// @Summary Import the legacy two-section CSV
// @Description Replace the whole roster from the sectioned student/schedule CSV
// @Tags Import
// @Accept text/csv
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /import/legacy [post]
func (h *ImportHandler) Legacy(c *gin.Context) {
	h.runImport(c, "legacy", h.service.ImportLegacy)
}

// DeleteAll godoc
// @Summary Delete the whole roster
// @Description Remove every student and schedule entry
// @Tags Import
// @Produce json
// @Success 204 {object} response.Envelope
// @Router /roster [delete]
func (h *ImportHandler) DeleteAll(c *gin.Context) {
	if err := h.service.DeleteAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ImportHandler) runImport(c *gin.Context, format string, run func(context.Context, string) (*service.ImportResult, error)) {
	raw, err := readCSVPayload(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := run(c.Request.Context(), raw)
	h.metrics.RecordImport(format, result, err)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}

// readCSVPayload accepts the CSV either as a multipart "file" part or as the
// raw request body.
func readCSVPayload(c *gin.Context) (string, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return "", appErrors.Clone(appErrors.ErrValidation, "missing file upload")
		}
		if fileHeader.Size > maxImportBytes {
			return "", appErrors.Clone(appErrors.ErrValidation, "upload too large")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload")
		}
		defer file.Close()
		payload, err := io.ReadAll(io.LimitReader(file, maxImportBytes+1))
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
		}
		return string(payload), nil
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes+1))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read request body")
	}
	if len(payload) > maxImportBytes {
		return "", appErrors.Clone(appErrors.ErrValidation, "upload too large")
	}
	return string(payload), nil
}
