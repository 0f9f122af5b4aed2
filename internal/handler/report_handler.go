package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fachowiec/backend/internal/errors"
	"fachowiec/backend/internal/export"
	"fachowiec/backend/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
	exportDir     string
}

type exportReportRequest struct {
	Kind     string `json:"kind"`
	Date     string `json:"date"`
	Filename string `json:"filename"`
}

func NewReportHandler(reportService *service.ReportService, exportDir string) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportDir: exportDir}
}

func (h *ReportHandler) Generate(c *gin.Context) {
	ref, apiErr := parseReference(c.Query("date"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	report, apiErr := h.reportService.Generate(c.Request.Context(), c.Query("kind"), ref)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Export renders the report to a PDF under the configured export directory
// and returns the written path.
func (h *ReportHandler) Export(c *gin.Context) {
	var req exportReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	ref, apiErr := parseReference(req.Date)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	report, apiErr := h.reportService.Generate(c.Request.Context(), req.Kind, ref)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	filename := req.Filename
	if filename == "" {
		filename = fmt.Sprintf("report_%s_%s.pdf", report.Kind, report.StartDate)
	}
	if err := os.MkdirAll(h.exportDir, 0o755); err != nil {
		writeError(c, apperrors.Internal("failed to create export directory"))
		return
	}

	path := filepath.Join(h.exportDir, filepath.Base(filename))
	if err := export.ReportPDF(path, report); err != nil {
		writeError(c, apperrors.Internal("failed to render report"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": path})
}

func parseReference(raw string) (time.Time, *apperrors.APIError) {
	if raw == "" {
		return time.Now(), nil
	}
	ref, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, apperrors.BadRequest("invalid_date", "date must be YYYY-MM-DD")
	}
	return ref, nil
}
