package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	apperrors "fachowiec/backend/internal/errors"
	"fachowiec/backend/internal/export"
	"fachowiec/backend/internal/model"
	"fachowiec/backend/internal/service"
)

type EstimateHandler struct {
	estimateService *service.EstimateService
	defaultTaxRate  float64
	exportDir       string
}

type estimateRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	ClientID    string               `json:"clientId"`
	Status      string               `json:"status"`
	Items       []model.EstimateItem `json:"items"`
	TaxRate     float64              `json:"taxRate"`
	Total       float64              `json:"total"`
	DueDate     string               `json:"dueDate"`
}

type totalsRequest struct {
	Items   []model.EstimateItem `json:"items"`
	Net     float64              `json:"net"`
	Gross   float64              `json:"gross"`
	TaxRate float64              `json:"taxRate"`
}

func NewEstimateHandler(estimateService *service.EstimateService, defaultTaxRate float64, exportDir string) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		defaultTaxRate:  defaultTaxRate,
		exportDir:       exportDir,
	}
}

func (h *EstimateHandler) Create(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	estimate, apiErr := h.estimateService.Create(c.Request.Context(), estimateInput(req))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estimate": estimate})
}

func (h *EstimateHandler) Update(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	estimate, apiErr := h.estimateService.Update(c.Request.Context(), c.Param("id"), estimateInput(req))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimate": estimate})
}

func (h *EstimateHandler) Get(c *gin.Context) {
	estimate, apiErr := h.estimateService.Get(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimate": estimate})
}

func (h *EstimateHandler) List(c *gin.Context) {
	estimates, apiErr := h.estimateService.List(c.Request.Context(), c.Query("status"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimates": estimates})
}

func (h *EstimateHandler) Delete(c *gin.Context) {
	if apiErr := h.estimateService.Delete(c.Request.Context(), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// Convert turns an accepted quote into a job.
func (h *EstimateHandler) Convert(c *gin.Context) {
	job, apiErr := h.estimateService.ConvertToJob(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// Totals is the standalone pricing calculator: line items, a net figure or a
// gross figure, whichever the caller has.
func (h *EstimateHandler) Totals(c *gin.Context) {
	var req totalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	taxRate := req.TaxRate
	if taxRate <= 0 {
		taxRate = h.defaultTaxRate
	}

	var totals model.Totals
	switch {
	case len(req.Items) > 0:
		totals = service.TotalsFromItems(req.Items, taxRate)
	case req.Gross > 0:
		totals = service.TotalsFromGross(req.Gross, taxRate)
	case req.Net > 0:
		totals = service.TotalsFromNet(req.Net, taxRate)
	default:
		writeError(c, apperrors.BadRequest("invalid_totals_request", "provide items, a net amount or a gross amount"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": totals})
}

func (h *EstimateHandler) Export(c *gin.Context) {
	estimate, apiErr := h.estimateService.Get(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	if err := os.MkdirAll(h.exportDir, 0o755); err != nil {
		writeError(c, apperrors.Internal("failed to create export directory"))
		return
	}

	path := filepath.Join(h.exportDir, fmt.Sprintf("estimate_%s.pdf", estimate.ID))
	if err := export.EstimatePDF(path, estimate); err != nil {
		writeError(c, apperrors.Internal("failed to render estimate"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": path})
}

func estimateInput(req estimateRequest) service.EstimateInput {
	return service.EstimateInput{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
		Status:      req.Status,
		Items:       req.Items,
		TaxRate:     req.TaxRate,
		Total:       req.Total,
		DueDate:     req.DueDate,
	}
}
