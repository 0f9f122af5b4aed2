package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fachowiec/backend/internal/errors"
	"fachowiec/backend/internal/service"
)

type JobHandler struct {
	jobService *service.JobService
}

type jobRequest struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	ClientID          string  `json:"clientId"`
	Status            string  `json:"status"`
	ScheduledDate     string  `json:"scheduledDate"`
	ScheduledTime     string  `json:"scheduledTime"`
	EstimatedDuration int     `json:"estimatedDuration"`
	EstimatedPrice    float64 `json:"estimatedPrice"`
}

func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	job, conflicts, apiErr := h.jobService.Create(c.Request.Context(), jobInput(req))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": job, "conflicts": conflicts})
}

func (h *JobHandler) Update(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	job, conflicts, apiErr := h.jobService.Update(c.Request.Context(), c.Param("id"), jobInput(req))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job, "conflicts": conflicts})
}

func (h *JobHandler) Get(c *gin.Context) {
	job, apiErr := h.jobService.Get(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, apiErr := h.jobService.List(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Delete(c *gin.Context) {
	if apiErr := h.jobService.Delete(c.Request.Context(), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// Conflicts lists every job on the given date that overlaps another.
func (h *JobHandler) Conflicts(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		writeError(c, apperrors.BadRequest("invalid_date", "date query parameter is required"))
		return
	}

	conflicts, apiErr := h.jobService.ConflictsOn(c.Request.Context(), date)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
}

func jobInput(req jobRequest) service.JobInput {
	return service.JobInput{
		Title:             req.Title,
		Description:       req.Description,
		ClientID:          req.ClientID,
		Status:            req.Status,
		ScheduledDate:     req.ScheduledDate,
		ScheduledTime:     req.ScheduledTime,
		EstimatedDuration: req.EstimatedDuration,
		EstimatedPrice:    req.EstimatedPrice,
	}
}
