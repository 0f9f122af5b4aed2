package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fachowiec/backend/internal/service"
)

type TimerHandler struct {
	timerService *service.TimerService
}

func NewTimerHandler(timerService *service.TimerService) *TimerHandler {
	return &TimerHandler{timerService: timerService}
}

// Start begins tracking the job in the URL. Whatever timer was running before
// is stopped as a side effect.
func (h *TimerHandler) Start(c *gin.Context) {
	entry, apiErr := h.timerService.Start(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *TimerHandler) Pause(c *gin.Context) {
	entry, apiErr := h.timerService.Pause(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entry":   entry,
		"elapsed": service.Elapsed(entry, h.timerService.Now()),
	})
}

func (h *TimerHandler) Resume(c *gin.Context) {
	entry, apiErr := h.timerService.Resume(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entry":   entry,
		"elapsed": service.Elapsed(entry, h.timerService.Now()),
	})
}

func (h *TimerHandler) Stop(c *gin.Context) {
	entry, apiErr := h.timerService.Stop(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entry":    entry,
		"duration": entry.Duration,
	})
}

// State is the recovery read for a job detail view: the running entry for the
// job, if any, with its current elapsed display value.
func (h *TimerHandler) State(c *gin.Context) {
	entry, apiErr := h.timerService.ActiveForJob(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entry":   entry,
		"elapsed": service.Elapsed(entry, h.timerService.Now()),
	})
}

func (h *TimerHandler) Entries(c *gin.Context) {
	entries, apiErr := h.timerService.EntriesForJob(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
