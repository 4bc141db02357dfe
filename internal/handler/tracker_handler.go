package handler

import (
	"errors"
	"net/http"

	"github.com/yourorg/crypto-tracker/internal/scheduler"
	"github.com/yourorg/crypto-tracker/internal/service"
	"github.com/yourorg/crypto-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrackerHandler handles session state HTTP requests: the tracked coin
// selection and the refresh cycle controls
type TrackerHandler struct {
	tracker   *service.TrackerService
	scheduler *scheduler.Scheduler
	logger    *zap.Logger
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(tracker *service.TrackerService, sched *scheduler.Scheduler, logger *zap.Logger) *TrackerHandler {
	return &TrackerHandler{
		tracker:   tracker,
		scheduler: sched,
		logger:    logger,
	}
}

type trackedRequest struct {
	IDs []string `json:"ids"`
}

type intervalRequest struct {
	IntervalSeconds int `json:"interval_seconds" binding:"required"`
}

// GetTracked handles retrieving the tracked coin selection
// GET /api/v1/tracked
func (h *TrackerHandler) GetTracked(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ids": h.tracker.TrackedIDs()})
}

// PutTracked handles replacing the tracked coin selection
// PUT /api/v1/tracked
func (h *TrackerHandler) PutTracked(c *gin.Context) {
	var req trackedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.tracker.SetTrackedIDs(req.IDs)
	c.JSON(http.StatusOK, gin.H{"ids": h.tracker.TrackedIDs()})
}

// TriggerRefresh handles the manual refresh button. The cycle runs on the
// scheduler goroutine; the request returns as soon as it is queued.
// POST /api/v1/refresh
func (h *TrackerHandler) TriggerRefresh(c *gin.Context) {
	h.scheduler.TriggerNow()
	c.JSON(http.StatusAccepted, gin.H{"status": "refresh queued"})
}

// GetRefreshStatus handles retrieving the refresh interval and the last
// refresh time
// GET /api/v1/refresh
func (h *TrackerHandler) GetRefreshStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Status())
}

// PutInterval handles changing the refresh interval
// PUT /api/v1/refresh/interval
func (h *TrackerHandler) PutInterval(c *gin.Context) {
	var req intervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.tracker.SetIntervalSeconds(req.IntervalSeconds); err != nil {
		if errors.Is(err, service.ErrInvalidInterval) {
			utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to set refresh interval", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to set interval")
		return
	}

	c.JSON(http.StatusOK, h.tracker.Status())
}
