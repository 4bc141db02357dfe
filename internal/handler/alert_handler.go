package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/yourorg/crypto-tracker/internal/model"
	"github.com/yourorg/crypto-tracker/internal/repository"
	"github.com/yourorg/crypto-tracker/internal/service"
	"github.com/yourorg/crypto-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AlertHandler handles alert rule and alert log HTTP requests
type AlertHandler struct {
	alertService *service.AlertService
	logger       *zap.Logger
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService *service.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		logger:       logger,
	}
}

// CreateAlert handles adding a new alert rule
// POST /api/v1/alerts
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var rule model.AlertRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.alertService.AddRule(rule); err != nil {
		if errors.Is(err, repository.ErrDuplicateRule) {
			utils.SendErrorResponse(c, http.StatusConflict, "This alert already exists")
			return
		}
		h.logger.Error("Failed to add alert rule", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to add alert")
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// ListAlerts handles retrieving the active alert rules in display order
// GET /api/v1/alerts
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alerts": h.alertService.ListRules()})
}

// DeleteAlert handles removing the alert rule at a position. The dashboard
// only offers valid positions, but a stale index is still answered with a
// clean 404.
// DELETE /api/v1/alerts/:index
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid alert index")
		return
	}

	if err := h.alertService.RemoveRule(index); err != nil {
		if errors.Is(err, repository.ErrIndexOutOfRange) {
			utils.SendErrorResponse(c, http.StatusNotFound, "Alert not found")
			return
		}
		h.logger.Error("Failed to remove alert rule", zap.Error(err), zap.Int("index", index))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to remove alert")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAlertLog handles the alert log viewer: the last N fired alerts,
// oldest-to-newest
// GET /api/v1/alerts/log?limit=10
func (h *AlertHandler) GetAlertLog(c *gin.Context) {
	limit := utils.ParseLimitParam(c, "limit", 10, 100)

	events, err := h.alertService.RecentEvents(limit)
	if err != nil {
		h.logger.Error("Failed to read alert log", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Error reading logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
