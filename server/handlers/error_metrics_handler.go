package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "intentrouter/server/errors"
)

// ErrorMetricsHandler обработчик метрик ошибок
type ErrorMetricsHandler struct {
	*BaseHandler
	metrics *apperrors.ErrorMetricsCollector
}

// NewErrorMetricsHandler создает обработчик метрик ошибок
func NewErrorMetricsHandler(base *BaseHandler, metrics *apperrors.ErrorMetricsCollector) *ErrorMetricsHandler {
	return &ErrorMetricsHandler{BaseHandler: base, metrics: metrics}
}

// HandleErrorMetrics возвращает метрики ошибок
// @Summary Метрики ошибок API
// @Tags system
// @Produce json
// @Param last query int false "Сколько последних ошибок вернуть"
// @Success 200 {object} ErrorMetricsResponse
// @Router /api/errors/stats [get]
func (h *ErrorMetricsHandler) HandleErrorMetrics(c *gin.Context) {
	last := 20
	if raw := c.Query("last"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.HandleHTTPError(c, apperrors.NewValidationError("last должен быть целым числом", err))
			return
		}
		last = parsed
	}

	SendJSONResponse(c, http.StatusOK, h.metrics.Snapshot(last))
}
