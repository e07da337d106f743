package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "intentrouter/server/errors"
)

// JournalHandler чтение журнала решений
type JournalHandler struct {
	*BaseHandler
	journal JournalStore
}

// NewJournalHandler создает обработчик. При nil journal все запросы получают 503.
func NewJournalHandler(base *BaseHandler, journal JournalStore) *JournalHandler {
	return &JournalHandler{BaseHandler: base, journal: journal}
}

func (h *JournalHandler) available(c *gin.Context) bool {
	if h.journal == nil {
		h.HandleHTTPError(c, apperrors.NewServiceUnavailableError("журнал решений отключен", nil))
		return false
	}
	return true
}

// HandleRecent последние записи журнала
// @Summary Последние решения
// @Tags journal
// @Produce json
// @Param limit query int false "Количество записей (по умолчанию 50, не больше 500)"
// @Success 200 {object} JournalRecentResponse
// @Failure 400 {object} middleware.ErrorResponse "Неверный запрос"
// @Failure 503 {object} middleware.ErrorResponse "Журнал отключен"
// @Router /api/journal/recent [get]
func (h *JournalHandler) HandleRecent(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.HandleHTTPError(c, apperrors.NewValidationError("limit должен быть положительным целым числом", err))
			return
		}
		limit = parsed
	}

	entries, err := h.journal.Recent(c.Request.Context(), limit)
	if err != nil {
		h.HandleHTTPError(c, apperrors.NewInternalError("failed to read journal", err).WithContext("journal.recent"))
		return
	}

	SendJSONResponse(c, http.StatusOK, JournalRecentResponse{Entries: entries, Count: len(entries)})
}

// HandleStats количество решений по намерениям
// @Summary Статистика намерений
// @Tags journal
// @Produce json
// @Success 200 {object} JournalStatsResponse
// @Failure 503 {object} middleware.ErrorResponse "Журнал отключен"
// @Router /api/journal/stats [get]
func (h *JournalHandler) HandleStats(c *gin.Context) {
	if !h.available(c) {
		return
	}

	stats, err := h.journal.IntentStats(c.Request.Context())
	if err != nil {
		h.HandleHTTPError(c, apperrors.NewInternalError("failed to read intent stats", err).WithContext("journal.stats"))
		return
	}

	total := 0
	for _, s := range stats {
		total += s.Count
	}
	SendJSONResponse(c, http.StatusOK, JournalStatsResponse{Total: total, Intents: stats})
}
