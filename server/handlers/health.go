package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intentrouter/router"
)

// HealthHandler проверка состояния сервиса
type HealthHandler struct {
	holder  *router.Holder
	journal JournalStore
}

// NewHealthHandler создает обработчик
func NewHealthHandler(holder *router.Holder, journal JournalStore) *HealthHandler {
	return &HealthHandler{holder: holder, journal: journal}
}

// HandleHealth состояние сервиса
// @Summary Проверка состояния
// @Description degraded и 503, если журнал включен, но недоступен
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	r, generation := h.holder.Current()

	resp := HealthResponse{
		Status:       "ok",
		Generation:   generation,
		RulesVersion: r.Table().Version(),
		Rules:        len(r.Table().Rules()),
		Journal:      "disabled",
	}
	status := http.StatusOK

	if h.journal != nil {
		resp.Journal = "ok"
		if err := h.journal.Ping(c.Request.Context()); err != nil {
			resp.Status = "degraded"
			resp.Journal = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	SendJSONResponse(c, status, resp)
}
