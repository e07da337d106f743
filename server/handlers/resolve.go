package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"intentrouter/resolver"
	apperrors "intentrouter/server/errors"
)

// MaxResolveCandidates максимальное число кандидатов в одном запросе
const MaxResolveCandidates = 1000

// ResolveHandler сопоставляет ссылку на имя со списком известных имен
type ResolveHandler struct {
	*BaseHandler
	resolver *resolver.Resolver
}

// NewResolveHandler создает обработчик
func NewResolveHandler(base *BaseHandler, r *resolver.Resolver) *ResolveHandler {
	return &ResolveHandler{BaseHandler: base, resolver: r}
}

// HandleResolve разрешает ссылку
// @Summary Разрешить ссылку на имя
// @Description Точное совпадение, синоним, основа слова, подстрока, затем нечеткое сравнение
// @Tags resolver
// @Accept json
// @Produce json
// @Param request body ResolveRequest true "Ссылка и кандидаты"
// @Success 200 {object} resolver.Resolution
// @Failure 400 {object} middleware.ErrorResponse "Неверный запрос"
// @Router /api/resolve [post]
func (h *ResolveHandler) HandleResolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleHTTPError(c, apperrors.NewValidationError("неверный формат тела запроса", err))
		return
	}
	if err := h.checkLength(req.Query); err != nil {
		h.HandleHTTPError(c, err)
		return
	}
	if len(req.Candidates) > MaxResolveCandidates {
		h.HandleHTTPError(c, apperrors.NewValidationError(
			fmt.Sprintf("не больше %d кандидатов в запросе", MaxResolveCandidates), nil))
		return
	}

	SendJSONResponse(c, http.StatusOK, h.resolver.Resolve(req.Query, req.Candidates))
}
