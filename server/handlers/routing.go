package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"intentrouter/classification"
	"intentrouter/database"
	"intentrouter/router"
	"intentrouter/server/middleware"
)

// JournalStore хранилище журнала решений
type JournalStore interface {
	Record(ctx context.Context, entry database.JournalEntry) (database.JournalEntry, error)
	Recent(ctx context.Context, limit int) ([]database.JournalEntry, error)
	IntentStats(ctx context.Context) ([]database.IntentCount, error)
	Ping(ctx context.Context) error
}

// RoutingHandler обработчики классификации и маршрутизации сообщений
type RoutingHandler struct {
	*BaseHandler
	holder  *router.Holder
	journal JournalStore
}

// NewRoutingHandler создает обработчик. journal может быть nil, тогда решения не записываются.
func NewRoutingHandler(base *BaseHandler, holder *router.Holder, journal JournalStore) *RoutingHandler {
	return &RoutingHandler{
		BaseHandler: base,
		holder:      holder,
		journal:     journal,
	}
}

// HandleIntents возвращает каталог намерений
// @Summary Каталог намерений
// @Description Все намерения с описаниями и примерами; has_rule показывает, есть ли для намерения правило в текущей таблице
// @Tags intents
// @Produce json
// @Success 200 {object} IntentsResponse
// @Router /api/intents [get]
func (h *RoutingHandler) HandleIntents(c *gin.Context) {
	r, generation := h.holder.Current()

	withRule := make(map[classification.IntentTag]bool)
	for _, intent := range r.Table().Intents() {
		withRule[intent] = true
	}

	all := classification.AllIntents()
	intents := make([]IntentInfo, 0, len(all))
	for _, intent := range all {
		intents = append(intents, IntentInfo{
			Intent:      intent,
			Description: intent.Describe(),
			Examples:    intent.Examples(),
			HasRule:     withRule[intent],
		})
	}

	SendJSONResponse(c, http.StatusOK, IntentsResponse{
		SchemaVersion: classification.IntentSchemaVersion,
		RulesVersion:  r.Table().Version(),
		Generation:    generation,
		Intents:       intents,
	})
}

// HandleClassify определяет намерение сообщения
// @Summary Классифицировать сообщение
// @Description Возвращает ровно одно намерение. Пустой текст дает UNKNOWN.
// @Tags routing
// @Accept json
// @Produce json
// @Param request body TextRequest true "Сообщение"
// @Success 200 {object} ClassifyResponse
// @Failure 400 {object} middleware.ErrorResponse "Неверный запрос"
// @Router /api/classify [post]
func (h *RoutingHandler) HandleClassify(c *gin.Context) {
	var req TextRequest
	text, ok := h.BindText(c, &req)
	if !ok {
		return
	}

	r, generation := h.holder.Current()
	decision := r.Explain(text)

	resp := ClassifyResponse{
		Intent:      decision.Intent,
		Description: decision.Intent.Describe(),
		Generation:  generation,
	}
	if req.Trace {
		resp.Decision = &decision
	}
	SendJSONResponse(c, http.StatusOK, resp)
}

// HandleExtract извлекает сущности сообщения
// @Summary Извлечь сущности
// @Description Числа, категория, ссылки на имена, дата и комментарий. Не зависит от намерения.
// @Tags routing
// @Accept json
// @Produce json
// @Param request body TextRequest true "Сообщение"
// @Success 200 {object} ExtractResponse
// @Failure 400 {object} middleware.ErrorResponse "Неверный запрос"
// @Router /api/extract [post]
func (h *RoutingHandler) HandleExtract(c *gin.Context) {
	var req TextRequest
	text, ok := h.BindText(c, &req)
	if !ok {
		return
	}

	r, generation := h.holder.Current()
	SendJSONResponse(c, http.StatusOK, ExtractResponse{
		Entities:   r.Extract(text),
		Generation: generation,
	})
}

// HandleRoute полная обработка сообщения: предфильтр, намерение, сущности и запись в журнал
// @Summary Маршрутизировать сообщение
// @Description Сообщение, отклоненное предфильтром, получает UNKNOWN и пустые сущности
// @Tags routing
// @Accept json
// @Produce json
// @Param request body TextRequest true "Сообщение"
// @Success 200 {object} RouteResponse
// @Failure 400 {object} middleware.ErrorResponse "Неверный запрос"
// @Router /api/route [post]
func (h *RoutingHandler) HandleRoute(c *gin.Context) {
	var req TextRequest
	text, ok := h.BindText(c, &req)
	if !ok {
		return
	}

	r, generation := h.holder.Current()
	result := r.Route(text, true)

	resp := RouteResponse{Result: result, Generation: generation}
	if h.journal != nil {
		entry, err := h.journal.Record(c.Request.Context(), journalEntry(result, generation, middleware.GetRequestIDFromGin(c)))
		if err != nil {
			// Ошибка записи журнала не меняет ответ
			h.logger.Error("failed to record routing decision",
				"error", err,
				"request_id", middleware.GetRequestIDFromGin(c),
			)
		} else {
			resp.JournalID = entry.ID
		}
	}

	if !req.Trace {
		resp.Decision = nil
	}
	SendJSONResponse(c, http.StatusOK, resp)
}

func journalEntry(result router.Result, generation uint64, requestID string) database.JournalEntry {
	entry := database.JournalEntry{
		RequestID:        requestID,
		Text:             result.Text,
		Intent:           string(result.Intent),
		Rule:             -1,
		PrimaryReference: result.Entities.PrimaryReference,
		Numbers:          result.Entities.Numbers,
		Category:         result.Entities.Category,
		Passed:           result.Prefilter.Passed,
		Reason:           result.Prefilter.Reason,
		Generation:       generation,
	}
	if result.Decision != nil {
		entry.Rule = result.Decision.Rule
		entry.MatchKind = string(result.Decision.MatchKind)
	}
	return entry
}
