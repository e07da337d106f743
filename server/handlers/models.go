package handlers

import (
	"intentrouter/classification"
	"intentrouter/database"
	"intentrouter/extractors"
	"intentrouter/resolver"
	"intentrouter/router"
	apperrors "intentrouter/server/errors"
)

// TextRequest тело запросов классификации и извлечения
type TextRequest struct {
	Text string `json:"text" example:"три кастома мелиса"`
	// Format text (по умолчанию) или html
	Format string `json:"format,omitempty" example:"text"`
	// Trace добавляет в ответ трассировку решения
	Trace bool `json:"trace,omitempty"`
}

// ClassifyResponse ответ классификации
type ClassifyResponse struct {
	Intent      classification.IntentTag `json:"intent" example:"CREATE_ORDER"`
	Description string                   `json:"description" example:"Создание заказов с типом"`
	Decision    *classification.Decision `json:"decision,omitempty"`
	Generation  uint64                   `json:"generation"`
}

// ExtractResponse ответ извлечения сущностей
type ExtractResponse struct {
	Entities   extractors.EntitySet `json:"entities"`
	Generation uint64               `json:"generation"`
}

// RouteResponse полный результат маршрутизации
type RouteResponse struct {
	router.Result
	Generation uint64 `json:"generation"`
	JournalID  string `json:"journal_id,omitempty"`
}

// IntentInfo описание намерения
type IntentInfo struct {
	Intent      classification.IntentTag `json:"intent"`
	Description string                   `json:"description"`
	Examples    []string                 `json:"examples"`
	HasRule     bool                     `json:"has_rule"`
}

// IntentsResponse каталог намерений
type IntentsResponse struct {
	SchemaVersion int          `json:"schema_version"`
	RulesVersion  int          `json:"rules_version"`
	Generation    uint64       `json:"generation"`
	Intents       []IntentInfo `json:"intents"`
}

// ResolveRequest тело запроса разрешения ссылки
type ResolveRequest struct {
	Query      string               `json:"query" example:"мелисы"`
	Candidates []resolver.Candidate `json:"candidates"`
}

// JournalRecentResponse последние записи журнала
type JournalRecentResponse struct {
	Entries []database.JournalEntry `json:"entries"`
	Count   int                     `json:"count"`
}

// JournalStatsResponse количество решений по намерениям
type JournalStatsResponse struct {
	Total   int                    `json:"total"`
	Intents []database.IntentCount `json:"intents"`
}

// HealthResponse состояние сервиса
type HealthResponse struct {
	Status       string `json:"status" example:"ok"`
	Generation   uint64 `json:"generation"`
	RulesVersion int    `json:"rules_version"`
	Rules        int    `json:"rules"`
	Journal      string `json:"journal" example:"ok"`
}

// ErrorMetricsResponse метрики ошибок API
type ErrorMetricsResponse = apperrors.ErrorMetricsSnapshot
