package errors

import (
	"maps"
	"net/http"
	"sync"
	"time"
)

// ErrorRecord запись об ошибке
type ErrorRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Code        int       `json:"code"`
	Message     string    `json:"message"`
	Endpoint    string    `json:"endpoint,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Context     string    `json:"context,omitempty"`
	UserMessage string    `json:"user_message"`
}

// ErrorMetricsSnapshot копия метрик на момент запроса
type ErrorMetricsSnapshot struct {
	TotalErrors      int64            `json:"total_errors"`
	ErrorsByType     map[string]int64 `json:"errors_by_type"`
	ErrorsByCode     map[int]int64    `json:"errors_by_code"`
	ErrorsByEndpoint map[string]int64 `json:"errors_by_endpoint"`
	LastErrors       []ErrorRecord    `json:"last_errors"`
	UptimeSeconds    float64          `json:"uptime_seconds"`
}

// ErrorMetricsCollector собирает метрики ошибок API
type ErrorMetricsCollector struct {
	mu sync.RWMutex

	totalErrors      int64
	errorsByType     map[string]int64
	errorsByCode     map[int]int64
	errorsByEndpoint map[string]int64

	lastErrors    []ErrorRecord
	maxLastErrors int

	startTime time.Time
}

// NewErrorMetricsCollector создает сборщик, хранящий до maxLastErrors последних ошибок
func NewErrorMetricsCollector(maxLastErrors int) *ErrorMetricsCollector {
	if maxLastErrors <= 0 {
		maxLastErrors = 100
	}
	return &ErrorMetricsCollector{
		errorsByType:     make(map[string]int64),
		errorsByCode:     make(map[int]int64),
		errorsByEndpoint: make(map[string]int64),
		lastErrors:       make([]ErrorRecord, 0),
		maxLastErrors:    maxLastErrors,
		startTime:        time.Now(),
	}
}

// RecordError записывает ошибку в метрики
func (emc *ErrorMetricsCollector) RecordError(err *AppError, endpoint, requestID string) {
	emc.mu.Lock()
	defer emc.mu.Unlock()

	errorType := errorType(err.Code)

	emc.totalErrors++
	emc.errorsByType[errorType]++
	emc.errorsByCode[err.Code]++
	if endpoint != "" {
		emc.errorsByEndpoint[endpoint]++
	}

	record := ErrorRecord{
		Timestamp:   time.Now(),
		Type:        errorType,
		Code:        err.Code,
		Message:     err.Error(),
		Endpoint:    endpoint,
		RequestID:   requestID,
		Context:     err.GetContext(),
		UserMessage: err.UserMessage(),
	}
	emc.lastErrors = append([]ErrorRecord{record}, emc.lastErrors...)
	if len(emc.lastErrors) > emc.maxLastErrors {
		emc.lastErrors = emc.lastErrors[:emc.maxLastErrors]
	}
}

// errorType определяет тип ошибки по коду
func errorType(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "ValidationError"
	case http.StatusNotFound:
		return "NotFoundError"
	case http.StatusTooManyRequests:
		return "TooManyRequestsError"
	case http.StatusInternalServerError:
		return "InternalError"
	case http.StatusServiceUnavailable:
		return "ServiceUnavailableError"
	default:
		return "UnknownError"
	}
}

// Snapshot возвращает копию метрик; lastLimit <= 0 означает все сохраненные ошибки
func (emc *ErrorMetricsCollector) Snapshot(lastLimit int) ErrorMetricsSnapshot {
	emc.mu.RLock()
	defer emc.mu.RUnlock()

	if lastLimit <= 0 || lastLimit > len(emc.lastErrors) {
		lastLimit = len(emc.lastErrors)
	}
	last := make([]ErrorRecord, lastLimit)
	copy(last, emc.lastErrors[:lastLimit])

	return ErrorMetricsSnapshot{
		TotalErrors:      emc.totalErrors,
		ErrorsByType:     maps.Clone(emc.errorsByType),
		ErrorsByCode:     maps.Clone(emc.errorsByCode),
		ErrorsByEndpoint: maps.Clone(emc.errorsByEndpoint),
		LastErrors:       last,
		UptimeSeconds:    time.Since(emc.startTime).Seconds(),
	}
}

// Reset сбрасывает все метрики
func (emc *ErrorMetricsCollector) Reset() {
	emc.mu.Lock()
	defer emc.mu.Unlock()

	emc.totalErrors = 0
	emc.errorsByType = make(map[string]int64)
	emc.errorsByCode = make(map[int]int64)
	emc.errorsByEndpoint = make(map[string]int64)
	emc.lastErrors = make([]ErrorRecord, 0)
	emc.startTime = time.Now()
}
