package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "intentrouter/server/errors"
)

// HTTPError ошибка с HTTP статусом и сообщением для пользователя
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
	GetContext() string
	Unwrap() error
}

// ErrorResponse структура ответа об ошибке
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

const errorMetricsKey = "error_metrics"

// GinErrorMetricsMiddleware делает сборщик метрик ошибок доступным обработчикам
func GinErrorMetricsMiddleware(metrics *apperrors.ErrorMetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics != nil {
			c.Set(errorMetricsKey, metrics)
		}
		c.Next()
	}
}

func errorMetricsFromGin(c *gin.Context) *apperrors.ErrorMetricsCollector {
	value, ok := c.Get(errorMetricsKey)
	if !ok {
		return nil
	}
	metrics, _ := value.(*apperrors.ErrorMetricsCollector)
	return metrics
}

// WriteJSONError записывает JSON ошибку и прерывает цепочку обработчиков
func WriteJSONError(c *gin.Context, message string, statusCode int) {
	reqID := GetRequestIDFromGin(c)

	slog.Error("HTTP error",
		"error", message,
		"status_code", statusCode,
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:     message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: reqID,
	})
}

// HandleHTTPError отвечает JSON ошибкой. HTTPError задает статус и сообщение,
// любая другая ошибка становится 500 с общим сообщением.
func HandleHTTPError(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)
	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = c.Request.URL.Path
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		var httpErr HTTPError
		if errors.As(err, &httpErr) {
			appErr = &apperrors.AppError{
				Code:    httpErr.StatusCode(),
				Message: httpErr.UserMessage(),
				Err:     httpErr.Unwrap(),
				Context: httpErr.GetContext(),
			}
		} else {
			appErr = apperrors.NewInternalError("unhandled error", err)
		}
	}

	if metrics := errorMetricsFromGin(c); metrics != nil {
		metrics.RecordError(appErr, endpoint, reqID)
	}

	level := slog.LevelWarn
	if appErr.Code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(c.Request.Context(), level, "HTTP error",
		"error", appErr.Unwrap(),
		"user_message", appErr.UserMessage(),
		"context", appErr.GetContext(),
		"status_code", appErr.Code,
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.AbortWithStatusJSON(appErr.Code, ErrorResponse{
		Error:     appErr.UserMessage(),
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: reqID,
	})
}
