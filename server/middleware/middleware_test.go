package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	apperrors "intentrouter/server/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middlewares...)
	return r
}

func TestGinRequestIDMiddleware(t *testing.T) {
	r := newEngine(GinRequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) {
		assert.Equal(t, GetRequestIDFromGin(c), GetRequestID(c.Request.Context()))
		c.String(http.StatusOK, GetRequestIDFromGin(c))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-42", w.Body.String())
	})
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, GetRequestIDFromGin(nil))
	assert.Empty(t, GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestGinCORSMiddleware(t *testing.T) {
	r := newEngine(GinCORSMiddleware())
	r.POST("/test", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/test", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestGinRecoveryMiddleware(t *testing.T) {
	r := newEngine(GinRequestIDMiddleware(), GinRecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-panic")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Внутренняя ошибка сервера", resp.Error)
	assert.Equal(t, "req-panic", resp.RequestID)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestGinRateLimitMiddleware(t *testing.T) {
	metrics := apperrors.NewErrorMetricsCollector(10)
	r := newEngine(GinErrorMetricsMiddleware(metrics), GinRateLimitMiddleware(rate.NewLimiter(rate.Every(time.Hour), 2)))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, map[int]int64{http.StatusTooManyRequests: 1}, metrics.Snapshot(0).ErrorsByCode)
}

func TestGinRateLimitMiddleware_Disabled(t *testing.T) {
	r := newEngine(GinRateLimitMiddleware(nil))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for range 5 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"app error", apperrors.NewValidationError("поле text обязательно", nil), http.StatusBadRequest, "поле text обязательно"},
		{"wrapped app error", errors.Join(errors.New("ctx"), apperrors.NewServiceUnavailableError("журнал отключен", nil)), http.StatusServiceUnavailable, "журнал отключен"},
		{"plain error", errors.New("sql: database is closed"), http.StatusInternalServerError, "Внутренняя ошибка сервера"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := apperrors.NewErrorMetricsCollector(10)
			r := newEngine(GinRequestIDMiddleware(), GinErrorMetricsMiddleware(metrics))
			r.GET("/fail", func(c *gin.Context) { HandleHTTPError(c, tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.code, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp.Error)
			assert.NotEmpty(t, resp.Timestamp)
			assert.Equal(t, w.Header().Get(RequestIDHeader), resp.RequestID)

			snap := metrics.Snapshot(0)
			assert.EqualValues(t, 1, snap.TotalErrors)
			assert.Equal(t, map[string]int64{"/fail": 1}, snap.ErrorsByEndpoint)
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	r := newEngine()
	r.GET("/fail", func(c *gin.Context) { WriteJSONError(c, "bad", http.StatusBadRequest) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `"error":"bad"`)
}
