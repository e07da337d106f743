package handlers

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"intentrouter/normalization"
	apperrors "intentrouter/server/errors"
	"intentrouter/server/middleware"
)

// Форматы тела сообщения
const (
	FormatText = "text"
	FormatHTML = "html"
)

// DefaultMaxTextLength ограничение длины текста по умолчанию, в символах
const DefaultMaxTextLength = 4096

// BaseHandler общие методы обработчиков: разбор тела и ответы об ошибках
type BaseHandler struct {
	maxTextLength int
	logger        *slog.Logger
}

// NewBaseHandler создает базовый обработчик
func NewBaseHandler(maxTextLength int, logger *slog.Logger) *BaseHandler {
	if maxTextLength <= 0 {
		maxTextLength = DefaultMaxTextLength
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseHandler{
		maxTextLength: maxTextLength,
		logger:        logger.With("component", "handlers"),
	}
}

// HandleHTTPError отвечает JSON ошибкой
func (h *BaseHandler) HandleHTTPError(c *gin.Context, err error) {
	middleware.HandleHTTPError(c, err)
}

// BindText разбирает тело запроса и возвращает текст сообщения.
// HTML тело приводится к простому тексту до проверки длины.
func (h *BaseHandler) BindText(c *gin.Context, req *TextRequest) (string, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		h.HandleHTTPError(c, apperrors.NewValidationError("неверный формат тела запроса", err))
		return "", false
	}

	text, err := h.plainText(req.Text, req.Format)
	if err != nil {
		h.HandleHTTPError(c, err)
		return "", false
	}
	return text, true
}

func (h *BaseHandler) plainText(text, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
	case FormatHTML:
		plain, err := normalization.PlainText(text)
		if err != nil {
			return "", apperrors.NewValidationError("не удалось разобрать HTML сообщения", err)
		}
		text = plain
	default:
		return "", apperrors.NewValidationError(fmt.Sprintf("неизвестный формат %q, ожидается text или html", format), nil)
	}

	if err := h.checkLength(text); err != nil {
		return "", err
	}
	return text, nil
}

func (h *BaseHandler) checkLength(text string) error {
	if n := utf8.RuneCountInString(text); n > h.maxTextLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("текст длиннее %d символов", h.maxTextLength),
			fmt.Errorf("text length %d exceeds limit %d", n, h.maxTextLength),
		)
	}
	return nil
}
