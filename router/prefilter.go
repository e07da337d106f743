package router

import (
	"strings"
	"unicode"
)

// Причины, по которым сообщение не передается в классификатор
const (
	ReasonNone       = ""
	ReasonEmpty      = "empty"
	ReasonBotCommand = "bot_command"
	ReasonTooShort   = "too_short"
	ReasonGibberish  = "gibberish"
)

// MessageTooShort ответ пользователю на слишком короткий запрос
const MessageTooShort = "Слишком короткий запрос."

const (
	minQueryLength      = 2
	minGibberishLetters = 3
	vowels              = "aeiouаеёиоуыэюя"
)

// PrefilterResult результат предварительной проверки сообщения.
// Message заполняется только тогда, когда пользователю нужно ответить.
type PrefilterResult struct {
	Passed  bool   `json:"passed"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// Prefilter отсекает сообщения, которые не имеет смысла классифицировать:
// пустые, команды бота, слишком короткие и бессмысленные наборы согласных
func Prefilter(raw string) PrefilterResult {
	text := strings.TrimSpace(raw)
	if text == "" {
		return PrefilterResult{Reason: ReasonEmpty}
	}

	if strings.HasPrefix(text, "/") {
		return PrefilterResult{Reason: ReasonBotCommand}
	}

	if contentLength(text) < minQueryLength {
		return PrefilterResult{Reason: ReasonTooShort, Message: MessageTooShort}
	}

	if isGibberish(text) {
		return PrefilterResult{Reason: ReasonGibberish}
	}

	return PrefilterResult{Passed: true}
}

// contentLength число символов без пробелов
func contentLength(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// isGibberish в тексте не меньше трех русских или латинских букв и ни одной гласной.
// Числа и смешанный текст без букв бессмыслицей не считаются.
func isGibberish(text string) bool {
	letters := 0
	for _, r := range strings.ToLower(text) {
		if !isBasicLetter(r) {
			continue
		}
		if strings.ContainsRune(vowels, r) {
			return false
		}
		letters++
	}
	return letters >= minGibberishLetters
}

func isBasicLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'а' && r <= 'я') || r == 'ё'
}
