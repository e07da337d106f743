package normalization

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Text нормализованный текст сообщения вместе с токенами.
// Значение неизменяемо после Normalize и может свободно передаваться между горутинами.
type Text struct {
	// Raw исходный текст без пробелов по краям, регистр сохранен
	Raw string `json:"raw"`
	// Value текст в нижнем регистре со схлопнутыми пробелами
	Value string `json:"value"`
	// Tokens слова Value без пунктуации по краям
	Tokens []string `json:"tokens"`
}

// Normalize выполняет полную нормализацию текста сообщения.
// Функция тотальна: пустой ввод дает пустой Text.
func Normalize(raw string) Text {
	raw = strings.TrimSpace(raw)

	// 1. Приведение к NFC, иначе "й" из двух кодовых точек не совпадет со словарем
	text := norm.NFC.String(raw)

	// 2. Приведение к нижнему регистру
	text = strings.ToLower(text)

	// 3. Нормализация кавычек и дефисов
	text = normalizeQuotes(text)
	text = normalizeHyphens(text)

	// 4. Удаление лишних пробелов
	text = strings.Join(strings.Fields(text), " ")

	return Text{
		Raw:    raw,
		Value:  text,
		Tokens: Tokenize(text),
	}
}

// Tokenize разбивает уже нормализованный текст на токены.
// Пунктуация внутри слова сохраняется ("13.02", "ад-реквест"), по краям отбрасывается.
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimFunc(field, isEdgePunct)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Empty сообщает, что в тексте нет ни одного токена
func (t Text) Empty() bool {
	return len(t.Tokens) == 0
}

// HasToken проверяет наличие токена целиком
func (t Text) HasToken(token string) bool {
	for _, tok := range t.Tokens {
		if tok == token {
			return true
		}
	}
	return false
}

// Contains проверяет вхождение фразы как непрерывной подстроки
func (t Text) Contains(phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(t.Value, phrase)
}

// Key приводит отдельное слово или фразу словаря к форме, в которой они сравниваются с текстом
func Key(s string) string {
	return Normalize(s).Value
}

func isEdgePunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// normalizeQuotes нормализует различные типы кавычек
func normalizeQuotes(text string) string {
	replacements := map[rune]rune{
		'“': '"',
		'”': '"',
		'‘': '\'',
		'’': '\'',
		'«': '"',
		'»': '"',
		'„': '"',
		'‚': '\'',
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if replacement, ok := replacements[r]; ok {
			builder.WriteRune(replacement)
		} else {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// normalizeHyphens нормализует различные типы дефисов
func normalizeHyphens(text string) string {
	text = strings.ReplaceAll(text, "—", "-")
	text = strings.ReplaceAll(text, "–", "-")
	text = strings.ReplaceAll(text, "−", "-")
	return text
}
