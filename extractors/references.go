package extractors

import (
	"unicode"
	"unicode/utf8"

	"intentrouter/normalization"
)

// DefaultMaxReferences сколько ссылок на имена сохраняется по умолчанию
const DefaultMaxReferences = 3

// minReferenceLength минимальная длина ссылки в символах
const minReferenceLength = 2

// ValidReference проверяет, может ли токен быть ссылкой на имя:
// не короче двух символов, содержит букву, не число, не числительное и не слово команды
func ValidReference(token string, ignore *Vocabulary) bool {
	if utf8.RuneCountInString(token) < minReferenceLength {
		return false
	}
	if isDigits(token) {
		return false
	}
	if !hasLetter(token) {
		return false
	}
	if _, ok := NumberWord(token); ok {
		return false
	}
	return !ignore.Contains(token)
}

// References возвращает ссылки в порядке первого появления, без повторов, не более limit
func References(text normalization.Text, ignore *Vocabulary, limit int) []string {
	return collectReferences(text, explicitDateText(text), ignore, limit)
}

func collectReferences(text normalization.Text, dateText string, ignore *Vocabulary, limit int) []string {
	refs := []string{}
	if limit <= 0 {
		return refs
	}

	skip := make(map[string]struct{})
	for _, tok := range normalization.Tokenize(dateText) {
		skip[tok] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, tok := range tokensBeforeComment(text) {
		if _, ok := skip[tok]; ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		if !ValidReference(tok, ignore) {
			continue
		}
		seen[tok] = struct{}{}
		refs = append(refs, tok)
		if len(refs) == limit {
			break
		}
	}
	return refs
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
