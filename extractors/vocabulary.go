package extractors

import (
	"sort"

	"intentrouter/normalization"
)

// Vocabulary неизменяемый набор слов командной грамматики, которые не могут быть ссылкой на имя
type Vocabulary struct {
	words map[string]struct{}
}

// NewVocabulary собирает словарь из нескольких списков, нормализуя каждое слово.
// Многословные записи раскладываются на отдельные токены.
func NewVocabulary(lists ...[]string) *Vocabulary {
	v := &Vocabulary{words: make(map[string]struct{})}
	for _, list := range lists {
		for _, entry := range list {
			for _, tok := range normalization.Tokenize(normalization.Key(entry)) {
				v.words[tok] = struct{}{}
			}
		}
	}
	return v
}

// Contains проверяет принадлежность токена словарю
func (v *Vocabulary) Contains(token string) bool {
	if v == nil {
		return false
	}
	_, ok := v.words[token]
	return ok
}

// Len количество слов
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.words)
}

// Words возвращает отсортированный список слов
func (v *Vocabulary) Words() []string {
	if v == nil {
		return nil
	}
	words := make([]string, 0, len(v.words))
	for w := range v.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
