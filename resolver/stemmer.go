package resolver

import (
	"strings"
	"sync"
	"unicode"

	"github.com/kljensen/snowball"
)

// Stemmer приводит слова к основе алгоритмом Snowball.
// Язык выбирается по алфавиту слова: кириллица обрабатывается русским стеммером, остальное английским.
// Результаты кэшируются, Stemmer безопасен для конкурентного использования.
type Stemmer struct {
	mu    sync.RWMutex
	cache map[string]string
}

// NewStemmer создает стеммер с пустым кэшем
func NewStemmer() *Stemmer {
	return &Stemmer{cache: make(map[string]string)}
}

// Stem возвращает основу слова. Если стемминг невозможен, возвращается само слово.
func (s *Stemmer) Stem(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return ""
	}

	s.mu.RLock()
	cached, ok := s.cache[word]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	stemmed, err := snowball.Stem(word, language(word), true)
	if err != nil || stemmed == "" {
		stemmed = word
	}

	s.mu.Lock()
	s.cache[word] = stemmed
	s.mu.Unlock()

	return stemmed
}

// StemTokens возвращает основы для списка слов
func (s *Stemmer) StemTokens(tokens []string) []string {
	stemmed := make([]string, len(tokens))
	for i, token := range tokens {
		stemmed[i] = s.Stem(token)
	}
	return stemmed
}

// CacheSize количество закэшированных слов
func (s *Stemmer) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

func language(word string) string {
	for _, r := range word {
		if unicode.Is(unicode.Cyrillic, r) {
			return "russian"
		}
	}
	return "english"
}
