// Package matching содержит общую модель триггеров (ключевые слова, фразы, шаблоны),
// которую используют и правила намерений, и словарь категорий.
package matching

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"intentrouter/normalization"
)

// ErrInvalidPattern шаблон не компилируется
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternTimeout предел времени одного сопоставления шаблона.
// Шаблоны приходят из файла правил, катастрофический возврат не должен блокировать запрос.
const PatternTimeout = 100 * time.Millisecond

// Kind способ, которым сработал триггер
type Kind string

const (
	KindNone    Kind = ""
	KindPhrase  Kind = "phrase"
	KindKeyword Kind = "keyword"
	KindPattern Kind = "pattern"
)

// Triggers исходное описание триггеров в том виде, в каком оно хранится в конфигурации
type Triggers struct {
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty"`
	Phrases  []string `json:"phrases,omitempty" yaml:"phrases,omitempty" toml:"phrases,omitempty"`
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty" toml:"patterns,omitempty"`
}

// Hit результат сопоставления
type Hit struct {
	Kind    Kind   `json:"kind"`
	Trigger string `json:"trigger"`
}

// Matched сообщает, что триггер сработал
func (h Hit) Matched() bool {
	return h.Kind != KindNone
}

// Matcher скомпилированный набор триггеров.
// После Compile не изменяется и безопасен для конкурентного использования.
type Matcher struct {
	keywords []string
	keySet   map[string]struct{}
	phrases  []string
	patterns []*regexp2.Regexp
}

// Compile нормализует слова и фразы и компилирует шаблоны ровно один раз.
// Ошибка компиляции любого шаблона возвращается с ErrInvalidPattern.
func Compile(t Triggers) (*Matcher, error) {
	m := &Matcher{
		keySet: make(map[string]struct{}, len(t.Keywords)),
	}

	for _, kw := range t.Keywords {
		key := normalization.Key(kw)
		if key == "" {
			continue
		}
		if _, dup := m.keySet[key]; dup {
			continue
		}
		m.keySet[key] = struct{}{}
		m.keywords = append(m.keywords, key)
	}

	for _, phrase := range t.Phrases {
		if key := normalization.Key(phrase); key != "" {
			m.phrases = append(m.phrases, key)
		}
	}

	for i, expr := range t.Patterns {
		re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("%w: #%d %q: %v", ErrInvalidPattern, i, expr, err)
		}
		re.MatchTimeout = PatternTimeout
		m.patterns = append(m.patterns, re)
	}

	return m, nil
}

// Empty сообщает, что у набора нет ни одного триггера
func (m *Matcher) Empty() bool {
	return len(m.keywords) == 0 && len(m.phrases) == 0 && len(m.patterns) == 0
}

// Match проверяет фразы, затем ключевые слова, затем шаблоны.
// Порядок влияет только на то, какой триггер попадет в Hit, а не на сам факт совпадения.
func (m *Matcher) Match(text normalization.Text) Hit {
	if hit := m.MatchPhrase(text); hit.Matched() {
		return hit
	}
	if hit := m.MatchKeyword(text); hit.Matched() {
		return hit
	}
	return m.MatchPattern(text)
}

// MatchPhrase ищет фразу как непрерывную подстроку
func (m *Matcher) MatchPhrase(text normalization.Text) Hit {
	for _, phrase := range m.phrases {
		if text.Contains(phrase) {
			return Hit{Kind: KindPhrase, Trigger: phrase}
		}
	}
	return Hit{}
}

// MatchKeyword ищет ключевое слово среди токенов целиком
func (m *Matcher) MatchKeyword(text normalization.Text) Hit {
	for _, tok := range text.Tokens {
		if _, ok := m.keySet[tok]; ok {
			return Hit{Kind: KindKeyword, Trigger: tok}
		}
	}
	return Hit{}
}

// MatchPattern проверяет шаблоны по порядку объявления
func (m *Matcher) MatchPattern(text normalization.Text) Hit {
	if text.Value == "" {
		return Hit{}
	}
	for _, re := range m.patterns {
		// Ошибка regexp2 возможна только по таймауту PatternTimeout; считаем ее несовпадением
		if ok, err := re.MatchString(text.Value); err == nil && ok {
			return Hit{Kind: KindPattern, Trigger: re.String()}
		}
	}
	return Hit{}
}

// Words возвращает все слова, из которых состоят ключевые слова и фразы.
// Используется для построения словаря игнорируемых слов.
func (m *Matcher) Words() []string {
	words := make([]string, 0, len(m.keywords)+len(m.phrases))
	words = append(words, m.keywords...)
	for _, phrase := range m.phrases {
		words = append(words, normalization.Tokenize(phrase)...)
	}
	return words
}

// Veto набор слов и фраз, присутствие любого из которых запрещает правило.
// Однословные записи сравниваются с токенами целиком, многословные ищутся как фразы.
type Veto struct {
	tokens  map[string]struct{}
	phrases []string
	entries []string
}

// NewVeto нормализует записи запрета
func NewVeto(entries []string) Veto {
	v := Veto{tokens: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		key := normalization.Key(entry)
		if key == "" {
			continue
		}
		v.entries = append(v.entries, key)
		if toks := normalization.Tokenize(key); len(toks) == 1 && toks[0] == key {
			v.tokens[key] = struct{}{}
		} else {
			v.phrases = append(v.phrases, key)
		}
	}
	return v
}

// Find возвращает первую найденную запись запрета
func (v Veto) Find(text normalization.Text) (string, bool) {
	for _, tok := range text.Tokens {
		if _, ok := v.tokens[tok]; ok {
			return tok, true
		}
	}
	for _, phrase := range v.phrases {
		if text.Contains(phrase) {
			return phrase, true
		}
	}
	return "", false
}

// Entries нормализованные записи в порядке объявления
func (v Veto) Entries() []string {
	return v.entries
}

// Words слова записей запрета для словаря игнорируемых слов
func (v Veto) Words() []string {
	var words []string
	for _, entry := range v.entries {
		words = append(words, normalization.Tokenize(entry)...)
	}
	return words
}
