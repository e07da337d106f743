// Package resolver сопоставляет ссылку на имя из сообщения со списком известных имен.
package resolver

import (
	"log/slog"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"intentrouter/normalization"
)

// Пороги сопоставления
const (
	MinQueryLength      = 3
	FuzzyMinQueryLength = 4
	FuzzyThreshold      = 0.80
	MaxMatches          = 5
)

// Оценки точных способов сопоставления
const (
	ScoreExact     = 1.0
	ScoreAlias     = 0.98
	ScoreStem      = 0.97
	ScoreSubstring = 0.95
)

// MatchType способ, которым найден кандидат
type MatchType string

const (
	MatchExact     MatchType = "exact"
	MatchAlias     MatchType = "alias"
	MatchStem      MatchType = "stem"
	MatchSubstring MatchType = "substring"
	MatchFuzzy     MatchType = "fuzzy"
)

// Status итог разрешения ссылки
type Status string

const (
	StatusFound    Status = "found"
	StatusConfirm  Status = "confirm"
	StatusMultiple Status = "multiple"
	StatusNotFound Status = "not_found"
)

// Candidate известное имя с синонимами
type Candidate struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// Match найденный кандидат с оценкой
type Match struct {
	Candidate
	Score     float64   `json:"score"`
	MatchType MatchType `json:"match_type"`
}

// Resolution результат разрешения.
// Match заполнен для found и confirm, Matches для multiple.
type Resolution struct {
	Status  Status  `json:"status"`
	Match   *Match  `json:"match,omitempty"`
	Matches []Match `json:"matches"`
}

// Resolver сопоставляет ссылки с кандидатами
type Resolver struct {
	stemmer *Stemmer
	logger  *slog.Logger
}

// New создает резолвер
func New(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		stemmer: NewStemmer(),
		logger:  logger.With("component", "resolver"),
	}
}

// Resolve ищет кандидатов для ссылки.
// Одиночное нечеткое совпадение требует подтверждения пользователя.
// Среди нескольких совпадений сразу выбирается только единственное точное или по синониму.
func (r *Resolver) Resolve(query string, candidates []Candidate) Resolution {
	notFound := Resolution{Status: StatusNotFound, Matches: []Match{}}

	q := normalizeName(query)
	if utf8.RuneCountInString(q) < MinQueryLength || len(candidates) == 0 {
		return notFound
	}

	matches := r.Score(q, candidates)
	switch len(matches) {
	case 0:
		return notFound
	case 1:
		m := matches[0]
		status := StatusFound
		if m.MatchType == MatchFuzzy {
			status = StatusConfirm
		}
		r.logger.Debug("reference resolved", "query", q, "name", m.Name, "score", m.Score, "match_type", m.MatchType)
		return Resolution{Status: status, Match: &m, Matches: []Match{}}
	}

	top := matches[0]
	if top.Score >= ScoreAlias && top.MatchType != MatchFuzzy && matches[1].Score < top.Score {
		r.logger.Debug("reference resolved", "query", q, "name", top.Name, "score", top.Score, "match_type", top.MatchType)
		return Resolution{Status: StatusFound, Match: &top, Matches: []Match{}}
	}

	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return Resolution{Status: StatusMultiple, Matches: matches}
}

// Score оценивает всех кандидатов и возвращает прошедших порог по убыванию оценки.
// При равной оценке сохраняется исходный порядок кандидатов.
func (r *Resolver) Score(query string, candidates []Candidate) []Match {
	q := normalizeName(query)
	if q == "" {
		return []Match{}
	}
	qStems := r.stemmer.StemTokens(strings.Fields(q))
	fuzzy := utf8.RuneCountInString(q) >= FuzzyMinQueryLength

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if m, ok := r.score(q, qStems, fuzzy, c); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func (r *Resolver) score(q string, qStems []string, fuzzy bool, c Candidate) (Match, bool) {
	name := normalizeName(c.Name)
	aliases := make([]string, 0, len(c.Aliases))
	for _, a := range c.Aliases {
		if alias := normalizeName(a); alias != "" {
			aliases = append(aliases, alias)
		}
	}
	names := append([]string{name}, aliases...)

	switch {
	case q == name:
		return Match{Candidate: c, Score: ScoreExact, MatchType: MatchExact}, true
	case slices.Contains(aliases, q):
		return Match{Candidate: c, Score: ScoreAlias, MatchType: MatchAlias}, true
	}

	for _, n := range names {
		if slices.Equal(qStems, r.stemmer.StemTokens(strings.Fields(n))) {
			return Match{Candidate: c, Score: ScoreStem, MatchType: MatchStem}, true
		}
	}

	for _, n := range names {
		if strings.Contains(n, q) {
			return Match{Candidate: c, Score: ScoreSubstring, MatchType: MatchSubstring}, true
		}
	}

	if !fuzzy {
		return Match{}, false
	}
	best := 0.0
	for _, n := range names {
		best = max(best, Similarity(q, n))
	}
	if best >= FuzzyThreshold {
		return Match{Candidate: c, Score: best, MatchType: MatchFuzzy}, true
	}
	return Match{}, false
}

// normalizeName "Black-Pearl" -> "black pearl"
func normalizeName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(normalization.Key(name))
	return strings.Join(strings.Fields(name), " ")
}
