package extractors

import (
	"fmt"
	"sort"

	"intentrouter/matching"
	"intentrouter/normalization"
)

// CategorySpec описание одной категории (типа заказа) в конфигурации
type CategorySpec struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Display  string `json:"display,omitempty" yaml:"display,omitempty" toml:"display,omitempty"`
	Priority int    `json:"priority" yaml:"priority" toml:"priority"`

	matching.Triggers `yaml:",inline"`
}

type category struct {
	spec    CategorySpec
	matcher *matching.Matcher
}

// CategoryVocabulary закрытый словарь категорий.
// Фразы всех категорий проверяются раньше ключевых слов, ключевые слова раньше шаблонов.
// Внутри одного уровня побеждает категория с большим приоритетом, затем объявленная раньше.
type CategoryVocabulary struct {
	categories []category
	words      []string
}

// NewCategoryVocabulary компилирует словарь категорий
func NewCategoryVocabulary(specs []CategorySpec) (*CategoryVocabulary, error) {
	cv := &CategoryVocabulary{categories: make([]category, 0, len(specs))}
	seen := make(map[string]bool, len(specs))

	for i, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("category #%d: name is required", i)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("category %q: declared twice", spec.Name)
		}
		seen[spec.Name] = true

		if spec.Priority < 0 {
			return nil, fmt.Errorf("category %q: priority must not be negative, got %d", spec.Name, spec.Priority)
		}

		m, err := matching.Compile(spec.Triggers)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", spec.Name, err)
		}

		cv.categories = append(cv.categories, category{spec: spec, matcher: m})
		cv.words = append(cv.words, m.Words()...)
	}

	sort.SliceStable(cv.categories, func(i, j int) bool {
		return cv.categories[i].spec.Priority > cv.categories[j].spec.Priority
	})

	return cv, nil
}

// Detect возвращает имя не более чем одной категории
func (cv *CategoryVocabulary) Detect(text normalization.Text) string {
	if cv == nil || text.Empty() {
		return ""
	}

	tiers := []func(*matching.Matcher, normalization.Text) matching.Hit{
		(*matching.Matcher).MatchPhrase,
		(*matching.Matcher).MatchKeyword,
		(*matching.Matcher).MatchPattern,
	}
	for _, tier := range tiers {
		for _, c := range cv.categories {
			if tier(c.matcher, text).Matched() {
				return c.spec.Name
			}
		}
	}
	return ""
}

// Words слова всех категорий для словаря игнорируемых слов
func (cv *CategoryVocabulary) Words() []string {
	if cv == nil {
		return nil
	}
	return cv.words
}

// Names имена категорий в порядке проверки
func (cv *CategoryVocabulary) Names() []string {
	if cv == nil {
		return nil
	}
	names := make([]string, 0, len(cv.categories))
	for _, c := range cv.categories {
		names = append(names, c.spec.Name)
	}
	return names
}

// DisplayName человекочитаемое название категории
func (cv *CategoryVocabulary) DisplayName(name string) string {
	if cv != nil {
		for _, c := range cv.categories {
			if c.spec.Name == name && c.spec.Display != "" {
				return c.spec.Display
			}
		}
	}
	return name
}

// DefaultCategories встроенный словарь типов заказов
func DefaultCategories() []CategorySpec {
	return []CategorySpec{
		{
			Name:     "ad request",
			Display:  "Ad Request",
			Priority: 40,
			Triggers: matching.Triggers{
				Keywords: []string{"адреквест"},
				Phrases: []string{
					"ad request", "ad requests", "ad-request",
					"ад реквест", "ад реквеста", "ад реквестов", "ад-реквест",
				},
				Patterns: []string{`\b(ad\s*request|ад\s*реквест)[а-я]*\b`},
			},
		},
		{
			Name:     "custom",
			Display:  "Кастом",
			Priority: 30,
			Triggers: matching.Triggers{
				Keywords: []string{"кастом", "кастома", "кастомов", "кастомчик", "custom", "customs"},
				Patterns: []string{`\bка?сто?м[а-я]*\b`, `\bcustoms?\b`},
			},
		},
		{
			Name:     "short",
			Display:  "Шорт",
			Priority: 20,
			Triggers: matching.Triggers{
				Keywords: []string{"шорт", "шорта", "шортов", "шортик", "шортс", "short", "shorts"},
				Patterns: []string{`\bшорт[а-я]*\b`, `\bshorts?\b`},
			},
		},
		{
			Name:     "call",
			Display:  "Колл",
			Priority: 10,
			Triggers: matching.Triggers{
				Keywords: []string{"колл", "колла", "коллов", "коллик", "call", "calls"},
				Patterns: []string{`\bколл[а-я]*\b`, `\bcalls?\b`},
			},
		},
	}
}
