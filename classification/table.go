package classification

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"intentrouter/extractors"
	"intentrouter/matching"
	"intentrouter/normalization"
)

// Ошибки конфигурации. Любая из них фатальна: частично построенная таблица не возвращается.
var (
	ErrInvalidPattern     = matching.ErrInvalidPattern
	ErrNegativePriority   = errors.New("negative priority")
	ErrConflictingRule    = errors.New("conflicting rule")
	ErrUnknownIntent      = errors.New("unknown intent")
	ErrFallbackIntent     = errors.New("fallback intent cannot have a rule")
	ErrEmptyTriggers      = errors.New("rule has no keywords, phrases or patterns")
	ErrInvalidCategories  = errors.New("invalid categories")
	ErrUnsupportedVersion = errors.New("unsupported definition version")
)

// ConfigError ошибка в конкретном правиле
type ConfigError struct {
	Index  int
	Intent IntentTag
	Field  string
	Err    error
}

// Error реализует интерфейс error
func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule #%d (%s) %s: %v", e.Index, e.Intent, e.Field, e.Err)
}

// Unwrap возвращает вложенную ошибку для errors.Is и errors.As
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Rule скомпилированное правило
type Rule struct {
	Spec RuleSpec
	// Index позиция в объявлении, используется для разрешения равных приоритетов
	Index int

	matcher *matching.Matcher
	veto    matching.Veto
}

// Table неизменяемая таблица правил, отсортированная по (приоритет убыв., позиция возр.),
// вместе со словарем игнорируемых слов и экстрактором сущностей
type Table struct {
	version   int
	rules     []*Rule
	ignore    *extractors.Vocabulary
	extractor *extractors.Extractor
}

// Build проверяет определение и строит таблицу. Все найденные ошибки возвращаются вместе.
func Build(def Definition) (*Table, error) {
	var errs []error

	version := def.Version
	if version == 0 {
		version = IntentSchemaVersion
	}
	if version > IntentSchemaVersion {
		errs = append(errs, fmt.Errorf("%w: %d (supported up to %d)", ErrUnsupportedVersion, version, IntentSchemaVersion))
	}
	if def.MaxReferences < 0 {
		errs = append(errs, fmt.Errorf("max_references must not be negative, got %d", def.MaxReferences))
	}

	categories, err := extractors.NewCategoryVocabulary(def.Categories)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidCategories, err))
	}

	rules := make([]*Rule, 0, len(def.Rules))
	for i, spec := range def.Rules {
		rule, ruleErrs := compileRule(i, spec)
		errs = append(errs, ruleErrs...)
		if rule != nil {
			rules = append(rules, rule)
		}
	}
	errs = append(errs, checkConflicts(def.Rules)...)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Spec.Priority != rules[j].Spec.Priority {
			return rules[i].Spec.Priority > rules[j].Spec.Priority
		}
		return rules[i].Index < rules[j].Index
	})

	lists := [][]string{def.Ignore, categories.Words()}
	for _, r := range rules {
		lists = append(lists, r.matcher.Words(), r.veto.Words())
	}
	ignore := extractors.NewVocabulary(lists...)

	return &Table{
		version:   version,
		rules:     rules,
		ignore:    ignore,
		extractor: extractors.NewExtractor(ignore, categories, def.MaxReferences),
	}, nil
}

func compileRule(index int, spec RuleSpec) (*Rule, []error) {
	var errs []error
	fail := func(field string, err error) {
		errs = append(errs, &ConfigError{Index: index, Intent: spec.Intent, Field: field, Err: err})
	}

	switch {
	case spec.Intent == IntentUnknown:
		fail("intent", ErrFallbackIntent)
	case !spec.Intent.Valid():
		fail("intent", fmt.Errorf("%w: %q", ErrUnknownIntent, spec.Intent))
	}

	if spec.Priority < 0 {
		fail("priority", fmt.Errorf("%w: %d", ErrNegativePriority, spec.Priority))
	}

	m, err := matching.Compile(spec.Triggers)
	if err != nil {
		fail("patterns", err)
	} else if m.Empty() {
		fail("triggers", ErrEmptyTriggers)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Rule{
		Spec:    spec,
		Index:   index,
		matcher: m,
		veto:    matching.NewVeto(spec.ExcludeWith),
	}, nil
}

// checkConflicts правила с одинаковым намерением должны совпадать по ограничениям,
// иначе результат зависел бы от порядка объявления
func checkConflicts(specs []RuleSpec) []error {
	var errs []error
	first := make(map[IntentTag]int, len(specs))

	for i, spec := range specs {
		j, seen := first[spec.Intent]
		if !seen {
			first[spec.Intent] = i
			continue
		}
		prev := specs[j]
		switch {
		case prev.RequiresNumber != spec.RequiresNumber:
			errs = append(errs, conflict(i, j, spec.Intent, "requires_number"))
		case prev.RequiresReference != spec.RequiresReference:
			errs = append(errs, conflict(i, j, spec.Intent, "requires_reference"))
		case !slices.Equal(exclusionSet(prev.ExcludeWith), exclusionSet(spec.ExcludeWith)):
			errs = append(errs, conflict(i, j, spec.Intent, "exclude_with"))
		}
	}
	return errs
}

func conflict(index, other int, intent IntentTag, field string) error {
	return &ConfigError{
		Index:  index,
		Intent: intent,
		Field:  field,
		Err:    fmt.Errorf("%w: differs from rule #%d with the same intent", ErrConflictingRule, other),
	}
}

func exclusionSet(entries []string) []string {
	set := make([]string, 0, len(entries))
	for _, e := range entries {
		if key := normalization.Key(e); key != "" {
			set = append(set, key)
		}
	}
	sort.Strings(set)
	return slices.Compact(set)
}

// Rules правила в порядке проверки. Срез разделяется, изменять его нельзя.
func (t *Table) Rules() []*Rule {
	return t.rules
}

// Version версия определения
func (t *Table) Version() int {
	return t.version
}

// Ignore словарь игнорируемых слов
func (t *Table) Ignore() *extractors.Vocabulary {
	return t.ignore
}

// Extractor экстрактор сущностей, построенный на словарях таблицы
func (t *Table) Extractor() *extractors.Extractor {
	return t.extractor
}

// Intents намерения, для которых есть правила, в порядке проверки без повторов
func (t *Table) Intents() []IntentTag {
	seen := make(map[IntentTag]bool, len(t.rules))
	var out []IntentTag
	for _, r := range t.rules {
		if !seen[r.Spec.Intent] {
			seen[r.Spec.Intent] = true
			out = append(out, r.Spec.Intent)
		}
	}
	return out
}
