package classification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentrouter/extractors"
	"intentrouter/matching"
)

func keywordRule(intent IntentTag, priority int, words ...string) RuleSpec {
	return RuleSpec{Intent: intent, Priority: priority, Triggers: matching.Triggers{Keywords: words}}
}

func TestBuild_Default(t *testing.T) {
	table, err := Build(DefaultDefinition())
	require.NoError(t, err)

	assert.Equal(t, IntentSchemaVersion, table.Version())
	assert.Len(t, table.Rules(), len(DefaultDefinition().Rules))
	assert.Equal(t, extractors.DefaultMaxReferences, table.Extractor().MaxReferences())

	rules := table.Rules()
	for i := 1; i < len(rules); i++ {
		prev, cur := rules[i-1], rules[i]
		if prev.Spec.Priority == cur.Spec.Priority {
			assert.Less(t, prev.Index, cur.Index)
		} else {
			assert.Greater(t, prev.Spec.Priority, cur.Spec.Priority)
		}
	}

	// Слова команд и категорий не могут быть ссылками
	for _, word := range []string{"заказы", "файлов", "кастома", "найди", "коммент", "ad", "request"} {
		assert.True(t, table.Ignore().Contains(word), word)
	}
	assert.False(t, table.Ignore().Contains("мелиса"))

	assert.Equal(t, IntentShootDone, table.Intents()[0])
	assert.NotContains(t, table.Intents(), IntentUnknown)
}

func TestBuild_VersionDefaults(t *testing.T) {
	table, err := Build(Definition{Rules: []RuleSpec{keywordRule(IntentShowSummary, 1, "сводка")}})
	require.NoError(t, err)
	assert.Equal(t, IntentSchemaVersion, table.Version())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr error
		field   string
	}{
		{
			name:    "negative priority",
			def:     Definition{Rules: []RuleSpec{keywordRule(IntentShowSummary, -1, "сводка")}},
			wantErr: ErrNegativePriority,
			field:   "priority",
		},
		{
			name: "invalid pattern",
			def: Definition{Rules: []RuleSpec{{
				Intent:   IntentShowSummary,
				Triggers: matching.Triggers{Patterns: []string{`(сводка`}},
			}}},
			wantErr: ErrInvalidPattern,
			field:   "patterns",
		},
		{
			name:    "unknown intent",
			def:     Definition{Rules: []RuleSpec{keywordRule("SHOW_WEATHER", 1, "погода")}},
			wantErr: ErrUnknownIntent,
			field:   "intent",
		},
		{
			name:    "fallback intent",
			def:     Definition{Rules: []RuleSpec{keywordRule(IntentUnknown, 1, "что")}},
			wantErr: ErrFallbackIntent,
			field:   "intent",
		},
		{
			name:    "no triggers",
			def:     Definition{Rules: []RuleSpec{{Intent: IntentShowSummary, Priority: 1}}},
			wantErr: ErrEmptyTriggers,
			field:   "triggers",
		},
		{
			name:    "blank keywords only",
			def:     Definition{Rules: []RuleSpec{keywordRule(IntentShowSummary, 1, " ", "")}},
			wantErr: ErrEmptyTriggers,
			field:   "triggers",
		},
		{
			name: "conflicting number requirement",
			def: Definition{Rules: []RuleSpec{
				{Intent: IntentAddFiles, Priority: 90, RequiresNumber: true, Triggers: matching.Triggers{Keywords: []string{"файлов"}}},
				keywordRule(IntentAddFiles, 80, "фото"),
			}},
			wantErr: ErrConflictingRule,
			field:   "requires_number",
		},
		{
			name: "conflicting exclusions",
			def: Definition{Rules: []RuleSpec{
				{Intent: IntentCreateOrder, Priority: 80, ExcludeWith: []string{"закрыт"}, Triggers: matching.Triggers{Keywords: []string{"кастом"}}},
				keywordRule(IntentCreateOrder, 70, "шорт"),
			}},
			wantErr: ErrConflictingRule,
			field:   "exclude_with",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Build(tt.def)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, tt.wantErr)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestBuild_SameIntentEquivalentExclusions(t *testing.T) {
	def := Definition{Rules: []RuleSpec{
		{Intent: IntentCreateOrder, Priority: 80, ExcludeWith: []string{"Закрыт", "готов"}, Triggers: matching.Triggers{Keywords: []string{"кастом"}}},
		{Intent: IntentCreateOrder, Priority: 70, ExcludeWith: []string{"готов", "закрыт", "готов"}, Triggers: matching.Triggers{Keywords: []string{"шорт"}}},
	}}
	_, err := Build(def)
	assert.NoError(t, err)
}

func TestBuild_DefinitionLevelErrors(t *testing.T) {
	rules := []RuleSpec{keywordRule(IntentShowSummary, 1, "сводка")}

	_, err := Build(Definition{Version: IntentSchemaVersion + 1, Rules: rules})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Build(Definition{Rules: rules, Categories: []extractors.CategorySpec{
		{Name: "custom", Triggers: matching.Triggers{Keywords: []string{"кастом"}}},
		{Name: "custom", Triggers: matching.Triggers{Keywords: []string{"custom"}}},
	}})
	assert.ErrorIs(t, err, ErrInvalidCategories)

	_, err = Build(Definition{Rules: rules, MaxReferences: -1})
	assert.ErrorContains(t, err, "max_references")
}

func TestBuild_CollectsAllErrors(t *testing.T) {
	def := Definition{Rules: []RuleSpec{
		keywordRule(IntentShowSummary, -5, "сводка"),
		{Intent: IntentShowPlanner, Triggers: matching.Triggers{Patterns: []string{`[`}}},
	}}

	_, err := Build(def)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativePriority)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Contains(t, err.Error(), "rule #0")
	assert.Contains(t, err.Error(), "rule #1")
}

func TestParseIntent(t *testing.T) {
	got, err := ParseIntent(" create_order ")
	require.NoError(t, err)
	assert.Equal(t, IntentCreateOrder, got)

	_, err = ParseIntent("BOOK_FLIGHT")
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestIntentCatalog(t *testing.T) {
	all := AllIntents()
	assert.Len(t, all, len(intentCatalog))
	for _, intent := range all {
		assert.True(t, intent.Valid())
		assert.NotEmpty(t, intent.Describe())
		assert.NotEmpty(t, intent.Examples())
	}

	assert.Equal(t, IntentUnknown.Describe(), IntentTag("NOPE").Describe())
	assert.Nil(t, IntentTag("NOPE").Examples())
}
