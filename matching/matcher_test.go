package matching

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentrouter/normalization"
)

func TestCompileInvalidPattern(t *testing.T) {
	_, err := Compile(Triggers{Patterns: []string{`\bок\b`, `(незакрытая`}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))
	assert.Contains(t, err.Error(), "#1")
}

func TestPatternTimeout(t *testing.T) {
	m, err := Compile(Triggers{Patterns: []string{`^(а+)+$`}})
	require.NoError(t, err)

	// экспоненциальный возврат прерывается по таймауту и считается несовпадением
	text := normalization.Normalize(strings.Repeat("а", 40) + "б")
	start := time.Now()
	hit := m.MatchPattern(text)
	assert.False(t, hit.Matched())
	assert.Less(t, time.Since(start), 20*PatternTimeout)

	assert.True(t, m.MatchPattern(normalization.Normalize("ааа")).Matched())
}

func TestMatcherKinds(t *testing.T) {
	m, err := Compile(Triggers{
		Keywords: []string{"Кастом", "кастома", "кастом"},
		Phrases:  []string{"ад реквест"},
		Patterns: []string{`\bка?сто?м[а-я]*\b`},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		wantKind Kind
		trigger  string
	}{
		{"фраза побеждает слово", "ад реквест кастом", KindPhrase, "ад реквест"},
		{"ключевое слово целиком", "три кастома мелиса", KindKeyword, "кастома"},
		{"шаблон для опечатки", "два кстомчика", KindPattern, `\bка?сто?м[а-я]*\b`},
		{"нет совпадения", "мелиса файлов", KindNone, ""},
		{"пустой текст", "", KindNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := m.Match(normalization.Normalize(tt.input))
			assert.Equal(t, tt.wantKind, hit.Kind)
			assert.Equal(t, tt.trigger, hit.Trigger)
		})
	}
}

func TestKeywordIsWholeToken(t *testing.T) {
	m, err := Compile(Triggers{Keywords: []string{"заказ"}})
	require.NoError(t, err)

	assert.False(t, m.Match(normalization.Normalize("заказы")).Matched())
	assert.True(t, m.Match(normalization.Normalize("новый заказ!")).Matched())
}

func TestPatternWordBoundaryCyrillic(t *testing.T) {
	m, err := Compile(Triggers{Patterns: []string{`\bшут[а-я]*\b`}})
	require.NoError(t, err)

	assert.True(t, m.Match(normalization.Normalize("шут завтра")).Matched())
	assert.True(t, m.Match(normalization.Normalize("новый шута")).Matched())
	assert.False(t, m.Match(normalization.Normalize("они пашут")).Matched())
}

func TestMatcherWords(t *testing.T) {
	m, err := Compile(Triggers{
		Keywords: []string{"кастом"},
		Phrases:  []string{"ad request", "коммент:"},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"кастом", "ad", "request", "коммент"}, m.Words())
	assert.False(t, m.Empty())

	empty, err := Compile(Triggers{Keywords: []string{"  "}})
	require.NoError(t, err)
	assert.True(t, empty.Empty())
}

func TestVeto(t *testing.T) {
	v := NewVeto([]string{"кастом", "ad request", "Закрыт"})

	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"кастом мелиса", "кастом", true},
		{"кастома мелиса", "", false},
		{"заказы ad request", "ad request", true},
		{"заказ закрыт.", "закрыт", true},
		{"заказы", "", false},
	}

	for _, tt := range tests {
		got, found := v.Find(normalization.Normalize(tt.input))
		assert.Equal(t, tt.found, found, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}

	assert.Equal(t, []string{"кастом", "ad request", "закрыт"}, v.Entries())
	assert.Equal(t, []string{"кастом", "ad", "request", "закрыт"}, v.Words())
}
