package classification

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentrouter/extractors"
	"intentrouter/matching"
	"intentrouter/normalization"
)

func minimalDefinition() Definition {
	return Definition{
		Version:       2,
		MaxReferences: 2,
		Rules: []RuleSpec{
			{
				Intent:         IntentAddFiles,
				Priority:       90,
				RequiresNumber: true,
				Triggers:       matching.Triggers{Keywords: []string{"файлов", "фото"}},
				ExcludeWith:    []string{"коммент:"},
			},
			{
				Intent:   IntentShowOrdersMenu,
				Priority: 40,
				Triggers: matching.Triggers{
					Keywords: []string{"заказы"},
					Patterns: []string{`\borders?\b`},
				},
			},
		},
		Categories: []extractors.CategorySpec{
			{
				Name:     "custom",
				Display:  "Кастом",
				Priority: 30,
				Triggers: matching.Triggers{Keywords: []string{"кастом", "кастома"}},
			},
		},
		Ignore: []string{"покажи"},
	}
}

func TestLoadDefinition_Formats(t *testing.T) {
	want := minimalDefinition()

	for _, name := range []string{"minimal.yaml", "minimal.toml", "minimal.json"} {
		t.Run(name, func(t *testing.T) {
			got, err := LoadDefinition(filepath.Join("testdata", name))
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("LoadDefinition(%s) mismatch (-want +got):\n%s", name, diff)
			}
		})
	}
}

func TestLoadDefinition_Errors(t *testing.T) {
	_, err := LoadDefinition(filepath.Join("testdata", "unknown_field.yaml"))
	assert.ErrorContains(t, err, "keyword")

	_, err = LoadDefinition(filepath.Join("testdata", "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadDefinition("rules.ini")
	assert.ErrorContains(t, err, "unsupported rules file extension")

	_, err = ParseDefinition([]byte(`{"rules": [], "extra": 1}`), FormatJSON)
	assert.Error(t, err)

	_, err = ParseDefinition([]byte("rules = []\nextra = 1\n"), FormatTOML)
	assert.ErrorContains(t, err, "extra")

	_, err = ParseDefinition(nil, "xml")
	assert.Error(t, err)
}

func TestLoadTable(t *testing.T) {
	t.Run("builtin when path is empty", func(t *testing.T) {
		table, err := LoadTable("")
		require.NoError(t, err)
		assert.Len(t, table.Rules(), len(DefaultDefinition().Rules))
	})

	t.Run("from file", func(t *testing.T) {
		table, err := LoadTable(filepath.Join("testdata", "minimal.yaml"))
		require.NoError(t, err)

		c := NewClassifier(table, nil)
		assert.Equal(t, IntentAddFiles, c.Classify(normalization.Normalize("мелиса 30 файлов")))
		assert.Equal(t, IntentShowOrdersMenu, c.Classify(normalization.Normalize("Orders")))
		assert.Equal(t, IntentSearchByName, c.Classify(normalization.Normalize("покажи мелиса")))
		assert.Equal(t, 2, table.Extractor().MaxReferences())
	})

	t.Run("invalid pattern is fatal", func(t *testing.T) {
		table, err := LoadTable(filepath.Join("testdata", "invalid_pattern.yaml"))
		assert.ErrorIs(t, err, ErrInvalidPattern)
		assert.Nil(t, table)
	})
}

func TestEncodeDefinition_RoundTrip(t *testing.T) {
	def := DefaultDefinition()
	samples := []string{
		"три кастома мелиса", "заказы", "три кастома заказы мелиса",
		"мелиса 30 файлов", "мелиса файлов", "",
	}

	builtin, err := Build(def)
	require.NoError(t, err)
	want := NewClassifier(builtin, nil)

	for _, format := range []string{FormatYAML, FormatJSON, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeDefinition(&buf, def, format))

			path := filepath.Join(t.TempDir(), "rules."+format)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			decoded, err := LoadDefinition(path)
			require.NoError(t, err)
			if diff := cmp.Diff(def, decoded, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			table, err := Build(decoded)
			require.NoError(t, err)
			got := NewClassifier(table, nil)
			for _, s := range samples {
				text := normalization.Normalize(s)
				assert.Equal(t, want.Classify(text), got.Classify(text), s)
			}
		})
	}
}
