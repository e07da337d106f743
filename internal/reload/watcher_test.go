package reload

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentrouter/classification"
	"intentrouter/router"
)

const baseRules = `version: 1
rules:
  - intent: SHOW_ORDERS_MENU
    priority: 40
    keywords: [заказы]
`

const summaryRules = `version: 2
rules:
  - intent: SHOW_ORDERS_MENU
    priority: 40
    keywords: [заказы]
  - intent: SHOW_SUMMARY
    priority: 40
    keywords: [сводка]
`

const brokenRules = `version: 2
rules:
  - intent: SHOW_SUMMARY
    priority: 40
    patterns: ['(сводка']
`

// writeRules заменяет файл атомарно, как это делают редакторы
func writeRules(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func newHolder(t *testing.T, path string) *router.Holder {
	t.Helper()
	r, err := router.Load(path, 3, nil)
	require.NoError(t, err)
	return router.NewHolder(r)
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New("", 3, nil, nil)
	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	writeRules(t, path, baseRules)
	holder := newHolder(t, path)

	w, err := New(path, 3, holder, nil)
	require.NoError(t, err)

	assert.Equal(t, classification.IntentSearchByName, holder.Load().Classify("сводка"))

	writeRules(t, path, summaryRules)
	require.NoError(t, w.Reload())
	assert.Equal(t, uint64(2), holder.Generation())
	assert.Equal(t, classification.IntentShowSummary, holder.Load().Classify("сводка"))
	assert.Equal(t, 2, holder.Load().Table().Version())

	writeRules(t, path, brokenRules)
	err = w.Reload()
	assert.ErrorIs(t, err, classification.ErrInvalidPattern)
	assert.Equal(t, uint64(2), holder.Generation())
	assert.Equal(t, classification.IntentShowSummary, holder.Load().Classify("сводка"))

	assert.Equal(t, Stats{Reloads: 1, Failures: 1}, w.Stats())
}

func TestWatcher_SwapsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	writeRules(t, path, baseRules)
	holder := newHolder(t, path)

	w, err := New(path, 3, holder, nil)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	// Повторный запуск ничего не делает
	require.NoError(t, w.Start(ctx))

	// Посторонние файлы в каталоге игнорируются
	writeRules(t, filepath.Join(filepath.Dir(path), "notes.txt"), "заметки")

	writeRules(t, path, summaryRules)
	require.Eventually(t, func() bool {
		return holder.Load().Classify("сводка") == classification.IntentShowSummary
	}, 5*time.Second, 10*time.Millisecond)
	generation := holder.Generation()
	assert.GreaterOrEqual(t, generation, uint64(2))

	writeRules(t, path, brokenRules)
	require.Eventually(t, func() bool {
		return w.Stats().Failures >= 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, classification.IntentShowSummary, holder.Load().Classify("сводка"))

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
