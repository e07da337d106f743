package classification

import (
	"log/slog"

	"intentrouter/extractors"
	"intentrouter/matching"
	"intentrouter/normalization"
)

// KindFallback решение принято без правила
const KindFallback matching.Kind = "fallback"

// Decision результат классификации вместе с трассировкой
type Decision struct {
	Intent IntentTag `json:"intent"`
	// Rule позиция сработавшего правила в объявлении, -1 для fallback
	Rule      int           `json:"rule"`
	Priority  int           `json:"priority"`
	MatchKind matching.Kind `json:"match_kind"`
	Trigger   string        `json:"trigger,omitempty"`
	// Vetoed правила, отброшенные словом запрета, в виде "INTENT:слово"
	Vetoed []string `json:"vetoed,omitempty"`
	// Gated правила, совпавшие, но не прошедшие проверку числа или ссылки
	Gated []string `json:"gated,omitempty"`
}

// Classifier выбирает ровно одно намерение по таблице правил.
// Не хранит состояния между вызовами и безопасен для конкурентного использования.
type Classifier struct {
	table  *Table
	logger *slog.Logger
}

// NewClassifier создает классификатор над построенной таблицей
func NewClassifier(table *Table, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		table:  table,
		logger: logger.With("component", "classifier"),
	}
}

// Table таблица правил классификатора
func (c *Classifier) Table() *Table {
	return c.table
}

// Classify возвращает намерение для нормализованного текста. Никогда не завершается ошибкой.
func (c *Classifier) Classify(text normalization.Text) IntentTag {
	return c.Explain(text).Intent
}

// Explain классифицирует текст и возвращает трассировку решения.
// Правила проверяются в порядке таблицы: запрет, совпадение триггера, проверка числа, проверка ссылки.
// Побеждает первое прошедшее правило.
func (c *Classifier) Explain(text normalization.Text) Decision {
	if text.Empty() {
		return Decision{Intent: IntentUnknown, Rule: -1, MatchKind: KindFallback}
	}

	extractor := c.table.Extractor()
	var (
		numberChecked, hasNumber bool
		refChecked, hasRef       bool
	)
	numberPresent := func() bool {
		if !numberChecked {
			hasNumber, numberChecked = extractors.HasNumber(text), true
		}
		return hasNumber
	}
	referencePresent := func() bool {
		if !refChecked {
			hasRef, refChecked = extractor.HasReference(text), true
		}
		return hasRef
	}

	var d Decision
	for _, r := range c.table.Rules() {
		if word, vetoed := r.veto.Find(text); vetoed {
			d.Vetoed = append(d.Vetoed, string(r.Spec.Intent)+":"+word)
			continue
		}

		hit := r.matcher.Match(text)
		if !hit.Matched() {
			continue
		}

		if r.Spec.RequiresNumber && !numberPresent() {
			d.Gated = append(d.Gated, string(r.Spec.Intent)+":number")
			continue
		}
		if r.Spec.RequiresReference && !referencePresent() {
			d.Gated = append(d.Gated, string(r.Spec.Intent)+":reference")
			continue
		}

		d.Intent = r.Spec.Intent
		d.Rule = r.Index
		d.Priority = r.Spec.Priority
		d.MatchKind = hit.Kind
		d.Trigger = hit.Trigger
		c.log(d)
		return d
	}

	d.Rule = -1
	d.MatchKind = KindFallback
	if referencePresent() {
		d.Intent = IntentSearchByName
	} else {
		d.Intent = IntentUnknown
	}
	c.log(d)
	return d
}

func (c *Classifier) log(d Decision) {
	c.logger.Debug("intent classified",
		"intent", d.Intent,
		"rule", d.Rule,
		"match_kind", d.MatchKind,
		"trigger", d.Trigger,
	)
}
