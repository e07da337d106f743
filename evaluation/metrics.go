// Package evaluation оценивает качество таблицы правил на размеченном корпусе сообщений.
package evaluation

import (
	"fmt"
	"sort"
	"strings"

	"intentrouter/classification"
)

// Classifier источник предсказаний. *router.Router удовлетворяет этому интерфейсу.
type Classifier interface {
	Classify(raw string) classification.IntentTag
}

// Sample размеченное сообщение
type Sample struct {
	Text     string                   `json:"text"`
	Expected classification.IntentTag `json:"expected"`
}

// Mismatch сообщение, классифицированное не так, как размечено
type Mismatch struct {
	Text     string                   `json:"text"`
	Expected classification.IntentTag `json:"expected"`
	Got      classification.IntentTag `json:"got"`
}

// IntentMetrics метрики одного намерения (один против всех)
type IntentMetrics struct {
	Intent        classification.IntentTag `json:"intent"`
	Support       int                      `json:"support"`
	TruePositive  int                      `json:"true_positive"`
	FalsePositive int                      `json:"false_positive"`
	FalseNegative int                      `json:"false_negative"`
	Precision     float64                  `json:"precision"`
	Recall        float64                  `json:"recall"`
	F1Score       float64                  `json:"f1_score"`
}

// Report итог оценки
type Report struct {
	Total      int             `json:"total"`
	Correct    int             `json:"correct"`
	Accuracy   float64         `json:"accuracy"`
	MacroF1    float64         `json:"macro_f1"`
	Intents    []IntentMetrics `json:"intents"`
	Mismatches []Mismatch      `json:"mismatches"`
}

// Evaluate классифицирует каждый пример и считает метрики
func Evaluate(c Classifier, samples []Sample) Report {
	report := Report{
		Total:      len(samples),
		Intents:    []IntentMetrics{},
		Mismatches: []Mismatch{},
	}

	counts := make(map[classification.IntentTag]*IntentMetrics)
	get := func(tag classification.IntentTag) *IntentMetrics {
		m, ok := counts[tag]
		if !ok {
			m = &IntentMetrics{Intent: tag}
			counts[tag] = m
		}
		return m
	}

	for _, s := range samples {
		got := c.Classify(s.Text)
		expected := get(s.Expected)
		expected.Support++

		if got == s.Expected {
			report.Correct++
			expected.TruePositive++
			continue
		}

		expected.FalseNegative++
		get(got).FalsePositive++
		report.Mismatches = append(report.Mismatches, Mismatch{Text: s.Text, Expected: s.Expected, Got: got})
	}

	if report.Total > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Total)
	}

	for _, m := range counts {
		calculate(m)
		report.Intents = append(report.Intents, *m)
	}
	sort.Slice(report.Intents, func(i, j int) bool {
		return report.Intents[i].Intent < report.Intents[j].Intent
	})

	// Макро-F1 считается только по намерениям, которые есть в разметке
	supported := 0
	for _, m := range report.Intents {
		if m.Support > 0 {
			report.MacroF1 += m.F1Score
			supported++
		}
	}
	if supported > 0 {
		report.MacroF1 /= float64(supported)
	}

	return report
}

// calculate precision, recall и F1 по счетчикам
func calculate(m *IntentMetrics) {
	tp := float64(m.TruePositive)
	fp := float64(m.FalsePositive)
	fn := float64(m.FalseNegative)

	// Precision: TP / (TP + FP)
	if tp+fp > 0 {
		m.Precision = tp / (tp + fp)
	}

	// Recall: TP / (TP + FN)
	if tp+fn > 0 {
		m.Recall = tp / (tp + fn)
	}

	// F1: гармоническое среднее
	if m.Precision+m.Recall > 0 {
		m.F1Score = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
}

// String краткое текстовое представление отчета
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Accuracy: %.4f (%d/%d), Macro F1: %.4f\n", r.Accuracy, r.Correct, r.Total, r.MacroF1)
	for _, m := range r.Intents {
		fmt.Fprintf(&b, "%-22s support=%-3d P=%.2f R=%.2f F1=%.2f\n",
			m.Intent, m.Support, m.Precision, m.Recall, m.F1Score)
	}
	return b.String()
}
