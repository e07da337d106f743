// Package router объединяет нормализацию, классификацию и извлечение сущностей
// в один вызов для транспортного слоя.
package router

import (
	"log/slog"
	"sync/atomic"

	"intentrouter/classification"
	"intentrouter/extractors"
	"intentrouter/normalization"
)

// Result полный результат маршрутизации одного сообщения
type Result struct {
	Text      string                   `json:"text"`
	Intent    classification.IntentTag `json:"intent"`
	Entities  extractors.EntitySet     `json:"entities"`
	Prefilter PrefilterResult          `json:"prefilter"`
	Decision  *classification.Decision `json:"decision,omitempty"`
}

// Router неизменяемый маршрутизатор над одной таблицей правил
type Router struct {
	table      *classification.Table
	classifier *classification.Classifier
	logger     *slog.Logger
}

// New строит таблицу из определения. Ошибка конфигурации возвращается целиком,
// частично построенный маршрутизатор не создается.
func New(def classification.Definition, logger *slog.Logger) (*Router, error) {
	table, err := classification.Build(def)
	if err != nil {
		return nil, err
	}
	return NewFromTable(table, logger), nil
}

// NewFromTable создает маршрутизатор над уже построенной таблицей
func NewFromTable(table *classification.Table, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		table:      table,
		classifier: classification.NewClassifier(table, logger),
		logger:     logger.With("component", "router"),
	}
}

// Load загружает правила из файла (пустой путь означает встроенные правила) и строит маршрутизатор.
// maxReferences применяется, если в определении лимит не задан.
func Load(path string, maxReferences int, logger *slog.Logger) (*Router, error) {
	def := classification.DefaultDefinition()
	if path != "" {
		loaded, err := classification.LoadDefinition(path)
		if err != nil {
			return nil, err
		}
		def = loaded
	}
	if def.MaxReferences == 0 {
		def.MaxReferences = maxReferences
	}
	return New(def, logger)
}

// Table таблица правил
func (r *Router) Table() *classification.Table {
	return r.table
}

// Classify возвращает намерение для сырого текста
func (r *Router) Classify(raw string) classification.IntentTag {
	return r.classifier.Classify(normalization.Normalize(raw))
}

// Explain возвращает намерение вместе с трассировкой решения
func (r *Router) Explain(raw string) classification.Decision {
	return r.classifier.Explain(normalization.Normalize(raw))
}

// Extract извлекает сущности из сырого текста
func (r *Router) Extract(raw string) extractors.EntitySet {
	return r.table.Extractor().Extract(normalization.Normalize(raw))
}

// Route проверяет сообщение предфильтром, затем классифицирует и извлекает сущности.
// Отклоненное сообщение получает UNKNOWN и пустые сущности.
func (r *Router) Route(raw string, trace bool) Result {
	res := Result{
		Prefilter: Prefilter(raw),
		Intent:    classification.IntentUnknown,
		Entities:  extractors.EntitySet{References: []string{}, Numbers: []int{}},
	}

	text := normalization.Normalize(raw)
	res.Text = text.Value

	if !res.Prefilter.Passed {
		r.logger.Debug("message rejected by prefilter", "reason", res.Prefilter.Reason)
		return res
	}

	decision := r.classifier.Explain(text)
	res.Intent = decision.Intent
	res.Entities = r.table.Extractor().Extract(text)
	if trace {
		res.Decision = &decision
	}
	return res
}

// Holder хранит текущий маршрутизатор и позволяет атомарно заменить его при перезагрузке правил.
// Вызов, начавшийся на старом маршрутизаторе, завершается на нем же.
type Holder struct {
	current atomic.Pointer[holderEntry]
}

type holderEntry struct {
	router     *Router
	generation uint64
}

// NewHolder создает хранилище с начальным маршрутизатором
func NewHolder(r *Router) *Holder {
	h := &Holder{}
	h.current.Store(&holderEntry{router: r, generation: 1})
	return h
}

// Load возвращает текущий маршрутизатор
func (h *Holder) Load() *Router {
	return h.current.Load().router
}

// Current возвращает маршрутизатор вместе с номером его версии
func (h *Holder) Current() (*Router, uint64) {
	e := h.current.Load()
	return e.router, e.generation
}

// Swap устанавливает новый маршрутизатор и возвращает предыдущий
func (h *Holder) Swap(r *Router) *Router {
	for {
		old := h.current.Load()
		if h.current.CompareAndSwap(old, &holderEntry{router: r, generation: old.generation + 1}) {
			return old.router
		}
	}
}

// Generation номер текущей версии правил, начиная с 1
func (h *Holder) Generation() uint64 {
	return h.current.Load().generation
}
