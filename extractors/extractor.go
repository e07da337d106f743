package extractors

import (
	"intentrouter/normalization"
)

// EntitySet сущности, извлеченные из одного сообщения.
// Срезы всегда не nil, чтобы в JSON пустое значение было [] а не null.
type EntitySet struct {
	PrimaryReference string   `json:"primary_reference,omitempty"`
	References       []string `json:"references"`
	Numbers          []int    `json:"numbers"`
	Category         string   `json:"category,omitempty"`
	DateText         string   `json:"date_text,omitempty"`
	CommentText      string   `json:"comment_text,omitempty"`
	CommentTarget    string   `json:"comment_target,omitempty"`
}

// HasReference есть ли хотя бы одна ссылка на имя
func (e EntitySet) HasReference() bool {
	return len(e.References) > 0
}

// HasNumbers есть ли хотя бы одно число
func (e EntitySet) HasNumbers() bool {
	return len(e.Numbers) > 0
}

// FirstNumber первое число слева
func (e EntitySet) FirstNumber() (int, bool) {
	if len(e.Numbers) == 0 {
		return 0, false
	}
	return e.Numbers[0], true
}

// Extractor извлекает сущности, используя собственные словари.
// Не зависит от выбранного намерения и не изменяется после создания.
type Extractor struct {
	ignore        *Vocabulary
	categories    *CategoryVocabulary
	maxReferences int
}

// NewExtractor создает экстрактор; maxReferences < 1 заменяется значением по умолчанию
func NewExtractor(ignore *Vocabulary, categories *CategoryVocabulary, maxReferences int) *Extractor {
	if maxReferences < 1 {
		maxReferences = DefaultMaxReferences
	}
	return &Extractor{
		ignore:        ignore,
		categories:    categories,
		maxReferences: maxReferences,
	}
}

// Extract извлекает полный набор сущностей. Никогда не возвращает ошибку:
// то, что не удалось извлечь, остается пустым.
func (e *Extractor) Extract(text normalization.Text) EntitySet {
	entities := EntitySet{
		References: []string{},
		Numbers:    []int{},
	}
	if text.Empty() {
		return entities
	}

	entities.Numbers = Numbers(text)
	entities.Category = e.categories.Detect(text)
	entities.DateText = DateText(text)
	entities.CommentText, entities.CommentTarget = Comment(text)
	entities.References = collectReferences(text, explicitDateText(text), e.ignore, e.maxReferences)
	if len(entities.References) > 0 {
		entities.PrimaryReference = entities.References[0]
	}

	return entities
}

// HasReference быстрая проверка наличия ссылки без полного извлечения
func (e *Extractor) HasReference(text normalization.Text) bool {
	if text.Empty() {
		return false
	}
	return len(collectReferences(text, explicitDateText(text), e.ignore, 1)) > 0
}

// Ignore словарь игнорируемых слов
func (e *Extractor) Ignore() *Vocabulary {
	return e.ignore
}

// Categories словарь категорий
func (e *Extractor) Categories() *CategoryVocabulary {
	return e.categories
}

// MaxReferences максимальное число ссылок
func (e *Extractor) MaxReferences() int {
	return e.maxReferences
}
