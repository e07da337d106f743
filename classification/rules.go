package classification

import (
	"intentrouter/extractors"
	"intentrouter/matching"
)

// RuleSpec одна запись таблицы правил в том виде, в каком она хранится в конфигурации
type RuleSpec struct {
	Intent   IntentTag `json:"intent" yaml:"intent" toml:"intent"`
	Priority int       `json:"priority" yaml:"priority" toml:"priority"`

	// RequiresNumber правило срабатывает только при наличии числа в тексте
	RequiresNumber bool `json:"requires_number,omitempty" yaml:"requires_number,omitempty" toml:"requires_number,omitempty"`
	// RequiresReference правило срабатывает только при наличии ссылки на имя
	RequiresReference bool `json:"requires_reference,omitempty" yaml:"requires_reference,omitempty" toml:"requires_reference,omitempty"`
	// ExcludeWith слова и фразы, запрещающие правило
	ExcludeWith []string `json:"exclude_with,omitempty" yaml:"exclude_with,omitempty" toml:"exclude_with,omitempty"`

	matching.Triggers `yaml:",inline"`
}

// Definition полная конфигурация маршрутизатора: правила, категории и дополнительные игнорируемые слова
type Definition struct {
	Version       int                       `json:"version" yaml:"version" toml:"version"`
	MaxReferences int                       `json:"max_references,omitempty" yaml:"max_references,omitempty" toml:"max_references,omitempty"`
	Rules         []RuleSpec                `json:"rules" yaml:"rules" toml:"rules"`
	Categories    []extractors.CategorySpec `json:"categories" yaml:"categories" toml:"categories"`
	Ignore        []string                  `json:"ignore,omitempty" yaml:"ignore,omitempty" toml:"ignore,omitempty"`
}

// Маркеры комментария запрещают правила, которые иначе сработали бы на цель комментария
var commentMarkers = []string{"коммент:", "комментарий:", "comment:"}

func withCommentMarkers(words ...string) []string {
	out := make([]string, 0, len(words)+len(commentMarkers))
	out = append(out, words...)
	return append(out, commentMarkers...)
}

// orderTypeWords формы названий типов заказов
var orderTypeWords = []string{
	"кастом", "кастома", "кастомов", "custom", "customs",
	"шорт", "шорта", "шортов", "short", "shorts",
	"колл", "колла", "коллов", "call", "calls",
	"ad request", "ад реквест",
}

// closeWords формы слов закрытия и готовности
var closeWords = []string{
	"закрыт", "закрыта", "закрыты", "закрыть",
	"готов", "готова", "готовы", "выполнен", "выполнена", "выполнены",
}

// DefaultDefinition встроенная таблица правил
func DefaultDefinition() Definition {
	ordersMenuExclusions := append(append([]string{}, orderTypeWords...),
		"закрыт", "закрыта", "закрыты", "закрыть",
		"запрос", "запроса", "новый", "новая", "новые",
	)

	return Definition{
		Version:       IntentSchemaVersion,
		MaxReferences: extractors.DefaultMaxReferences,
		Rules: []RuleSpec{
			// Съемки: высший приоритет, остальные маркеры игнорируются
			{
				Intent:   IntentShootDone,
				Priority: 102,
				Triggers: matching.Triggers{
					Phrases: []string{
						"съемка выполнена", "съемка готова", "съемка готово", "съемка done",
						"съёмка выполнена", "съёмка готова", "съёмка готово", "съёмка done",
						"съемка выполнено", "съёмка выполнено",
						"шут выполнен", "шут готов", "шут done",
					},
					Patterns: []string{
						`\bсъ[её]мк[а-я]*\b.{0,40}\b(выполнен[а-я]*|готов[а-я]*|done)\b`,
						`\b(выполнен[а-я]*|готов[а-я]*|done)\b.{0,40}\bсъ[её]мк[а-я]*\b`,
					},
				},
				ExcludeWith: commentMarkers,
			},
			{
				Intent:   IntentShootReschedule,
				Priority: 101,
				Triggers: matching.Triggers{
					Keywords: []string{"перенос", "перенести", "перенеси"},
					Phrases: []string{
						"съемка перенос", "съемка перенести",
						"съёмка перенос", "съёмка перенести",
						"перенести съемку", "перенести съёмку",
					},
					Patterns: []string{
						`\bсъ[её]мк[а-я]*\b.{0,40}\bперенос\b`,
						`\bперенос[а-я]*\b.{0,40}\bсъ[её]мк[а-я]*\b`,
						`\bперенести\b.{0,40}\bсъ[её]мк[а-я]*\b`,
						`\bперенос[а-я]*\b`,
					},
				},
				ExcludeWith: withCommentMarkers(
					"кастом", "кастома", "кастомов", "custom", "customs",
					"шорт", "шорта", "шортов", "short", "shorts",
					"колл", "колла", "коллов", "call", "calls",
					"заказ", "заказа", "заказы", "заказов", "order", "orders",
					"файл", "файла", "файлы", "файлов", "file", "files",
				),
			},
			{
				Intent:   IntentShootCreate,
				Priority: 100,
				Triggers: matching.Triggers{
					Keywords: []string{
						"съемка", "съемку", "съемки", "съёмка", "съёмку", "съёмки",
						"шут", "шута",
						"заплан", "запланировать", "запланирована",
					},
					Phrases: []string{"запланировать съемку", "новая съемка"},
					Patterns: []string{
						`\bсъ[её]мк[а-я]*\b`,
						`\bшут[а-я]*\b`,
						`\bзаплан[а-я]*\b`,
					},
				},
				ExcludeWith: commentMarkers,
			},

			// Файлы: маркер плюс число
			{
				Intent:         IntentAddFiles,
				Priority:       90,
				RequiresNumber: true,
				Triggers: matching.Triggers{
					Keywords: []string{
						"файл", "файла", "файлов", "файлы", "файлик", "файлики",
						"фото", "фотки", "фотография",
						"file", "files", "photo", "photos",
						"сняла", "снято",
					},
					Phrases: []string{
						"добавить файлы", "добавить фото",
						"добавить файлов", "добавить фотки",
					},
					Patterns: []string{
						`\bфайл[а-я]*\b`,
						`\bфото[а-я]*\b`,
						`\bfiles?\b`,
						`\bphotos?\b`,
						`\bснял[а-я]*\b`,
						`\+\s*\d+`,
					},
				},
				ExcludeWith: commentMarkers,
			},

			// Заказы с типом
			{
				Intent:   IntentCreateOrder,
				Priority: 80,
				Triggers: matching.Triggers{
					Keywords: []string{
						"кастом", "кастома", "кастомов", "кастомчик", "custom", "customs",
						"шорт", "шорта", "шортов", "шортик", "шортс", "short", "shorts",
						"колл", "колла", "коллов", "коллик", "call", "calls",
					},
					Phrases: []string{
						"ad request", "ad requests",
						"ад реквест", "ад реквеста", "ад реквестов",
						"адреквест",
					},
					Patterns: []string{
						`\bка?сто?м[а-я]*\b`,
						`\bcustoms?\b`,
						`\bшорт[а-я]*\b`,
						`\bshorts?\b`,
						`\bколл[а-я]*\b`,
						`\bcalls?\b`,
						`\b(ad\s*request|ад\s*реквест)[а-я]*\b`,
					},
				},
				ExcludeWith: withCommentMarkers(closeWords...),
			},

			// Заказы без типа
			{
				Intent:   IntentCreateOrderGeneral,
				Priority: 70,
				Triggers: matching.Triggers{
					Keywords: []string{"запрос", "запроса", "запросы", "запросов"},
					Phrases: []string{
						"новый заказ", "новый запрос",
						"создать заказ", "создать запрос",
					},
					Patterns: []string{
						`\bзапрос[а-я]*\b`,
						`\bновый\s+заказ\b`,
					},
				},
				ExcludeWith: withCommentMarkers("закрыт", "закрыта", "закрыты", "закрыть"),
			},

			// Закрытие заказов
			{
				Intent:   IntentCloseOrders,
				Priority: 60,
				Triggers: matching.Triggers{
					Keywords: []string{"закрыт", "закрыта", "закрыты", "закрыть", "закрытие"},
					Phrases: []string{
						"заказ закрыт", "заказ готов",
						"кастом закрыт", "шорт закрыт", "колл закрыт",
					},
					Patterns: []string{`\bзакрыт[а-я]*\b`},
				},
				ExcludeWith: commentMarkers,
			},

			// Комментарий
			{
				Intent:   IntentAddComment,
				Priority: 55,
				Triggers: matching.Triggers{
					Phrases: commentMarkers,
					Patterns: []string{
						`\bкоммент\s*:`,
						`\bкомментарий\s*:`,
						`\bcomment\s*:`,
					},
				},
			},

			// Действия с моделью
			{
				Intent:   IntentGetReport,
				Priority: 50,
				Triggers: matching.Triggers{
					Keywords: []string{
						"репорт", "репорта", "репортов",
						"отчет", "отчета", "отчетов", "отчёт", "отчёта",
						"статистика", "статистику", "стат", "стата",
						"report", "reports", "stats", "statistics",
					},
					Patterns: []string{
						`\b(репорт|отч[её]т)[а-я]*\b`,
						`\bстат[а-я]*\b`,
						`\breports?\b`,
						`\bstats?\b`,
						`\bstatistics?\b`,
					},
				},
			},
			{
				Intent:            IntentShowModelOrders,
				Priority:          50,
				RequiresReference: true,
				Triggers: matching.Triggers{
					Keywords: []string{"заказы", "заказов", "orders"},
					Patterns: []string{`\bзаказ[а-я]*\b`, `\borders?\b`},
				},
				ExcludeWith: ordersMenuExclusions,
			},

			// Меню
			{
				Intent:   IntentShowSummary,
				Priority: 40,
				Triggers: matching.Triggers{
					Keywords: []string{"сводка", "сводку", "сводки", "сводк", "summary"},
					Patterns: []string{`\bсводк[а-я]*\b`, `\bsummary\b`},
				},
			},
			{
				Intent:   IntentShowOrdersMenu,
				Priority: 40,
				Triggers: matching.Triggers{
					Keywords: []string{"заказы", "заказов", "заказ", "orders", "order"},
					Patterns: []string{`\bзаказ[а-я]*\b`, `\borders?\b`},
				},
				ExcludeWith: ordersMenuExclusions,
			},
			{
				Intent:   IntentShowPlanner,
				Priority: 40,
				Triggers: matching.Triggers{
					Keywords: []string{
						"планировщик", "планировщика", "планер",
						"план", "плана", "планов", "планирование",
						"planner", "schedule", "planning",
					},
					Patterns: []string{`\bплан[а-я]*\b`, `\bplann?[a-z]*\b`, `\bschedul[a-z]*\b`},
				},
				ExcludeWith: []string{"съемка", "съемку", "съемки", "съёмка", "съёмку", "съёмки", "шут", "шута"},
			},
			{
				Intent:   IntentShowAccount,
				Priority: 40,
				Triggers: matching.Triggers{
					Keywords: []string{
						"аккаунт", "аккаунта", "аккаунтов", "акк",
						"бухгалтерия", "бух",
						"account", "accounts", "accounting",
					},
					Patterns: []string{`\bакк[а-я]*\b`, `\bбух[а-я]*\b`, `\baccount[a-z]*\b`},
				},
			},

			// Явный поиск; без имени не срабатывает и уходит в общий fallback
			{
				Intent:            IntentSearchByName,
				Priority:          10,
				RequiresReference: true,
				Triggers: matching.Triggers{
					Keywords: []string{"найди", "найти", "поиск", "ищи", "find", "search"},
				},
			},
		},
		Categories: extractors.DefaultCategories(),
		Ignore:     defaultIgnore(),
	}
}

// defaultIgnore служебные слова, которых нет в правилах, но которые не могут быть именем
func defaultIgnore() []string {
	return []string{
		// Глаголы команд
		"добавить", "добавь", "добавил", "добавила", "добавлю",
		"создай", "создать", "создал", "создала", "создам",
		"сделай", "сделать", "сделал", "сделала", "сделаю",
		"покажи", "показать", "показал", "покажу", "покази",
		"дай", "давай", "дать",
		"открой", "открыть",
		"посмотри", "посмотреть",
		"новый", "новая", "новое", "новые",
		"add", "create", "make", "show", "give", "open", "view", "see",

		// Предлоги и союзы
		"на", "в", "с", "по", "для", "из", "к", "о", "у", "за", "от", "до",
		"и", "или", "но", "а",
		"on", "in", "with", "by", "for", "from", "to", "about", "at",
		"and", "or", "but",

		// Местоимения
		"мне", "мой", "моя", "мое", "мои", "меня",
		"я", "ты", "он", "она", "оно", "мы", "вы", "они",
		"me", "my", "mine", "i", "you", "he", "she", "it", "we", "they",

		// Время
		"сегодня", "вчера", "завтра", "послезавтра", "позавчера",
		"today", "yesterday", "tomorrow",
		"неделя", "месяц", "год", "week", "month", "year",
		"января", "февраля", "марта", "апреля", "мая", "июня",
		"июля", "августа", "сентября", "октября", "ноября", "декабря",

		// Короткие ответы и приветствия
		"привет", "спасибо", "пожалуйста", "ок", "да", "нет",
		"hi", "hello", "thanks", "ok", "yes", "no",

		// Прочее
		"штук", "штуки", "штука", "шт",
	}
}
