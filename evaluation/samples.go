package evaluation

import "intentrouter/classification"

// DefaultSamples регрессионный корпус для встроенной таблицы правил
func DefaultSamples() []Sample {
	return []Sample{
		// Базовые сценарии
		{"три кастома мелиса", classification.IntentCreateOrder},
		{"заказы", classification.IntentShowOrdersMenu},
		{"три кастома заказы мелиса", classification.IntentCreateOrder},
		{"мелиса 30 файлов", classification.IntentAddFiles},
		{"мелиса файлов", classification.IntentSearchByName},
		{"", classification.IntentUnknown},

		// Заказы с типом
		{"кастом мелиса", classification.IntentCreateOrder},
		{"5 кастомов", classification.IntentCreateOrder},
		{"custom melissa", classification.IntentCreateOrder},
		{"два шорта", classification.IntentCreateOrder},
		{"call sophia", classification.IntentCreateOrder},
		{"ad request софи", classification.IntentCreateOrder},
		{"заказы шорт мелиса", classification.IntentCreateOrder},
		{"новый заказ мелиса", classification.IntentCreateOrderGeneral},
		{"заказ закрыт мелиса", classification.IntentCloseOrders},

		// Файлы
		{"добавь 100 файлов мелиса", classification.IntentAddFiles},
		{"melissa 50 files", classification.IntentAddFiles},
		{"30 photos sophia", classification.IntentAddFiles},
		{"файлы для мелисы", classification.IntentSearchByName},

		// Модель
		{"репорт мелиса", classification.IntentGetReport},
		{"статистику покажи", classification.IntentGetReport},
		{"stats sophia", classification.IntentGetReport},
		{"заказы мелиса", classification.IntentShowModelOrders},
		{"мелиса коммент: позвонить", classification.IntentAddComment},
		{"найди софи", classification.IntentSearchByName},

		// Меню
		{"сводка", classification.IntentShowSummary},
		{"summary", classification.IntentShowSummary},
		{"покажи заказы", classification.IntentShowOrdersMenu},
		{"планировщик", classification.IntentShowPlanner},
		{"planning", classification.IntentShowPlanner},
		{"аккаунт", classification.IntentShowAccount},
		{"акк", classification.IntentShowAccount},

		// Съемки
		{"съемка готова", classification.IntentShootDone},
		{"перенести съемку мелиса", classification.IntentShootReschedule},
		{"съемка мелиса завтра", classification.IntentShootCreate},

		{"123 456", classification.IntentUnknown},
	}
}
