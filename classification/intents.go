package classification

import (
	"fmt"
	"strings"
)

// IntentSchemaVersion версия набора намерений. Увеличивается при добавлении или переименовании тегов.
const IntentSchemaVersion = 2

// IntentTag намерение пользователя
type IntentTag string

const (
	IntentShootDone          IntentTag = "SHOOT_DONE"
	IntentShootReschedule    IntentTag = "SHOOT_RESCHEDULE"
	IntentShootCreate        IntentTag = "SHOOT_CREATE"
	IntentAddFiles           IntentTag = "ADD_FILES"
	IntentCreateOrder        IntentTag = "CREATE_ORDER"
	IntentCreateOrderGeneral IntentTag = "CREATE_ORDER_GENERAL"
	IntentCloseOrders        IntentTag = "CLOSE_ORDERS"
	IntentAddComment         IntentTag = "ADD_COMMENT"
	IntentGetReport          IntentTag = "GET_REPORT"
	IntentShowModelOrders    IntentTag = "SHOW_MODEL_ORDERS"
	IntentShowSummary        IntentTag = "SHOW_SUMMARY"
	IntentShowOrdersMenu     IntentTag = "SHOW_ORDERS_MENU"
	IntentShowPlanner        IntentTag = "SHOW_PLANNER"
	IntentShowAccount        IntentTag = "SHOW_ACCOUNT"
	IntentSearchByName       IntentTag = "SEARCH_BY_NAME"
	IntentUnknown            IntentTag = "UNKNOWN"
)

type intentInfo struct {
	description string
	examples    []string
}

var intentCatalog = map[IntentTag]intentInfo{
	IntentShootDone:          {"Съемка выполнена", []string{"съемка готова", "шут done мелиса"}},
	IntentShootReschedule:    {"Перенос съемки", []string{"перенести съемку мелиса", "перенос софи на 13.02"}},
	IntentShootCreate:        {"Планирование съемки", []string{"съемка мелиса завтра", "заплан шут софи 13 февраля"}},
	IntentAddFiles:           {"Добавление файлов", []string{"мелиса 30 файлов", "50 фото софи", "мелиса + 30"}},
	IntentCreateOrder:        {"Создание заказов с типом", []string{"три кастома мелиса", "ад реквест софи 2 штуки"}},
	IntentCreateOrderGeneral: {"Создание заказов (общий запрос)", []string{"новый заказ мелиса", "запрос софи"}},
	IntentCloseOrders:        {"Закрытие заказов", []string{"заказ закрыт мелиса", "кастом закрыт"}},
	IntentAddComment:         {"Добавление комментария", []string{"мелиса коммент: позвонить", "софи заказ комментарий: срочно"}},
	IntentGetReport:          {"Отчет по модели", []string{"репорт мелиса", "статистика софи"}},
	IntentShowModelOrders:    {"Заказы модели", []string{"заказы мелиса", "покажи заказы софи"}},
	IntentShowSummary:        {"Сводка", []string{"сводка", "покажи сводку"}},
	IntentShowOrdersMenu:     {"Меню заказов", []string{"заказы", "orders"}},
	IntentShowPlanner:        {"Планировщик", []string{"планировщик", "план"}},
	IntentShowAccount:        {"Учет и аккаунт", []string{"аккаунт", "бухгалтерия"}},
	IntentSearchByName:       {"Поиск по имени", []string{"мелиса", "найди софи"}},
	IntentUnknown:            {"Неизвестная команда", []string{"", "123 456"}},
}

// AllIntents возвращает все теги в порядке объявления
func AllIntents() []IntentTag {
	return []IntentTag{
		IntentShootDone, IntentShootReschedule, IntentShootCreate,
		IntentAddFiles,
		IntentCreateOrder, IntentCreateOrderGeneral, IntentCloseOrders,
		IntentAddComment,
		IntentGetReport, IntentShowModelOrders,
		IntentShowSummary, IntentShowOrdersMenu, IntentShowPlanner, IntentShowAccount,
		IntentSearchByName, IntentUnknown,
	}
}

// Valid проверяет, что тег входит в закрытый набор
func (t IntentTag) Valid() bool {
	_, ok := intentCatalog[t]
	return ok
}

// Describe возвращает описание намерения на русском
func (t IntentTag) Describe() string {
	if info, ok := intentCatalog[t]; ok {
		return info.description
	}
	return intentCatalog[IntentUnknown].description
}

// Examples возвращает примеры сообщений для намерения
func (t IntentTag) Examples() []string {
	info, ok := intentCatalog[t]
	if !ok {
		return nil
	}
	out := make([]string, len(info.examples))
	copy(out, info.examples)
	return out
}

// ParseIntent разбирает тег без учета регистра
func ParseIntent(s string) (IntentTag, error) {
	tag := IntentTag(strings.ToUpper(strings.TrimSpace(s)))
	if !tag.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, s)
	}
	return tag, nil
}
