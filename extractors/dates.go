package extractors

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/olebedev/when/rules/ru"

	"intentrouter/normalization"
)

// relativeDays относительные даты и их смещение в днях
var relativeDays = map[string]int{
	"позавчера":   -2,
	"вчера":       -1,
	"сегодня":     0,
	"завтра":      1,
	"послезавтра": 2,
	"yesterday":   -1,
	"today":       0,
	"tomorrow":    1,
}

var monthsRU = map[string]time.Month{
	"января":   time.January,
	"февраля":  time.February,
	"марта":    time.March,
	"апреля":   time.April,
	"мая":      time.May,
	"июня":     time.June,
	"июля":     time.July,
	"августа":  time.August,
	"сентября": time.September,
	"октября":  time.October,
	"ноября":   time.November,
	"декабря":  time.December,

	"январь":   time.January,
	"февраль":  time.February,
	"март":     time.March,
	"апрель":   time.April,
	"май":      time.May,
	"июнь":     time.June,
	"июль":     time.July,
	"август":   time.August,
	"сентябрь": time.September,
	"октябрь":  time.October,
	"ноябрь":   time.November,
	"декабрь":  time.December,
}

// Шаблоны компилируются один раз при загрузке пакета
var (
	numericDateRe = regexp2.MustCompile(`\b(\d{1,2})[./](\d{1,2})\b`, regexp2.None)
	monthDateRe   = regexp2.MustCompile(
		`\b(\d{1,2})\s+(января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря|`+
			`январь|февраль|март|апрель|май|июнь|июль|август|сентябрь|октябрь|ноябрь|декабрь)\b`,
		regexp2.IgnoreCase,
	)
)

// dateParser разбор свободных дат ("в следующий вторник", "next friday").
// Parse не изменяет состояние парсера, поэтому один экземпляр разделяется между горутинами.
var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(ru.All...)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// rolloverDays даты, ушедшие в прошлое дальше этого порога, относятся к следующему году
const rolloverDays = 30

// detectionBase фиксированная опорная дата: поиск фрагмента не должен зависеть от текущего времени
var detectionBase = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// DateText возвращает фрагмент текста с датой или пустую строку.
// Сначала явные формы, затем свободный разбор.
func DateText(text normalization.Text) string {
	if explicit := explicitDateText(text); explicit != "" {
		return explicit
	}
	if text.Empty() {
		return ""
	}

	r, err := dateParser.Parse(text.Value, detectionBase)
	if err != nil || r == nil {
		return ""
	}
	return strings.TrimSpace(r.Text)
}

// explicitDateText явные формы даты: относительные слова, DD.MM и DD/MM, "DD месяца".
// Только слова этих форм исключаются из ссылок: свободный разбор принимает
// за дату и обычные имена ("may", "june").
func explicitDateText(text normalization.Text) string {
	if text.Empty() {
		return ""
	}

	for _, word := range []string{"послезавтра", "позавчера", "завтра", "сегодня", "вчера", "tomorrow", "today", "yesterday"} {
		if text.HasToken(word) {
			return word
		}
	}

	if m, _ := numericDateRe.FindStringMatch(text.Value); m != nil {
		return m.String()
	}
	if m, _ := monthDateRe.FindStringMatch(text.Value); m != nil {
		return m.String()
	}
	return ""
}

// ResolveDate превращает фрагмент из DateText в дату относительно base.
// Дата без года, оказавшаяся более чем на 30 дней в прошлом, переносится на следующий год.
func ResolveDate(dateText string, base time.Time) (time.Time, bool) {
	dateText = normalization.Key(dateText)
	if dateText == "" {
		return time.Time{}, false
	}

	day := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())

	if offset, ok := relativeDays[dateText]; ok {
		return day.AddDate(0, 0, offset), true
	}

	if m, _ := numericDateRe.FindStringMatch(dateText); m != nil && m.String() == dateText {
		groups := m.Groups()
		d, _ := strconv.Atoi(groups[1].String())
		mon, _ := strconv.Atoi(groups[2].String())
		return calendarDate(day, d, time.Month(mon))
	}

	if m, _ := monthDateRe.FindStringMatch(dateText); m != nil && m.String() == dateText {
		groups := m.Groups()
		d, _ := strconv.Atoi(groups[1].String())
		return calendarDate(day, d, monthsRU[groups[2].String()])
	}

	r, err := dateParser.Parse(dateText, base)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	t := r.Time.In(base.Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, base.Location()), true
}

func calendarDate(today time.Time, d int, month time.Month) (time.Time, bool) {
	if month < time.January || month > time.December || d < 1 {
		return time.Time{}, false
	}

	result := time.Date(today.Year(), month, d, 0, 0, 0, 0, today.Location())
	// time.Date нормализует 31.02 в март, такие даты некорректны
	if result.Day() != d || result.Month() != month {
		return time.Time{}, false
	}

	if result.Before(today.AddDate(0, 0, -rolloverDays)) {
		result = result.AddDate(1, 0, 0)
	}
	return result, true
}
