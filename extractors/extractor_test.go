package extractors

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentrouter/normalization"
)

// testIgnoreWords слова команд, достаточные для проверок экстрактора
var testIgnoreWords = []string{
	"файл", "файла", "файлов", "файлы", "фото", "заказ", "заказы",
	"репорт", "покажи", "добавь", "для", "и", "or", "штуки", "коммент",
}

func newTestExtractor(t *testing.T, maxReferences int) *Extractor {
	t.Helper()
	categories, err := NewCategoryVocabulary(DefaultCategories())
	require.NoError(t, err)
	ignore := NewVocabulary(testIgnoreWords, categories.Words())
	return NewExtractor(ignore, categories, maxReferences)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"три кастома мелиса", []int{3}},
		{"3 кастома мелиса 50 файлов", []int{3, 50}},
		{"100 200 300", []int{100, 200, 300}},
		{"два шорта и 5 коллов", []int{2, 5}},
		{"three customs", []int{3}},
		{"мелиса кастом", []int{}},
		{"30шт мелиса", []int{}},
		{"мелиса + 30", []int{30}},
		{"съемка 13.02", []int{13, 2}},
		{"99999999999999999999 файлов", []int{}},
		{"", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			text := normalization.Normalize(tt.input)
			got := Numbers(text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Numbers(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			assert.Equal(t, len(tt.want) > 0, HasNumber(text))
		})
	}
}

func TestCategoryDetect(t *testing.T) {
	categories, err := NewCategoryVocabulary(DefaultCategories())
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
	}{
		{"кастом мелиса", "custom"},
		{"три кастома", "custom"},
		{"шорт софи", "short"},
		{"колл мелиса", "call"},
		{"ad request софи", "ad request"},
		{"ад реквест мелиса 2 штуки", "ad request"},
		// фраза проверяется раньше ключевого слова другой категории
		{"кастом ад реквест", "ad request"},
		// ключевое слово раньше шаблона, даже если шаблон у категории с большим приоритетом
		{"шорт кстомчик", "short"},
		{"мелиса 30 файлов", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, categories.Detect(normalization.Normalize(tt.input)))
		})
	}

	assert.Equal(t, "Кастом", categories.DisplayName("custom"))
	assert.Equal(t, "Ad Request", categories.DisplayName("ad request"))
	assert.Equal(t, "unknown", categories.DisplayName("unknown"))
	assert.Equal(t, []string{"ad request", "custom", "short", "call"}, categories.Names())
}

func TestCategoryVocabularyValidation(t *testing.T) {
	_, err := NewCategoryVocabulary([]CategorySpec{{Name: "custom"}, {Name: "custom"}})
	assert.Error(t, err)

	_, err = NewCategoryVocabulary([]CategorySpec{{Name: "x", Priority: -1}})
	assert.Error(t, err)

	specs := []CategorySpec{{Name: "x"}}
	specs[0].Patterns = []string{"(["}
	_, err = NewCategoryVocabulary(specs)
	assert.Error(t, err)
}

func TestCategoryTieBreakByDeclaration(t *testing.T) {
	specs := []CategorySpec{{Name: "first", Priority: 5}, {Name: "second", Priority: 5}}
	specs[0].Keywords = []string{"общее"}
	specs[1].Keywords = []string{"общее"}

	categories, err := NewCategoryVocabulary(specs)
	require.NoError(t, err)
	assert.Equal(t, "first", categories.Detect(normalization.Normalize("общее")))
}

func TestExtract(t *testing.T) {
	extractor := newTestExtractor(t, DefaultMaxReferences)

	tests := []struct {
		name  string
		input string
		want  EntitySet
	}{
		{
			name:  "заказ с типом",
			input: "три кастома мелиса",
			want: EntitySet{
				PrimaryReference: "мелиса",
				References:       []string{"мелиса"},
				Numbers:          []int{3},
				Category:         "custom",
			},
		},
		{
			name:  "файлы",
			input: "мелиса 30 файлов",
			want: EntitySet{
				PrimaryReference: "мелиса",
				References:       []string{"мелиса"},
				Numbers:          []int{30},
			},
		},
		{
			name:  "ad request",
			input: "ad request софи 2 штуки",
			want: EntitySet{
				PrimaryReference: "софи",
				References:       []string{"софи"},
				Numbers:          []int{2},
				Category:         "ad request",
			},
		},
		{
			name:  "месяц без числа это имя",
			input: "may 30 файлов",
			want: EntitySet{
				PrimaryReference: "may",
				References:       []string{"may"},
				Numbers:          []int{30},
			},
		},
		{
			name:  "слова команды не ссылки",
			input: "кастом заказ",
			want: EntitySet{
				References: []string{},
				Numbers:    []int{},
				Category:   "custom",
			},
		},
		{
			name:  "пусто",
			input: "",
			want: EntitySet{
				References: []string{},
				Numbers:    []int{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(normalization.Normalize(tt.input))
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(EntitySet{}, "DateText")); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestExtractReferences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  []string
	}{
		{"два имени", "мелиса и софи", 3, []string{"мелиса", "софи"}},
		{"три имени", "кастом для мелиса софи анна", 3, []string{"мелиса", "софи", "анна"}},
		{"ограничение", "мелиса софи анна лиза", 2, []string{"мелиса", "софи"}},
		{"союзы пропускаются", "мелиса и софи or анна", 3, []string{"мелиса", "софи", "анна"}},
		{"повторы", "мелиса мелиса софи", 3, []string{"мелиса", "софи"}},
		{"дата не ссылка", "мелиса съемка 13.02 завтра", 3, []string{"мелиса", "съемка"}},
		{"текст комментария не ссылка", "мелиса коммент: позвонить анне", 3, []string{"мелиса"}},
		{"однобуквенные", "м софи", 3, []string{"софи"}},
		{"месяцы как имена", "june и may", 3, []string{"june", "may"}},
		{"месяц в именительном падеже", "мелиса 1 май", 3, []string{"мелиса"}},
		{"приклеенный маркер комментария", "мелиса:коммент: позвонить анне", 3, []string{"мелиса"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := newTestExtractor(t, tt.limit)
			got := extractor.Extract(normalization.Normalize(tt.input))
			assert.Equal(t, tt.want, got.References)
			assert.Equal(t, tt.want[0], got.PrimaryReference)
			assert.True(t, extractor.HasReference(normalization.Normalize(tt.input)))
		})
	}
}

func TestValidReference(t *testing.T) {
	ignore := NewVocabulary([]string{"кастом", "файл", "заказы"})

	valid := []string{"мелиса", "софи", "melissa", "анна-мария"}
	for _, tok := range valid {
		assert.True(t, ValidReference(tok, ignore), tok)
	}

	invalid := []string{"", "м", "a", "123", "50", "кастом", "файл", "заказы", "три", "13.02"}
	for _, tok := range invalid {
		assert.False(t, ValidReference(tok, ignore), tok)
	}
}

func TestEntitySetHelpers(t *testing.T) {
	e := EntitySet{Numbers: []int{3, 50}, References: []string{"мелиса"}}
	n, ok := e.FirstNumber()
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.True(t, e.HasNumbers())
	assert.True(t, e.HasReference())

	_, ok = EntitySet{}.FirstNumber()
	assert.False(t, ok)
}

func TestComment(t *testing.T) {
	tests := []struct {
		input      string
		wantText   string
		wantTarget string
	}{
		{"мелиса коммент: Позвонить  в пятницу", "Позвонить в пятницу", ""},
		{"мелиса заказ коммент: срочно", "срочно", CommentTargetOrder},
		{"софи съемка комментарий: перенести свет", "перенести свет", CommentTargetShoot},
		{"софи аккаунт comment: check", "check", CommentTargetAccount},
		{"мелиса 30 файлов", "", ""},
		{"мелиса:коммент: позвонить", "позвонить", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			text, target := Comment(normalization.Normalize(tt.input))
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

func TestDateText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"съемка завтра", "завтра"},
		{"съемка послезавтра", "послезавтра"},
		{"съемка на 13.02", "13.02"},
		{"съемка 5/3", "5/3"},
		{"съемка 13 февраля мелиса", "13 февраля"},
		{"съемка 13 февраль мелиса", "13 февраль"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, DateText(normalization.Normalize(tt.input)))
		})
	}

	assert.Contains(t, DateText(normalization.Normalize("shoot next tuesday")), "tuesday")
}

func TestResolveDate(t *testing.T) {
	base := time.Date(2026, time.March, 15, 18, 30, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		input  string
		want   time.Time
		wantOK bool
	}{
		{"сегодня", day(2026, time.March, 15), true},
		{"вчера", day(2026, time.March, 14), true},
		{"завтра", day(2026, time.March, 16), true},
		{"послезавтра", day(2026, time.March, 17), true},
		{"20.03", day(2026, time.March, 20), true},
		{"20/04", day(2026, time.April, 20), true},
		// меньше 30 дней назад: тот же год
		{"01.03", day(2026, time.March, 1), true},
		// больше 30 дней назад: следующий год
		{"10.01", day(2027, time.January, 10), true},
		{"13 февраля", day(2026, time.February, 13), true},
		{"12 февраля", day(2027, time.February, 12), true},
		{"5 мая", day(2026, time.May, 5), true},
		{"1 май", day(2026, time.May, 1), true},
		{"20 март", day(2026, time.March, 20), true},
		{"31.02", time.Time{}, false},
		{"10.13", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ResolveDate(tt.input, base)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVocabulary(t *testing.T) {
	v := NewVocabulary([]string{"Кастом", "ad request"}, []string{"кастом"})
	assert.True(t, v.Contains("кастом"))
	assert.True(t, v.Contains("ad"))
	assert.True(t, v.Contains("request"))
	assert.False(t, v.Contains("ad request"))
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []string{"ad", "request", "кастом"}, v.Words())

	var nilVocabulary *Vocabulary
	assert.False(t, nilVocabulary.Contains("x"))
}
