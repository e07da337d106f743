package extractors

import (
	"strings"

	"github.com/dlclark/regexp2"

	"intentrouter/normalization"
)

// Цели комментария
const (
	CommentTargetOrder   = "order"
	CommentTargetShoot   = "shoot"
	CommentTargetAccount = "account"
)

// commentMarkerRe маркер комментария: "коммент:", "комментарий:", "comment:"
var commentMarkerRe = regexp2.MustCompile(`\b(комментарий|коммент|comment)\s*:`, regexp2.IgnoreCase)

// commentTargets корни слов перед маркером, определяющие цель комментария; порядок важен
var commentTargets = []struct {
	target string
	stems  []string
}{
	{CommentTargetOrder, []string{"заказ", "order", "кастом", "шорт", "колл"}},
	{CommentTargetShoot, []string{"съемк", "съёмк", "шут", "shoot"}},
	{CommentTargetAccount, []string{"учет", "учёт", "аккаунт", "файл", "account"}},
}

// Comment извлекает текст комментария (регистр сохраняется) и его цель.
// Синтаксис: "имя [цель] коммент: текст".
func Comment(text normalization.Text) (comment, target string) {
	m, _ := commentMarkerRe.FindStringMatch(text.Raw)
	if m == nil {
		return "", ""
	}

	runes := []rune(text.Raw)
	comment = strings.Join(strings.Fields(string(runes[m.Index+m.Length:])), " ")
	prefix := strings.ToLower(string(runes[:m.Index]))

	for _, t := range commentTargets {
		for _, stem := range t.stems {
			if strings.Contains(prefix, stem) {
				return comment, t.target
			}
		}
	}
	return comment, ""
}

// tokensBeforeComment возвращает токены, стоящие до маркера комментария.
// Слова самого комментария не должны попадать в ссылки.
func tokensBeforeComment(text normalization.Text) []string {
	m, _ := commentMarkerRe.FindStringMatch(text.Value)
	if m == nil {
		return text.Tokens
	}
	// маркер может быть приклеен к имени ("мелиса:коммент:"), поэтому префикс токенизируется заново
	return normalization.Tokenize(string([]rune(text.Value)[:m.Index]))
}
