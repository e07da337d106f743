package normalization

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText извлекает видимый текст из HTML тела сообщения.
// Мессенджеры присылают форматированные сообщения как HTML (<b>, <i>, <a>, <br>),
// а правила сопоставляются только с текстом.
func PlainText(html string) (string, error) {
	if !strings.ContainsAny(html, "<&") {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse message markup: %w", err)
	}

	doc.Find("script, style").Remove()
	doc.Find("br, p, div, li").Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml(" ")
	})

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
