package export

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PlainText flattens an HTML fragment (product descriptions are edited as rich text) into
// paragraphs separated by newlines. Text without block elements is returned with whitespace collapsed.
func PlainText(html string) string {
	if !strings.Contains(html, "<") {
		return collapse(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapse(html)
	}

	var parts []string
	doc.Find("h1,h2,h3,h4,p,li").Each(func(_ int, s *goquery.Selection) {
		t := collapse(s.Text())
		if t == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			t = "- " + t
		}
		parts = append(parts, t)
	})
	if len(parts) == 0 {
		return collapse(doc.Text())
	}
	return strings.Join(parts, "\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// latin strips diacritics the PDF core fonts cannot show. ł has no decomposition.
func latin(s string) string {
	// transformers carry state, so each call builds its own chain
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.NewReplacer("ł", "l", "Ł", "L").Replace(out)
}
