package websearch

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText parses HTML and returns the page's visible text with
// scripts, styles, and navigation chrome removed. Blank lines are
// dropped and the result is truncated to maxLength runes.
func ExtractText(r io.Reader, maxLength int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, footer, header").Remove()

	var lines []string
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	for _, raw := range strings.Split(root.Text(), "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	text := strings.Join(lines, "\n")

	if maxLength > 0 {
		runes := []rune(text)
		if len(runes) > maxLength {
			text = string(runes[:maxLength])
		}
	}
	return text, nil
}
