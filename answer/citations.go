package answer

import (
	"fmt"
	"strings"

	"github.com/poiesic/answerit/core"
)

// FormatCitations renders source references as a numbered citation list.
// Knowledge-base sources cite pages, web sources cite title and URL.
func FormatCitations(sources []core.SourceRef, kind core.SourceKind) string {
	if len(sources) == 0 {
		return "No sources available."
	}

	lines := make([]string, 0, len(sources))
	for i, s := range sources {
		if kind == core.SourceWeb {
			lines = append(lines, fmt.Sprintf("[%d] %s - %s", i+1, s.Preview, s.Locator))
		} else {
			lines = append(lines, fmt.Sprintf("[%d] Page %s", i+1, s.Locator))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatDisplay renders an answer and its citations for terminal output.
func FormatDisplay(answerText, citations string) string {
	parts := []string{"**Answer:**", answerText, ""}
	if citations != "" {
		parts = append(parts, "**Sources:**", citations)
	}
	return strings.Join(parts, "\n")
}
