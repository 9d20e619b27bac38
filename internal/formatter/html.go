package formatter

import (
	"html"
	"regexp"
	"strings"
)

var (
	reLineBreak  = regexp.MustCompile(`(?i)<br\s*/?>`)
	reBlockClose = regexp.MustCompile(`(?i)</(p|div|h[1-6]|section|blockquote)>`)
	reListItem   = regexp.MustCompile(`(?i)<li[^>]*>`)
	reListClose  = regexp.MustCompile(`(?i)</li>`)
	reTag        = regexp.MustCompile(`<[^>]*>`)
	reBlankRuns  = regexp.MustCompile(`\n{3,}`)
)

// HTMLToText converts lyric sheet HTML from the studio editor into plain
// text suitable for the terminal. Block elements become line breaks, list
// items become dashes, all other markup is stripped, and entities are
// decoded. Runs of blank lines collapse to a single blank line.
func HTMLToText(source string) string {
	text := reLineBreak.ReplaceAllString(source, "\n")
	text = reBlockClose.ReplaceAllString(text, "\n\n")
	text = reListItem.ReplaceAllString(text, "- ")
	text = reListClose.ReplaceAllString(text, "\n")
	text = reTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")

	text = reBlankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
