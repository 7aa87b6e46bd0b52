package preview

import (
	"regexp"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

var trailingURL = regexp.MustCompile(`(https?://\S+)\s*$`)

// wrapText word-wraps s to width columns, hard-wrapping words that do not fit
// (CJK text has no spaces to break on), and indents every line by pad columns.
func wrapText(s string, width, pad int) []string {
	avail := width - pad
	if avail < 10 {
		avail = 10
	}
	wrapped := wrap.String(wordwrap.String(s, avail), avail)
	if pad > 0 {
		wrapped = indent.String(wrapped, uint(pad))
	}
	return strings.Split(wrapped, "\n")
}

// splitURLLine splits "prefix URL" into its parts when the line ends in a URL.
func splitURLLine(text string) (prefix, url string, ok bool) {
	loc := trailingURL.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", "", false
	}
	return text[:loc[2]], text[loc[2]:loc[3]], true
}

func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	if limit == 1 {
		return "…"
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

func fitURL(url string, limit int) string {
	if ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if ansi.PrintableRuneWidth(trimmed) <= limit {
			return trimmed
		}
	}
	return truncateWithEllipsis(url, limit)
}
