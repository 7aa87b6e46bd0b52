package kwpdf

import (
	"sort"
	"strings"
)

// Labels holds the fixed texts of the document. Title and Period are fmt
// formats: Title receives the keywords, Period the start and end dates.
type Labels struct {
	Name         string
	Title        string
	Period       string
	Summary      string
	Related      string
	Analysis     string
	Contents     string
	Details      string
	SummaryLabel string
	URLPrefix    string
}

var builtinLabels = map[string]Labels{
	"ja": {
		Name:         "ja",
		Title:        "%s キーワード検索 PDF",
		Period:       "期間: %s ～ %s",
		Summary:      "全体サマリー",
		Related:      "関連ワード",
		Analysis:     "考察",
		Contents:     "目次",
		Details:      "ブックマーク詳細",
		SummaryLabel: "サマリー:",
		URLPrefix:    "URL: ",
	},
	"en": {
		Name:         "en",
		Title:        "%s keyword search report",
		Period:       "Period: %s to %s",
		Summary:      "Overall summary",
		Related:      "Related keywords",
		Analysis:     "Analysis",
		Contents:     "Contents",
		Details:      "Bookmark details",
		SummaryLabel: "Summary:",
		URLPrefix:    "URL: ",
	},
}

// AvailableLabels returns the names of built-in label sets.
func AvailableLabels() []string {
	names := make([]string, 0, len(builtinLabels))
	for name := range builtinLabels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LabelsByName returns a built-in label set by name.
func LabelsByName(name string) (Labels, bool) {
	if name == "" {
		return DefaultLabels(), true
	}
	labels, ok := builtinLabels[strings.ToLower(strings.TrimSpace(name))]
	return labels, ok
}

// DefaultLabels returns the Japanese label set.
func DefaultLabels() Labels {
	return builtinLabels["ja"]
}
