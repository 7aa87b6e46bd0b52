package kwpdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Rule is a single rewrite applied to free-form text.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply runs the rule once over s. Matches do not overlap.
func (r Rule) Apply(s string) string {
	if r.Pattern == nil {
		return s
	}
	return r.Pattern.ReplaceAllString(s, r.Replacement)
}

var (
	ruleBold          = Rule{Name: "bold", Pattern: regexp.MustCompile(`\*\*(.+?)\*\*`), Replacement: "${1}"}
	ruleItalic        = Rule{Name: "italic", Pattern: regexp.MustCompile(`\*(.+?)\*`), Replacement: "${1}"}
	ruleAltBold       = Rule{Name: "alt-bold", Pattern: regexp.MustCompile(`__(.+?)__`), Replacement: "${1}"}
	ruleAltItalic     = Rule{Name: "alt-italic", Pattern: regexp.MustCompile(`_(.+?)_`), Replacement: "${1}"}
	ruleLink          = Rule{Name: "link", Pattern: regexp.MustCompile(`\[(.+?)\]\(.+?\)`), Replacement: "${1}"}
	ruleHeadingMarker = Rule{Name: "heading", Pattern: regexp.MustCompile(`(?m)^#+\s+(.+)$`), Replacement: "${1}"}
	ruleBullet        = Rule{Name: "bullet", Pattern: regexp.MustCompile(`(?m)^- `), Replacement: "• "}
)

// DefaultRules returns the Markdown stripping rules in application order.
func DefaultRules() []Rule {
	return []Rule{
		ruleBold,
		ruleItalic,
		ruleAltBold,
		ruleAltItalic,
		ruleLink,
		ruleHeadingMarker,
		ruleBullet,
	}
}

// Normalizer applies an ordered list of rules to text values.
type Normalizer struct {
	rules []Rule
}

// NewNormalizer returns a Normalizer for rules. With no rules it uses DefaultRules.
func NewNormalizer(rules ...Rule) *Normalizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Normalizer{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the rules in application order.
func (n *Normalizer) Rules() []Rule {
	return append([]Rule(nil), n.rules...)
}

// Normalize returns v as display text. Strings are run through every rule in
// order; any other value is returned as its textual representation.
func (n *Normalizer) Normalize(v any) string {
	s, ok := v.(string)
	if !ok {
		return textOf(v)
	}
	for _, r := range n.rules {
		s = r.Apply(s)
	}
	return s
}

var defaultNormalizer = NewNormalizer()

// Strip normalizes v with the default rules.
func Strip(v any) string {
	return defaultNormalizer.Normalize(v)
}

func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.RawMessage:
		var buf bytes.Buffer
		if err := json.Compact(&buf, t); err != nil {
			return string(t)
		}
		return buf.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
