package kwpdf

import (
	"sort"
	"strings"
)

// Style describes how a renderer draws one kind of text block. Sizes and
// distances are in points.
type Style struct {
	Size       float64
	Color      [3]int
	SpaceAfter float64
	// Leading is the distance between baselines; 0 means 1.2 × Size.
	Leading    float64
	LeftIndent float64
}

// LineHeight returns the leading for text drawn at size, scaling Leading
// proportionally when size differs from the style size.
func (s Style) LineHeight(size float64) float64 {
	if s.Leading > 0 && s.Size > 0 {
		return s.Leading * size / s.Size
	}
	return size * 1.2
}

// Styles is the style table handed to renderers.
type Styles struct {
	Title      Style
	Heading    Style
	Subheading Style
	Body       Style
	ListItem   Style
}

// Lookup returns the style for id. Unknown ids fall back to Body.
func (s Styles) Lookup(id StyleID) Style {
	switch id {
	case StyleTitle:
		return s.Title
	case StyleHeading:
		return s.Heading
	case StyleSubheading:
		return s.Subheading
	case StyleListItem:
		return s.ListItem
	default:
		return s.Body
	}
}

// Set replaces the style for id.
func (s *Styles) Set(id StyleID, st Style) {
	switch id {
	case StyleTitle:
		s.Title = st
	case StyleHeading:
		s.Heading = st
	case StyleSubheading:
		s.Subheading = st
	case StyleListItem:
		s.ListItem = st
	default:
		s.Body = st
	}
}

// Theme provides a named style table.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

var defaultStyles = Styles{
	Title:      Style{Size: 20, Color: [3]int{0x1a, 0x1a, 0x1a}, SpaceAfter: 12, Leading: 24},
	Heading:    Style{Size: 16, Color: [3]int{0x33, 0x33, 0x33}, SpaceAfter: 10, Leading: 20},
	Subheading: Style{Size: 14, Color: [3]int{0x55, 0x55, 0x55}, SpaceAfter: 8, Leading: 17},
	Body:       Style{Size: 12, Color: [3]int{0x33, 0x33, 0x33}, SpaceAfter: 8, Leading: 18},
	ListItem:   Style{Size: 12, Color: [3]int{0x44, 0x44, 0x44}, SpaceAfter: 6, Leading: 16, LeftIndent: 20},
}

var compactStyles = Styles{
	Title:      Style{Size: 16, Color: [3]int{0x1a, 0x1a, 0x1a}, SpaceAfter: 8, Leading: 19},
	Heading:    Style{Size: 13, Color: [3]int{0x33, 0x33, 0x33}, SpaceAfter: 6, Leading: 16},
	Subheading: Style{Size: 11, Color: [3]int{0x55, 0x55, 0x55}, SpaceAfter: 4, Leading: 13},
	Body:       Style{Size: 10, Color: [3]int{0x33, 0x33, 0x33}, SpaceAfter: 4, Leading: 13},
	ListItem:   Style{Size: 10, Color: [3]int{0x44, 0x44, 0x44}, SpaceAfter: 3, Leading: 12, LeftIndent: 14},
}

func monoStyles() Styles {
	s := defaultStyles
	s.Title.Color = [3]int{}
	s.Heading.Color = [3]int{}
	s.Subheading.Color = [3]int{}
	s.Body.Color = [3]int{}
	s.ListItem.Color = [3]int{}
	return s
}

var builtinThemes = map[string]Theme{
	"default": theme{name: "default", styles: defaultStyles},
	"compact": theme{name: "compact", styles: compactStyles},
	"mono":    theme{name: "mono", styles: monoStyles()},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
