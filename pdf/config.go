package pdf

import "pkt.systems/kwpdf"

// Config holds PDF rendering settings. Distances are in points.
type Config struct {
	PageSize    string
	Orientation string
	Margin      float64
	// FontFamily is the name the resolved TrueType font is registered under.
	FontFamily string
	// CoreFont is the built-in face used when no font could be registered.
	CoreFont string
	Creator  string
	Author   string
}

// DefaultConfig returns a baseline configuration: A4 portrait with 1.5 cm margins.
func DefaultConfig() Config {
	return Config{
		PageSize:    "A4",
		Orientation: "P",
		Margin:      1.5 * kwpdf.PointsPerCM,
		FontFamily:  "kwpdf",
		CoreFont:    "Helvetica",
		Creator:     "kwpdf",
	}
}

func applyConfig(dst *Config, src Config) {
	if src.PageSize != "" {
		dst.PageSize = src.PageSize
	}
	if src.Orientation != "" {
		dst.Orientation = src.Orientation
	}
	if src.Margin > 0 {
		dst.Margin = src.Margin
	}
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if src.CoreFont != "" {
		dst.CoreFont = src.CoreFont
	}
	if src.Creator != "" {
		dst.Creator = src.Creator
	}
	if src.Author != "" {
		dst.Author = src.Author
	}
}
