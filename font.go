package kwpdf

import "os"

// DefaultFontCandidates returns the font files probed when no list is
// configured: CJK-capable Noto Sans first, DejaVu Sans as a Latin fallback.
func DefaultFontCandidates() []string {
	return []string{
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
		"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}
}

// FontResolver picks the first existing font file from an ordered list.
type FontResolver struct {
	Candidates []string
}

// Resolve returns the first candidate that exists as a regular file. The
// boolean is false when none does; that is the common case, not an error.
func (r FontResolver) Resolve() (string, bool) {
	for _, path := range r.Candidates {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return path, true
	}
	return "", false
}

// ResolveFont is shorthand for FontResolver{Candidates: candidates}.Resolve().
func ResolveFont(candidates []string) (string, bool) {
	return FontResolver{Candidates: candidates}.Resolve()
}
