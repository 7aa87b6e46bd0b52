package pdf

import (
	"github.com/go-pdf/fpdf"
	"pkt.systems/kwpdf"
)

type pdfStyle struct {
	fontFamily string
	fontStyle  string
	size       float64
	lineHeight float64
	r          int
	g          int
	b          int
	indent     float64
	spaceAfter float64
}

// pageWriter draws blocks onto an fpdf document. fresh is true while the
// current page has nothing on it.
type pageWriter struct {
	pdf       *fpdf.Fpdf
	styles    kwpdf.Styles
	family    string
	utf8      bool
	translate func(string) string
	fresh     bool
}

func newPageWriter(doc *fpdf.Fpdf, styles kwpdf.Styles, family string, utf8 bool) *pageWriter {
	w := &pageWriter{
		pdf:    doc,
		styles: styles,
		family: family,
		utf8:   utf8,
	}
	if !utf8 {
		w.translate = doc.UnicodeTranslatorFromDescriptor("")
	}
	if w.translate == nil {
		w.translate = func(s string) string { return s }
	}
	w.newPage()
	return w
}

func (w *pageWriter) newPage() {
	w.pdf.AddPage()
	w.fresh = true
}

func (w *pageWriter) block(b kwpdf.Block) {
	switch b.Kind {
	case kwpdf.BlockPageBreak:
		if !w.fresh {
			w.newPage()
		}
	case kwpdf.BlockSpacer:
		if !w.fresh && b.Height > 0 {
			w.pdf.Ln(b.Height)
		}
	default:
		w.text(b)
	}
}

func (w *pageWriter) text(b kwpdf.Block) {
	st := w.styleFor(b)
	w.pdf.SetFont(st.fontFamily, st.fontStyle, st.size)
	w.pdf.SetTextColor(st.r, st.g, st.b)
	left, _, _, _ := w.pdf.GetMargins()
	w.pdf.SetX(left + st.indent)
	w.pdf.MultiCell(0, st.lineHeight, w.encode(b.Text), "", "L", false)
	if st.spaceAfter > 0 {
		w.pdf.Ln(st.spaceAfter)
	}
	w.fresh = false
}

func (w *pageWriter) styleFor(b kwpdf.Block) pdfStyle {
	base := w.styles.Lookup(b.Style)
	size := base.Size
	if b.Size > 0 {
		size = b.Size
	}
	if size <= 0 {
		size = 12
	}
	fontStyle := ""
	if b.Bold {
		fontStyle = "B"
	}
	return pdfStyle{
		fontFamily: w.family,
		fontStyle:  fontStyle,
		size:       size,
		lineHeight: base.LineHeight(size),
		r:          clampColor(base.Color[0]),
		g:          clampColor(base.Color[1]),
		b:          clampColor(base.Color[2]),
		indent:     base.LeftIndent,
		spaceAfter: base.SpaceAfter,
	}
}

// encode prepares text for the active font. UTF-8 fonts only index the Basic
// Multilingual Plane, so anything above it becomes a space; core fonts get
// the text translated to cp1252.
func (w *pageWriter) encode(s string) string {
	return w.translate(sanitizeText(s))
}

func sanitizeText(s string) string {
	runes := []rune(s)
	changed := false
	for i, r := range runes {
		if r > 0xFFFF {
			runes[i] = ' '
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(runes)
}

func clampColor(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}
