package pdf

import (
	"testing"

	"github.com/go-pdf/fpdf"
	"pkt.systems/kwpdf"
)

func TestSanitizeText(t *testing.T) {
	cases := map[string]string{
		"plain":          "plain",
		"日本語 • bullet":   "日本語 • bullet",
		"emoji 😀 here":   "emoji   here",
		"🔍🔍":             "  ",
		"":               "",
	}
	for in, want := range cases {
		if got := sanitizeText(in); got != want {
			t.Fatalf("sanitizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClampColor(t *testing.T) {
	cases := map[int]int{-5: 0, 0: 0, 128: 128, 255: 255, 300: 255}
	for in, want := range cases {
		if got := clampColor(in); got != want {
			t.Fatalf("clampColor(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestStyleFor(t *testing.T) {
	doc := fpdf.New("P", "pt", "A4", "")
	w := newPageWriter(doc, kwpdf.DefaultTheme().Styles(), "Helvetica", false)

	body := w.styleFor(kwpdf.Block{Kind: kwpdf.BlockBody, Style: kwpdf.StyleBody, Text: "x"})
	if body.size != 12 || body.lineHeight != 18 || body.fontStyle != "" || body.spaceAfter != 8 {
		t.Fatalf("unexpected body style: %+v", body)
	}

	url := w.styleFor(kwpdf.Block{Kind: kwpdf.BlockBody, Style: kwpdf.StyleBody, Size: 10})
	if url.size != 10 || url.lineHeight != 15 {
		t.Fatalf("unexpected url style: %+v", url)
	}

	sub := w.styleFor(kwpdf.Block{Kind: kwpdf.BlockSubheading, Style: kwpdf.StyleSubheading, Bold: true})
	if sub.fontStyle != "B" || sub.size != 14 || sub.r != 0x55 {
		t.Fatalf("unexpected subheading style: %+v", sub)
	}

	item := w.styleFor(kwpdf.Block{Kind: kwpdf.BlockListItem, Style: kwpdf.StyleListItem})
	if item.indent != 20 || item.fontFamily != "Helvetica" {
		t.Fatalf("unexpected list style: %+v", item)
	}

	empty := newPageWriter(fpdf.New("P", "pt", "A4", ""), kwpdf.Styles{}, "Helvetica", false)
	if st := empty.styleFor(kwpdf.Block{Kind: kwpdf.BlockBody}); st.size != 12 {
		t.Fatalf("expected fallback size 12, got %v", st.size)
	}
}

func TestEncodeCoreFont(t *testing.T) {
	doc := fpdf.New("P", "pt", "A4", "")
	w := newPageWriter(doc, kwpdf.DefaultTheme().Styles(), "Helvetica", false)
	if got := w.encode("café • 😀"); got != "caf\xe9 \x95  " {
		t.Fatalf("unexpected cp1252 encoding: %q", got)
	}
	utf := newPageWriter(fpdf.New("P", "pt", "A4", ""), kwpdf.DefaultTheme().Styles(), "kwpdf", true)
	if got := utf.encode("日本 😀"); got != "日本  " {
		t.Fatalf("unexpected utf8 encoding: %q", got)
	}
}

func TestPageWriterFreshPage(t *testing.T) {
	doc := fpdf.New("P", "pt", "A4", "")
	w := newPageWriter(doc, kwpdf.DefaultTheme().Styles(), "Helvetica", false)
	if !w.fresh || doc.PageNo() != 1 {
		t.Fatalf("expected a fresh first page")
	}
	w.block(kwpdf.Block{Kind: kwpdf.BlockPageBreak})
	if doc.PageNo() != 1 {
		t.Fatalf("page break on fresh page added a page")
	}
	w.block(kwpdf.Block{Kind: kwpdf.BlockHeading, Style: kwpdf.StyleHeading, Text: "h"})
	if w.fresh {
		t.Fatalf("page still fresh after text")
	}
	w.block(kwpdf.Block{Kind: kwpdf.BlockPageBreak})
	if doc.PageNo() != 2 || !w.fresh {
		t.Fatalf("expected a fresh second page, got page %d", doc.PageNo())
	}
	if err := doc.Error(); err != nil {
		t.Fatalf("document error: %v", err)
	}
}
