// Package preview renders kwpdf blocks as wrapped terminal text.
//
// It is a second kwpdf.Renderer next to the PDF one, meant for checking a
// report without opening a viewer:
//
//	r := preview.New(preview.Config{Width: 80, Color: true})
//	_, err := r.Render(kwpdf.RenderRequest{
//		Blocks: kwpdf.Assemble(report),
//		Styles: kwpdf.DefaultTheme().Styles(),
//		Writer: os.Stdout,
//	})
package preview

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"pkt.systems/kwpdf"
)

const (
	defaultWidth = 80
	ansiReset    = "\x1b[0m"
	ansiBold     = "\x1b[1m"
	ansiFaint    = "\x1b[2m"
	pointsPerCol = 10
	ruleRune     = "─"
)

// Config controls preview output.
type Config struct {
	// Width is the line width in columns; 0 means defaultWidth.
	Width int
	// Color enables ANSI styling from the style table.
	Color bool
	// OSC8 turns URLs into terminal hyperlinks.
	OSC8 bool
}

// Renderer implements kwpdf.Renderer for terminals.
type Renderer struct {
	cfg Config
}

// New returns a Renderer for cfg.
func New(cfg Config) *Renderer {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	return &Renderer{cfg: cfg}
}

// Render writes the blocks as text. The font is ignored; the family reported
// back is "terminal".
func (r *Renderer) Render(req kwpdf.RenderRequest) (kwpdf.RenderResult, error) {
	if req.Writer == nil {
		return kwpdf.RenderResult{}, fmt.Errorf("preview render: writer is nil")
	}
	p := printer{cfg: r.cfg, styles: req.Styles, pages: 1, atStart: true}
	for _, b := range req.Blocks {
		p.block(b)
	}
	if _, err := p.buf.WriteTo(req.Writer); err != nil {
		return kwpdf.RenderResult{}, fmt.Errorf("preview render: write: %w", err)
	}
	return kwpdf.RenderResult{Pages: p.pages, FontFamily: "terminal"}, nil
}

type printer struct {
	cfg     Config
	styles  kwpdf.Styles
	buf     bytes.Buffer
	pages   int
	atStart bool
	blank   bool
}

func (p *printer) block(b kwpdf.Block) {
	switch b.Kind {
	case kwpdf.BlockPageBreak:
		if p.atStart {
			return
		}
		p.blankLine()
		p.buf.WriteString(strings.Repeat(ruleRune, p.cfg.Width))
		p.buf.WriteByte('\n')
		p.pages++
		p.atStart = true
		p.blank = false
	case kwpdf.BlockSpacer:
		if !p.atStart {
			p.blankLine()
		}
	default:
		p.text(b)
	}
}

func (p *printer) blankLine() {
	if p.blank {
		return
	}
	p.buf.WriteByte('\n')
	p.blank = true
}

func (p *printer) text(b kwpdf.Block) {
	st := p.styles.Lookup(b.Style)
	pad := int(st.LeftIndent / pointsPerCol)
	prefix := p.stylePrefix(b, st)

	if b.Kind == kwpdf.BlockBody && b.Size > 0 {
		if label, url, ok := splitURLLine(b.Text); ok {
			avail := p.cfg.Width - pad - len([]rune(label))
			shown := fitURL(url, avail)
			if p.cfg.OSC8 {
				shown = hyperlink(shown, url)
			}
			p.line(strings.Repeat(" ", pad)+label+shown, prefix)
			p.after(b)
			return
		}
	}
	for _, line := range wrapText(b.Text, p.cfg.Width, pad) {
		p.line(line, prefix)
	}
	p.after(b)
}

func (p *printer) line(s, prefix string) {
	if prefix != "" {
		p.buf.WriteString(prefix)
		p.buf.WriteString(s)
		p.buf.WriteString(ansiReset)
	} else {
		p.buf.WriteString(s)
	}
	p.buf.WriteByte('\n')
	p.atStart = false
	p.blank = false
}

func (p *printer) after(b kwpdf.Block) {
	if b.Kind == kwpdf.BlockTitle || b.Kind == kwpdf.BlockHeading {
		p.blankLine()
	}
}

func (p *printer) stylePrefix(b kwpdf.Block, st kwpdf.Style) string {
	if !p.cfg.Color {
		return ""
	}
	var sb strings.Builder
	if b.Bold || b.Kind == kwpdf.BlockTitle || b.Kind == kwpdf.BlockHeading {
		sb.WriteString(ansiBold)
	}
	if b.Size > 0 && b.Size < st.Size {
		sb.WriteString(ansiFaint)
	}
	fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm", st.Color[0], st.Color[1], st.Color[2])
	return sb.String()
}

// TerminalWidth returns the width of w when it is a terminal, then $COLUMNS,
// then fallback.
func TerminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if width, _, err := term.GetSize(fd); err == nil && width > 0 {
				return width
			}
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
