package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"pkt.systems/kwpdf"
)

// Renderer implements kwpdf.Renderer on top of fpdf.
type Renderer struct {
	cfg Config
}

// New returns a Renderer. Zero fields of cfg keep their DefaultConfig values.
func New(cfg Config) *Renderer {
	c := DefaultConfig()
	applyConfig(&c, cfg)
	return &Renderer{cfg: c}
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Render lays out req.Blocks and writes the encoded PDF to req.Writer. Nothing
// is written when the build fails.
func (r *Renderer) Render(req kwpdf.RenderRequest) (kwpdf.RenderResult, error) {
	if req.Writer == nil {
		return kwpdf.RenderResult{}, fmt.Errorf("pdf render: writer is nil")
	}
	cfg := r.cfg
	if !isCoreFont(cfg.CoreFont) {
		return kwpdf.RenderResult{}, fmt.Errorf("pdf render: %q is not a core font", cfg.CoreFont)
	}
	if cfg.FontFamily == "" || isCoreFont(cfg.FontFamily) {
		return kwpdf.RenderResult{}, fmt.Errorf("pdf render: invalid font family %q", cfg.FontFamily)
	}

	doc, err := newDocument(cfg)
	if err != nil {
		return kwpdf.RenderResult{}, err
	}
	family := cfg.CoreFont
	var fontErr error
	if req.Font != "" {
		if err := registerFont(doc, cfg.FontFamily, req.Font); err != nil {
			fontErr = fmt.Errorf("%w: %s: %w", kwpdf.ErrFontRegistration, req.Font, err)
			if doc, err = newDocument(cfg); err != nil {
				return kwpdf.RenderResult{}, err
			}
		} else {
			family = cfg.FontFamily
		}
	}
	if req.Title != "" {
		doc.SetTitle(req.Title, true)
	}
	if cfg.Author != "" {
		doc.SetAuthor(cfg.Author, true)
	}
	doc.SetCreator(cfg.Creator, true)

	w := newPageWriter(doc, req.Styles, family, family != cfg.CoreFont)
	for _, b := range req.Blocks {
		w.block(b)
		if doc.Err() {
			break
		}
	}
	if err := doc.Error(); err != nil {
		return kwpdf.RenderResult{}, fmt.Errorf("pdf render: %w", err)
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return kwpdf.RenderResult{}, fmt.Errorf("pdf render: output: %w", err)
	}
	if _, err := out.WriteTo(req.Writer); err != nil {
		return kwpdf.RenderResult{}, fmt.Errorf("pdf render: write: %w", err)
	}
	return kwpdf.RenderResult{
		Pages:      doc.PageNo(),
		FontFamily: family,
		FontErr:    fontErr,
	}, nil
}

// newDocument creates an empty fpdf document with the configured page setup.
func newDocument(cfg Config) (*fpdf.Fpdf, error) {
	doc := fpdf.New(cfg.Orientation, "pt", cfg.PageSize, "")
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("pdf render: page setup: %w", err)
	}
	doc.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	doc.SetAutoPageBreak(true, cfg.Margin)
	return doc, nil
}

// registerFont adds fontPath as the regular and bold face of family.
func registerFont(doc *fpdf.Fpdf, family, fontPath string) (err error) {
	if err := ensureFont(fontPath); err != nil {
		return err
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parse font: %v", rec)
		}
	}()
	doc.AddUTF8FontFromBytes(family, "", data)
	doc.AddUTF8FontFromBytes(family, "B", data)
	if err := doc.Error(); err != nil {
		return err
	}
	doc.SetFont(family, "", 12)
	return doc.Error()
}

func isCoreFont(name string) bool {
	switch name {
	case "Courier", "Helvetica", "Times", "Symbol", "ZapfDingbats":
		return true
	default:
		return false
	}
}

// ensureFont rejects paths fpdf cannot load. Only single-face TrueType files
// are supported; collections (.ttc) and CFF OpenType fonts are not.
func ensureFont(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory")
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".ttf" {
		return fmt.Errorf("unsupported font format %q: expected .ttf", ext)
	}
	return nil
}
