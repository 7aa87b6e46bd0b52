// Package pdf renders kwpdf blocks to PDF using go-pdf/fpdf.
//
// The renderer registers the resolved TrueType font for regular and bold text.
// When no font was resolved, or registration fails, it falls back to a core
// font and reports the registration failure in RenderResult.FontErr instead of
// failing the render.
//
// Example:
//
//	r := pdf.New(pdf.DefaultConfig())
//	res, err := r.Render(kwpdf.RenderRequest{
//		Blocks: kwpdf.Assemble(report),
//		Styles: kwpdf.DefaultTheme().Styles(),
//		Font:   "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
//		Writer: out,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Verify re-reads a finished document with pdfcpu and returns its page count.
package pdf
