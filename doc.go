// Package kwpdf turns a keyword search report (JSON) into a paginated document.
//
// The package owns the reproducible part of the pipeline: it decodes the
// report, strips lightweight Markdown from free-form text, and assembles a
// fixed, deterministic sequence of styled blocks. Layout, pagination and byte
// encoding belong to a Renderer; the pdf sub-package provides one on top of
// go-pdf/fpdf and the preview sub-package renders the same blocks to a
// terminal.
//
// Example:
//
//	res, err := kwpdf.Convert(kwpdf.ConvertRequest{
//		Input:    "report.json",
//		Output:   "report.pdf",
//		Renderer: pdf.New(pdf.DefaultConfig()),
//		Fonts:    kwpdf.DefaultFontCandidates(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Path, res.Size)
//
// Assemble can be used on its own to inspect the block sequence:
//
//	report, _ := kwpdf.DecodeReport(data)
//	for _, b := range kwpdf.Assemble(report) {
//		fmt.Println(b)
//	}
package kwpdf
