package kwpdf

import "io"

// RenderRequest is what a Renderer receives.
type RenderRequest struct {
	Blocks []Block
	Styles Styles
	// Font is the resolved font file, or "" to use the renderer's built-in face.
	Font string
	// Title is used for document metadata.
	Title  string
	Writer io.Writer
}

// RenderResult describes a finished render.
type RenderResult struct {
	Pages      int
	FontFamily string
	// FontErr is set when Font could not be registered and the renderer fell
	// back to its built-in face. It wraps ErrFontRegistration.
	FontErr error
}

// Renderer lays out blocks and encodes the final document. Implementations
// must not write to Writer unless the whole document was built.
type Renderer interface {
	Render(RenderRequest) (RenderResult, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(RenderRequest) (RenderResult, error)

// Render calls f(req).
func (f RendererFunc) Render(req RenderRequest) (RenderResult, error) {
	return f(req)
}

// DocumentTitle returns the text of the first title block.
func DocumentTitle(blocks []Block) string {
	for _, b := range blocks {
		if b.Kind == BlockTitle {
			return b.Text
		}
	}
	return ""
}
