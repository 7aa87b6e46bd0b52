package kwpdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/moby/sys/atomicwriter"
	"github.com/sirupsen/logrus"
)

// StdoutPath selects the request's Stdout writer as the output.
const StdoutPath = "-"

// ConvertRequest contains inputs for Convert.
type ConvertRequest struct {
	Input    string
	Output   string
	Renderer Renderer
	// Fonts is the ordered list of candidate font files.
	Fonts  []string
	Theme  Theme
	Labels *Labels
	// Normalizer overrides the default Markdown stripping rules.
	Normalizer *Normalizer
	// Strict turns schema mismatches into failures.
	Strict bool
	Logger logrus.FieldLogger
	// Stdout receives the document when Output is StdoutPath.
	Stdout io.Writer
}

// Result describes the written document.
type Result struct {
	Path       string
	Size       int64
	Pages      int
	Blocks     int
	FontFamily string
	FontPath   string
}

// Convert loads the report at req.Input, assembles it, renders it with
// req.Renderer and writes the result to req.Output. The output is replaced
// atomically and only after the renderer succeeded.
func Convert(req ConvertRequest) (Result, error) {
	if req.Renderer == nil {
		return Result{}, fmt.Errorf("convert: renderer is nil")
	}
	if req.Output == "" {
		return Result{}, fmt.Errorf("convert: output path is empty")
	}
	log := req.Logger
	if log == nil {
		log = discardLogger()
	}
	if _, err := os.Stat(req.Input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrInputNotFound, req.Input)
		}
		return Result{}, fmt.Errorf("convert: %w", err)
	}

	report, data, err := LoadReport(req.Input)
	if err != nil {
		return Result{}, err
	}
	if err := CheckSchema(data); err != nil {
		if req.Strict {
			return Result{}, err
		}
		log.WithError(err).Warn("report does not match schema, continuing")
	}

	fontPath, found := ResolveFont(req.Fonts)
	if found {
		log.WithField("font", fontPath).Info("using font")
	} else {
		log.WithError(ErrNoFontFound).Warn("falling back to built-in font")
	}

	var opts []AssembleOption
	if req.Labels != nil {
		opts = append(opts, WithLabels(*req.Labels))
	}
	if req.Normalizer != nil {
		opts = append(opts, WithNormalizer(req.Normalizer))
	}
	blocks := Assemble(report, opts...)

	theme := req.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	var buf bytes.Buffer
	rendered, err := req.Renderer.Render(RenderRequest{
		Blocks: blocks,
		Styles: theme.Styles(),
		Font:   fontPath,
		Title:  DocumentTitle(blocks),
		Writer: &buf,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRenderBuild, err)
	}
	if rendered.FontErr != nil {
		log.WithError(rendered.FontErr).WithField("font", fontPath).Warn("font registration failed, using built-in font")
		fontPath = ""
	}

	res := Result{
		Path:       req.Output,
		Pages:      rendered.Pages,
		Blocks:     len(blocks),
		FontFamily: rendered.FontFamily,
		FontPath:   fontPath,
	}
	if req.Output == StdoutPath {
		if req.Stdout == nil {
			return Result{}, fmt.Errorf("%w: stdout writer is nil", ErrWriteOutput)
		}
		n, err := req.Stdout.Write(buf.Bytes())
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		res.Size = int64(n)
		return res, nil
	}

	size, err := writeOutput(req.Output, buf.Bytes())
	if err != nil {
		return Result{}, err
	}
	res.Size = size
	log.WithFields(logrus.Fields{
		"path":  res.Path,
		"size":  humanize.Bytes(uint64(size)),
		"pages": res.Pages,
	}).Info("document written")
	return res, nil
}

func writeOutput(path string, data []byte) (int64, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	if err := atomicwriter.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return info.Size(), nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
