package kwpdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type recordingRenderer struct {
	calls int
	req   RenderRequest
	out   string
	res   RenderResult
	err   error
}

func (r *recordingRenderer) Render(req RenderRequest) (RenderResult, error) {
	r.calls++
	r.req = req
	if r.err != nil {
		return RenderResult{}, r.err
	}
	if _, err := req.Writer.Write([]byte(r.out)); err != nil {
		return RenderResult{}, err
	}
	return r.res, nil
}

func writeInput(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func captureLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)
	return log, &buf
}

func TestConvertWritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, referenceReport)
	out := filepath.Join(dir, "nested", "out.pdf")
	renderer := &recordingRenderer{out: "%PDF-fake", res: RenderResult{Pages: 5, FontFamily: "Helvetica"}}
	log, logs := captureLogger()

	res, err := Convert(ConvertRequest{
		Input:    in,
		Output:   out,
		Renderer: renderer,
		Fonts:    []string{filepath.Join(dir, "missing.ttf")},
		Logger:   log,
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "%PDF-fake" {
		t.Fatalf("unexpected output %q", data)
	}
	if res.Path != out || res.Size != int64(len(data)) || res.Pages != 5 || res.FontFamily != "Helvetica" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Blocks != len(renderer.req.Blocks) || res.Blocks == 0 {
		t.Fatalf("unexpected block count %d", res.Blocks)
	}
	if renderer.req.Font != "" || res.FontPath != "" {
		t.Fatalf("expected no font, got %q", renderer.req.Font)
	}
	if renderer.req.Title != renderer.req.Blocks[0].Text {
		t.Fatalf("unexpected title %q", renderer.req.Title)
	}
	if renderer.req.Styles != DefaultTheme().Styles() {
		t.Fatalf("expected default theme styles")
	}
	text := logs.String()
	for _, want := range []string{ErrNoFontFound.Error(), "document written", "pages=5"} {
		if !strings.Contains(text, want) {
			t.Fatalf("log missing %q:\n%s", want, text)
		}
	}
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.pdf")
	renderer := &recordingRenderer{}
	_, err := Convert(ConvertRequest{
		Input:    filepath.Join(dir, "missing.json"),
		Output:   out,
		Renderer: renderer,
	})
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer called for missing input")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err=%v", err)
	}
}

func TestConvertRenderFailureKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, referenceReport)
	out := filepath.Join(dir, "out.pdf")
	if err := os.WriteFile(out, []byte("previous"), 0o644); err != nil {
		t.Fatalf("write previous: %v", err)
	}
	renderer := &recordingRenderer{err: errors.New("layout exploded")}
	_, err := Convert(ConvertRequest{Input: in, Output: out, Renderer: renderer})
	if !errors.Is(err, ErrRenderBuild) {
		t.Fatalf("expected ErrRenderBuild, got %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "previous" {
		t.Fatalf("output replaced after failed render: %q", data)
	}
}

func TestConvertRenderFailureCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, referenceReport)
	out := filepath.Join(dir, "out.pdf")
	renderer := RendererFunc(func(req RenderRequest) (RenderResult, error) {
		return RenderResult{}, errors.New("boom")
	})
	if _, err := Convert(ConvertRequest{Input: in, Output: out, Renderer: renderer}); err == nil {
		t.Fatalf("expected error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the input file, got %d entries", len(entries))
	}
}

func TestConvertResolvesFont(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, referenceReport)
	font := filepath.Join(dir, "font.ttf")
	if err := os.WriteFile(font, []byte("font"), 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	renderer := &recordingRenderer{out: "x", res: RenderResult{Pages: 1, FontFamily: "kwpdf"}}
	res, err := Convert(ConvertRequest{
		Input:    in,
		Output:   filepath.Join(dir, "out.pdf"),
		Renderer: renderer,
		Fonts:    []string{"/does/not/exist", font},
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if renderer.req.Font != font || res.FontPath != font {
		t.Fatalf("expected font %q, got request %q result %q", font, renderer.req.Font, res.FontPath)
	}
}

func TestConvertFontRegistrationFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, referenceReport)
	font := filepath.Join(dir, "font.ttc")
	if err := os.WriteFile(font, []byte("font"), 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	renderer := &recordingRenderer{out: "x", res: RenderResult{
		Pages:      1,
		FontFamily: "Helvetica",
		FontErr:    ErrFontRegistration,
	}}
	log, logs := captureLogger()
	res, err := Convert(ConvertRequest{
		Input:    in,
		Output:   filepath.Join(dir, "out.pdf"),
		Renderer: renderer,
		Fonts:    []string{font},
		Logger:   log,
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.FontPath != "" || res.FontFamily != "Helvetica" {
		t.Fatalf("unexpected font result: %+v", res)
	}
	if !strings.Contains(logs.String(), "font registration failed") {
		t.Fatalf("expected warning, got:\n%s", logs.String())
	}
}

func TestConvertStdout(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, referenceReport)
	var stdout bytes.Buffer
	renderer := &recordingRenderer{out: "document", res: RenderResult{Pages: 2}}
	res, err := Convert(ConvertRequest{Input: in, Output: StdoutPath, Renderer: renderer, Stdout: &stdout})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if stdout.String() != "document" || res.Size != int64(len("document")) || res.Path != StdoutPath {
		t.Fatalf("unexpected stdout result %q %+v", stdout.String(), res)
	}
	if _, err := Convert(ConvertRequest{Input: in, Output: StdoutPath, Renderer: renderer}); !errors.Is(err, ErrWriteOutput) {
		t.Fatalf("expected ErrWriteOutput without stdout writer, got %v", err)
	}
}

func TestConvertSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, `{"keywords":{"a":1}}`)
	renderer := &recordingRenderer{out: "x"}
	log, logs := captureLogger()
	if _, err := Convert(ConvertRequest{Input: in, Output: filepath.Join(dir, "a.pdf"), Renderer: renderer, Logger: log}); err != nil {
		t.Fatalf("non-strict Convert: %v", err)
	}
	if !strings.Contains(logs.String(), "does not match schema") {
		t.Fatalf("expected schema warning, got:\n%s", logs.String())
	}
	if !strings.HasPrefix(renderer.req.Blocks[0].Text, `{"a":1}`) {
		t.Fatalf("unexpected title %q", renderer.req.Blocks[0].Text)
	}

	out := filepath.Join(dir, "b.pdf")
	_, err := Convert(ConvertRequest{Input: in, Output: out, Renderer: renderer, Strict: true})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err=%v", err)
	}
}

func TestConvertInvalidReport(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, `{"bookmarks":`)
	_, err := Convert(ConvertRequest{Input: in, Output: filepath.Join(dir, "out.pdf"), Renderer: &recordingRenderer{}})
	if !errors.Is(err, ErrInvalidReport) {
		t.Fatalf("expected ErrInvalidReport, got %v", err)
	}
}

func TestConvertOptions(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, referenceReport)
	en, _ := LabelsByName("en")
	mono, _ := ThemeByName("mono")
	renderer := &recordingRenderer{out: "x"}
	_, err := Convert(ConvertRequest{
		Input:      in,
		Output:     filepath.Join(dir, "out.pdf"),
		Renderer:   renderer,
		Theme:      mono,
		Labels:     &en,
		Normalizer: NewNormalizer(ruleBold),
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if renderer.req.Blocks[0].Text != "foo keyword search report" {
		t.Fatalf("labels not applied: %q", renderer.req.Blocks[0].Text)
	}
	if renderer.req.Styles != mono.Styles() {
		t.Fatalf("theme not applied")
	}
	// The bold-only normalizer leaves "- bullet" alone.
	if got := sectionBlocks(renderer.req.Blocks, en.Summary)[1].Text; got != "- bullet" {
		t.Fatalf("normalizer not applied: %q", got)
	}
}

func TestConvertRequiresRendererAndOutput(t *testing.T) {
	if _, err := Convert(ConvertRequest{Input: "x", Output: "y"}); err == nil {
		t.Fatalf("expected error without renderer")
	}
	if _, err := Convert(ConvertRequest{Input: "x", Renderer: &recordingRenderer{}}); err == nil {
		t.Fatalf("expected error without output")
	}
}
