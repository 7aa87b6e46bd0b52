package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"pkt.systems/kwpdf"
	"pkt.systems/kwpdf/internal/config"
	"pkt.systems/kwpdf/internal/logger"
	"pkt.systems/kwpdf/pdf"
	"pkt.systems/kwpdf/preview"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
	formatPDF        = "pdf"
	formatText       = "text"
)

func init() {
	version.SetDefaultModule("pkt.systems/kwpdf")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	themeName  string
	labelsName string
	fonts      []string
	configPath string
	format     string
	pageSize   string
	margin     float64
	logLevel   string
	logFile    string
	strict     bool
	verify     bool
	listThemes bool
	listLabels bool
	width      int
	osc8       string
	boring     bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("kwpdf", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.themeName, "theme", "t", defaultThemeName, "Style theme name")
	flags.StringVarP(&opts.labelsName, "labels", "l", "", "Label set for titles and headings (default ja)")
	flags.StringArrayVarP(&opts.fonts, "font", "f", nil, "Candidate TTF font path, tried before the defaults (repeatable)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default $"+config.EnvConfig+")")
	flags.StringVar(&opts.format, "format", formatPDF, "Output format: pdf|text")
	flags.StringVar(&opts.pageSize, "page-size", "", "PDF page size (default A4)")
	flags.Float64Var(&opts.margin, "margin", 0, "Page margin in centimeters (default 1.5)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (default info)")
	flags.StringVar(&opts.logFile, "log-file", "", "Also append log entries to this file")
	flags.BoolVar(&opts.strict, "strict", false, "Fail when the report does not match the schema")
	flags.BoolVar(&opts.verify, "verify", false, "Validate the written PDF and report its page count")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&opts.listLabels, "list-labels", false, "List available label sets")
	flags.IntVarP(&opts.width, "width", "w", 0, "Text output width (0 uses terminal width if available)")
	flags.StringVarP(&opts.osc8, "osc8", "8", "auto", "OSC8 hyperlinks in text output: auto|on|off")
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Disable ANSI styling in text output")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: kwpdf [flags] <input.json> <output.pdf>\n")
		fmt.Fprintln(stderr, "\nUse - as output to write to stdout.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}

	if opts.listThemes {
		printNames(stdout, kwpdf.AvailableThemes())
		return 0
	}
	if opts.listLabels {
		printNames(stdout, kwpdf.AvailableLabels())
		return 0
	}

	positional := flags.Args()
	if len(positional) < 2 {
		flags.Usage()
		return 1
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	log, closeLog, err := logger.New(firstNonEmpty(opts.logLevel, cfg.Log.Level), firstNonEmpty(opts.logFile, cfg.Log.File), stderr)
	if err != nil {
		fmt.Fprintf(stderr, "log file: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog.Close() }()

	if err := convert(opts, flags, cfg, positional[0], positional[1], stdout, log); err != nil {
		log.WithError(err).Error("conversion failed")
		return 1
	}
	return 0
}

func convert(opts options, flags *pflag.FlagSet, cfg *config.Config, input, output string, stdout io.Writer, log *logrus.Logger) error {
	themeName := opts.themeName
	if !flags.Changed("theme") && cfg.Theme != "" {
		themeName = cfg.Theme
	}
	theme, ok := kwpdf.ThemeByName(themeName)
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", themeName, strings.Join(kwpdf.AvailableThemes(), ", "))
	}
	styles, err := cfg.ApplyStyles(theme.Styles())
	if err != nil {
		return err
	}
	theme = kwpdf.NewTheme(theme.Name(), styles)

	labelsName := firstNonEmpty(opts.labelsName, cfg.Labels)
	labels, ok := kwpdf.LabelsByName(labelsName)
	if !ok {
		return fmt.Errorf("unknown labels %q (available: %s)", labelsName, strings.Join(kwpdf.AvailableLabels(), ", "))
	}

	inputPath, err := normalizeInput(input)
	if err != nil {
		return err
	}
	outputPath := output
	if output != kwpdf.StdoutPath {
		outputPath = normalizePath(output)
	}

	var renderer kwpdf.Renderer
	switch strings.ToLower(strings.TrimSpace(opts.format)) {
	case formatPDF:
		if outputPath == kwpdf.StdoutPath && preview.IsTerminal(stdout) {
			return fmt.Errorf("refusing to write PDF to terminal; give an output path")
		}
		pdfCfg := pdf.Config{PageSize: firstNonEmpty(opts.pageSize, cfg.Page.Size)}
		margin := opts.margin
		if margin <= 0 {
			margin = cfg.Page.Margin
		}
		if margin > 0 {
			pdfCfg.Margin = margin * kwpdf.PointsPerCM
		}
		renderer = pdf.New(pdfCfg)
	case formatText:
		osc8, err := resolveOSC8(opts.osc8, stdout, outputPath)
		if err != nil {
			return fmt.Errorf("invalid --osc8 %q: %w", opts.osc8, err)
		}
		renderer = preview.New(preview.Config{
			Width: resolveWidth(opts.width, stdout, outputPath),
			Color: !opts.boring && outputPath == kwpdf.StdoutPath && preview.IsTerminal(stdout),
			OSC8:  osc8,
		})
	default:
		return fmt.Errorf("unknown format %q: expected pdf|text", opts.format)
	}

	res, err := kwpdf.Convert(kwpdf.ConvertRequest{
		Input:    inputPath,
		Output:   outputPath,
		Renderer: renderer,
		Fonts:    fontCandidates(opts.fonts, cfg.Fonts),
		Theme:    theme,
		Labels:   &labels,
		Strict:   opts.strict,
		Logger:   log,
		Stdout:   stdout,
	})
	if err != nil {
		return err
	}

	if opts.verify && outputPath != kwpdf.StdoutPath {
		if _, isPDF := renderer.(*pdf.Renderer); isPDF {
			pages, err := pdf.VerifyFile(res.Path)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"path": res.Path, "pages": pages}).Info("document verified")
		}
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.PathFromEnv()
	}
	if path == "" {
		return &config.Config{}, nil
	}
	return config.Load(normalizePath(path))
}

// fontCandidates orders font paths as flags, then KWPDF_FONTS, then the
// config file, then the built-in list.
func fontCandidates(flagFonts, configFonts []string) []string {
	var out []string
	for _, group := range [][]string{flagFonts, config.FontsFromEnv(), configFonts} {
		for _, p := range group {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, normalizePath(p))
			}
		}
	}
	return append(out, kwpdf.DefaultFontCandidates()...)
}

func printNames(w io.Writer, names []string) {
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveWidth(width int, stdout io.Writer, output string) int {
	if width > 0 {
		return width
	}
	if output != kwpdf.StdoutPath {
		return defaultWidth
	}
	return preview.TerminalWidth(stdout, defaultWidth)
}

func resolveOSC8(mode string, stdout io.Writer, output string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return output == kwpdf.StdoutPath && preview.IsTerminal(stdout) && preview.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

// normalizeInput accepts plain paths and file:// URLs.
func normalizeInput(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return normalizePath(path), nil
		case "http", "https":
			return "", fmt.Errorf("remote input %q is not supported", raw)
		}
	}
	return normalizePath(raw), nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
