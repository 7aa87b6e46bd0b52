package kwpdf

import (
	"fmt"
	"strings"
)

const (
	defaultKeywords  = "N/A"
	defaultDate      = "N/A"
	defaultMainTopic = "Unknown"
	defaultTitle     = "Untitled"

	sectionGapCM = 0.3
	clusterGapCM = 0.2
	urlFontSize  = 10
	bullet       = "• "
)

// AssembleOption configures Assemble.
type AssembleOption func(*assembleConfig)

type assembleConfig struct {
	labels     Labels
	normalizer *Normalizer
}

// WithLabels sets the label set used for titles and section headings.
func WithLabels(labels Labels) AssembleOption {
	return func(cfg *assembleConfig) {
		cfg.labels = labels
	}
}

// WithNormalizer replaces the default Markdown stripping rules.
func WithNormalizer(n *Normalizer) AssembleOption {
	return func(cfg *assembleConfig) {
		if n != nil {
			cfg.normalizer = n
		}
	}
}

// Assemble maps a report onto the fixed block sequence of the document.
func Assemble(r Report, opts ...AssembleOption) []Block {
	cfg := assembleConfig{labels: DefaultLabels(), normalizer: defaultNormalizer}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	a := assembler{labels: cfg.labels, norm: cfg.normalizer}
	a.header(r)
	a.summary(r)
	a.related(r.RelatedClusters)
	a.analysis(r)
	a.contents(r.Bookmarks)
	a.details(r.Bookmarks)
	return a.blocks
}

type assembler struct {
	labels Labels
	norm   *Normalizer
	blocks []Block
}

func (a *assembler) add(b ...Block) {
	a.blocks = append(a.blocks, b...)
}

func (a *assembler) section(heading string) {
	a.add(pageBreakBlock(), headingBlock(heading))
}

func (a *assembler) header(r Report) {
	a.add(
		titleBlock(fmt.Sprintf(a.labels.Title, r.Keywords.Or(defaultKeywords))),
		bodyBlock(fmt.Sprintf(a.labels.Period, r.DateRange.Start.Or(defaultDate), r.DateRange.End.Or(defaultDate))),
		spacerBlock(sectionGapCM),
	)
}

func (a *assembler) summary(r Report) {
	a.section(a.labels.Summary)
	a.prose(a.norm.Normalize(r.SummaryValue()))
}

func (a *assembler) related(clusters []Cluster) {
	a.section(a.labels.Related)
	for _, c := range clusters {
		a.add(subheadingBlock(c.MainTopic.Or(defaultMainTopic)))
		for _, w := range c.RelatedWords {
			a.add(listItemBlock(bullet + w.String()))
		}
		a.add(spacerBlock(clusterGapCM))
	}
}

func (a *assembler) analysis(r Report) {
	a.section(a.labels.Analysis)
	a.prose(a.norm.Normalize(r.Analysis.Value()))
}

func (a *assembler) contents(bookmarks []Bookmark) {
	a.section(a.labels.Contents)
	for i, b := range bookmarks {
		a.add(listItemBlock(fmt.Sprintf("%d. %s", i+1, b.Title.Or(defaultTitle))))
	}
}

func (a *assembler) details(bookmarks []Bookmark) {
	a.section(a.labels.Details)
	for i, b := range bookmarks {
		a.add(subheadingBlock(fmt.Sprintf("%d. %s", i+1, b.Title.Or(defaultTitle))))
		if url := b.URL.String(); url != "" {
			link := bodyBlock(a.labels.URLPrefix + url)
			link.Size = urlFontSize
			a.add(link)
		}
		label := bodyBlock(a.labels.SummaryLabel)
		label.Bold = true
		a.add(label)
		for _, line := range splitLines(a.norm.Normalize(b.Summary.Value())) {
			if isListLine(line) {
				a.add(listItemBlock(line))
			} else {
				a.add(listItemBlock(bullet + line))
			}
		}
		a.add(spacerBlock(sectionGapCM))
	}
}

// prose emits one block per non-blank line: list lines become list items,
// everything else a body paragraph. A section gap follows when at least one
// line was emitted.
func (a *assembler) prose(text string) {
	lines := splitLines(text)
	for _, line := range lines {
		if isListLine(line) {
			a.add(listItemBlock(line))
		} else {
			a.add(bodyBlock(line))
		}
	}
	if len(lines) > 0 {
		a.add(spacerBlock(sectionGapCM))
	}
}

// splitLines splits text on line feeds and drops blank lines. Lines are
// returned untrimmed.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isListLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-")
}
