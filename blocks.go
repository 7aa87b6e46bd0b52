package kwpdf

import (
	"fmt"
	"strings"
)

// BlockKind tags a Block.
type BlockKind uint8

const (
	// BlockTitle is the document title.
	BlockTitle BlockKind = iota
	// BlockHeading marks the start of a section.
	BlockHeading
	// BlockSubheading introduces a cluster or a bookmark.
	BlockSubheading
	// BlockBody is a plain paragraph.
	BlockBody
	// BlockListItem is a bulleted or numbered line.
	BlockListItem
	// BlockSpacer is vertical whitespace of Height points.
	BlockSpacer
	// BlockPageBreak starts a new page.
	BlockPageBreak
)

var blockKindNames = [...]string{
	BlockTitle:      "title",
	BlockHeading:    "heading",
	BlockSubheading: "subheading",
	BlockBody:       "body",
	BlockListItem:   "list-item",
	BlockSpacer:     "spacer",
	BlockPageBreak:  "page-break",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return fmt.Sprintf("BlockKind(%d)", uint8(k))
}

// StyleID names an entry of the style table.
type StyleID string

const (
	StyleTitle      StyleID = "title"
	StyleHeading    StyleID = "heading"
	StyleSubheading StyleID = "subheading"
	StyleBody       StyleID = "body"
	StyleListItem   StyleID = "list-item"
)

// StyleIDs lists every style identifier in table order.
func StyleIDs() []StyleID {
	return []StyleID{StyleTitle, StyleHeading, StyleSubheading, StyleBody, StyleListItem}
}

// Block is one styled unit of document content.
type Block struct {
	Kind  BlockKind
	Style StyleID
	Text  string
	// Bold renders Text in the bold face of the style's font.
	Bold bool
	// Size overrides the style's point size when > 0.
	Size float64
	// Height is the spacer height in points.
	Height float64
}

// IsText reports whether the block carries text.
func (b Block) IsText() bool {
	return b.Kind != BlockSpacer && b.Kind != BlockPageBreak
}

// String renders the block on a single line, the format used by golden files.
func (b Block) String() string {
	switch b.Kind {
	case BlockSpacer:
		return fmt.Sprintf("spacer %.2f", b.Height)
	case BlockPageBreak:
		return "page-break"
	}
	var attrs []string
	if b.Style != "" && string(b.Style) != b.Kind.String() {
		attrs = append(attrs, "style="+string(b.Style))
	}
	if b.Bold {
		attrs = append(attrs, "bold")
	}
	if b.Size > 0 {
		attrs = append(attrs, fmt.Sprintf("size=%g", b.Size))
	}
	var sb strings.Builder
	sb.WriteString(b.Kind.String())
	if len(attrs) > 0 {
		sb.WriteByte('[')
		sb.WriteString(strings.Join(attrs, ","))
		sb.WriteByte(']')
	}
	sb.WriteByte(' ')
	sb.WriteString(fmt.Sprintf("%q", b.Text))
	return sb.String()
}

// FormatBlocks renders blocks one per line using Block.String.
func FormatBlocks(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PointsPerCM converts centimeters to PDF points.
const PointsPerCM = 72.0 / 2.54

func titleBlock(text string) Block {
	return Block{Kind: BlockTitle, Style: StyleTitle, Text: text}
}

func headingBlock(text string) Block {
	return Block{Kind: BlockHeading, Style: StyleHeading, Text: text}
}

func subheadingBlock(text string) Block {
	return Block{Kind: BlockSubheading, Style: StyleSubheading, Text: text, Bold: true}
}

func bodyBlock(text string) Block {
	return Block{Kind: BlockBody, Style: StyleBody, Text: text}
}

func listItemBlock(text string) Block {
	return Block{Kind: BlockListItem, Style: StyleListItem, Text: text}
}

func spacerBlock(cm float64) Block {
	return Block{Kind: BlockSpacer, Height: cm * PointsPerCM}
}

func pageBreakBlock() Block {
	return Block{Kind: BlockPageBreak}
}
