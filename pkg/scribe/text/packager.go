// Package text renders resolved documents as plain text for previews and diffs.
package text

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/benjaminschreck/go-scribe/pkg/scribe"
)

// DefaultWidth is the line width used to align centered and right-aligned paragraphs.
const DefaultWidth = 72

// Packager writes a plain-text rendering. Headings are prefixed with one '#' per
// outline level, list items with their label, and page breaks become form feeds.
type Packager struct {
	width int
}

// Option configures a Packager
type Option func(*Packager)

// WithWidth sets the line width used for alignment.
func WithWidth(width int) Option {
	return func(p *Packager) {
		if width > 0 {
			p.width = width
		}
	}
}

// New creates a text packager.
func New(opts ...Option) *Packager {
	p := &Packager{width: DefaultWidth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name identifies the packager in errors and logs.
func (p *Packager) Name() string {
	return "text"
}

// Package renders doc as UTF-8 text.
func (p *Packager) Package(ctx context.Context, doc *scribe.ResolvedDocument) ([]byte, error) {
	var buf bytes.Buffer
	if doc.Properties.Title != "" {
		buf.WriteString(doc.Properties.Title)
		buf.WriteString("\n\n")
	}
	for i, s := range doc.Sections {
		if i > 0 {
			buf.WriteString("\f\n")
		}
		for _, block := range s.Blocks {
			switch n := block.(type) {
			case *scribe.ResolvedParagraph:
				buf.WriteString(p.paragraph(n))
				buf.WriteByte('\n')
			case *scribe.ResolvedTable:
				p.table(&buf, n)
			}
		}
	}
	return buf.Bytes(), nil
}

func (p *Packager) paragraph(para *scribe.ResolvedParagraph) string {
	if para.PageBreak {
		return "\f"
	}

	line := para.Text()
	switch {
	case para.List != nil:
		indent := strings.Repeat("  ", para.List.Level)
		if para.List.Label != "" {
			line = para.List.Label + " " + line
		}
		return indent + line
	case para.OutlineLevel != nil:
		return strings.Repeat("#", *para.OutlineLevel+1) + " " + line
	}

	pad := p.width - utf8.RuneCountInString(line)
	if pad <= 0 {
		return line
	}
	switch para.Props.Alignment {
	case scribe.AlignCenter:
		return strings.Repeat(" ", pad/2) + line
	case scribe.AlignRight:
		return strings.Repeat(" ", pad) + line
	}
	return line
}

func (p *Packager) table(buf *bytes.Buffer, t *scribe.ResolvedTable) {
	for _, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			texts := make([]string, len(cell.Paragraphs))
			for j, para := range cell.Paragraphs {
				texts[j] = strings.TrimSpace(p.paragraph(para))
			}
			cells[i] = strings.Join(texts, " / ")
		}
		buf.WriteString("| ")
		buf.WriteString(strings.Join(cells, " | "))
		buf.WriteString(" |\n")
		if row.Header {
			buf.WriteString("|")
			for range cells {
				buf.WriteString("---|")
			}
			buf.WriteByte('\n')
		}
	}
}
