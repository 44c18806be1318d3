package scribe

import (
	"fmt"
	"strings"
)

// BlockNode is a node that can be appended to a section: a *Paragraph or a *Table.
type BlockNode interface {
	isBlockNode()
	clone() BlockNode
}

// Run is a contiguous piece of text with its own formatting overrides.
// A run never names a style; its effective formatting is the paragraph style
// merged with Props, where Props wins.
type Run struct {
	Text  string
	Props RunProps
}

// NewRun creates a run with formatting overrides.
func NewRun(text string, props RunProps) Run {
	return Run{Text: text, Props: props}
}

// Text creates a run without overrides.
func Text(text string) Run {
	return Run{Text: text}
}

// Bold creates a bold run.
func Bold(text string) Run {
	return Run{Text: text, Props: RunProps{Bold: Bool(true)}}
}

// Italic creates an italic run.
func Italic(text string) Run {
	return Run{Text: text, Props: RunProps{Italics: Bool(true)}}
}

// NumberingRef cites a level of a numbering scheme.
type NumberingRef struct {
	Reference string
	Level     int
}

// Spacing is the space before and after a paragraph, in twips.
type Spacing struct {
	Before *int
	After  *int
}

// Paragraph is a block of runs.
type Paragraph struct {
	Runs      []Run
	Style     StyleID
	Numbering *NumberingRef
	Alignment Alignment
	Spacing   *Spacing
	KeepNext  *bool
	// PageBreakOnly marks a paragraph that exists solely to force a page break.
	// It must carry no runs.
	PageBreakOnly bool
}

func (p *Paragraph) isBlockNode() {}

func (p *Paragraph) clone() BlockNode {
	return p.copy()
}

func (p *Paragraph) copy() *Paragraph {
	if p == nil {
		return nil
	}
	out := *p
	if p.Runs != nil {
		out.Runs = make([]Run, len(p.Runs))
		for i, run := range p.Runs {
			out.Runs[i] = Run{Text: run.Text, Props: run.Props.clone()}
		}
	}
	if p.Numbering != nil {
		n := *p.Numbering
		out.Numbering = &n
	}
	if p.Spacing != nil {
		out.Spacing = &Spacing{Before: cloneInt(p.Spacing.Before), After: cloneInt(p.Spacing.After)}
	}
	out.KeepNext = cloneBool(p.KeepNext)
	return &out
}

// NewParagraph creates a paragraph from runs.
func NewParagraph(runs ...Run) *Paragraph {
	return &Paragraph{Runs: runs}
}

// TextParagraph creates a paragraph holding a single unformatted run.
func TextParagraph(text string) *Paragraph {
	return &Paragraph{Runs: []Run{Text(text)}}
}

// HeadingStyle returns the style id used for heading level n ("Heading1" for n=1).
func HeadingStyle(n int) StyleID {
	return StyleID(fmt.Sprintf("Heading%d", n))
}

// Heading creates a paragraph in the HeadingN style.
func Heading(level int, runs ...Run) *Paragraph {
	return &Paragraph{Runs: runs, Style: HeadingStyle(level)}
}

// ListItem creates a paragraph citing (reference, level) of a numbering scheme.
func ListItem(reference string, level int, runs ...Run) *Paragraph {
	return &Paragraph{Runs: runs, Numbering: &NumberingRef{Reference: reference, Level: level}}
}

// PageBreak creates a paragraph whose only purpose is to start a new page.
func PageBreak() *Paragraph {
	return &Paragraph{PageBreakOnly: true}
}

// CodeBlock splits code into one paragraph per line, each in style.
// Blank lines keep an empty run so they survive as empty lines.
func CodeBlock(style StyleID, code string) []BlockNode {
	code = strings.TrimRight(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	lines := strings.Split(code, "\n")
	out := make([]BlockNode, 0, len(lines))
	for _, line := range lines {
		out = append(out, &Paragraph{Runs: []Run{Text(line)}, Style: style})
	}
	return out
}

// WithStyle sets the paragraph style and returns p.
func (p *Paragraph) WithStyle(id StyleID) *Paragraph {
	p.Style = id
	return p
}

// WithAlignment sets the paragraph alignment and returns p.
func (p *Paragraph) WithAlignment(a Alignment) *Paragraph {
	p.Alignment = a
	return p
}

// WithSpacing sets spacing before and after and returns p.
func (p *Paragraph) WithSpacing(before, after int) *Paragraph {
	p.Spacing = &Spacing{Before: Int(before), After: Int(after)}
	return p
}

// WithSpacingAfter sets only the spacing after and returns p.
func (p *Paragraph) WithSpacingAfter(after int) *Paragraph {
	if p.Spacing == nil {
		p.Spacing = &Spacing{}
	}
	p.Spacing.After = Int(after)
	return p
}

// WithSpacingBefore sets only the spacing before and returns p.
func (p *Paragraph) WithSpacingBefore(before int) *Paragraph {
	if p.Spacing == nil {
		p.Spacing = &Spacing{}
	}
	p.Spacing.Before = Int(before)
	return p
}

// WithNumbering cites (reference, level) and returns p.
func (p *Paragraph) WithNumbering(reference string, level int) *Paragraph {
	p.Numbering = &NumberingRef{Reference: reference, Level: level}
	return p
}

// BorderStyle is the line style of table borders.
type BorderStyle string

const (
	BorderNone   BorderStyle = "none"
	BorderSingle BorderStyle = "single"
	BorderDouble BorderStyle = "double"
)

// Cell is a table cell holding paragraphs.
type Cell struct {
	Content []*Paragraph
	// Width in twips; zero leaves it to the column width.
	Width int
	// Shading is an RRGGBB fill color.
	Shading string
}

// Row is a table row.
type Row struct {
	Cells []Cell
	// Header repeats the row at the top of every page the table spans.
	Header bool
}

// Table is a grid of cells. Tables take part in style resolution only
// through the paragraphs they contain.
type Table struct {
	Rows []Row
	// ColumnWidths in twips, one per column.
	ColumnWidths []int
	Borders      BorderStyle
}

func (t *Table) isBlockNode() {}

func (t *Table) clone() BlockNode {
	out := &Table{
		Rows:         make([]Row, len(t.Rows)),
		ColumnWidths: append([]int(nil), t.ColumnWidths...),
		Borders:      t.Borders,
	}
	for i, row := range t.Rows {
		cells := make([]Cell, len(row.Cells))
		for j, cell := range row.Cells {
			content := make([]*Paragraph, len(cell.Content))
			for k, p := range cell.Content {
				content[k] = p.copy()
			}
			cells[j] = Cell{Content: content, Width: cell.Width, Shading: cell.Shading}
		}
		out.Rows[i] = Row{Cells: cells, Header: row.Header}
	}
	return out
}

// NewTable creates a table from rows.
func NewTable(rows ...Row) *Table {
	return &Table{Rows: rows, Borders: BorderSingle}
}

// NewRow creates a row from cells.
func NewRow(cells ...Cell) Row {
	return Row{Cells: cells}
}

// NewHeaderRow creates a row repeated at the top of each page.
func NewHeaderRow(cells ...Cell) Row {
	return Row{Cells: cells, Header: true}
}

// NewCell creates a cell from paragraphs.
func NewCell(content ...*Paragraph) Cell {
	return Cell{Content: content}
}

// TextCell creates a cell holding a single text paragraph.
func TextCell(text string) Cell {
	return Cell{Content: []*Paragraph{TextParagraph(text)}}
}

// WithColumnWidths sets the column widths and returns t.
func (t *Table) WithColumnWidths(widths ...int) *Table {
	t.ColumnWidths = widths
	return t
}
