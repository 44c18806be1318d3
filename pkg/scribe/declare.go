package scribe

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Declaration is the YAML form of a document:
//
//	properties: {title: Guide, creator: Docs Team}
//	defaults:
//	  run: {font: Arial, size: 24}
//	styles:
//	  - id: Heading1
//	    basedOn: Normal
//	    run: {bold: true, size: 32}
//	    paragraph: {spacing: {before: 480, after: 240}, outlineLevel: 0}
//	numbering:
//	  - reference: bullets
//	    levels:
//	      - {level: 0, format: bullet, text: "•", indent: {left: 720, hanging: 360}}
//	sections:
//	  - page: {size: letter, margin: {top: 1440}}
//	    children:
//	      - {heading: 1, text: Introduction}
//	      - {text: First point, numbering: {reference: bullets}}
//	      - {pageBreak: true}
type Declaration struct {
	Properties PropertiesDecl  `yaml:"properties"`
	Defaults   DefaultsDecl    `yaml:"defaults"`
	Styles     []StyleDecl     `yaml:"styles"`
	Numbering  []NumberingDecl `yaml:"numbering"`
	Sections   []SectionDecl   `yaml:"sections"`
}

// PropertiesDecl is the document metadata written to docProps/core.xml.
type PropertiesDecl struct {
	Title       string    `yaml:"title"`
	Subject     string    `yaml:"subject"`
	Creator     string    `yaml:"creator"`
	Description string    `yaml:"description"`
	Keywords    []string  `yaml:"keywords"`
	Created     time.Time `yaml:"created"`
}

// DefaultsDecl sets the document-wide formatting held by the Normal style.
type DefaultsDecl struct {
	Run       RunProps           `yaml:"run"`
	Paragraph ParagraphPropsDecl `yaml:"paragraph"`
}

// SpacingDecl is the space before and after a paragraph, in twips.
type SpacingDecl struct {
	Before *int `yaml:"before"`
	After  *int `yaml:"after"`
}

// IndentDecl is a left and hanging indent, in twips.
type IndentDecl struct {
	Left    *int `yaml:"left"`
	Hanging *int `yaml:"hanging"`
}

// ParagraphPropsDecl is the paragraph formatting of a style or of the defaults.
type ParagraphPropsDecl struct {
	Alignment    string       `yaml:"alignment"`
	Spacing      *SpacingDecl `yaml:"spacing"`
	Indent       *IndentDecl  `yaml:"indent"`
	KeepNext     *bool        `yaml:"keepNext"`
	OutlineLevel *int         `yaml:"outlineLevel"`
}

// StyleDecl declares a paragraph style. An empty basedOn means Normal.
type StyleDecl struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	BasedOn     string             `yaml:"basedOn"`
	Next        string             `yaml:"next"`
	QuickFormat bool               `yaml:"quickFormat"`
	Run         RunProps           `yaml:"run"`
	Paragraph   ParagraphPropsDecl `yaml:"paragraph"`
}

// LevelDecl declares one level of a numbering scheme.
type LevelDecl struct {
	Level     int        `yaml:"level"`
	Format    string     `yaml:"format"`
	Text      string     `yaml:"text"`
	Alignment string     `yaml:"alignment"`
	Start     int        `yaml:"start"`
	Indent    IndentDecl `yaml:"indent"`
}

// NumberingDecl declares a numbering scheme that list paragraphs cite by reference.
type NumberingDecl struct {
	Reference string      `yaml:"reference"`
	Levels    []LevelDecl `yaml:"levels"`
}

// MarginDecl overrides individual page margins; unset margins keep the page defaults.
type MarginDecl struct {
	Top    *int `yaml:"top"`
	Right  *int `yaml:"right"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Header *int `yaml:"header"`
	Footer *int `yaml:"footer"`
}

// PageDecl is the page geometry of a section.
type PageDecl struct {
	// Size is a named page size: letter (default) or a4.
	Size        string     `yaml:"size"`
	Width       *int       `yaml:"width"`
	Height      *int       `yaml:"height"`
	Orientation string     `yaml:"orientation"`
	Margin      MarginDecl `yaml:"margin"`
}

// SectionDecl is a section with its page geometry and children.
type SectionDecl struct {
	Page     PageDecl    `yaml:"page"`
	Children []BlockDecl `yaml:"children"`
}

// RunDecl is a run of text with inline formatting overrides.
type RunDecl struct {
	Text     string `yaml:"text"`
	RunProps `yaml:",inline"`
}

// NumberingRefDecl cites a level of a numbering scheme.
type NumberingRefDecl struct {
	Reference string `yaml:"reference"`
	Level     int    `yaml:"level"`
}

// ParagraphDecl is a paragraph. Text is shorthand for a single unformatted run and
// Heading for the HeadingN style.
type ParagraphDecl struct {
	Text      *string           `yaml:"text"`
	Runs      []RunDecl         `yaml:"runs"`
	Style     string            `yaml:"style"`
	Heading   int               `yaml:"heading"`
	Alignment string            `yaml:"alignment"`
	Spacing   *SpacingDecl      `yaml:"spacing"`
	KeepNext  *bool             `yaml:"keepNext"`
	Numbering *NumberingRefDecl `yaml:"numbering"`
	PageBreak bool              `yaml:"pageBreak"`
}

// CellDecl is a table cell. Text is shorthand for a single text paragraph.
type CellDecl struct {
	Text       *string         `yaml:"text"`
	Paragraphs []ParagraphDecl `yaml:"paragraphs"`
	Width      int             `yaml:"width"`
	Shading    string          `yaml:"shading"`
}

// RowDecl is a table row; header rows repeat on every page.
type RowDecl struct {
	Header bool       `yaml:"header"`
	Cells  []CellDecl `yaml:"cells"`
}

// TableDecl is a table with optional column widths and border style.
type TableDecl struct {
	ColumnWidths []int     `yaml:"columnWidths"`
	Borders      string    `yaml:"borders"`
	Rows         []RowDecl `yaml:"rows"`
}

// BlockDecl is one child of a section: a paragraph, a table, or a code block.
type BlockDecl struct {
	ParagraphDecl `yaml:",inline"`
	Code          *string    `yaml:"code"`
	Table         *TableDecl `yaml:"table"`
}

// LoadDeclarationFile reads a YAML declaration from path and builds the document.
func LoadDeclarationFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration: %w", err)
	}
	doc, err := LoadDeclaration(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadDeclaration parses a YAML declaration and builds an unfinalized document.
// Only registry and shape errors are reported here; references between nodes and
// registries are checked by Finalize.
func LoadDeclaration(data []byte, opts ...Option) (*Document, error) {
	var decl Declaration
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("failed to parse declaration: %w", err)
	}
	return decl.Build(opts...)
}

// Build creates a document from the declaration.
func (decl *Declaration) Build(opts ...Option) (*Document, error) {
	doc := NewDocument(opts...)
	doc.Properties = Properties{
		Title:       decl.Properties.Title,
		Subject:     decl.Properties.Subject,
		Creator:     decl.Properties.Creator,
		Description: decl.Properties.Description,
		Keywords:    decl.Properties.Keywords,
		Created:     decl.Properties.Created,
	}

	defaults, _, err := decl.Defaults.Paragraph.props()
	if err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}
	if err := doc.Styles.SetDefaults(decl.Defaults.Run, defaults); err != nil {
		return nil, err
	}

	for i, sd := range decl.Styles {
		para, outline, err := sd.Paragraph.props()
		if err != nil {
			return nil, fmt.Errorf("styles[%d]: %w", i, err)
		}
		style := Style{
			ID:           StyleID(sd.ID),
			Name:         sd.Name,
			BasedOn:      StyleID(sd.BasedOn),
			Next:         StyleID(sd.Next),
			QuickFormat:  sd.QuickFormat,
			Run:          sd.Run,
			Paragraph:    para,
			OutlineLevel: outline,
		}
		if err := doc.DefineStyle(style); err != nil {
			return nil, fmt.Errorf("styles[%d]: %w", i, err)
		}
	}

	for i, nd := range decl.Numbering {
		levels := make([]NumberingLevel, 0, len(nd.Levels))
		for j, ld := range nd.Levels {
			align, ok := ParseAlignment(ld.Alignment)
			if !ok {
				return nil, fmt.Errorf("numbering[%d].levels[%d]: unknown alignment %q", i, j, ld.Alignment)
			}
			levels = append(levels, NumberingLevel{
				Level:     ld.Level,
				Format:    NumberFormat(ld.Format),
				Text:      ld.Text,
				Alignment: align,
				Start:     ld.Start,
				Indent:    Indent{Left: Measure(ld.Indent.Left), Hanging: Measure(ld.Indent.Hanging)},
			})
		}
		if err := doc.DefineNumbering(nd.Reference, levels...); err != nil {
			return nil, fmt.Errorf("numbering[%d]: %w", i, err)
		}
	}

	for i, sd := range decl.Sections {
		page, err := sd.Page.properties()
		if err != nil {
			return nil, fmt.Errorf("sections[%d].page: %w", i, err)
		}
		if err := doc.AddSection(page); err != nil {
			return nil, err
		}
		for j, bd := range sd.Children {
			nodes, err := bd.nodes()
			if err != nil {
				return nil, fmt.Errorf("sections[%d].children[%d]: %w", i, j, err)
			}
			if err := doc.Append(nodes...); err != nil {
				return nil, fmt.Errorf("sections[%d].children[%d]: %w", i, j, err)
			}
		}
	}
	return doc, nil
}

func (pd ParagraphPropsDecl) props() (ParagraphProps, *int, error) {
	align, ok := ParseAlignment(pd.Alignment)
	if !ok {
		return ParagraphProps{}, nil, fmt.Errorf("unknown alignment %q", pd.Alignment)
	}
	p := ParagraphProps{Alignment: align, KeepNext: pd.KeepNext}
	if pd.Spacing != nil {
		p.SpacingBefore = pd.Spacing.Before
		p.SpacingAfter = pd.Spacing.After
	}
	if pd.Indent != nil {
		p.IndentLeft = pd.Indent.Left
		p.IndentHanging = pd.Indent.Hanging
	}
	return p, pd.OutlineLevel, nil
}

func (pd PageDecl) properties() (PageProperties, error) {
	page, ok := PageSize(pd.Size)
	if !ok {
		return PageProperties{}, fmt.Errorf("unknown page size %q", pd.Size)
	}
	if pd.Width != nil {
		page.Width = *pd.Width
	}
	if pd.Height != nil {
		page.Height = *pd.Height
	}
	switch pd.Orientation {
	case "", "portrait":
	case "landscape":
		if !page.Landscape() {
			page.Width, page.Height = page.Height, page.Width
		}
	default:
		return PageProperties{}, fmt.Errorf("unknown orientation %q", pd.Orientation)
	}

	m := &page.Margins
	for _, f := range []struct {
		dst *int
		src *int
	}{
		{&m.Top, pd.Margin.Top}, {&m.Right, pd.Margin.Right}, {&m.Bottom, pd.Margin.Bottom},
		{&m.Left, pd.Margin.Left}, {&m.Header, pd.Margin.Header}, {&m.Footer, pd.Margin.Footer},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return page, nil
}

func (bd BlockDecl) nodes() ([]BlockNode, error) {
	switch {
	case bd.Table != nil:
		t, err := bd.Table.table()
		if err != nil {
			return nil, err
		}
		return []BlockNode{t}, nil
	case bd.Code != nil:
		style := StyleID(bd.Style)
		if style == "" {
			style = "CodeBlock"
		}
		return CodeBlock(style, *bd.Code), nil
	}
	p, err := bd.ParagraphDecl.paragraph()
	if err != nil {
		return nil, err
	}
	return []BlockNode{p}, nil
}

func (pd ParagraphDecl) paragraph() (*Paragraph, error) {
	p := &Paragraph{
		Style:         StyleID(pd.Style),
		KeepNext:      pd.KeepNext,
		PageBreakOnly: pd.PageBreak,
	}
	if pd.Heading > 0 {
		if pd.Style != "" {
			return nil, fmt.Errorf("heading and style are mutually exclusive")
		}
		p.Style = HeadingStyle(pd.Heading)
	}
	align, ok := ParseAlignment(pd.Alignment)
	if !ok {
		return nil, fmt.Errorf("unknown alignment %q", pd.Alignment)
	}
	p.Alignment = align
	if pd.Spacing != nil {
		p.Spacing = &Spacing{Before: pd.Spacing.Before, After: pd.Spacing.After}
	}
	if pd.Numbering != nil {
		p.Numbering = &NumberingRef{Reference: pd.Numbering.Reference, Level: pd.Numbering.Level}
	}
	if pd.Text != nil {
		p.Runs = append(p.Runs, Text(*pd.Text))
	}
	for _, rd := range pd.Runs {
		p.Runs = append(p.Runs, NewRun(rd.Text, rd.RunProps))
	}
	return p, nil
}

func (td *TableDecl) table() (*Table, error) {
	t := NewTable()
	t.ColumnWidths = td.ColumnWidths
	if td.Borders != "" {
		t.Borders = BorderStyle(td.Borders)
	}
	for i, rd := range td.Rows {
		row := Row{Header: rd.Header}
		for j, cd := range rd.Cells {
			cell := Cell{Width: cd.Width, Shading: cd.Shading}
			if cd.Text != nil {
				cell.Content = append(cell.Content, TextParagraph(*cd.Text))
			}
			for k, pd := range cd.Paragraphs {
				p, err := pd.paragraph()
				if err != nil {
					return nil, fmt.Errorf("rows[%d].cells[%d].paragraphs[%d]: %w", i, j, k, err)
				}
				cell.Content = append(cell.Content, p)
			}
			row.Cells = append(row.Cells, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
