package docx

import (
	"strconv"

	"github.com/benjaminschreck/go-scribe/pkg/scribe"
	"github.com/benjaminschreck/go-scribe/pkg/scribe/xml"
)

type listKey struct {
	reference string
	sequence  int
}

// builder converts a resolved document into document and numbering parts. Each
// list run gets its own numbering instance so a restarted list starts again in
// every consumer, not only in this package's ordinals.
type builder struct {
	doc      *scribe.ResolvedDocument
	abstract map[string]int
	numIDs   map[listKey]int
	nums     []xml.Num
}

func newBuilder(doc *scribe.ResolvedDocument) *builder {
	b := &builder{
		doc:      doc,
		abstract: make(map[string]int),
		numIDs:   make(map[listKey]int),
	}
	for i, ref := range doc.Numbering.References() {
		b.abstract[ref] = i
	}
	return b
}

func (b *builder) document() *xml.Document {
	var body xml.Body
	for i, s := range b.doc.Sections {
		for _, block := range s.Blocks {
			switch n := block.(type) {
			case *scribe.ResolvedParagraph:
				body.Elements = append(body.Elements, b.paragraph(n))
			case *scribe.ResolvedTable:
				body.Elements = append(body.Elements, b.table(n, s.Page))
			}
		}

		sectPr := sectionProperties(s.Page)
		if i == len(b.doc.Sections)-1 {
			body.SectionProperties = sectPr
			continue
		}
		// An earlier section ends with a paragraph carrying its properties
		body.Elements = append(body.Elements, &xml.Paragraph{
			Properties: &xml.ParagraphProperties{SectionProperties: sectPr},
		})
	}
	if len(b.doc.Sections) == 0 {
		body.SectionProperties = sectionProperties(scribe.LetterPortrait())
	}
	return &xml.Document{Body: body}
}

func sectionProperties(page scribe.PageProperties) *xml.SectionProperties {
	m := page.Margins
	return &xml.SectionProperties{
		PageSize: xml.PageSize{Width: page.Width, Height: page.Height, Landscape: page.Landscape()},
		PageMargins: xml.PageMargins{
			Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left,
			Header: m.Header, Footer: m.Footer,
		},
	}
}

func (b *builder) paragraph(p *scribe.ResolvedParagraph) *xml.Paragraph {
	if p.PageBreak {
		return &xml.Paragraph{Runs: []xml.Run{{Break: xml.PageBreak()}}}
	}

	props := paragraphProperties(p.Direct)
	if p.Style != scribe.DefaultStyleID {
		props.Style = &xml.Val{Val: string(p.Style)}
	}
	if p.List != nil {
		props.Numbering = &xml.NumberingProperties{Level: p.List.Level, NumID: b.numID(p.List)}
	}

	out := &xml.Paragraph{Runs: make([]xml.Run, len(p.Runs))}
	if !props.IsZero() {
		out.Properties = props
	}
	for i, r := range p.Runs {
		run := xml.Run{Text: xml.NewText(r.Text)}
		if rp := runProperties(r.Overrides); !rp.IsZero() {
			run.Properties = rp
		}
		out.Runs[i] = run
	}
	return out
}

// numID returns the numbering instance of the item's list run, allocating it on
// first use. Runs after the first restart every level at its start value.
func (b *builder) numID(item *scribe.ListMarker) int {
	key := listKey{reference: item.Reference, sequence: item.Sequence}
	if id, ok := b.numIDs[key]; ok {
		return id
	}

	id := len(b.nums) + 1
	num := xml.Num{ID: id, AbstractNumID: b.abstract[item.Reference]}
	if item.Sequence > 0 {
		def, _ := b.doc.Numbering.Lookup(item.Reference)
		num.StartOverrides = make(map[int]int, len(def.Levels))
		for _, lvl := range def.Levels {
			num.StartOverrides[lvl.Level] = lvl.StartAt()
		}
	}
	b.nums = append(b.nums, num)
	b.numIDs[key] = id
	return id
}

func (b *builder) numbering() *xml.Numbering {
	refs := b.doc.Numbering.References()
	if len(refs) == 0 {
		return nil
	}
	out := &xml.Numbering{Nums: b.nums}
	for _, ref := range refs {
		def, _ := b.doc.Numbering.Lookup(ref)
		abs := xml.AbstractNum{ID: b.abstract[ref]}
		for _, lvl := range def.Levels {
			abs.Levels = append(abs.Levels, xml.Level{
				Ilvl:      lvl.Level,
				Start:     lvl.StartAt(),
				Format:    string(lvl.Format),
				Text:      levelText(lvl),
				Alignment: string(lvl.Alignment),
				Left:      lvl.Indent.Left,
				Hanging:   lvl.Indent.Hanging,
			})
		}
		out.AbstractNums = append(out.AbstractNums, abs)
	}
	return out
}

func levelText(lvl scribe.NumberingLevel) string {
	switch lvl.Format {
	case scribe.FormatBullet:
		if lvl.Text == "" {
			return "•"
		}
	case scribe.FormatNone:
		return ""
	default:
		if lvl.Text == "" {
			return "%" + strconv.Itoa(lvl.Level+1) + "."
		}
	}
	return lvl.Text
}

func (b *builder) table(t *scribe.ResolvedTable, page scribe.PageProperties) *xml.Table {
	cols := t.Columns()
	grid := append([]int(nil), t.ColumnWidths...)
	if len(grid) < cols {
		// Share what remains of the text width among columns without a width
		used := 0
		for _, w := range grid {
			used += w
		}
		free := page.Width - page.Margins.Left - page.Margins.Right - used
		missing := cols - len(grid)
		each := 0
		if free > 0 {
			each = free / missing
		}
		for len(grid) < cols {
			grid = append(grid, each)
		}
	}

	total := 0
	for _, w := range grid {
		total += w
	}
	props := &xml.TableProperties{
		Width:   &xml.Width{W: total, Type: "dxa"},
		Borders: tableBorders(t.Borders),
	}
	if len(t.ColumnWidths) > 0 {
		props.Layout = "fixed"
	}

	out := &xml.Table{Properties: props, Grid: grid}
	for _, row := range t.Rows {
		xr := xml.TableRow{Header: row.Header}
		for j, cell := range row.Cells {
			xc := xml.TableCell{Shading: cell.Shading}
			width := cell.Width
			if width == 0 && j < len(grid) {
				width = grid[j]
			}
			if width > 0 {
				xc.Width = &xml.Width{W: width, Type: "dxa"}
			}
			for _, p := range cell.Paragraphs {
				xc.Paragraphs = append(xc.Paragraphs, *b.paragraph(p))
			}
			xr.Cells = append(xr.Cells, xc)
		}
		out.Rows = append(out.Rows, xr)
	}
	return out
}

func tableBorders(style scribe.BorderStyle) *xml.TableBorders {
	switch style {
	case scribe.BorderNone:
		return &xml.TableBorders{Border: xml.Border{Val: "nil", Color: "auto"}}
	case scribe.BorderDouble:
		return &xml.TableBorders{Border: xml.Border{Val: "double", Size: 4, Color: "auto"}}
	default:
		return &xml.TableBorders{Border: xml.Border{Val: "single", Size: 4, Color: "auto"}}
	}
}
