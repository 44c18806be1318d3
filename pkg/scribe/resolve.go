package scribe

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResolvedDocument is a frozen document whose every reference has been checked and
// whose formatting has been merged. It is produced only by Document.Finalize.
type ResolvedDocument struct {
	// ID is a name-based UUID derived from the resolved content.
	ID         uuid.UUID
	Properties Properties
	Styles     *StyleRegistry
	Numbering  *NumberingRegistry
	Sections   []ResolvedSection
}

// frozen reports whether the document came out of a successful Finalize.
func (d *ResolvedDocument) frozen() bool {
	return d != nil && d.Styles != nil && d.Styles.Frozen() && d.Numbering != nil && d.Numbering.Frozen()
}

// ResolvedSection is a section with resolved children.
type ResolvedSection struct {
	Page   PageProperties
	Blocks []ResolvedBlock
}

// ResolvedBlock is a *ResolvedParagraph or a *ResolvedTable.
type ResolvedBlock interface {
	isResolvedBlock()
}

// ResolvedRun is a run with its effective formatting.
type ResolvedRun struct {
	Text string
	// Props is the paragraph style's run formatting merged with Overrides.
	Props RunProps
	// Overrides are the run's own properties as declared.
	Overrides RunProps
}

// ListMarker describes a paragraph's place in a numbered or bulleted list.
type ListMarker struct {
	Reference string
	// Level is the level actually applied, after fallback to the lowest defined level.
	Level int
	Rules NumberingLevel
	// Ordinal is the item's counter at Level within its list run.
	Ordinal int
	// Sequence numbers the list runs of Reference across the document, from 0.
	Sequence int
	Label    string
}

// ResolvedParagraph is a paragraph with its effective formatting.
type ResolvedParagraph struct {
	Style StyleID
	// Direct holds the properties set on the paragraph itself.
	Direct ParagraphProps
	// Props is Direct merged over the numbering indent, merged over the style.
	Props        ParagraphProps
	OutlineLevel *int
	Runs         []ResolvedRun
	List         *ListMarker
	PageBreak    bool
}

func (p *ResolvedParagraph) isResolvedBlock() {}

// Text returns the concatenated text of the paragraph's runs.
func (p *ResolvedParagraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// ResolvedCell is a table cell with resolved paragraphs.
type ResolvedCell struct {
	Paragraphs []*ResolvedParagraph
	Width      int
	Shading    string
}

// ResolvedRow is a table row.
type ResolvedRow struct {
	Cells  []ResolvedCell
	Header bool
}

// ResolvedTable is a table with resolved cells.
type ResolvedTable struct {
	Rows         []ResolvedRow
	ColumnWidths []int
	Borders      BorderStyle
}

func (t *ResolvedTable) isResolvedBlock() {}

// Columns returns the widest row's cell count.
func (t *ResolvedTable) Columns() int {
	n := len(t.ColumnWidths)
	for _, row := range t.Rows {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}
	return n
}

// listScope tracks the list run in progress within one ordered block sequence.
type listScope struct {
	reference string
	sequence  int
	counters  []int
}

func (s *listScope) reset() {
	s.reference = ""
	s.counters = nil
}

// resolver walks a document once, collecting every defect and building the resolved tree.
type resolver struct {
	doc      *Document
	errs     *ValidationError
	broken   map[StyleID]bool
	listRuns map[string]int
}

func newResolver(doc *Document) *resolver {
	return &resolver{
		doc:      doc,
		errs:     &ValidationError{},
		broken:   make(map[StyleID]bool),
		listRuns: make(map[string]int),
	}
}

func (r *resolver) resolve() *ResolvedDocument {
	r.checkStyles()

	props := r.doc.Properties
	props.Keywords = append([]string(nil), props.Keywords...)
	out := &ResolvedDocument{
		Properties: props,
		Styles:     r.doc.Styles,
		Numbering:  r.doc.Numbering,
		Sections:   make([]ResolvedSection, 0, len(r.doc.sections)),
	}
	for i, s := range r.doc.sections {
		path := fmt.Sprintf("sections[%d]", i)
		r.checkPage(path+".page", s.Page)

		scope := &listScope{}
		blocks := make([]ResolvedBlock, 0, len(s.children))
		for j, child := range s.children {
			childPath := fmt.Sprintf("%s.children[%d]", path, j)
			switch n := child.(type) {
			case *Paragraph:
				if rp := r.paragraph(childPath, n, scope); rp != nil {
					blocks = append(blocks, rp)
				}
			case *Table:
				scope.reset()
				if rt := r.table(childPath, n); rt != nil {
					blocks = append(blocks, rt)
				}
			}
		}
		out.Sections = append(out.Sections, ResolvedSection{Page: s.Page, Blocks: blocks})
	}
	return out
}

// checkStyles resolves every registered style so broken chains are reported once,
// even when no paragraph uses them.
func (r *resolver) checkStyles() {
	reported := make(map[string]bool)
	for _, id := range r.doc.Styles.IDs() {
		def, _ := r.doc.Styles.Lookup(id)
		path := fmt.Sprintf("styles[%s]", id)
		r.checkRunProps(path+".run", def.Run)
		r.checkParagraphProps(path+".paragraph", def.Paragraph)
		if _, ok := ParseAlignment(string(def.Paragraph.Alignment)); !ok {
			r.errs.add(&InvalidValueError{Path: path + ".paragraph", Field: "alignment", Value: def.Paragraph.Alignment, Message: "unknown alignment"})
		}
		if def.OutlineLevel != nil && (*def.OutlineLevel < 0 || *def.OutlineLevel > 9) {
			r.errs.add(&InvalidValueError{Path: path, Field: "outlineLevel", Value: *def.OutlineLevel, Message: "must be between 0 and 9"})
		}

		if _, err := r.doc.Styles.Resolve(id); err != nil {
			r.broken[id] = true
			key := chainErrorKey(err)
			if reported[key] {
				continue
			}
			reported[key] = true
			switch e := err.(type) {
			case *UnknownStyleError:
				e.Path = path
			case *CyclicStyleError:
				e.Path = path
			}
			r.errs.add(err)
		}
	}
}

// chainErrorKey identifies the root cause of a chain error so that every style
// sharing a broken ancestor does not report it again.
func chainErrorKey(err error) string {
	switch e := err.(type) {
	case *UnknownStyleError:
		return "unknown:" + string(e.ReferencedBy) + "->" + string(e.ID)
	case *CyclicStyleError:
		last := e.Chain[len(e.Chain)-1]
		start := 0
		for i, id := range e.Chain {
			if id == last {
				start = i
				break
			}
		}
		members := make([]string, 0, len(e.Chain)-start)
		for _, id := range e.Chain[start : len(e.Chain)-1] {
			members = append(members, string(id))
		}
		sort.Strings(members)
		return "cycle:" + strings.Join(members, ",")
	}
	return err.Error()
}

func (r *resolver) checkPage(path string, p PageProperties) {
	if p.Width <= 0 {
		r.errs.add(&InvalidValueError{Path: path, Field: "width", Value: p.Width, Message: "must be positive"})
	}
	if p.Height <= 0 {
		r.errs.add(&InvalidValueError{Path: path, Field: "height", Value: p.Height, Message: "must be positive"})
	}
	m := p.Margins
	for _, f := range []struct {
		name string
		val  int
	}{
		{"margins.top", m.Top}, {"margins.right", m.Right}, {"margins.bottom", m.Bottom},
		{"margins.left", m.Left}, {"margins.header", m.Header}, {"margins.footer", m.Footer},
	} {
		if f.val < 0 {
			r.errs.add(&InvalidValueError{Path: path, Field: f.name, Value: f.val, Message: "must not be negative"})
		}
	}
	if p.Width > 0 && m.Left >= 0 && m.Right >= 0 && m.Left+m.Right >= p.Width {
		r.errs.add(&InvalidValueError{Path: path, Field: "margins", Value: m.Left + m.Right, Message: "leave no room for text"})
	}
}

func (r *resolver) checkRunProps(path string, p RunProps) {
	if p.Size != nil && *p.Size <= 0 {
		r.errs.add(&InvalidValueError{Path: path, Field: "size", Value: *p.Size, Message: "must be positive"})
	}
	if p.Color != nil && !validColor(*p.Color) {
		r.errs.add(&InvalidValueError{Path: path, Field: "color", Value: *p.Color, Message: "must be RRGGBB or auto"})
	}
	if p.Font != nil && strings.TrimSpace(*p.Font) == "" {
		r.errs.add(&InvalidValueError{Path: path, Field: "font", Value: `""`, Message: "must not be empty"})
	}
}

func (r *resolver) checkParagraphProps(path string, p ParagraphProps) {
	for _, f := range []struct {
		name string
		val  *int
	}{
		{"spacing.before", p.SpacingBefore}, {"spacing.after", p.SpacingAfter},
		{"indent.left", p.IndentLeft}, {"indent.hanging", p.IndentHanging},
	} {
		if f.val != nil && *f.val < 0 {
			r.errs.add(&InvalidValueError{Path: path, Field: f.name, Value: *f.val, Message: "must not be negative"})
		}
	}
}

func validColor(s string) bool {
	if s == "auto" {
		return true
	}
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func (r *resolver) paragraph(path string, p *Paragraph, scope *listScope) *ResolvedParagraph {
	if p.PageBreakOnly {
		scope.reset()
		if len(p.Runs) > 0 {
			r.errs.add(&InvalidPageBreakError{Path: path, Runs: len(p.Runs)})
			return nil
		}
		return &ResolvedParagraph{Style: DefaultStyleID, PageBreak: true}
	}

	ok := true
	if len(p.Runs) == 0 {
		r.errs.add(&EmptyParagraphError{Path: path})
		ok = false
	}

	styleID := p.Style
	if styleID == "" {
		styleID = DefaultStyleID
	}
	var style ResolvedStyle
	if r.broken[styleID] {
		ok = false
	} else {
		rs, err := r.doc.Styles.Resolve(styleID)
		if err != nil {
			r.errs.add(&UnknownStyleError{ID: styleID, Path: path + ".style"})
			ok = false
		}
		style = rs
	}

	direct := ParagraphProps{Alignment: p.Alignment, KeepNext: p.KeepNext}
	if p.Spacing != nil {
		direct.SpacingBefore = p.Spacing.Before
		direct.SpacingAfter = p.Spacing.After
	}
	if align, valid := ParseAlignment(string(p.Alignment)); valid {
		direct.Alignment = align
	} else {
		r.errs.add(&InvalidValueError{Path: path, Field: "alignment", Value: p.Alignment, Message: "unknown alignment"})
		ok = false
	}
	before := len(r.errs.Errors)
	r.checkParagraphProps(path, direct)
	for i, run := range p.Runs {
		r.checkRunProps(fmt.Sprintf("%s.runs[%d]", path, i), run.Props)
	}
	if len(r.errs.Errors) > before {
		ok = false
	}

	var list *ListMarker
	numbering := ParagraphProps{}
	if p.Numbering != nil {
		item, err := r.listItem(path+".numbering", *p.Numbering, scope)
		if err != nil {
			r.errs.add(err)
			ok = false
		} else {
			list = item
			numbering.IndentLeft = Int(item.Rules.Indent.Left)
			numbering.IndentHanging = Int(item.Rules.Indent.Hanging)
		}
	} else {
		scope.reset()
	}

	if !ok {
		return nil
	}

	rp := &ResolvedParagraph{
		Style:        styleID,
		Direct:       direct,
		Props:        direct.Inherit(numbering).Inherit(style.Paragraph),
		OutlineLevel: style.OutlineLevel,
		Runs:         make([]ResolvedRun, len(p.Runs)),
		List:         list,
	}
	for i, run := range p.Runs {
		rp.Runs[i] = ResolvedRun{
			Text:      run.Text,
			Props:     run.Props.Inherit(style.Run),
			Overrides: run.Props,
		}
	}
	return rp
}

// listItem places a list paragraph in the current list run. A run continues while
// consecutive paragraphs cite the same reference; anything else restarts it.
func (r *resolver) listItem(path string, ref NumberingRef, scope *listScope) (*ListMarker, error) {
	if ref.Level < 0 {
		scope.reset()
		return nil, &InvalidValueError{Path: path, Field: "level", Value: ref.Level, Message: "must not be negative"}
	}
	rules, err := r.doc.Numbering.ResolveLevel(ref.Reference, ref.Level)
	if err != nil {
		scope.reset()
		return nil, &UnknownNumberingError{Reference: ref.Reference, Path: path}
	}
	def, _ := r.doc.Numbering.Lookup(ref.Reference)

	if scope.reference != ref.Reference {
		scope.reference = ref.Reference
		scope.counters = nil
		scope.sequence = r.listRuns[ref.Reference]
		r.listRuns[ref.Reference]++
	}

	lvl := rules.Level
	for len(scope.counters) <= lvl {
		scope.counters = append(scope.counters, 0)
	}
	scope.counters = scope.counters[:lvl+1]
	for i := 0; i < lvl; i++ {
		if scope.counters[i] == 0 {
			parent, _ := r.doc.Numbering.ResolveLevel(ref.Reference, i)
			scope.counters[i] = parent.StartAt()
		}
	}
	if scope.counters[lvl] == 0 {
		scope.counters[lvl] = rules.StartAt()
	} else {
		scope.counters[lvl]++
	}

	return &ListMarker{
		Reference: ref.Reference,
		Level:     lvl,
		Rules:     rules,
		Ordinal:   scope.counters[lvl],
		Sequence:  scope.sequence,
		Label:     def.Label(rules, scope.counters),
	}, nil
}

func (r *resolver) table(path string, t *Table) *ResolvedTable {
	ok := true
	if len(t.Rows) == 0 {
		r.errs.add(&InvalidValueError{Path: path, Field: "rows", Value: 0, Message: "table has no rows"})
		ok = false
	}
	for i, w := range t.ColumnWidths {
		if w < 0 {
			r.errs.add(&InvalidValueError{Path: path, Field: fmt.Sprintf("columnWidths[%d]", i), Value: w, Message: "must not be negative"})
			ok = false
		}
	}
	switch t.Borders {
	case "", BorderNone, BorderSingle, BorderDouble:
	default:
		r.errs.add(&InvalidValueError{Path: path, Field: "borders", Value: t.Borders, Message: "unknown border style"})
		ok = false
	}

	out := &ResolvedTable{
		Rows:         make([]ResolvedRow, 0, len(t.Rows)),
		ColumnWidths: append([]int(nil), t.ColumnWidths...),
		Borders:      t.Borders,
	}
	for i, row := range t.Rows {
		rowPath := fmt.Sprintf("%s.rows[%d]", path, i)
		if len(row.Cells) == 0 {
			r.errs.add(&InvalidValueError{Path: rowPath, Field: "cells", Value: 0, Message: "row has no cells"})
			ok = false
		}
		rr := ResolvedRow{Cells: make([]ResolvedCell, 0, len(row.Cells)), Header: row.Header}
		for j, cell := range row.Cells {
			cellPath := fmt.Sprintf("%s.cells[%d]", rowPath, j)
			if cell.Width < 0 {
				r.errs.add(&InvalidValueError{Path: cellPath, Field: "width", Value: cell.Width, Message: "must not be negative"})
				ok = false
			}
			if cell.Shading != "" && !validColor(cell.Shading) {
				r.errs.add(&InvalidValueError{Path: cellPath, Field: "shading", Value: cell.Shading, Message: "must be RRGGBB or auto"})
				ok = false
			}
			rc := ResolvedCell{Width: cell.Width, Shading: cell.Shading}
			scope := &listScope{}
			for k, p := range cell.Content {
				if p == nil {
					r.errs.add(&InvalidValueError{Path: cellPath, Field: fmt.Sprintf("content[%d]", k), Value: nil, Message: "nil paragraph"})
					ok = false
					continue
				}
				if rp := r.paragraph(fmt.Sprintf("%s.content[%d]", cellPath, k), p, scope); rp != nil {
					rc.Paragraphs = append(rc.Paragraphs, rp)
				} else {
					ok = false
				}
			}
			rr.Cells = append(rr.Cells, rc)
		}
		out.Rows = append(out.Rows, rr)
	}
	if !ok {
		return nil
	}
	return out
}

var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/benjaminschreck/go-scribe/document"))

// fingerprint derives a stable identifier from the resolved content: metadata, style and
// numbering definitions, page geometry and every resolved block.
func fingerprint(d *ResolvedDocument) uuid.UUID {
	var buf bytes.Buffer
	props := d.Properties
	fmt.Fprintf(&buf, "title=%s\x00subject=%s\x00creator=%s\x00description=%s\x00keywords=%s\x00",
		props.Title, props.Subject, props.Creator, props.Description, strings.Join(props.Keywords, ","))
	if !props.Created.IsZero() {
		fmt.Fprintf(&buf, "created=%s\x00", props.Created.UTC().Format(time.RFC3339Nano))
	}
	for _, id := range d.Styles.IDs() {
		s, _ := d.Styles.Lookup(id)
		fmt.Fprintf(&buf, "style=%s,%s,%s,%s,%t,%s\x00", s.ID, s.Name, s.BasedOn, s.Next, s.QuickFormat, optional(s.OutlineLevel))
		writeRunFingerprint(&buf, s.Run)
		writeParagraphFingerprint(&buf, s.Paragraph)
	}
	for _, ref := range d.Numbering.References() {
		def, _ := d.Numbering.Lookup(ref)
		fmt.Fprintf(&buf, "numbering=%s\x00", ref)
		for _, lvl := range def.Levels {
			fmt.Fprintf(&buf, "lvl=%+v\x00", lvl)
		}
	}
	for _, s := range d.Sections {
		fmt.Fprintf(&buf, "section=%+v\x00", s.Page)
		for _, b := range s.Blocks {
			writeBlockFingerprint(&buf, b)
		}
	}
	return uuid.NewSHA1(documentNamespace, buf.Bytes())
}

func writeBlockFingerprint(buf *bytes.Buffer, b ResolvedBlock) {
	switch n := b.(type) {
	case *ResolvedParagraph:
		fmt.Fprintf(buf, "p=%s,%t,%s\x00", n.Style, n.PageBreak, optional(n.OutlineLevel))
		writeParagraphFingerprint(buf, n.Props)
		if n.List != nil {
			fmt.Fprintf(buf, "list=%s,%d,%d,%d,%s\x00", n.List.Reference, n.List.Level, n.List.Ordinal, n.List.Sequence, n.List.Label)
		}
		for _, run := range n.Runs {
			buf.WriteString(run.Text)
			buf.WriteByte(0)
			writeRunFingerprint(buf, run.Props)
		}
	case *ResolvedTable:
		fmt.Fprintf(buf, "t=%d,%v,%s\x00", len(n.Rows), n.ColumnWidths, n.Borders)
		for _, row := range n.Rows {
			fmt.Fprintf(buf, "tr=%t\x00", row.Header)
			for _, cell := range row.Cells {
				fmt.Fprintf(buf, "tc=%d,%s\x00", cell.Width, cell.Shading)
				for _, p := range cell.Paragraphs {
					writeBlockFingerprint(buf, p)
				}
			}
		}
	}
}

func writeRunFingerprint(buf *bytes.Buffer, r RunProps) {
	fmt.Fprintf(buf, "r=%s,%s,%s,%s,%s,%s,%s\x00",
		optional(r.Bold), optional(r.Italics), optional(r.Strike), optional(r.Underline),
		optional(r.Size), optional(r.Font), optional(r.Color))
}

func writeParagraphFingerprint(buf *bytes.Buffer, p ParagraphProps) {
	fmt.Fprintf(buf, "pp=%s,%s,%s,%s,%s,%s\x00", p.Alignment,
		optional(p.SpacingBefore), optional(p.SpacingAfter), optional(p.IndentLeft), optional(p.IndentHanging), optional(p.KeepNext))
}

// optional formats an unset value as "-" and a set one by its value, never its address.
func optional[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
