package scribe

import (
	"errors"
	"testing"
)

func TestAppendWithoutSection(t *testing.T) {
	doc := NewDocument()
	err := doc.Append(TextParagraph("orphan"))

	var noSection *NoActiveSectionError
	if !errors.As(err, &noSection) {
		t.Errorf("Append() error = %v, want *NoActiveSectionError", err)
	}
}

func TestAppendNilNode(t *testing.T) {
	doc := NewDocument()
	if err := doc.AddSection(LetterPortrait()); err != nil {
		t.Fatal(err)
	}

	var nilPara *Paragraph
	err := doc.Append(TextParagraph("ok"), nilPara)
	var inv *InvalidValueError
	if !errors.As(err, &inv) {
		t.Fatalf("Append() error = %v, want *InvalidValueError", err)
	}
	if got := doc.Sections()[0].Len(); got != 0 {
		t.Errorf("section has %d nodes after rejected Append, want 0", got)
	}
}

func TestAppendGoesToLatestSection(t *testing.T) {
	doc := NewDocument()
	mustAddSection(t, doc, LetterPortrait())
	mustAppend(t, doc, TextParagraph("one"))
	mustAddSection(t, doc, A4Portrait())
	mustAppend(t, doc, TextParagraph("two"), TextParagraph("three"))

	sections := doc.Sections()
	if len(sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(sections))
	}
	if sections[0].Len() != 1 || sections[1].Len() != 2 {
		t.Errorf("section sizes = %d, %d, want 1, 2", sections[0].Len(), sections[1].Len())
	}
}

func TestAppendCopiesNodes(t *testing.T) {
	doc := NewDocument()
	mustAddSection(t, doc, LetterPortrait())

	p := TextParagraph("before")
	mustAppend(t, doc, p)
	p.Runs[0].Text = "after"
	p.Style = "Missing"

	resolved, err := doc.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	got := resolved.Sections[0].Blocks[0].(*ResolvedParagraph)
	if got.Text() != "before" {
		t.Errorf("Text() = %q, want %q", got.Text(), "before")
	}
}

func TestFinalizedDocumentKeepsValidatedValues(t *testing.T) {
	doc := NewDocument(WithLogger(NopLogger()))
	mustAddSection(t, doc, LetterPortrait())

	size := 20
	p := NewParagraph(NewRun("x", RunProps{Size: &size})).WithSpacing(100, 0)
	mustAppend(t, doc, p)
	*p.Spacing.Before = 999

	resolved, err := doc.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	size = -5

	got := resolved.Sections[0].Blocks[0].(*ResolvedParagraph)
	if Measure(got.Props.SpacingBefore) != 100 {
		t.Errorf("spacing before = %d, want 100", Measure(got.Props.SpacingBefore))
	}
	if Measure(got.Runs[0].Props.Size) != 20 {
		t.Errorf("run size = %d, want 20", Measure(got.Runs[0].Props.Size))
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	doc := NewDocument(WithLogger(NopLogger()))
	mustAddSection(t, doc, LetterPortrait())
	mustAppend(t, doc, TextParagraph("hello"))

	first, err := doc.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	second, err := doc.Finalize()
	if err != nil {
		t.Fatalf("second Finalize() error = %v", err)
	}
	if first != second {
		t.Error("second Finalize() returned a different document")
	}
	if !doc.Finalized() {
		t.Error("Finalized() = false after Finalize")
	}
}

func TestFinalizeFreezesDocument(t *testing.T) {
	doc := NewDocument(WithLogger(NopLogger()))
	mustAddSection(t, doc, LetterPortrait())
	mustAppend(t, doc, TextParagraph("hello"))
	if _, err := doc.Finalize(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"Append", func() error { return doc.Append(TextParagraph("late")) }, ErrDocumentFinalized},
		{"AddSection", func() error { return doc.AddSection(LetterPortrait()) }, ErrDocumentFinalized},
		{"DefineStyle", func() error { return doc.DefineStyle(Style{ID: "Late"}) }, ErrRegistryFrozen},
		{"DefineNumbering", func() error { return doc.DefineNumbering("late", NumberingLevel{}) }, ErrRegistryFrozen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("%s() error = %v, want %v", tt.name, err, tt.want)
			}
		})
	}
}

func TestFinalizeFailureLeavesDocumentOpen(t *testing.T) {
	doc := NewDocument(WithLogger(NopLogger()))
	mustAddSection(t, doc, LetterPortrait())
	mustAppend(t, doc, TextParagraph("x").WithStyle("Later"))

	if _, err := doc.Finalize(); err == nil {
		t.Fatal("Finalize() error = nil, want unknown style")
	}
	if doc.Finalized() || doc.Styles.Frozen() {
		t.Fatal("failed Finalize must not freeze the document")
	}

	if err := doc.DefineStyle(Style{ID: "Later"}); err != nil {
		t.Fatalf("DefineStyle() after failed Finalize error = %v", err)
	}
	if _, err := doc.Finalize(); err != nil {
		t.Errorf("Finalize() after fix error = %v", err)
	}
}

func TestFinalizeIDIsDeterministic(t *testing.T) {
	build := func(text string) *ResolvedDocument {
		doc := NewDocument(WithLogger(NopLogger()), WithProperties(Properties{Title: "Same"}))
		mustAddSection(t, doc, LetterPortrait())
		mustAppend(t, doc, TextParagraph(text))
		resolved, err := doc.Finalize()
		if err != nil {
			t.Fatal(err)
		}
		return resolved
	}

	a, b, c := build("hello"), build("hello"), build("goodbye")
	if a.ID != b.ID {
		t.Errorf("identical documents got IDs %s and %s", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Errorf("different documents share ID %s", a.ID)
	}
}

func TestFinalizeIDCoversFormatting(t *testing.T) {
	type mutation func(doc *Document, page *PageProperties, p *Paragraph) error
	build := func(t *testing.T, apply mutation) *ResolvedDocument {
		t.Helper()
		doc := NewDocument(WithLogger(NopLogger()), WithProperties(Properties{Title: "Same"}))
		if err := doc.DefineNumbering("steps", NumberingLevel{Level: 0, Format: FormatDecimal, Text: "%1."}); err != nil {
			t.Fatal(err)
		}
		page := LetterPortrait()
		p := NewParagraph(Text("hello"))
		if apply != nil {
			if err := apply(doc, &page, p); err != nil {
				t.Fatal(err)
			}
		}
		mustAddSection(t, doc, page)
		mustAppend(t, doc, p)
		resolved, err := doc.Finalize()
		if err != nil {
			t.Fatal(err)
		}
		return resolved
	}

	base := build(t, nil)
	tests := []struct {
		name   string
		change mutation
	}{
		{"run formatting", func(_ *Document, _ *PageProperties, p *Paragraph) error {
			p.Runs[0].Props.Bold = Bool(true)
			return nil
		}},
		{"alignment", func(_ *Document, _ *PageProperties, p *Paragraph) error {
			p.Alignment = AlignCenter
			return nil
		}},
		{"margins", func(_ *Document, page *PageProperties, _ *Paragraph) error {
			page.Margins.Left = 720
			return nil
		}},
		{"default style", func(doc *Document, _ *PageProperties, _ *Paragraph) error {
			return doc.Styles.SetDefaults(RunProps{Font: String("Arial")}, ParagraphProps{})
		}},
		{"list membership", func(_ *Document, _ *PageProperties, p *Paragraph) error {
			p.WithNumbering("steps", 0)
			return nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := build(t, tt.change); got.ID == base.ID {
				t.Errorf("ID unchanged (%s) after changing %s", got.ID, tt.name)
			}
		})
	}
}

func mustAddSection(t *testing.T, doc *Document, page PageProperties) {
	t.Helper()
	if err := doc.AddSection(page); err != nil {
		t.Fatalf("AddSection() error = %v", err)
	}
}

func mustAppend(t *testing.T, doc *Document, nodes ...BlockNode) {
	t.Helper()
	if err := doc.Append(nodes...); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
}
