package xml

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func marshalString(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := xml.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return string(data)
}

func intPtr(i int) *int { return &i }

func TestRunMarshal(t *testing.T) {
	tests := []struct {
		name string
		run  Run
		want string
	}{
		{
			name: "plain text",
			run:  Run{Text: NewText("Hello")},
			want: `<w:r><w:t>Hello</w:t></w:r>`,
		},
		{
			name: "preserved whitespace",
			run:  Run{Text: NewText("Hello ")},
			want: `<w:r><w:t xml:space="preserve">Hello </w:t></w:r>`,
		},
		{
			name: "escaped text",
			run:  Run{Text: NewText("a < b & c")},
			want: `<w:r><w:t>a &lt; b &amp; c</w:t></w:r>`,
		},
		{
			name: "page break",
			run:  Run{Break: PageBreak()},
			want: `<w:r><w:br w:type="page"></w:br></w:r>`,
		},
		{
			name: "properties in schema order",
			run: Run{
				Properties: &RunProperties{
					Underline: &Val{Val: "single"},
					Size:      &IntVal{Val: 28},
					Color:     &Val{Val: "FF0000"},
					Bold:      On(),
					Font:      &Font{Name: "Arial"},
				},
				Text: NewText("x"),
			},
			want: `<w:r><w:rPr><w:rFonts w:ascii="Arial" w:hAnsi="Arial" w:cs="Arial"></w:rFonts><w:b></w:b>` +
				`<w:color w:val="FF0000"></w:color><w:sz w:val="28"></w:sz><w:szCs w:val="28"></w:szCs>` +
				`<w:u w:val="single"></w:u></w:rPr><w:t>x</w:t></w:r>`,
		},
		{
			name: "explicit false toggle",
			run:  Run{Properties: &RunProperties{Italic: Toggle(false)}, Text: NewText("x")},
			want: `<w:r><w:rPr><w:i w:val="0"></w:i></w:rPr><w:t>x</w:t></w:r>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := marshalString(t, tt.run); got != tt.want {
				t.Errorf("Marshal() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestParagraphMarshal(t *testing.T) {
	p := Paragraph{
		Properties: &ParagraphProperties{
			Alignment:   &Val{Val: "center"},
			Indentation: &Indentation{Left: intPtr(720), Hanging: intPtr(360)},
			Spacing:     &Spacing{After: intPtr(120)},
			Numbering:   &NumberingProperties{Level: 1, NumID: 3},
			KeepNext:    On(),
			Style:       &Val{Val: "Heading1"},
		},
		Runs: []Run{{Text: NewText("Title")}},
	}

	want := `<w:p><w:pPr><w:pStyle w:val="Heading1"></w:pStyle><w:keepNext></w:keepNext>` +
		`<w:numPr><w:ilvl w:val="1"></w:ilvl><w:numId w:val="3"></w:numId></w:numPr>` +
		`<w:spacing w:after="120"></w:spacing><w:ind w:left="720" w:hanging="360"></w:ind>` +
		`<w:jc w:val="center"></w:jc></w:pPr><w:r><w:t>Title</w:t></w:r></w:p>`
	if got := marshalString(t, p); got != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
	if p.GetText() != "Title" {
		t.Errorf("GetText() = %q, want Title", p.GetText())
	}
}

func TestPropertiesIsZero(t *testing.T) {
	var nilPara *ParagraphProperties
	if !nilPara.IsZero() || !(&ParagraphProperties{}).IsZero() {
		t.Error("empty paragraph properties should be zero")
	}
	if (&ParagraphProperties{KeepNext: On()}).IsZero() {
		t.Error("paragraph properties with keepNext should not be zero")
	}
	var nilRun *RunProperties
	if !nilRun.IsZero() || (&RunProperties{Bold: On()}).IsZero() {
		t.Error("RunProperties.IsZero mismatch")
	}
}

func TestDocumentMarshal(t *testing.T) {
	doc := Document{Body: Body{
		Elements: []BodyElement{
			&Paragraph{Runs: []Run{{Text: NewText("one")}}},
			&Table{Grid: []int{100}, Rows: []TableRow{{Cells: []TableCell{{}}}}},
		},
		SectionProperties: &SectionProperties{
			PageSize:    PageSize{Width: 15840, Height: 12240, Landscape: true},
			PageMargins: PageMargins{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440, Header: 720, Footer: 720},
		},
	}}

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`,
		`<w:document xmlns:w="` + NamespaceW + `" xmlns:r="` + NamespaceR + `"><w:body>`,
		`<w:p><w:r><w:t>one</w:t></w:r></w:p><w:tbl>`,
		`<w:tblGrid><w:gridCol w:w="100"></w:gridCol></w:tblGrid>`,
		`<w:tc><w:p></w:p></w:tc>`,
		`<w:pgSz w:w="15840" w:h="12240" w:orient="landscape"></w:pgSz>`,
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"></w:pgMar>`,
		`</w:sectPr></w:body></w:document>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document missing %s\ngot: %s", want, got)
		}
	}
}

func TestTableMarshal(t *testing.T) {
	tbl := Table{
		Properties: &TableProperties{
			Width:   &Width{W: 5000},
			Borders: &TableBorders{Border: Border{Val: "single", Size: 4, Color: "auto"}},
			Layout:  "fixed",
		},
		Grid: []int{2000, 3000},
		Rows: []TableRow{
			{Header: true, Cells: []TableCell{
				{Width: &Width{W: 2000}, Shading: "D9E2F3", Paragraphs: []Paragraph{{Runs: []Run{{Text: NewText("a")}}}}},
			}},
		},
	}
	got := marshalString(t, tbl)

	for _, want := range []string{
		`<w:tblPr><w:tblW w:w="5000" w:type="dxa"></w:tblW><w:tblBorders>`,
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"></w:top>`,
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"></w:insideV></w:tblBorders>`,
		`<w:tblLayout w:type="fixed"></w:tblLayout></w:tblPr>`,
		`<w:tr><w:trPr><w:tblHeader></w:tblHeader></w:trPr>`,
		`<w:tcPr><w:tcW w:w="2000" w:type="dxa"></w:tcW><w:shd w:val="clear" w:color="auto" w:fill="D9E2F3"></w:shd></w:tcPr>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %s\ngot: %s", want, got)
		}
	}
}

func TestStylesMarshal(t *testing.T) {
	styles := Styles{
		DocDefaults: &DocDefaults{RunProperties: &RunProperties{Size: &IntVal{Val: 24}}},
		Styles: []Style{
			{ID: "Normal", Default: true, QuickFormat: true},
			{
				ID:                  "Heading1",
				Name:                "Heading 1",
				BasedOn:             "Normal",
				Next:                "Normal",
				ParagraphProperties: &ParagraphProperties{OutlineLevel: &IntVal{Val: 0}},
				RunProperties:       &RunProperties{Bold: On()},
			},
			{ID: "Empty", ParagraphProperties: &ParagraphProperties{}},
		},
	}
	got := marshalString(t, styles)

	for _, want := range []string{
		`<w:docDefaults><w:rPrDefault><w:rPr><w:sz w:val="24"></w:sz><w:szCs w:val="24"></w:szCs></w:rPr></w:rPrDefault></w:docDefaults>`,
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"></w:name><w:qFormat></w:qFormat></w:style>`,
		`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="Heading 1"></w:name><w:basedOn w:val="Normal"></w:basedOn>` +
			`<w:next w:val="Normal"></w:next><w:pPr><w:outlineLvl w:val="0"></w:outlineLvl></w:pPr><w:rPr><w:b></w:b></w:rPr></w:style>`,
		`<w:style w:type="paragraph" w:styleId="Empty"><w:name w:val="Empty"></w:name></w:style>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("styles missing %s\ngot: %s", want, got)
		}
	}
}

func TestNumberingMarshal(t *testing.T) {
	numbering := Numbering{
		AbstractNums: []AbstractNum{{
			ID: 0,
			Levels: []Level{
				{Ilvl: 0, Start: 1, Format: "decimal", Text: "%1.", Left: 720, Hanging: 360},
			},
		}},
		Nums: []Num{
			{ID: 1, AbstractNumID: 0},
			{ID: 2, AbstractNumID: 0, StartOverrides: map[int]int{1: 1, 0: 1}},
		},
	}
	got := marshalString(t, numbering)

	for _, want := range []string{
		`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="hybridMultilevel"></w:multiLevelType>`,
		`<w:lvl w:ilvl="0"><w:start w:val="1"></w:start><w:numFmt w:val="decimal"></w:numFmt><w:lvlText w:val="%1."></w:lvlText>` +
			`<w:lvlJc w:val="left"></w:lvlJc><w:pPr><w:ind w:left="720" w:hanging="360"></w:ind></w:pPr></w:lvl>`,
		`<w:num w:numId="1"><w:abstractNumId w:val="0"></w:abstractNumId></w:num>`,
		`<w:num w:numId="2"><w:abstractNumId w:val="0"></w:abstractNumId>` +
			`<w:lvlOverride w:ilvl="0"><w:startOverride w:val="1"></w:startOverride></w:lvlOverride>` +
			`<w:lvlOverride w:ilvl="1"><w:startOverride w:val="1"></w:startOverride></w:lvlOverride></w:num>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("numbering missing %s\ngot: %s", want, got)
		}
	}
	if strings.Index(got, "<w:num ") < strings.LastIndex(got, "</w:abstractNum>") {
		t.Error("instances must follow every abstract definition")
	}
}

func TestPackagePartsMarshal(t *testing.T) {
	ct := ContentTypes{
		Defaults:  []ContentDefault{{Extension: "xml", ContentType: ContentTypeXML}},
		Overrides: []ContentOverride{{PartName: "/word/document.xml", ContentType: ContentTypeDocument}},
	}
	got := marshalString(t, ct)
	if !strings.Contains(got, `<Types xmlns="`+NamespaceContentTypes+`"><Default Extension="xml" ContentType="application/xml"></Default>`) {
		t.Errorf("content types = %s", got)
	}

	rels := Relationships{Relationships: []Relationship{{ID: "rId1", Type: RelTypeStyles, Target: "styles.xml"}}}
	got = marshalString(t, rels)
	if !strings.Contains(got, `<Relationship Id="rId1" Type="`+RelTypeStyles+`" Target="styles.xml"></Relationship>`) {
		t.Errorf("relationships = %s", got)
	}

	core := CoreProperties{
		Title:      "Guide",
		Keywords:   []string{"a", "b"},
		Identifier: "urn:uuid:1234",
		Created:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	got = marshalString(t, core)
	for _, want := range []string{
		`<dc:title>Guide</dc:title>`,
		`<cp:keywords>a, b</cp:keywords>`,
		`<dc:identifier>urn:uuid:1234</dc:identifier>`,
		`<dcterms:created xsi:type="dcterms:W3CDTF">2024-03-01T12:00:00Z</dcterms:created>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("core properties missing %s\ngot: %s", want, got)
		}
	}
	if strings.Contains(got, "dc:subject") {
		t.Error("empty subject should be omitted")
	}
	if strings.Contains(marshalString(t, CoreProperties{Title: "x"}), "dcterms:created") {
		t.Error("zero Created should be omitted")
	}
}
