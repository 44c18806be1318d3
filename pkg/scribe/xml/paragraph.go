package xml

import (
	"encoding/xml"
	"strings"
)

// Paragraph represents a paragraph in the document
type Paragraph struct {
	Properties *ParagraphProperties
	Runs       []Run
}

// isBodyElement implements the BodyElement interface
func (p Paragraph) isBodyElement() {}

// MarshalXML implements custom XML marshaling for Paragraph to ensure proper namespacing
func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:p"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := encodeOptional(e, "w:pPr", p.Properties); err != nil {
		return err
	}

	for i := range p.Runs {
		if err := e.EncodeElement(&p.Runs[i], element("w:r")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all runs in a paragraph
func (p *Paragraph) GetText() string {
	var b strings.Builder
	for _, run := range p.Runs {
		b.WriteString(run.GetText())
	}
	return b.String()
}

// ParagraphProperties represents paragraph formatting properties.
// Children are written in the order the schema requires.
type ParagraphProperties struct {
	Style             *Val
	KeepNext          *OnOff
	Numbering         *NumberingProperties
	Spacing           *Spacing
	Indentation       *Indentation
	Alignment         *Val
	OutlineLevel      *IntVal
	RunProperties     *RunProperties
	SectionProperties *SectionProperties
}

// IsZero reports whether no property is set.
func (p *ParagraphProperties) IsZero() bool {
	return p == nil || *p == ParagraphProperties{}
}

// MarshalXML implements custom XML marshaling for ParagraphProperties
func (p ParagraphProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:pPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := encodeOptional(e, "w:pStyle", p.Style); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:keepNext", p.KeepNext); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:numPr", p.Numbering); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:spacing", p.Spacing); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:ind", p.Indentation); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:jc", p.Alignment); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:outlineLvl", p.OutlineLevel); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:rPr", p.RunProperties); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:sectPr", p.SectionProperties); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// NumberingProperties attaches a paragraph to a numbering instance
type NumberingProperties struct {
	Level int
	NumID int
}

// MarshalXML implements custom XML marshaling for NumberingProperties
func (n NumberingProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:numPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(IntVal{Val: n.Level}, element("w:ilvl")); err != nil {
		return err
	}
	if err := e.EncodeElement(IntVal{Val: n.NumID}, element("w:numId")); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Spacing represents paragraph spacing. Nil attributes are omitted.
type Spacing struct {
	Before *int
	After  *int
}

// MarshalXML implements custom XML marshaling for Spacing
func (s Spacing) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:spacing"}
	start.Attr = []xml.Attr{}

	if s.Before != nil {
		start.Attr = append(start.Attr, intAttr("w:before", *s.Before))
	}
	if s.After != nil {
		start.Attr = append(start.Attr, intAttr("w:after", *s.After))
	}

	// Self-closing element
	return e.EncodeElement(struct{}{}, start)
}

// Indentation represents paragraph indentation. Nil attributes are omitted.
type Indentation struct {
	Left    *int
	Hanging *int
}

// MarshalXML implements custom XML marshaling for Indentation
func (i Indentation) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:ind"}
	start.Attr = []xml.Attr{}

	if i.Left != nil {
		start.Attr = append(start.Attr, intAttr("w:left", *i.Left))
	}
	if i.Hanging != nil {
		start.Attr = append(start.Attr, intAttr("w:hanging", *i.Hanging))
	}

	return e.EncodeElement(struct{}{}, start)
}
