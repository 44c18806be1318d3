package xml

import (
	"encoding/xml"
	"strings"
)

// Run represents a run of text with common properties
type Run struct {
	Properties *RunProperties
	Text       *Text
	Break      *Break
}

// MarshalXML implements custom XML marshaling for Run to ensure proper namespacing
func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:r"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := encodeOptional(e, "w:rPr", r.Properties); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:br", r.Break); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:t", r.Text); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the text content of a run
func (r *Run) GetText() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Content
}

// RunProperties represents run formatting properties.
// Children are written in the order the schema requires.
type RunProperties struct {
	Font      *Font
	Bold      *OnOff
	Italic    *OnOff
	Strike    *OnOff
	Color     *Val
	Size      *IntVal
	Underline *Val
}

// IsZero reports whether no property is set.
func (p *RunProperties) IsZero() bool {
	return p == nil || *p == RunProperties{}
}

// MarshalXML implements custom XML marshaling for RunProperties
func (p RunProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := encodeOptional(e, "w:rFonts", p.Font); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:b", p.Bold); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:i", p.Italic); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:strike", p.Strike); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:color", p.Color); err != nil {
		return err
	}
	// Complex script size follows the regular size
	if err := encodeOptional(e, "w:sz", p.Size); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:szCs", p.Size); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:u", p.Underline); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Font represents font information
type Font struct {
	Name string
}

// MarshalXML implements custom XML marshaling for Font
func (f Font) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rFonts"}
	start.Attr = []xml.Attr{
		attr("w:ascii", f.Name),
		attr("w:hAnsi", f.Name),
		attr("w:cs", f.Name),
	}
	return e.EncodeElement(struct{}{}, start)
}

// Text represents text content
type Text struct {
	Content string
}

// NewText creates a text element.
func NewText(s string) *Text {
	return &Text{Content: s}
}

// MarshalXML implements custom XML marshaling for Text to ensure proper namespacing.
// Leading or trailing whitespace is kept with xml:space="preserve".
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:t"}
	start.Attr = nil
	if t.Content != strings.TrimSpace(t.Content) {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Space: "http://www.w3.org/XML/1998/namespace", Local: "space"},
			Value: "preserve",
		})
	}
	return e.EncodeElement(t.Content, start)
}

// Break represents a line, column or page break
type Break struct {
	Type string
}

// PageBreak returns a page break.
func PageBreak() *Break {
	return &Break{Type: "page"}
}

// MarshalXML implements xml.Marshaler to ensure Break is self-closing
func (b Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:br"}
	start.Attr = nil
	if b.Type != "" {
		start.Attr = append(start.Attr, attr("w:type", b.Type))
	}
	return e.EncodeElement(struct{}{}, start)
}
