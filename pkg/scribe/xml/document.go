package xml

import (
	"encoding/xml"
)

// Document represents the main document part
type Document struct {
	Body Body
}

// MarshalXML implements custom XML marshaling for Document, declaring the namespaces
// used by its descendants.
func (d Document) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:document"}
	start.Attr = []xml.Attr{
		attr("xmlns:w", NamespaceW),
		attr("xmlns:r", NamespaceR),
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(d.Body, element("w:body")); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements
	Elements []BodyElement
	// SectionProperties of the final section; earlier sections carry theirs in the
	// properties of their last paragraph.
	SectionProperties *SectionProperties
}

// MarshalXML implements custom XML marshaling to preserve element order
func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:body"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, elem := range b.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			if err := e.EncodeElement(el, element("w:p")); err != nil {
				return err
			}
		case *Table:
			if err := e.EncodeElement(el, element("w:tbl")); err != nil {
				return err
			}
		}
	}

	// Section properties must be the last child of the body
	if err := encodeOptional(e, "w:sectPr", b.SectionProperties); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// PageSize is the w:pgSz element
type PageSize struct {
	Width     int
	Height    int
	Landscape bool
}

// MarshalXML implements custom XML marshaling for PageSize
func (p PageSize) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:pgSz"}
	start.Attr = []xml.Attr{intAttr("w:w", p.Width), intAttr("w:h", p.Height)}
	if p.Landscape {
		start.Attr = append(start.Attr, attr("w:orient", "landscape"))
	}
	return e.EncodeElement(struct{}{}, start)
}

// PageMargins is the w:pgMar element
type PageMargins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
	Header int
	Footer int
	Gutter int
}

// MarshalXML implements custom XML marshaling for PageMargins
func (m PageMargins) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:pgMar"}
	start.Attr = []xml.Attr{
		intAttr("w:top", m.Top),
		intAttr("w:right", m.Right),
		intAttr("w:bottom", m.Bottom),
		intAttr("w:left", m.Left),
		intAttr("w:header", m.Header),
		intAttr("w:footer", m.Footer),
		intAttr("w:gutter", m.Gutter),
	}
	return e.EncodeElement(struct{}{}, start)
}

// SectionProperties holds the page geometry of a section
type SectionProperties struct {
	PageSize    PageSize
	PageMargins PageMargins
}

// MarshalXML implements custom XML marshaling for SectionProperties
func (s SectionProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:sectPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(s.PageSize, element("w:pgSz")); err != nil {
		return err
	}
	if err := e.EncodeElement(s.PageMargins, element("w:pgMar")); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
