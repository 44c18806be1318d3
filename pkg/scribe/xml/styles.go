package xml

import (
	"encoding/xml"
)

// Styles is the styles part (word/styles.xml)
type Styles struct {
	DocDefaults *DocDefaults
	Styles      []Style
}

// MarshalXML implements custom XML marshaling for Styles
func (s Styles) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:styles"}
	start.Attr = []xml.Attr{attr("xmlns:w", NamespaceW)}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := encodeOptional(e, "w:docDefaults", s.DocDefaults); err != nil {
		return err
	}
	for i := range s.Styles {
		if err := e.EncodeElement(&s.Styles[i], element("w:style")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// DocDefaults holds the formatting every paragraph and run starts from
type DocDefaults struct {
	RunProperties       *RunProperties
	ParagraphProperties *ParagraphProperties
}

// MarshalXML implements custom XML marshaling for DocDefaults
func (d DocDefaults) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:docDefaults"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if d.RunProperties != nil {
		wrap := element("w:rPrDefault")
		if err := e.EncodeToken(wrap); err != nil {
			return err
		}
		if err := e.EncodeElement(d.RunProperties, element("w:rPr")); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: wrap.Name}); err != nil {
			return err
		}
	}
	if d.ParagraphProperties != nil {
		wrap := element("w:pPrDefault")
		if err := e.EncodeToken(wrap); err != nil {
			return err
		}
		if err := e.EncodeElement(d.ParagraphProperties, element("w:pPr")); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: wrap.Name}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Style is a paragraph style definition
type Style struct {
	ID                  string
	Name                string
	BasedOn             string
	Next                string
	Default             bool
	QuickFormat         bool
	ParagraphProperties *ParagraphProperties
	RunProperties       *RunProperties
}

// MarshalXML implements custom XML marshaling for Style
func (s Style) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:style"}
	start.Attr = []xml.Attr{attr("w:type", "paragraph")}
	if s.Default {
		start.Attr = append(start.Attr, attr("w:default", "1"))
	}
	start.Attr = append(start.Attr, attr("w:styleId", s.ID))
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	name := s.Name
	if name == "" {
		name = s.ID
	}
	if err := e.EncodeElement(Val{Val: name}, element("w:name")); err != nil {
		return err
	}
	if s.BasedOn != "" {
		if err := e.EncodeElement(Val{Val: s.BasedOn}, element("w:basedOn")); err != nil {
			return err
		}
	}
	if s.Next != "" {
		if err := e.EncodeElement(Val{Val: s.Next}, element("w:next")); err != nil {
			return err
		}
	}
	if s.QuickFormat {
		if err := e.EncodeElement(On(), element("w:qFormat")); err != nil {
			return err
		}
	}
	if !s.ParagraphProperties.IsZero() {
		if err := e.EncodeElement(s.ParagraphProperties, element("w:pPr")); err != nil {
			return err
		}
	}
	if !s.RunProperties.IsZero() {
		if err := e.EncodeElement(s.RunProperties, element("w:rPr")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
