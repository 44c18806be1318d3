package xml

import (
	"bytes"
	"encoding/xml"
	"strconv"
)

// Namespaces used by the parts of a DOCX package.
const (
	NamespaceW             = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceR             = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	NamespaceContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	NamespaceCore          = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NamespaceExtended      = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	NamespaceDC            = "http://purl.org/dc/elements/1.1/"
	NamespaceDCTerms       = "http://purl.org/dc/terms/"
	NamespaceDCMIType      = "http://purl.org/dc/dcmitype/"
	NamespaceXSI           = "http://www.w3.org/2001/XMLSchema-instance"
)

// BodyElement represents any element that can appear in a document body
type BodyElement interface {
	isBodyElement()
}

// OnOff is a toggle property such as w:b. A false value is written explicitly
// (w:val="0") so it can switch off a value inherited from a style.
type OnOff struct {
	Val bool
}

// On returns an enabled toggle.
func On() *OnOff { return &OnOff{Val: true} }

// Toggle returns a toggle with the given value.
func Toggle(v bool) *OnOff { return &OnOff{Val: v} }

// MarshalXML implements custom XML marshaling for OnOff
func (o OnOff) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	if !o.Val {
		start.Attr = []xml.Attr{attr("w:val", "0")}
	}
	return e.EncodeElement(struct{}{}, start)
}

// Val is an element whose only content is a w:val attribute, such as w:pStyle.
type Val struct {
	Val string
}

// MarshalXML implements custom XML marshaling for Val. The element name is taken
// from the caller since the same shape serves many elements.
func (v Val) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{attr("w:val", v.Val)}
	return e.EncodeElement(struct{}{}, start)
}

// IntVal is an element whose only content is a numeric w:val attribute, such as w:sz.
type IntVal struct {
	Val int
}

// MarshalXML implements custom XML marshaling for IntVal
func (v IntVal) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{attr("w:val", strconv.Itoa(v.Val))}
	return e.EncodeElement(struct{}{}, start)
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func intAttr(name string, value int) xml.Attr {
	return attr(name, strconv.Itoa(value))
}

func element(name string) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}}
}

// encodeOptional encodes v under name when v is not nil.
func encodeOptional[T any](e *xml.Encoder, name string, v *T) error {
	if v == nil {
		return nil
	}
	return e.EncodeElement(v, element(name))
}

// Marshal renders a part with the XML declaration the container expects.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
