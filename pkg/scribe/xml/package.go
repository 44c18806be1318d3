package xml

import (
	"encoding/xml"
	"strings"
	"time"
)

// Relationship types and content types of the parts written by the packager.
const (
	RelTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeCoreProperties = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeExtended       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	RelTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelTypeNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"

	ContentTypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML           = "application/xml"
	ContentTypeDocument      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ContentTypeStyles        = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ContentTypeNumbering     = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	ContentTypeCore          = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeExtended      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// ContentTypes is the [Content_Types].xml part
type ContentTypes struct {
	XMLName   xml.Name          `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []ContentDefault  `xml:"Default"`
	Overrides []ContentOverride `xml:"Override"`
}

// ContentDefault maps a file extension to a content type
type ContentDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentOverride maps a part name to a content type
type ContentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Relationships is a relationships part (_rels/.rels, word/_rels/document.xml.rels)
type Relationships struct {
	XMLName       xml.Name       `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Relationships []Relationship `xml:"Relationship"`
}

// Relationship links a source part to a target part
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// CoreProperties is the docProps/core.xml part
type CoreProperties struct {
	Title       string
	Subject     string
	Creator     string
	Keywords    []string
	Description string
	Identifier  string
	// Created is omitted when zero.
	Created time.Time
}

// MarshalXML implements custom XML marshaling for CoreProperties
func (c CoreProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "cp:coreProperties"}
	start.Attr = []xml.Attr{
		attr("xmlns:cp", NamespaceCore),
		attr("xmlns:dc", NamespaceDC),
		attr("xmlns:dcterms", NamespaceDCTerms),
		attr("xmlns:dcmitype", NamespaceDCMIType),
		attr("xmlns:xsi", NamespaceXSI),
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"dc:title", c.Title},
		{"dc:subject", c.Subject},
		{"dc:creator", c.Creator},
		{"cp:keywords", strings.Join(c.Keywords, ", ")},
		{"dc:description", c.Description},
		{"dc:identifier", c.Identifier},
	} {
		if field.value == "" {
			continue
		}
		if err := e.EncodeElement(field.value, element(field.name)); err != nil {
			return err
		}
	}

	if !c.Created.IsZero() {
		created := element("dcterms:created")
		created.Attr = []xml.Attr{attr("xsi:type", "dcterms:W3CDTF")}
		if err := e.EncodeElement(c.Created.UTC().Format(time.RFC3339), created); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// AppProperties is the docProps/app.xml part
type AppProperties struct {
	XMLName     xml.Name `xml:"http://schemas.openxmlformats.org/officeDocument/2006/extended-properties Properties"`
	Application string   `xml:"Application"`
	AppVersion  string   `xml:"AppVersion,omitempty"`
}
