package xml

import (
	"encoding/xml"
)

// Table represents a table in the document
type Table struct {
	Properties *TableProperties
	Grid       []int
	Rows       []TableRow
}

// isBodyElement implements the BodyElement interface
func (t Table) isBodyElement() {}

// MarshalXML implements custom XML marshaling for Table to ensure proper namespacing
func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tbl"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := encodeOptional(e, "w:tblPr", t.Properties); err != nil {
		return err
	}

	// The grid is required even when no widths are known
	grid := element("w:tblGrid")
	if err := e.EncodeToken(grid); err != nil {
		return err
	}
	for _, w := range t.Grid {
		col := element("w:gridCol")
		col.Attr = []xml.Attr{intAttr("w:w", w)}
		if err := e.EncodeElement(struct{}{}, col); err != nil {
			return err
		}
	}
	if err := e.EncodeToken(xml.EndElement{Name: grid.Name}); err != nil {
		return err
	}

	for i := range t.Rows {
		if err := e.EncodeElement(&t.Rows[i], element("w:tr")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Width is a measure with its unit type: dxa (twips), pct or auto
type Width struct {
	W    int
	Type string
}

// MarshalXML implements custom XML marshaling for Width. The element name is taken
// from the caller (w:tblW, w:tcW).
func (w Width) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	typ := w.Type
	if typ == "" {
		typ = "dxa"
	}
	start.Attr = []xml.Attr{intAttr("w:w", w.W), attr("w:type", typ)}
	return e.EncodeElement(struct{}{}, start)
}

// TableProperties represents table formatting properties
type TableProperties struct {
	Width   *Width
	Borders *TableBorders
	Layout  string
}

// MarshalXML implements custom XML marshaling for TableProperties
func (p TableProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := encodeOptional(e, "w:tblW", p.Width); err != nil {
		return err
	}
	if err := encodeOptional(e, "w:tblBorders", p.Borders); err != nil {
		return err
	}
	if p.Layout != "" {
		layout := element("w:tblLayout")
		layout.Attr = []xml.Attr{attr("w:type", p.Layout)}
		if err := e.EncodeElement(struct{}{}, layout); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Border is one edge of a table border set
type Border struct {
	Val   string
	Size  int
	Color string
}

// MarshalXML implements custom XML marshaling for Border
func (b Border) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{
		attr("w:val", b.Val),
		intAttr("w:sz", b.Size),
		attr("w:space", "0"),
		attr("w:color", b.Color),
	}
	return e.EncodeElement(struct{}{}, start)
}

// TableBorders applies one border to every edge and inner line of a table
type TableBorders struct {
	Border Border
}

// MarshalXML implements custom XML marshaling for TableBorders
func (b TableBorders) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblBorders"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, edge := range []string{"w:top", "w:left", "w:bottom", "w:right", "w:insideH", "w:insideV"} {
		if err := e.EncodeElement(b.Border, element(edge)); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableRow represents a table row
type TableRow struct {
	// Header repeats the row at the top of each page
	Header bool
	Cells  []TableCell
}

// MarshalXML implements custom XML marshaling for TableRow
func (r TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Header {
		trPr := element("w:trPr")
		if err := e.EncodeToken(trPr); err != nil {
			return err
		}
		if err := e.EncodeElement(On(), element("w:tblHeader")); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: trPr.Name}); err != nil {
			return err
		}
	}

	for i := range r.Cells {
		if err := e.EncodeElement(&r.Cells[i], element("w:tc")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableCell represents a table cell
type TableCell struct {
	Width      *Width
	Shading    string
	Paragraphs []Paragraph
}

// MarshalXML implements custom XML marshaling for TableCell. A cell must end with a
// paragraph, so an empty one is written when the cell has none.
func (c TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tc"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if c.Width != nil || c.Shading != "" {
		tcPr := element("w:tcPr")
		if err := e.EncodeToken(tcPr); err != nil {
			return err
		}
		if err := encodeOptional(e, "w:tcW", c.Width); err != nil {
			return err
		}
		if c.Shading != "" {
			shd := element("w:shd")
			shd.Attr = []xml.Attr{attr("w:val", "clear"), attr("w:color", "auto"), attr("w:fill", c.Shading)}
			if err := e.EncodeElement(struct{}{}, shd); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: tcPr.Name}); err != nil {
			return err
		}
	}

	paragraphs := c.Paragraphs
	if len(paragraphs) == 0 {
		paragraphs = []Paragraph{{}}
	}
	for i := range paragraphs {
		if err := e.EncodeElement(&paragraphs[i], element("w:p")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
