package xml

import (
	"encoding/xml"
	"sort"
	"strconv"
)

// Numbering is the numbering part (word/numbering.xml). All abstract definitions
// are written before the instances that point at them.
type Numbering struct {
	AbstractNums []AbstractNum
	Nums         []Num
}

// MarshalXML implements custom XML marshaling for Numbering
func (n Numbering) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:numbering"}
	start.Attr = []xml.Attr{attr("xmlns:w", NamespaceW)}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for i := range n.AbstractNums {
		if err := e.EncodeElement(&n.AbstractNums[i], element("w:abstractNum")); err != nil {
			return err
		}
	}
	for i := range n.Nums {
		if err := e.EncodeElement(&n.Nums[i], element("w:num")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// AbstractNum is a numbering definition shared by one or more instances
type AbstractNum struct {
	ID     int
	Levels []Level
}

// MarshalXML implements custom XML marshaling for AbstractNum
func (a AbstractNum) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:abstractNum"}
	start.Attr = []xml.Attr{intAttr("w:abstractNumId", a.ID)}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := e.EncodeElement(Val{Val: "hybridMultilevel"}, element("w:multiLevelType")); err != nil {
		return err
	}
	for i := range a.Levels {
		if err := e.EncodeElement(&a.Levels[i], element("w:lvl")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Level is the formatting of one list level
type Level struct {
	Ilvl      int
	Start     int
	Format    string
	Text      string
	Alignment string
	Left      int
	Hanging   int
}

// MarshalXML implements custom XML marshaling for Level
func (l Level) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:lvl"}
	start.Attr = []xml.Attr{intAttr("w:ilvl", l.Ilvl)}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := e.EncodeElement(IntVal{Val: l.Start}, element("w:start")); err != nil {
		return err
	}
	if err := e.EncodeElement(Val{Val: l.Format}, element("w:numFmt")); err != nil {
		return err
	}
	if err := e.EncodeElement(Val{Val: l.Text}, element("w:lvlText")); err != nil {
		return err
	}
	jc := l.Alignment
	if jc == "" {
		jc = "left"
	}
	if err := e.EncodeElement(Val{Val: jc}, element("w:lvlJc")); err != nil {
		return err
	}
	pPr := ParagraphProperties{Indentation: &Indentation{Left: &l.Left, Hanging: &l.Hanging}}
	if err := e.EncodeElement(pPr, element("w:pPr")); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Num is a numbering instance. Paragraphs cite instances, never abstract definitions,
// so restarting a list means citing a new instance with start overrides.
type Num struct {
	ID            int
	AbstractNumID int
	// StartOverrides maps a level to the ordinal it restarts at.
	StartOverrides map[int]int
}

// MarshalXML implements custom XML marshaling for Num
func (n Num) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:num"}
	start.Attr = []xml.Attr{intAttr("w:numId", n.ID)}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := e.EncodeElement(IntVal{Val: n.AbstractNumID}, element("w:abstractNumId")); err != nil {
		return err
	}
	for _, lvl := range sortedKeys(n.StartOverrides) {
		override := element("w:lvlOverride")
		override.Attr = []xml.Attr{attr("w:ilvl", strconv.Itoa(lvl))}
		if err := e.EncodeToken(override); err != nil {
			return err
		}
		if err := e.EncodeElement(IntVal{Val: n.StartOverrides[lvl]}, element("w:startOverride")); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: override.Name}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
