// Package xml provides the WordprocessingML and OPC element structures written into a
// DOCX container.
//
// The structures are write-only: every type marshals itself with the conventional
// namespace prefixes (w:, r:, cp:, dc:) so the parts open in any consumer without a
// namespace rewriting pass.
//
// # Structure Organization
//
//   - types.go: BodyElement, on/off and value elements, namespace constants
//   - document.go: Document, Body and SectionProperties
//   - paragraph.go: Paragraph and its properties (style, numbering, spacing, indentation)
//   - run.go: Run, RunProperties, Text and Break
//   - table.go: Table, TableRow, TableCell and their properties
//   - styles.go: the styles part
//   - numbering.go: the numbering part (abstract definitions and instances)
//   - package.go: content types, relationships, core and app properties
//
// # Usage
//
//	doc := &xml.Document{
//	    Body: xml.Body{
//	        Elements: []xml.BodyElement{
//	            &xml.Paragraph{
//	                Runs: []xml.Run{{Text: xml.NewText("Hello, world!")}},
//	            },
//	        },
//	    },
//	}
//	data, err := xml.Marshal(doc)
package xml
