package docx

import (
	"github.com/benjaminschreck/go-scribe/pkg/scribe"
	"github.com/benjaminschreck/go-scribe/pkg/scribe/xml"
)

// buildStyles writes every registered style as declared. Consumers resolve basedOn
// chains themselves, so only each style's own properties are emitted.
func buildStyles(reg *scribe.StyleRegistry) *xml.Styles {
	out := &xml.Styles{}
	for _, id := range reg.IDs() {
		s, _ := reg.Lookup(id)
		style := xml.Style{
			ID:          string(s.ID),
			Name:        s.Name,
			Next:        string(s.Next),
			Default:     s.ID == scribe.DefaultStyleID,
			QuickFormat: s.QuickFormat,
		}
		if s.ID != scribe.DefaultStyleID {
			style.BasedOn = string(s.BasedOn)
			if style.BasedOn == "" {
				style.BasedOn = string(scribe.DefaultStyleID)
			}
		}

		pPr := paragraphProperties(s.Paragraph)
		if s.OutlineLevel != nil {
			pPr.OutlineLevel = &xml.IntVal{Val: *s.OutlineLevel}
		}
		style.ParagraphProperties = pPr
		style.RunProperties = runProperties(s.Run)
		out.Styles = append(out.Styles, style)

		if s.ID == scribe.DefaultStyleID && !s.Run.IsZero() {
			out.DocDefaults = &xml.DocDefaults{RunProperties: runProperties(s.Run)}
		}
	}
	return out
}

func paragraphProperties(p scribe.ParagraphProps) *xml.ParagraphProperties {
	out := &xml.ParagraphProperties{}
	if p.KeepNext != nil {
		out.KeepNext = xml.Toggle(*p.KeepNext)
	}
	if p.SpacingBefore != nil || p.SpacingAfter != nil {
		out.Spacing = &xml.Spacing{Before: p.SpacingBefore, After: p.SpacingAfter}
	}
	if p.IndentLeft != nil || p.IndentHanging != nil {
		out.Indentation = &xml.Indentation{Left: p.IndentLeft, Hanging: p.IndentHanging}
	}
	if align, ok := scribe.ParseAlignment(string(p.Alignment)); ok && align != "" {
		out.Alignment = &xml.Val{Val: string(align)}
	}
	return out
}

func runProperties(r scribe.RunProps) *xml.RunProperties {
	out := &xml.RunProperties{}
	if r.Font != nil {
		out.Font = &xml.Font{Name: *r.Font}
	}
	if r.Bold != nil {
		out.Bold = xml.Toggle(*r.Bold)
	}
	if r.Italics != nil {
		out.Italic = xml.Toggle(*r.Italics)
	}
	if r.Strike != nil {
		out.Strike = xml.Toggle(*r.Strike)
	}
	if r.Color != nil {
		out.Color = &xml.Val{Val: *r.Color}
	}
	if r.Size != nil {
		out.Size = &xml.IntVal{Val: *r.Size}
	}
	if r.Underline != nil {
		u := "none"
		if *r.Underline {
			u = "single"
		}
		out.Underline = &xml.Val{Val: u}
	}
	return out
}
