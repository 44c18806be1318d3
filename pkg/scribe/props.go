package scribe

import "strings"

// Alignment is a paragraph or numbering label justification.
// The zero value means "not set".
type Alignment string

const (
	AlignLeft      Alignment = "left"
	AlignCenter    Alignment = "center"
	AlignRight     Alignment = "right"
	AlignJustified Alignment = "both"
)

// ParseAlignment accepts the container values plus the common aliases used in declarations.
func ParseAlignment(s string) (Alignment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "left", "start":
		return AlignLeft, true
	case "center", "centre":
		return AlignCenter, true
	case "right", "end":
		return AlignRight, true
	case "both", "justify", "justified":
		return AlignJustified, true
	}
	return "", false
}

// normalized returns the container value of a recognized alias, or a unchanged
// so that validation can still report it.
func (a Alignment) normalized() Alignment {
	if parsed, ok := ParseAlignment(string(a)); ok {
		return parsed
	}
	return a
}

// RunProps holds character formatting. A nil field is unset and inherits.
// Size is in half-points (24 = 12pt), as in the container format.
type RunProps struct {
	Bold      *bool   `yaml:"bold,omitempty"`
	Italics   *bool   `yaml:"italics,omitempty"`
	Strike    *bool   `yaml:"strike,omitempty"`
	Underline *bool   `yaml:"underline,omitempty"`
	Size      *int    `yaml:"size,omitempty"`
	Font      *string `yaml:"font,omitempty"`
	Color     *string `yaml:"color,omitempty"`
}

// Inherit returns r with every unset field taken from parent.
func (r RunProps) Inherit(parent RunProps) RunProps {
	if r.Bold == nil {
		r.Bold = parent.Bold
	}
	if r.Italics == nil {
		r.Italics = parent.Italics
	}
	if r.Strike == nil {
		r.Strike = parent.Strike
	}
	if r.Underline == nil {
		r.Underline = parent.Underline
	}
	if r.Size == nil {
		r.Size = parent.Size
	}
	if r.Font == nil {
		r.Font = parent.Font
	}
	if r.Color == nil {
		r.Color = parent.Color
	}
	return r
}

// IsZero reports whether no field is set.
func (r RunProps) IsZero() bool {
	return r == RunProps{}
}

// clone copies every set field so the result shares no pointers with r.
func (r RunProps) clone() RunProps {
	return RunProps{
		Bold:      cloneBool(r.Bold),
		Italics:   cloneBool(r.Italics),
		Strike:    cloneBool(r.Strike),
		Underline: cloneBool(r.Underline),
		Size:      cloneInt(r.Size),
		Font:      cloneString(r.Font),
		Color:     cloneString(r.Color),
	}
}

// ParagraphProps holds paragraph formatting. Measures are twentieths of a point.
type ParagraphProps struct {
	Alignment     Alignment
	SpacingBefore *int
	SpacingAfter  *int
	IndentLeft    *int
	IndentHanging *int
	KeepNext      *bool
}

// Inherit returns p with every unset field taken from parent.
func (p ParagraphProps) Inherit(parent ParagraphProps) ParagraphProps {
	if p.Alignment == "" {
		p.Alignment = parent.Alignment
	}
	if p.SpacingBefore == nil {
		p.SpacingBefore = parent.SpacingBefore
	}
	if p.SpacingAfter == nil {
		p.SpacingAfter = parent.SpacingAfter
	}
	if p.IndentLeft == nil {
		p.IndentLeft = parent.IndentLeft
	}
	if p.IndentHanging == nil {
		p.IndentHanging = parent.IndentHanging
	}
	if p.KeepNext == nil {
		p.KeepNext = parent.KeepNext
	}
	return p
}

// IsZero reports whether no field is set.
func (p ParagraphProps) IsZero() bool {
	return p == ParagraphProps{}
}

func (p ParagraphProps) clone() ParagraphProps {
	return ParagraphProps{
		Alignment:     p.Alignment.normalized(),
		SpacingBefore: cloneInt(p.SpacingBefore),
		SpacingAfter:  cloneInt(p.SpacingAfter),
		IndentLeft:    cloneInt(p.IndentLeft),
		IndentHanging: cloneInt(p.IndentHanging),
		KeepNext:      cloneBool(p.KeepNext),
	}
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	return Bool(*b)
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	return Int(*i)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	return String(*s)
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// String returns a pointer to s.
func String(s string) *string { return &s }

// Flag dereferences an optional boolean, treating unset as false.
func Flag(b *bool) bool { return b != nil && *b }

// Measure dereferences an optional measure, treating unset as 0.
func Measure(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
