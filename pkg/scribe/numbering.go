package scribe

import (
	"sort"
	"strconv"
	"strings"
)

// NumberFormat is the label format of a numbering level.
type NumberFormat string

const (
	FormatBullet      NumberFormat = "bullet"
	FormatDecimal     NumberFormat = "decimal"
	FormatLowerLetter NumberFormat = "lowerLetter"
	FormatUpperLetter NumberFormat = "upperLetter"
	FormatLowerRoman  NumberFormat = "lowerRoman"
	FormatUpperRoman  NumberFormat = "upperRoman"
	FormatNone        NumberFormat = "none"
)

// Valid reports whether f is a known format.
func (f NumberFormat) Valid() bool {
	switch f {
	case FormatBullet, FormatDecimal, FormatLowerLetter, FormatUpperLetter,
		FormatLowerRoman, FormatUpperRoman, FormatNone:
		return true
	}
	return false
}

// Indent is the paragraph indentation a numbering level applies, in twips.
type Indent struct {
	Left    int
	Hanging int
}

// NumberingLevel holds the formatting rules of one list level.
type NumberingLevel struct {
	Level  int
	Format NumberFormat
	// Text is the label template: the bullet glyph, or a pattern such as "%1." where
	// %N stands for the counter of level N-1.
	Text      string
	Alignment Alignment
	Indent    Indent
	// Start is the first ordinal of a list run. Zero means 1.
	Start int
}

// StartAt returns the first ordinal of a list run at this level.
func (l NumberingLevel) StartAt() int {
	if l.Start <= 0 {
		return 1
	}
	return l.Start
}

// NumberingDefinition is a named, leveled numbering scheme.
type NumberingDefinition struct {
	Reference string
	// Levels are kept sorted by Level.
	Levels []NumberingLevel
}

// NumberingRegistry stores numbering definitions keyed by reference.
// It owns no counters: ordinals are a property of render order.
type NumberingRegistry struct {
	defs   map[string]*NumberingDefinition
	order  []string
	frozen bool
}

// NewNumberingRegistry creates an empty registry.
func NewNumberingRegistry() *NumberingRegistry {
	return &NumberingRegistry{defs: make(map[string]*NumberingDefinition)}
}

// Define registers a numbering scheme under reference.
func (r *NumberingRegistry) Define(reference string, levels ...NumberingLevel) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if reference == "" {
		return &InvalidValueError{Field: "numbering.reference", Value: `""`, Message: "reference must not be empty"}
	}
	if _, exists := r.defs[reference]; exists {
		return &DuplicateNumberingError{Reference: reference}
	}
	if len(levels) == 0 {
		return &InvalidValueError{Field: "numbering." + reference + ".levels", Value: 0, Message: "at least one level is required"}
	}

	sorted := make([]NumberingLevel, len(levels))
	copy(sorted, levels)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	for i, lvl := range sorted {
		field := "numbering." + reference + ".level"
		if lvl.Level < 0 {
			return &InvalidValueError{Field: field, Value: lvl.Level, Message: "level must not be negative"}
		}
		if i > 0 && sorted[i-1].Level == lvl.Level {
			return &InvalidValueError{Field: field, Value: lvl.Level, Message: "level defined twice"}
		}
		if lvl.Format == "" {
			sorted[i].Format = FormatBullet
		} else if !lvl.Format.Valid() {
			return &InvalidValueError{Field: field + "[" + strconv.Itoa(lvl.Level) + "].format", Value: lvl.Format, Message: "unknown number format"}
		}
		align, ok := ParseAlignment(string(lvl.Alignment))
		if !ok {
			return &InvalidValueError{Field: field + "[" + strconv.Itoa(lvl.Level) + "].alignment", Value: lvl.Alignment, Message: "unknown alignment"}
		}
		sorted[i].Alignment = align
		if lvl.Indent.Left < 0 || lvl.Indent.Hanging < 0 {
			return &InvalidValueError{Field: field + "[" + strconv.Itoa(lvl.Level) + "].indent", Value: lvl.Indent, Message: "indent must not be negative"}
		}
	}

	r.defs[reference] = &NumberingDefinition{Reference: reference, Levels: sorted}
	r.order = append(r.order, reference)
	return nil
}

// ResolveLevel returns the rules of (reference, level). When the level is not defined
// the lowest defined level of the reference is returned instead.
func (r *NumberingRegistry) ResolveLevel(reference string, level int) (NumberingLevel, error) {
	def, ok := r.defs[reference]
	if !ok {
		return NumberingLevel{}, &UnknownNumberingError{Reference: reference}
	}
	for _, lvl := range def.Levels {
		if lvl.Level == level {
			return lvl, nil
		}
	}
	return def.Levels[0], nil
}

// Lookup returns a copy of the definition registered under reference.
func (r *NumberingRegistry) Lookup(reference string) (NumberingDefinition, bool) {
	def, ok := r.defs[reference]
	if !ok {
		return NumberingDefinition{}, false
	}
	out := NumberingDefinition{Reference: def.Reference, Levels: make([]NumberingLevel, len(def.Levels))}
	copy(out.Levels, def.Levels)
	return out, true
}

// References returns the registered references in definition order.
func (r *NumberingRegistry) References() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Frozen reports whether the registry has been frozen by Finalize.
func (r *NumberingRegistry) Frozen() bool {
	return r.frozen
}

func (r *NumberingRegistry) freeze() {
	r.frozen = true
}

// Label renders the label of lvl given the counters of levels 0..lvl.Level.
// Each %N placeholder is formatted with the number format of level N-1.
func (d NumberingDefinition) Label(lvl NumberingLevel, counters []int) string {
	switch lvl.Format {
	case FormatBullet:
		if lvl.Text == "" {
			return "•"
		}
		return lvl.Text
	case FormatNone:
		return ""
	}

	text := lvl.Text
	if text == "" {
		text = "%" + strconv.Itoa(lvl.Level+1) + "."
	}

	var b strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '%' && i+1 < len(text) && text[i+1] >= '1' && text[i+1] <= '9' {
			idx := int(text[i+1] - '1')
			n := 0
			if idx < len(counters) {
				n = counters[idx]
			}
			b.WriteString(formatOrdinal(d.formatOf(idx, lvl.Format), n))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// formatOf returns the number format of level, or fallback when that level is
// undefined or a bullet.
func (d NumberingDefinition) formatOf(level int, fallback NumberFormat) NumberFormat {
	for _, l := range d.Levels {
		if l.Level == level {
			if l.Format == FormatBullet || l.Format == FormatNone {
				return fallback
			}
			return l.Format
		}
	}
	return fallback
}

func formatOrdinal(f NumberFormat, n int) string {
	switch f {
	case FormatLowerLetter:
		return letters(n, 'a')
	case FormatUpperLetter:
		return letters(n, 'A')
	case FormatLowerRoman:
		return strings.ToLower(roman(n))
	case FormatUpperRoman:
		return roman(n)
	default:
		return strconv.Itoa(n)
	}
}

// letters renders 1..26 as a..z, then aa, bb, ... the way word processors do.
func letters(n int, base byte) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	repeat := (n-1)/26 + 1
	return strings.Repeat(string(base+byte((n-1)%26)), repeat)
}

func roman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var b strings.Builder
	for i, v := range values {
		for n >= v {
			b.WriteString(symbols[i])
			n -= v
		}
	}
	return b.String()
}
