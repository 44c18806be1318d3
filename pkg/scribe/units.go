package scribe

import "math"

// Measures in this package are twentieths of a point ("twips"), the container's native unit.
const (
	TwipsPerPoint = 20
	TwipsPerInch  = 1440
)

// Points converts points to twips.
func Points(pt float64) int {
	return int(math.Round(pt * TwipsPerPoint))
}

// Inches converts inches to twips.
func Inches(in float64) int {
	return int(math.Round(in * TwipsPerInch))
}

// Centimeters converts centimeters to twips.
func Centimeters(cm float64) int {
	return int(math.Round(cm / 2.54 * TwipsPerInch))
}

// HalfPoints converts a font size in points to the half-point unit used by RunProps.Size.
func HalfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

// Margins are the page margins in twips.
type Margins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
	Header int
	Footer int
}

// PageProperties is the geometry of a section, in twips.
type PageProperties struct {
	Width   int
	Height  int
	Margins Margins
}

// Landscape reports whether the page is wider than tall.
func (p PageProperties) Landscape() bool {
	return p.Width > p.Height
}

// LetterPortrait is US Letter with one-inch margins.
func LetterPortrait() PageProperties {
	return PageProperties{
		Width:   12240,
		Height:  15840,
		Margins: Margins{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440, Header: 720, Footer: 720},
	}
}

// A4Portrait is ISO A4 with one-inch margins.
func A4Portrait() PageProperties {
	return PageProperties{
		Width:   11906,
		Height:  16838,
		Margins: Margins{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440, Header: 720, Footer: 720},
	}
}

// PageSize returns the named page geometry; ok is false for unknown names.
func PageSize(name string) (PageProperties, bool) {
	switch name {
	case "letter", "Letter", "":
		return LetterPortrait(), true
	case "a4", "A4":
		return A4Portrait(), true
	}
	return PageProperties{}, false
}
