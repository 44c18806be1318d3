package scribe

import (
	"errors"
	"testing"
)

func TestNumberingRegistryDefine(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		levels    []NumberingLevel
		wantErr   bool
		errType   interface{}
	}{
		{
			name:      "single level",
			reference: "bullets",
			levels:    []NumberingLevel{{Level: 0, Format: FormatBullet, Text: "•"}},
		},
		{
			name:      "empty reference",
			reference: "",
			levels:    []NumberingLevel{{Level: 0}},
			wantErr:   true,
			errType:   &InvalidValueError{},
		},
		{
			name:      "no levels",
			reference: "empty",
			wantErr:   true,
			errType:   &InvalidValueError{},
		},
		{
			name:      "negative level",
			reference: "neg",
			levels:    []NumberingLevel{{Level: -1}},
			wantErr:   true,
			errType:   &InvalidValueError{},
		},
		{
			name:      "level defined twice",
			reference: "twice",
			levels:    []NumberingLevel{{Level: 1}, {Level: 1}},
			wantErr:   true,
			errType:   &InvalidValueError{},
		},
		{
			name:      "unknown format",
			reference: "weird",
			levels:    []NumberingLevel{{Level: 0, Format: "cardinalText"}},
			wantErr:   true,
			errType:   &InvalidValueError{},
		},
		{
			name:      "unknown alignment",
			reference: "align",
			levels:    []NumberingLevel{{Level: 0, Alignment: "middle"}},
			wantErr:   true,
			errType:   &InvalidValueError{},
		},
		{
			name:      "negative indent",
			reference: "indent",
			levels:    []NumberingLevel{{Level: 0, Indent: Indent{Left: -10}}},
			wantErr:   true,
			errType:   &InvalidValueError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewNumberingRegistry()
			err := reg.Define(tt.reference, tt.levels...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Define() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.errType != nil {
				var inv *InvalidValueError
				if !errors.As(err, &inv) {
					t.Errorf("Define() error type = %T, want %T", err, tt.errType)
				}
			}
		})
	}
}

func TestNumberingRegistryNormalizesAlignment(t *testing.T) {
	reg := NewNumberingRegistry()
	if err := reg.Define("steps",
		NumberingLevel{Level: 0, Format: FormatDecimal, Alignment: "centre"},
		NumberingLevel{Level: 1, Format: FormatDecimal, Alignment: "End"},
	); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		level int
		want  Alignment
	}{
		{0, AlignCenter},
		{1, AlignRight},
	}
	for _, tt := range tests {
		lvl, err := reg.ResolveLevel("steps", tt.level)
		if err != nil {
			t.Fatal(err)
		}
		if lvl.Alignment != tt.want {
			t.Errorf("level %d alignment = %q, want %q", tt.level, lvl.Alignment, tt.want)
		}
	}
}

func TestNumberingRegistryDuplicateAndFrozen(t *testing.T) {
	reg := NewNumberingRegistry()
	if err := reg.Define("steps", NumberingLevel{Level: 0, Format: FormatDecimal}); err != nil {
		t.Fatal(err)
	}

	var dup *DuplicateNumberingError
	if err := reg.Define("steps", NumberingLevel{Level: 0}); !errors.As(err, &dup) {
		t.Errorf("Define() duplicate error = %v, want *DuplicateNumberingError", err)
	}

	reg.freeze()
	if err := reg.Define("more", NumberingLevel{Level: 0}); !errors.Is(err, ErrRegistryFrozen) {
		t.Errorf("Define() after freeze error = %v, want ErrRegistryFrozen", err)
	}
}

func TestNumberingRegistryResolveLevel(t *testing.T) {
	reg := NewNumberingRegistry()
	err := reg.Define("outline",
		NumberingLevel{Level: 2, Format: FormatLowerRoman},
		NumberingLevel{Level: 1, Format: FormatLowerLetter},
	)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		level      int
		wantLevel  int
		wantFormat NumberFormat
	}{
		{level: 1, wantLevel: 1, wantFormat: FormatLowerLetter},
		{level: 2, wantLevel: 2, wantFormat: FormatLowerRoman},
		{level: 0, wantLevel: 1, wantFormat: FormatLowerLetter},
		{level: 5, wantLevel: 1, wantFormat: FormatLowerLetter},
	}
	for _, tt := range tests {
		got, err := reg.ResolveLevel("outline", tt.level)
		if err != nil {
			t.Fatalf("ResolveLevel(%d) error = %v", tt.level, err)
		}
		if got.Level != tt.wantLevel || got.Format != tt.wantFormat {
			t.Errorf("ResolveLevel(%d) = level %d %s, want level %d %s", tt.level, got.Level, got.Format, tt.wantLevel, tt.wantFormat)
		}
	}

	var unk *UnknownNumberingError
	if _, err := reg.ResolveLevel("missing", 0); !errors.As(err, &unk) {
		t.Errorf("ResolveLevel(missing) error = %v, want *UnknownNumberingError", err)
	}
}

func TestNumberingRegistryDefaultsBulletFormat(t *testing.T) {
	reg := NewNumberingRegistry()
	if err := reg.Define("plain", NumberingLevel{Level: 0}); err != nil {
		t.Fatal(err)
	}
	lvl, _ := reg.ResolveLevel("plain", 0)
	if lvl.Format != FormatBullet {
		t.Errorf("Format = %q, want %q", lvl.Format, FormatBullet)
	}
	if lvl.StartAt() != 1 {
		t.Errorf("StartAt() = %d, want 1", lvl.StartAt())
	}
}

func TestNumberingLookupReturnsCopy(t *testing.T) {
	reg := NewNumberingRegistry()
	if err := reg.Define("steps", NumberingLevel{Level: 0, Format: FormatDecimal}); err != nil {
		t.Fatal(err)
	}
	def, ok := reg.Lookup("steps")
	if !ok {
		t.Fatal("Lookup() ok = false")
	}
	def.Levels[0].Format = FormatUpperRoman

	lvl, _ := reg.ResolveLevel("steps", 0)
	if lvl.Format != FormatDecimal {
		t.Errorf("registry changed through Lookup copy: Format = %q", lvl.Format)
	}
}

func TestNumberingDefinitionLabel(t *testing.T) {
	def := NumberingDefinition{
		Reference: "legal",
		Levels: []NumberingLevel{
			{Level: 0, Format: FormatDecimal, Text: "%1."},
			{Level: 1, Format: FormatLowerLetter, Text: "%1.%2)"},
			{Level: 2, Format: FormatUpperRoman, Text: "(%3)"},
			{Level: 3, Format: FormatBullet},
			{Level: 4, Format: FormatNone},
		},
	}

	tests := []struct {
		name     string
		level    int
		counters []int
		want     string
	}{
		{"decimal", 0, []int{3}, "3."},
		{"parent and letter", 1, []int{2, 4}, "2.d)"},
		{"letters wrap", 1, []int{1, 27}, "1.aa)"},
		{"upper roman", 2, []int{1, 1, 14}, "(XIV)"},
		{"bullet default glyph", 3, []int{1, 1, 1, 1}, "•"},
		{"none", 4, []int{1, 1, 1, 1, 1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := def.Label(def.Levels[tt.level], tt.counters)
			if got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatOrdinal(t *testing.T) {
	tests := []struct {
		format NumberFormat
		n      int
		want   string
	}{
		{FormatDecimal, 12, "12"},
		{FormatLowerLetter, 1, "a"},
		{FormatUpperLetter, 26, "Z"},
		{FormatUpperLetter, 28, "BB"},
		{FormatLowerRoman, 4, "iv"},
		{FormatUpperRoman, 1994, "MCMXCIV"},
		{FormatUpperRoman, 0, "0"},
	}
	for _, tt := range tests {
		if got := formatOrdinal(tt.format, tt.n); got != tt.want {
			t.Errorf("formatOrdinal(%s, %d) = %q, want %q", tt.format, tt.n, got, tt.want)
		}
	}
}
