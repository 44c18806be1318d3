package scribe

// StyleID names a style in a StyleRegistry.
type StyleID string

// DefaultStyleID is the implicit root of every basedOn chain. It is always registered.
const DefaultStyleID StyleID = "Normal"

// Style is a named, inheritable formatting definition.
type Style struct {
	ID StyleID
	// Name is the display name; the id is used when empty.
	Name string
	// BasedOn names the parent style. Empty means DefaultStyleID.
	BasedOn StyleID
	// Next is the style of the paragraph an editor creates after this one.
	Next         StyleID
	QuickFormat  bool
	Run          RunProps
	Paragraph    ParagraphProps
	OutlineLevel *int
}

// clone returns a copy of s that shares no pointers with it.
func (s Style) clone() Style {
	s.Run = s.Run.clone()
	s.Paragraph = s.Paragraph.clone()
	s.OutlineLevel = cloneInt(s.OutlineLevel)
	return s
}

// parent returns the style this one inherits from and whether it has one.
func (s *Style) parent() (StyleID, bool) {
	if s.ID == DefaultStyleID {
		return "", false
	}
	if s.BasedOn == "" {
		return DefaultStyleID, true
	}
	return s.BasedOn, true
}

// ResolvedStyle is the fully merged formatting of a style.
type ResolvedStyle struct {
	ID           StyleID
	Run          RunProps
	Paragraph    ParagraphProps
	OutlineLevel *int
	// Chain lists the styles visited, starting at ID and ending at DefaultStyleID.
	Chain []StyleID
}

func (rs ResolvedStyle) clone() ResolvedStyle {
	rs.Run = rs.Run.clone()
	rs.Paragraph = rs.Paragraph.clone()
	rs.OutlineLevel = cloneInt(rs.OutlineLevel)
	rs.Chain = append([]StyleID(nil), rs.Chain...)
	return rs
}

// StyleRegistry stores style definitions and resolves their inheritance chains.
type StyleRegistry struct {
	styles map[StyleID]*Style
	order  []StyleID
	frozen bool
	cache  map[StyleID]ResolvedStyle
}

// NewStyleRegistry creates a registry holding only the default style.
func NewStyleRegistry() *StyleRegistry {
	r := &StyleRegistry{
		styles: make(map[StyleID]*Style),
	}
	r.styles[DefaultStyleID] = &Style{ID: DefaultStyleID, Name: string(DefaultStyleID), QuickFormat: true}
	r.order = append(r.order, DefaultStyleID)
	return r
}

// Define registers a style.
func (r *StyleRegistry) Define(s Style) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if s.ID == "" {
		return &InvalidValueError{Field: "style.id", Value: `""`, Message: "style id must not be empty"}
	}
	if _, exists := r.styles[s.ID]; exists {
		return &DuplicateStyleError{ID: s.ID}
	}
	def := s.clone()
	r.styles[s.ID] = &def
	r.order = append(r.order, s.ID)
	return nil
}

// SetDefaults sets the document-wide formatting held by the default style.
func (r *StyleRegistry) SetDefaults(run RunProps, para ParagraphProps) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	root := r.styles[DefaultStyleID]
	root.Run = run.clone()
	root.Paragraph = para.clone()
	return nil
}

// Lookup returns a copy of the definition registered under id.
func (r *StyleRegistry) Lookup(id StyleID) (Style, bool) {
	s, ok := r.styles[id]
	if !ok {
		return Style{}, false
	}
	return s.clone(), true
}

// IDs returns the registered style ids in definition order, starting with the default style.
func (r *StyleRegistry) IDs() []StyleID {
	out := make([]StyleID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered styles including the default style.
func (r *StyleRegistry) Len() int {
	return len(r.order)
}

// Frozen reports whether the registry has been frozen by Finalize.
func (r *StyleRegistry) Frozen() bool {
	return r.frozen
}

// Resolve merges the basedOn chain of id. A field set closer to id wins over an
// ancestor's value. Results are memoized once the registry is frozen; before that every
// call walks the chain again.
func (r *StyleRegistry) Resolve(id StyleID) (ResolvedStyle, error) {
	if r.frozen {
		if rs, ok := r.cache[id]; ok {
			return rs.clone(), nil
		}
	}

	start, ok := r.styles[id]
	if !ok {
		return ResolvedStyle{}, &UnknownStyleError{ID: id}
	}

	rs := ResolvedStyle{
		ID:           id,
		Run:          start.Run,
		Paragraph:    start.Paragraph,
		OutlineLevel: start.OutlineLevel,
		Chain:        []StyleID{id},
	}
	visited := map[StyleID]bool{id: true}

	cur := start
	for {
		parentID, has := cur.parent()
		if !has {
			break
		}
		if visited[parentID] {
			chain := append(append([]StyleID(nil), rs.Chain...), parentID)
			return ResolvedStyle{}, &CyclicStyleError{Chain: chain}
		}
		parent, ok := r.styles[parentID]
		if !ok {
			return ResolvedStyle{}, &UnknownStyleError{ID: parentID, ReferencedBy: cur.ID}
		}
		visited[parentID] = true
		rs.Chain = append(rs.Chain, parentID)

		rs.Run = rs.Run.Inherit(parent.Run)
		rs.Paragraph = rs.Paragraph.Inherit(parent.Paragraph)
		if rs.OutlineLevel == nil {
			rs.OutlineLevel = parent.OutlineLevel
		}
		cur = parent
	}

	return rs.clone(), nil
}

// freeze makes the registry read-only and memoizes every chain that resolves.
// The cache is never written afterwards, so a frozen registry is safe for concurrent readers.
func (r *StyleRegistry) freeze() {
	if r.frozen {
		return
	}
	cache := make(map[StyleID]ResolvedStyle, len(r.styles))
	for _, id := range r.order {
		if rs, err := r.Resolve(id); err == nil {
			cache[id] = rs
		}
	}
	r.cache = cache
	r.frozen = true
}
