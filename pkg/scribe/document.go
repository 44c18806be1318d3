package scribe

import (
	"time"
)

// Properties are the descriptive metadata of a document.
type Properties struct {
	Title       string
	Subject     string
	Creator     string
	Description string
	Keywords    []string
	// Created is written only when set, so unset documents serialize deterministically.
	Created time.Time
}

// Section is a run of block nodes sharing one page geometry.
type Section struct {
	Page     PageProperties
	children []BlockNode
}

// Children returns the section's nodes in rendering order.
func (s *Section) Children() []BlockNode {
	out := make([]BlockNode, len(s.children))
	copy(out, s.children)
	return out
}

// Len returns the number of nodes in the section.
func (s *Section) Len() int {
	return len(s.children)
}

// Document owns the style and numbering registries and an ordered list of sections.
// It is built by a single call chain: declare styles and numbering, open sections,
// append nodes, then Finalize.
type Document struct {
	Styles     *StyleRegistry
	Numbering  *NumberingRegistry
	Properties Properties

	sections []*Section
	current  *Section
	resolved *ResolvedDocument
	logger   *Logger
}

// Option configures a Document
type Option func(*Document)

// WithLogger sets the logger used by Finalize.
func WithLogger(logger *Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithProperties sets the document metadata.
func WithProperties(props Properties) Option {
	return func(d *Document) {
		props.Keywords = append([]string(nil), props.Keywords...)
		d.Properties = props
	}
}

// NewDocument creates an empty document with fresh registries.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		Styles:    NewStyleRegistry(),
		Numbering: NewNumberingRegistry(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) log() *Logger {
	if d.logger != nil {
		return d.logger
	}
	return GetLogger()
}

// DefineStyle registers a style in the document's style registry.
func (d *Document) DefineStyle(s Style) error {
	return d.Styles.Define(s)
}

// DefineNumbering registers a numbering scheme in the document's numbering registry.
func (d *Document) DefineNumbering(reference string, levels ...NumberingLevel) error {
	return d.Numbering.Define(reference, levels...)
}

// AddSection opens a new section and makes it the append target.
func (d *Document) AddSection(page PageProperties) error {
	if d.resolved != nil {
		return ErrDocumentFinalized
	}
	s := &Section{Page: page}
	d.sections = append(d.sections, s)
	d.current = s
	return nil
}

// Append adds nodes to the current section in call order. Each node is copied on
// attachment, so later changes to the caller's value do not reach the document.
func (d *Document) Append(nodes ...BlockNode) error {
	if d.resolved != nil {
		return ErrDocumentFinalized
	}
	if d.current == nil {
		return &NoActiveSectionError{}
	}
	for i, n := range nodes {
		if isNilNode(n) {
			return &InvalidValueError{Field: "node", Value: i, Message: "nil block node"}
		}
	}
	for _, n := range nodes {
		d.current.children = append(d.current.children, n.clone())
	}
	return nil
}

func isNilNode(n BlockNode) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Paragraph:
		return v == nil
	case *Table:
		return v == nil
	}
	return false
}

// Sections returns the document's sections in order.
func (d *Document) Sections() []*Section {
	out := make([]*Section, len(d.sections))
	copy(out, d.sections)
	return out
}

// Finalized reports whether Finalize has succeeded.
func (d *Document) Finalized() bool {
	return d.resolved != nil
}

// Finalize validates the whole tree against the registries and resolves it.
// Every defect is collected into a *ValidationError. On success the registries are
// frozen and the resolved document is cached; later calls return it without
// validating again.
func (d *Document) Finalize() (*ResolvedDocument, error) {
	if d.resolved != nil {
		return d.resolved, nil
	}

	logger := d.log()
	r := newResolver(d)
	resolved := r.resolve()

	if err := r.errs.err(); err != nil {
		logger.Warn("document validation failed", "errors", len(r.errs.Errors))
		return nil, err
	}

	d.Styles.freeze()
	d.Numbering.freeze()
	resolved.ID = fingerprint(resolved)
	d.resolved = resolved

	logger.Debug("document finalized",
		"id", resolved.ID.String(),
		"sections", len(resolved.Sections),
		"styles", d.Styles.Len(),
		"numbering", len(d.Numbering.order),
	)
	return resolved, nil
}
