// Package docx packages resolved documents as Office Open XML word processing files.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/benjaminschreck/go-scribe/pkg/scribe"
	"github.com/benjaminschreck/go-scribe/pkg/scribe/xml"
)

// Part names inside the container.
const (
	PartContentTypes   = "[Content_Types].xml"
	PartRootRels       = "_rels/.rels"
	PartDocument       = "word/document.xml"
	PartDocumentRels   = "word/_rels/document.xml.rels"
	PartStyles         = "word/styles.xml"
	PartNumbering      = "word/numbering.xml"
	PartCoreProperties = "docProps/core.xml"
	PartAppProperties  = "docProps/app.xml"
)

// epoch is the modification time stamped on every entry so identical documents
// produce identical bytes.
var epoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Packager writes DOCX containers. The zero value is not usable; call New.
type Packager struct {
	method  uint16
	creator string
	logger  *scribe.Logger
}

// Option configures a Packager
type Option func(*Packager)

// WithCompression selects the ZIP method: "deflate" or "store".
func WithCompression(method string) Option {
	return func(p *Packager) {
		if method == "store" {
			p.method = zip.Store
		} else {
			p.method = zip.Deflate
		}
	}
}

// WithCreator sets the creator written when the document does not name one.
func WithCreator(creator string) Option {
	return func(p *Packager) {
		p.creator = creator
	}
}

// WithLogger sets the packager's logger.
func WithLogger(logger *scribe.Logger) Option {
	return func(p *Packager) {
		p.logger = logger
	}
}

// New creates a packager configured from the global configuration and opts.
func New(opts ...Option) *Packager {
	config := scribe.GetGlobalConfig()
	p := &Packager{creator: config.Creator}
	WithCompression(config.Compression)(p)
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = scribe.GetLogger()
	}
	return p
}

// Name identifies the packager in errors and logs.
func (p *Packager) Name() string {
	return "docx"
}

type part struct {
	name string
	v    interface{}
}

// Package renders doc into a DOCX container.
func (p *Packager) Package(ctx context.Context, doc *scribe.ResolvedDocument) ([]byte, error) {
	b := newBuilder(doc)
	body := b.document()
	styles := buildStyles(doc.Styles)

	docRels := []xml.Relationship{{ID: "rId1", Type: xml.RelTypeStyles, Target: "styles.xml"}}
	overrides := []xml.ContentOverride{
		{PartName: "/" + PartDocument, ContentType: xml.ContentTypeDocument},
		{PartName: "/" + PartStyles, ContentType: xml.ContentTypeStyles},
	}
	parts := []part{
		{PartDocument, body},
		{PartStyles, styles},
	}
	if numbering := b.numbering(); numbering != nil {
		docRels = append(docRels, xml.Relationship{ID: "rId2", Type: xml.RelTypeNumbering, Target: "numbering.xml"})
		overrides = append(overrides, xml.ContentOverride{PartName: "/" + PartNumbering, ContentType: xml.ContentTypeNumbering})
		parts = append(parts, part{PartNumbering, numbering})
	}
	overrides = append(overrides,
		xml.ContentOverride{PartName: "/" + PartCoreProperties, ContentType: xml.ContentTypeCore},
		xml.ContentOverride{PartName: "/" + PartAppProperties, ContentType: xml.ContentTypeExtended},
	)

	creator := doc.Properties.Creator
	if creator == "" {
		creator = p.creator
	}
	parts = append(parts,
		part{PartDocumentRels, &xml.Relationships{Relationships: docRels}},
		part{PartCoreProperties, xml.CoreProperties{
			Title:       doc.Properties.Title,
			Subject:     doc.Properties.Subject,
			Creator:     creator,
			Keywords:    doc.Properties.Keywords,
			Description: doc.Properties.Description,
			Identifier:  "urn:uuid:" + doc.ID.String(),
			Created:     doc.Properties.Created,
		}},
		part{PartAppProperties, &xml.AppProperties{Application: "go-scribe"}},
	)

	all := append([]part{
		{PartContentTypes, &xml.ContentTypes{
			Defaults: []xml.ContentDefault{
				{Extension: "rels", ContentType: xml.ContentTypeRelationships},
				{Extension: "xml", ContentType: xml.ContentTypeXML},
			},
			Overrides: overrides,
		}},
		{PartRootRels, &xml.Relationships{Relationships: []xml.Relationship{
			{ID: "rId1", Type: xml.RelTypeOfficeDocument, Target: PartDocument},
			{ID: "rId2", Type: xml.RelTypeCoreProperties, Target: PartCoreProperties},
			{ID: "rId3", Type: xml.RelTypeExtended, Target: PartAppProperties},
		}}},
	}, parts...)

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, pt := range all {
		if err := p.writePart(w, pt); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip: %w", err)
	}

	p.logger.Debug("docx packaged", "parts", len(all), "numberingInstances", len(b.nums), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (p *Packager) writePart(w *zip.Writer, pt part) error {
	data, err := xml.Marshal(pt.v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", pt.name, err)
	}
	fw, err := w.CreateHeader(&zip.FileHeader{Name: pt.name, Method: p.method, Modified: epoch})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", pt.name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", pt.name, err)
	}
	return nil
}
