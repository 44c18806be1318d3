package scribe

import (
	"context"
	"fmt"
	"time"
)

// Packager turns a resolved document into the bytes of a container file.
// Implementations must not modify the document.
type Packager interface {
	Package(ctx context.Context, doc *ResolvedDocument) ([]byte, error)
}

// PackagerFunc adapts a function to the Packager interface.
type PackagerFunc func(ctx context.Context, doc *ResolvedDocument) ([]byte, error)

// Package calls f(ctx, doc).
func (f PackagerFunc) Package(ctx context.Context, doc *ResolvedDocument) ([]byte, error) {
	return f(ctx, doc)
}

func packagerName(p Packager) string {
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

// Serialize hands a finalized document to p and returns its output.
//
// ctx is checked once before the packager is called. Once issued, packaging runs to
// completion: the packager sees a context that is never cancelled. Every failure,
// including a panic inside the packager, is returned as a *WriteError and no partial
// output is returned.
func Serialize(ctx context.Context, doc *ResolvedDocument, p Packager) (out []byte, err error) {
	if p == nil {
		return nil, &WriteError{Cause: fmt.Errorf("nil packager")}
	}
	name := packagerName(p)
	if !doc.frozen() {
		return nil, &WriteError{Packager: name, Cause: ErrNotFinalized}
	}
	if err := ctx.Err(); err != nil {
		return nil, &WriteError{Packager: name, Cause: err}
	}

	logger := GetLogger().With("packager", name, "document", doc.ID.String())
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &WriteError{Packager: name, Cause: RecoverError(r)}
			logger.Error("packager panicked", "error", err)
		}
	}()

	data, perr := p.Package(context.WithoutCancel(ctx), doc)
	if perr != nil {
		logger.Warn("serialization failed", "error", perr)
		return nil, &WriteError{Packager: name, Cause: perr}
	}

	logger.Info("document serialized", "bytes", len(data), "duration", time.Since(start))
	return data, nil
}

// SerializeResult is the single outcome delivered by SerializeAsync.
type SerializeResult struct {
	Data []byte
	Err  error
}

// SerializeAsync runs Serialize in a goroutine. The returned channel is buffered and
// receives exactly one result, so callers may abandon it:
//
//	select {
//	case res := <-scribe.SerializeAsync(ctx, doc, p):
//		...
//	case <-time.After(timeout):
//		...
//	}
func SerializeAsync(ctx context.Context, doc *ResolvedDocument, p Packager) <-chan SerializeResult {
	ch := make(chan SerializeResult, 1)
	go func() {
		data, err := Serialize(ctx, doc, p)
		ch <- SerializeResult{Data: data, Err: err}
	}()
	return ch
}

// Build finalizes doc and serializes the result with p.
func Build(ctx context.Context, doc *Document, p Packager) ([]byte, error) {
	resolved, err := doc.Finalize()
	if err != nil {
		return nil, err
	}
	return Serialize(ctx, resolved, p)
}
