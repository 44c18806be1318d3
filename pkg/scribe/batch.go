package scribe

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// BuildAll builds independent documents concurrently, at most limit at a time.
// A limit of zero or less uses Config.BuildConcurrency. Outputs are returned in
// the order of docs. The first failure stops documents that have not started yet;
// documents already being packaged run to completion. Every document must be distinct;
// a repeated document is rejected before anything is built.
func BuildAll(ctx context.Context, docs []*Document, p Packager, limit int) ([][]byte, error) {
	if limit <= 0 {
		limit = GetGlobalConfig().BuildConcurrency
	}
	if limit < 1 {
		limit = 1
	}

	seen := make(map[*Document]int, len(docs))
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		if first, dup := seen[doc]; dup {
			return nil, fmt.Errorf("document %d: %w", i, &InvalidValueError{Field: "document", Value: first, Message: "same document as document " + strconv.Itoa(first)})
		}
		seen[doc] = i
	}

	out := make([][]byte, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if doc == nil {
				return fmt.Errorf("document %d: %w", i, &InvalidValueError{Field: "document", Value: nil, Message: "nil document"})
			}
			data, err := Build(gctx, doc, p)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			out[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	GetLogger().Debug("batch built", "documents", len(docs), "limit", limit)
	return out, nil
}
