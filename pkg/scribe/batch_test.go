package scribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func batchDocuments(t *testing.T, n int) []*Document {
	t.Helper()
	docs := make([]*Document, n)
	for i := range docs {
		doc := NewDocument(WithLogger(NopLogger()), WithProperties(Properties{Title: fmt.Sprintf("doc-%d", i)}))
		mustAddSection(t, doc, LetterPortrait())
		mustAppend(t, doc, TextParagraph("body"))
		docs[i] = doc
	}
	return docs
}

func TestBuildAllPreservesOrder(t *testing.T) {
	SetLogger(NopLogger())
	docs := batchDocuments(t, 8)

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	p := PackagerFunc(func(ctx context.Context, doc *ResolvedDocument) ([]byte, error) {
		mu.Lock()
		active++
		if active > maxSeen {
			maxSeen = active
		}
		mu.Unlock()
		defer func() {
			mu.Lock()
			active--
			mu.Unlock()
		}()
		return []byte(doc.Properties.Title), nil
	})

	out, err := BuildAll(context.Background(), docs, p, 3)
	if err != nil {
		t.Fatalf("BuildAll() error = %v", err)
	}
	if len(out) != len(docs) {
		t.Fatalf("len(BuildAll()) = %d, want %d", len(out), len(docs))
	}
	for i, data := range out {
		if want := fmt.Sprintf("doc-%d", i); string(data) != want {
			t.Errorf("output %d = %q, want %q", i, data, want)
		}
	}
	if maxSeen > 3 {
		t.Errorf("saw %d concurrent packagers, limit is 3", maxSeen)
	}
}

func TestBuildAllReportsFailingDocument(t *testing.T) {
	SetLogger(NopLogger())
	docs := batchDocuments(t, 3)
	bad := NewDocument(WithLogger(NopLogger()))
	mustAddSection(t, bad, LetterPortrait())
	mustAppend(t, bad, TextParagraph("x").WithStyle("Missing"))
	docs[1] = bad

	var calls atomic.Int32
	p := PackagerFunc(func(ctx context.Context, doc *ResolvedDocument) ([]byte, error) {
		calls.Add(1)
		return []byte("ok"), nil
	})

	out, err := BuildAll(context.Background(), docs, p, 1)
	if err == nil {
		t.Fatal("BuildAll() error = nil, want failure from document 1")
	}
	if out != nil {
		t.Errorf("BuildAll() returned outputs with an error")
	}
	if !IsValidationError(err) {
		t.Errorf("BuildAll() error = %v, want wrapped *ValidationError", err)
	}
	if !strings.HasPrefix(err.Error(), "document 1: ") {
		t.Errorf("BuildAll() error = %q, want it to name document 1", err.Error())
	}
	if calls.Load() > 1 {
		t.Errorf("packager ran %d times, want documents after the failure skipped", calls.Load())
	}
}

func TestBuildAllNilDocument(t *testing.T) {
	SetLogger(NopLogger())
	docs := []*Document{nil}
	_, err := BuildAll(context.Background(), docs, PackagerFunc(func(context.Context, *ResolvedDocument) ([]byte, error) {
		return nil, nil
	}), 0)

	var inv *InvalidValueError
	if !errors.As(err, &inv) {
		t.Errorf("BuildAll() error = %v, want *InvalidValueError", err)
	}
}

func TestBuildAllCancelledContext(t *testing.T) {
	SetLogger(NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildAll(ctx, batchDocuments(t, 2), PackagerFunc(func(context.Context, *ResolvedDocument) ([]byte, error) {
		return []byte("x"), nil
	}), 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("BuildAll() error = %v, want context.Canceled", err)
	}
}

func TestBuildAllRejectsRepeatedDocument(t *testing.T) {
	SetLogger(NopLogger())
	docs := batchDocuments(t, 2)
	docs = append(docs, docs[0])

	var calls int32
	_, err := BuildAll(context.Background(), docs, PackagerFunc(func(context.Context, *ResolvedDocument) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("x"), nil
	}), 3)

	var inv *InvalidValueError
	if !errors.As(err, &inv) {
		t.Fatalf("BuildAll() error = %v, want *InvalidValueError", err)
	}
	if !strings.HasPrefix(err.Error(), "document 2: ") {
		t.Errorf("BuildAll() error = %q, want it to name document 2", err)
	}
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("packager called %d times, want 0", got)
	}
	if docs[0].Finalized() {
		t.Error("repeated document was finalized")
	}
}
