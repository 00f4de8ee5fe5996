package lsp

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	// ErrDocumentNotFound is returned for URIs that were never opened or are already closed.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidRange is returned for change ranges that are reversed or outside the document.
	ErrInvalidRange = errors.New("invalid change range")
)

// Documents holds the current text of every open document.
type Documents struct {
	mu    sync.RWMutex
	texts map[protocol.DocumentUri]string
}

func NewDocuments() *Documents {
	return &Documents{texts: make(map[protocol.DocumentUri]string)}
}

func (d *Documents) Open(uri protocol.DocumentUri, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[uri] = text
}

// Change applies content change events in order. Events carrying a range
// splice into the current text; the others replace it. Nothing is stored
// unless every event applies.
func (d *Documents) Change(uri protocol.DocumentUri, changes []any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	text, ok := d.texts[uri]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}

	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start, end, err := spliceBounds(text, *c.Range)
			if err != nil {
				return fmt.Errorf("%s: %w", uri, err)
			}
			text = text[:start] + c.Text + text[end:]
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		default:
			return fmt.Errorf("unsupported content change %T", change)
		}
	}

	d.texts[uri] = text
	return nil
}

func (d *Documents) Close(uri protocol.DocumentUri) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.texts, uri)
}

func (d *Documents) Text(uri protocol.DocumentUri) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	text, ok := d.texts[uri]
	return text, ok
}

// OffsetAt returns the document text and the byte offset of pos within it.
func (d *Documents) OffsetAt(uri protocol.DocumentUri, pos protocol.Position) (string, int, error) {
	text, ok := d.Text(uri)
	if !ok {
		return "", 0, fmt.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}
	return text, pos.IndexIn(text), nil
}

// spliceBounds converts r to byte offsets, rejecting ranges that glsp would
// otherwise silently map to offset 0.
func spliceBounds(text string, r protocol.Range) (int, int, error) {
	lines := protocol.UInteger(strings.Count(text, "\n") + 1)
	if r.Start.Line >= lines || r.End.Line >= lines {
		return 0, 0, fmt.Errorf("%w: lines %d-%d outside %d-line document", ErrInvalidRange, r.Start.Line, r.End.Line, lines)
	}
	if r.End.Line < r.Start.Line || (r.End.Line == r.Start.Line && r.End.Character < r.Start.Character) {
		return 0, 0, fmt.Errorf("%w: end %d:%d precedes start %d:%d", ErrInvalidRange,
			r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}
	start, end := r.IndexesIn(text)
	if start > end || end > len(text) {
		return 0, 0, fmt.Errorf("%w: offsets %d-%d", ErrInvalidRange, start, end)
	}
	return start, end, nil
}
