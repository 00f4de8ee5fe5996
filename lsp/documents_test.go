package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/sevigo/gqlsense/lsp"
)

const docURI = protocol.DocumentUri("file:///schema.graphql")

func TestDocuments_Lifecycle(t *testing.T) {
	docs := lsp.NewDocuments()

	_, ok := docs.Text(docURI)
	assert.False(t, ok)

	docs.Open(docURI, "type A {\n}\n")
	text, ok := docs.Text(docURI)
	require.True(t, ok)
	assert.Equal(t, "type A {\n}\n", text)

	docs.Close(docURI)
	_, ok = docs.Text(docURI)
	assert.False(t, ok)
}

func TestDocuments_Change(t *testing.T) {
	tests := []struct {
		name    string
		changes []any
		want    string
	}{
		{
			name:    "whole document",
			changes: []any{protocol.TextDocumentContentChangeEventWhole{Text: "scalar Date\n"}},
			want:    "scalar Date\n",
		},
		{
			name:    "event without range",
			changes: []any{protocol.TextDocumentContentChangeEvent{Text: "enum E\n"}},
			want:    "enum E\n",
		},
		{
			name: "ranged splice",
			changes: []any{protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 5},
					End:   protocol.Position{Line: 0, Character: 6},
				},
				Text: "Query",
			}},
			want: "type Query {\n}\n",
		},
		{
			name: "events apply in order",
			changes: []any{
				protocol.TextDocumentContentChangeEventWhole{Text: "type X\n"},
				protocol.TextDocumentContentChangeEvent{
					Range: &protocol.Range{
						Start: protocol.Position{Line: 0, Character: 0},
						End:   protocol.Position{Line: 0, Character: 4},
					},
					Text: "input",
				},
			},
			want: "input X\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := lsp.NewDocuments()
			docs.Open(docURI, "type A {\n}\n")

			require.NoError(t, docs.Change(docURI, tt.changes))
			text, _ := docs.Text(docURI)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestDocuments_Errors(t *testing.T) {
	docs := lsp.NewDocuments()

	err := docs.Change(docURI, []any{protocol.TextDocumentContentChangeEventWhole{Text: "x"}})
	require.ErrorIs(t, err, lsp.ErrDocumentNotFound)

	_, _, err = docs.OffsetAt(docURI, protocol.Position{})
	require.ErrorIs(t, err, lsp.ErrDocumentNotFound)

	docs.Open(docURI, "type A")
	require.Error(t, docs.Change(docURI, []any{"not an event"}))
	text, _ := docs.Text(docURI)
	assert.Equal(t, "type A", text, "failed change leaves the text untouched")
}

func TestDocuments_InvalidRange(t *testing.T) {
	tests := []struct {
		name  string
		start protocol.Position
		end   protocol.Position
	}{
		{"reversed lines", protocol.Position{Line: 1, Character: 3}, protocol.Position{Line: 0, Character: 2}},
		{"reversed characters", protocol.Position{Line: 0, Character: 4}, protocol.Position{Line: 0, Character: 1}},
		{"start past end of document", protocol.Position{Line: 9, Character: 0}, protocol.Position{Line: 9, Character: 1}},
		{"end past end of document", protocol.Position{Line: 0, Character: 0}, protocol.Position{Line: 3, Character: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := lsp.NewDocuments()
			docs.Open(docURI, "type A {\n}\n")

			err := docs.Change(docURI, []any{
				protocol.TextDocumentContentChangeEventWhole{Text: "type A {\n}\n"},
				protocol.TextDocumentContentChangeEvent{
					Range: &protocol.Range{Start: tt.start, End: tt.end},
					Text:  "X",
				},
			})
			require.ErrorIs(t, err, lsp.ErrInvalidRange)

			text, _ := docs.Text(docURI)
			assert.Equal(t, "type A {\n}\n", text)
		})
	}

	t.Run("end of trailing empty line is accepted", func(t *testing.T) {
		docs := lsp.NewDocuments()
		docs.Open(docURI, "type A {\n}\n")
		err := docs.Change(docURI, []any{protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{Start: protocol.Position{Line: 2}, End: protocol.Position{Line: 2}},
			Text:  "scalar B\n",
		}})
		require.NoError(t, err)
		text, _ := docs.Text(docURI)
		assert.Equal(t, "type A {\n}\nscalar B\n", text)
	})
}

func TestDocuments_OffsetAt(t *testing.T) {
	docs := lsp.NewDocuments()
	docs.Open(docURI, "type A\ntype B\n")

	text, offset, err := docs.OffsetAt(docURI, protocol.Position{Line: 1, Character: 5})
	require.NoError(t, err)
	assert.Equal(t, "type A\ntype B\n", text)
	assert.Equal(t, 12, offset)
}
