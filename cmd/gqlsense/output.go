package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sevigo/gqlsense/parsers/graphql"
	"github.com/sevigo/gqlsense/query"
	"github.com/sevigo/gqlsense/schema"
)

var kindTitle = cases.Title(language.English)

func kindLabel(k graphql.Kind) string {
	return kindTitle.String(string(k))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// writeOutline prints one row per symbol with 1-based line numbers.
func writeOutline(w io.Writer, symbols []query.Symbol) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "LINE\tKIND\tNAME")
	for _, s := range symbols {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Range.Start.Line+1, kindLabel(s.Kind), s.Name)
	}
	return tw.Flush()
}

func writeDocuments(w io.Writer, docs []schema.Document) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SOURCE\tLINE\tKIND\tNAME")
	for _, d := range docs {
		kind, _ := d.Metadata["chunk_type"].(string)
		name, _ := d.Metadata["identifier"].(string)
		line, _ := d.Metadata["line_start"].(int)
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", d.Source(), line, kindLabel(graphql.Kind(kind)), name)
	}
	return tw.Flush()
}
