package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/dcss-tools/morguelib/internal/model"
)

// BuildCount pairs a build code with the number of winning games
// recorded for it.
type BuildCount struct {
	Build string `json:"build"`
	Count int    `json:"count"`
}

// SearchResults holds the outcome of a query against the winners
// files: the matching entries and, optionally, the most popular builds
// among them.
type SearchResults struct {
	Query   string              `json:"query"`
	Entries []model.WinnerEntry `json:"entries"`
	Popular []BuildCount        `json:"popular,omitempty"`
}

// WriteText renders the results as aligned plain-text lines, one entry
// per line.
func (r *SearchResults) WriteText(w io.Writer) error {
	if r.Query != "" {
		if _, err := fmt.Fprintf(w, "query: %s\n", r.Query); err != nil {
			return err
		}
	}
	for _, e := range r.Entries {
		code := e.Record.BuildCode()
		if _, err := fmt.Fprintf(w, "%-20s %3d  %-6s  %s\n", code, e.Record.Runes, e.Record.Version, e.URL); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%d matching game(s)\n", len(r.Entries)); err != nil {
		return err
	}

	if len(r.Popular) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nMost popular build(s):"); err != nil {
		return err
	}
	for _, p := range r.Popular {
		if _, err := fmt.Fprintf(w, "%-20s %d\n", p.Build, p.Count); err != nil {
			return err
		}
	}
	return nil
}

// WriteMarkdown renders the results as a markdown document with one
// table for the matches and one for the popularity ranking.
func (r *SearchResults) WriteMarkdown(w io.Writer) error {
	doc := markdown.NewMarkdown(w)
	doc.H1("Winning Games")
	doc.PlainText("")
	if r.Query != "" {
		doc.PlainTextf("Query: `%s`", r.Query)
		doc.PlainText("")
	}

	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, []string{
			e.Record.BuildCode(),
			strconv.Itoa(e.Record.Runes),
			e.Record.Version,
			e.URL,
		})
	}
	doc.Table(markdown.TableSet{
		Header: []string{"Build", "Runes", "Version", "Morgue"},
		Rows:   rows,
	})

	if len(r.Popular) > 0 {
		popular := make([][]string, 0, len(r.Popular))
		for _, p := range r.Popular {
			popular = append(popular, []string{p.Build, strconv.Itoa(p.Count)})
		}
		doc.PlainText("")
		doc.H2("Most Popular Builds")
		doc.Table(markdown.TableSet{
			Header: []string{"Build", "Wins"},
			Rows:   popular,
		})
	}
	return doc.Build()
}

// WriteJSON renders the results as indented JSON.
func (r *SearchResults) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
