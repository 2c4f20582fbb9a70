// Package output renders command results: aligned tables for a terminal,
// JSON or YAML for anything reading from a pipe.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/grantmap/internal/cmd/table"
	"github.com/agentstation/grantmap/pkg/errors"
)

// Format is an --output value.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatWide  Format = "wide"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// formats in help order.
var formats = []Format{FormatTable, FormatWide, FormatJSON, FormatYAML}

// ParseFormat validates an --output value. Empty means detect from the
// output stream.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" || slices.Contains(formats, f) {
		return f, nil
	}
	names := make([]string, len(formats))
	for i, name := range formats {
		names[i] = string(name)
	}
	return "", errors.NewValidationError("output", s, "must be one of: "+strings.Join(names, ", "))
}

// DetectFormat returns the explicit format when one is given. Otherwise a
// terminal gets a table and everything else gets JSON.
func DetectFormat(w io.Writer, explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(strings.TrimSpace(explicit)))
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return FormatTable
	}
	return FormatJSON
}

// Printer writes one command result.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter returns a printer for w. Unknown formats print tables.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Wide reports whether tables should carry the optional detail columns.
func (p *Printer) Wide() bool {
	return p.format == FormatWide
}

// Print encodes v for JSON and YAML. Table formats ignore v and render the
// prepared tables, separated by a blank line.
func (p *Printer) Print(v any, tables ...table.Data) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		b, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = p.w.Write(b)
		return err
	}

	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(p.w); err != nil {
				return err
			}
		}
		if err := render(p.w, t); err != nil {
			return err
		}
	}
	return nil
}

var alignments = map[table.Align]tw.Align{
	table.AlignLeft:   tw.AlignLeft,
	table.AlignCenter: tw.AlignCenter,
	table.AlignRight:  tw.AlignRight,
}

func render(w io.Writer, data table.Data) error {
	var cfg tablewriter.Config
	if len(data.ColumnAlignment) > 0 {
		per := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			if mapped, ok := alignments[a]; ok {
				per[i] = mapped
			} else {
				per[i] = tw.Skip
			}
		}
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: per}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: per}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(data.Headers) > 0 {
		t.Header(cells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := t.Append(cells(row)...); err != nil {
			return err
		}
	}
	return t.Render()
}

func cells(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
