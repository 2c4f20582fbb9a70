package output

import (
	"io"

	"github.com/agentstation/grantmap"
	"github.com/agentstation/grantmap/internal/cmd/table"
	"github.com/agentstation/grantmap/pkg/programs"
)

// FormatPrograms writes programs in format. The wide table adds the
// organizer and a short summary.
func FormatPrograms(w io.Writer, format Format, ps []programs.Program) error {
	p := NewPrinter(w, format)
	return p.Print(ps, table.ProgramsToTableData(ps, p.Wide()))
}

// FormatReport writes a run report in format. The wide table follows the
// summary with the per-source breakdown.
func FormatReport(w io.Writer, format Format, r *grantmap.Report) error {
	p := NewPrinter(w, format)
	tables := []table.Data{table.ReportToTableData(r)}
	if p.Wide() && len(r.Sources) > 0 {
		tables = append(tables, table.SourceReportsToTableData(r.Sources))
	}
	return p.Print(r, tables...)
}

// FormatInventory writes gateway totals in format.
func FormatInventory(w io.Writer, format Format, inv *grantmap.Inventory) error {
	return NewPrinter(w, format).Print(inv, table.InventoryToTableData(inv))
}

// FormatSources writes the configured state of each source in format.
func FormatSources(w io.Writer, format Format, ss []table.SourceStatus) error {
	return NewPrinter(w, format).Print(ss, table.SourcesToTableData(ss))
}
