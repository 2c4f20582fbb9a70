package table

import (
	"strconv"
	"time"

	"github.com/agentstation/grantmap"
	"github.com/agentstation/grantmap/internal/utils/ptr"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/sources"
)

const dateLayout = "2006-01-02"

// ProgramsToTableData converts programs to table format. With showDetails
// the organizer and a two-sentence summary are added.
func ProgramsToTableData(ps []programs.Program, showDetails bool) Data {
	headers := []string{"Source ID", "Title", "Status", "Start", "End", "Views"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight}
	if showDetails {
		headers = append(headers, "Organizer", "Summary")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		row := []string{
			p.SourceID,
			Truncate(p.Title, 60),
			p.Status.String(),
			formatDate(p.StartDate),
			formatDate(p.EndDate),
			formatCount(p.ViewCount),
		}
		if showDetails {
			row = append(row,
				orDash(ptr.Deref(p.Organizer)),
				orDash(Truncate(programs.Summarize(ptr.Deref(p.Description)), 80)),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// ReportToTableData converts a run report to a key-value table.
func ReportToTableData(r *grantmap.Report) Data {
	rows := [][]string{
		{"Run ID", r.RunID},
		{"Dry Run", strconv.FormatBool(r.DryRun)},
		{"Duration", r.Duration},
		{"Fetched", FormatNumber(int64(r.Fetched))},
		{"After Dedupe", FormatNumber(int64(r.AfterDedupe))},
		{"Exact Duplicates", FormatNumber(int64(r.ExactDuplicates))},
		{"Fuzzy Duplicates", FormatNumber(int64(r.FuzzyDuplicates))},
		{"Cross-Source Duplicates", FormatNumber(int64(r.CrossSourceDuplicates))},
		{"Validation Failures", FormatNumber(int64(r.ValidationFailures))},
		{"Created", FormatNumber(int64(r.Created))},
		{"Updated", FormatNumber(int64(r.Updated))},
		{"Persist Errors", FormatNumber(int64(r.PersistErrors))},
		{"Stored Total", FormatNumber(int64(r.StoredTotal))},
	}
	for _, s := range r.Sources {
		state := "ok"
		if s.Failed {
			state = "failed: " + s.Message
		} else if s.Message != "" {
			state = s.Message
		}
		rows = append(rows, []string{"Source " + s.Source.String(), state})
	}
	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// SourceReportsToTableData converts per-source fetch outcomes to table format.
func SourceReportsToTableData(rs []grantmap.SourceReport) Data {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{
			r.Source.String(),
			FormatNumber(int64(r.Fetched)),
			FormatNumber(int64(r.Dropped)),
			strconv.Itoa(r.Pages),
			strconv.FormatBool(r.Failed),
			orDash(r.Message),
		})
	}
	return Data{
		Headers:         []string{"Source", "Fetched", "Dropped", "Pages", "Failed", "Message"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft, AlignLeft},
	}
}

// InventoryToTableData converts gateway totals to a grouped count table.
func InventoryToTableData(inv *grantmap.Inventory) Data {
	rows := [][]string{{"total", "", FormatNumber(int64(inv.StoredTotal))}}
	for _, r := range countRows(inv.BySource) {
		rows = append(rows, []string{"source", r[0], r[1]})
	}
	for _, r := range countRows(inv.ByStatus) {
		rows = append(rows, []string{"status", r[0], r[1]})
	}
	return Data{
		Headers:         []string{"Group", "Key", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// SourceStatus describes whether a source is configured in this environment.
type SourceStatus struct {
	ID         sources.ID `json:"id" yaml:"id"`
	URLKey     string     `json:"url_key" yaml:"url_key"`
	KeyKey     string     `json:"key_key" yaml:"key_key"`
	Configured bool       `json:"configured" yaml:"configured"`
}

// SourcesToTableData converts source statuses to table format.
func SourcesToTableData(ss []SourceStatus) Data {
	rows := make([][]string, 0, len(ss))
	for _, s := range ss {
		state := "missing"
		if s.Configured {
			state = "configured"
		}
		rows = append(rows, []string{s.ID.String(), s.URLKey, s.KeyKey, state})
	}
	return Data{
		Headers: []string{"Source", "URL Variable", "Key Variable", "Status"},
		Rows:    rows,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

func formatCount(n *int64) string {
	if n == nil {
		return "-"
	}
	return FormatNumber(*n)
}
