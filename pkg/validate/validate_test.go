package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/grantmap/internal/utils/ptr"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/programs"
)

func valid() programs.Program {
	return programs.Program{
		Source:    "bizinfo",
		SourceID:  "bizinfo-1",
		Title:     "청년 창업 지원",
		Status:    programs.StatusOpen,
		StartDate: ptr.To(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		AmountMin: ptr.To(int64(0)),
	}
}

func fields(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Field)
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *programs.Program)
		want   []string
	}{
		{name: "valid", mutate: func(*programs.Program) {}},
		{name: "missing source id", mutate: func(p *programs.Program) { p.SourceID = "" }, want: []string{"source_id"}},
		{name: "blank title", mutate: func(p *programs.Program) { p.Title = "  " }, want: []string{"title"}},
		{name: "missing source", mutate: func(p *programs.Program) { p.Source = "" }, want: []string{"source"}},
		{name: "bad status", mutate: func(p *programs.Program) { p.Status = "pending" }, want: []string{"status"}},
		{name: "empty status", mutate: func(p *programs.Program) { p.Status = "" }, want: []string{"status"}},
		{name: "zero date", mutate: func(p *programs.Program) { p.EndDate = &time.Time{} }, want: []string{"end_date"}},
		{
			name:   "implausible year",
			mutate: func(p *programs.Program) { p.StartDate = ptr.To(time.Date(3025, 1, 1, 0, 0, 0, 0, time.UTC)) },
			want:   []string{"start_date"},
		},
		{
			name: "negative numbers",
			mutate: func(p *programs.Program) {
				p.AmountMax = ptr.To(int64(-1))
				p.ViewCount = ptr.To(int64(-5))
			},
			want: []string{"amount_max", "view_count"},
		},
		{
			name: "several issues",
			mutate: func(p *programs.Program) {
				p.SourceID = ""
				p.Title = ""
			},
			want: []string{"source_id", "title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)

			got, issues := Validate(p)

			assert.Equal(t, p, got)
			if len(tt.want) == 0 {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, tt.want, fields(issues))
		})
	}
}

func TestValidateAll(t *testing.T) {
	bad := valid()
	bad.SourceID = "bizinfo-2"
	bad.Status = "unknown"

	second := valid()
	second.SourceID = "bizinfo-3"

	ok, rejected := ValidateAll([]programs.Program{valid(), bad, second})

	require.Len(t, ok, 2)
	assert.Equal(t, "bizinfo-1", ok[0].SourceID)
	assert.Equal(t, "bizinfo-3", ok[1].SourceID)

	require.Len(t, rejected, 1)
	assert.Equal(t, "bizinfo-2", rejected[0].SourceID)
	assert.Equal(t, "status", rejected[0].Issues[0].Field)

	err := rejected[0].Err()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
