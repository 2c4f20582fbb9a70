package programs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func int64p(v int64) *int64 { return &v }

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name string
		end  *time.Time
		want Status
	}{
		{name: "no end date", end: nil, want: StatusOpen},
		{name: "end in the future", end: &future, want: StatusOpen},
		{name: "end in the past", end: &past, want: StatusClosed},
		{name: "end exactly now", end: &now, want: StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.end, now))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusOpen.IsValid())
	assert.True(t, StatusClosed.IsValid())
	assert.False(t, Status("pending").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestSortByViewsPutsMissingLast(t *testing.T) {
	ps := []Program{
		{SourceID: "a"},
		{SourceID: "b", ViewCount: int64p(10)},
		{SourceID: "c", ViewCount: int64p(0)},
		{SourceID: "d"},
		{SourceID: "e", ViewCount: int64p(300)},
	}

	SortByViews(ps)

	var ids []string
	for _, p := range ps {
		ids = append(ids, p.SourceID)
	}
	assert.Equal(t, []string{"e", "b", "c", "a", "d"}, ids)
	assert.NotNil(t, ps[2].ViewCount, "zero views is a value, not a missing count")
}

func TestExactKey(t *testing.T) {
	a := Program{Source: "bizinfo", SourceID: "x"}
	b := Program{Source: "kstartup", SourceID: "x"}
	assert.NotEqual(t, a.ExactKey(), b.ExactKey())
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "blank", in: "   \n ", want: ""},
		{name: "single sentence", in: "초기 창업 기업 지원", want: "초기 창업 기업 지원"},
		{name: "two sentences", in: "First one. Second one", want: "First one. Second one"},
		{
			name: "truncated",
			in:   "멘토링 제공.  시제품 제작 지원!\n마케팅 지원? 기타",
			want: "멘토링 제공. 시제품 제작 지원.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.in))
		})
	}
}
