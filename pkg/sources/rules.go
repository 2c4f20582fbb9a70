package sources

import "strings"

// Field names a canonical program field.
type Field string

// Canonical fields an adapter maps.
const (
	FieldID          Field = "source_id"
	FieldTitle       Field = "title"
	FieldSummary     Field = "summary"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldRegion      Field = "region"
	FieldTarget      Field = "target"
	FieldMethod      Field = "method"
	FieldOrganizer   Field = "organizer"
	FieldURL         Field = "url"
	FieldStartDate   Field = "start_date"
	FieldEndDate     Field = "end_date"
	FieldPeriod      Field = "period"
	FieldStatus      Field = "status"
	FieldAmountMin   Field = "amount_min"
	FieldAmountMax   Field = "amount_max"
	FieldViewCount   Field = "view_count"
)

// Rule reads one upstream field of an item of type T.
type Rule[T any] struct {
	Upstream string
	Get      func(T) Text
}

// Mapping lists, for each canonical field, the upstream fields to try in
// priority order. The order is part of an adapter's contract.
type Mapping[T any] map[Field][]Rule[T]

// Value returns the first non-blank upstream value for field and the
// upstream field name it came from.
func (m Mapping[T]) Value(field Field, item T) (string, string) {
	for _, rule := range m[field] {
		if v := strings.TrimSpace(rule.Get(item).String()); v != "" {
			return v, rule.Upstream
		}
	}
	return "", ""
}

// Upstream returns the ordered upstream field names for field.
func (m Mapping[T]) Upstream(field Field) []string {
	names := make([]string, 0, len(m[field]))
	for _, rule := range m[field] {
		names = append(names, rule.Upstream)
	}
	return names
}
