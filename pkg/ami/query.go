package ami

import (
	"sort"

	"github.com/samber/lo"
)

// Query holds the lookup criteria. Region is always compared; the other
// fields are optional and an empty value matches every record.
// Comparisons are exact and case-sensitive.
type Query struct {
	Region        string `json:"region" yaml:"region"`
	ReleaseName   string `json:"release_name,omitempty" yaml:"release_name,omitempty"`
	ReleaseNumber string `json:"release_number,omitempty" yaml:"release_number,omitempty"`
	InstanceType  string `json:"instance_type,omitempty" yaml:"instance_type,omitempty"`
	Architecture  string `json:"arch,omitempty" yaml:"arch,omitempty"`
}

// Matches reports whether r satisfies every supplied criterion.
func (q Query) Matches(r Record) bool {
	return r.Region == q.Region &&
		optionalMatch(q.ReleaseName, r.ReleaseName) &&
		optionalMatch(q.ReleaseNumber, r.ReleaseNumber) &&
		optionalMatch(q.InstanceType, r.InstanceType) &&
		optionalMatch(q.Architecture, r.Architecture)
}

func optionalMatch(want, got string) bool {
	return want == "" || want == got
}

// Filter returns the records matching q, in input order.
func Filter(records []Record, q Query) []Record {
	return lo.Filter(records, func(r Record, _ int) bool {
		return q.Matches(r)
	})
}

// SortByDate returns a copy of records stably sorted ascending by PublishDate.
// Dates are compared as plain strings; the locator uses zero-padded YYYYMMDD.
func SortByDate(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishDate < sorted[j].PublishDate
	})
	return sorted
}

// SelectLatest returns the record with the greatest PublishDate.
func SelectLatest(records []Record) (Record, error) {
	if len(records) == 0 {
		return Record{}, ErrNotFound
	}
	sorted := SortByDate(records)
	return sorted[len(sorted)-1], nil
}
