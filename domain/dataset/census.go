package dataset

import (
	"github.com/montanaflynn/stats"
)

// ColumnProfile summarizes one column's usable content. Rates are over
// RowCount, so a column that is half nulls profiles at 0.5 regardless of
// declared type.
type ColumnProfile struct {
	Name        string
	Type        ColumnType
	NonNull     int
	NumericN    int
	NumericRate float64
	DateN       int
	DateRate    float64
	Distinct    int
	Mean        float64
	StdDev      float64
	Min         float64
	Max         float64
}

// Numeric reports whether the column carries enough parseable numbers to be
// treated as a measure.
func (p ColumnProfile) Numeric() bool {
	return p.NumericN >= 2 && p.NumericRate >= 0.6
}

// Temporal reports whether the column carries enough date cells to index a
// time series.
func (p ColumnProfile) Temporal() bool {
	return p.Type == TypeDate && p.DateN >= 2
}

// Categorical reports whether the column groups rows into a small number of
// repeated labels.
func (p ColumnProfile) Categorical() bool {
	if p.NonNull == 0 {
		return false
	}
	return p.Distinct >= 2 && p.Distinct <= 50 && p.Distinct < p.NonNull
}

// Census is a whole-table profile: which columns are usable measures,
// dimensions or time indexes. The auto-analysis planner consumes it to
// decide which analyses apply.
type Census struct {
	Rows     int
	Profiles []ColumnProfile
}

// Describe profiles every column of a dataset in one pass per column.
func Describe(d *Dataset) Census {
	c := Census{Rows: d.RowCount()}
	for _, col := range d.Columns() {
		c.Profiles = append(c.Profiles, profileColumn(d, col))
	}
	return c
}

func profileColumn(d *Dataset, col Column) ColumnProfile {
	p := ColumnProfile{Name: col.Name, Type: col.Type}
	nums := make([]float64, 0, d.RowCount())
	labels := make(map[string]struct{})

	for i := 0; i < d.RowCount(); i++ {
		v := d.Value(i, col.Name)
		if v.IsNull() {
			continue
		}
		p.NonNull++
		if f, ok := v.Float(); ok {
			p.NumericN++
			nums = append(nums, f)
		}
		if _, ok := v.Time(); ok {
			p.DateN++
		}
		if s, ok := v.Label(); ok {
			labels[s] = struct{}{}
		}
	}

	if d.RowCount() > 0 {
		p.NumericRate = float64(p.NumericN) / float64(d.RowCount())
		p.DateRate = float64(p.DateN) / float64(d.RowCount())
	}
	p.Distinct = len(labels)

	if len(nums) > 0 {
		p.Mean, _ = stats.Mean(nums)
		p.Min, _ = stats.Min(nums)
		p.Max, _ = stats.Max(nums)
		if len(nums) > 1 {
			p.StdDev, _ = stats.StandardDeviationSample(nums)
		}
	}
	return p
}

// Profile returns the profile of the named column.
func (c Census) Profile(name string) (ColumnProfile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return ColumnProfile{}, false
}

// NumericColumns lists measure columns in schema order.
func (c Census) NumericColumns() []string {
	var out []string
	for _, p := range c.Profiles {
		if p.Numeric() {
			out = append(out, p.Name)
		}
	}
	return out
}

// TemporalColumns lists date columns usable as a time index.
func (c Census) TemporalColumns() []string {
	var out []string
	for _, p := range c.Profiles {
		if p.Temporal() {
			out = append(out, p.Name)
		}
	}
	return out
}

// CategoricalColumns lists dimension columns in schema order.
func (c Census) CategoricalColumns() []string {
	var out []string
	for _, p := range c.Profiles {
		if p.Categorical() {
			out = append(out, p.Name)
		}
	}
	return out
}
