package dataset

import (
	"fmt"
	"sort"
	"strings"

	"goinsight/domain/core"
)

// ColumnType declares how a column should be treated by analyses.
// It is a hint from ingestion, not a guarantee: cells are still coerced
// per-value through Value.Float / Value.Label.
type ColumnType string

const (
	TypeNumber  ColumnType = "number"
	TypeString  ColumnType = "string"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
)

// Column pairs a name with its declared type.
type Column struct {
	Name string
	Type ColumnType
}

// Row maps column name to cell value. Missing keys read as Null.
type Row map[string]Value

// Dataset is the immutable tabular input every analysis consumes.
// Construction validates column names; cell-level quality is handled
// lazily by the extraction funnels so one bad cell never rejects a table.
type Dataset struct {
	columns []Column
	byName  map[string]int
	rows    []Row
}

// New builds a Dataset from a column schema and rows. Column names must be
// non-empty and unique. Rows may omit columns; omitted cells are Null.
// Cells under names not present in the schema are dropped.
func New(columns []Column, rows []Row) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset: %w: no columns", core.ErrDegenerateInput)
	}
	byName := make(map[string]int, len(columns))
	for i, c := range columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("dataset: %w: column %d has empty name", core.ErrDegenerateInput, i)
		}
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("dataset: %w: duplicate column %q", core.ErrDegenerateInput, name)
		}
		columns[i].Name = name
		byName[name] = i
	}

	normalized := make([]Row, len(rows))
	for i, r := range rows {
		nr := make(Row, len(columns))
		for _, c := range columns {
			v, ok := r[c.Name]
			if !ok {
				v = Null()
			}
			nr[c.Name] = v
		}
		normalized[i] = nr
	}

	return &Dataset{columns: columns, byName: byName, rows: normalized}, nil
}

// Columns returns the schema in declaration order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.byName[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int { return len(d.rows) }

// Value returns the cell at (row, column). Out-of-range rows and unknown
// columns read as Null.
func (d *Dataset) Value(row int, column string) Value {
	if row < 0 || row >= len(d.rows) {
		return Null()
	}
	if _, ok := d.byName[column]; !ok {
		return Null()
	}
	return d.rows[row][column]
}

// NumericColumn extracts every cell of the named column that coerces to a
// float, in row order. Non-coercible cells are skipped, so the result may
// be shorter than RowCount. Unknown columns are a structural error.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	if _, ok := d.byName[name]; !ok {
		return nil, core.NewUnknownColumnError(name)
	}
	out := make([]float64, 0, len(d.rows))
	for _, r := range d.rows {
		if f, ok := r[name].Float(); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// Labels extracts every cell of the named column that coerces to a
// categorical label, in row order.
func (d *Dataset) Labels(name string) ([]string, error) {
	if _, ok := d.byName[name]; !ok {
		return nil, core.NewUnknownColumnError(name)
	}
	out := make([]string, 0, len(d.rows))
	for _, r := range d.rows {
		if s, ok := r[name].Label(); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// NumericRows extracts row vectors across the named columns, keeping only
// rows where every named column coerces to a float. The second return is
// the original row index of each kept vector, so callers can map results
// (cluster assignments, residuals) back to source rows.
func (d *Dataset) NumericRows(names []string) ([][]float64, []int, error) {
	for _, name := range names {
		if _, ok := d.byName[name]; !ok {
			return nil, nil, core.NewUnknownColumnError(name)
		}
	}
	vectors := make([][]float64, 0, len(d.rows))
	kept := make([]int, 0, len(d.rows))
	for i, r := range d.rows {
		vec := make([]float64, len(names))
		ok := true
		for j, name := range names {
			f, valid := r[name].Float()
			if !valid {
				ok = false
				break
			}
			vec[j] = f
		}
		if ok {
			vectors = append(vectors, vec)
			kept = append(kept, i)
		}
	}
	return vectors, kept, nil
}

// PairedColumns extracts (x, y) pairs from two columns, keeping only rows
// where both cells coerce to floats.
func (d *Dataset) PairedColumns(xName, yName string) (xs, ys []float64, err error) {
	vectors, _, err := d.NumericRows([]string{xName, yName})
	if err != nil {
		return nil, nil, err
	}
	xs = make([]float64, len(vectors))
	ys = make([]float64, len(vectors))
	for i, v := range vectors {
		xs[i] = v[0]
		ys[i] = v[1]
	}
	return xs, ys, nil
}

// LabeledColumn extracts (label, value) pairs from a categorical and a
// numeric column, keeping only rows where both cells coerce.
func (d *Dataset) LabeledColumn(catName, numName string) (labels []string, values []float64, err error) {
	for _, name := range []string{catName, numName} {
		if _, ok := d.byName[name]; !ok {
			return nil, nil, core.NewUnknownColumnError(name)
		}
	}
	for _, r := range d.rows {
		s, ok := r[catName].Label()
		if !ok {
			continue
		}
		f, ok := r[numName].Float()
		if !ok {
			continue
		}
		labels = append(labels, s)
		values = append(values, f)
	}
	return labels, values, nil
}

// LabelPairs extracts row-aligned labels from two categorical columns,
// keeping only rows where both cells coerce.
func (d *Dataset) LabelPairs(aName, bName string) (as, bs []string, err error) {
	for _, name := range []string{aName, bName} {
		if _, ok := d.byName[name]; !ok {
			return nil, nil, core.NewUnknownColumnError(name)
		}
	}
	for _, r := range d.rows {
		a, ok := r[aName].Label()
		if !ok {
			continue
		}
		b, ok := r[bName].Label()
		if !ok {
			continue
		}
		as = append(as, a)
		bs = append(bs, b)
	}
	return as, bs, nil
}

// Fingerprint hashes the schema and row contents so reports can assert
// which snapshot of a table they were computed from.
func (d *Dataset) Fingerprint() core.Hash {
	var b strings.Builder
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
		b.WriteString(c.Name)
		b.WriteByte(':')
		b.WriteString(string(c.Type))
		b.WriteByte('\n')
	}
	sort.Strings(names)
	for _, r := range d.rows {
		for _, name := range names {
			b.WriteString(r[name].String())
			b.WriteByte('|')
		}
		b.WriteByte('\n')
	}
	return core.NewHash([]byte(b.String()))
}
