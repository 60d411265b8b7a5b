// Package timeseries turns a date column and a value column into a
// temporal profile: detected frequency, classical additive decomposition,
// seasonality strength, Holt forecast with widening confidence bands, and
// per-period growth rates.
package timeseries

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"goinsight/domain/dataset"
)

// dateLayouts are tried in order; the US M/D/Y form sits before D/M/Y so
// an unambiguous day>12 falls through to the European reading.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02/01/2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// maxExcelSerial bounds the numeric range read as an Excel date serial
// (runs out around the 25th century; anything larger is a measurement).
const maxExcelSerial = 200000

// ParseDate is the single date-coercion funnel: native time cells pass
// through, strings run the layout list, and positive numerics inside the
// serial range convert from the Excel epoch.
func ParseDate(v dataset.Value) (time.Time, bool) {
	if t, ok := v.Time(); ok {
		return t, true
	}

	switch v.Kind() {
	case dataset.KindString:
		s, ok := v.Label()
		if !ok {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		if serial, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return excelSerial(serial)
		}
		return time.Time{}, false
	case dataset.KindNumber:
		f, _ := v.Float()
		return excelSerial(f)
	default:
		return time.Time{}, false
	}
}

func excelSerial(serial float64) (time.Time, bool) {
	if serial <= 0 || serial >= maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateColumnScore reports how date-like one column is.
type DateColumnScore struct {
	Column    string
	Parsed    int
	NonNull   int
	ParseRate float64
}

// minParseRate qualifies a column as a date dimension.
const minParseRate = 0.7

// Qualifies applies the 70% parse-rate rule.
func (s DateColumnScore) Qualifies() bool {
	return s.Parsed >= 2 && s.ParseRate >= minParseRate
}

// DetectDateColumns scores each date- or string-typed column by how many
// of its cells parse as dates. Columns declared numeric are measures, not
// date candidates, even though date-typed columns may hold Excel serials.
func DetectDateColumns(ds *dataset.Dataset) []DateColumnScore {
	var out []DateColumnScore
	for _, col := range ds.Columns() {
		if col.Type != dataset.TypeDate && col.Type != dataset.TypeString {
			continue
		}
		score := DateColumnScore{Column: col.Name}
		for i := 0; i < ds.RowCount(); i++ {
			v := ds.Value(i, col.Name)
			if v.IsNull() {
				continue
			}
			score.NonNull++
			if _, ok := ParseDate(v); ok {
				score.Parsed++
			}
		}
		if score.NonNull > 0 {
			score.ParseRate = float64(score.Parsed) / float64(score.NonNull)
		}
		if score.Qualifies() {
			out = append(out, score)
		}
	}
	return out
}
