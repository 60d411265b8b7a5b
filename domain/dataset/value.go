package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the cell value union.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindTime
)

// Value is a single dataset cell: number, string, boolean, date or null.
// Values are immutable; all numeric coercion goes through Float so every
// analysis sees identical parsing behavior.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	t    time.Time
}

// Constructors

func NewNumber(f float64) Value { return Value{kind: KindNumber, num: f} }
func NewString(s string) Value  { return Value{kind: KindString, str: s} }
func NewBool(b bool) Value      { return Value{kind: KindBool, b: b} }
func NewTime(t time.Time) Value { return Value{kind: KindTime, t: t} }
func Null() Value               { return Value{kind: KindNull} }

// Kind returns the value's discriminator.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float is the single numeric-coercion funnel. Numbers pass through,
// booleans map to 1/0, and strings are parsed strictly with
// strconv.ParseFloat after trimming whitespace. Dates and nulls do not
// coerce: a date column is a dimension, not a measure.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Label coerces the cell to a categorical label. Strings pass through
// (trimmed, empty string counts as missing), booleans become "true"/"false"
// and numbers are formatted compactly so integer-coded categories group
// cleanly.
func (v Value) Label() (string, bool) {
	switch v.kind {
	case KindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return "", false
		}
		return s, true
	case KindBool:
		return strconv.FormatBool(v.b), true
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64), true
	default:
		return "", false
	}
}

// Time returns the underlying time for date cells.
func (v Value) Time() (time.Time, bool) {
	if v.kind == KindTime {
		return v.t, true
	}
	return time.Time{}, false
}

// Raw returns the dynamic representation, for serialization boundaries only.
func (v Value) Raw() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// String renders the cell for interpretation strings and logs.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format("2006-01-02")
	default:
		return ""
	}
}
