// Package dataset provides the row model and the lenient CSV codec used by
// the workflow engine.
package dataset

import (
	"database/sql"

	"github.com/elliotchance/orderedmap/v2"
)

// Record is one logical row: an ordered mapping from column name to a value
// that is either a string or null.
type Record struct {
	fields *orderedmap.OrderedMap[string, sql.NullString]
}

// NewRecord creates a record with every column present and null.
func NewRecord(columns []string) Record {
	m := orderedmap.NewOrderedMap[string, sql.NullString]()
	for _, c := range columns {
		m.Set(c, sql.NullString{})
	}
	return Record{fields: m}
}

func (r *Record) init() {
	if r.fields == nil {
		r.fields = orderedmap.NewOrderedMap[string, sql.NullString]()
	}
}

// Get returns the value of column and whether it is non-null.
// Unknown columns read as null.
func (r Record) Get(column string) (string, bool) {
	if r.fields == nil {
		return "", false
	}
	v, ok := r.fields.Get(column)
	if !ok || !v.Valid {
		return "", false
	}
	return v.String, true
}

// Value returns the raw nullable value of column.
func (r Record) Value(column string) sql.NullString {
	if r.fields == nil {
		return sql.NullString{}
	}
	v, _ := r.fields.Get(column)
	return v
}

// Set stores a non-null value.
func (r *Record) Set(column, value string) {
	r.init()
	r.fields.Set(column, sql.NullString{String: value, Valid: true})
}

// SetNull stores a null value, keeping the column present.
func (r *Record) SetNull(column string) {
	r.init()
	r.fields.Set(column, sql.NullString{})
}

// Columns returns the column names in insertion order.
func (r Record) Columns() []string {
	if r.fields == nil {
		return nil
	}
	return r.fields.Keys()
}

// Len returns the number of columns.
func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := Record{fields: orderedmap.NewOrderedMap[string, sql.NullString]()}
	if r.fields == nil {
		return out
	}
	for el := r.fields.Front(); el != nil; el = el.Next() {
		out.fields.Set(el.Key, el.Value)
	}
	return out
}

// Dataset is an ordered sequence of records sharing one column set.
type Dataset struct {
	Columns []string
	Records []Record
}

// New returns an empty dataset with the given columns.
func New(columns []string) *Dataset {
	return &Dataset{Columns: append([]string(nil), columns...)}
}

// Len returns the number of records. A nil dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// IsEmpty reports whether the dataset holds no records.
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// Append adds a record, filling any dataset column it lacks with null.
func (d *Dataset) Append(r Record) {
	r.init()
	for _, c := range d.Columns {
		if _, ok := r.fields.Get(c); !ok {
			r.fields.Set(c, sql.NullString{})
		}
	}
	d.Records = append(d.Records, r)
}

// Values returns the non-null values of column in row order.
func (d *Dataset) Values(column string) []string {
	if d == nil {
		return nil
	}
	var out []string
	for _, r := range d.Records {
		if v, ok := r.Get(column); ok {
			out = append(out, v)
		}
	}
	return out
}

// Head returns a copy of the first n records (all of them when n <= 0).
func (d *Dataset) Head(n int) *Dataset {
	if d == nil {
		return nil
	}
	if n <= 0 || n > len(d.Records) {
		n = len(d.Records)
	}
	out := New(d.Columns)
	for _, r := range d.Records[:n] {
		out.Records = append(out.Records, r.Clone())
	}
	return out
}

// Clone returns a deep copy. Cloning nil returns nil.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	return d.Head(0)
}
