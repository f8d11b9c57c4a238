package collector

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/hupe1980/keycluster/model"
)

// ErrColumnNotFound is returned when the requested column does not exist.
var ErrColumnNotFound = errors.New("column not found")

// checkEvery is how many rows are scanned between context checks.
const checkEvery = 4096

// Collector gathers the values of a column.
type Collector interface {
	Collect(ctx context.Context, column string) ([]model.RawValue, error)
}

// RowFilter reports whether a row takes part in clustering. row is the
// zero-based data row index.
type RowFilter func(row int, cells []any) bool

// Table is an in-memory column/row model.
type Table struct {
	Columns []string
	Rows    [][]any
	// Filter, if set, restricts collection to the rows it accepts.
	Filter RowFilter
}

// NewTable creates a table. Rows shorter than columns read as empty cells.
func NewTable(columns []string, rows [][]any) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// WithFilter returns a shallow copy of the table restricted by f.
func (t *Table) WithFilter(f RowFilter) *Table {
	cp := *t
	cp.Filter = f
	return &cp
}

// ColumnIndex returns the position of column, or -1.
func (t *Table) ColumnIndex(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Collect returns the distinct non-empty values of column with their row
// counts and row references, in first-seen order.
func (t *Table) Collect(ctx context.Context, column string) ([]model.RawValue, error) {
	col := t.ColumnIndex(column)
	if col < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	raw := make([]model.RawValue, 0, len(t.Rows))
	for r, row := range t.Rows {
		if r%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if t.Filter != nil && !t.Filter(r, row) {
			continue
		}
		if col >= len(row) {
			continue
		}
		s, ok := Stringify(row[col])
		if !ok {
			continue
		}
		raw = append(raw, model.RawValue{Value: s, Count: 1, Rows: []int{r}})
	}

	return model.Aggregate(raw), nil
}

// Stringify renders a cell as text. Nil and empty cells report false.
func Stringify(cell any) (string, bool) {
	var s string
	switch v := cell.(type) {
	case nil:
		return "", false
	case string:
		s = v
	case []byte:
		s = string(v)
	case fmt.Stringer:
		s = v.String()
	case bool:
		s = strconv.FormatBool(v)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		s = fmt.Sprint(v)
	}
	return s, s != ""
}

// Values is a Collector over a plain list of strings, each counted once. It
// ignores the column name.
type Values []string

// Collect returns the aggregated non-empty strings.
func (v Values) Collect(ctx context.Context, _ string) ([]model.RawValue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := make([]model.RawValue, 0, len(v))
	for i, s := range v {
		raw = append(raw, model.RawValue{Value: s, Count: 1, Rows: []int{i}})
	}
	return model.Aggregate(raw), nil
}
