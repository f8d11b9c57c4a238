package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("missing header row")

// CSVOption configures ReadCSV.
type CSVOption func(*csvOptions)

type csvOptions struct {
	comma rune
}

// WithComma sets the field delimiter.
func WithComma(r rune) CSVOption {
	return func(o *csvOptions) {
		o.comma = r
	}
}

// ReadCSV reads a header row followed by data rows. Rows may have differing
// field counts; missing fields read as empty cells.
func ReadCSV(r io.Reader, optFns ...CSVOption) (*Table, error) {
	opts := csvOptions{comma: ','}
	for _, fn := range optFns {
		fn(&opts)
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("collector: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Columns: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("collector: read row %d: %w", len(t.Rows)+1, err)
		}
		row := make([]any, len(rec))
		for i, f := range rec {
			row[i] = f
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
