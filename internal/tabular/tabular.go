// Package tabular encodes and decodes the canonical comma-separated
// serialization of a dataset.
//
// The encoding is load-bearing: fingerprints are computed over these
// exact bytes, so two semantically identical datasets must serialize
// byte-identically. Cells containing a comma, double quote or newline
// are wrapped in double quotes with internal quotes doubled (RFC 4180);
// all other cells are written bare. The header line comes first and
// every line ends with a single \n.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// Encode serializes a header and rows into canonical tabular text.
func Encode(columns []string, rows []domain.Row) ([]byte, error) {
	if len(columns) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("encoding header: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("encoding row %d: %d cells for %d columns", i, len(row), len(columns))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("encoding row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeDataset serializes a dataset's working table.
func EncodeDataset(d *domain.Dataset) ([]byte, error) {
	return Encode(d.Columns(), d.Rows())
}

// Decode parses canonical tabular text into a header and rows.
// Every record must have exactly the header's column count.
// Returns domain.ErrEmptyDataset when there is no header or no rows.
func Decode(data []byte) ([]string, []domain.Row, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader parses canonical tabular text from a reader.
func DecodeReader(r io.Reader) ([]string, []domain.Row, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, domain.ErrEmptyDataset
		}
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []domain.Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", len(rows), err)
		}
		rows = append(rows, domain.Row(record))
	}

	if len(rows) == 0 {
		return nil, nil, domain.ErrEmptyDataset
	}
	return header, rows, nil
}

// DecodeString parses canonical tabular text from a string.
func DecodeString(s string) ([]string, []domain.Row, error) {
	return DecodeReader(strings.NewReader(s))
}
