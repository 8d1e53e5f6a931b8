package sample

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrInvalidColumns is returned when no column or a negative column is
// requested.
var ErrInvalidColumns = errors.New("invalid column selection")

// Import reads points from CSV. Every record contributes one point built from
// the given columns, in order. Records whose selected fields are missing or
// not numbers, such as a header row, are skipped.
func Import(r io.Reader, columns ...int) ([][]float64, error) {
	if len(columns) == 0 {
		return nil, ErrInvalidColumns
	}
	for _, c := range columns {
		if c < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidColumns, c)
		}
	}

	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var data [][]float64

Records:
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		p := make([]float64, 0, len(columns))
		for _, c := range columns {
			if c >= len(record) {
				continue Records
			}
			f, err := strconv.ParseFloat(record[c], 64)
			if err != nil {
				continue Records
			}
			p = append(p, f)
		}

		data = append(data, p)
	}

	return data, nil
}

// ImportFile opens file and calls Import.
func ImportFile(file string, columns ...int) ([][]float64, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Import(f, columns...)
}
