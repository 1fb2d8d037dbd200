package smv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smoke-cloud/fds-inspect-go/pkg/series"
)

// ErrColumnMissing is returned when a requested column is not in a CSV
// header.
var ErrColumnMissing = errors.New("column missing")

// ReadTimeSeries reads two columns of an FDS CSV file. The first row holds
// units and the second row column names. Rows where either value is not a
// number are skipped.
func ReadTimeSeries(r io.Reader, xCol, yCol string) (*series.DataVector, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	units, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read units row: %w", err)
	}
	names, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read names row: %w", err)
	}

	xi, yi := -1, -1
	for i, n := range names {
		switch strings.TrimSpace(n) {
		case xCol:
			if xi < 0 {
				xi = i
			}
		case yCol:
			if yi < 0 {
				yi = i
			}
		}
	}
	if xi < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnMissing, xCol)
	}
	if yi < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnMissing, yCol)
	}

	unit := func(i int) string {
		if i < len(units) {
			return strings.TrimSpace(units[i])
		}
		return ""
	}
	v := series.New(xCol, unit(xi), yCol, unit(yi))
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return v, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, err
		}
		if xi >= len(rec) || yi >= len(rec) {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[xi]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[yi]), 64)
		if errX != nil || errY != nil {
			continue
		}
		v.Append(x, y)
	}
}
