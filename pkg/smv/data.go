package smv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/smoke-cloud/fds-inspect-go/pkg/series"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// Column is a named column of a typed CSV file.
type Column struct {
	CSVType string
	X, Y    string
}

// knownSeries maps series names to the columns they are read from. Other
// names are resolved as "type:column" with a Time x column.
var knownSeries = map[string]Column{
	"hrr": {CSVType: "hrr", X: "Time", Y: "HRR"},
	"mlr": {CSVType: "hrr", X: "Time", Y: "MLR_FUEL"},
}

// ResolveSeries returns the column a series name refers to.
func ResolveSeries(name string) (Column, bool) {
	if c, ok := knownSeries[name]; ok {
		return c, true
	}
	csvType, col, ok := strings.Cut(name, ":")
	if !ok || csvType == "" || col == "" {
		return Column{}, false
	}
	return Column{CSVType: csvType, X: "Time", Y: col}, true
}

type result struct {
	v   *series.DataVector
	err error
}

// Data is the realised output of a run. Each series is read at most once;
// concurrent requests for the same series share one read.
type Data struct {
	baseDir string
	index   *Index

	flight singleflight.Group
	mu     sync.Mutex
	cache  map[string]result
	reads  int
}

// NewData creates a Data for index with CSV files under baseDir.
func NewData(baseDir string, index *Index) *Data {
	return &Data{baseDir: baseDir, index: index, cache: make(map[string]result)}
}

// Index returns the parsed index.
func (d *Data) Index() *Index { return d.index }

// Chid returns the case identifier of the run.
func (d *Data) Chid() string { return d.index.Chid }

// CSVEntry returns the first CSV file of the given type.
func (d *Data) CSVEntry(csvType string) (CSVEntry, bool) {
	return d.index.CSVEntry(csvType)
}

// HRR returns the realised heat release rate in kW.
func (d *Data) HRR(ctx context.Context) (*series.DataVector, error) {
	return d.Series(ctx, "hrr")
}

// Reads returns how many CSV files have been read.
func (d *Data) Reads() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reads
}

// Series returns a named series. It returns verify.ErrNoOutputData when
// the index has no matching CSV file or the file is missing, truncated or
// lacks the series' columns. Results,
// including absence, are cached.
func (d *Data) Series(ctx context.Context, name string) (*series.DataVector, error) {
	if r, ok := d.cached(name); ok {
		return r.v, r.err
	}

	ch := d.flight.DoChan(name, func() (any, error) {
		if r, ok := d.cached(name); ok {
			return r.v, r.err
		}
		v, err := d.read(name)
		if err == nil || errors.Is(err, verify.ErrNoOutputData) {
			d.mu.Lock()
			d.cache[name] = result{v: v, err: err}
			d.mu.Unlock()
		}
		return v, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*series.DataVector), nil
	}
}

func (d *Data) cached(name string) (result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.cache[name]
	return r, ok
}

func (d *Data) read(name string) (*series.DataVector, error) {
	col, ok := ResolveSeries(name)
	if !ok {
		return nil, fmt.Errorf("series %q: %w", name, verify.ErrNoOutputData)
	}
	entry, ok := d.index.CSVEntry(col.CSVType)
	if !ok {
		return nil, fmt.Errorf("no %s csv file: %w", col.CSVType, verify.ErrNoOutputData)
	}

	path := filepath.Join(d.baseDir, entry.Filename)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, verify.ErrNoOutputData)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, verify.ErrNoOutputData, err)
	}
	defer f.Close()

	d.mu.Lock()
	d.reads++
	d.mu.Unlock()

	// Malformed files count as absent.
	v, err := ReadTimeSeries(f, col.X, col.Y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, verify.ErrNoOutputData, err)
	}
	return v, nil
}

var _ verify.OutputSource = (*Data)(nil)
