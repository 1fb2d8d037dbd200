// Package smv reads the realised output of an FDS run: the structured
// index of the .smv file and the CSV time series it points to.
package smv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
)

// Index is the structured form of an .smv file.
type Index struct {
	Version    int        `json:"version"`
	Chid       string     `json:"chid"`
	InputFile  string     `json:"input_file"`
	FDSVersion string     `json:"fds_version"`
	Meshes     []Mesh     `json:"meshes"`
	CSVFiles   []CSVEntry `json:"csv_files"`
	Devices    []Device   `json:"devices"`
	Slices     []Slice    `json:"slices"`
	Surfaces   []Surface  `json:"surfaces"`
}

// Mesh is a mesh as listed in the index.
type Mesh struct {
	Index       int            `json:"index"`
	ID          string         `json:"id"`
	Coordinates geom.IjkBounds `json:"coordinates"`
	Dimensions  geom.Xb        `json:"dimensions"`
}

// CSVEntry names a CSV output file and its kind, e.g. "hrr" or "devc".
type CSVEntry struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

// Device is a measurement device written to the devc CSV file.
type Device struct {
	Index        int           `json:"index"`
	ID           string        `json:"id"`
	CSVLabel     string        `json:"csvlabel"`
	Label        string        `json:"label"`
	Quantity     string        `json:"quantity"`
	Position     geom.Xyz      `json:"position"`
	StateChanges []StateChange `json:"state_changes"`
}

// StateChange is a device activation or deactivation.
type StateChange struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// Slice describes a slice file.
type Slice struct {
	Index       int            `json:"index"`
	Mesh        int            `json:"mesh"`
	LongLabel   string         `json:"longlabel"`
	ShortLabel  string         `json:"shortlabel"`
	Unit        string         `json:"unit"`
	Coordinates geom.IjkBounds `json:"coordinates"`
}

// Surface is a surface as listed in the index.
type Surface struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
}

// CSVEntry returns the first CSV file of the given type.
func (x *Index) CSVEntry(csvType string) (CSVEntry, bool) {
	for _, e := range x.CSVFiles {
		if e.Type == csvType {
			return e, true
		}
	}
	return CSVEntry{}, false
}

// ParseIndex decodes an index document.
func ParseIndex(data []byte) (*Index, error) {
	var x Index
	if err := json.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("parse smv index: %w", err)
	}
	return &x, nil
}

// LoadIndex reads the index at path and returns the output it describes.
// CSV files are resolved relative to the index's directory.
func LoadIndex(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read smv index: %w", err)
	}
	x, err := ParseIndex(raw)
	if err != nil {
		return nil, err
	}
	return NewData(filepath.Dir(path), x), nil
}
