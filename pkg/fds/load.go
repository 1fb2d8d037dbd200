package fds

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a model document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the format from a file extension. Unknown extensions
// are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadError provides details about a model loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	if e.Line > 0 {
		return file + ":" + strconv.Itoa(e.Line) + ": " + e.Message
	}
	return file + ": " + e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads and validates a model document from disk.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	m, err := Parse(data, FormatFromPath(path))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return m, nil
}

// Decode reads a model document from r.
func Decode(r io.Reader, format Format) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Message: "failed to read input", Cause: err}
	}
	return Parse(data, format)
}

// Parse decodes and validates a model document.
func Parse(data []byte, format Format) (*Model, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes and validates a JSON model document.
func ParseJSON(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		le := &LoadError{Message: "invalid JSON", Cause: err}
		var se *json.SyntaxError
		if errors.As(err, &se) {
			le.Line = lineAt(data, se.Offset)
		}
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			le.Line = lineAt(data, te.Offset)
			le.Message = fmt.Sprintf("invalid value for %s", te.Field)
		}
		return nil, le
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseYAML decodes and validates a YAML model document.
func ParseYAML(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &LoadError{Message: "invalid YAML", Cause: err}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func lineAt(data []byte, offset int64) int {
	if offset <= 0 || int(offset) > len(data) {
		return 0
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

// Validate checks the structural invariants the derived queries rely on.
func (m *Model) Validate() error {
	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		if !mesh.Dimensions.WellOrdered() {
			return &LoadError{Message: fmt.Sprintf("mesh %q: dimensions %v are not well ordered", mesh.ID, mesh.Dimensions)}
		}
		if mesh.IJK.I < 0 || mesh.IJK.J < 0 || mesh.IJK.K < 0 {
			return &LoadError{Message: fmt.Sprintf("mesh %q: negative cell count %+v", mesh.ID, mesh.IJK)}
		}
	}
	if m.Time != nil && m.Time.End < m.Time.Begin {
		return &LoadError{Message: fmt.Sprintf("time end %v precedes begin %v", m.Time.End, m.Time.Begin)}
	}
	return nil
}
