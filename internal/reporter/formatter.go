package reporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/sweep"
)

// Formatter formats summary values for display.
type Formatter struct {
	// IndentWidth is the number of spaces per indent level
	IndentWidth int

	// Precision is the number of decimals for plain quantities.
	Precision int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		IndentWidth: 2,
		Precision:   2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats a value for display, including unit conversions.
func (f *Formatter) FormatValue(value any, unit string) string {
	if value == nil {
		return "-"
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			return "-"
		}
		return v

	case int:
		if unit != "" {
			return fmt.Sprintf("%d %s", v, unit)
		}
		return strconv.Itoa(v)

	case float64:
		return f.formatFloatWithUnit(v, unit)

	case []float64:
		return FormatSet(v, unit)

	default:
		return fmt.Sprintf("%v", v)
	}
}

func (f *Formatter) formatFloatWithUnit(v float64, unit string) string {
	switch unit {
	case "":
		return strconv.FormatFloat(v, 'f', f.Precision, 64)
	case "W":
		return FormatPowerHumanReadable(v)
	case "kg/s":
		// Soot production rates are small; keep the significant digits.
		return fmt.Sprintf("%.3g %s", v, unit)
	default:
		return fmt.Sprintf("%s %s", strconv.FormatFloat(v, 'f', f.Precision, 64), unit)
	}
}

// FormatPowerHumanReadable formats a heat release rate in W.
func FormatPowerHumanReadable(w float64) string {
	abs := w
	if abs < 0 {
		abs = -abs
	}
	switch {
	case w == 0:
		return "0 W"
	case abs >= 1e6:
		return fmt.Sprintf("%.2f MW", w/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1f kW", w/1e3)
	default:
		return fmt.Sprintf("%.1f W", w)
	}
}

// FormatSet formats values as "{a, b}" using the shortest representation.
func FormatSet(values []float64, unit string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := "{" + strings.Join(parts, ", ") + "}"
	if unit != "" && len(values) > 0 {
		s += " " + unit
	}
	return s
}

// FormatResolution formats a cell size as "dx × dy × dz m".
func FormatResolution(r fds.Resolution) string {
	return fmt.Sprintf("%s × %s × %s m",
		strconv.FormatFloat(r.Dx, 'f', -1, 64),
		strconv.FormatFloat(r.Dy, 'f', -1, 64),
		strconv.FormatFloat(r.Dz, 'f', -1, 64))
}

// FormatHeightArea formats one ceiling height and the floor area beneath it.
func FormatHeightArea(h sweep.HeightArea) string {
	return fmt.Sprintf("%.2f m over %.2f m²", h.Height, h.Area)
}
