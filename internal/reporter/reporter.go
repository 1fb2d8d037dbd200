// Package reporter renders verification reports and input summaries.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/smoke-cloud/fds-inspect-go/pkg/summary"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// Reporter formats and outputs verification results.
type Reporter interface {
	// ReportVerification reports the outcomes of a verification run.
	ReportVerification(report *verify.Report)

	// ReportSummary reports the key figures of a model.
	ReportSummary(s *summary.InputSummary)
}

func statusLabel(t verify.OutcomeType) string {
	switch t {
	case verify.Success:
		return "PASS"
	case verify.Warning:
		return "WARN"
	default:
		return "FAIL"
	}
}

// TextReporter outputs human-readable text reports.
type TextReporter struct {
	writer    io.Writer
	verbose   bool
	formatter *Formatter
}

// NewTextReporter creates a new text reporter. Successes are only listed
// when verbose is set.
func NewTextReporter(w io.Writer, verbose bool) *TextReporter {
	return &TextReporter{
		writer:    w,
		verbose:   verbose,
		formatter: NewFormatter(),
	}
}

// ReportVerification reports run outcomes in text format.
func (r *TextReporter) ReportVerification(report *verify.Report) {
	fmt.Fprintf(r.writer, "\n=== Verification: %s ===\n", report.Chid)
	fmt.Fprintf(r.writer, "Run:      %s\n", report.RunID)
	fmt.Fprintf(r.writer, "Duration: %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(r.writer, "\n")

	for _, o := range report.Outcomes {
		if o.Type == verify.Success && !r.verbose {
			continue
		}
		fmt.Fprintf(r.writer, "[%s] %s: %s\n", statusLabel(o.Type), o.ID, o.Message)
	}
	for _, id := range report.Skipped {
		fmt.Fprintf(r.writer, "[SKIP] %s\n", id)
	}

	c := report.Counts()
	fmt.Fprintf(r.writer, "\n--- Summary ---\n")
	fmt.Fprintf(r.writer, "Total:    %d\n", c.Total())
	fmt.Fprintf(r.writer, "Success:  %d\n", c.Success)
	fmt.Fprintf(r.writer, "Warnings: %d\n", c.Warning)
	fmt.Fprintf(r.writer, "Failures: %d\n", c.Failure)
	if len(report.Skipped) > 0 {
		fmt.Fprintf(r.writer, "Skipped:  %d rules\n", len(report.Skipped))
	}
}

// ReportSummary reports the input summary in text format.
func (r *TextReporter) ReportSummary(s *summary.InputSummary) {
	f := r.formatter
	row := func(label string, value any, unit string) {
		fmt.Fprintf(r.writer, "%-34s %s\n", label+":", f.FormatValue(value, unit))
	}

	fmt.Fprintf(r.writer, "\n=== Summary: %s ===\n", s.Chid)
	row("Simulation Length", s.SimulationLength, "s")
	row("Burners", s.NBurners, "")
	row("Total Max HRR", s.TotalMaxHRR, "W")
	row("Heat of Combustion (calculated)", s.HeatOfCombustionCalc, "kJ/kg")
	row("Heat of Combustion (specified)", s.HeatOfCombustion, "kJ/kg")
	row("Total Soot Production", s.TotalSootProduction, "kg/s")
	row("Sprinklers", s.NSprinklers, "")
	row("Sprinkler Activation Temperatures", s.SprinklerActivationTemperatures, "°C")
	row("Smoke Detectors", s.NSmokeDetectors, "")
	row("Smoke Detector Obscurations", s.SmokeDetectorObscurations, "%/m")
	row("Extract Vents", s.NExtractVents, "")
	row("Total Extract Rate", s.TotalExtractRate, "m³/s")
	row("Supply Vents", s.NSupplyVents, "")
	row("Total Supply Rate", s.TotalSupplyRate, "m³/s")
	row("Meshes", s.NMeshes, "")
	row("Cells", s.NCells, "")

	if len(s.MeshResolutions) > 0 {
		fmt.Fprintf(r.writer, "Mesh Resolutions:\n")
		for i, res := range s.MeshResolutions {
			fmt.Fprintln(r.writer, f.Indent(1, fmt.Sprintf("%d: %s", i+1, FormatResolution(res))))
		}
	}
	if len(s.CeilingHeights) > 0 {
		fmt.Fprintf(r.writer, "Ceiling Heights:\n")
		for _, h := range s.CeilingHeights {
			fmt.Fprintln(r.writer, f.Indent(1, FormatHeightArea(h)))
		}
	}
}

// JSONReporter outputs JSON-formatted reports.
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: w,
		pretty: pretty,
	}
}

// JSONReport is the JSON representation of a verification run.
type JSONReport struct {
	RunID    string           `json:"run_id"`
	Chid     string           `json:"chid"`
	Duration string           `json:"duration"`
	Counts   verify.Counts    `json:"counts"`
	Outcomes []verify.Outcome `json:"outcomes"`
	Skipped  []string         `json:"skipped,omitempty"`
}

// ReportVerification reports run outcomes in JSON format.
func (r *JSONReporter) ReportVerification(report *verify.Report) {
	outcomes := report.Outcomes
	if outcomes == nil {
		outcomes = []verify.Outcome{}
	}
	r.writeJSON(JSONReport{
		RunID:    report.RunID,
		Chid:     report.Chid,
		Duration: report.Duration.Round(time.Millisecond).String(),
		Counts:   report.Counts(),
		Outcomes: outcomes,
		Skipped:  report.Skipped,
	})
}

// ReportSummary reports the input summary in JSON format.
func (r *JSONReporter) ReportSummary(s *summary.InputSummary) {
	r.writeJSON(s)
}

func (r *JSONReporter) writeJSON(v any) {
	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		fmt.Fprintf(r.writer, `{"error": "failed to marshal: %s"}`, err)
		return
	}

	fmt.Fprintln(r.writer, string(data))
}

// JUnitReporter outputs JUnit XML format for CI integration.
type JUnitReporter struct {
	writer io.Writer
}

// NewJUnitReporter creates a new JUnit reporter.
func NewJUnitReporter(w io.Writer) *JUnitReporter {
	return &JUnitReporter{writer: w}
}

// ReportVerification writes one testcase per outcome. Failures become
// <failure> elements and warnings are kept as <system-out>.
func (r *JUnitReporter) ReportVerification(report *verify.Report) {
	var b strings.Builder
	c := report.Counts()

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("\n")

	fmt.Fprintf(&b, `<testsuite name="%s" tests="%d" failures="%d" skipped="%d" time="%.3f">`,
		escapeXML(report.Chid),
		c.Total()+len(report.Skipped),
		c.Failure,
		len(report.Skipped),
		report.Duration.Seconds())
	b.WriteString("\n")

	for _, o := range report.Outcomes {
		fmt.Fprintf(&b, `  <testcase name="%s" classname="%s">`,
			escapeXML(o.Message),
			escapeXML(o.ID))
		b.WriteString("\n")

		switch o.Type {
		case verify.Failure:
			fmt.Fprintf(&b, `    <failure message="%s"/>`, escapeXML(o.Message))
			b.WriteString("\n")
		case verify.Warning:
			fmt.Fprintf(&b, "    <system-out>%s</system-out>\n", escapeXML("warning: "+o.Message))
		}

		b.WriteString("  </testcase>\n")
	}

	for _, id := range report.Skipped {
		fmt.Fprintf(&b, `  <testcase name="%s" classname="%s">`, escapeXML(id), escapeXML(id))
		b.WriteString("\n")
		b.WriteString(`    <skipped message="no output data"/>`)
		b.WriteString("\n  </testcase>\n")
	}

	b.WriteString("</testsuite>\n")

	fmt.Fprint(r.writer, b.String())
}

// ReportSummary writes the summary as testsuite properties.
func (r *JUnitReporter) ReportSummary(s *summary.InputSummary) {
	var b strings.Builder
	f := NewFormatter()
	prop := func(name string, value any, unit string) {
		fmt.Fprintf(&b, "    <property name=\"%s\" value=\"%s\"/>\n", name, escapeXML(f.FormatValue(value, unit)))
	}

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("\n")
	fmt.Fprintf(&b, "<testsuite name=\"%s\" tests=\"0\">\n", escapeXML(s.Chid))
	b.WriteString("  <properties>\n")
	prop("simulation_length", s.SimulationLength, "s")
	prop("n_burners", s.NBurners, "")
	prop("total_max_hrr", s.TotalMaxHRR, "W")
	prop("n_sprinklers", s.NSprinklers, "")
	prop("n_smoke_detectors", s.NSmokeDetectors, "")
	prop("n_meshes", s.NMeshes, "")
	prop("n_cells", s.NCells, "")
	b.WriteString("  </properties>\n")
	b.WriteString("</testsuite>\n")

	fmt.Fprint(r.writer, b.String())
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
	_ Reporter = (*JUnitReporter)(nil)
)
