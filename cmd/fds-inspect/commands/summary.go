package commands

import (
	"io"

	"github.com/smoke-cloud/fds-inspect-go/pkg/summary"
)

// RunSummary prints the key figures of the model at path.
func RunSummary(path, format string, w io.Writer) error {
	rep, err := NewReporter(format, w, false)
	if err != nil {
		return err
	}
	m, _, err := LoadModel(path)
	if err != nil {
		return err
	}
	s := summary.Summarise(m)
	rep.ReportSummary(&s)
	return nil
}
