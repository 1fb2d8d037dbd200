package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/smoke-cloud/fds-inspect-go/internal/store"
)

// ErrRunNotFound is returned when a requested run is not in the store.
var ErrRunNotFound = errors.New("run not found")

// RunHistory lists the most recent runs in the store at dbPath, or shows
// one run with its outcomes when runID is set.
func RunHistory(dbPath string, limit int, runID string, w io.Writer) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()

	if runID != "" {
		return showRun(st, runID, w)
	}

	runs, err := st.ListRuns(limit, 0)
	if err != nil {
		return err
	}
	total, err := st.CountRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-16s  %-9s  %-20s  %s\n", "RUN", "CHID", "STATUS", "STARTED", "S/W/F")
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-16s  %-9s  %-20s  %d/%d/%d\n",
			r.ID, r.Chid, r.Status, formatTime(r.StartedAt),
			r.SuccessCount, r.WarningCount, r.FailureCount)
	}
	if total > len(runs) {
		fmt.Fprintf(w, "\n%d of %d runs shown\n", len(runs), total)
	}
	return nil
}

func showRun(st *store.Store, runID string, w io.Writer) error {
	run, err := st.GetRun(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	fmt.Fprintf(w, "Run:      %s\n", run.ID)
	fmt.Fprintf(w, "CHID:     %s\n", run.Chid)
	fmt.Fprintf(w, "Input:    %s\n", run.Input)
	fmt.Fprintf(w, "Digest:   %s\n", run.InputDigest)
	fmt.Fprintf(w, "Status:   %s\n", run.Status)
	fmt.Fprintf(w, "Started:  %s\n", formatTime(run.StartedAt))
	if run.Duration != "" {
		fmt.Fprintf(w, "Duration: %s\n", run.Duration)
	}
	if run.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:    %s\n", run.ErrorMessage)
	}

	outcomes, err := st.GetOutcomes(runID)
	if err != nil {
		return err
	}
	if len(outcomes) > 0 {
		fmt.Fprintln(w)
	}
	for _, o := range outcomes {
		fmt.Fprintln(w, o.String())
	}

	s, err := st.GetSummary(runID)
	if err != nil {
		return err
	}
	if s != nil {
		fmt.Fprintf(w, "\nBurners: %d, cells: %d, max HRR: %.0f kW\n", s.NBurners, s.NCells, s.TotalMaxHRR/1000)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
