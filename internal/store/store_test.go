package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/smoke-cloud/fds-inspect-go/pkg/summary"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreCreateAndGetRun(t *testing.T) {
	s := newTestStore(t)

	run := NewRun("office", "office.json", []byte(`{"chid":"office"}`))
	if err := s.CreateRun(run); err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	got, err := s.GetRun(run.ID)
	if err != nil {
		t.Fatalf("Failed to get run: %v", err)
	}
	if got == nil {
		t.Fatal("Expected run, got nil")
	}
	if got.Chid != "office" {
		t.Errorf("Expected chid 'office', got %q", got.Chid)
	}
	if got.Status != RunStatusPending {
		t.Errorf("Expected status 'pending', got %q", got.Status)
	}
	if got.InputDigest != run.InputDigest || len(got.InputDigest) != 64 {
		t.Errorf("Unexpected digest %q", got.InputDigest)
	}
	if got.StartedAt == nil {
		t.Error("Expected started_at to be set")
	}
}

func TestStoreGetRunNotFound(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetRun("nonexistent")
	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil run, got %+v", got)
	}
}

func TestStoreListRuns(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		startedAt := base.Add(time.Duration(i) * time.Minute)
		run := &Run{ID: string(rune('a' + i)), Chid: "c", Status: RunStatusPending, StartedAt: &startedAt}
		if err := s.CreateRun(run); err != nil {
			t.Fatalf("Failed to create run: %v", err)
		}
	}

	runs, err := s.ListRuns(3, 0)
	if err != nil {
		t.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "e" {
		t.Errorf("Expected most recent run first, got %q", runs[0].ID)
	}

	runs, err = s.ListRuns(10, 3)
	if err != nil {
		t.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Expected 2 runs after offset, got %d", len(runs))
	}

	count, err := s.CountRuns()
	if err != nil {
		t.Fatalf("Failed to count runs: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected 5 runs, got %d", count)
	}
}

func TestStoreCompleteRun(t *testing.T) {
	s := newTestStore(t)
	run := NewRun("office", "office.json", nil)
	if err := s.CreateRun(run); err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	if err := s.CompleteRun(run.ID, verify.Counts{Success: 10, Warning: 1, Failure: 2}, ""); err != nil {
		t.Fatalf("Failed to complete run: %v", err)
	}
	got, _ := s.GetRun(run.ID)
	if got.Status != RunStatusCompleted {
		t.Errorf("Expected status 'completed', got %q", got.Status)
	}
	if got.TotalCount != 13 || got.Counts().Failure != 2 {
		t.Errorf("Unexpected counts %+v", got)
	}
	if got.CompletedAt == nil || got.Duration == "" {
		t.Error("Expected completion time and duration")
	}

	if err := s.CompleteRun(run.ID, verify.Counts{}, "rule matching.hrr: broken csv"); err != nil {
		t.Fatalf("Failed to complete run: %v", err)
	}
	got, _ = s.GetRun(run.ID)
	if got.Status != RunStatusFailed || got.ErrorMessage == "" {
		t.Errorf("Expected failed run with message, got %+v", got)
	}
}

func TestStoreOutcomes(t *testing.T) {
	s := newTestStore(t)
	run := NewRun("office", "office.json", nil)
	if err := s.CreateRun(run); err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	first := []verify.Outcome{
		{ID: "input.meshes.overlap", Type: verify.Success, Message: "No Intersections"},
		{ID: "input.reac.sootYield", Type: verify.Failure, Message: "Soot Yield was not specified."},
	}
	second := []verify.Outcome{{ID: "input.burner.growthRate", Type: verify.Warning, Message: "No growth rate specified."}}
	if err := s.AddOutcomes(run.ID, first); err != nil {
		t.Fatalf("Failed to add outcomes: %v", err)
	}
	if err := s.AddOutcomes(run.ID, second); err != nil {
		t.Fatalf("Failed to add outcomes: %v", err)
	}

	got, err := s.GetOutcomes(run.ID)
	if err != nil {
		t.Fatalf("Failed to get outcomes: %v", err)
	}
	want := append(first, second...)
	if len(got) != len(want) {
		t.Fatalf("Expected %d outcomes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outcome %d: got %+v, want %+v", i, got[i], want[i])
		}
	}

	if err := s.AddOutcomes("missing-run", first); err == nil {
		t.Error("Expected foreign key error for unknown run")
	}
}

func TestStoreSummary(t *testing.T) {
	s := newTestStore(t)
	run := NewRun("office", "office.json", nil)
	if err := s.CreateRun(run); err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	got, err := s.GetSummary(run.ID)
	if err != nil || got != nil {
		t.Fatalf("Expected no summary, got %+v, %v", got, err)
	}

	sum := &summary.InputSummary{Chid: "office", NBurners: 2, TotalMaxHRR: 1.5e6, NCells: 1800}
	if err := s.SaveSummary(run.ID, sum); err != nil {
		t.Fatalf("Failed to save summary: %v", err)
	}
	got, err = s.GetSummary(run.ID)
	if err != nil {
		t.Fatalf("Failed to get summary: %v", err)
	}
	if got.NBurners != 2 || got.TotalMaxHRR != 1.5e6 || got.NCells != 1800 {
		t.Errorf("Unexpected summary %+v", got)
	}
}

func TestStoreDeleteRunCascades(t *testing.T) {
	s := newTestStore(t)
	run := NewRun("office", "office.json", nil)
	if err := s.CreateRun(run); err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}
	if err := s.AddOutcomes(run.ID, []verify.Outcome{{ID: "x", Type: verify.Success}}); err != nil {
		t.Fatalf("Failed to add outcomes: %v", err)
	}

	if err := s.DeleteRun(run.ID); err != nil {
		t.Fatalf("Failed to delete run: %v", err)
	}
	if got, _ := s.GetRun(run.ID); got != nil {
		t.Error("Expected run to be deleted")
	}
	outcomes, err := s.GetOutcomes(run.ID)
	if err != nil {
		t.Fatalf("Failed to get outcomes: %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("Expected outcomes to be deleted, got %d", len(outcomes))
	}
}

func TestStoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	run := NewRun("office", "office.json", nil)
	if err := s.CreateRun(run); err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}
	s.Close()

	s, err = NewStore(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s.Close()
	if got, _ := s.GetRun(run.ID); got == nil {
		t.Error("Expected run to persist")
	}
}

func TestDigest(t *testing.T) {
	a := Digest([]byte("a"))
	if a == Digest([]byte("b")) {
		t.Error("Expected different digests")
	}
	if a != Digest([]byte("a")) {
		t.Error("Expected stable digest")
	}
}
