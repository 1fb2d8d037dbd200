package log

import (
	"errors"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter specifies criteria for selecting events.
// Empty/nil fields match all events for that criterion.
type Filter struct {
	// RunID filters by exact run ID.
	RunID string

	// Chid filters by case identifier.
	Chid string

	// RuleID filters by rule.
	RuleID string

	// Category filters by event category.
	Category *Category

	// OutcomeType keeps only outcome events of this type.
	OutcomeType string

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time
}

func (f *Filter) matches(event Event) bool {
	if f.RunID != "" && event.RunID != f.RunID {
		return false
	}
	if f.Chid != "" && event.Chid != f.Chid {
		return false
	}
	if f.RuleID != "" && event.RuleID != f.RuleID {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.OutcomeType != "" && (event.Outcome == nil || event.Outcome.Type != f.OutcomeType) {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader streams events from a log file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader creates a Reader over every event in the file at path.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that yields only events matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: eventDecMode.NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if r.filter.matches(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Stats summarises a stream of events.
type Stats struct {
	Events     int
	Runs       int
	Categories map[Category]int
	Outcomes   Counts
	// RuleFailures counts failure outcomes per rule.
	RuleFailures map[string]int
	First, Last  time.Time
}

// Add folds one event into the statistics.
func (s *Stats) Add(e Event) {
	if s.Categories == nil {
		s.Categories = make(map[Category]int)
		s.RuleFailures = make(map[string]int)
	}
	s.Events++
	s.Categories[e.Category]++
	if s.First.IsZero() || e.Timestamp.Before(s.First) {
		s.First = e.Timestamp
	}
	if e.Timestamp.After(s.Last) {
		s.Last = e.Timestamp
	}
	if e.Run != nil && e.Run.Phase == RunStarted {
		s.Runs++
	}
	if e.Outcome != nil {
		switch e.Outcome.Type {
		case "success":
			s.Outcomes.Success++
		case "warning":
			s.Outcomes.Warning++
		case "failure":
			s.Outcomes.Failure++
			s.RuleFailures[e.RuleID]++
		}
	}
}

// FailingRules returns the rules with failures, most failures first.
func (s *Stats) FailingRules() []string {
	ids := make([]string, 0, len(s.RuleFailures))
	for id := range s.RuleFailures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.RuleFailures[ids[i]], s.RuleFailures[ids[j]]
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})
	return ids
}

// ComputeStats reads the whole file at path and summarises it.
func ComputeStats(path string, filter Filter) (*Stats, error) {
	r, err := NewFilteredReader(path, filter)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	s := &Stats{}
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return s, err
		}
		s.Add(e)
	}
}
