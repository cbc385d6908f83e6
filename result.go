package foodgrid

import "fmt"

// Outcome describes what happened to a single file during a run
type Outcome int

const (
	// Converted means an output file was written
	Converted Outcome = iota
	// Skipped means the file was already in the manifest
	Skipped
	// Failed means the file could not be converted, see Result.Err
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Converted:
		return "converted"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome for one file
type Result struct {
	Source  string // file read
	Output  string // file written, or that would have been written
	Outcome Outcome
	Err     error
}

// Summary collects the results of a run in processing order
type Summary struct {
	Results []Result

	Converted, Skipped, Failed int
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case Converted:
		s.Converted++
	case Skipped:
		s.Skipped++
	case Failed:
		s.Failed++
	}
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d converted, %d skipped, %d failed", s.Converted, s.Skipped, s.Failed)
}
