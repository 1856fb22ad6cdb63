package nn

import "time"

// Phase names reported through Progress.
const (
	PhaseTrain = "train"
	PhaseTest  = "test"
)

// Progress is a status snapshot emitted during Train and Evaluate.
type Progress struct {
	Phase   string
	Epoch   int // zero-based; unused for PhaseTest
	Seen    int // cumulative examples processed, across epochs when training
	Total   int // examples the phase will process in total
	Correct int
	Elapsed time.Duration
}

// Accuracy returns the running accuracy in percent.
func (p Progress) Accuracy() float64 {
	if p.Seen == 0 {
		return 0
	}
	return float64(p.Correct) * 100 / float64(p.Seen)
}

// Rate returns examples per second.
func (p Progress) Rate() float64 {
	if p.Elapsed <= 0 {
		return 0
	}
	return float64(p.Seen) / p.Elapsed.Seconds()
}

// Done reports whether this is the last snapshot of the phase.
func (p Progress) Done() bool { return p.Seen >= p.Total }

// Reporter receives progress. Implementations must not block; a nil
// Reporter is valid and drops everything.
type Reporter interface {
	Report(Progress)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Progress)

func (f ReporterFunc) Report(p Progress) { f(p) }

func report(r Reporter, p Progress) {
	if r != nil {
		r.Report(p)
	}
}

// Stats summarises a Train or Evaluate call.
type Stats struct {
	Seen    int
	Correct int
	Elapsed time.Duration
}

// Accuracy returns the fraction of correct predictions in [0,1].
func (s Stats) Accuracy() float64 {
	if s.Seen == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Seen)
}

// Rate returns examples per second.
func (s Stats) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Seen) / s.Elapsed.Seconds()
}
