// Package progress provides sinks for the training and evaluation status
// stream. None of them block the caller.
package progress

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"sentinet/internal/metrics"
	"sentinet/internal/nn"
)

// Line formats p as a single status line without line terminators.
func Line(p nn.Progress) string {
	if p.Phase == nn.PhaseTrain {
		return fmt.Sprintf("Epoch:%d #Trained:%s Training Accuracy:%.1f%%",
			p.Epoch, humanize.Comma(int64(p.Seen)), p.Accuracy())
	}
	pct := 0.0
	if p.Total > 0 {
		pct = float64(p.Seen) * 100 / float64(p.Total)
	}
	return fmt.Sprintf("Progress:%.1f%% Speed(reviews/sec):%.1f #Correct:%s #Tested:%s Testing Accuracy:%.1f%%",
		pct, p.Rate(), humanize.Comma(int64(p.Correct)), humanize.Comma(int64(p.Seen)), p.Accuracy())
}

type console struct {
	w   io.Writer
	lim *rate.Limiter
}

// Console rewrites a status line on w. Test-phase updates are throttled to
// rps lines per second; epoch lines and the last line of a phase always go
// through. rps <= 0 disables throttling.
func Console(w io.Writer, rps float64) nn.Reporter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &console{w: w, lim: rate.NewLimiter(limit, 1)}
}

func (c *console) Report(p nn.Progress) {
	if p.Phase == nn.PhaseTest && !p.Done() && !c.lim.Allow() {
		return
	}
	_, _ = fmt.Fprint(c.w, "\r"+Line(p))
	if p.Done() {
		_, _ = fmt.Fprintln(c.w)
	}
}

type metricsSink struct {
	trained int
}

// Metrics mirrors progress into the Prometheus collectors.
func Metrics() nn.Reporter { return &metricsSink{} }

func (m *metricsSink) Report(p nn.Progress) {
	switch p.Phase {
	case nn.PhaseTrain:
		if p.Seen > m.trained {
			metrics.TrainExamples.Add(float64(p.Seen - m.trained))
		}
		m.trained = p.Seen
		metrics.TrainEpochs.Inc()
		metrics.TrainAccuracy.Set(p.Accuracy() / 100)
	case nn.PhaseTest:
		metrics.TestAccuracy.Set(p.Accuracy() / 100)
	}
}

type multi []nn.Reporter

// Multi fans progress out to every non-nil reporter.
func Multi(rs ...nn.Reporter) nn.Reporter {
	var out multi
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multi) Report(p nn.Progress) {
	for _, r := range m {
		r.Report(p)
	}
}
