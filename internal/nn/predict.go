package nn

import (
	"time"

	"sentinet/internal/util"
)

// Score runs a forward pass over the lower-cased document and returns the
// sigmoid output. Weights are not modified.
func (c *Classifier) Score(document string) float64 {
	return c.net.forward(c.vocab.indices(util.FoldFields(document)))
}

// Predict returns the positive label when Score is at least 0.5 and the
// negative label otherwise.
func (c *Classifier) Predict(document string) string {
	if c.Score(document) >= 0.5 {
		return c.opts.PositiveLabel
	}
	return c.opts.NegativeLabel
}

// Evaluate predicts every document and counts matches against the gold
// labels, reporting after each example.
func (c *Classifier) Evaluate(documents, labels []string, rep Reporter) (Stats, error) {
	if err := checkShape(documents, labels); err != nil {
		return Stats{}, err
	}
	var st Stats
	start := time.Now()
	for i, doc := range documents {
		if c.Predict(doc) == labels[i] {
			st.Correct++
		}
		st.Seen++
		st.Elapsed = time.Since(start)
		report(rep, Progress{
			Phase:   PhaseTest,
			Seen:    st.Seen,
			Total:   len(documents),
			Correct: st.Correct,
			Elapsed: st.Elapsed,
		})
	}
	return st, nil
}
