package nn

import (
	"time"

	"github.com/pkg/errors"

	"sentinet/internal/util"
)

// Train runs epochs passes of online gradient descent over the documents in
// order, one weight update per example. Progress is reported once per epoch.
func (c *Classifier) Train(documents, labels []string, epochs int, rep Reporter) (Stats, error) {
	if err := checkShape(documents, labels); err != nil {
		return Stats{}, err
	}
	if epochs < 0 {
		return Stats{}, errors.Wrapf(ErrInvalidConfig, "epochs %d", epochs)
	}
	active := make([][]int, len(documents))
	for i, doc := range documents {
		active[i] = c.vocab.indices(util.Fields(doc))
	}
	targets := c.opts.targets(labels)

	var st Stats
	start := time.Now()
	for epoch := 0; epoch < epochs; epoch++ {
		for i, idx := range active {
			out := c.net.forward(idx)
			c.net.backward(idx, out, targets[i].Value())
			if (out >= 0.5) == (targets[i] == Positive) {
				st.Correct++
			}
			st.Seen++
		}
		st.Elapsed = time.Since(start)
		report(rep, Progress{
			Phase:   PhaseTrain,
			Epoch:   epoch,
			Seen:    st.Seen,
			Total:   epochs * len(documents),
			Correct: st.Correct,
			Elapsed: st.Elapsed,
		})
	}
	st.Elapsed = time.Since(start)
	return st, nil
}
