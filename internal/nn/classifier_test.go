package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable returns a tiny corpus where every document carries exactly one
// positive or negative word next to a neutral one.
func separable() ([]string, []string) {
	docs := []string{
		"good movie", "bad movie",
		"great film", "awful film",
		"good acting", "bad acting",
		"great story", "awful story",
		"good fun", "bad plot",
	}
	labels := make([]string, len(docs))
	for i := range docs {
		if i%2 == 0 {
			labels[i] = "POSITIVE"
		} else {
			labels[i] = "NEGATIVE"
		}
	}
	return docs, labels
}

func newSeparable(t *testing.T, lr float64) (*Classifier, []string, []string) {
	t.Helper()
	docs, labels := separable()
	o := zeroFilter()
	o.LearningRate = lr
	c, err := New(docs, labels, o)
	require.NoError(t, err)
	return c, docs, labels
}

func TestNewSizesNetworkFromVocabulary(t *testing.T) {
	c, _, _ := newSeparable(t, 0.1)
	assert.Equal(t, c.Vocabulary().Size(), c.Network().InputNodes())
	assert.Equal(t, 10, c.Network().HiddenNodes())
	assert.Equal(t, OutputNodes, c.Network().OutputNodes())
	assert.Len(t, c.Vocabulary().Labels, 2)
}

func TestNewEmptyVocabulary(t *testing.T) {
	o := DefaultOptions()
	o.MinCount = 100
	_, err := New([]string{"good movie", "bad movie"}, []string{"POSITIVE", "NEGATIVE"}, o)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestTrainShapeMismatch(t *testing.T) {
	c, docs, labels := newSeparable(t, 0.1)
	before := c.Network().OutputWeights().At(0, 0)
	_, err := c.Train(docs, labels[:3], 1, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Equal(t, before, c.Network().OutputWeights().At(0, 0))

	_, err = c.Evaluate(docs[:1], labels, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestTrainAccuracyDoesNotRegress(t *testing.T) {
	for _, lr := range []float64{0.01, 0.05, 0.1} {
		c, docs, labels := newSeparable(t, lr)
		first, err := c.Evaluate(docs, labels, nil)
		require.NoError(t, err)
		prev := first.Accuracy()
		for epoch := 0; epoch < 6; epoch++ {
			_, err := c.Train(docs, labels, 1, nil)
			require.NoError(t, err)
			st, err := c.Evaluate(docs, labels, nil)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, st.Accuracy(), prev, "lr=%v epoch=%d", lr, epoch)
			prev = st.Accuracy()
		}
		assert.Equal(t, 1.0, prev, "lr=%v", lr)
	}
}

func TestTrainReportsOncePerEpoch(t *testing.T) {
	c, docs, labels := newSeparable(t, 0.1)
	var got []Progress
	st, err := c.Train(docs, labels, 3, ReporterFunc(func(p Progress) { got = append(got, p) }))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, p := range got {
		assert.Equal(t, PhaseTrain, p.Phase)
		assert.Equal(t, i, p.Epoch)
		assert.Equal(t, (i+1)*len(docs), p.Seen)
		assert.Equal(t, 3*len(docs), p.Total)
		assert.LessOrEqual(t, p.Correct, p.Seen)
	}
	assert.True(t, got[2].Done())
	assert.Equal(t, 3*len(docs), st.Seen)
	assert.Equal(t, got[2].Correct, st.Correct)
}

func TestTrainZeroEpochsLeavesWeights(t *testing.T) {
	c, docs, labels := newSeparable(t, 0.1)
	st, err := c.Train(docs, labels, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Seen)
	r, h := c.Network().InputWeights().Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < h; j++ {
			assert.Equal(t, 0.0, c.Network().InputWeights().At(i, j))
		}
	}
	_, err = c.Train(docs, labels, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPredictOutOfVocabularyIsPositive(t *testing.T) {
	c, docs, labels := newSeparable(t, 0.1)
	_, err := c.Train(docs, labels, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.5, c.Score("entirely unseen words"))
	// 0.5 sits on the >= boundary
	assert.Equal(t, "POSITIVE", c.Predict("entirely unseen words"))
	assert.Equal(t, "POSITIVE", c.Predict(""))
}

func TestPredictDeterministicAndBinary(t *testing.T) {
	c, docs, labels := newSeparable(t, 0.1)
	_, err := c.Train(docs, labels, 5, nil)
	require.NoError(t, err)
	for _, d := range append(docs, "good bad", "unknown", "GOOD Movie") {
		first := c.Predict(d)
		assert.Contains(t, []string{"POSITIVE", "NEGATIVE"}, first)
		assert.Equal(t, first, c.Predict(d), d)
	}
	assert.Equal(t, "POSITIVE", c.Predict("GOOD MOVIE"), "prediction folds case")
	assert.Equal(t, "NEGATIVE", c.Predict("Bad Plot"))
}

func TestPredictDoesNotMutateWeights(t *testing.T) {
	c, docs, labels := newSeparable(t, 0.1)
	_, err := c.Train(docs, labels, 2, nil)
	require.NoError(t, err)
	w := c.Network().OutputWeights().At(3, 0)
	row := c.Vocabulary().WordIndex["good"]
	in := c.Network().InputWeights().At(row, 0)
	for i := 0; i < 10; i++ {
		c.Predict("good movie")
	}
	assert.Equal(t, w, c.Network().OutputWeights().At(3, 0))
	assert.Equal(t, in, c.Network().InputWeights().At(row, 0))
}

func TestEvaluateIdempotent(t *testing.T) {
	c, docs, labels := newSeparable(t, 0.1)
	_, err := c.Train(docs, labels, 2, nil)
	require.NoError(t, err)

	var reports int
	a, err := c.Evaluate(docs, labels, ReporterFunc(func(p Progress) {
		reports++
		assert.Equal(t, PhaseTest, p.Phase)
	}))
	require.NoError(t, err)
	b, err := c.Evaluate(docs, labels, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Correct, b.Correct)
	assert.Equal(t, a.Accuracy(), b.Accuracy())
	assert.Equal(t, len(docs), reports)
}

func TestUnknownLabelCollapsesToNegative(t *testing.T) {
	o := zeroFilter()
	o.PositiveLabel = "pos"
	o.NegativeLabel = "neg"
	docs := []string{"sunny day", "rainy day", "sunny walk", "rainy walk"}
	labels := []string{"pos", "whatever", "pos", "neg"}
	c, err := New(docs, labels, o)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Vocabulary().Counts["rainy"].Negative)
	_, err = c.Train(docs, labels, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, "neg", c.Predict("rainy"))
	assert.Equal(t, "pos", c.Predict("sunny"))
}

func TestStatsAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, Stats{}.Accuracy())
	assert.Equal(t, 0.75, Stats{Seen: 4, Correct: 3}.Accuracy())
	assert.Equal(t, 75.0, Progress{Seen: 4, Correct: 3}.Accuracy())
	assert.Equal(t, 0.0, Progress{Seen: 4}.Rate())
}
