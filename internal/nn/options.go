package nn

// DefaultPolarityMinCount is the number of occurrences a word needs before a
// polarity score is computed for it. It is independent of Options.MinCount.
const DefaultPolarityMinCount = 50

// OutputNodes is the width of the output layer. The engine is binary only.
const OutputNodes = 1

// Options configures vocabulary filtering and the network.
type Options struct {
	// Words are kept only if they occur more than MinCount times.
	MinCount int `yaml:"minCount"`
	// Scored words are kept only if |polarity| >= PolarityCutoff.
	PolarityCutoff float64 `yaml:"polarityCutoff"`
	// Words occurring at least this often receive a polarity score.
	PolarityMinCount int     `yaml:"polarityMinCount"`
	HiddenNodes      int     `yaml:"hiddenNodes"`
	LearningRate     float64 `yaml:"learningRate"`
	// PositiveLabel maps to target 1.0; every other label maps to 0.0.
	PositiveLabel string `yaml:"positiveLabel"`
	// NegativeLabel is what Predict returns for outputs below 0.5.
	NegativeLabel string `yaml:"negativeLabel"`
	// Seed for the hidden->output weight initialisation.
	Seed int64 `yaml:"seed"`
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		MinCount:         10,
		PolarityCutoff:   0.1,
		PolarityMinCount: DefaultPolarityMinCount,
		HiddenNodes:      10,
		LearningRate:     0.1,
		PositiveLabel:    "POSITIVE",
		NegativeLabel:    "NEGATIVE",
		Seed:             1,
	}
}

// Target is the binary training target a label resolves to.
type Target int

const (
	Negative Target = iota
	Positive
)

// Value returns the numeric target used by the output error.
func (t Target) Value() float64 {
	if t == Positive {
		return 1
	}
	return 0
}

// targetOf collapses any label other than the positive one to Negative.
func (o Options) targetOf(label string) Target {
	if label == o.PositiveLabel {
		return Positive
	}
	return Negative
}

func (o Options) targets(labels []string) []Target {
	out := make([]Target, len(labels))
	for i, l := range labels {
		out[i] = o.targetOf(l)
	}
	return out
}
