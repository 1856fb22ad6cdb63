package nn

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Classifier is a binary text classifier: a filtered vocabulary feeding a
// two-layer network with a linear hidden layer and a sigmoid output.
type Classifier struct {
	opts  Options
	vocab *Vocabulary
	net   *Network
}

// New builds the vocabulary from the labeled documents and sizes the network
// from it. Weights are not trained yet.
func New(documents, labels []string, opts Options) (*Classifier, error) {
	vocab, err := BuildVocabulary(documents, labels, opts)
	if err != nil {
		return nil, err
	}
	if vocab.Size() == 0 {
		return nil, errors.Wrapf(ErrEmptyVocabulary, "minCount=%d polarityCutoff=%v", opts.MinCount, opts.PolarityCutoff)
	}
	net, err := NewNetwork(vocab.Size(), opts.HiddenNodes, OutputNodes, opts.LearningRate, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, err
	}
	return &Classifier{opts: opts, vocab: vocab, net: net}, nil
}

// Accessors for the configuration, vocabulary and network built by New.
func (c *Classifier) Options() Options        { return c.opts }
func (c *Classifier) Vocabulary() *Vocabulary { return c.vocab }
func (c *Classifier) Network() *Network       { return c.net }
