package nn

import "github.com/pkg/errors"

var (
	// ErrShapeMismatch is returned when documents and labels differ in length.
	ErrShapeMismatch = errors.New("documents and labels differ in length")
	// ErrEmptyVocabulary is returned when the filters leave no input words.
	ErrEmptyVocabulary = errors.New("vocabulary is empty")
	// ErrInvalidConfig is returned for non-positive sizes or rates.
	ErrInvalidConfig = errors.New("invalid network configuration")
)

func checkShape(documents, labels []string) error {
	if len(documents) != len(labels) {
		return errors.Wrapf(ErrShapeMismatch, "%d documents, %d labels", len(documents), len(labels))
	}
	return nil
}
