// Package corpus loads line-aligned review and label files.
package corpus

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"

	"sentinet/internal/nn"
)

// maxLine bounds a single review; long reviews run to tens of kilobytes.
const maxLine = 4 << 20

// ReadLines returns the lines of path with trailing newlines stripped.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open corpus file")
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return lines, nil
}

// Load reads reviews and labels. Labels are upper-cased; reviews are
// lower-cased when lowercase is set.
func Load(reviewsPath, labelsPath string, lowercase bool) ([]string, []string, error) {
	docs, err := ReadLines(reviewsPath)
	if err != nil {
		return nil, nil, err
	}
	labels, err := ReadLines(labelsPath)
	if err != nil {
		return nil, nil, err
	}
	if len(docs) != len(labels) {
		return nil, nil, errors.Wrapf(nn.ErrShapeMismatch, "%s has %d lines, %s has %d",
			reviewsPath, len(docs), labelsPath, len(labels))
	}
	for i := range labels {
		labels[i] = strings.ToUpper(strings.TrimSpace(labels[i]))
		if lowercase {
			docs[i] = strings.ToLower(docs[i])
		}
	}
	return docs, labels, nil
}

// Split holds out the last testSize entries for evaluation. testSize is
// clamped to the corpus length.
func Split(docs, labels []string, testSize int) (trainDocs, trainLabels, testDocs, testLabels []string) {
	if testSize < 0 {
		testSize = 0
	}
	if testSize > len(docs) {
		testSize = len(docs)
	}
	cut := len(docs) - testSize
	return docs[:cut], labels[:cut], docs[cut:], labels[cut:]
}
