package nn

import (
	"math"
	"sort"

	"sentinet/internal/util"
)

// WordCount holds per-class occurrence counts for one word.
type WordCount struct {
	Positive int
	Negative int
	Total    int
}

// Vocabulary is the filtered input space plus the label set.
type Vocabulary struct {
	Words      []string
	WordIndex  map[string]int
	Labels     []string
	LabelIndex map[string]int
	// Counts covers every token seen, selected or not.
	Counts map[string]WordCount
	// Polarity holds scores only for words with enough occurrences.
	Polarity map[string]float64
}

// Size returns the number of input nodes the vocabulary defines.
func (v *Vocabulary) Size() int { return len(v.Words) }

// Contains reports whether word is part of the input space.
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.WordIndex[word]
	return ok
}

// BuildVocabulary counts words per class, scores their polarity and keeps the
// words that pass the MinCount and PolarityCutoff filters.
func BuildVocabulary(documents, labels []string, opts Options) (*Vocabulary, error) {
	if err := checkShape(documents, labels); err != nil {
		return nil, err
	}
	counts := make(map[string]WordCount)
	tokens := make([][]string, len(documents))
	for i, doc := range documents {
		tokens[i] = util.Fields(doc)
		positive := opts.targetOf(labels[i]) == Positive
		for _, w := range tokens[i] {
			c := counts[w]
			if positive {
				c.Positive++
			} else {
				c.Negative++
			}
			c.Total++
			counts[w] = c
		}
	}

	polarity := make(map[string]float64)
	for w, c := range counts {
		if c.Total >= opts.PolarityMinCount {
			polarity[w] = polarityScore(c)
		}
	}

	selected := make(map[string]struct{})
	for _, doc := range tokens {
		for _, w := range doc {
			if counts[w].Total <= opts.MinCount {
				continue
			}
			if score, ok := polarity[w]; ok && math.Abs(score) < opts.PolarityCutoff {
				continue
			}
			selected[w] = struct{}{}
		}
	}

	v := &Vocabulary{Counts: counts, Polarity: polarity}
	v.Words, v.WordIndex = enumerate(selected)
	labelSet := make(map[string]struct{})
	for _, l := range labels {
		labelSet[l] = struct{}{}
	}
	v.Labels, v.LabelIndex = enumerate(labelSet)
	return v, nil
}

// polarityScore log-transforms pos/(neg+1) so that positive and negative
// associations are symmetric around zero.
func polarityScore(c WordCount) float64 {
	ratio := float64(c.Positive) / float64(c.Negative+1)
	if ratio > 1 {
		return math.Log(ratio)
	}
	return -math.Log(1 / (ratio + 0.01))
}

func enumerate(set map[string]struct{}) ([]string, map[string]int) {
	list := make([]string, 0, len(set))
	for s := range set {
		list = append(list, s)
	}
	sort.Strings(list)
	index := make(map[string]int, len(list))
	for i, s := range list {
		index[s] = i
	}
	return list, index
}

// ScoredWord pairs a word with its polarity score.
type ScoredWord struct {
	Word  string
	Score float64
}

// TopPolarity returns up to n of the most positive and n of the most negative
// scored words, strongest first.
func (v *Vocabulary) TopPolarity(n int) (positive, negative []ScoredWord) {
	all := make([]ScoredWord, 0, len(v.Polarity))
	for w, s := range v.Polarity {
		all = append(all, ScoredWord{Word: w, Score: s})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Word < all[j].Word
	})
	for i := 0; i < len(all) && len(positive) < n && all[i].Score > 0; i++ {
		positive = append(positive, all[i])
	}
	for i := len(all) - 1; i >= 0 && len(negative) < n && all[i].Score < 0; i-- {
		negative = append(negative, all[i])
	}
	return positive, negative
}

// indices maps tokens to the deduplicated, ascending vocabulary indices
// present. Unknown tokens are dropped.
func (v *Vocabulary) indices(tokens []string) []int {
	seen := make(map[int]struct{}, len(tokens))
	out := make([]int, 0, len(tokens))
	for _, w := range tokens {
		i, ok := v.WordIndex[w]
		if !ok {
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
