package jobs

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"sentinet/internal/config"
	"sentinet/internal/corpus"
	"sentinet/internal/logging"
	"sentinet/internal/metrics"
	"sentinet/internal/nn"
	"sentinet/internal/store/sqlitestore"
)

// Result is the outcome of RunSession. Classifier stays usable for
// predictions for the rest of the process.
type Result struct {
	Classifier *nn.Classifier
	Train      nn.Stats
	// zero when the holdout is empty
	Test nn.Stats
	Run  sqlitestore.Run
	// First corpus entry, for a sample prediction
	SampleDocument string
	SampleLabel    string
}

// RunSession builds a classifier from the corpus minus its holdout, trains
// it for the configured epochs, evaluates the holdout and records a run
// summary in db when db is non-nil.
func RunSession(ctx context.Context, db *sqlitestore.DB, cfg config.Config, rep nn.Reporter) (Result, error) {
	var res Result
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	start := time.Now()
	docs, labels, source, err := LoadCorpus(ctx, db, cfg)
	if err != nil {
		return res, err
	}
	if len(docs) > 0 {
		res.SampleDocument, res.SampleLabel = docs[0], labels[0]
	}
	trainDocs, trainLabels, testDocs, testLabels := corpus.Split(docs, labels, cfg.Training.TestSize)
	logging.Info("session_start", map[string]any{
		"source": source, "train": len(trainDocs), "test": len(testDocs), "epochs": cfg.Training.Epochs,
	})

	clf, err := nn.New(trainDocs, trainLabels, cfg.Model)
	if err != nil {
		return res, errors.Wrap(err, "build classifier")
	}
	res.Classifier = clf
	metrics.VocabularySize.Set(float64(clf.Vocabulary().Size()))
	logging.Info("vocabulary_built", map[string]any{
		"words": clf.Vocabulary().Size(), "labels": clf.Vocabulary().Labels, "scored": len(clf.Vocabulary().Polarity),
	})

	if err := ctx.Err(); err != nil {
		return res, err
	}
	res.Train, err = clf.Train(trainDocs, trainLabels, cfg.Training.Epochs, rep)
	if err != nil {
		return res, errors.Wrap(err, "train")
	}
	logging.Info("train_done", map[string]any{
		"seen": res.Train.Seen, "accuracy": res.Train.Accuracy(), "rate": res.Train.Rate(),
	})

	var testAcc *float64
	if len(testDocs) > 0 {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Test, err = clf.Evaluate(testDocs, testLabels, rep)
		if err != nil {
			return res, errors.Wrap(err, "evaluate")
		}
		acc := res.Test.Accuracy()
		testAcc = &acc
		logging.Info("evaluate_done", map[string]any{"tested": res.Test.Seen, "accuracy": acc})
	}

	res.Run = sqlitestore.Run{
		StartedAt:      start.UTC(),
		FinishedAt:     time.Now().UTC(),
		Epochs:         cfg.Training.Epochs,
		VocabularySize: clf.Vocabulary().Size(),
		HiddenNodes:    cfg.Model.HiddenNodes,
		LearningRate:   cfg.Model.LearningRate,
		MinCount:       cfg.Model.MinCount,
		PolarityCutoff: cfg.Model.PolarityCutoff,
		TrainAccuracy:  res.Train.Accuracy(),
		TestAccuracy:   testAcc,
		Meta:           map[string]any{"source": source, "documents": len(docs)},
	}
	if db != nil {
		if err := db.PutRun(ctx, &res.Run); err != nil {
			return res, errors.Wrap(err, "record run")
		}
	}
	metrics.ObserveRunDuration(start)
	return res, nil
}

// Predict classifies each text with clf and counts the predictions.
func Predict(clf *nn.Classifier, texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = clf.Predict(t)
		metrics.IncPrediction(out[i])
	}
	return out
}
