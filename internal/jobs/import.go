package jobs

import (
	"context"

	"github.com/pkg/errors"

	"sentinet/internal/config"
	"sentinet/internal/corpus"
	"sentinet/internal/logging"
	"sentinet/internal/store/sqlitestore"
)

// ImportCorpus loads the configured review and label files into db,
// replacing any previously imported corpus. It returns the document count.
func ImportCorpus(ctx context.Context, db *sqlitestore.DB, cfg config.Config) (int, error) {
	docs, labels, err := corpus.Load(cfg.Data.ReviewsPath, cfg.Data.LabelsPath, cfg.Data.Lowercase)
	if err != nil {
		return 0, err
	}
	if err := db.ReplaceDocuments(ctx, docs, labels); err != nil {
		return 0, errors.Wrap(err, "store corpus")
	}
	logging.Info("corpus_imported", map[string]any{"documents": len(docs), "reviews": cfg.Data.ReviewsPath})
	return len(docs), nil
}

// LoadCorpus prefers the corpus imported into db and falls back to the
// configured files. It also returns which of the two was used.
func LoadCorpus(ctx context.Context, db *sqlitestore.DB, cfg config.Config) ([]string, []string, string, error) {
	if db != nil {
		docs, labels, err := db.LoadDocuments(ctx)
		if err != nil {
			return nil, nil, "", errors.Wrap(err, "load stored corpus")
		}
		if len(docs) > 0 {
			return docs, labels, "store", nil
		}
	}
	docs, labels, err := corpus.Load(cfg.Data.ReviewsPath, cfg.Data.LabelsPath, cfg.Data.Lowercase)
	return docs, labels, "files", err
}
