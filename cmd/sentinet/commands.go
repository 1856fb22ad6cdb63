package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sentinet/internal/cmdlog"
	"sentinet/internal/config"
	"sentinet/internal/corpus"
	"sentinet/internal/jobs"
	"sentinet/internal/logging"
	"sentinet/internal/metrics"
	"sentinet/internal/nn"
	"sentinet/internal/progress"
	"sentinet/internal/store/sqlitestore"
	"sentinet/internal/theme"
	"sentinet/internal/util"
)

// loadConfig reads the config file, falling back to defaults when it does
// not exist, and initialises logging from it.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if _, err := os.Stat(cfgPathFlag); os.IsNotExist(err) {
		cfg = config.Default()
		cfg.ResolveEnv()
	} else {
		cfg, err = config.Load(cfgPathFlag)
		if err != nil {
			return cfg, err
		}
	}
	return cfg, logging.Init(cfg.Logging)
}

func openStore(cfg config.Config) (*sqlitestore.DB, error) {
	return sqlitestore.Open(cfg.Storage.DBPath)
}

func reporter(w io.Writer, cfg config.Config) nn.Reporter {
	if quietFlag {
		return progress.Metrics()
	}
	return progress.Multi(progress.Console(w, cfg.Progress.RPS), progress.Metrics())
}

func initCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "write a default config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdlog.Run("init", func() error {
				if err := config.Save(cfgPathFlag, config.Default()); err != nil {
					return err
				}
				abs, _ := filepath.Abs(cfgPathFlag)
				theme.PrintBanner(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), "Config written to:", abs)
				return nil
			})
		},
	}
	attachFlags(cmd, []string{"config"})
	return cmd
}

func importCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "load reviews and labels files into the local store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cmdlog.Run("import", func() error {
				db, err := openStore(cfg)
				if err != nil {
					return err
				}
				defer db.Close()
				n, err := jobs.ImportCorpus(cmd.Context(), db, cfg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d documents into %s\n", n, cfg.Storage.DBPath)
				return nil
			})
		},
	}
	attachFlags(cmd, []string{"config"})
	return cmd
}

// session runs a full train/evaluate session with console progress on w.
func session(ctx context.Context, w io.Writer, cfg config.Config) (jobs.Result, error) {
	metrics.StartServer(cfg.Metrics.Addr)
	db, err := openStore(cfg)
	if err != nil {
		return jobs.Result{}, err
	}
	defer db.Close()
	return jobs.RunSession(ctx, db, cfg, reporter(w, cfg))
}

func trainCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "train on the corpus, evaluate the holdout and classify a sample review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cmdlog.Run("train", func() error {
				out := cmd.OutOrStdout()
				res, err := session(cmd.Context(), out, cfg)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Vocabulary: %d words, hidden nodes: %d, run %s\n",
					res.Classifier.Vocabulary().Size(), res.Classifier.Network().HiddenNodes(), res.Run.ID)
				if res.SampleDocument != "" {
					pred := jobs.Predict(res.Classifier, []string{res.SampleDocument})[0]
					fmt.Fprintf(out, "%s = %s\n", pred, res.SampleLabel)
				}
				return nil
			})
		},
	}
	attachFlags(cmd, []string{"config", "quiet"})
	return cmd
}

func predictCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <text>...",
		Short: "train on the corpus, then classify each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cmdlog.Run("predict", func() error {
				res, err := session(cmd.Context(), cmd.ErrOrStderr(), cfg)
				if err != nil {
					return err
				}
				texts := make([]string, len(args))
				for i, a := range args {
					texts[i] = util.NormalizeWhitespace(a)
				}
				for i, label := range jobs.Predict(res.Classifier, texts) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f\t%s\n", label, res.Classifier.Score(texts[i]), texts[i])
				}
				return nil
			})
		},
	}
	attachFlags(cmd, []string{"config", "quiet"})
	return cmd
}

func vocabCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "show vocabulary size and the most polarised words",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cmdlog.Run("vocab", func() error {
				db, err := openStore(cfg)
				if err != nil {
					return err
				}
				defer db.Close()
				docs, labels, source, err := jobs.LoadCorpus(cmd.Context(), db, cfg)
				if err != nil {
					return err
				}
				docs, labels, _, _ = corpus.Split(docs, labels, cfg.Training.TestSize)
				v, err := nn.BuildVocabulary(docs, labels, cfg.Model)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "source=%s words=%d scored=%d labels=%s\n", source, v.Size(), len(v.Polarity), strings.Join(v.Labels, ","))
				pos, neg := v.TopPolarity(topFlag)
				for _, w := range pos {
					fmt.Fprintf(out, "+ %-20s %.3f\n", w.Word, w.Score)
				}
				for _, w := range neg {
					fmt.Fprintf(out, "- %-20s %.3f\n", w.Word, w.Score)
				}
				return nil
			})
		},
	}
	attachFlags(cmd, []string{"config", "top"})
	return cmd
}

func runsCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded training runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cmdlog.Run("runs", func() error {
				db, err := openStore(cfg)
				if err != nil {
					return err
				}
				defer db.Close()
				runs, err := db.ListRuns(cmd.Context(), limitFlag)
				if err != nil {
					return err
				}
				for _, r := range runs {
					test := "n/a"
					if r.TestAccuracy != nil {
						test = fmt.Sprintf("%.1f%%", *r.TestAccuracy*100)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s epochs=%d vocab=%d hidden=%d lr=%g train=%.1f%% test=%s took=%s\n",
						r.ID, r.StartedAt.Format(time.RFC3339), r.Epochs, r.VocabularySize, r.HiddenNodes,
						r.LearningRate, r.TrainAccuracy*100, test, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
				}
				return nil
			})
		},
	}
	attachFlags(cmd, []string{"config", "limit"})
	return cmd
}
