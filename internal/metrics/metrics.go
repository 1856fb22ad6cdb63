package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TrainExamples = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sentinet_train_examples_total",
		Help: "Total training examples processed",
	})
	TrainEpochs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sentinet_train_epochs_total",
		Help: "Total completed training epochs",
	})
	TrainAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sentinet_train_accuracy",
		Help: "Running training accuracy [0,1]",
	})
	TestAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sentinet_test_accuracy",
		Help: "Running test accuracy [0,1]",
	})
	VocabularySize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sentinet_vocabulary_size",
		Help: "Number of input nodes of the current model",
	})
	Predictions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinet_predictions_total",
		Help: "Total predictions by label",
	}, []string{"label"})
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentinet_run_duration_seconds",
		Help:    "Train and evaluate session duration seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
	})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinet_command_runs_total",
		Help: "Total CLI command runs",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinet_command_errors_total",
		Help: "Total CLI command errors",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(TrainExamples, TrainEpochs, TrainAccuracy, TestAccuracy,
		VocabularySize, Predictions, RunDuration, CommandRuns, CommandErrors)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, mux) }()
}

// ObserveRunDuration records a session duration.
func ObserveRunDuration(start time.Time) {
	RunDuration.Observe(time.Since(start).Seconds())
}

// IncPrediction counts one prediction for label.
func IncPrediction(label string) { Predictions.WithLabelValues(label).Inc() }

func IncCommandRun(cmd string)   { CommandRuns.WithLabelValues(cmd).Inc() }
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }
