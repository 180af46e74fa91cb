package main

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/drakos74/slp/infra/config"
	"github.com/drakos74/slp/internal/math/ml"
	"github.com/drakos74/slp/internal/metrics"
	"github.com/drakos74/slp/internal/storage"
	"github.com/drakos74/slp/internal/storage/file/json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/evaluation"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Config defines the driver configuration.
type Config struct {
	Data       string  `json:"data"`
	Headers    bool    `json:"headers"`
	Split      float64 `json:"split"`
	Seed       int64   `json:"seed"`
	Epochs     int     `json:"epochs"`
	Rate       float64 `json:"rate"`
	Iterations int     `json:"iterations"`
	Norm       float64 `json:"norm"`
	History    int     `json:"history"`
	Forest     int     `json:"forest"`
	Metrics    int     `json:"metrics"`
	Progress   bool    `json:"progress"`
	Store      bool    `json:"store"`
	Debug      bool    `json:"debug"`
}

// reports returns the storage for the test reports.
func reports(cfg Config) storage.Shard {
	if cfg.Store {
		return json.BlobShard(storage.ReportDir)
	}
	return storage.VoidShard()
}

func main() {

	var cfg Config
	config.MustLoad("slp", &cfg)

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if cfg.Metrics > 0 {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Metrics), nil)
			if err != nil {
				log.Error().Err(err).Int("port", cfg.Metrics).Msg("metrics server stopped")
			}
		}()
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatal().Err(err).Str("data", cfg.Data).Msg("could not complete run")
	}
}

// run trains and tests the perceptron layer on the configured dataset
// and optionally benchmarks it against a random forest.
func run(cfg Config, out io.Writer) error {

	ds, err := ml.LoadCSV(cfg.Data, cfg.Headers)
	if err != nil {
		return err
	}

	rnd := rand.New(rand.NewSource(cfg.Seed))

	train, test, err := ds.Split(cfg.Split, rnd)
	if err != nil {
		return err
	}
	samples := train
	if cfg.Epochs > 1 {
		samples = train.Epochs(cfg.Epochs, rnd)
	}

	opts := []ml.Option{
		ml.WithRand(rnd),
		ml.WithReporter(ml.Reporters(
			ml.LogReporter{},
			ml.NewWriterReporter(out, cfg.Progress),
			metrics.Observer,
		)),
	}
	if cfg.Norm > 0 {
		opts = append(opts, ml.WithNorm(cfg.Norm))
	}
	if cfg.History > 0 {
		opts = append(opts, ml.WithHistory(cfg.History))
	}

	model, err := ml.New(ds.Classes, ds.Features(), opts...)
	if err != nil {
		return err
	}

	err = model.Train(samples.Vectors, samples.Labels, ml.Training{
		Rate:       xml.Rate(cfg.Rate),
		Iterations: cfg.Iterations,
	})
	if err != nil {
		return fmt.Errorf("could not train: %w", err)
	}

	stats := model.Stats()
	log.Info().
		Str("model", model.ID).
		Int("iterations", stats.Iterations).
		Float64("loss-trend", stats.Trend).
		Msg("training stats")

	report, err := model.Test(test.Vectors, test.Labels)
	if err != nil {
		return fmt.Errorf("could not test: %w", err)
	}

	persistence, err := reports(cfg)(model.ID)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	err = persistence.Store(storage.Key{
		Hash:  now,
		Model: model.ID,
		Label: "slp",
	}, report)
	if err != nil {
		return fmt.Errorf("could not store report: %w", err)
	}

	if cfg.Forest <= 0 {
		return nil
	}

	forest := ml.NewForest(ds.Classes, cfg.Forest)
	if err := forest.Train(train.Vectors, train.Labels); err != nil {
		return fmt.Errorf("could not train forest: %w", err)
	}
	baseline, err := ml.Score(forest, ds.Classes, test.Vectors, test.Labels)
	if err != nil {
		return fmt.Errorf("could not score forest: %w", err)
	}
	baseline.Model = model.ID

	ref, err := baseline.Confusion.Reference(baseline.Classes)
	if err != nil {
		return err
	}
	log.Debug().
		Str("model", model.ID).
		Str("summary", evaluation.GetSummary(ref)).
		Msg("forest")
	log.Info().
		Str("model", model.ID).
		Float64("slp", report.Accuracy).
		Float64("forest", baseline.Accuracy).
		Msg("baseline")
	fmt.Fprint(out, baseline.String())

	return persistence.Store(storage.Key{
		Hash:  now,
		Model: model.ID,
		Label: "forest",
	}, baseline)
}
