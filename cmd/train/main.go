// nnplay-train: builds a feed-forward network, trains it and tests a prediction
//
// Usage:
//
//	nnplay-train -hidden "5" -epochs 5000 -data basic -test "3 4 5"
//	nnplay-train -example sleep -retrain 2
//	nnplay-train -config run.yaml -data samples.csv -normalize
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"nnplay/m"
	"nnplay/trainer"
	"nnplay/utils"
)

var (
	configPath = flag.String("config", "", "Path to YAML config")
	example    = flag.String("example", "basic", "Built-in starting config: basic, sleep")
	input      = flag.Int("in", 0, "Input layer size")
	output     = flag.Int("out", 0, "Output layer size")
	hidden     = flag.String("hidden", "", `Hidden layer sizes, e.g. "5 4"`)
	epochs     = flag.Int("epochs", 0, "Number of training epochs")
	data       = flag.String("data", "", "Training data: basic, sleep or a CSV path")
	normalize  = flag.Bool("normalize", false, "Rescale CSV columns to [0, 1]")
	test       = flag.String("test", "", `Input vector to predict after training, e.g. "0.8 0.3"`)
	seed       = flag.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	checkpoint = flag.Int("checkpoint", 0, "Epochs between progress reports")
	retrain    = flag.Int("retrain", 0, "Reset and train again this many times")
	verbose    = flag.Bool("verbose", false, "Log every checkpoint")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	samples, err := loadData(cfg)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []m.Option{m.WithObserver(&topologyPrinter{}), m.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, m.WithSeed(cfg.Seed))
	}
	net, err := m.NewNetworkWith(m.InitParameters{
		InputSize:         cfg.Input,
		OutputSize:        cfg.Output,
		HiddenLayersSizes: cfg.Hidden,
	}, opts...)
	if err != nil {
		return errors.Wrap(err, "build network")
	}

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                    Neural Network Trainer                    ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Layers:     %v\n", net.Sizes())
	fmt.Printf("  Data:       %s (%d samples)\n", cfg.Data, len(samples))
	fmt.Printf("  Epochs:     %d\n", cfg.Epochs)
	fmt.Printf("  Checkpoint: %d\n", cfg.Checkpoint)
	fmt.Printf("  Retrain:    %d\n", cfg.Retrain)
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := trainer.New(net, trainer.Options{
		Checkpoint: cfg.Checkpoint,
		Logger:     logger,
	})
	defer r.Close()

	stats := &utils.TimingStats{}
	for round := 0; round <= cfg.Retrain; round++ {
		if round > 0 {
			if res := <-r.Reset(ctx); res.Err != nil {
				return errors.Wrap(res.Err, "reset")
			}
			fmt.Printf("\nNetwork reset, training again (%d/%d)\n", round, cfg.Retrain)
		}

		res := <-r.Train(ctx, samples, cfg.Epochs)
		stats.Record(res.Epochs, len(samples), res.Took)
		if res.Err != nil {
			return errors.Wrapf(res.Err, "train after %d epochs", res.Epochs)
		}
		fmt.Printf("Training took %.3fs | MSE: %.6f\n", res.Took.Seconds(), res.MSE)

		if cfg.Test != nil {
			res := <-r.Test(ctx, m.TrainingData{VectorIn: cfg.Test})
			if res.Err != nil {
				return errors.Wrap(res.Err, "test")
			}
			fmt.Printf("Test %v -> %s\n", cfg.Test, formatVector(res.Output))
		}
	}

	utils.PrintTimingStats(stats)
	return nil
}

func loadConfig() (*utils.Config, error) {
	var cfg *utils.Config
	switch {
	case *configPath != "":
		loaded, err := utils.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case *example == "sleep":
		c := utils.SleepExample()
		cfg = &c
	case *example == "basic":
		c := utils.Default()
		cfg = &c
	default:
		return nil, errors.Errorf("unknown example %q", *example)
	}

	o := utils.Overrides{
		Input:      *input,
		Output:     *output,
		Epochs:     *epochs,
		Data:       *data,
		Normalize:  *normalize,
		Seed:       *seed,
		Checkpoint: *checkpoint,
		Retrain:    *retrain,
	}
	if *hidden != "" {
		arch, err := utils.ParseArchitecture(*hidden)
		if err != nil {
			return nil, errors.Wrap(err, "parse -hidden")
		}
		o.Hidden = arch
	}
	if *test != "" {
		v, err := utils.ParseVector(*test)
		if err != nil {
			return nil, errors.Wrap(err, "parse -test")
		}
		o.Test = v
	}
	cfg.ApplyOverrides(o)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func loadData(cfg *utils.Config) ([]m.TrainingData, error) {
	switch cfg.Data {
	case utils.DataBasic:
		return []m.TrainingData{m.BasicSample}, nil
	case utils.DataSleep:
		return m.SleepLearnDataSet, nil
	}

	samples, err := m.LoadSamples(cfg.Data, cfg.Input, cfg.Output)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.Errorf("no samples in %s", cfg.Data)
	}
	if cfg.Normalize {
		samples = m.NormalizeSamples(samples)
	}
	return samples, nil
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// topologyPrinter reports layer changes as the network is built.
type topologyPrinter struct{}

func (topologyPrinter) NetworkCreated(sizeIn, sizeOut int) {
	fmt.Printf("Network: %d inputs, %d outputs\n", sizeIn, sizeOut)
}

func (topologyPrinter) HiddenLayerAdded(index, size int) {
	fmt.Printf("  + hidden layer %d: %d neurons\n", index, size)
}

func (topologyPrinter) HiddenLayerRemoved(index int) {
	fmt.Printf("  - hidden layer %d\n", index)
}
