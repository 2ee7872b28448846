package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mnistnet/config"
	"mnistnet/dataset"
	"mnistnet/neuralnet"
	"mnistnet/persist"
	"mnistnet/report"
	"mnistnet/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults apply when empty)")
	dataDir := flag.String("data-dir", "", "Override directory holding the IDX files")
	epochs := flag.Int("epochs", 0, "Number of passes over the training set")
	lr := flag.Float64("lr", 0, "Learning rate")
	seed := flag.Int64("seed", 0, "PRNG seed for weights and shuffling")
	maxTrain := flag.Int("max-train", 0, "Cap on training samples (0 = all)")
	maxTest := flag.Int("max-test", 0, "Cap on test samples (0 = all)")
	loadDir := flag.String("load-dir", "", "Directory of previously exported weights to start from")
	exportDir := flag.String("export-dir", "", "Directory for exported weights")
	gradCheck := flag.Bool("gradcheck", false, "Check analytic gradients on the first sample before training")
	dumpImage := flag.Int("dump-image", -1, "Write training image N as PNG to stdout and exit")

	flag.Parse()

	startTime := time.Now()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	cfg.ApplyOverrides(config.Overrides{
		DataDir:      *dataDir,
		Epochs:       *epochs,
		LearningRate: *lr,
		Seed:         *seed,
		MaxTrain:     *maxTrain,
		MaxTest:      *maxTest,
		LoadDir:      *loadDir,
		ExportDir:    *exportDir,
		GradCheck:    *gradCheck,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	train, err := dataset.Load(cfg.Path(cfg.TrainImages), cfg.Path(cfg.TrainLabels), cfg.MaxTrain)
	if err != nil {
		log.Fatalf("load training set: %v", err)
	}
	log.Printf("set=train samples=%d size=%dx%d", train.Len(), train.Rows, train.Cols)

	if *dumpImage >= 0 {
		if err := train.SavePNG(os.Stdout, *dumpImage); err != nil {
			log.Fatalf("dump image: %v", err)
		}
		return
	}

	var test *dataset.Set
	if cfg.HasTestSet() {
		test, err = dataset.Load(cfg.Path(cfg.TestImages), cfg.Path(cfg.TestLabels), cfg.MaxTest)
		if err != nil {
			log.Fatalf("load test set: %v", err)
		}
		log.Printf("set=test samples=%d", test.Len())
	}

	nn, err := neuralnet.New(neuralnet.MNISTShape, cfg.Seed)
	if err != nil {
		log.Fatalf("build network: %v", err)
	}
	if cfg.LoadDir != "" {
		if err := persist.Import(cfg.LoadDir, nn); err != nil {
			log.Fatalf("load weights: %v", err)
		}
		log.Printf("weights loaded from %s", cfg.LoadDir)
	}

	if cfg.GradCheck {
		sample, label := train.Sample(0)
		target, err := neuralnet.EncodeTarget(label, neuralnet.MNISTShape.Outputs)
		if err != nil {
			log.Fatalf("gradient check: %v", err)
		}
		diff, err := nn.CheckGradients(sample, target)
		if err != nil {
			log.Fatalf("gradient check: %v", err)
		}
		log.Printf("gradcheck max_abs_diff=%.3g", diff)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := trainer.RunConfig{
		Epochs:       cfg.Epochs,
		LearningRate: cfg.LearningRate,
		Shuffle:      cfg.Shuffle,
		Seed:         cfg.Seed,
	}
	sink := report.Multi(
		&report.LogSink{Every: cfg.LogEvery},
		&report.FileSink{Dir: cfg.ReportDir},
	)

	res, err := trainer.Run(ctx, nn, runCfg, train, test, sink)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}
	if test != nil {
		log.Printf("result accuracy=%.4f cost=%.7g", res.Test.Accuracy(), res.Test.MeanCost)
	}

	if err := persist.Export(cfg.ExportDir, nn, cfg.ExportPrecision); err != nil {
		log.Fatalf("export weights: %v", err)
	}
	log.Printf("weights exported to %s", cfg.ExportDir)

	log.Printf("done elapsed=%.1fs", time.Since(startTime).Seconds())
}
