// Command audioprep preprocesses audio files for model training.
//
// Each file is resampled, fitted to a fixed duration, standardized and peak
// normalized. Noise gating, silence removal, edge trimming, augmentation and
// feature extraction can be switched on per run or in a YAML config.
//
// Usage:
//
//	audioprep [flags] file ...
//
// Examples:
//
//	audioprep -rate 16000 -duration 2 a.wav b.mp3
//	audioprep -clean -trim -out prepared/ clips/*.wav
//	audioprep -config prep.yaml -augment -seed 7 -out augmented/ clips/*.ogg
//	audioprep -list-transforms
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-audioprep/audiofile"
	"github.com/cwbudde/algo-audioprep/dsp/augment"
	"github.com/cwbudde/algo-audioprep/pipeline"
)

// usageExamples mirrors the Examples section of the package doc.
var usageExamples = []string{
	"audioprep -rate 16000 -duration 2 a.wav b.mp3",
	"audioprep -clean -trim -out prepared/ clips/*.wav",
	"audioprep -config prep.yaml -augment -seed 7 -out augmented/ clips/*.ogg",
	"audioprep -list-transforms",
}

func main() {
	configPath := flag.String("config", "", "YAML config file; flags set on the command line override it")
	rate := flag.Int("rate", pipeline.DefaultTargetSampleRate, "target sample rate in Hz")
	duration := flag.Float64("duration", pipeline.DefaultTargetDurationSeconds, "target duration in seconds")
	out := flag.String("out", "", "directory for processed WAV files (nothing is written when empty)")
	bitDepth := flag.Int("bit-depth", audiofile.DefaultBitDepth, "bit depth of written WAV files (8, 16, 24 or 32)")
	workers := flag.Int("workers", pipeline.DefaultWorkers, "files processed in parallel")
	clean := flag.Bool("clean", false, "gate noise and remove silent frames")
	trim := flag.Bool("trim", false, "trim leading and trailing silence")
	features := flag.Bool("features", false, "extract summary features")
	augmentFlag := flag.Bool("augment", false, "apply random augmentations")
	transforms := flag.String("transforms", "", "comma separated augmentation transforms (default all)")
	seed := flag.Int64("seed", 0, "augmentation seed")
	listTransforms := flag.Bool("list-transforms", false, "list available augmentation transforms")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	logJSON := flag.Bool("log-json", false, "log as JSON")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: audioprep [flags] file ...\n\n")
		fmt.Fprintf(os.Stderr, "Resamples, crops and normalizes audio files, with optional cleaning,\n")
		fmt.Fprintf(os.Stderr, "trimming, augmentation and feature extraction.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		for _, ex := range usageExamples {
			fmt.Fprintf(os.Stderr, "  %s\n", ex)
		}
	}
	flag.Parse()

	if *listTransforms {
		for _, name := range augment.DefaultRegistry(augment.DefaultParams()).Names() {
			fmt.Println(name)
		}
		return
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	log.SetLevel(level)
	if *logJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		cfg, err = pipeline.LoadConfig(*configPath)
		if err != nil {
			log.WithError(err).Fatal("Loading config")
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rate":
			cfg.TargetSampleRate = *rate
		case "duration":
			cfg.TargetDurationSeconds = *duration
		case "workers":
			cfg.Workers = *workers
		case "clean":
			cfg.Steps.Clean = *clean
		case "trim":
			cfg.Steps.Trim = *trim
		case "features":
			cfg.Steps.Features = *features
		case "augment":
			cfg.Steps.Augment = *augmentFlag
		case "transforms":
			cfg.Augment.Transforms = splitList(*transforms)
		case "seed":
			cfg.Augment.Seed = *seed
		}
	})

	p, err := pipeline.New(cfg, pipeline.WithLogger(log))
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	if *out != "" {
		if err := os.MkdirAll(*out, 0o755); err != nil {
			log.WithError(err).Fatal("Creating output directory")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := p.RunBatch(ctx, paths)
	if err != nil {
		log.WithError(err).Warn("Batch interrupted")
	}

	failed := 0
	for i := range results {
		if results[i].Err == nil && *out != "" {
			results[i].Err = save(*out, results[i], *bitDepth)
		}
		if results[i].Err != nil {
			failed++
		}
	}

	printSummary(results, cfg.Steps.Features)

	if failed > 0 {
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// save writes res under dir with the input's base name and a .wav
// extension.
func save(dir string, res pipeline.Result, bitDepth int) error {
	base := strings.TrimSuffix(filepath.Base(res.Path), filepath.Ext(res.Path))
	return audiofile.SaveWAV(filepath.Join(dir, base+".wav"), res.Signal, bitDepth)
}

func printSummary(results []pipeline.Result, withFeatures bool) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := "File\tStatus\tRate [Hz]\tSamples\tTime\tAugmented"
	rule := "----\t------\t---------\t-------\t----\t---------"
	if withFeatures {
		header += "\tCentroid [Hz]\tRolloff [Hz]\tFlatness"
		rule += "\t-------------\t------------\t--------"
	}

	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "error: " + r.Err.Error()
		}

		row := fmt.Sprintf("%s\t%s\t%d\t%d\t%s\t%s",
			r.Path,
			status,
			r.OriginalRate,
			len(r.Signal.Samples),
			r.Elapsed.Round(time.Millisecond),
			strings.Join(r.Augmented, ","),
		)
		if withFeatures && r.Features != nil {
			row += fmt.Sprintf("\t%.1f\t%.1f\t%.4f", r.Features.Centroid, r.Features.Rolloff, r.Features.Flatness)
		}

		if _, err := fmt.Fprintln(tw, row); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
