// main.go is a small demo/benchmark driver for the hllpp package. It
// generates a stream of distinct integers, feeds them through a
// Sketch at a configurable precision and mixer, and reports the
// resulting cardinality estimate alongside the true count.
//
// This binary exists to exercise the library end to end with real
// flags and real logging; the sketch itself has no CLI or I/O
// surface of its own.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/benlopatin/hllpp/internal/hllpp"
)

func main() {
	var (
		precision  = flag.Uint("precision", 14, "HyperLogLog++ precision, in [4, 18]")
		mixerName  = flag.String("mixer", "murmur3", "hash mixer: numerical-recipes, murmur3, or wang")
		startDense = flag.Bool("dense", false, "start the sketch in dense mode instead of sparse")
		items      = flag.Uint64("items", 1_000_000, "number of distinct uint64 items to add")
		estimator  = flag.String("estimator", "ertl", "cardinality estimator: ertl or heule")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mixer, err := resolveMixer(*mixerName)
	if err != nil {
		logger.Error("invalid mixer", "mixer", *mixerName, "error", err)
		os.Exit(1)
	}

	sketch, err := hllpp.New(*precision, !*startDense, mixer)
	if err != nil {
		logger.Error("failed to construct sketch", "error", err)
		os.Exit(1)
	}

	logger.Info("filling sketch", "items", *items, "precision", *precision, "mixer", *mixerName)

	start := time.Now()
	for i := uint64(0); i < *items; i++ {
		sketch.Add(i)
	}
	addElapsed := time.Since(start)

	var estimate uint64
	estimateStart := time.Now()
	switch *estimator {
	case "heule":
		estimate = sketch.HeuleCardinality()
	default:
		estimate = sketch.Cardinality()
	}
	estimateElapsed := time.Since(estimateStart)

	relativeError := float64(0)
	if *items > 0 {
		diff := float64(estimate) - float64(*items)
		if diff < 0 {
			diff = -diff
		}
		relativeError = diff / float64(*items)
	}

	logger.Info("estimate complete",
		"true_cardinality", *items,
		"estimate", estimate,
		"relative_error", relativeError,
		"add_duration", addElapsed,
		"estimate_duration", estimateElapsed,
	)
}

func resolveMixer(name string) (hllpp.Mixer, error) {
	switch name {
	case "numerical-recipes":
		return hllpp.NumericalRecipesMixer, nil
	case "murmur3":
		return hllpp.Murmur3FinalizerMixer, nil
	case "wang":
		return hllpp.WangMixer, nil
	default:
		return nil, errUnknownMixer
	}
}
