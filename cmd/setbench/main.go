// Command setbench generates synthetic set pairs, runs the intersection
// kernels over them, and reports timings.
//
// Usage:
//
//	setbench generate -dir data -size 12 -skew 3 -density 10 -selectivity 300 -pairs 8
//	setbench run -dir data -algo qfilter -trials 10
//	setbench info -dir data
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/hupe1980/setintersect"
	"github.com/hupe1980/setintersect/dataset"
	"github.com/hupe1980/setintersect/dataset/store"
)

func main() {
	logger := setintersect.NewTextLogger(slog.LevelInfo)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(ctx, logger, os.Args[2:])
	case "run":
		err = runBench(ctx, logger, os.Args[2:])
	case "info":
		err = runInfo(ctx, logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: setbench <generate|run|info> [flags]")
}

func runGenerate(ctx context.Context, logger *setintersect.Logger, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	dir := fs.String("dir", "data", "output directory")
	size := fs.Uint("size", 12, "log2 length of the smaller set")
	skew := fs.Uint("skew", 1, "larger set is 2^(skew-1) times the smaller")
	density := fs.Uint("density", 10, "universe density in per mille")
	selectivity := fs.Uint("selectivity", 300, "overlap with the smaller set in per mille")
	pairs := fs.Int("pairs", 4, "number of pairs to generate")
	compression := fs.String("compression", "zstd", "datafile compression: none, lz4 or zstd")
	seed := fs.Int64("seed", 1, "rng seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	comp, ok := dataset.ParseCompression(*compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", *compression)
	}

	info := dataset.PairInfo{
		Size:        uint32(*size),
		Skew:        uint32(*skew),
		Density:     uint32(*density),
		Selectivity: uint32(*selectivity),
	}
	if err := info.Validate(); err != nil {
		return err
	}

	s := store.NewLocalStore(*dir)
	rng := rand.New(rand.NewSource(*seed))

	for i := 0; i < *pairs; i++ {
		small, large := dataset.GeneratePair(rng, info)

		var buf bytes.Buffer
		if err := dataset.WriteSets(&buf, [][]uint32{small, large}, comp); err != nil {
			return err
		}

		name := fmt.Sprintf("pair_%04d.bin", i)
		if err := s.Put(ctx, name, buf.Bytes()); err != nil {
			return err
		}
		logger.Info("generated pair",
			"name", name,
			"small", len(small),
			"large", len(large),
			"bytes", buf.Len(),
		)
	}
	return nil
}

func runBench(ctx context.Context, logger *setintersect.Logger, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	dir := fs.String("dir", "data", "datafile directory")
	algoName := fs.String("algo", setintersect.ActiveAlgorithm().String(), "algorithm to benchmark")
	trials := fs.Int("trials", 10, "timed repetitions per pair")
	if err := fs.Parse(args); err != nil {
		return err
	}

	algo, ok := setintersect.ParseAlgorithm(*algoName)
	if !ok {
		return fmt.Errorf("unknown algorithm %q", *algoName)
	}

	s := store.NewLocalStore(*dir)
	names, err := s.List(ctx, "")
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no datafiles under %s", *dir)
	}

	logger.Info("benchmarking", "algo", algo.String(), "pairs", len(names), "trials", *trials)

	for _, name := range names {
		sets, err := loadSets(ctx, s, name)
		if err != nil {
			return err
		}
		if len(sets) < 2 {
			continue
		}
		a, b := sets[0], sets[1]
		out := make([]uint32, min(len(a), len(b)))

		var n int
		best := time.Duration(1<<63 - 1)
		for trial := 0; trial < *trials; trial++ {
			start := time.Now()
			n = setintersect.IntersectAlgorithm(algo, a, b, out)
			if d := time.Since(start); d < best {
				best = d
			}
		}

		elems := len(a) + len(b)
		logger.Info("result",
			"name", name,
			"small", len(a),
			"large", len(b),
			"matches", n,
			"best", best,
			"melems_per_s", fmt.Sprintf("%.1f", float64(elems)/best.Seconds()/1e6),
		)
	}
	return nil
}

func runInfo(ctx context.Context, logger *setintersect.Logger, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	dir := fs.String("dir", "data", "datafile directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger.Info("runtime",
		"goos", runtime.GOOS,
		"goarch", runtime.GOARCH,
		"algo", setintersect.ActiveAlgorithm().String(),
		"override", setintersect.IsOverridden(),
		"sse42", setintersect.HasSSE42(),
		"avx2", setintersect.HasAVX2(),
		"asimd", setintersect.HasASIMD(),
	)

	s := store.NewLocalStore(*dir)
	names, err := s.List(ctx, "")
	if err != nil {
		return err
	}

	for _, name := range names {
		sets, err := loadSets(ctx, s, name)
		if err != nil {
			logger.Warn("skipping", "name", name, "err", err)
			continue
		}

		sizes := make([]int, len(sets))
		for i, set := range sets {
			sizes[i] = len(set)
		}
		logger.Info("datafile", "name", name, "sets", len(sets), "sizes", fmt.Sprint(sizes))
	}
	return nil
}

func loadSets(ctx context.Context, s store.Store, name string) ([][]uint32, error) {
	data, err := store.ReadAll(ctx, s, name)
	if err != nil {
		return nil, err
	}
	return dataset.ReadSets(bytes.NewReader(data))
}
