// hidecols-bench measures the throughput of hiding columns and translating
// coordinates on large column spaces.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/phroun/hiddencols"
)

type BenchResult struct {
	Name     string
	Duration time.Duration
	Ops      int
	Extra    string
}

func (r BenchResult) String() string {
	if r.Ops > 0 {
		opsPerSec := float64(r.Ops) / r.Duration.Seconds()
		if r.Extra != "" {
			return fmt.Sprintf("%-40s %12v  (%d ops, %.2f ops/sec) %s", r.Name, r.Duration.Round(time.Microsecond), r.Ops, opsPerSec, r.Extra)
		}
		return fmt.Sprintf("%-40s %12v  (%d ops, %.2f ops/sec)", r.Name, r.Duration.Round(time.Microsecond), r.Ops, opsPerSec)
	}
	if r.Extra != "" {
		return fmt.Sprintf("%-40s %12v  %s", r.Name, r.Duration.Round(time.Microsecond), r.Extra)
	}
	return fmt.Sprintf("%-40s %12v", r.Name, r.Duration.Round(time.Microsecond))
}

type benchConfig struct {
	columns int
	regions int
	queries int
	seed    uint64
}

func main() {
	var cfg benchConfig

	app := &cli.Command{
		Name:  "hidecols-bench",
		Usage: "Benchmark hidden column operations",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "columns",
				Usage:       "size of the column space",
				Value:       10_000_000,
				Destination: &cfg.columns,
			},
			&cli.IntFlag{
				Name:        "regions",
				Usage:       "number of random hide operations",
				Value:       100_000,
				Destination: &cfg.regions,
			},
			&cli.IntFlag{
				Name:        "queries",
				Usage:       "number of translations per benchmark",
				Value:       1_000_000,
				Destination: &cfg.queries,
			},
			&cli.Uint64Flag{
				Name:        "seed",
				Usage:       "random seed",
				Value:       1,
				Destination: &cfg.seed,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(cfg)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(cfg benchConfig) error {
	if cfg.columns <= 0 || cfg.regions < 0 || cfg.queries <= 0 {
		return fmt.Errorf("columns and queries must be positive, regions must not be negative")
	}

	fmt.Println("Hidden Columns Benchmark")
	fmt.Println("========================")
	fmt.Printf("Columns: %d, hide operations: %d, queries: %d\n", cfg.columns, cfg.regions, cfg.queries)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Println()

	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	var results []BenchResult

	hc, result := benchAppendHides(cfg)
	results = append(results, result)
	fmt.Println(result)

	random, result := benchRandomHides(cfg, rng)
	results = append(results, result)
	fmt.Println(result)

	for _, h := range []struct {
		name string
		hc   *hiddencols.HiddenColumns
	}{
		{"appended", hc},
		{"random", random},
	} {
		visible := cfg.columns - h.hc.Size()
		if visible <= 0 {
			fmt.Printf("%s: every column is hidden, skipping translations\n", h.name)
			continue
		}
		for _, result := range []BenchResult{
			benchSequentialVisibleToAbsolute(h.name, h.hc, visible, cfg.queries),
			benchRandomVisibleToAbsolute(h.name, h.hc, visible, cfg.queries, rng),
			benchRandomAbsoluteToVisible(h.name, h.hc, cfg.columns, cfg.queries, rng),
			benchContigSweep(h.name, h.hc, visible),
		} {
			results = append(results, result)
			fmt.Println(result)
		}
	}

	result = benchClearChurn(random.Copy(), cfg.columns, cfg.queries/10, rng)
	results = append(results, result)
	fmt.Println(result)

	fmt.Println()
	fmt.Println("Summary")
	fmt.Println("-------")
	var total time.Duration
	for _, r := range results {
		total += r.Duration
	}
	fmt.Printf("%d benchmarks in %v\n", len(results), total.Round(time.Millisecond))

	if err := random.CheckInvariants(); err != nil {
		return fmt.Errorf("consistency check failed: %w", err)
	}
	return nil
}

// benchAppendHides hides evenly spaced regions in ascending order.
func benchAppendHides(cfg benchConfig) (*hiddencols.HiddenColumns, BenchResult) {
	hc := hiddencols.New()
	spacing := max(cfg.columns/max(cfg.regions, 1), 2)

	start := time.Now()
	ops := 0
	for col := 0; col+spacing/2 < cfg.columns && ops < cfg.regions; col += spacing {
		_ = hc.HideColumns(col, col+spacing/2-1)
		ops++
	}
	return hc, BenchResult{
		Name:     "Hide ascending regions",
		Duration: time.Since(start),
		Ops:      ops,
		Extra:    fmt.Sprintf("[%d regions]", hc.NumberOfRegions()),
	}
}

// benchRandomHides hides short regions at random positions.
func benchRandomHides(cfg benchConfig, rng *rand.Rand) (*hiddencols.HiddenColumns, BenchResult) {
	hc := hiddencols.New()

	start := time.Now()
	for i := 0; i < cfg.regions; i++ {
		col := rng.IntN(cfg.columns)
		_ = hc.HideColumns(col, min(col+rng.IntN(20), cfg.columns-1))
	}
	return hc, BenchResult{
		Name:     "Hide random regions",
		Duration: time.Since(start),
		Ops:      cfg.regions,
		Extra:    fmt.Sprintf("[%d regions, %d hidden]", hc.NumberOfRegions(), hc.Size()),
	}
}

func benchSequentialVisibleToAbsolute(name string, hc *hiddencols.HiddenColumns, visible, queries int) BenchResult {
	start := time.Now()
	for i := 0; i < queries; i++ {
		hc.VisibleToAbsoluteColumn(i % visible)
	}
	return BenchResult{Name: "Sequential visible->absolute (" + name + ")", Duration: time.Since(start), Ops: queries}
}

func benchRandomVisibleToAbsolute(name string, hc *hiddencols.HiddenColumns, visible, queries int, rng *rand.Rand) BenchResult {
	cols := make([]int, queries)
	for i := range cols {
		cols[i] = rng.IntN(visible)
	}

	start := time.Now()
	for _, col := range cols {
		hc.VisibleToAbsoluteColumn(col)
	}
	return BenchResult{Name: "Random visible->absolute (" + name + ")", Duration: time.Since(start), Ops: queries}
}

func benchRandomAbsoluteToVisible(name string, hc *hiddencols.HiddenColumns, columns, queries int, rng *rand.Rand) BenchResult {
	cols := make([]int, queries)
	for i := range cols {
		cols[i] = rng.IntN(columns)
	}

	start := time.Now()
	for _, col := range cols {
		hc.AbsoluteToVisibleColumn(col)
	}
	return BenchResult{Name: "Random absolute->visible (" + name + ")", Duration: time.Since(start), Ops: queries}
}

// benchContigSweep walks the whole view in screen-sized windows.
func benchContigSweep(name string, hc *hiddencols.HiddenColumns, visible int) BenchResult {
	const window = 200

	start := time.Now()
	ops, blocks := 0, 0
	for first := 0; first < visible; first += window {
		it := hc.VisibleContigsIterator(first, min(first+window, visible), true)
		for it.HasNext() {
			if _, err := it.Next(); err != nil {
				break
			}
			blocks++
		}
		ops++
	}
	return BenchResult{
		Name:     "Visible contig sweep (" + name + ")",
		Duration: time.Since(start),
		Ops:      ops,
		Extra:    fmt.Sprintf("[%d blocks]", blocks),
	}
}

// benchClearChurn alternates clearing and re-hiding small ranges.
func benchClearChurn(hc *hiddencols.HiddenColumns, columns, ops int, rng *rand.Rand) BenchResult {
	start := time.Now()
	for i := 0; i < ops; i++ {
		col := rng.IntN(columns)
		end := min(col+rng.IntN(10), columns-1)
		if i%2 == 0 {
			_ = hc.ClearRange(col, end)
		} else {
			_ = hc.HideColumns(col, end)
		}
	}
	return BenchResult{
		Name:     "Clear/hide churn",
		Duration: time.Since(start),
		Ops:      ops,
		Extra:    fmt.Sprintf("[%d regions]", hc.NumberOfRegions()),
	}
}
