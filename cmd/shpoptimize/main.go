// Command shpoptimize re-opens a single link's already-patched
// placement windows as a bounded MILP and emits the refined schedule
// and a timing document. Its input document carries the same
// fixed/new-frame shape patch already produced.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/ingest"
	"github.com/shpnet/tts-scheduler/optimize"
)

func main() {
	nodeBudget := flag.Int("node-budget", 0, "backtracking backend node budget, 0 = backend.DefaultNodeBudget")
	k := flag.Int("k", 1, "frames solved per batch")
	flag.Parse()
	args := flag.Args()
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <optimize-in> <optimize-out> <timing-out>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	optimizeInPath, optimizeOutPath, timingOutPath := args[0], args[1], args[2]

	var loader ingest.JSONOptimizeLoader
	doc, err := loader.Load(optimizeInPath)
	if err != nil {
		log.WithError(err).Fatal("shpoptimize: load optimize document")
	}

	linkID, fixed, shp, hyperperiod, newFrames, err := ingest.ToOptimizeInput(doc)
	if err != nil {
		log.WithError(err).Fatal("shpoptimize: convert optimize document")
	}

	b := backend.NewBacktrackingBackend(*nodeBudget)
	defer b.Close()

	cfg := optimize.DefaultConfig()
	cfg.K = *k

	start := time.Now()
	results, runErr := optimize.Run(b, constraint.DefaultConfig(), cfg, linkID, shp, hyperperiod, fixed, newFrames)
	elapsed := time.Since(start)

	var timingWriter ingest.JSONTimingWriter
	if err := timingWriter.Write(timingOutPath, ingest.BuildTimingDocument(elapsed.Nanoseconds())); err != nil {
		log.WithError(err).Fatal("shpoptimize: write timing document")
	}

	if runErr != nil {
		log.WithError(runErr).Error("shpoptimize: no schedule, timing document written, no schedule emitted")
		return
	}

	starts := make([][]int64, len(results))
	for i, r := range results {
		starts[i] = r.Starts
	}
	optimizedDoc := ingest.BuildPatchedScheduleDocument(linkID, newFrames, starts)

	var scheduleWriter ingest.JSONPatchedScheduleWriter
	if err := scheduleWriter.Write(optimizeOutPath, optimizedDoc); err != nil {
		log.WithError(err).Fatal("shpoptimize: write optimized schedule document")
	}

	log.WithField("elapsed", elapsed).Info("shpoptimize: done")
}
