// Command shppatch runs the greedy patch allocator against a single
// link's fixed traffic and new-frame placement windows, then emits the
// patched schedule and a timing document. On infeasibility, only the
// timing document is written and the process still exits 0 (spec's
// documented reference behavior).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"

	"github.com/shpnet/tts-scheduler/ingest"
	"github.com/shpnet/tts-scheduler/patch"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <patch-in> <patch-out> <timing-out>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	patchInPath, patchOutPath, timingOutPath := args[0], args[1], args[2]

	var loader ingest.JSONPatchLoader
	doc, err := loader.Load(patchInPath)
	if err != nil {
		log.WithError(err).Fatal("shppatch: load patch document")
	}

	linkID, fixed, shp, hyperperiod, newFrames, err := ingest.ToPatchInput(doc)
	if err != nil {
		log.WithError(err).Fatal("shppatch: convert patch document")
	}

	start := time.Now()
	results, runErr := patch.Run(fixed, shp, hyperperiod, newFrames)
	elapsed := time.Since(start)

	var timingWriter ingest.JSONTimingWriter
	if err := timingWriter.Write(timingOutPath, ingest.BuildTimingDocument(elapsed.Nanoseconds())); err != nil {
		log.WithError(err).Fatal("shppatch: write timing document")
	}

	if runErr != nil {
		log.WithError(runErr).Error("shppatch: patch infeasible, timing document written, no schedule emitted")
		return
	}

	starts := make([][]int64, len(results))
	for i, r := range results {
		starts[i] = r.Starts
	}
	patchedDoc := ingest.BuildPatchedScheduleDocument(linkID, newFrames, starts)

	var scheduleWriter ingest.JSONPatchedScheduleWriter
	if err := scheduleWriter.Write(patchOutPath, patchedDoc); err != nil {
		log.WithError(err).Fatal("shppatch: write patched schedule document")
	}

	log.WithField("elapsed", elapsed).Info("shppatch: done")
}
