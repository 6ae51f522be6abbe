// Command shpsched runs the full scheduling pipeline: ingest a
// network document and a scheduler configuration document, build and
// solve the schedule, verify it, and emit the schedule document.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/ingest"
	"github.com/shpnet/tts-scheduler/session"
)

func main() {
	nodeBudget := flag.Int("node-budget", 0, "backtracking backend node budget, 0 = backend.DefaultNodeBudget")
	flag.Parse()
	args := flag.Args()
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <network> <config> <schedule-out>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	networkPath, configPath, scheduleOutPath := args[0], args[1], args[2]

	var networkLoader ingest.JSONNetworkLoader
	networkDoc, err := networkLoader.Load(networkPath)
	if err != nil {
		log.WithError(err).Fatal("shpsched: load network document")
	}

	var configLoader ingest.JSONConfigLoader
	configDoc, err := configLoader.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("shpsched: load config document")
	}

	topo, err := ingest.ToTopology(networkDoc)
	if err != nil {
		log.WithError(err).Fatal("shpsched: convert topology")
	}
	traffic, err := ingest.ToTraffic(networkDoc)
	if err != nil {
		log.WithError(err).Fatal("shpsched: convert traffic")
	}
	shp, err := ingest.ToSHP(networkDoc)
	if err != nil {
		log.WithError(err).Fatal("shpsched: convert SHP")
	}
	switchMinTime, err := ingest.SwitchMinTime(networkDoc)
	if err != nil {
		log.WithError(err).Fatal("shpsched: convert switch minimum time")
	}

	opts := []session.Option{
		session.WithTimeLimit(configDoc.Schedule.Algorithm.TimeLimit),
		session.WithMIPGap(configDoc.Schedule.Algorithm.MIPGAP),
		session.WithSHP(shp),
		session.WithSwitchMinTime(switchMinTime),
	}
	if configDoc.Schedule.Algorithm.Name == "Incremental" {
		opts = append(opts,
			session.WithAlgorithm(session.IncrementalAlgorithm),
			session.WithFramesPerIteration(configDoc.Schedule.Algorithm.FramesIteration),
		)
	}

	b := backend.NewBacktrackingBackend(*nodeBudget)
	defer b.Close()

	s := session.New(b, opts...)

	if err := s.Load(topo, traffic); err != nil {
		log.WithError(err).Fatal("shpsched: load session")
	}
	if err := s.Prepare(); err != nil {
		log.WithError(err).Fatal("shpsched: prepare session")
	}

	if err := s.Solve(context.Background()); err != nil {
		log.WithError(err).Fatal("shpsched: solve session")
	}
	if err := s.Verify(); err != nil {
		log.WithError(err).Fatal("shpsched: verify schedule")
	}

	scheduleDoc := ingest.BuildScheduleDocument(topo, traffic, s.Timing(), s.SHPFrame())

	var writer ingest.JSONScheduleWriter
	if err := writer.Write(scheduleOutPath, scheduleDoc); err != nil {
		log.WithError(err).Fatal("shpsched: write schedule document")
	}

	log.WithField("varCounter", s.VarCounter()).
		WithField("constraintCounter", s.ConstraintCounter()).
		WithField("elapsed", s.ExecutionTime).
		Info("shpsched: done")
}
