package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	pops "github.com/ncsu-landscape-dynamics/pops-core"
)

func openOrNil(path string) *os.File {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("opening %s: %s", path, err)
	}
	return f
}

func main() {
	numCPUPtr := flag.Int("threads", runtime.NumCPU(), "number of CPU threads")
	loggerType := flag.String("logger", "csv", "step logger type (csv|sqlite)")
	outPath := flag.String("out", "pops-run", "output base path for the step logger")
	susceptiblePath := flag.String("susceptible", "", "path to the initial susceptible-count raster (CSV)")
	infectedPath := flag.String("infected", "", "path to the initial infected-count raster (CSV)")
	resistantPath := flag.String("resistant", "", "path to the initial resistant-count raster (CSV)")
	totalPopPath := flag.String("total-population", "", "path to the total-population raster (CSV)")
	flag.Parse()

	runtime.GOMAXPROCS(*numCPUPtr)

	configPath := flag.Arg(0)
	if configPath == "" {
		log.Fatal("usage: pops-run [flags] <config.toml>")
	}
	conf, err := pops.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}

	if *susceptiblePath == "" || *infectedPath == "" || *resistantPath == "" || *totalPopPath == "" {
		log.Fatal("-susceptible, -infected, -resistant, and -total-population are all required")
	}

	ewRes, nsRes := conf.General.EWRes, conf.General.NSRes
	sFile, iFile, rFile, totalFile := openOrNil(*susceptiblePath), openOrNil(*infectedPath), openOrNil(*resistantPath), openOrNil(*totalPopPath)
	defer func() {
		for _, f := range []*os.File{sFile, iFile, rFile, totalFile} {
			if f != nil {
				f.Close()
			}
		}
	}()

	s, err := pops.ReadIntRaster(sFile, ewRes, nsRes)
	if err != nil {
		log.Fatalf("reading susceptible raster: %s", err)
	}
	i, err := pops.ReadIntRaster(iFile, ewRes, nsRes)
	if err != nil {
		log.Fatalf("reading infected raster: %s", err)
	}
	r, err := pops.ReadIntRaster(rFile, ewRes, nsRes)
	if err != nil {
		log.Fatalf("reading resistant raster: %s", err)
	}
	totalPop, err := pops.ReadIntRaster(totalFile, ewRes, nsRes)
	if err != nil {
		log.Fatalf("reading total population raster: %s", err)
	}

	in := pops.RunInputs{S: s, I: i, R: r, TotalPop: totalPop}

	if conf.Network.Movement {
		nodesFile, segmentsFile := openOrNil(conf.Network.NodesPath), openOrNil(conf.Network.SegmentsPath)
		defer func() {
			for _, f := range []*os.File{nodesFile, segmentsFile} {
				if f != nil {
					f.Close()
				}
			}
		}()
		in.NetworkNodes = nodesFile
		in.NetworkSegments = segmentsFile
	}

	if conf.Quarantine.Use {
		areasFile := openOrNil(conf.Quarantine.AreasPath)
		if areasFile != nil {
			defer areasFile.Close()
			areas, err := pops.ReadIntRaster(areasFile, ewRes, nsRes)
			if err != nil {
				log.Fatalf("reading quarantine areas raster: %s", err)
			}
			in.QuarantineAreas = areas
		}
	}

	model, err := pops.NewModelFromConfig(conf, in)
	if err != nil {
		log.Fatal(err)
	}

	runID := pops.NewRunID()
	var logger pops.StepLogger
	switch *loggerType {
	case "csv":
		logger = pops.NewCSVStepLogger(*outPath, runID)
	case "sqlite":
		logger = pops.NewSQLiteStepLogger(*outPath, runID)
	default:
		log.Fatalf("%s is not a valid logger type (csv|sqlite)", *loggerType)
	}
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	start := time.Now()
	for step := 0; step < model.Scheduler.NumSteps(); step++ {
		if err := model.RunStep(step); err != nil {
			log.Fatalf("step %d: %s", step, err)
		}
		if err := logger.WriteStep(model.Snapshot(step)); err != nil {
			log.Fatal(err)
		}
		if model.SpreadRateTracker != nil {
			steps := model.SpreadRateTracker.Steps()
			if len(steps) > 0 {
				if err := logger.WriteSpreadRate(step, steps[len(steps)-1]); err != nil {
					log.Fatal(err)
				}
			}
		}
		if model.QuarantineTracker != nil {
			steps := model.QuarantineTracker.Steps()
			if len(steps) > 0 {
				if err := logger.WriteQuarantine(step, steps[len(steps)-1]); err != nil {
					log.Fatal(err)
				}
			}
		}
	}
	log.Printf("run %s completed %d steps in %s", runID, model.Scheduler.NumSteps(), time.Since(start))
}
