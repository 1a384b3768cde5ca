package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kwv/trenchplan/survey"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	configFile  = flag.String("config", "survey.yaml", "Path to survey run configuration file")
	dataDir     = flag.String("data-dir", "", "Override the data root directory from the config file")
	layerFilter = flag.String("layer", "", "Override the layer filter from the config file")
	workers     = flag.Int("workers", 0, "Override worker-pool size (0 = runtime.GOMAXPROCS)")
	shapefiles  = flag.Bool("shapefiles", false, "Load the on-disk corpus from binary shapefiles instead of GeoJSON")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("trenchplan version: %s\n", Version)
		return
	}

	cfg, err := survey.LoadRunConfig(*configFile)
	if err != nil {
		log.Fatalf("loading survey config: %v", err)
	}

	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *layerFilter != "" {
		cfg.LayerFilter = *layerFilter
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}

	var ingest survey.Ingest
	if *shapefiles {
		ingest = survey.ShapefileIngest{DataDir: cfg.DataDir}
	} else {
		ingest = survey.GeoJSONIngest{DataDir: cfg.DataDir}
	}

	totals, err := survey.Run(*cfg, ingest)
	if err != nil {
		log.Fatalf("running survey: %v", err)
	}

	for _, r := range totals.Results {
		fmt.Printf("%s/%d [%s]: %d/%d layouts, %d hits, %d misses, %.2f%% found\n",
			r.Site, r.LOE, r.Pattern, r.LayoutsProduced, r.LayoutsAttempted, r.Hits, r.Misses, r.PercentFound())
	}

	fmt.Println("\nTotals")
	fmt.Println("======")
	fmt.Printf("Layouts evaluated: %d\n", totals.Layouts)
	fmt.Printf("Hits: %d  Misses: %d  Percent found: %.2f%%\n", totals.Hits, totals.Misses, totals.PercentFound())

	if len(totals.Results) == 0 {
		os.Exit(1)
	}
}
