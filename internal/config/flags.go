package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagOut         = flag.String("out", "", "Output artifact path")
	flagFormat      = flag.String("format", "", "Output format: gltf, glb or separate")
	flagFloors      = flag.Int("floors", 0, "Number of floors")
	flagGrid        = flag.String("grid", "", "Column grid resolutions per LOD, comma separated (e.g. 5,3)")
	flagBracing     = flag.Bool("bracing", false, "Add one brace column per story")
	flagNoZones     = flag.Bool("no-zones", false, "Skip spatial zone volumes")
	flagWorkers     = flag.Int("workers", 0, "Generate LOD levels on N workers")
	flagNoMaterials = flag.Bool("no-materials", false, "Do not emit PBR materials")
)

// ParseFlags parses command-line flags from args (without the program name
// or sub-command). Call this early in main().
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagFloors > 0 {
		cfg.Building.Floors = *flagFloors
	}
	if *flagGrid != "" {
		grids, err := parseGrid(*flagGrid)
		if err != nil {
			return err
		}
		cfg.Building.GridResolutions = grids
	}
	if *flagBracing {
		cfg.Building.Bracing = true
	}
	if *flagNoZones {
		cfg.Building.SpatialZones = false
	}
	if *flagWorkers > 0 {
		cfg.Building.Workers = *flagWorkers
	}
	if *flagNoMaterials {
		cfg.Output.Materials = false
	}
	return nil
}

// parseGrid parses a comma-separated list of grid resolutions.
func parseGrid(s string) ([]int, error) {
	var grids []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid -grid value %q: %w", s, err)
		}
		grids = append(grids, n)
	}
	return grids, nil
}
