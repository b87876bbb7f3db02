// towergen generates procedural high-rise building frames as glTF 2.0 assets.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/towergen/internal/config"
	"github.com/Faultbox/towergen/internal/generator"
	"github.com/Faultbox/towergen/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "inspect":
		cmdInspect(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`towergen - procedural building frame generator

Usage:
  towergen <command> [options]

Commands:
  generate [flags]           Generate a building and write the glTF artifact
  inspect <file.gltf|.glb>   Show nodes, groups and accessor counts of an artifact
  config [flags]             Print the effective configuration as YAML

Flags (generate, config):
  -config <path>     Config file (default ./towergen.yaml or user config dir)
  -out <path>        Output artifact path
  -format <fmt>      gltf, glb or separate
  -floors <n>        Number of floors
  -grid <list>       Grid resolution per LOD, e.g. 5,3
  -bracing           Add one brace column per story
  -no-zones          Skip spatial zone volumes
  -no-materials      Do not emit PBR materials
  -workers <n>       Generate LOD levels in parallel
  -debug             Enable debug logging

Examples:
  towergen generate -floors 12 -grid 6,4,2 -out tower.glb -format glb
  towergen inspect tower.glb
  towergen config -floors 8 > towergen.yaml`)
}

// loadConfig parses the sub-command flags and resolves the configuration.
func loadConfig(args []string) *config.Config {
	if err := config.ParseFlags(args); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdGenerate(args []string) {
	cfg := loadConfig(args)

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	sum, err := generator.Run(cfg)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d nodes, %d vertices, %d triangles, %d bytes in %s\n",
		cfg.Output.Path, sum.Nodes, sum.Vertices, sum.Triangles, sum.Bytes, sum.Elapsed.Round(1e6))
}

func cmdConfig(args []string) {
	cfg := loadConfig(args)

	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: towergen inspect <file.gltf|file.glb>")
		os.Exit(1)
	}

	doc, err := gltf.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	generatorName := ""
	if doc.Asset.Generator != "" {
		generatorName = " (" + doc.Asset.Generator + ")"
	}
	var bufferSize uint32
	for _, b := range doc.Buffers {
		bufferSize += b.ByteLength
	}

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Asset:     glTF %s%s\n", doc.Asset.Version, generatorName)
	fmt.Printf("Nodes:     %d\n", len(doc.Nodes))
	fmt.Printf("Materials: %d\n", len(doc.Materials))
	fmt.Printf("Buffer:    %d bytes in %d views\n", bufferSize, len(doc.BufferViews))
	fmt.Println()
	fmt.Printf("  %-24s %-10s %4s %9s %9s\n", "NODE", "SEMANTIC", "LOD", "VERTICES", "INDICES")

	perLOD := make(map[string]int)
	for _, node := range doc.Nodes {
		semantic, lod := "-", "-"
		if extras, ok := node.Extras.(map[string]any); ok {
			if v, ok := extras["semantic"]; ok {
				semantic = fmt.Sprint(v)
			}
			if v, ok := extras["lod"]; ok {
				lod = fmt.Sprint(v)
			}
		}

		var vertices, indices uint32
		if node.Mesh != nil && int(*node.Mesh) < len(doc.Meshes) {
			for _, prim := range doc.Meshes[*node.Mesh].Primitives {
				if pos, ok := prim.Attributes[gltf.POSITION]; ok {
					vertices += doc.Accessors[pos].Count
				}
				if prim.Indices != nil {
					indices += doc.Accessors[*prim.Indices].Count
				}
			}
		}

		perLOD[lod] += int(indices / 3)
		fmt.Printf("  %-24s %-10s %4s %9d %9d\n", node.Name, semantic, lod, vertices, indices)
	}

	lods := make([]string, 0, len(perLOD))
	for lod := range perLOD {
		lods = append(lods, lod)
	}
	sort.Strings(lods)

	fmt.Println()
	fmt.Println("Triangles by LOD:")
	for _, lod := range lods {
		fmt.Printf("  LOD %-4s %d\n", lod, perLOD[lod])
	}
}
