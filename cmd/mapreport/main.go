// Command mapreport loads a map snapshot from YAML, runs the spatial
// analysis headlessly, and prints a text report. With -copy the report also
// lands on the system clipboard.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/EvilPatrick06/DnD-sub011/internal/mapview"
)

// mapFile is the on-disk YAML schema. Cell sets are stored as [x,y] pairs
// because YAML cannot key a map by a struct.
type mapFile struct {
	MapID    string `yaml:"map_id"`
	CellSize int    `yaml:"cell_size"`
	Fog      struct {
		Enabled  bool     `yaml:"enabled"`
		Dynamic  bool     `yaml:"dynamic"`
		Revealed [][2]int `yaml:"revealed"`
		Explored [][2]int `yaml:"explored"`
	} `yaml:"fog"`
	Walls []struct {
		ID     string  `yaml:"id"`
		X1     float64 `yaml:"x1"`
		Y1     float64 `yaml:"y1"`
		X2     float64 `yaml:"x2"`
		Y2     float64 `yaml:"y2"`
		Door   bool    `yaml:"door"`
		IsOpen bool    `yaml:"open"`
	} `yaml:"walls"`
	Terrain []struct {
		X    float64 `yaml:"x"`
		Y    float64 `yaml:"y"`
		Type string  `yaml:"type"`
		Cost float64 `yaml:"cost"`
	} `yaml:"terrain"`
	Tokens []struct {
		ID      string `yaml:"id"`
		Label   string `yaml:"label"`
		X       int    `yaml:"x"`
		Y       int    `yaml:"y"`
		HP      int    `yaml:"hp"`
		MaxHP   int    `yaml:"max_hp"`
		Visible bool   `yaml:"visible"`
	} `yaml:"tokens"`
	Movement *struct {
		X      int     `yaml:"x"`
		Y      int     `yaml:"y"`
		Budget float64 `yaml:"budget"`
	} `yaml:"movement"`
}

func cellSet(pairs [][2]int) map[mapview.Cell]struct{} {
	out := make(map[mapview.Cell]struct{}, len(pairs))
	for _, p := range pairs {
		out[mapview.Cell{X: p[0], Y: p[1]}] = struct{}{}
	}
	return out
}

func terrainType(s string) mapview.TerrainType {
	switch s {
	case "water":
		return mapview.TerrainWater
	case "climbing":
		return mapview.TerrainClimbing
	case "hazard":
		return mapview.TerrainHazard
	default:
		return mapview.TerrainDifficult
	}
}

func toSnapshot(mf *mapFile) *mapview.MapSnapshot {
	grid := mapview.DefaultGridSettings()
	if mf.CellSize > 0 {
		grid.CellSize = mf.CellSize
	}
	snap := &mapview.MapSnapshot{
		MapID: mf.MapID,
		Grid:  grid,
		Fog: mapview.FogOfWarData{
			Enabled:           mf.Fog.Enabled,
			DynamicFogEnabled: mf.Fog.Dynamic,
			RevealedCells:     cellSet(mf.Fog.Revealed),
			ExploredCells:     cellSet(mf.Fog.Explored),
		},
		ViewerRole: mapview.RoleHost,
	}
	for _, w := range mf.Walls {
		wt := mapview.WallSolid
		if w.Door {
			wt = mapview.WallDoor
		}
		snap.Walls = append(snap.Walls, mapview.Wall{
			ID: w.ID, X1: w.X1, Y1: w.Y1, X2: w.X2, Y2: w.Y2,
			Type: wt, IsOpen: w.IsOpen,
		})
	}
	for _, t := range mf.Terrain {
		snap.Terrain = append(snap.Terrain, mapview.TerrainCell{
			X: t.X, Y: t.Y, Type: terrainType(t.Type), MovementCost: t.Cost,
		})
	}
	for _, t := range mf.Tokens {
		snap.Tokens = append(snap.Tokens, mapview.MapToken{
			ID: t.ID, Label: t.Label, GridX: t.X, GridY: t.Y,
			CurrentHP: t.HP, MaxHP: t.MaxHP, VisibleToPlayers: t.Visible,
		})
	}
	if mf.Movement != nil {
		snap.Movement = &mapview.MovementHint{
			Origin: mapview.Cell{X: mf.Movement.X, Y: mf.Movement.Y},
			Budget: mf.Movement.Budget,
		}
	}
	return snap
}

func main() {
	path := flag.String("map", "", "path to map snapshot YAML")
	copyOut := flag.Bool("copy", false, "also copy the report to the clipboard")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: mapreport -map <file.yaml> [-copy]")
		os.Exit(2)
	}
	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var mf mapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		fmt.Fprintf(os.Stderr, "parsing %s: %v\n", *path, err)
		os.Exit(1)
	}

	report := mapview.MapReport(toSnapshot(&mf))
	fmt.Print(report)
	if *copyOut {
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Fprintf(os.Stderr, "clipboard: %v\n", err)
			os.Exit(1)
		}
	}
}
