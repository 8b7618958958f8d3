package main

import (
	"flag"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/EvilPatrick06/DnD-sub011/internal/config"
	"github.com/EvilPatrick06/DnD-sub011/internal/logger"
	"github.com/EvilPatrick06/DnD-sub011/internal/mapview"
)

// localState is a stand-in host authority for running the map without a
// session: it owns the authoritative snapshot and applies the intents the
// surface emits. In the full app the session layer replaces this.
type localState struct {
	log  *zap.Logger
	snap mapview.MapSnapshot
}

func newLocalState(cfg *config.Config, log *zap.Logger) *localState {
	grid := mapview.DefaultGridSettings()
	grid.CellSize = cfg.Grid.CellSize
	grid.Opacity = cfg.Grid.Opacity

	ls := &localState{log: log}
	ls.snap = mapview.MapSnapshot{
		MapID: "local",
		Grid:  grid,
		Tokens: []mapview.MapToken{
			{
				ID: "t1", EntityID: "e1", EntityType: mapview.EntityPlayer,
				GridX: 4, GridY: 4, SizeX: 1, SizeY: 1,
				Label: "Aela", Color: color.RGBA{R: 70, G: 130, B: 220, A: 255},
				CurrentHP: 24, MaxHP: 30, VisibleToPlayers: true, NameVisible: true,
			},
			{
				ID: "t2", EntityID: "e2", EntityType: mapview.EntityEnemy,
				GridX: 9, GridY: 6, SizeX: 2, SizeY: 2,
				Label: "Ogre Warchief", Color: color.RGBA{R: 190, G: 60, B: 50, A: 255},
				CurrentHP: 59, MaxHP: 59, VisibleToPlayers: true,
			},
		},
		Fog: mapview.FogOfWarData{
			Enabled:           cfg.Fog.Enabled,
			RevealedCells:     map[mapview.Cell]struct{}{},
			ExploredCells:     map[mapview.Cell]struct{}{},
			DynamicFogEnabled: cfg.Fog.DynamicFog,
		},
		Walls: []mapview.Wall{
			{ID: "w1", X1: 7, Y1: 3, X2: 7, Y2: 8},
			{ID: "d1", X1: 7, Y1: 8, X2: 7, Y2: 9, Type: mapview.WallDoor},
		},
		Terrain: []mapview.TerrainCell{
			{X: 5, Y: 7, Type: mapview.TerrainDifficult, MovementCost: 2},
			{X: 6, Y: 7, Type: mapview.TerrainDifficult, MovementCost: 2},
			{X: 11, Y: 3, Type: mapview.TerrainWater, MovementCost: 2},
		},
		ActiveEntityID: "e1",
		Movement:       &mapview.MovementHint{Origin: mapview.Cell{X: 4, Y: 4}, Budget: 6},
		ViewerRole:     mapview.RoleHost,
	}
	// Start with the area around the party revealed.
	for y := 0; y < 12; y++ {
		for x := 0; x < 14; x++ {
			ls.snap.Fog.RevealedCells[mapview.Cell{X: x, Y: y}] = struct{}{}
			ls.snap.Fog.ExploredCells[mapview.Cell{X: x, Y: y}] = struct{}{}
		}
	}
	return ls
}

func (ls *localState) snapshot() *mapview.MapSnapshot {
	return &ls.snap
}

func (ls *localState) callbacks() mapview.Callbacks {
	return mapview.Callbacks{
		OnTokenMove: func(id string, gx, gy int) {
			for i := range ls.snap.Tokens {
				if ls.snap.Tokens[i].ID == id {
					ls.snap.Tokens[i].GridX = gx
					ls.snap.Tokens[i].GridY = gy
					if ls.snap.Tokens[i].EntityID == ls.snap.ActiveEntityID {
						ls.snap.Movement.Origin = mapview.Cell{X: gx, Y: gy}
					}
				}
			}
		},
		OnTokenSelect: func(id string) {
			ls.log.Debug("token selected", zap.String("id", id))
		},
		OnCellClick: func(gx, gy int) {
			ls.log.Debug("cell clicked", zap.Int("x", gx), zap.Int("y", gy))
		},
		OnWallPlace: func(x1, y1, x2, y2 float64) {
			ls.snap.Walls = append(ls.snap.Walls, mapview.Wall{
				ID: "w-local", X1: x1, Y1: y1, X2: x2, Y2: y2,
			})
		},
		OnDoorToggle: func(id string) {
			mapview.ToggleDoor(ls.snap.Walls, id)
		},
		OnFogReveal: func(cells []mapview.Cell) {
			for _, c := range cells {
				ls.snap.Fog.RevealedCells[c] = struct{}{}
				ls.snap.Fog.ExploredCells[c] = struct{}{}
			}
		},
		OnFogHide: func(cells []mapview.Cell) {
			for _, c := range cells {
				delete(ls.snap.Fog.RevealedCells, c)
			}
		},
		OnTokenContextMenu: func(sx, sy int, t mapview.MapToken, mapID string) {
			ls.log.Info("context menu", zap.String("token", t.ID), zap.String("map", mapID))
		},
	}
}

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.File)
	defer func() { _ = log.Sync() }()

	state := newLocalState(cfg, log)
	surface := mapview.NewMapSurface(log, state.snapshot, state.callbacks())
	defer surface.Teardown()

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Window.VSync)
	if err := ebiten.RunGame(surface); err != nil {
		log.Fatal("game loop exited", zap.Error(err))
	}
}
