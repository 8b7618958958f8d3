package mapview

import "image/color"

// ViewerRole gates what the local viewer may see and drag.
type ViewerRole uint8

const (
	RoleHost ViewerRole = iota
	RolePlayer
)

// EntityType classifies the game entity behind a token.
type EntityType uint8

const (
	EntityPlayer EntityType = iota
	EntityEnemy
	EntityNPC
)

// MapToken is one placed marker. Owned by the host game state; this package
// only renders it and proposes moves.
type MapToken struct {
	ID               string
	EntityID         string
	EntityType       EntityType
	GridX            int
	GridY            int
	SizeX            int // footprint in cells, minimum 1
	SizeY            int
	Label            string
	Color            color.RGBA
	CurrentHP        int
	MaxHP            int
	Conditions       []string
	VisibleToPlayers bool
	NameVisible      bool
}

// FogOfWarData is the authoritative reveal state, read each pass.
type FogOfWarData struct {
	Enabled           bool
	RevealedCells     map[Cell]struct{}
	ExploredCells     map[Cell]struct{}
	DynamicFogEnabled bool
}

// LightSource is a point light for the lighting overlay. Radius in cells.
type LightSource struct {
	Cell   Cell
	Radius float64
	Color  color.RGBA
}

// WeatherKind selects the ambient weather pass.
type WeatherKind uint8

const (
	WeatherNone WeatherKind = iota
	WeatherRain
	WeatherSnow
)

// MovementHint asks the surface to render the reachable range for a token
// with this much movement budget left, in cells.
type MovementHint struct {
	Origin Cell
	Budget float64
}

// MapSnapshot is the full read-only map state consumed on each render pass.
// Nothing here is mutated by the map surface.
type MapSnapshot struct {
	MapID          string
	Grid           GridSettings
	BackgroundPath string
	Tokens         []MapToken
	Fog            FogOfWarData
	Walls          []Wall
	Terrain        []TerrainCell
	Lights         []LightSource
	Weather        WeatherKind
	Vision         []VisionSource

	ActiveEntityID string // gets the active-turn glow
	SpeakingIDs    map[string]struct{}
	Movement       *MovementHint // movement range preview for the active token

	ViewerRole ViewerRole
	ViewerID   string // entity id owned by the local viewer
}

// Callbacks carries every outbound intent the surface can emit. The surface
// never applies a change itself; the host authority accepts or rejects each
// intent and the result arrives back through the next snapshot.
type Callbacks struct {
	OnTokenMove        func(tokenID string, gridX, gridY int)
	OnTokenSelect      func(tokenID string) // empty id means deselect
	OnCellClick        func(gridX, gridY int)
	OnWallPlace        func(x1, y1, x2, y2 float64)
	OnDoorToggle       func(wallID string)
	OnFogReveal        func(cells []Cell) // painted stroke, emitted on release
	OnFogHide          func(cells []Cell)
	OnTokenContextMenu func(screenX, screenY int, token MapToken, mapID string)
}
