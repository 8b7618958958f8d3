package mapview

import (
	"fmt"
	"image/color"
	"strings"
)

const (
	tokenHitMargin   = 2.0 // pixels shaved off the hit radius
	tokenLabelMaxLen = 7   // visible characters before truncation for players
)

// TokenSprite is the cached visual node for one token. Everything visual is
// resolved at build time; Draw just replays it. The speaking ring is the one
// exception: it toggles without a rebuild.
type TokenSprite struct {
	tokenID  string
	px, py   float64 // map-local top-left pixel position
	w, h     float64 // footprint in pixels
	body     color.RGBA
	label    string
	hpFrac   float64
	showHP   bool
	selected bool
	active   bool
	speaking bool
}

// buildTokenSprite resolves a token into its sprite for the given viewer.
func buildTokenSprite(t MapToken, gs GridSettings, role ViewerRole, selected, activeTurn, showHPBar bool) *TokenSprite {
	sx, sy := footprint(t)
	px, py := gs.CellToPixel(Cell{X: t.GridX, Y: t.GridY})
	s := &TokenSprite{
		tokenID:  t.ID,
		px:       px,
		py:       py,
		w:        float64(sx * gs.CellSize),
		h:        float64(sy * gs.CellSize),
		body:     t.Color,
		label:    displayLabel(t, role),
		selected: selected,
		active:   activeTurn,
		showHP:   showHPBar && t.MaxHP > 0,
	}
	if t.MaxHP > 0 {
		s.hpFrac = clamp01(float64(t.CurrentHP) / float64(t.MaxHP))
	}
	return s
}

func footprint(t MapToken) (int, int) {
	sx, sy := t.SizeX, t.SizeY
	if sx < 1 {
		sx = 1
	}
	if sy < 1 {
		sy = 1
	}
	return sx, sy
}

// displayLabel applies the role-based name rules: the host always sees the
// full name; players see the first letter of hidden names, and long visible
// names get cut to seven characters plus an ellipsis.
func displayLabel(t MapToken, role ViewerRole) string {
	if role == RoleHost {
		return t.Label
	}
	r := []rune(t.Label)
	if !t.NameVisible {
		if len(r) == 0 {
			return ""
		}
		return string(r[0])
	}
	if len(r) > tokenLabelMaxLen+1 {
		return string(r[:tokenLabelMaxLen]) + "…"
	}
	return t.Label
}

// SetSpeaking toggles the speaking ring. Setting the same state twice is a
// no-op, so the ring can never double up.
func (s *TokenSprite) SetSpeaking(on bool) {
	s.speaking = on
}

// Center returns the map-local pixel center of the sprite.
func (s *TokenSprite) Center() (float64, float64) {
	return s.px + s.w/2, s.py + s.h/2
}

// hitRadius is the circular hit region inscribed in the footprint.
func (s *TokenSprite) hitRadius() float64 {
	r := minf(s.w, s.h)/2 - tokenHitMargin
	if r < 1 {
		r = 1
	}
	return r
}

// ContainsMapPoint reports whether a map-local pixel point hits the sprite.
func (s *TokenSprite) ContainsMapPoint(mx, my float64) bool {
	cx, cy := s.Center()
	dx := mx - cx
	dy := my - cy
	r := s.hitRadius()
	return dx*dx+dy*dy <= r*r
}

// Draw renders the sprite onto the token layer.
func (s *TokenSprite) Draw(c Canvas) {
	cx, cy := s.Center()
	r := minf(s.w, s.h)/2 - 3

	if s.active {
		glow := color.RGBA{R: 255, G: 215, B: 80, A: 90}
		c.FillCircle(float32(cx), float32(cy), float32(r+6), glow)
	}
	c.FillCircle(float32(cx), float32(cy), float32(r), s.body)
	border := color.RGBA{R: 20, G: 20, B: 24, A: 255}
	if s.selected {
		border = color.RGBA{R: 255, G: 240, B: 60, A: 255}
	}
	c.StrokeCircle(float32(cx), float32(cy), float32(r), 2.0, border)

	if s.speaking {
		c.StrokeCircle(float32(cx), float32(cy), float32(r+4), 1.5,
			color.RGBA{R: 80, G: 220, B: 120, A: 220})
	}

	if s.showHP {
		barW := float32(s.w) - 8
		barX := float32(s.px) + 4
		barY := float32(s.py) - 7
		c.FillRect(barX, barY, barW, 4, color.RGBA{R: 30, G: 30, B: 30, A: 220})
		fill := color.RGBA{R: 60, G: 200, B: 80, A: 255}
		if s.hpFrac < 0.35 {
			fill = color.RGBA{R: 210, G: 60, B: 50, A: 255}
		} else if s.hpFrac < 0.7 {
			fill = color.RGBA{R: 220, G: 180, B: 50, A: 255}
		}
		c.FillRect(barX, barY, barW*float32(s.hpFrac), 4, fill)
	}

	if s.label != "" {
		lx := float32(cx) - float32(len(s.label))*3.5
		ly := float32(s.py + s.h + 2)
		c.Label(s.label, lx, ly, color.RGBA{R: 235, G: 235, B: 235, A: 255})
	}
}

// tokenEntry pairs a cached sprite with the key it was built from.
type tokenEntry struct {
	sprite *TokenSprite
	key    string
}

// TokenCache keeps one sprite per token and rebuilds only when a visually
// relevant field changes.
type TokenCache struct {
	entries map[string]*tokenEntry
}

func NewTokenCache() *TokenCache {
	return &TokenCache{entries: make(map[string]*tokenEntry)}
}

// SyncStats reports what one Sync pass did, mainly for tests and debugging.
type SyncStats struct {
	Rebuilt int
	Kept    int
	Removed int
}

// tokenKey folds every visually relevant field into a comparison key.
func tokenKey(t MapToken, gs GridSettings, role ViewerRole, selected, activeTurn, showHPBar bool) string {
	return fmt.Sprintf("%d,%d|%dx%d|%s|%02x%02x%02x%02x|%d/%d|%s|%v%v%v|%d@%d,%d",
		t.GridX, t.GridY, t.SizeX, t.SizeY,
		displayLabel(t, role),
		t.Color.R, t.Color.G, t.Color.B, t.Color.A,
		t.CurrentHP, t.MaxHP,
		strings.Join(t.Conditions, ";"),
		selected, activeTurn, showHPBar,
		gs.CellSize, gs.OffsetX, gs.OffsetY)
}

// visibleTo filters tokens for the viewer: the host sees everything, players
// only what is explicitly flagged for them.
func visibleTo(t MapToken, role ViewerRole) bool {
	return role == RoleHost || t.VisibleToPlayers
}

// Sync reconciles the cache against the authoritative token list. Unchanged
// tokens keep their sprite untouched; changed ones are rebuilt; tokens gone
// from the list (or hidden from this viewer) are dropped.
func (tc *TokenCache) Sync(tokens []MapToken, gs GridSettings, role ViewerRole, selectedID, activeEntityID string, showHPBar bool) SyncStats {
	var stats SyncStats
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if !visibleTo(t, role) {
			continue
		}
		seen[t.ID] = struct{}{}
		selected := t.ID == selectedID
		active := activeEntityID != "" && t.EntityID == activeEntityID
		key := tokenKey(t, gs, role, selected, active, showHPBar)
		if e, ok := tc.entries[t.ID]; ok && e.key == key {
			stats.Kept++
			continue
		}
		tc.entries[t.ID] = &tokenEntry{
			sprite: buildTokenSprite(t, gs, role, selected, active, showHPBar),
			key:    key,
		}
		stats.Rebuilt++
	}
	for id := range tc.entries {
		if _, ok := seen[id]; !ok {
			delete(tc.entries, id)
			stats.Removed++
		}
	}
	return stats
}

// Sprite returns the cached sprite for a token id, or nil.
func (tc *TokenCache) Sprite(id string) *TokenSprite {
	if e, ok := tc.entries[id]; ok {
		return e.sprite
	}
	return nil
}

// Len reports how many sprites are cached.
func (tc *TokenCache) Len() int {
	return len(tc.entries)
}

// HitTest returns the id of the topmost token whose hit circle contains the
// map-local point, preferring the later sprite in draw order.
func (tc *TokenCache) HitTest(tokens []MapToken, mx, my float64) (string, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if s := tc.Sprite(tokens[i].ID); s != nil && s.ContainsMapPoint(mx, my) {
			return tokens[i].ID, true
		}
	}
	return "", false
}

// Draw renders every cached sprite in token-list order and applies speaking
// state without triggering rebuilds.
func (tc *TokenCache) Draw(c Canvas, tokens []MapToken, speaking map[string]struct{}) {
	c.Clear()
	for _, t := range tokens {
		s := tc.Sprite(t.ID)
		if s == nil {
			continue
		}
		_, on := speaking[t.ID]
		s.SetSpeaking(on)
		s.Draw(c)
	}
}
