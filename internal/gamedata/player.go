package gamedata

import "github.com/gdamore/tcell/v2"

// PlayerDef defines the player character loaded from JSON.
type PlayerDef struct {
	Name       string   `json:"name"`
	Glyph      string   `json:"glyph"`
	Color      string   `json:"color"`
	HP         int      `json:"hp"`
	Defense    int      `json:"defense"`
	Power      int      `json:"power"`
	Vision     int      `json:"vision"`
	Backpack   []string `json:"backpack"`   // Item IDs carried at start
	FloorItems []string `json:"floorItems"` // Item IDs placed at the spawn point
}

// GlyphRune returns the glyph as a rune for rendering.
func (p *PlayerDef) GlyphRune() rune {
	return glyphRune(p.Glyph)
}

// TCellColor returns the color as a tcell.Color.
func (p *PlayerDef) TCellColor() tcell.Color {
	return colorOr(p.Color, tcell.ColorYellow)
}

// LoadPlayer loads the player definition from the embedded player.json file.
func LoadPlayer() (PlayerDef, error) {
	return Load[PlayerDef]("player.json")
}
