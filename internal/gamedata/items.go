package gamedata

import "github.com/gdamore/tcell/v2"

// ItemDef defines an item loaded from JSON. Zero-valued effect fields mean
// the item lacks that effect.
//
//	{
//	  "id": "fireball_scroll",
//	  "name": "Fireball Scroll",
//	  "glyph": ")",
//	  "color": "#FFA500",
//	  "consumable": true,
//	  "damage": 20,
//	  "range": 6,
//	  "radius": 3,
//	  "spawnWeight": 1
//	}
type ItemDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Color       string `json:"color"`
	Consumable  bool   `json:"consumable"`
	Healing     int    `json:"healing,omitempty"`
	Damage      int    `json:"damage,omitempty"`
	Range       int    `json:"range,omitempty"`  // > 0 means the item needs a target
	Radius      int    `json:"radius,omitempty"` // > 0 means area of effect
	Confusion   int    `json:"confusion,omitempty"`
	SpawnWeight int    `json:"spawnWeight"` // 0 = never placed randomly
}

// GlyphRune returns the glyph as a rune for rendering.
func (i *ItemDef) GlyphRune() rune {
	return glyphRune(i.Glyph)
}

// TCellColor returns the color as a tcell.Color.
func (i *ItemDef) TCellColor() tcell.Color {
	return colorOr(i.Color, tcell.ColorWhite)
}

// IsRanged returns true if using the item requires picking a target tile.
func (i *ItemDef) IsRanged() bool {
	return i.Range > 0
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
