// Package gamedata holds the monster, item and player definitions compiled
// into the binary, and the weighted tables used to spawn them.
package gamedata

import "embed"

//go:embed monsters.json items.json player.json
var dataFS embed.FS
