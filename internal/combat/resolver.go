// Package combat provides the combat arithmetic shared by the melee, damage
// and item systems.
package combat

import (
	"github.com/samdwyer/deepdelve/internal/component"
)

// MeleeDamage returns power minus defense. A result below 1 means the blow
// has no effect.
func MeleeDamage(attacker, target component.CombatStats) int {
	return attacker.Power - target.Defense
}

// HealAmount returns how much hp a heal of amount actually restores without
// exceeding MaxHP. It is 0 for a combatant already at full health.
func HealAmount(stats component.CombatStats, amount int) int {
	if amount <= 0 {
		return 0
	}
	healed := min(stats.MaxHP, stats.HP+amount) - stats.HP
	return max(healed, 0)
}

// Heal applies a heal and returns the hp actually restored.
func Heal(stats *component.CombatStats, amount int) int {
	healed := HealAmount(*stats, amount)
	stats.HP += healed
	return healed
}

// Total sums accumulated hits.
func Total(amounts []int) int {
	total := 0
	for _, a := range amounts {
		total += a
	}
	return total
}

// ApplyDamage subtracts every accumulated hit from stats and returns the sum.
// HP is allowed to go below zero; the death scan handles it.
func ApplyDamage(stats *component.CombatStats, amounts []int) int {
	total := Total(amounts)
	stats.HP -= total
	return total
}

// IsAlive reports whether a combatant still has hp.
func IsAlive(stats component.CombatStats) bool {
	return stats.HP > 0
}

// Restore raises hp to at least half of MaxHP. It never lowers hp.
func Restore(stats *component.CombatStats) {
	stats.HP = max(stats.HP, stats.MaxHP/2)
}
