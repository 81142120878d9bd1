package engine

import (
	"github.com/ericogr/pet-arena/internal/game"
)

// EffectTick is the result of processing one side's status effects for
// one scheduled tick.
type EffectTick struct {
	Damage  int
	Expired []game.StatusEffectKind
}

// effectDamage is the fixed per-tick damage of each condition. Effects
// absent from the table deal no direct damage.
var effectDamage = map[game.StatusEffectKind]int{
	game.EffectBurn:   5,
	game.EffectPoison: 3,
}

// TickEffects decays every effect on the list by one turn, accumulates
// the tick damage, and drops effects whose counter reached zero.
// Strengthen and Shield currently only tick down; their combat
// modifiers are not applied anywhere.
// TODO: wire Strengthen/Shield damage and defense modifiers into the
// resolver once their multipliers are decided.
func TickEffects(effects game.StatusEffectList) (game.StatusEffectList, EffectTick) {
	var tick EffectTick
	remaining := make(game.StatusEffectList, 0, len(effects))
	for _, e := range effects {
		tick.Damage += effectDamage[e.Kind]
		e.RemainingTurns--
		if e.RemainingTurns <= 0 {
			tick.Expired = append(tick.Expired, e.Kind)
			continue
		}
		remaining = append(remaining, e)
	}
	return remaining, tick
}

// AddEffect appends a new condition, enforcing the per-side capacity.
// On capacity, ok is false and the list is returned unchanged.
func AddEffect(effects game.StatusEffectList, kind game.StatusEffectKind, turns int) (game.StatusEffectList, bool) {
	if len(effects) >= game.MaxStatusEffects {
		return effects, false
	}
	return append(effects, game.StatusEffect{Kind: kind, RemainingTurns: turns}), true
}

// BlockedByEffects reports whether an active Freeze or Stun prevents
// the side from using the ultimate move.
func BlockedByEffects(effects game.StatusEffectList) bool {
	for _, e := range effects {
		if (e.Kind == game.EffectFreeze || e.Kind == game.EffectStun) && e.RemainingTurns > 0 {
			return true
		}
	}
	return false
}
