package engine

import (
	"github.com/ericogr/pet-arena/internal/game"
)

// SideStats is the slice of pet and battle state the resolver needs for
// one side of a move.
type SideStats struct {
	Strength int
	Element  game.Element
	// LastMove is the side's previous move; a prior Dodge reduces the
	// hit chance of incoming attacks by dodgeHitPenalty points.
	LastMove game.BattleMove
}

const (
	specialAttackHitChance = 70
	dodgeHitPenalty        = 30
	fullHitChance          = 100
)

// ResolveMove computes the outcome of one basic move. It is a pure
// function of its inputs: identical stats, move and draw always produce
// the identical outcome. draw must be in [0,100). Ultimate and
// status-effect actions are handled by the state machine, not here.
func ResolveMove(mover, opponent SideStats, move game.BattleMove, draw int, params *game.BattleParameters) game.MoveResult {
	switch move {
	case game.MoveAttack:
		if missed(draw, fullHitChance, opponent.LastMove) {
			return game.MoveResult{Kind: game.ResultMiss}
		}
		dmg := 5 + mover.Strength/10
		if draw < params.CriticalHitChance {
			return game.MoveResult{Kind: game.ResultCritical, Amount: dmg * params.CriticalHitMultiplierPercent / 100}
		}
		return game.MoveResult{Kind: game.ResultHit, Amount: dmg}

	case game.MoveDefend:
		return game.MoveResult{Kind: game.ResultHeal, Amount: 5 + draw%6}

	case game.MoveSpecialAttack:
		if missed(draw, specialAttackHitChance, opponent.LastMove) {
			return game.MoveResult{Kind: game.ResultMiss}
		}
		return game.MoveResult{Kind: game.ResultHit, Amount: 15 + mover.Strength/5}

	case game.MoveHeal:
		return game.MoveResult{Kind: game.ResultHeal, Amount: 10 + draw%11}

	case game.MoveDodge:
		return game.MoveResult{Kind: game.ResultHeal, Amount: 3 + draw%4}

	case game.MoveElementalAttack:
		if missed(draw, fullHitChance, opponent.LastMove) {
			return game.MoveResult{Kind: game.ResultMiss}
		}
		dmg := 10 + mover.Strength/8
		if HasElementalAdvantage(mover.Element, opponent.Element) {
			dmg = dmg * params.ElementalAdvantagePercent / 100
		}
		return game.MoveResult{Kind: game.ResultHit, Amount: dmg}
	}

	return game.MoveResult{Kind: game.ResultMiss}
}

// missed applies the base hit chance for the move plus the 30-point
// reduction granted by the opponent's previous Dodge.
func missed(draw, baseChance int, opponentLast game.BattleMove) bool {
	chance := baseChance
	if opponentLast == game.MoveDodge {
		chance -= dodgeHitPenalty
	}
	return draw >= chance
}

// UltimateDamage computes the fixed-formula ultimate move damage.
func UltimateDamage(strength, intelligence int) int {
	return 20 + strength/5 + intelligence/10
}

// ApplyDamage subtracts dmg from health with a floor of zero.
func ApplyDamage(health, dmg int) int {
	health -= dmg
	if health < 0 {
		health = 0
	}
	return health
}

// ApplyHeal adds amount to health, capped at MaxHealth.
func ApplyHeal(health, amount int) int {
	health += amount
	if health > game.MaxHealth {
		health = game.MaxHealth
	}
	return health
}
