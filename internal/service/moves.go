package service

import (
	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/engine"
	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/logging"
	"github.com/ericogr/pet-arena/internal/storage"
)

const maxComboCounter = 100

// ExecuteMove resolves one of the six basic moves for the side whose
// turn it is, applies the outcome, records history and advances the
// turn. The battle finalizes when either health reaches zero or the
// turn count exceeds the maximum.
func (a *Arena) ExecuteMove(accountUUID string, battleID uint, move game.BattleMove) (*game.Battle, *game.MoveResult, error) {
	if !move.BasicMove() {
		return nil, nil, ErrInvalidMove
	}
	var (
		updated *game.Battle
		result  game.MoveResult
	)
	err := a.repo.InTransaction(func(repo storage.Repository) error {
		b, params, side, err := a.loadTurn(repo, accountUUID, battleID)
		if err != nil {
			return err
		}

		pet1, err := repo.GetPetByID(b.Pet1ID)
		if err != nil {
			return ErrPetNotFound
		}
		pet2, err := repo.GetPetByID(b.Pet2ID)
		if err != nil {
			return ErrPetNotFound
		}

		mover, opponent := pet1, pet2
		if side == 2 {
			mover, opponent = pet2, pet1
		}

		regenEnergy(b, side, params)

		draw := a.rand.Draw(a.clock.Height(), b.ID, b.CurrentTurn)
		result = engine.ResolveMove(
			engine.SideStats{Strength: mover.Strength, Element: mover.Element, LastMove: lastMove(b, side)},
			engine.SideStats{Strength: opponent.Strength, Element: opponent.Element, LastMove: lastMove(b, otherSide(side))},
			move, draw, params,
		)
		applyResult(b, side, result)

		if err := bumpCombo(b, side, move); err != nil {
			return err
		}
		setLastMove(b, side, move, result)

		if err := appendHistory(repo, b, mover.ID, move, &result); err != nil {
			return err
		}

		b.CurrentTurn++
		if battleOver(b, params) {
			if err := a.finalize(repo, b, params, nil); err != nil {
				return err
			}
		}
		if err := repo.UpdateBattle(b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	logging.Info("move executed", logging.Fields{
		constants.LogFieldBattleID: updated.ID,
		constants.LogFieldMove:     string(move),
		constants.LogFieldTurn:     updated.CurrentTurn,
	})
	return updated, &result, nil
}

// UseUltimateMove spends the ultimate energy cost and deals its fixed
// critical damage. Blocked while the caller's side is frozen or
// stunned.
func (a *Arena) UseUltimateMove(accountUUID string, battleID uint) (*game.Battle, *game.MoveResult, error) {
	var (
		updated *game.Battle
		result  game.MoveResult
	)
	err := a.repo.InTransaction(func(repo storage.Repository) error {
		b, params, side, err := a.loadTurn(repo, accountUUID, battleID)
		if err != nil {
			return err
		}
		if engine.BlockedByEffects(effectsOf(b, side)) {
			return ErrPreventedByStatusEffect
		}

		regenEnergy(b, side, params)
		if energyOf(b, side) < params.UltimateEnergyCost {
			return ErrInsufficientEnergy
		}
		addEnergy(b, side, -params.UltimateEnergyCost)

		mover, err := repo.GetPetByID(petIDOf(b, side))
		if err != nil {
			return ErrPetNotFound
		}
		result = game.MoveResult{
			Kind:   game.ResultCritical,
			Amount: engine.UltimateDamage(mover.Strength, mover.Intelligence),
		}
		applyResult(b, side, result)
		setLastMove(b, side, game.MoveUltimate, result)

		if err := appendHistory(repo, b, mover.ID, game.MoveUltimate, &result); err != nil {
			return err
		}

		b.CurrentTurn++
		if battleOver(b, params) {
			if err := a.finalize(repo, b, params, nil); err != nil {
				return err
			}
		}
		if err := repo.UpdateBattle(b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	logging.Info("ultimate move executed", logging.Fields{
		constants.LogFieldBattleID: updated.ID,
		constants.LogFieldTurn:     updated.CurrentTurn,
	})
	return updated, &result, nil
}

// ApplyStatusEffect inflicts a condition on the opponent with the
// configured default duration, consuming the caller's turn.
func (a *Arena) ApplyStatusEffect(accountUUID string, battleID uint, kind game.StatusEffectKind) (*game.Battle, error) {
	if !kind.Valid() {
		return nil, ErrInvalidStatusEffect
	}
	var updated *game.Battle
	err := a.repo.InTransaction(func(repo storage.Repository) error {
		b, params, side, err := a.loadTurn(repo, accountUUID, battleID)
		if err != nil {
			return err
		}

		target := otherSide(side)
		effects, ok := engine.AddEffect(effectsOf(b, target), kind, params.StatusEffectDefaultDuration)
		if !ok {
			return ErrTooManyStatusEffects
		}
		setEffects(b, target, effects)
		setLastMove(b, side, game.MoveStatusEffect, game.MoveResult{Kind: game.ResultHit})

		if err := appendHistory(repo, b, petIDOf(b, side), game.MoveStatusEffect, nil); err != nil {
			return err
		}

		b.CurrentTurn++
		if battleOver(b, params) {
			if err := a.finalize(repo, b, params, nil); err != nil {
				return err
			}
		}
		if err := repo.UpdateBattle(b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("status effect applied", logging.Fields{
		constants.LogFieldBattleID: updated.ID,
		constants.LogFieldEffect:   string(kind),
	})
	return updated, nil
}

// loadTurn fetches the battle and parameters and validates that the
// caller participates and that it is their turn.
func (a *Arena) loadTurn(repo storage.Repository, accountUUID string, battleID uint) (*game.Battle, *game.BattleParameters, int, error) {
	b, err := a.getBattle(repo, battleID)
	if err != nil {
		return nil, nil, 0, err
	}
	if b.Status != game.StatusActive {
		return nil, nil, 0, ErrInvalidBattleStatus
	}
	side := b.SideOf(accountUUID)
	if side == 0 {
		return nil, nil, 0, ErrNotBattleParticipant
	}
	if side != b.MoverSide() {
		return nil, nil, 0, ErrNotYourTurn
	}
	params, err := repo.GetParameters()
	if err != nil {
		return nil, nil, 0, err
	}
	return b, params, side, nil
}

// --- side accessors ----------------------------------------------------

func otherSide(side int) int {
	if side == 1 {
		return 2
	}
	return 1
}

func petIDOf(b *game.Battle, side int) uint {
	if side == 1 {
		return b.Pet1ID
	}
	return b.Pet2ID
}

func energyOf(b *game.Battle, side int) int {
	if side == 1 {
		return b.Pet1Energy
	}
	return b.Pet2Energy
}

func addEnergy(b *game.Battle, side, delta int) {
	e := energyOf(b, side) + delta
	if e > game.MaxEnergy {
		e = game.MaxEnergy
	}
	if e < 0 {
		e = 0
	}
	if side == 1 {
		b.Pet1Energy = e
	} else {
		b.Pet2Energy = e
	}
}

func regenEnergy(b *game.Battle, side int, params *game.BattleParameters) {
	addEnergy(b, side, params.EnergyPerTurn)
}

func effectsOf(b *game.Battle, side int) game.StatusEffectList {
	if side == 1 {
		return b.Pet1Effects
	}
	return b.Pet2Effects
}

func setEffects(b *game.Battle, side int, effects game.StatusEffectList) {
	if side == 1 {
		b.Pet1Effects = effects
	} else {
		b.Pet2Effects = effects
	}
}

func lastMove(b *game.Battle, side int) game.BattleMove {
	if side == 1 {
		return b.Pet1LastMove
	}
	return b.Pet2LastMove
}

func setLastMove(b *game.Battle, side int, move game.BattleMove, result game.MoveResult) {
	r := result
	if side == 1 {
		b.Pet1LastMove = move
		b.Pet1LastResult = &r
	} else {
		b.Pet2LastMove = move
		b.Pet2LastResult = &r
	}
}

// bumpCombo tracks consecutive uses of the same move per side. Nothing
// reads the counter yet; the cap is far beyond any reachable turn
// count.
func bumpCombo(b *game.Battle, side int, move game.BattleMove) error {
	combo := &b.Pet1Combo
	if side == 2 {
		combo = &b.Pet2Combo
	}
	if lastMove(b, side) != move {
		*combo = 1
		return nil
	}
	if *combo >= maxComboCounter {
		return ErrComboCounterMaximum
	}
	*combo++
	return nil
}

// applyResult applies a resolved move outcome: damage lands on the
// opponent, healing on the mover.
func applyResult(b *game.Battle, side int, result game.MoveResult) {
	switch result.Kind {
	case game.ResultHit, game.ResultCritical:
		target := otherSide(side)
		if target == 1 {
			b.Pet1Health = engine.ApplyDamage(b.Pet1Health, result.Amount)
		} else {
			b.Pet2Health = engine.ApplyDamage(b.Pet2Health, result.Amount)
		}
	case game.ResultHeal:
		if side == 1 {
			b.Pet1Health = engine.ApplyHeal(b.Pet1Health, result.Amount)
		} else {
			b.Pet2Health = engine.ApplyHeal(b.Pet2Health, result.Amount)
		}
	}
}

func battleOver(b *game.Battle, params *game.BattleParameters) bool {
	return b.Pet1Health == 0 || b.Pet2Health == 0 || b.CurrentTurn > params.MaxTurns
}

func appendHistory(repo storage.Repository, b *game.Battle, petID uint, move game.BattleMove, result *game.MoveResult) error {
	count, err := repo.CountHistory(b.ID)
	if err != nil {
		return err
	}
	if count >= game.MaxHistoryEntries {
		return ErrBattleHistoryTooLong
	}
	return repo.AppendHistory(&game.BattleMoveHistoryEntry{
		BattleID: b.ID,
		Turn:     b.CurrentTurn,
		PetID:    petID,
		Move:     move,
		Result:   result,
	})
}
