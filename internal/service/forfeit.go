package service

import (
	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/logging"
	"github.com/ericogr/pet-arena/internal/storage"
)

// ForfeitBattle concedes an active battle. The opposite side wins, the
// forfeit penalty is slashed from the forfeiter's reserved bond (when
// one exists) and the battle ends Forfeited rather than Completed.
func (a *Arena) ForfeitBattle(forfeiterUUID string, battleID uint) (*game.Battle, error) {
	var updated *game.Battle
	err := a.repo.InTransaction(func(repo storage.Repository) error {
		b, err := a.getBattle(repo, battleID)
		if err != nil {
			return err
		}
		if b.Status != game.StatusActive {
			return ErrInvalidBattleStatus
		}
		side := b.SideOf(forfeiterUUID)
		if side == 0 {
			return ErrNotBattleParticipant
		}
		params, err := repo.GetParameters()
		if err != nil {
			return err
		}

		// Only the challenger carries a bond; matchmade battles and
		// forfeits by the accepting side slash nothing.
		if side == 1 && b.BondAmount > 0 {
			penalty := params.ForfeitPenalty
			if remaining := b.BondAmount - b.BondSlashed; penalty > remaining {
				penalty = remaining
			}
			if penalty > 0 {
				if err := repo.SlashReserved(b.Pet1OwnerUUID, penalty); err != nil {
					return err
				}
				b.BondSlashed += penalty
			}
		}

		result := game.ResultPet1Win
		if side == 1 {
			result = game.ResultPet2Win
		}
		if err := a.finalize(repo, b, params, &result); err != nil {
			return err
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
	logging.Info("battle forfeited", logging.Fields{
		constants.LogFieldBattleID: updated.ID,
		constants.LogFieldAccount:  forfeiterUUID,
	})
	return updated, nil
}
