package service

import (
	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/logging"
	"github.com/ericogr/pet-arena/internal/storage"
)

// ClaimRewards pays out a finalized battle exactly once: the winner
// claims the full reward; on a draw either participant may claim and
// each side is paid half. The remaining challenge bond is released to
// the challenger on first claim.
func (a *Arena) ClaimRewards(claimerUUID string, battleID uint) (int64, error) {
	var paid int64
	err := a.repo.InTransaction(func(repo storage.Repository) error {
		b, err := a.getBattle(repo, battleID)
		if err != nil {
			return err
		}
		if b.Status != game.StatusCompleted && b.Status != game.StatusForfeited {
			return ErrInvalidBattleStatus
		}
		if b.RewardClaimed {
			return ErrRewardsAlreadyClaimed
		}
		if !b.IsParticipant(claimerUUID) {
			return ErrNotBattleParticipant
		}
		params, err := repo.GetParameters()
		if err != nil {
			return err
		}

		turns := b.CurrentTurn
		if turns > params.MaxTurns {
			turns = params.MaxTurns
		}
		reward := params.BaseRewardAmount + int64(turns)

		winnerUUID := ""
		if b.Result != nil {
			switch *b.Result {
			case game.ResultPet1Win:
				winnerUUID = b.Pet1OwnerUUID
			case game.ResultPet2Win:
				winnerUUID = b.Pet2OwnerUUID
			}
		}

		if winnerUUID != "" {
			if claimerUUID != winnerUUID {
				return ErrNotBattleParticipant
			}
			if err := repo.Mint(winnerUUID, reward); err != nil {
				return err
			}
			paid = reward
		} else {
			// Draw: one claim pays both sides half each.
			half := reward / 2
			if err := repo.Mint(b.Pet1OwnerUUID, half); err != nil {
				return err
			}
			if err := repo.Mint(b.Pet2OwnerUUID, half); err != nil {
				return err
			}
			paid = half
		}

		if b.BondAmount > 0 && !b.BondReleased {
			if remaining := b.BondAmount - b.BondSlashed; remaining > 0 {
				if err := repo.Unreserve(b.Pet1OwnerUUID, remaining); err != nil {
					return err
				}
			}
			b.BondReleased = true
		}

		b.RewardClaimed = true
		return repo.UpdateBattle(b)
	})
	if err != nil {
		return 0, err
	}
	logging.Info("rewards claimed", logging.Fields{
		constants.LogFieldBattleID: battleID,
		constants.LogFieldAccount:  claimerUUID,
		"amount":                   paid,
	})
	return paid, nil
}
