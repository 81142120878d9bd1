package service

import (
	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/storage"
)

// IsBattleEligible reports whether the pet can enter a new battle: it
// exists and is neither in an active battle nor waiting in the queue.
func (a *Arena) IsBattleEligible(petID uint) (bool, error) {
	if _, err := a.GetPet(petID); err != nil {
		return false, err
	}
	active, err := a.repo.GetPetActiveBattle(petID)
	if err != nil {
		return false, err
	}
	if active != nil {
		return false, nil
	}
	queued, err := a.repo.GetQueueEntry(petID)
	if err != nil {
		return false, err
	}
	return queued == nil, nil
}

// GetBattleStats returns the pet's aggregate record, zero-valued (with
// the default rating) when the pet has never battled.
func (a *Arena) GetBattleStats(petID uint) (*game.PetBattleStats, error) {
	if _, err := a.GetPet(petID); err != nil {
		return nil, err
	}
	s, err := a.repo.GetStats(petID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &game.PetBattleStats{PetID: petID, Rating: game.DefaultRating}, nil
	}
	return s, nil
}

// GetBattle returns a battle snapshot.
func (a *Arena) GetBattle(battleID uint) (*game.Battle, error) {
	return a.getBattle(a.repo, battleID)
}

// GetBattleOutcome returns the result of a finalized battle, nil while
// the battle is still pending or active.
func (a *Arena) GetBattleOutcome(battleID uint) (*game.BattleResult, error) {
	b, err := a.getBattle(a.repo, battleID)
	if err != nil {
		return nil, err
	}
	return b.Result, nil
}

// GetPetBattleHistory returns the pet's most recent move log entries.
func (a *Arena) GetPetBattleHistory(petID uint, limit int) ([]game.BattleMoveHistoryEntry, error) {
	if _, err := a.GetPet(petID); err != nil {
		return nil, err
	}
	return a.repo.GetHistoryByPet(petID, limit)
}

// Leaderboard returns the top rated pets.
func (a *Arena) Leaderboard(limit int) ([]game.PetBattleStats, error) {
	return a.repo.TopRatedPets(limit)
}

// GetParameters returns the tuning singleton.
func (a *Arena) GetParameters() (*game.BattleParameters, error) {
	return a.repo.GetParameters()
}

// UpdateParameters replaces the tuning singleton. Callers are expected
// to have passed the admin gate; basic sanity bounds are enforced here.
func (a *Arena) UpdateParameters(p *game.BattleParameters) error {
	if p.MaxTurns <= 0 || p.ChallengeExpiryBlocks == 0 ||
		p.CriticalHitChance < 0 || p.CriticalHitChance > 100 ||
		p.InitialEnergy < 0 || p.InitialEnergy > game.MaxEnergy ||
		p.UltimateEnergyCost <= 0 || p.MatchmakingMaxRatingGap <= 0 {
		return ErrInvalidParameters
	}
	return a.repo.InTransaction(func(repo storage.Repository) error {
		current, err := repo.GetParameters()
		if err != nil {
			return err
		}
		p.Model = current.Model
		return repo.SaveParameters(p)
	})
}
