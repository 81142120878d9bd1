package service

import (
	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/logging"
	"github.com/ericogr/pet-arena/internal/storage"
)

// decideOutcome applies the single outcome rule used at normal
// completion, status-effect-induced completion and draw edge cases:
// both healths zero is a draw, otherwise the higher health wins, equal
// nonzero health is a draw.
func decideOutcome(b *game.Battle) game.BattleResult {
	switch {
	case b.Pet1Health == b.Pet2Health:
		return game.ResultDraw
	case b.Pet1Health > b.Pet2Health:
		return game.ResultPet1Win
	default:
		return game.ResultPet2Win
	}
}

// finalize irreversibly transitions the battle out of Active, awards
// experience and updates the stats ledger. The caller persists the
// battle afterwards. forced, when non-nil, overrides the health
// comparison (forfeits).
func (a *Arena) finalize(repo storage.Repository, b *game.Battle, params *game.BattleParameters, forced *game.BattleResult) error {
	result := decideOutcome(b)
	if forced != nil {
		result = *forced
		b.Status = game.StatusForfeited
	} else {
		b.Status = game.StatusCompleted
	}
	b.Result = &result
	b.CompletedAtBlock = a.clock.Height()

	if err := awardExperience(repo, b, params, result, forced != nil); err != nil {
		return err
	}
	if err := repo.ReleasePetBattle(b.Pet1ID, b.Pet2ID); err != nil {
		return err
	}
	if err := a.updateBattleStats(repo, b, params, result); err != nil {
		return err
	}

	logging.Info("battle finalized", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		"result":                   string(result),
		constants.LogFieldTurn:     b.CurrentTurn,
	})
	return nil
}

// awardExperience grants the winner the full reward and the loser (or
// both sides on a draw) half. Forfeits award the winner only.
func awardExperience(repo storage.Repository, b *game.Battle, params *game.BattleParameters, result game.BattleResult, forfeited bool) error {
	full := params.BaseExperienceReward
	half := full / 2
	switch result {
	case game.ResultPet1Win:
		if err := repo.AddExperience(b.Pet1ID, full); err != nil {
			return err
		}
		if !forfeited {
			return repo.AddExperience(b.Pet2ID, half)
		}
		return nil
	case game.ResultPet2Win:
		if err := repo.AddExperience(b.Pet2ID, full); err != nil {
			return err
		}
		if !forfeited {
			return repo.AddExperience(b.Pet1ID, half)
		}
		return nil
	default:
		if err := repo.AddExperience(b.Pet1ID, half); err != nil {
			return err
		}
		return repo.AddExperience(b.Pet2ID, half)
	}
}

// updateBattleStats increments win/loss/draw counters and, for
// matchmade battles, moves each pet's rating by the configured step
// (draws leave ratings unchanged). Ratings never drop below the floor.
func (a *Arena) updateBattleStats(repo storage.Repository, b *game.Battle, params *game.BattleParameters, result game.BattleResult) error {
	s1, err := repo.GetOrInitStats(b.Pet1ID)
	if err != nil {
		return err
	}
	s2, err := repo.GetOrInitStats(b.Pet2ID)
	if err != nil {
		return err
	}

	switch result {
	case game.ResultPet1Win:
		s1.Wins++
		s2.Losses++
	case game.ResultPet2Win:
		s2.Wins++
		s1.Losses++
	default:
		s1.Draws++
		s2.Draws++
	}

	if b.MatchRating != nil && result != game.ResultDraw {
		step := params.MatchmakingRatingChange
		winner, loser := s1, s2
		if result == game.ResultPet2Win {
			winner, loser = s2, s1
		}
		adjustRating(winner, step)
		adjustRating(loser, -step)
	}

	if err := repo.SaveStats(s1); err != nil {
		return err
	}
	return repo.SaveStats(s2)
}

func adjustRating(s *game.PetBattleStats, delta int) {
	old := s.Rating
	s.Rating += delta
	if s.Rating < game.RatingFloor {
		s.Rating = game.RatingFloor
	}
	if s.Rating != old {
		logging.Info("rating changed", logging.Fields{
			constants.LogFieldPetID:  s.PetID,
			constants.LogFieldRating: s.Rating,
			"previous":               old,
		})
	}
}
