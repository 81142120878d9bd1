package service

import (
	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/engine"
	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/logging"
	"github.com/ericogr/pet-arena/internal/storage"
)

// ProcessTick runs once per block, before player operations in the same
// interval: status effects for every active battle, expiry of stale
// challenges, then the matchmaking sweep on its interval. Each entity
// is processed continue-on-error so one bad record cannot halt a tick.
func (a *Arena) ProcessTick(height uint64) {
	a.tickStatusEffects(height)
	a.expireStaleChallenges(height)
	if height%MatchmakingSweepInterval == 0 {
		a.sweepMatchmaking(height)
	}
}

func (a *Arena) tickStatusEffects(height uint64) {
	battles, err := a.repo.ListActiveBattles()
	if err != nil {
		logging.Error("status effect tick failed to list battles", err, logging.Fields{constants.LogFieldBlock: height})
		return
	}
	for i := range battles {
		id := battles[i].ID
		err := a.repo.InTransaction(func(repo storage.Repository) error {
			b, err := repo.GetBattleByID(id)
			if err != nil {
				return err
			}
			if b.Status != game.StatusActive {
				return nil
			}
			if len(b.Pet1Effects) == 0 && len(b.Pet2Effects) == 0 {
				return nil
			}

			// Every present effect decays this tick, so the battle
			// must be persisted even when no damage landed.
			var tick1, tick2 engine.EffectTick
			b.Pet1Effects, tick1 = engine.TickEffects(b.Pet1Effects)
			b.Pet2Effects, tick2 = engine.TickEffects(b.Pet2Effects)

			b.Pet1Health = engine.ApplyDamage(b.Pet1Health, tick1.Damage)
			b.Pet2Health = engine.ApplyDamage(b.Pet2Health, tick2.Damage)
			logEffectExpiry(b.ID, b.Pet1ID, tick1.Expired)
			logEffectExpiry(b.ID, b.Pet2ID, tick2.Expired)

			if b.Pet1Health == 0 || b.Pet2Health == 0 {
				params, err := repo.GetParameters()
				if err != nil {
					return err
				}
				if err := a.finalize(repo, b, params, nil); err != nil {
					return err
				}
			}
			return repo.UpdateBattle(b)
		})
		if err != nil {
			logging.Error("status effect tick failed for battle", err, logging.Fields{
				constants.LogFieldBattleID: id,
				constants.LogFieldBlock:    height,
			})
		}
	}
}

func logEffectExpiry(battleID, petID uint, expired []game.StatusEffectKind) {
	for _, kind := range expired {
		logging.Info("status effect expired", logging.Fields{
			constants.LogFieldBattleID: battleID,
			constants.LogFieldPetID:    petID,
			constants.LogFieldEffect:   string(kind),
		})
	}
}

func (a *Arena) expireStaleChallenges(height uint64) {
	params, err := a.repo.GetParameters()
	if err != nil {
		logging.Error("expiry sweep failed to load parameters", err, logging.Fields{constants.LogFieldBlock: height})
		return
	}
	stale, err := a.repo.ListExpiredChallenges(height, params.ChallengeExpiryBlocks)
	if err != nil {
		logging.Error("expiry sweep failed to list challenges", err, logging.Fields{constants.LogFieldBlock: height})
		return
	}
	for i := range stale {
		id := stale[i].ID
		err := a.repo.InTransaction(func(repo storage.Repository) error {
			b, err := repo.GetBattleByID(id)
			if err != nil {
				return err
			}
			if b.Status != game.StatusChallenged {
				return nil
			}
			return expireChallenge(repo, b)
		})
		if err != nil {
			logging.Error("failed to expire challenge", err, logging.Fields{
				constants.LogFieldBattleID: id,
				constants.LogFieldBlock:    height,
			})
			continue
		}
		logging.Info("challenge expired", logging.Fields{
			constants.LogFieldBattleID: id,
			constants.LogFieldBlock:    height,
		})
	}
}
