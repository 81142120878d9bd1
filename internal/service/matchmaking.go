package service

import (
	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/logging"
	"github.com/ericogr/pet-arena/internal/storage"
)

// MatchmakingSweepInterval is the block spacing of the periodic sweep,
// and maxSweepPairings bounds its per-tick work.
const (
	MatchmakingSweepInterval = 10
	maxSweepPairings         = 10
)

// EnterMatchmaking queues a pet and immediately attempts a pairing.
// Returns the created battle when a pairing committed, nil otherwise.
func (a *Arena) EnterMatchmaking(ownerUUID string, petID uint) (*game.Battle, error) {
	a.mmMu.Lock()
	defer a.mmMu.Unlock()

	var paired *game.Battle
	err := a.repo.InTransaction(func(repo storage.Repository) error {
		pet, err := repo.GetPetByID(petID)
		if err != nil {
			return ErrPetNotFound
		}
		if pet.OwnerUUID != ownerUUID {
			return ErrNotPetOwner
		}
		active, err := repo.GetPetActiveBattle(petID)
		if err != nil {
			return err
		}
		if active != nil {
			return ErrPetAlreadyInBattle
		}
		existing, err := repo.GetQueueEntry(petID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrPetAlreadyQueued
		}

		stats, err := repo.GetOrInitStats(petID)
		if err != nil {
			return err
		}
		entry := &game.MatchmakingQueueEntry{
			PetID:        petID,
			OwnerUUID:    ownerUUID,
			Rating:       stats.Rating,
			EnqueueBlock: a.clock.Height(),
		}
		if err := repo.EnqueuePet(entry); err != nil {
			return err
		}

		paired, err = a.tryMatchmaking(repo, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	if paired != nil {
		logging.Info("matchmade battle created", logging.Fields{
			constants.LogFieldBattleID: paired.ID,
			constants.LogFieldPetID:    petID,
		})
	}
	return paired, nil
}

// LeaveMatchmaking removes the pet's queue entry.
func (a *Arena) LeaveMatchmaking(ownerUUID string, petID uint) error {
	a.mmMu.Lock()
	defer a.mmMu.Unlock()

	return a.repo.InTransaction(func(repo storage.Repository) error {
		entry, err := repo.GetQueueEntry(petID)
		if err != nil {
			return err
		}
		if entry == nil {
			return ErrPetNotQueued
		}
		if entry.OwnerUUID != ownerUUID {
			return ErrNotPetOwner
		}
		return repo.DequeuePet(petID)
	})
}

// tryMatchmaking scans the whole queue for the opponent with the
// smallest absolute rating difference, skipping the pet itself and any
// same-owner pet. A pairing commits only when the best difference is
// within the configured gap; ties go to the first entry found.
func (a *Arena) tryMatchmaking(repo storage.Repository, entry *game.MatchmakingQueueEntry) (*game.Battle, error) {
	params, err := repo.GetParameters()
	if err != nil {
		return nil, err
	}
	queue, err := repo.ListQueue()
	if err != nil {
		return nil, err
	}

	var best *game.MatchmakingQueueEntry
	bestDiff := 0
	for i := range queue {
		cand := &queue[i]
		if cand.PetID == entry.PetID || cand.OwnerUUID == entry.OwnerUUID {
			continue
		}
		// Purge entries left behind by a pet that entered a battle
		// through another path; pairing one would fail the claim.
		active, err := repo.GetPetActiveBattle(cand.PetID)
		if err != nil {
			return nil, err
		}
		if active != nil {
			if err := repo.DequeuePet(cand.PetID); err != nil {
				return nil, err
			}
			continue
		}
		diff := entry.Rating - cand.Rating
		if diff < 0 {
			diff = -diff
		}
		if best == nil || diff < bestDiff {
			best = cand
			bestDiff = diff
		}
	}
	if best == nil || bestDiff > params.MatchmakingMaxRatingGap {
		return nil, nil
	}

	pet1, err := repo.GetPetByID(entry.PetID)
	if err != nil {
		return nil, ErrPetNotFound
	}
	pet2, err := repo.GetPetByID(best.PetID)
	if err != nil {
		return nil, ErrPetNotFound
	}

	avg := (entry.Rating + best.Rating) / 2
	b := &game.Battle{
		Pet1ID:         pet1.ID,
		Pet2ID:         pet2.ID,
		Pet1OwnerUUID:  pet1.OwnerUUID,
		Pet2OwnerUUID:  pet2.OwnerUUID,
		Status:         game.StatusActive,
		CurrentTurn:    1,
		Pet1Health:     initialHealth(pet1),
		Pet2Health:     initialHealth(pet2),
		Pet1Energy:     params.InitialEnergy,
		Pet2Energy:     params.InitialEnergy,
		CreatedAtBlock: a.clock.Height(),
		MatchRating:    &avg,
	}
	if err := repo.CreateBattle(b); err != nil {
		return nil, err
	}
	if err := repo.DequeuePet(entry.PetID); err != nil {
		return nil, err
	}
	if err := repo.DequeuePet(best.PetID); err != nil {
		return nil, err
	}
	if err := repo.ClaimPetBattle(pet1.ID, b.ID); err != nil {
		return nil, ErrPetAlreadyInBattle
	}
	if err := repo.ClaimPetBattle(pet2.ID, b.ID); err != nil {
		return nil, ErrPetAlreadyInBattle
	}
	return b, nil
}

// sweepMatchmaking pairs up to maxSweepPairings of the oldest waiting
// entries. Errors for one pet's attempt are swallowed so one bad record
// cannot halt the sweep; overlapping sweeps collapse to one run.
func (a *Arena) sweepMatchmaking(height uint64) {
	a.sweepGroup.Do("matchmaking-sweep", func() (interface{}, error) {
		a.mmMu.Lock()
		defer a.mmMu.Unlock()

		entries, err := a.repo.ListQueueOldest(maxSweepPairings)
		if err != nil {
			logging.Error("matchmaking sweep failed to list queue", err, logging.Fields{constants.LogFieldBlock: height})
			return nil, nil
		}
		for i := range entries {
			entry := entries[i]
			err := a.repo.InTransaction(func(repo storage.Repository) error {
				// The entry may have been consumed by an earlier
				// pairing in this sweep.
				current, err := repo.GetQueueEntry(entry.PetID)
				if err != nil {
					return err
				}
				if current == nil {
					return nil
				}
				_, err = a.tryMatchmaking(repo, current)
				return err
			})
			if err != nil {
				logging.Error("matchmaking pairing failed", err, logging.Fields{
					constants.LogFieldPetID: entry.PetID,
					constants.LogFieldBlock: height,
				})
			}
		}
		return nil, nil
	})
}
