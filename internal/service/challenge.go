package service

import (
	"errors"

	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/logging"
	"github.com/ericogr/pet-arena/internal/storage"
)

// CreateChallenge opens a battle in the Challenged state and reserves
// the challenge bond from the challenger.
func (a *Arena) CreateChallenge(challengerUUID string, petID, targetPetID uint) (*game.Battle, error) {
	var created *game.Battle
	err := a.repo.InTransaction(func(repo storage.Repository) error {
		params, err := repo.GetParameters()
		if err != nil {
			return err
		}

		pet1, err := repo.GetPetByID(petID)
		if err != nil {
			return ErrPetNotFound
		}
		pet2, err := repo.GetPetByID(targetPetID)
		if err != nil {
			return ErrPetNotFound
		}
		if pet1.OwnerUUID != challengerUUID {
			return ErrNotPetOwner
		}
		if pet1.ID == pet2.ID || pet2.OwnerUUID == challengerUUID {
			return ErrSelfChallenge
		}

		active, err := repo.CountActiveBattlesByOwner(challengerUUID)
		if err != nil {
			return err
		}
		if active >= params.MaxActiveBattlesPerAccount {
			return ErrTooManyActiveBattles
		}
		for _, id := range []uint{pet1.ID, pet2.ID} {
			entry, err := repo.GetPetActiveBattle(id)
			if err != nil {
				return err
			}
			if entry != nil {
				return ErrPetAlreadyInBattle
			}
			queued, err := repo.GetQueueEntry(id)
			if err != nil {
				return err
			}
			if queued != nil {
				return ErrPetAlreadyQueued
			}
		}

		if err := repo.Reserve(challengerUUID, params.ChallengeBondAmount); err != nil {
			if errors.Is(err, storage.ErrInsufficientBalance) {
				return ErrInsufficientBalance
			}
			return err
		}

		b := &game.Battle{
			Pet1ID:         pet1.ID,
			Pet2ID:         pet2.ID,
			Pet1OwnerUUID:  pet1.OwnerUUID,
			Pet2OwnerUUID:  pet2.OwnerUUID,
			Status:         game.StatusChallenged,
			Pet1Health:     initialHealth(pet1),
			Pet2Health:     initialHealth(pet2),
			Pet1Energy:     params.InitialEnergy,
			Pet2Energy:     params.InitialEnergy,
			CreatedAtBlock: a.clock.Height(),
			BondAmount:     params.ChallengeBondAmount,
		}
		if err := repo.CreateBattle(b); err != nil {
			return err
		}
		if err := repo.ClaimPetBattle(pet1.ID, b.ID); err != nil {
			return ErrPetAlreadyInBattle
		}
		if err := repo.ClaimPetBattle(pet2.ID, b.ID); err != nil {
			return ErrPetAlreadyInBattle
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("challenge created", logging.Fields{
		constants.LogFieldBattleID: created.ID,
		constants.LogFieldAccount:  challengerUUID,
		constants.LogFieldPetID:    petID,
	})
	return created, nil
}

// AcceptChallenge activates a challenged battle; pet1 (the challenger)
// moves first. Expiry is checked lazily here in addition to the
// periodic sweep.
func (a *Arena) AcceptChallenge(acceptorUUID string, battleID uint) (*game.Battle, error) {
	var accepted *game.Battle
	err := a.repo.InTransaction(func(repo storage.Repository) error {
		b, err := a.getBattle(repo, battleID)
		if err != nil {
			return err
		}
		if b.Status != game.StatusChallenged {
			return ErrInvalidBattleStatus
		}
		if b.Pet2OwnerUUID != acceptorUUID {
			return ErrNotBattleParticipant
		}
		params, err := repo.GetParameters()
		if err != nil {
			return err
		}
		// Lazy expiry check; the periodic sweep performs the actual
		// transition and bond release.
		if a.clock.Height() > b.CreatedAtBlock+params.ChallengeExpiryBlocks {
			return ErrBattleExpired
		}
		b.Status = game.StatusActive
		b.CurrentTurn = 1
		if err := repo.UpdateBattle(b); err != nil {
			return err
		}
		accepted = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("challenge accepted", logging.Fields{
		constants.LogFieldBattleID: accepted.ID,
		constants.LogFieldAccount:  acceptorUUID,
	})
	return accepted, nil
}

// DeclineChallenge lets the target owner refuse a pending challenge.
// The battle moves to Expired and the challenger's bond is returned.
func (a *Arena) DeclineChallenge(declinerUUID string, battleID uint) error {
	err := a.repo.InTransaction(func(repo storage.Repository) error {
		b, err := a.getBattle(repo, battleID)
		if err != nil {
			return err
		}
		if b.Status != game.StatusChallenged {
			return ErrInvalidBattleStatus
		}
		if b.Pet2OwnerUUID != declinerUUID {
			return ErrNotBattleParticipant
		}
		return expireChallenge(repo, b)
	})
	if err != nil {
		return err
	}
	logging.Info("challenge declined", logging.Fields{
		constants.LogFieldBattleID: battleID,
		constants.LogFieldAccount:  declinerUUID,
	})
	return nil
}

// expireChallenge transitions a Challenged battle to Expired, releases
// the challenger's bond and frees both pets.
func expireChallenge(repo storage.Repository, b *game.Battle) error {
	b.Status = game.StatusExpired
	if b.BondAmount > 0 && !b.BondReleased {
		if err := repo.Unreserve(b.Pet1OwnerUUID, b.BondAmount); err != nil {
			return err
		}
		b.BondReleased = true
	}
	if err := repo.ReleasePetBattle(b.Pet1ID, b.Pet2ID); err != nil {
		return err
	}
	return repo.UpdateBattle(b)
}
