package service

import (
	"errors"
	"sync"

	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/rng"
	"github.com/ericogr/pet-arena/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// BlockClock exposes the current chain height to battle operations.
type BlockClock interface {
	Height() uint64
}

// Arena owns the battle state machine, the matchmaking queue and the
// reward/stats ledger. Queue mutations are serialized by mmMu so no two
// battles can concurrently claim the same pet.
type Arena struct {
	repo  storage.Repository
	rand  rng.Source
	clock BlockClock

	mmMu       sync.Mutex
	sweepGroup singleflight.Group
}

// NewArena wires the service with its repository, randomness source and
// block clock.
func NewArena(repo storage.Repository, rand rng.Source, clock BlockClock) *Arena {
	return &Arena{repo: repo, rand: rand, clock: clock}
}

// RegisterAccount creates an account with a fresh UUID and the starting
// balance.
func (a *Arena) RegisterAccount(name string, startingBalance int64) (*game.Account, error) {
	acct := &game.Account{
		UUID:    uuid.NewString(),
		Name:    name,
		Balance: startingBalance,
	}
	if err := a.repo.CreateAccount(acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// ChainHeight reports the current block height.
func (a *Arena) ChainHeight() uint64 {
	return a.clock.Height()
}

// GetAccount fetches an account by UUID.
func (a *Arena) GetAccount(accountUUID string) (*game.Account, error) {
	acct, err := a.repo.GetAccountByUUID(accountUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return acct, nil
}

// MintPet creates a pet for the given owner. Attribute values outside
// 1..100 are rejected; a zero vitality falls back to the default.
func (a *Arena) MintPet(ownerUUID, name string, element game.Element, vitality, strength, intelligence int) (*game.Pet, error) {
	if !element.Valid() {
		return nil, ErrInvalidPet
	}
	if vitality == 0 {
		vitality = game.DefaultVitality
	}
	for _, v := range []int{vitality, strength, intelligence} {
		if v < 1 || v > 100 {
			return nil, ErrInvalidPet
		}
	}
	p := &game.Pet{
		OwnerUUID:    ownerUUID,
		Name:         name,
		Element:      element,
		Vitality:     vitality,
		Strength:     strength,
		Intelligence: intelligence,
	}
	if err := a.repo.CreatePet(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPet fetches a pet by id.
func (a *Arena) GetPet(petID uint) (*game.Pet, error) {
	p, err := a.repo.GetPetByID(petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListPets returns the owner's pets.
func (a *Arena) ListPets(ownerUUID string) ([]game.Pet, error) {
	return a.repo.ListPetsByOwner(ownerUUID)
}

func (a *Arena) getBattle(repo storage.Repository, battleID uint) (*game.Battle, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return b, nil
}

// initialHealth derives a side's starting health from the pet's
// vitality, with a fallback when the attribute is absent.
func initialHealth(p *game.Pet) int {
	if p.Vitality <= 0 {
		return game.DefaultVitality
	}
	return p.Vitality
}
