package service

import (
	"errors"
	"testing"

	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/rng"
)

func TestGetBattleStats_DefaultsWhenNeverBattled(t *testing.T) {
	repo := newMockRepo()
	repo.addAccount("alice", 1000)
	p1 := repo.addPet("alice", game.ElementFire, 80, 50, 30)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	s, err := arena.GetBattleStats(p1.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Rating != game.DefaultRating || s.Wins != 0 {
		t.Fatalf("expected default record, got %+v", s)
	}
	if _, err := arena.GetBattleStats(p1.ID + 9); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
}

func TestIsBattleEligible(t *testing.T) {
	repo := newMockRepo()
	repo.addAccount("alice", 1000)
	p1 := repo.addPet("alice", game.ElementFire, 80, 50, 30)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	ok, err := arena.IsBattleEligible(p1.ID)
	if err != nil || !ok {
		t.Fatalf("fresh pet must be eligible, got %v %v", ok, err)
	}

	if _, err := arena.EnterMatchmaking("alice", p1.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, err = arena.IsBattleEligible(p1.ID)
	if err != nil || ok {
		t.Fatalf("queued pet must not be eligible, got %v %v", ok, err)
	}
}

func TestLeaderboard_OrdersByRating(t *testing.T) {
	repo := newMockRepo()
	repo.SaveStats(&game.PetBattleStats{PetID: 1, Rating: 900})
	repo.SaveStats(&game.PetBattleStats{PetID: 2, Rating: 1200})
	repo.SaveStats(&game.PetBattleStats{PetID: 3, Rating: 1000})
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	top, err := arena.Leaderboard(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 || top[0].PetID != 2 || top[1].PetID != 3 {
		t.Fatalf("expected pets 2,3 at the top, got %+v", top)
	}
}

func TestUpdateParameters_Validation(t *testing.T) {
	repo := newMockRepo()
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	bad := game.DefaultBattleParameters()
	bad.MaxTurns = 0
	if err := arena.UpdateParameters(&bad); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}

	bad = game.DefaultBattleParameters()
	bad.CriticalHitChance = 120
	if err := arena.UpdateParameters(&bad); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}

	good := game.DefaultBattleParameters()
	good.ChallengeBondAmount = 250
	if err := arena.UpdateParameters(&good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := repo.GetParameters()
	if stored.ChallengeBondAmount != 250 {
		t.Fatalf("expected updated bond 250, got %d", stored.ChallengeBondAmount)
	}
}

func TestMintPet_Validation(t *testing.T) {
	repo := newMockRepo()
	repo.addAccount("alice", 1000)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	if _, err := arena.MintPet("alice", "sparky", "plasma", 50, 50, 50); !errors.Is(err, ErrInvalidPet) {
		t.Fatalf("expected ErrInvalidPet for an unknown element, got %v", err)
	}
	if _, err := arena.MintPet("alice", "sparky", game.ElementFire, 50, 101, 50); !errors.Is(err, ErrInvalidPet) {
		t.Fatalf("expected ErrInvalidPet for out-of-range strength, got %v", err)
	}

	// Zero vitality falls back to the default.
	p, err := arena.MintPet("alice", "sparky", game.ElementFire, 0, 50, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Vitality != game.DefaultVitality {
		t.Fatalf("expected default vitality %d, got %d", game.DefaultVitality, p.Vitality)
	}
}

func TestRegisterAccount(t *testing.T) {
	repo := newMockRepo()
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	acct, err := arena.RegisterAccount("alice", 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.UUID == "" || acct.Balance != 1000 {
		t.Fatalf("expected fresh account with starting balance, got %+v", acct)
	}

	fetched, err := arena.GetAccount(acct.UUID)
	if err != nil || fetched.Name != "alice" {
		t.Fatalf("expected to fetch the account back, got %+v %v", fetched, err)
	}
	if _, err := arena.GetAccount("missing"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
