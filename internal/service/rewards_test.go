package service

import (
	"errors"
	"testing"

	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/rng"
)

func finishBattle(b *game.Battle, result game.BattleResult, turn int) {
	b.Status = game.StatusCompleted
	b.Result = &result
	b.CurrentTurn = turn
}

func TestClaimRewards_WinnerOnly(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	finishBattle(b, game.ResultPet1Win, 7)
	repo.UpdateBattle(b)
	alice := repo.accounts["alice"]
	bob := repo.accounts["bob"]
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	// The loser cannot claim a decided battle.
	if _, err := arena.ClaimRewards("bob", b.ID); !errors.Is(err, ErrNotBattleParticipant) {
		t.Fatalf("expected ErrNotBattleParticipant, got %v", err)
	}

	paid, err := arena.ClaimRewards("alice", b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Base 100 plus one unit per turn fought.
	if paid != 107 {
		t.Fatalf("expected payout 107, got %d", paid)
	}
	if alice.Balance != 1107 {
		t.Fatalf("expected balance 1107, got %d", alice.Balance)
	}
	if bob.Balance != 1000 {
		t.Fatalf("loser must receive nothing, got %d", bob.Balance)
	}

	if _, err := arena.ClaimRewards("alice", b.ID); !errors.Is(err, ErrRewardsAlreadyClaimed) {
		t.Fatalf("expected ErrRewardsAlreadyClaimed, got %v", err)
	}
}

func TestClaimRewards_DrawPaysBothSides(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	result := game.ResultDraw
	b.Status = game.StatusCompleted
	b.Result = &result
	b.CurrentTurn = 4
	repo.UpdateBattle(b)
	alice := repo.accounts["alice"]
	bob := repo.accounts["bob"]
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	paid, err := arena.ClaimRewards("bob", b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (100 + 4) / 2 per side, one claim settles both.
	if paid != 52 {
		t.Fatalf("expected half payout 52, got %d", paid)
	}
	if alice.Balance != 1052 || bob.Balance != 1052 {
		t.Fatalf("expected both balances at 1052, got %d/%d", alice.Balance, bob.Balance)
	}
	if _, err := arena.ClaimRewards("alice", b.ID); !errors.Is(err, ErrRewardsAlreadyClaimed) {
		t.Fatalf("second claim must fail, got %v", err)
	}
}

func TestClaimRewards_ReleasesRemainingBond(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	finishBattle(b, game.ResultPet1Win, 3)
	b.Status = game.StatusForfeited
	b.BondAmount = 100
	b.BondSlashed = 50
	repo.UpdateBattle(b)
	alice := repo.accounts["alice"]
	alice.Balance = 950
	alice.Reserved = 50
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	paid, err := arena.ClaimRewards("alice", b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid != 103 {
		t.Fatalf("expected payout 103, got %d", paid)
	}
	if alice.Reserved != 0 {
		t.Fatalf("remaining bond must be unreserved on claim, got %d", alice.Reserved)
	}
	stored, _ := repo.GetBattleByID(b.ID)
	if !stored.BondReleased || !stored.RewardClaimed {
		t.Fatalf("expected bond released and reward claimed, got %+v", stored)
	}
}

func TestClaimRewards_RequiresFinalizedBattle(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	if _, err := arena.ClaimRewards("alice", b.ID); !errors.Is(err, ErrInvalidBattleStatus) {
		t.Fatalf("expected ErrInvalidBattleStatus for an active battle, got %v", err)
	}
}
