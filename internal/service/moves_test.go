package service

import (
	"errors"
	"testing"

	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/rng"
)

// startActiveBattle seeds two accounts, two pets and an active battle
// between them.
func startActiveBattle(repo *mockRepo) (*game.Battle, *game.Pet, *game.Pet) {
	repo.addAccount("alice", 1000)
	repo.addAccount("bob", 1000)
	p1 := repo.addPet("alice", game.ElementFire, 80, 50, 30)
	p2 := repo.addPet("bob", game.ElementWater, 70, 40, 20)

	b := &game.Battle{
		Pet1ID:        p1.ID,
		Pet2ID:        p2.ID,
		Pet1OwnerUUID: "alice",
		Pet2OwnerUUID: "bob",
		Status:        game.StatusActive,
		CurrentTurn:   1,
		Pet1Health:    p1.Vitality,
		Pet2Health:    p2.Vitality,
		Pet1Energy:    repo.params.InitialEnergy,
		Pet2Energy:    repo.params.InitialEnergy,
	}
	repo.CreateBattle(b)
	repo.ClaimPetBattle(p1.ID, b.ID)
	repo.ClaimPetBattle(p2.ID, b.ID)
	return b, p1, p2
}

func TestExecuteMove_RejectsNonBasicMoves(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	for _, move := range []game.BattleMove{game.MoveUltimate, game.MoveStatusEffect, "jump"} {
		if _, _, err := arena.ExecuteMove("alice", b.ID, move); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("move %q: expected ErrInvalidMove, got %v", move, err)
		}
	}
}

func TestExecuteMove_FinalizesOnZeroHealth(t *testing.T) {
	repo := newMockRepo()
	b, p1, p2 := startActiveBattle(repo)
	b.Pet2Health = 5
	repo.UpdateBattle(b)
	arena := NewArena(repo, rng.Fixed(50), &testClock{height: 9})

	updated, result, err := arena.ExecuteMove("alice", b.ID, game.MoveAttack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Amount != 10 || updated.Pet2Health != 0 {
		t.Fatalf("expected lethal hit, got amount=%d health=%d", result.Amount, updated.Pet2Health)
	}
	if updated.Status != game.StatusCompleted {
		t.Fatalf("expected completed battle, got %s", updated.Status)
	}
	if updated.Result == nil || *updated.Result != game.ResultPet1Win {
		t.Fatalf("expected pet1 win, got %v", updated.Result)
	}
	if updated.CompletedAtBlock != 9 {
		t.Fatalf("expected completion block 9, got %d", updated.CompletedAtBlock)
	}

	// Winner gets the full experience reward, loser half.
	if p1.Experience != 50 || p2.Experience != 25 {
		t.Fatalf("expected experience 50/25, got %d/%d", p1.Experience, p2.Experience)
	}
	s1, _ := repo.GetStats(p1.ID)
	s2, _ := repo.GetStats(p2.ID)
	if s1.Wins != 1 || s2.Losses != 1 {
		t.Fatalf("expected 1 win / 1 loss, got %+v %+v", s1, s2)
	}
	// Challenge battles do not move ratings.
	if s1.Rating != game.DefaultRating || s2.Rating != game.DefaultRating {
		t.Fatalf("ratings must not change outside matchmade battles")
	}
	if active, _ := repo.GetPetActiveBattle(p1.ID); active != nil {
		t.Fatalf("index row must be released at finalization")
	}
}

func TestExecuteMove_DrawAtMaxTurns(t *testing.T) {
	repo := newMockRepo()
	b, p1, p2 := startActiveBattle(repo)
	b.CurrentTurn = repo.params.MaxTurns
	b.Pet1Health = 60
	b.Pet2Health = 50
	repo.UpdateBattle(b)
	arena := NewArena(repo, rng.Fixed(11), &testClock{})

	// The final turn is even, so pet2 moves. Defend heals 5 + 11%6 = 10,
	// leaving both sides at 60 when the turn limit trips.
	updated, result, err := arena.ExecuteMove("bob", b.ID, game.MoveDefend)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != game.ResultHeal || result.Amount != 10 {
		t.Fatalf("expected heal 10, got %s %d", result.Kind, result.Amount)
	}
	if updated.Status != game.StatusCompleted {
		t.Fatalf("expected completion past the turn limit, got %s", updated.Status)
	}
	if updated.Result == nil || *updated.Result != game.ResultDraw {
		t.Fatalf("expected draw at equal health, got %v", updated.Result)
	}
	// Both sides receive half experience on a draw.
	if p1.Experience != 25 || p2.Experience != 25 {
		t.Fatalf("expected experience 25/25, got %d/%d", p1.Experience, p2.Experience)
	}
	s1, _ := repo.GetStats(p1.ID)
	if s1.Draws != 1 {
		t.Fatalf("expected 1 draw recorded, got %+v", s1)
	}
}

func TestUseUltimateMove(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	b.Pet1Energy = 70
	repo.UpdateBattle(b)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	updated, result, err := arena.UseUltimateMove("alice", b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != game.ResultCritical {
		t.Fatalf("ultimate must always land critically, got %s", result.Kind)
	}
	// 20 + 50/5 + 30/10 = 33.
	if result.Amount != 33 {
		t.Fatalf("expected ultimate damage 33, got %d", result.Amount)
	}
	if updated.Pet2Health != 70-33 {
		t.Fatalf("expected pet2 health %d, got %d", 70-33, updated.Pet2Health)
	}
	// 70 + 10 regen - 80 cost.
	if updated.Pet1Energy != 0 {
		t.Fatalf("expected energy drained to 0, got %d", updated.Pet1Energy)
	}
	if updated.CurrentTurn != 2 {
		t.Fatalf("ultimate must consume the turn, got turn %d", updated.CurrentTurn)
	}
}

func TestUseUltimateMove_InsufficientEnergy(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	// 50 + 10 regen is still below the 80 cost.
	if _, _, err := arena.UseUltimateMove("alice", b.ID); !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("expected ErrInsufficientEnergy, got %v", err)
	}
	stored, _ := repo.GetBattleByID(b.ID)
	if stored.CurrentTurn != 1 {
		t.Fatalf("failed ultimate must not consume the turn, got %d", stored.CurrentTurn)
	}
}

func TestUseUltimateMove_BlockedByFreeze(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	b.Pet1Energy = 100
	b.Pet1Effects = game.StatusEffectList{{Kind: game.EffectFreeze, RemainingTurns: 2}}
	repo.UpdateBattle(b)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	if _, _, err := arena.UseUltimateMove("alice", b.ID); !errors.Is(err, ErrPreventedByStatusEffect) {
		t.Fatalf("expected ErrPreventedByStatusEffect, got %v", err)
	}
}

func TestApplyStatusEffect(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	if _, err := arena.ApplyStatusEffect("alice", b.ID, "meteor"); !errors.Is(err, ErrInvalidStatusEffect) {
		t.Fatalf("expected ErrInvalidStatusEffect, got %v", err)
	}

	updated, err := arena.ApplyStatusEffect("alice", b.ID, game.EffectBurn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Pet2Effects) != 1 || updated.Pet2Effects[0].Kind != game.EffectBurn {
		t.Fatalf("expected burn on the opponent, got %v", updated.Pet2Effects)
	}
	if updated.Pet2Effects[0].RemainingTurns != repo.params.StatusEffectDefaultDuration {
		t.Fatalf("expected default duration %d, got %d", repo.params.StatusEffectDefaultDuration, updated.Pet2Effects[0].RemainingTurns)
	}
	if updated.CurrentTurn != 2 {
		t.Fatalf("infliction must consume the turn, got %d", updated.CurrentTurn)
	}
}

func TestApplyStatusEffect_Capacity(t *testing.T) {
	repo := newMockRepo()
	b, _, _ := startActiveBattle(repo)
	for i := 0; i < game.MaxStatusEffects; i++ {
		b.Pet2Effects = append(b.Pet2Effects, game.StatusEffect{Kind: game.EffectPoison, RemainingTurns: 3})
	}
	repo.UpdateBattle(b)
	arena := NewArena(repo, rng.Fixed(50), &testClock{})

	if _, err := arena.ApplyStatusEffect("alice", b.ID, game.EffectBurn); !errors.Is(err, ErrTooManyStatusEffects) {
		t.Fatalf("expected ErrTooManyStatusEffects, got %v", err)
	}
	stored, _ := repo.GetBattleByID(b.ID)
	if stored.CurrentTurn != 1 {
		t.Fatalf("rejected infliction must not consume the turn, got %d", stored.CurrentTurn)
	}
}
