package service

import "errors"

// All errors are caller-recoverable; operations never partially mutate
// state when returning one of these.
var (
	// Not-found
	ErrBattleNotFound  = errors.New("battle not found")
	ErrPetNotFound     = errors.New("pet not found")
	ErrAccountNotFound = errors.New("account not found")

	// Authorization
	ErrNotPetOwner          = errors.New("not the pet owner")
	ErrNotBattleParticipant = errors.New("not a battle participant")
	ErrNotYourTurn          = errors.New("not your turn")

	// State conflict
	ErrInvalidBattleStatus   = errors.New("invalid battle status for this operation")
	ErrBattleAlreadyComplete = errors.New("battle already completed")
	ErrRewardsAlreadyClaimed = errors.New("rewards already claimed")
	ErrPetAlreadyInBattle    = errors.New("pet already in an active battle")
	ErrPetAlreadyQueued      = errors.New("pet already in the matchmaking queue")
	ErrPetNotQueued          = errors.New("pet is not in the matchmaking queue")
	ErrSelfChallenge         = errors.New("cannot challenge a pet you own")

	// Capacity
	ErrTooManyActiveBattles = errors.New("too many active battles for this account")
	ErrTooManyStatusEffects = errors.New("too many status effects on this side")
	ErrBattleHistoryTooLong = errors.New("battle move history is full")
	ErrComboCounterMaximum  = errors.New("combo counter at maximum")

	// Resource
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientEnergy  = errors.New("insufficient energy")

	// Temporal
	ErrBattleExpired = errors.New("challenge expired")

	// Turn-scoped gating
	ErrPreventedByStatusEffect = errors.New("prevented by an active status effect")

	// Validation
	ErrInvalidMove         = errors.New("invalid move")
	ErrInvalidStatusEffect = errors.New("invalid status effect")
	ErrInvalidPet          = errors.New("invalid pet attributes")
	ErrInvalidParameters   = errors.New("invalid battle parameters")
)
