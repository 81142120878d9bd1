package storage

import (
	"errors"

	"github.com/ericogr/pet-arena/internal/game"
)

// Ledger errors surfaced by the currency operations.
var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInsufficientReserved = errors.New("insufficient reserved balance")
)

// Repository is the persistence boundary for the arena. Mutating
// battle operations are expected to run inside InTransaction so a
// failing operation leaves all state unchanged.
type Repository interface {
	// InTransaction runs fn against a transactional view of the
	// repository; any error rolls back every write made inside fn.
	InTransaction(fn func(Repository) error) error

	// Accounts and the currency ledger.
	CreateAccount(a *game.Account) error
	GetAccountByUUID(uuid string) (*game.Account, error)
	Reserve(accountUUID string, amount int64) error
	Unreserve(accountUUID string, amount int64) error
	SlashReserved(accountUUID string, amount int64) error
	Mint(accountUUID string, amount int64) error

	// Pets.
	CreatePet(p *game.Pet) error
	GetPetByID(id uint) (*game.Pet, error)
	ListPetsByOwner(ownerUUID string) ([]game.Pet, error)
	AddExperience(petID uint, amount int) error

	// Battles.
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	ListActiveBattles() ([]game.Battle, error)
	ListExpiredChallenges(height uint64, expiryBlocks uint64) ([]game.Battle, error)

	// Pet -> active battle index.
	ClaimPetBattle(petID, battleID uint) error
	ReleasePetBattle(petIDs ...uint) error
	GetPetActiveBattle(petID uint) (*game.PetActiveBattle, error)
	CountActiveBattlesByOwner(ownerUUID string) (int, error)

	// Move history.
	CountHistory(battleID uint) (int, error)
	AppendHistory(e *game.BattleMoveHistoryEntry) error
	GetHistoryByPet(petID uint, limit int) ([]game.BattleMoveHistoryEntry, error)

	// Stats ledger.
	GetStats(petID uint) (*game.PetBattleStats, error)
	GetOrInitStats(petID uint) (*game.PetBattleStats, error)
	SaveStats(s *game.PetBattleStats) error
	TopRatedPets(limit int) ([]game.PetBattleStats, error)

	// Matchmaking queue.
	EnqueuePet(e *game.MatchmakingQueueEntry) error
	DequeuePet(petID uint) error
	GetQueueEntry(petID uint) (*game.MatchmakingQueueEntry, error)
	ListQueue() ([]game.MatchmakingQueueEntry, error)
	ListQueueOldest(limit int) ([]game.MatchmakingQueueEntry, error)

	// Parameters singleton.
	GetParameters() (*game.BattleParameters, error)
	SaveParameters(p *game.BattleParameters) error

	// Persisted block height.
	GetChainState() (*game.ChainState, error)
	SaveChainState(s *game.ChainState) error
}
