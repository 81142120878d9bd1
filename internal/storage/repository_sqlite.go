package storage

import (
	"errors"

	"github.com/ericogr/pet-arena/internal/game"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps a migrated gorm DB handle.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) InTransaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&sqliteRepository{db: tx})
	})
}

// --- Accounts / currency ledger ---------------------------------------

func (r *sqliteRepository) CreateAccount(a *game.Account) error {
	return r.db.Create(a).Error
}

func (r *sqliteRepository) GetAccountByUUID(uuid string) (*game.Account, error) {
	var a game.Account
	if err := r.db.Where("uuid = ?", uuid).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *sqliteRepository) Reserve(accountUUID string, amount int64) error {
	a, err := r.GetAccountByUUID(accountUUID)
	if err != nil {
		return err
	}
	if a.Balance < amount {
		return ErrInsufficientBalance
	}
	a.Balance -= amount
	a.Reserved += amount
	return r.db.Save(a).Error
}

func (r *sqliteRepository) Unreserve(accountUUID string, amount int64) error {
	a, err := r.GetAccountByUUID(accountUUID)
	if err != nil {
		return err
	}
	if a.Reserved < amount {
		return ErrInsufficientReserved
	}
	a.Reserved -= amount
	a.Balance += amount
	return r.db.Save(a).Error
}

func (r *sqliteRepository) SlashReserved(accountUUID string, amount int64) error {
	a, err := r.GetAccountByUUID(accountUUID)
	if err != nil {
		return err
	}
	if a.Reserved < amount {
		return ErrInsufficientReserved
	}
	a.Reserved -= amount
	return r.db.Save(a).Error
}

func (r *sqliteRepository) Mint(accountUUID string, amount int64) error {
	a, err := r.GetAccountByUUID(accountUUID)
	if err != nil {
		return err
	}
	a.Balance += amount
	return r.db.Save(a).Error
}

// --- Pets --------------------------------------------------------------

func (r *sqliteRepository) CreatePet(p *game.Pet) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) GetPetByID(id uint) (*game.Pet, error) {
	var p game.Pet
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) ListPetsByOwner(ownerUUID string) ([]game.Pet, error) {
	var pets []game.Pet
	if err := r.db.Where("owner_uuid = ?", ownerUUID).Order("id asc").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *sqliteRepository) AddExperience(petID uint, amount int) error {
	return r.db.Model(&game.Pet{}).Where("id = ?", petID).
		Update("experience", gorm.Expr("experience + ?", amount)).Error
}

// --- Battles -----------------------------------------------------------

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) ListActiveBattles() ([]game.Battle, error) {
	var battles []game.Battle
	if err := r.db.Where("status = ?", game.StatusActive).Order("id asc").Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) ListExpiredChallenges(height uint64, expiryBlocks uint64) ([]game.Battle, error) {
	var battles []game.Battle
	if height <= expiryBlocks {
		return battles, nil
	}
	err := r.db.Where("status = ? AND created_at_block < ?", game.StatusChallenged, height-expiryBlocks).
		Order("id asc").Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

// --- Pet active battle index -------------------------------------------

func (r *sqliteRepository) ClaimPetBattle(petID, battleID uint) error {
	return r.db.Create(&game.PetActiveBattle{PetID: petID, BattleID: battleID}).Error
}

func (r *sqliteRepository) ReleasePetBattle(petIDs ...uint) error {
	if len(petIDs) == 0 {
		return nil
	}
	return r.db.Unscoped().Where("pet_id IN ?", petIDs).Delete(&game.PetActiveBattle{}).Error
}

func (r *sqliteRepository) GetPetActiveBattle(petID uint) (*game.PetActiveBattle, error) {
	var e game.PetActiveBattle
	if err := r.db.Where("pet_id = ?", petID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *sqliteRepository) CountActiveBattlesByOwner(ownerUUID string) (int, error) {
	var count int64
	err := r.db.Model(&game.PetActiveBattle{}).
		Joins("JOIN pets ON pets.id = pet_active_battles.pet_id").
		Where("pets.owner_uuid = ?", ownerUUID).
		Count(&count).Error
	return int(count), err
}

// --- Move history ------------------------------------------------------

func (r *sqliteRepository) CountHistory(battleID uint) (int, error) {
	var count int64
	err := r.db.Model(&game.BattleMoveHistoryEntry{}).Where("battle_id = ?", battleID).Count(&count).Error
	return int(count), err
}

func (r *sqliteRepository) AppendHistory(e *game.BattleMoveHistoryEntry) error {
	return r.db.Create(e).Error
}

func (r *sqliteRepository) GetHistoryByPet(petID uint, limit int) ([]game.BattleMoveHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []game.BattleMoveHistoryEntry
	err := r.db.Where("pet_id = ?", petID).Order("id desc").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// --- Stats ledger ------------------------------------------------------

func (r *sqliteRepository) GetStats(petID uint) (*game.PetBattleStats, error) {
	var s game.PetBattleStats
	if err := r.db.Where("pet_id = ?", petID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) GetOrInitStats(petID uint) (*game.PetBattleStats, error) {
	s, err := r.GetStats(petID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	s = &game.PetBattleStats{PetID: petID, Rating: game.DefaultRating}
	if err := r.db.Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sqliteRepository) SaveStats(s *game.PetBattleStats) error {
	return r.db.Save(s).Error
}

func (r *sqliteRepository) TopRatedPets(limit int) ([]game.PetBattleStats, error) {
	if limit <= 0 {
		limit = 10
	}
	var stats []game.PetBattleStats
	err := r.db.Model(&game.PetBattleStats{}).
		Order("rating DESC").
		Order("wins DESC").
		Limit(limit).
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// --- Matchmaking queue -------------------------------------------------

func (r *sqliteRepository) EnqueuePet(e *game.MatchmakingQueueEntry) error {
	return r.db.Create(e).Error
}

func (r *sqliteRepository) DequeuePet(petID uint) error {
	return r.db.Unscoped().Where("pet_id = ?", petID).Delete(&game.MatchmakingQueueEntry{}).Error
}

func (r *sqliteRepository) GetQueueEntry(petID uint) (*game.MatchmakingQueueEntry, error) {
	var e game.MatchmakingQueueEntry
	if err := r.db.Where("pet_id = ?", petID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *sqliteRepository) ListQueue() ([]game.MatchmakingQueueEntry, error) {
	var entries []game.MatchmakingQueueEntry
	if err := r.db.Order("pet_id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *sqliteRepository) ListQueueOldest(limit int) ([]game.MatchmakingQueueEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var entries []game.MatchmakingQueueEntry
	err := r.db.Order("enqueue_block asc").Order("pet_id asc").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// --- Parameters singleton ----------------------------------------------

func (r *sqliteRepository) GetParameters() (*game.BattleParameters, error) {
	var p game.BattleParameters
	if err := r.db.First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) SaveParameters(p *game.BattleParameters) error {
	return r.db.Save(p).Error
}

// --- Chain state -------------------------------------------------------

func (r *sqliteRepository) GetChainState() (*game.ChainState, error) {
	var s game.ChainState
	if err := r.db.First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) SaveChainState(s *game.ChainState) error {
	return r.db.Save(s).Error
}
