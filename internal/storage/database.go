package storage

import (
	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database, migrates the schema and
// seeds the parameters singleton and chain state when missing. Keep
// schema updated via AutoMigrate; removing the DB file resets state.
func OpenAndMigrate(dataSourceName string, seedParams game.BattleParameters) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.Account{},
		&game.Pet{},
		&game.Battle{},
		&game.BattleMoveHistoryEntry{},
		&game.PetBattleStats{},
		&game.MatchmakingQueueEntry{},
		&game.PetActiveBattle{},
		&game.BattleParameters{},
		&game.ChainState{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedParameters(db, seedParams); err != nil {
		return nil, err
	}
	if err := seedChainState(db); err != nil {
		return nil, err
	}
	return db, nil
}

func seedParameters(db *gorm.DB, seed game.BattleParameters) error {
	var count int64
	if err := db.Model(&game.BattleParameters{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	logging.Info("seeding battle parameters", nil)
	return db.Create(&seed).Error
}

func seedChainState(db *gorm.DB) error {
	var count int64
	if err := db.Model(&game.ChainState{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&game.ChainState{Height: 0}).Error
}
