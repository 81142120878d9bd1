package game

import (
	"gorm.io/gorm"
)

// Account stores player identity and currency balances. Reserved holds
// the portion of the balance locked as challenge bonds.
type Account struct {
	gorm.Model
	UUID     string `json:"uuid" gorm:"uniqueIndex"`
	Name     string `json:"name" gorm:"size:32"`
	Balance  int64  `json:"balance"`
	Reserved int64  `json:"reserved"`
}

func (Account) TableName() string { return "accounts" }

// Pet is a battle-capable creature owned by an account.
type Pet struct {
	gorm.Model
	OwnerUUID    string  `json:"owner_uuid" gorm:"index"`
	Name         string  `json:"name" gorm:"size:32"`
	Element      Element `json:"element"`
	Vitality     int     `json:"vitality"`
	Strength     int     `json:"strength"`
	Intelligence int     `json:"intelligence"`
	Experience   int     `json:"experience"`
}

func (Pet) TableName() string { return "pets" }

// BattleStatus is the battle lifecycle state. Challenged and Active are
// the only non-terminal states.
type BattleStatus string

const (
	StatusChallenged BattleStatus = "challenged"
	StatusActive     BattleStatus = "active"
	StatusCompleted  BattleStatus = "completed"
	StatusForfeited  BattleStatus = "forfeited"
	StatusExpired    BattleStatus = "expired"
)

// Terminal reports whether the status allows no further transitions.
func (s BattleStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusForfeited || s == StatusExpired
}

// BattleResult identifies the winning side of a finalized battle.
type BattleResult string

const (
	ResultPet1Win   BattleResult = "pet1_win"
	ResultPet2Win   BattleResult = "pet2_win"
	ResultDraw      BattleResult = "draw"
	ResultForfeited BattleResult = "forfeited"
)

// BattleMove is a player's chosen action for one turn.
type BattleMove string

const (
	MoveAttack          BattleMove = "attack"
	MoveDefend          BattleMove = "defend"
	MoveSpecialAttack   BattleMove = "special_attack"
	MoveHeal            BattleMove = "heal"
	MoveDodge           BattleMove = "dodge"
	MoveElementalAttack BattleMove = "elemental_attack"
	MoveUltimate        BattleMove = "ultimate"
	MoveStatusEffect    BattleMove = "status_effect"
)

// BasicMove reports whether the move is resolved by the combat resolver
// (as opposed to ultimate/status-effect actions handled by the state
// machine directly).
func (m BattleMove) BasicMove() bool {
	switch m {
	case MoveAttack, MoveDefend, MoveSpecialAttack, MoveHeal, MoveDodge, MoveElementalAttack:
		return true
	}
	return false
}

// MoveResultKind tags the outcome of one resolved move.
type MoveResultKind string

const (
	ResultHit      MoveResultKind = "hit"
	ResultMiss     MoveResultKind = "miss"
	ResultCritical MoveResultKind = "critical"
	ResultHeal     MoveResultKind = "heal"
)

// MoveResult carries the resolved outcome of a move together with its
// numeric payload (damage dealt or health restored).
type MoveResult struct {
	Kind   MoveResultKind `json:"kind"`
	Amount int            `json:"amount"`
}

// StatusEffectKind is one of the closed set of per-turn conditions.
type StatusEffectKind string

const (
	EffectBurn       StatusEffectKind = "burn"
	EffectPoison     StatusEffectKind = "poison"
	EffectFreeze     StatusEffectKind = "freeze"
	EffectStun       StatusEffectKind = "stun"
	EffectStrengthen StatusEffectKind = "strengthen"
	EffectShield     StatusEffectKind = "shield"
)

// Valid reports whether k names a known effect.
func (k StatusEffectKind) Valid() bool {
	switch k {
	case EffectBurn, EffectPoison, EffectFreeze, EffectStun, EffectStrengthen, EffectShield:
		return true
	}
	return false
}

// StatusEffect is one active condition on a battle side, counting down
// one turn per tick.
type StatusEffect struct {
	Kind           StatusEffectKind `json:"kind"`
	RemainingTurns int              `json:"remaining_turns"`
}

// StatusEffectList is stored as a JSON column on the battle row.
type StatusEffectList []StatusEffect

// MaxStatusEffects caps simultaneous conditions per side.
const MaxStatusEffects = 5

// MaxHealth and MaxEnergy cap the per-side pools.
const (
	MaxHealth = 100
	MaxEnergy = 100
)

// DefaultVitality is used when a pet has no vitality attribute set.
const DefaultVitality = 50

// Battle is one two-party contest. Sides are fixed at creation: pet1 is
// the challenger (or the first queue entry when matchmade) and moves on
// odd turns, pet2 on even turns.
type Battle struct {
	gorm.Model
	Pet1ID        uint   `json:"pet1_id" gorm:"index"`
	Pet2ID        uint   `json:"pet2_id" gorm:"index"`
	Pet1OwnerUUID string `json:"pet1_owner_uuid"`
	Pet2OwnerUUID string `json:"pet2_owner_uuid"`

	Status      BattleStatus `json:"status" gorm:"index"`
	CurrentTurn int          `json:"current_turn"`

	Pet1Health int `json:"pet1_health"`
	Pet2Health int `json:"pet2_health"`
	Pet1Energy int `json:"pet1_energy"`
	Pet2Energy int `json:"pet2_energy"`

	Pet1Effects StatusEffectList `json:"pet1_effects" gorm:"serializer:json"`
	Pet2Effects StatusEffectList `json:"pet2_effects" gorm:"serializer:json"`

	Pet1LastMove   BattleMove  `json:"pet1_last_move"`
	Pet2LastMove   BattleMove  `json:"pet2_last_move"`
	Pet1LastResult *MoveResult `json:"pet1_last_result" gorm:"serializer:json"`
	Pet2LastResult *MoveResult `json:"pet2_last_result" gorm:"serializer:json"`

	Pet1Combo int `json:"pet1_combo"`
	Pet2Combo int `json:"pet2_combo"`

	Result           *BattleResult `json:"result"`
	CreatedAtBlock   uint64        `json:"created_at_block"`
	CompletedAtBlock uint64        `json:"completed_at_block"`
	RewardClaimed    bool          `json:"reward_claimed"`

	// MatchRating is set only for matchmade battles: the average rating
	// of the pairing, used by the stats ledger at finalization.
	MatchRating *int `json:"match_rating"`

	// Bond bookkeeping. BondAmount is reserved from the challenger's
	// account at creation; zero for matchmade battles.
	BondAmount   int64 `json:"bond_amount"`
	BondSlashed  int64 `json:"bond_slashed"`
	BondReleased bool  `json:"bond_released"`
}

func (Battle) TableName() string { return "battles" }

// IsParticipant reports whether the account owns either side.
func (b *Battle) IsParticipant(accountUUID string) bool {
	return b.Pet1OwnerUUID == accountUUID || b.Pet2OwnerUUID == accountUUID
}

// SideOf returns 1 or 2 for the side owned by the account, 0 otherwise.
func (b *Battle) SideOf(accountUUID string) int {
	switch accountUUID {
	case b.Pet1OwnerUUID:
		return 1
	case b.Pet2OwnerUUID:
		return 2
	}
	return 0
}

// MoverSide returns the side eligible to move this turn: odd turns are
// pet1, even turns pet2.
func (b *Battle) MoverSide() int {
	if b.CurrentTurn%2 == 1 {
		return 1
	}
	return 2
}

// BattleMoveHistoryEntry is an append-only per-battle move log, bounded
// to MaxHistoryEntries rows. Observational only; never read back by
// game rules.
type BattleMoveHistoryEntry struct {
	gorm.Model
	BattleID uint        `json:"battle_id" gorm:"index"`
	Turn     int         `json:"turn"`
	PetID    uint        `json:"pet_id"`
	Move     BattleMove  `json:"move"`
	Result   *MoveResult `json:"result" gorm:"serializer:json"`
}

func (BattleMoveHistoryEntry) TableName() string { return "battle_move_history" }

// MaxHistoryEntries caps the per-battle move log.
const MaxHistoryEntries = 100

// PetBattleStats aggregates per-pet results. Rating defaults to 1000 on
// first matchmaking entry and never drops below RatingFloor.
type PetBattleStats struct {
	gorm.Model
	PetID  uint `json:"pet_id" gorm:"uniqueIndex"`
	Wins   int  `json:"wins"`
	Losses int  `json:"losses"`
	Draws  int  `json:"draws"`
	Rating int  `json:"rating"`
}

func (PetBattleStats) TableName() string { return "pet_battle_stats" }

const (
	DefaultRating = 1000
	RatingFloor   = 100
)

// MatchmakingQueueEntry lives only between enter_matchmaking and either
// a successful pairing or leave_matchmaking.
type MatchmakingQueueEntry struct {
	gorm.Model
	PetID        uint   `json:"pet_id" gorm:"uniqueIndex"`
	OwnerUUID    string `json:"owner_uuid" gorm:"index"`
	Rating       int    `json:"rating"`
	EnqueueBlock uint64 `json:"enqueue_block"`
}

func (MatchmakingQueueEntry) TableName() string { return "matchmaking_queue" }

// PetActiveBattle is the pet -> battle index enforcing "at most one
// active battle per pet". Rows exist only while the battle is
// Challenged or Active.
type PetActiveBattle struct {
	gorm.Model
	PetID    uint `json:"pet_id" gorm:"uniqueIndex"`
	BattleID uint `json:"battle_id" gorm:"index"`
}

func (PetActiveBattle) TableName() string { return "pet_active_battles" }

// ChainState is the single-row persisted block height.
type ChainState struct {
	gorm.Model
	Height uint64 `json:"height"`
}

func (ChainState) TableName() string { return "chain_state" }
