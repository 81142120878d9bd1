package service

import (
	"sort"

	"github.com/ericogr/pet-arena/internal/game"
	"github.com/ericogr/pet-arena/internal/storage"

	"gorm.io/gorm"
)

// mockRepo is an in-memory storage.Repository for service tests.
// InTransaction runs the callback against the same state without
// rollback; tests only exercise committed paths. Battle, stats and
// queue reads return copies so a mutation the service forgets to
// persist stays invisible, matching the real repository.
type mockRepo struct {
	accounts map[string]*game.Account
	pets     map[uint]*game.Pet
	battles  map[uint]*game.Battle
	index    map[uint]uint // petID -> battleID
	history  []game.BattleMoveHistoryEntry
	stats    map[uint]*game.PetBattleStats
	queue    map[uint]*game.MatchmakingQueueEntry
	params   game.BattleParameters
	chain    game.ChainState

	nextPetID    uint
	nextBattleID uint
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		accounts: map[string]*game.Account{},
		pets:     map[uint]*game.Pet{},
		battles:  map[uint]*game.Battle{},
		index:    map[uint]uint{},
		stats:    map[uint]*game.PetBattleStats{},
		queue:    map[uint]*game.MatchmakingQueueEntry{},
		params:   game.DefaultBattleParameters(),
	}
}

// addAccount and addPet seed test fixtures.
func (m *mockRepo) addAccount(uuid string, balance int64) *game.Account {
	a := &game.Account{UUID: uuid, Name: uuid, Balance: balance}
	m.accounts[uuid] = a
	return a
}

func (m *mockRepo) addPet(owner string, element game.Element, vitality, strength, intelligence int) *game.Pet {
	m.nextPetID++
	p := &game.Pet{
		OwnerUUID:    owner,
		Element:      element,
		Vitality:     vitality,
		Strength:     strength,
		Intelligence: intelligence,
	}
	p.ID = m.nextPetID
	m.pets[p.ID] = p
	return p
}

func (m *mockRepo) InTransaction(fn func(storage.Repository) error) error {
	return fn(m)
}

func (m *mockRepo) CreateAccount(a *game.Account) error {
	m.accounts[a.UUID] = a
	return nil
}

func (m *mockRepo) GetAccountByUUID(uuid string) (*game.Account, error) {
	if a, ok := m.accounts[uuid]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) Reserve(accountUUID string, amount int64) error {
	a, ok := m.accounts[accountUUID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if a.Balance < amount {
		return storage.ErrInsufficientBalance
	}
	a.Balance -= amount
	a.Reserved += amount
	return nil
}

func (m *mockRepo) Unreserve(accountUUID string, amount int64) error {
	a, ok := m.accounts[accountUUID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if a.Reserved < amount {
		return storage.ErrInsufficientReserved
	}
	a.Reserved -= amount
	a.Balance += amount
	return nil
}

func (m *mockRepo) SlashReserved(accountUUID string, amount int64) error {
	a, ok := m.accounts[accountUUID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if a.Reserved < amount {
		return storage.ErrInsufficientReserved
	}
	a.Reserved -= amount
	return nil
}

func (m *mockRepo) Mint(accountUUID string, amount int64) error {
	a, ok := m.accounts[accountUUID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Balance += amount
	return nil
}

func (m *mockRepo) CreatePet(p *game.Pet) error {
	m.nextPetID++
	p.ID = m.nextPetID
	m.pets[p.ID] = p
	return nil
}

func (m *mockRepo) GetPetByID(id uint) (*game.Pet, error) {
	if p, ok := m.pets[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) ListPetsByOwner(ownerUUID string) ([]game.Pet, error) {
	var out []game.Pet
	for _, p := range m.pets {
		if p.OwnerUUID == ownerUUID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepo) AddExperience(petID uint, amount int) error {
	p, ok := m.pets[petID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Experience += amount
	return nil
}

func (m *mockRepo) CreateBattle(b *game.Battle) error {
	m.nextBattleID++
	b.ID = m.nextBattleID
	stored := *b
	m.battles[b.ID] = &stored
	return nil
}

func (m *mockRepo) GetBattleByID(id uint) (*game.Battle, error) {
	if b, ok := m.battles[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) UpdateBattle(b *game.Battle) error {
	stored := *b
	m.battles[b.ID] = &stored
	return nil
}

func (m *mockRepo) ListActiveBattles() ([]game.Battle, error) {
	var out []game.Battle
	for _, b := range m.battles {
		if b.Status == game.StatusActive {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepo) ListExpiredChallenges(height, expiryBlocks uint64) ([]game.Battle, error) {
	if height <= expiryBlocks {
		return nil, nil
	}
	var out []game.Battle
	for _, b := range m.battles {
		if b.Status == game.StatusChallenged && height > b.CreatedAtBlock+expiryBlocks {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepo) ClaimPetBattle(petID, battleID uint) error {
	if existing, ok := m.index[petID]; ok && existing != battleID {
		return gorm.ErrDuplicatedKey
	}
	m.index[petID] = battleID
	return nil
}

func (m *mockRepo) ReleasePetBattle(petIDs ...uint) error {
	for _, id := range petIDs {
		delete(m.index, id)
	}
	return nil
}

func (m *mockRepo) GetPetActiveBattle(petID uint) (*game.PetActiveBattle, error) {
	if battleID, ok := m.index[petID]; ok {
		return &game.PetActiveBattle{PetID: petID, BattleID: battleID}, nil
	}
	return nil, nil
}

func (m *mockRepo) CountActiveBattlesByOwner(ownerUUID string) (int, error) {
	count := 0
	for _, b := range m.battles {
		if b.Status.Terminal() {
			continue
		}
		if b.Pet1OwnerUUID == ownerUUID || b.Pet2OwnerUUID == ownerUUID {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) CountHistory(battleID uint) (int, error) {
	count := 0
	for i := range m.history {
		if m.history[i].BattleID == battleID {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) AppendHistory(e *game.BattleMoveHistoryEntry) error {
	e.ID = uint(len(m.history) + 1)
	m.history = append(m.history, *e)
	return nil
}

func (m *mockRepo) GetHistoryByPet(petID uint, limit int) ([]game.BattleMoveHistoryEntry, error) {
	var out []game.BattleMoveHistoryEntry
	for i := len(m.history) - 1; i >= 0 && len(out) < limit; i-- {
		if m.history[i].PetID == petID {
			out = append(out, m.history[i])
		}
	}
	return out, nil
}

func (m *mockRepo) GetStats(petID uint) (*game.PetBattleStats, error) {
	if s, ok := m.stats[petID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *mockRepo) GetOrInitStats(petID uint) (*game.PetBattleStats, error) {
	if s, ok := m.stats[petID]; ok {
		cp := *s
		return &cp, nil
	}
	s := &game.PetBattleStats{PetID: petID, Rating: game.DefaultRating}
	s.ID = petID
	m.stats[petID] = s
	cp := *s
	return &cp, nil
}

func (m *mockRepo) SaveStats(s *game.PetBattleStats) error {
	stored := *s
	m.stats[s.PetID] = &stored
	return nil
}

func (m *mockRepo) TopRatedPets(limit int) ([]game.PetBattleStats, error) {
	var out []game.PetBattleStats
	for _, s := range m.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) EnqueuePet(e *game.MatchmakingQueueEntry) error {
	e.ID = e.PetID
	m.queue[e.PetID] = e
	return nil
}

func (m *mockRepo) DequeuePet(petID uint) error {
	delete(m.queue, petID)
	return nil
}

func (m *mockRepo) GetQueueEntry(petID uint) (*game.MatchmakingQueueEntry, error) {
	if e, ok := m.queue[petID]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (m *mockRepo) ListQueue() ([]game.MatchmakingQueueEntry, error) {
	var out []game.MatchmakingQueueEntry
	for _, e := range m.queue {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PetID < out[j].PetID })
	return out, nil
}

func (m *mockRepo) ListQueueOldest(limit int) ([]game.MatchmakingQueueEntry, error) {
	out, _ := m.ListQueue()
	sort.Slice(out, func(i, j int) bool { return out[i].EnqueueBlock < out[j].EnqueueBlock })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) GetParameters() (*game.BattleParameters, error) {
	p := m.params
	return &p, nil
}

func (m *mockRepo) SaveParameters(p *game.BattleParameters) error {
	m.params = *p
	return nil
}

func (m *mockRepo) GetChainState() (*game.ChainState, error) {
	s := m.chain
	return &s, nil
}

func (m *mockRepo) SaveChainState(s *game.ChainState) error {
	m.chain = *s
	return nil
}

// testClock is a settable BlockClock.
type testClock struct{ height uint64 }

func (c *testClock) Height() uint64 { return c.height }
