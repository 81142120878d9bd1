package chain

import (
	"sync/atomic"

	"github.com/ericogr/pet-arena/internal/storage"
)

// Clock is the service's notion of block height: a persisted counter
// advanced by the scheduler. Player operations read it; only the tick
// job advances it.
type Clock struct {
	repo   storage.Repository
	height atomic.Uint64
}

// NewClock loads the persisted height.
func NewClock(repo storage.Repository) (*Clock, error) {
	s, err := repo.GetChainState()
	if err != nil {
		return nil, err
	}
	c := &Clock{repo: repo}
	c.height.Store(s.Height)
	return c, nil
}

// Height returns the current block height.
func (c *Clock) Height() uint64 {
	return c.height.Load()
}

// Advance increments and persists the height, returning the new value.
func (c *Clock) Advance() (uint64, error) {
	s, err := c.repo.GetChainState()
	if err != nil {
		return c.Height(), err
	}
	s.Height++
	if err := c.repo.SaveChainState(s); err != nil {
		return c.Height(), err
	}
	c.height.Store(s.Height)
	return s.Height, nil
}
