package rng

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
)

// Source supplies one uniform 0-99 draw per (block, battle, turn)
// triple. Uniformity is the only requirement; cryptographic quality is
// not.
type Source interface {
	Draw(block uint64, battleID uint, turn int) int
}

// BlockSeedSource derives a per-block seed by hashing a process salt
// with the block height, then derives each draw from the seed and the
// battle/turn coordinates so two moves in the same block do not share a
// draw.
type BlockSeedSource struct {
	salt [32]byte
}

// NewBlockSeedSource creates a source with a random process salt.
func NewBlockSeedSource() (*BlockSeedSource, error) {
	var s BlockSeedSource
	if _, err := rand.Read(s.salt[:]); err != nil {
		return nil, err
	}
	return &s, nil
}

// NewFixedSource creates a source with a fixed salt, for tests.
func NewFixedSource(salt [32]byte) *BlockSeedSource {
	return &BlockSeedSource{salt: salt}
}

// BlockSeed returns the 32-byte seed for a block.
func (s *BlockSeedSource) BlockSeed(block uint64) [32]byte {
	var buf [40]byte
	copy(buf[:32], s.salt[:])
	binary.BigEndian.PutUint64(buf[32:], block)
	return sha256.Sum256(buf[:])
}

// Draw reduces the first byte of the derived draw seed mod 100.
func (s *BlockSeedSource) Draw(block uint64, battleID uint, turn int) int {
	seed := s.BlockSeed(block)
	var buf [48]byte
	copy(buf[:32], seed[:])
	binary.BigEndian.PutUint64(buf[32:40], uint64(battleID))
	binary.BigEndian.PutUint64(buf[40:48], uint64(turn))
	h := sha256.Sum256(buf[:])
	return int(h[0]) % 100
}

// Fixed is a Source returning a pinned value, for deterministic tests.
type Fixed int

func (f Fixed) Draw(uint64, uint, int) int { return int(f) }
