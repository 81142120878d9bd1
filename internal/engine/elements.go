package engine

import "github.com/ericogr/pet-arena/internal/game"

// advantagePairs lists (mover, opponent) element id pairs where the
// mover's element beats the opponent's. Two independent triads; Mystic
// and Neutral interact with nothing. The pair lists are deliberately
// one-directional (Fire beats Earth, Earth does not beat Fire back).
var advantagePairs = map[[2]uint8]bool{
	{game.ElementFire.ID(), game.ElementEarth.ID()}:  true,
	{game.ElementWater.ID(), game.ElementFire.ID()}:  true,
	{game.ElementEarth.ID(), game.ElementWater.ID()}: true,
	{game.ElementAir.ID(), game.ElementNature.ID()}:  true,
	{game.ElementTech.ID(), game.ElementAir.ID()}:    true,
	{game.ElementNature.ID(), game.ElementTech.ID()}: true,
}

// HasElementalAdvantage reports whether the mover's element beats the
// opponent's under the fixed cycle. Element ids are taken mod 8.
func HasElementalAdvantage(mover, opponent game.Element) bool {
	return advantagePairs[[2]uint8{mover.ID() % 8, opponent.ID() % 8}]
}
