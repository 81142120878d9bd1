package game

// Element is one of the 8 closed elemental affinities assigned to a pet
// at creation.
type Element string

const (
	ElementFire    Element = "fire"
	ElementWater   Element = "water"
	ElementEarth   Element = "earth"
	ElementAir     Element = "air"
	ElementTech    Element = "tech"
	ElementNature  Element = "nature"
	ElementMystic  Element = "mystic"
	ElementNeutral Element = "neutral"
)

var elementIDs = map[Element]uint8{
	ElementFire:    0,
	ElementWater:   1,
	ElementEarth:   2,
	ElementAir:     3,
	ElementTech:    4,
	ElementNature:  5,
	ElementMystic:  6,
	ElementNeutral: 7,
}

// Valid reports whether e names a known element.
func (e Element) Valid() bool {
	_, ok := elementIDs[e]
	return ok
}

// ID returns the numeric element id used by the advantage table.
// Unknown elements map to Neutral.
func (e Element) ID() uint8 {
	if id, ok := elementIDs[e]; ok {
		return id
	}
	return elementIDs[ElementNeutral]
}
