package biome

import "fmt"

// Every kind needs an explicit entry; ValidateTables fails at startup
// otherwise.
var walkable = map[TileKind]bool{
	None:            false,
	DeepWater:       false,
	MediumWater:     false,
	ShallowWater:    false,
	Beach:           true,
	Rock:            false,
	Mountain:        false,
	Snow:            true,
	PineForest:      true,
	Desert:          true,
	LushForest:      true,
	DeciduousForest: true,
	Savannah:        true,
	Highland:        true,
	Grass:           true,
}

// IsWalkable reports whether a tile of kind k can be entered. Unknown kinds
// are blocked.
func IsWalkable(k TileKind) bool {
	return walkable[k]
}

// ValidateTables checks that every kind has a name, a walkability decision
// and a default atlas slot.
func ValidateTables() error {
	for _, k := range Kinds() {
		if kindNames[k] == "" {
			return fmt.Errorf("tile kind %d has no name", uint8(k))
		}
		if _, ok := walkable[k]; !ok {
			return fmt.Errorf("tile kind %s has no walkability entry", k)
		}
	}
	if len(walkable) != int(kindCount) {
		return fmt.Errorf("walkability table has %d entries, want %d", len(walkable), kindCount)
	}
	_, err := NewAtlas(defaultAtlas)
	return err
}
