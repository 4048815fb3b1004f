// Package biome classifies terrain samples into tile kinds and answers the
// static questions about a kind: its display index and whether it can be
// walked on.
package biome

import "fmt"

// TileKind is the closed set of biome categories. Values are append-only:
// the display index of a kind comes from an Atlas, never from its value.
type TileKind uint8

const (
	None TileKind = iota
	DeepWater
	MediumWater
	ShallowWater
	Beach
	Rock
	Mountain
	Snow
	PineForest
	Desert
	LushForest
	DeciduousForest
	Savannah
	Highland
	Grass

	kindCount
)

var kindNames = [kindCount]string{
	None:            "none",
	DeepWater:       "deep_water",
	MediumWater:     "medium_water",
	ShallowWater:    "shallow_water",
	Beach:           "beach",
	Rock:            "rock",
	Mountain:        "mountain",
	Snow:            "snow",
	PineForest:      "pine_forest",
	Desert:          "desert",
	LushForest:      "lush_forest",
	DeciduousForest: "deciduous_forest",
	Savannah:        "savannah",
	Highland:        "highland",
	Grass:           "grass",
}

// Kinds lists every TileKind, None included.
func Kinds() []TileKind {
	out := make([]TileKind, 0, kindCount)
	for k := TileKind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k TileKind) Valid() bool {
	return k < kindCount
}

func (k TileKind) String() string {
	if !k.Valid() || kindNames[k] == "" {
		return fmt.Sprintf("TileKind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseTileKind is the inverse of String.
func ParseTileKind(name string) (TileKind, error) {
	for k := TileKind(0); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown tile kind %q", name)
}

// IsWater reports the three water depth classes.
func (k TileKind) IsWater() bool {
	return k == DeepWater || k == MediumWater || k == ShallowWater
}
