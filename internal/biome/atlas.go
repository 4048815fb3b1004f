package biome

import (
	"errors"
	"fmt"
	"sort"
)

var ErrAtlas = errors.New("invalid tile atlas")

// Order of the ground tileset shipped with the viewer.
var defaultAtlas = map[TileKind]uint32{
	None:            0,
	DeepWater:       1,
	MediumWater:     2,
	ShallowWater:    3,
	Beach:           4,
	Grass:           5,
	Highland:        6,
	Savannah:        7,
	DeciduousForest: 8,
	LushForest:      9,
	PineForest:      10,
	Desert:          11,
	Rock:            12,
	Mountain:        13,
	Snow:            14,
}

// Atlas is a bijection between TileKind and the display index of the tile
// in a texture atlas.
type Atlas struct {
	toIndex map[TileKind]uint32
	toKind  map[uint32]TileKind
}

// DefaultAtlas returns the mapping for the bundled tileset.
func DefaultAtlas() *Atlas {
	a, err := NewAtlas(defaultAtlas)
	if err != nil {
		panic(err)
	}
	return a
}

// DefaultAtlasNames returns the default mapping keyed by kind name.
func DefaultAtlasNames() map[string]uint32 {
	out := make(map[string]uint32, len(defaultAtlas))
	for k, idx := range defaultAtlas {
		out[k.String()] = idx
	}
	return out
}

// NewAtlas validates that m covers every kind and that no two kinds share
// an index.
func NewAtlas(m map[TileKind]uint32) (*Atlas, error) {
	a := &Atlas{
		toIndex: make(map[TileKind]uint32, len(m)),
		toKind:  make(map[uint32]TileKind, len(m)),
	}
	for k, idx := range m {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: unknown kind %d", ErrAtlas, uint8(k))
		}
		if other, dup := a.toKind[idx]; dup {
			return nil, fmt.Errorf("%w: index %d used by %s and %s", ErrAtlas, idx, other, k)
		}
		a.toIndex[k] = idx
		a.toKind[idx] = k
	}
	for _, k := range Kinds() {
		if _, ok := a.toIndex[k]; !ok {
			return nil, fmt.Errorf("%w: no index for %s", ErrAtlas, k)
		}
	}
	return a, nil
}

// NewAtlasFromNames builds an atlas from kind names, as found in config files.
func NewAtlasFromNames(m map[string]uint32) (*Atlas, error) {
	byKind := make(map[TileKind]uint32, len(m))
	for name, idx := range m {
		k, err := ParseTileKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAtlas, err)
		}
		byKind[k] = idx
	}
	return NewAtlas(byKind)
}

// Index returns the display index of k.
func (a *Atlas) Index(k TileKind) (uint32, bool) {
	idx, ok := a.toIndex[k]
	return idx, ok
}

// Kind returns the kind shown by display index idx.
func (a *Atlas) Kind(idx uint32) (TileKind, bool) {
	k, ok := a.toKind[idx]
	return k, ok
}

// Indices returns all display indices in ascending order.
func (a *Atlas) Indices() []uint32 {
	out := make([]uint32, 0, len(a.toKind))
	for idx := range a.toKind {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
