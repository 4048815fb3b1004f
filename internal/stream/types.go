package stream

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"overworld/internal/chunk"
)

// Mode is the map-wide streaming state.
type Mode int

const (
	Streaming Mode = iota
	// Resetting clears every chunk on the next tick.
	Resetting
)

func (m Mode) String() string {
	switch m {
	case Streaming:
		return "streaming"
	case Resetting:
		return "resetting"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

type EventKind int

const (
	Spawn EventKind = iota
	Despawn
)

func (k EventKind) String() string {
	if k == Spawn {
		return "spawn"
	}
	return "despawn"
}

// Event tells the host that a chunk appeared or went away. Chunk is set only
// for spawns.
type Event struct {
	Kind       EventKind
	Coord      chunk.Coord
	Chunk      *chunk.Chunk
	Origin     mgl64.Vec2
	Generation uuid.UUID
}

// Window is an inclusive rectangle of chunk coordinates.
type Window struct {
	Min, Max chunk.Coord
}

func (w Window) Contains(c chunk.Coord) bool {
	return c.X >= w.Min.X && c.X <= w.Max.X && c.Y >= w.Min.Y && c.Y <= w.Max.Y
}

func (w Window) Len() int {
	return (w.Max.X - w.Min.X + 1) * (w.Max.Y - w.Min.Y + 1)
}

// Coords lists the window row by row.
func (w Window) Coords() []chunk.Coord {
	out := make([]chunk.Coord, 0, w.Len())
	for y := w.Min.Y; y <= w.Max.Y; y++ {
		for x := w.Min.X; x <= w.Max.X; x++ {
			out = append(out, chunk.Coord{X: x, Y: y})
		}
	}
	return out
}

// MoveResult is the answer to a movement-legality query.
type MoveResult int

const (
	MoveLegal MoveResult = iota
	MoveBlocked
	// MoveNoChunk means no spawned chunk covers the destination.
	MoveNoChunk
)

func (r MoveResult) String() string {
	switch r {
	case MoveLegal:
		return "legal"
	case MoveBlocked:
		return "blocked"
	case MoveNoChunk:
		return "no chunk"
	}
	return fmt.Sprintf("MoveResult(%d)", int(r))
}

// Stats are running totals since the streamer was built.
type Stats struct {
	Spawned   uint64
	Despawned uint64
	Evicted   uint64
	Resets    uint64
}
