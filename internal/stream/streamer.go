// Package stream keeps the set of live chunks in step with a moving
// viewpoint.
package stream

import (
	"fmt"
	"io"
	"log"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"overworld/internal/biome"
	"overworld/internal/chunk"
	"overworld/internal/config"
	"overworld/internal/mathx"
	"overworld/internal/terrain"
)

// Streamer owns the spawned chunk set. It is driven from a single tick loop
// and is not safe for concurrent use.
type Streamer struct {
	cfg    config.Config
	logger *log.Logger

	gen        *chunk.Generator
	chunks     map[chunk.Coord]*chunk.Chunk
	mode       Mode
	generation uuid.UUID
	stats      Stats

	budget    int
	despawnAt float64
	chunkSize mgl64.Vec2
}

// New validates cfg and builds an empty streamer. A nil logger discards.
func New(cfg config.Config, logger *log.Logger) (*Streamer, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	cw, ch := cfg.Layout.ChunkWorldSize()
	s := &Streamer{
		cfg:        cfg,
		logger:     logger,
		gen:        gen,
		chunks:     make(map[chunk.Coord]*chunk.Chunk),
		generation: uuid.New(),
		budget:     cfg.ChunkBudget(),
		despawnAt:  cfg.DespawnWorldDistance(),
		chunkSize:  mgl64.Vec2{cw, ch},
	}
	return s, nil
}

func newGenerator(cfg config.Config) (*chunk.Generator, error) {
	sampler, err := terrain.New(cfg.World, cfg.Layout)
	if err != nil {
		return nil, err
	}
	return chunk.NewGenerator(sampler, cfg.Biome, cfg.Layout, cfg.Streaming.Workers)
}

// Tick advances streaming by one step for viewpoint. In Resetting mode it
// only tears down; spawning resumes on the following tick.
func (s *Streamer) Tick(viewpoint mgl64.Vec2) []Event {
	if s.mode == Resetting {
		return s.reset()
	}
	events := s.despawnFar(viewpoint)
	return append(events, s.spawnWindow(viewpoint)...)
}

func (s *Streamer) reset() []Event {
	events := make([]Event, 0, len(s.chunks))
	for _, c := range s.Spawned() {
		events = append(events, s.remove(c))
	}
	old := s.generation
	s.generation = uuid.New()
	s.mode = Streaming
	s.stats.Resets++
	s.logger.Printf("map has been reset: %d chunks dropped, generation %s -> %s", len(events), old, s.generation)
	return events
}

func (s *Streamer) remove(c chunk.Coord) Event {
	ev := Event{Kind: Despawn, Coord: c, Origin: s.chunks[c].Origin, Generation: s.generation}
	delete(s.chunks, c)
	s.stats.Despawned++
	return ev
}

func (s *Streamer) despawnFar(viewpoint mgl64.Vec2) []Event {
	var events []Event
	for _, c := range s.Spawned() {
		if s.chunks[c].Center().Sub(viewpoint).Len() > s.despawnAt {
			events = append(events, s.remove(c))
		}
	}
	return events
}

func (s *Streamer) spawnWindow(viewpoint mgl64.Vec2) []Event {
	win, ok := s.DesiredWindow(viewpoint)
	if !ok {
		return nil
	}
	var events []Event
	for _, c := range win.Coords() {
		if _, live := s.chunks[c]; live {
			continue
		}
		if len(s.chunks) >= s.budget {
			ev, ok := s.evictFarthest(viewpoint, win)
			if !ok {
				s.logger.Printf("chunk budget of %d reached at %v", s.budget, c)
				break
			}
			events = append(events, ev)
		}
		ch := s.gen.Generate(c)
		s.chunks[c] = ch
		s.stats.Spawned++
		events = append(events, Event{Kind: Spawn, Coord: c, Chunk: ch, Origin: ch.Origin, Generation: s.generation})
	}
	return events
}

// evictFarthest frees one slot by dropping the spawned chunk outside win
// that is farthest from viewpoint.
func (s *Streamer) evictFarthest(viewpoint mgl64.Vec2, win Window) (Event, bool) {
	var (
		victim chunk.Coord
		best   = -1.0
	)
	for _, c := range s.Spawned() {
		if win.Contains(c) {
			continue
		}
		if d := s.chunks[c].Center().Sub(viewpoint).Len(); d > best {
			victim, best = c, d
		}
	}
	if best < 0 {
		return Event{}, false
	}
	s.stats.Evicted++
	return s.remove(victim), true
}

// ViewpointChunk is the chunk containing a world position, flooring toward
// negative infinity.
func (s *Streamer) ViewpointChunk(pos mgl64.Vec2) chunk.Coord {
	return chunk.Coord{
		X: int(math.Floor(pos.X() / s.chunkSize.X())),
		Y: int(math.Floor(pos.Y() / s.chunkSize.Y())),
	}
}

// DesiredWindow is the spawn radius around the viewpoint chunk, intersected
// with the map. It reports false when the two do not overlap.
func (s *Streamer) DesiredWindow(viewpoint mgl64.Vec2) (Window, bool) {
	c := s.ViewpointChunk(viewpoint)
	r := s.cfg.Streaming.SpawnRadius
	w := Window{
		Min: chunk.Coord{X: max(c.X-r, 0), Y: max(c.Y-r, 0)},
		Max: chunk.Coord{X: min(c.X+r, s.cfg.Layout.ChunksX()-1), Y: min(c.Y+r, s.cfg.Layout.ChunksY()-1)},
	}
	if w.Min.X > w.Max.X || w.Min.Y > w.Max.Y {
		return Window{}, false
	}
	return w, true
}

// Regenerate swaps in a new world config and schedules a reset. The current
// chunks stay queryable until the next tick.
func (s *Streamer) Regenerate(world config.World) error {
	cfg := s.cfg
	cfg.World = world
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("regenerate: %w", err)
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return fmt.Errorf("regenerate: %w", err)
	}
	s.cfg = cfg
	s.gen = gen
	s.mode = Resetting
	s.logger.Printf("regenerating with seeds elevation=%d moisture=%d", world.ElevationSeed, world.MoistureSeed)
	return nil
}

// RequestReset drops every chunk on the next tick and keeps the world.
func (s *Streamer) RequestReset() {
	s.mode = Resetting
}

// TileAt returns the tile under a world position, or false when no spawned
// chunk covers it.
func (s *Streamer) TileAt(pos mgl64.Vec2) (biome.TileKind, bool) {
	l := s.cfg.Layout
	tx := int(math.Floor(pos.X() / l.TileSize))
	ty := int(math.Floor(pos.Y() / l.TileSize))
	c, ok := s.chunks[chunk.Coord{X: mathx.FloorDiv(tx, l.ChunkWidth), Y: mathx.FloorDiv(ty, l.ChunkHeight)}]
	if !ok {
		return biome.None, false
	}
	return c.At(mathx.Mod(tx, l.ChunkWidth), mathx.Mod(ty, l.ChunkHeight))
}

// CheckMove reports whether dest may be entered.
func (s *Streamer) CheckMove(dest mgl64.Vec2) MoveResult {
	k, ok := s.TileAt(dest)
	switch {
	case !ok:
		return MoveNoChunk
	case biome.IsWalkable(k):
		return MoveLegal
	}
	return MoveBlocked
}

func (s *Streamer) Chunk(c chunk.Coord) (*chunk.Chunk, bool) {
	ch, ok := s.chunks[c]
	return ch, ok
}

// Spawned lists live coordinates ordered by row, then column.
func (s *Streamer) Spawned() []chunk.Coord {
	out := make([]chunk.Coord, 0, len(s.chunks))
	for c := range s.chunks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func (s *Streamer) Len() int              { return len(s.chunks) }
func (s *Streamer) MaxChunks() int        { return s.budget }
func (s *Streamer) Mode() Mode            { return s.mode }
func (s *Streamer) Generation() uuid.UUID { return s.generation }
func (s *Streamer) Stats() Stats          { return s.stats }
func (s *Streamer) Config() config.Config { return s.cfg }

// Sampler exposes the active terrain sampler for inspection.
func (s *Streamer) Sampler() *terrain.Sampler {
	return s.gen.Sampler()
}
