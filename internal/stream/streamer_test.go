package stream

import (
	"io"
	"log"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overworld/internal/biome"
	"overworld/internal/chunk"
	"overworld/internal/config"
)

// 4x4 chunks of 16x16 tiles, one world unit per tile.
func smallConfig() config.Config {
	c := config.Defaults()
	c.World.ElevationSeed = 42
	c.World.MoistureSeed = 4242
	c.Layout = config.Layout{WorldWidth: 64, WorldHeight: 64, ChunkWidth: 16, ChunkHeight: 16, TileSize: 1}
	c.Streaming = config.Streaming{SpawnRadius: 2, DespawnDistance: 4, Workers: 1}
	return c
}

func newStreamer(t *testing.T, cfg config.Config) *Streamer {
	t.Helper()
	s, err := New(cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return s
}

func coordsOf(events []Event, kind EventKind) []chunk.Coord {
	var out []chunk.Coord
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev.Coord)
		}
	}
	return out
}

func TestDesiredWindowClampsToMap(t *testing.T) {
	s := newStreamer(t, smallConfig())

	w, ok := s.DesiredWindow(mgl64.Vec2{8, 8})
	require.True(t, ok)
	assert.Equal(t, Window{Min: chunk.Coord{X: 0, Y: 0}, Max: chunk.Coord{X: 2, Y: 2}}, w)
	assert.Equal(t, 9, w.Len())

	w, ok = s.DesiredWindow(mgl64.Vec2{63, 63})
	require.True(t, ok)
	assert.Equal(t, Window{Min: chunk.Coord{X: 1, Y: 1}, Max: chunk.Coord{X: 3, Y: 3}}, w)

	// Just off the map: the window still reaches back in.
	w, ok = s.DesiredWindow(mgl64.Vec2{-20, 8})
	require.True(t, ok)
	assert.Equal(t, Window{Min: chunk.Coord{X: 0, Y: 0}, Max: chunk.Coord{X: 0, Y: 2}}, w)

	_, ok = s.DesiredWindow(mgl64.Vec2{-1000, 8})
	assert.False(t, ok)
	_, ok = s.DesiredWindow(mgl64.Vec2{8, 1000})
	assert.False(t, ok)
}

func TestViewpointChunkFloorsNegative(t *testing.T) {
	s := newStreamer(t, smallConfig())
	assert.Equal(t, chunk.Coord{X: 0, Y: 0}, s.ViewpointChunk(mgl64.Vec2{0, 15.9}))
	assert.Equal(t, chunk.Coord{X: -1, Y: 0}, s.ViewpointChunk(mgl64.Vec2{-0.1, 0}))
	assert.Equal(t, chunk.Coord{X: -2, Y: -1}, s.ViewpointChunk(mgl64.Vec2{-17, -16}))
}

func TestFirstTickSpawnsWindow(t *testing.T) {
	s := newStreamer(t, smallConfig())
	events := s.Tick(mgl64.Vec2{8, 8})

	spawned := coordsOf(events, Spawn)
	assert.Len(t, spawned, 9)
	assert.Empty(t, coordsOf(events, Despawn))
	// Row-major spawn order.
	assert.Equal(t, chunk.Coord{X: 0, Y: 0}, spawned[0])
	assert.Equal(t, chunk.Coord{X: 1, Y: 0}, spawned[1])
	assert.Equal(t, chunk.Coord{X: 2, Y: 2}, spawned[8])
	for _, ev := range events {
		require.NotNil(t, ev.Chunk)
		assert.Equal(t, ev.Chunk.Origin, ev.Origin)
		assert.Equal(t, s.Generation(), ev.Generation)
	}
	assert.Equal(t, 9, s.Len())
}

func TestStationaryViewpointIsStable(t *testing.T) {
	s := newStreamer(t, smallConfig())
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		vp := mgl64.Vec2{r.Float64()*96 - 16, r.Float64()*96 - 16}
		s.Tick(vp)
		before := s.Spawned()
		assert.Empty(t, s.Tick(vp), "viewpoint %v", vp)
		assert.Equal(t, before, s.Spawned())
	}
}

func TestHysteresisKeepsBandChunks(t *testing.T) {
	s := newStreamer(t, smallConfig())
	s.Tick(mgl64.Vec2{8, 8})
	require.Equal(t, 9, s.Len())

	// Chunk (0,0) leaves the window but its centre stays within the
	// despawn distance of 64.
	vp := mgl64.Vec2{56, 8}
	events := s.Tick(vp)
	assert.Empty(t, coordsOf(events, Despawn))
	_, ok := s.Chunk(chunk.Coord{X: 0, Y: 0})
	assert.True(t, ok)
	w, _ := s.DesiredWindow(vp)
	assert.False(t, w.Contains(chunk.Coord{X: 0, Y: 0}))
	assert.Empty(t, s.Tick(vp))
}

func TestDespawnBeyondDistance(t *testing.T) {
	cfg := smallConfig()
	cfg.Streaming.SpawnRadius = 0
	cfg.Streaming.DespawnDistance = 1
	s := newStreamer(t, cfg)

	s.Tick(mgl64.Vec2{8, 8})
	require.Equal(t, []chunk.Coord{{X: 0, Y: 0}}, s.Spawned())

	// Centre (8,8) is 48 from (56,8), past the despawn distance of 16.
	events := s.Tick(mgl64.Vec2{56, 8})
	assert.Equal(t, []chunk.Coord{{X: 0, Y: 0}}, coordsOf(events, Despawn))
	assert.Equal(t, []chunk.Coord{{X: 3, Y: 0}}, coordsOf(events, Spawn))
	// Despawns are reported before spawns.
	assert.Equal(t, Despawn, events[0].Kind)
	assert.Nil(t, events[0].Chunk)
	assert.Equal(t, []chunk.Coord{{X: 3, Y: 0}}, s.Spawned())
}

func TestChunkCountBounded(t *testing.T) {
	for _, budget := range []int{0, 5} {
		cfg := smallConfig()
		cfg.Streaming.MaxChunks = budget
		s := newStreamer(t, cfg)
		limit := cfg.Layout.MaxChunks()
		if budget > 0 {
			limit = budget
		}
		assert.Equal(t, limit, s.MaxChunks())

		r := rand.New(rand.NewSource(int64(budget) + 1))
		vp := mgl64.Vec2{32, 32}
		for i := 0; i < 500; i++ {
			vp = vp.Add(mgl64.Vec2{r.Float64()*40 - 20, r.Float64()*40 - 20})
			vp = mgl64.Vec2{clamp(vp.X(), -32, 96), clamp(vp.Y(), -32, 96)}
			s.Tick(vp)
			require.LessOrEqual(t, s.Len(), limit)
			for _, c := range s.Spawned() {
				require.True(t, c.X >= 0 && c.X < 4 && c.Y >= 0 && c.Y < 4, "coord %v", c)
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

func TestEvictionMakesRoomForWindow(t *testing.T) {
	cfg := smallConfig()
	cfg.Streaming = config.Streaming{SpawnRadius: 1, DespawnDistance: 10, MaxChunks: 9, Workers: 1}
	s := newStreamer(t, cfg)

	s.Tick(mgl64.Vec2{8, 8})
	s.Tick(mgl64.Vec2{56, 56})
	require.Equal(t, 8, s.Len())

	vp := mgl64.Vec2{8, 56}
	events := s.Tick(vp)
	assert.Equal(t, 9, s.Len())
	assert.Len(t, coordsOf(events, Despawn), 3)
	w, _ := s.DesiredWindow(vp)
	for _, c := range w.Coords() {
		_, ok := s.Chunk(c)
		assert.True(t, ok, "window chunk %v", c)
	}
	assert.Equal(t, uint64(3), s.Stats().Evicted)
}

func TestPublishedChunksComplete(t *testing.T) {
	cfg := smallConfig()
	cfg.Streaming.Workers = 4
	s := newStreamer(t, cfg)
	for _, vp := range []mgl64.Vec2{{8, 8}, {40, 40}, {60, 10}} {
		for _, ev := range s.Tick(vp) {
			if ev.Kind == Spawn {
				require.True(t, ev.Chunk.Complete())
				assert.Equal(t, 16*16, ev.Chunk.Len())
			}
		}
		for _, c := range s.Spawned() {
			ch, ok := s.Chunk(c)
			require.True(t, ok)
			require.True(t, ch.Complete())
		}
	}
}

func TestResetClearsThenRespawns(t *testing.T) {
	s := newStreamer(t, smallConfig())
	vp := mgl64.Vec2{8, 8}
	s.Tick(vp)
	gen := s.Generation()

	s.RequestReset()
	assert.Equal(t, Resetting, s.Mode())
	events := s.Tick(vp)
	assert.Len(t, coordsOf(events, Despawn), 9)
	assert.Empty(t, coordsOf(events, Spawn))
	for _, ev := range events {
		assert.Equal(t, gen, ev.Generation)
	}
	assert.Zero(t, s.Len())
	assert.Equal(t, Streaming, s.Mode())
	assert.NotEqual(t, gen, s.Generation())

	events = s.Tick(vp)
	assert.Len(t, coordsOf(events, Spawn), 9)
	for _, ev := range events {
		assert.Equal(t, s.Generation(), ev.Generation)
	}
	assert.Equal(t, uint64(1), s.Stats().Resets)
}

func TestRegenerateChangesTerrain(t *testing.T) {
	s := newStreamer(t, smallConfig())
	vp := mgl64.Vec2{8, 8}
	s.Tick(vp)
	before, _ := s.Chunk(chunk.Coord{X: 1, Y: 1})

	w := s.Config().World
	w.ElevationSeed, w.MoistureSeed = 7, 8
	require.NoError(t, s.Regenerate(w))
	assert.Equal(t, Resetting, s.Mode())
	// Old chunks stay readable until the reset tick.
	assert.Equal(t, 9, s.Len())

	s.Tick(vp)
	s.Tick(vp)
	after, ok := s.Chunk(chunk.Coord{X: 1, Y: 1})
	require.True(t, ok)
	assert.NotEqual(t, before.Counts(), after.Counts())
	assert.Equal(t, int64(7), s.Sampler().World().ElevationSeed)
}

func TestRegenerateRejectsInvalid(t *testing.T) {
	s := newStreamer(t, smallConfig())
	s.Tick(mgl64.Vec2{8, 8})
	w := s.Config().World
	w.Octaves = 0
	err := s.Regenerate(w)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Equal(t, Streaming, s.Mode())
	assert.Equal(t, 5, s.Config().World.Octaves)
}

func TestTileAtAndCheckMove(t *testing.T) {
	s := newStreamer(t, smallConfig())

	_, ok := s.TileAt(mgl64.Vec2{8, 8})
	assert.False(t, ok)
	assert.Equal(t, MoveNoChunk, s.CheckMove(mgl64.Vec2{8, 8}))

	s.Tick(mgl64.Vec2{8, 8})
	for y := 0; y < 48; y += 3 {
		for x := 0; x < 48; x += 3 {
			pos := mgl64.Vec2{float64(x) + 0.5, float64(y) + 0.5}
			k, ok := s.TileAt(pos)
			require.True(t, ok)
			ch, _ := s.Chunk(chunk.Coord{X: x / 16, Y: y / 16})
			want, _ := ch.At(x%16, y%16)
			assert.Equal(t, want, k)

			res := s.CheckMove(pos)
			if biome.IsWalkable(k) {
				assert.Equal(t, MoveLegal, res)
			} else {
				assert.Equal(t, MoveBlocked, res)
			}
		}
	}
	assert.Equal(t, MoveNoChunk, s.CheckMove(mgl64.Vec2{-0.5, 4}))
	assert.Equal(t, MoveNoChunk, s.CheckMove(mgl64.Vec2{60, 4}))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Streaming.DespawnDistance = 2
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg = smallConfig()
	cfg.Layout.ChunkHeight = 0
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "resetting", Resetting.String())
	assert.Equal(t, "spawn", Spawn.String())
	assert.Equal(t, "no chunk", MoveNoChunk.String())
}
