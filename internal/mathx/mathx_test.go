package mathx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDivNegative(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FloorDiv(c.a, c.b), "FloorDiv(%d, %d)", c.a, c.b)
	}
	assert.Equal(t, 15, Mod(-1, 16))
	assert.Equal(t, 0, Mod(-16, 16))
}

func TestSmoothstepEdgesAndMonotonic(t *testing.T) {
	const e0, e1 = 0.18, 0.26

	assert.Equal(t, 0.0, Smoothstep(e0, e1, e0))
	assert.Equal(t, 0.0, Smoothstep(e0, e1, -3))
	assert.Equal(t, 1.0, Smoothstep(e0, e1, e1))
	assert.Equal(t, 1.0, Smoothstep(e0, e1, 7))

	prev := Smoothstep(e0, e1, e0)
	for x := e0; x <= e1; x += 0.0005 {
		v := Smoothstep(e0, e1, x)
		if v < prev {
			t.Fatalf("smoothstep decreased at %f: %f < %f", x, v, prev)
		}
		prev = v
	}
	assert.InDelta(t, 0.5, Smoothstep(e0, e1, (e0+e1)/2), 1e-12)
}

func TestSmoothstepDegenerateEdges(t *testing.T) {
	assert.Equal(t, 0.0, Smoothstep(0.5, 0.5, 0.4))
	assert.Equal(t, 1.0, Smoothstep(0.5, 0.5, 0.5))
}

func TestSubSeedIndependent(t *testing.T) {
	assert.Equal(t, SubSeed(42, 1), SubSeed(42, 1))
	assert.NotEqual(t, SubSeed(42, 1), SubSeed(42, 2))
	assert.NotEqual(t, SubSeed(42, 1), SubSeed(43, 1))
	assert.NotEqual(t, Hash2(7, 1, 0), Hash2(7, 0, 1))
}
