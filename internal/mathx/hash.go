package mathx

// Stable across versions; no use of math/rand.

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Hash2 returns a stable hash for 2D integer coordinates + seed.
func Hash2(seed int64, x, y int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	return mix64(uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xbf58476d1ce4e5b9))
}

// SubSeed derives an independent seed for a secondary noise layer.
func SubSeed(seed int64, layer int) int64 {
	return int64(mix64(uint64(seed) ^ (uint64(layer) * 0xc2b2ae3d27d4eb4f)))
}
