package geom

// Hash2D maps integer lattice coordinates and a seed to a deterministic pseudo-random value
// in [0, 1]. Same inputs, same output, on every run and platform.
func Hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

// Signed maps Hash2D to [-1, 1].
func Signed(x, y, seed int32) float32 {
	return Hash2D(x, y, seed)*2 - 1
}
