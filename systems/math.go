package systems

import "hash/fnv"

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// lerp interpolates from a to b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SeedFromID derives a stable 32-bit seed from a design identifier.
func SeedFromID(id string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return h.Sum32()
}

// unitHash maps (seed, a, b, c) to a pseudo-random value in [0, 1).
// It holds no state: identical inputs always give identical outputs.
func unitHash(seed uint32, a, b, c int) float64 {
	h := seed*1442695041 + uint32(a)*2654435761 + uint32(b)*374761393 + uint32(c)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h = (h ^ (h >> 16)) * 2246822519
	h ^= h >> 15
	return float64(h&0x00FFFFFF) / float64(0x01000000)
}
