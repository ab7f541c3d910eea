// Package common holds screen constants and small math helpers.
package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is the downward acceleration in pixels per second squared.
	Gravity = 1800.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
