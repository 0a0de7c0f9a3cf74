package vmath

import "github.com/go-gl/mathgl/mgl64"

// Clamp01 bounds x to [0, 1]
func Clamp01(x float64) float64 {
	return mgl64.Clamp(x, 0, 1)
}

// Lerp interpolates from a to b, t clamped to [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}
