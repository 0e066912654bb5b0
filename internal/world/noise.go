package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseField samples layered simplex noise at hex centers.
// Values are normalized to [0, 1).
type NoiseField struct {
	noise       opensimplex.Noise
	Octaves     int
	Frequency   float64
	Persistence float64
}

// NewNoiseField creates a field for the given seed with gentle defaults.
func NewNoiseField(seed int64) *NoiseField {
	return &NoiseField{
		noise:       opensimplex.NewNormalized(seed),
		Octaves:     3,
		Frequency:   0.08,
		Persistence: 0.5,
	}
}

// At returns the fractal noise value at a hex center.
func (f *NoiseField) At(h HexCoord) float64 {
	p := h.ToPoint()
	return octaveNoise(f.noise, p.X, p.Y, f.Octaves, f.Frequency, f.Persistence)
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
