package utils

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AlignUp rounds size up to the next multiple of alignment. alignment must
// be a power of two.
func AlignUp(size, alignment uint64) uint64 {
	return (size + alignment - 1) &^ (alignment - 1)
}

// MatTranslation extracts the translation column of a transform.
func MatTranslation(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}

func FloatArray32to64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
