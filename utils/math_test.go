package utils

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var alignUpTests = []struct {
	in_size      uint64
	in_alignment uint64
	out          uint64
}{
	{0, 256, 0},
	{1, 256, 256},
	{64, 256, 256},
	{256, 256, 256},
	{257, 256, 512},
	{64, 16, 64},
	{65, 16, 80},
}

func TestAlignUp(t *testing.T) {
	for _, test := range alignUpTests {
		if got := AlignUp(test.in_size, test.in_alignment); got != test.out {
			t.Errorf("AlignUp(%d,%d)=%d; expected %d", test.in_size, test.in_alignment, got, test.out)
		}
	}
}

func TestMatTranslation(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	if got := MatTranslation(m); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("MatTranslation=%v; expected (1,2,3)", got)
	}
}

func TestFloatArray32to64(t *testing.T) {
	got := FloatArray32to64([]float32{0, 1.5, -2})
	if len(got) != 3 || got[0] != 0 || got[1] != 1.5 || got[2] != -2 {
		t.Errorf("FloatArray32to64=%v; expected [0 1.5 -2]", got)
	}
	if got := FloatArray32to64(nil); len(got) != 0 {
		t.Errorf("FloatArray32to64(nil)=%v; expected empty", got)
	}
}
