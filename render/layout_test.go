package render

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/velmoth/gltf_viewer/gltfasset"
)

func TestVertexLayoutPNT(t *testing.T) {
	layout := VertexLayout(gltfasset.AttrLayoutPNT)

	if layout.ArrayStride != 32 {
		t.Errorf("stride=%d; expected 32", layout.ArrayStride)
	}
	if layout.StepMode != wgpu.VertexStepModeVertex {
		t.Errorf("unexpected step mode %v", layout.StepMode)
	}
	if len(layout.Attributes) != 3 {
		t.Fatalf("got %d attributes; expected 3", len(layout.Attributes))
	}

	expected := []struct {
		format wgpu.VertexFormat
		offset uint64
	}{
		{wgpu.VertexFormatFloat32x3, 0},
		{wgpu.VertexFormatFloat32x3, 12},
		{wgpu.VertexFormatFloat32x2, 24},
	}
	for i, e := range expected {
		attr := layout.Attributes[i]
		if attr.Format != e.format || attr.Offset != e.offset || attr.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d = %+v; expected format %v offset %d location %d",
				i, attr, e.format, e.offset, i)
		}
	}
}

func TestVertexLayoutJointsFormat(t *testing.T) {
	layout := VertexLayout(gltfasset.AttrPosition | gltfasset.AttrJoints0)

	if len(layout.Attributes) != 2 {
		t.Fatalf("got %d attributes; expected 2", len(layout.Attributes))
	}
	if layout.Attributes[1].Format != wgpu.VertexFormatUint16x4 {
		t.Errorf("joints format %v; expected Uint16x4", layout.Attributes[1].Format)
	}
	if layout.ArrayStride != 20 {
		t.Errorf("stride=%d; expected 20", layout.ArrayStride)
	}
}
