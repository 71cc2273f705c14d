package render

import (
	"encoding/binary"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/velmoth/gltf_viewer/gltfasset"
)

// mixedWidthModel assembles a mesh whose first primitive stores 16 bit
// indices and whose second needs 32 bits, so the gap-free asset buffer
// places the wider range at an offset that is not a multiple of 4.
func mixedWidthModel(t *testing.T) *gltfasset.Model {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	small := modeler.WriteIndices(doc, []uint32{0, 1, 2})
	large := modeler.WriteIndices(doc, []uint32{0, 1, 70000})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "mixed",
		Primitives: []*gltf.Primitive{
			{Attributes: map[string]uint32{"POSITION": pos}, Indices: gltf.Index(small)},
			{Attributes: map[string]uint32{"POSITION": pos}, Indices: gltf.Index(large)},
		},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "root", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	model, err := gltfasset.AssembleModel(&gltfasset.Document{Doc: doc}, gltfasset.ModelInfo{
		Attributes:    gltfasset.AttrLayoutP,
		MinIndexWidth: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	return model
}

func TestAlignIndexRangesMixedWidth(t *testing.T) {
	model := mixedWidthModel(t)
	primitives := model.Meshes.At(0).Primitives
	if len(primitives) != 2 {
		t.Fatalf("got %d primitives; expected 2", len(primitives))
	}
	if w := primitives[0].Indices.ElementWidth; w != 2 {
		t.Fatalf("first primitive width=%d; expected 2", w)
	}
	if w := primitives[1].Indices.ElementWidth; w != 4 {
		t.Fatalf("second primitive width=%d; expected 4", w)
	}
	if off := primitives[1].Indices.ByteOffset; off%4 == 0 {
		t.Fatalf("asset offset %d is already aligned; the fixture must misalign it", off)
	}

	buf, offsets := alignIndexRanges(model)
	for i := range primitives {
		indices := &primitives[i].Indices
		off, ok := offsets[indices.ByteOffset]
		if !ok {
			t.Fatalf("primitive %d has no GPU offset for asset offset %d", i, indices.ByteOffset)
		}
		if off%uint64(indices.ElementWidth) != 0 {
			t.Errorf("primitive %d GPU offset %d is not %d-aligned", i, off, indices.ElementWidth)
		}
	}

	// 6 bytes of 16 bit indices, 2 padding bytes, 12 bytes of 32 bit indices
	if len(buf) != 20 {
		t.Errorf("GPU index buffer holds %d bytes; expected 20", len(buf))
	}
	wide := offsets[primitives[1].Indices.ByteOffset]
	if got := binary.LittleEndian.Uint32(buf[wide+8:]); got != 70000 {
		t.Errorf("last 32 bit element=%d; expected 70000", got)
	}
	if got := binary.LittleEndian.Uint16(buf[offsets[primitives[0].Indices.ByteOffset]+4:]); got != 2 {
		t.Errorf("last 16 bit element=%d; expected 2", got)
	}
}

func TestAlignIndexRangesUniformWidth(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]uint32{"POSITION": pos},
			Indices:    gltf.Index(idx),
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "root", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	model, err := gltfasset.AssembleModel(&gltfasset.Document{Doc: doc}, gltfasset.ModelInfo{
		Attributes:    gltfasset.AttrLayoutP,
		MinIndexWidth: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	buf, offsets := alignIndexRanges(model)
	if len(buf) != len(model.IndexBytes) {
		t.Errorf("GPU buffer holds %d bytes; expected the asset buffer's %d unchanged",
			len(buf), len(model.IndexBytes))
	}
	if off := offsets[0]; off != 0 {
		t.Errorf("single range moved to offset %d; expected 0", off)
	}
}
