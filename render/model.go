package render

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"

	"github.com/velmoth/gltf_viewer/gltfasset"
	"github.com/velmoth/gltf_viewer/utils"
)

// Model holds the GPU resources of one uploaded asset model plus the asset
// tables needed at draw time. The attachment uniform buffer stores one
// world matrix per attachment at an aligned stride, addressed with dynamic
// offsets during recording.
type Model struct {
	Assets *gltfasset.Model

	vertex           *wgpu.Buffer
	index            *wgpu.Buffer
	indexOffsets     map[uint32]uint64
	attachments      *wgpu.Buffer
	attachmentStride uint64
}

// UploadModel creates device-local vertex, index and attachment buffers and
// fills them from the assembled model.
func UploadModel(dev *Device, assets *gltfasset.Model) (*Model, error) {
	if len(assets.VertexBytes) == 0 {
		return nil, errors.Errorf("model has no vertex data")
	}
	for _, attachment := range assets.Attachments {
		mesh := assets.Meshes.At(attachment.Mesh)
		for _, primitive := range mesh.Primitives {
			if primitive.Indices.ElementWidth == 1 {
				// WebGPU has no 8-bit index format; reload with MinIndexWidth 2.
				return nil, errors.Errorf("mesh %q uses an 8-bit index range", mesh.Name)
			}
		}
	}

	vertex, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "model vertices",
		Contents: assets.VertexBytes,
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create vertex buffer")
	}

	indexData, indexOffsets := alignIndexRanges(assets)
	index, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "model indices",
		Contents: indexData,
		Usage:    wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertex.Release()
		return nil, errors.Wrap(err, "Failed to create index buffer")
	}

	stride := utils.AlignUp(64, dev.MinUniformAlignment())
	attachmentData := make([]byte, stride*uint64(len(assets.Attachments)))
	for i, attachment := range assets.Attachments {
		putMatrix(attachmentData[uint64(i)*stride:], attachment.Transform)
	}
	attachments, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "model attachments",
		Contents: attachmentData,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		index.Release()
		vertex.Release()
		return nil, errors.Wrap(err, "Failed to create attachment buffer")
	}

	return &Model{
		Assets:           assets,
		vertex:           vertex,
		index:            index,
		indexOffsets:     indexOffsets,
		attachments:      attachments,
		attachmentStride: stride,
	}, nil
}

// alignIndexRanges repacks the gap-free index buffer for the GPU. WebGPU
// requires an index view's byte offset to be a multiple of its element
// width, so a 16 bit range of odd element count would leave a following
// 32 bit range misaligned. Each range is padded up to its width before
// copying; the returned map translates asset byte offsets into GPU ones.
func alignIndexRanges(assets *gltfasset.Model) ([]byte, map[uint32]uint64) {
	buf := make([]byte, 0, len(assets.IndexBytes))
	offsets := make(map[uint32]uint64)
	for i := 0; i < assets.Meshes.Len(); i++ {
		mesh := assets.Meshes.At(gltfasset.StorageIndex(i))
		for iPrim := range mesh.Primitives {
			indices := &mesh.Primitives[iPrim].Indices
			for uint64(len(buf))%uint64(indices.ElementWidth) != 0 {
				buf = append(buf, 0)
			}
			offsets[indices.ByteOffset] = uint64(len(buf))
			end := indices.ByteOffset + indices.ElementCount*indices.ElementWidth
			buf = append(buf, assets.IndexBytes[indices.ByteOffset:end]...)
		}
	}
	return buf, offsets
}

// AttachmentBinding returns the uniform buffer and per-element stride for
// building the dynamic-offset bind group.
func (m *Model) AttachmentBinding() (*wgpu.Buffer, uint64) {
	return m.attachments, m.attachmentStride
}

func (m *Model) VertexBuffer() *wgpu.Buffer {
	return m.vertex
}

// Record issues one indexed draw per attachment per primitive: bind the
// attachment's world matrix via dynamic offset, point the index view at the
// primitive's range, and draw with the primitive's first vertex as base.
func (m *Model) Record(rp *wgpu.RenderPassEncoder, attachmentGroup *wgpu.BindGroup) {
	rp.SetVertexBuffer(0, m.vertex, 0, wgpu.WholeSize)

	for i, attachment := range m.Assets.Attachments {
		if attachmentGroup != nil {
			rp.SetBindGroup(0, attachmentGroup, []uint32{uint32(uint64(i) * m.attachmentStride)})
		}
		mesh := m.Assets.Meshes.At(attachment.Mesh)
		for iPrim := range mesh.Primitives {
			primitive := &mesh.Primitives[iPrim]
			indices := primitive.Indices
			rp.SetIndexBuffer(m.index, indexFormat(indices.ElementWidth),
				m.indexOffsets[indices.ByteOffset], uint64(indices.ElementCount*indices.ElementWidth))
			rp.DrawIndexed(indices.ElementCount, 1, 0, int32(primitive.Vertices.FirstVertex), 0)
		}
	}
}

func (m *Model) Release() {
	if m.attachments != nil {
		m.attachments.Release()
		m.attachments = nil
	}
	if m.index != nil {
		m.index.Release()
		m.index = nil
	}
	if m.vertex != nil {
		m.vertex.Release()
		m.vertex = nil
	}
}

func indexFormat(width uint32) wgpu.IndexFormat {
	if width == 2 {
		return wgpu.IndexFormatUint16
	}
	return wgpu.IndexFormatUint32
}

func putMatrix(dst []byte, m [16]float32) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
