package render

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/velmoth/gltf_viewer/gltfasset"
)

var channelFormats = map[gltfasset.AttributeFlag]wgpu.VertexFormat{
	gltfasset.AttrPosition:  wgpu.VertexFormatFloat32x3,
	gltfasset.AttrNormal:    wgpu.VertexFormatFloat32x3,
	gltfasset.AttrTangent:   wgpu.VertexFormatFloat32x4,
	gltfasset.AttrTexCoord0: wgpu.VertexFormatFloat32x2,
	gltfasset.AttrTexCoord1: wgpu.VertexFormatFloat32x2,
	gltfasset.AttrColor0:    wgpu.VertexFormatFloat32x4,
	gltfasset.AttrJoints0:   wgpu.VertexFormatUint16x4,
	gltfasset.AttrWeights0:  wgpu.VertexFormatFloat32x4,
}

// VertexLayout describes the interleaved record produced by the asset layer
// for the given flag set. Shader locations follow the channel order.
func VertexLayout(flags gltfasset.AttributeFlag) wgpu.VertexBufferLayout {
	channels := flags.Channels()
	attributes := make([]wgpu.VertexAttribute, 0, len(channels))

	var offset uint64
	for location, channel := range channels {
		attributes = append(attributes, wgpu.VertexAttribute{
			Format:         channelFormats[channel.Flag],
			Offset:         offset,
			ShaderLocation: uint32(location),
		})
		offset += uint64(channel.Size)
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}
}
