package gltfasset

// Material keeps the constant factors a draw call needs. Texture images and
// full PBR evaluation are out of scope; factors are enough for per-draw
// shading constants.
type Material struct {
	BaseColorFactor [4]float32
	MetallicFactor  float32
	EmissiveFactor  [3]float32
}

// DefaultMaterial is used for primitives without a material reference,
// matching the glTF default factors.
var DefaultMaterial = Material{
	BaseColorFactor: [4]float32{1, 1, 1, 1},
	MetallicFactor:  1,
}

// UniformBytes serializes the factors into the fixed 32-byte layout the
// shading pipeline consumes: base color vec4, emissive vec3, metallic.
func (m *Material) UniformBytes() []byte {
	buf := make([]byte, 0, 32)
	buf = appendFloat32(buf, m.BaseColorFactor[:]...)
	buf = appendFloat32(buf, m.EmissiveFactor[:]...)
	buf = appendFloat32(buf, m.MetallicFactor)
	return buf
}

type MaterialAsset struct {
	List ElementList[Material]
}

func (ma *MaterialAsset) ReadDocument(doc *Document) error {
	for iMaterial, docMaterial := range doc.Doc.Materials {
		material := DefaultMaterial
		material.EmissiveFactor = docMaterial.EmissiveFactor
		if pbr := docMaterial.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				material.BaseColorFactor = *pbr.BaseColorFactor
			}
			if pbr.MetallicFactor != nil {
				material.MetallicFactor = *pbr.MetallicFactor
			}
		}
		ma.List.Push(ReferenceIndex(iMaterial), material)
	}
	return nil
}
