package gltfasset

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// ModelInfo configures one load operation.
type ModelInfo struct {
	Path       string
	Attributes AttributeFlag
	// MinIndexWidth floors the per-primitive index element width; pass 2
	// when the target API has no 8-bit index format. Zero means 1.
	MinIndexWidth uint32
	// RootTransform replaces the identity as the initial parent transform
	// of the scene traversal.
	RootTransform *mgl32.Mat4
}

// Model is the assembled, GPU-ready result of one load: merged buffers and
// asset tables, immutable from here on. Ownership of all storage moves here
// from the asset tables; the parsed document is already discarded.
type Model struct {
	Attributes   AttributeFlag
	VertexStride uint32
	VertexCount  uint32
	VertexBytes  []byte
	IndexCount   uint32
	IndexBytes   []byte
	Meshes       ElementList[Mesh]
	Nodes        ElementList[Node]
	Materials    ElementList[Material]
	Attachments  []Attachment
}

// MaterialFor resolves a primitive's material, falling back to the default
// material when the primitive carries no reference.
func (m *Model) MaterialFor(primitive *Primitive) Material {
	if primitive.Material != nil {
		if material := m.Materials.Get(*primitive.Material); material != nil {
			return *material
		}
	}
	return DefaultMaterial
}

// assetRepository sequences the read and resolve passes of one load. Every
// load constructs a fresh repository, so concurrent loads of independent
// documents share no state.
type assetRepository struct {
	meshes    *MeshAsset
	nodes     *NodeAsset
	materials *MaterialAsset
}

func newAssetRepository(info ModelInfo) (*assetRepository, error) {
	meshes, err := NewMeshAsset(info.Attributes, info.MinIndexWidth)
	if err != nil {
		return nil, err
	}
	return &assetRepository{
		meshes:    meshes,
		nodes:     &NodeAsset{},
		materials: &MaterialAsset{},
	}, nil
}

// LoadModel parses the document at info.Path and assembles it. Either a
// fully assembled model is returned, or nothing.
func LoadModel(info ModelInfo) (*Model, error) {
	doc, err := OpenDocument(info.Path)
	if err != nil {
		return nil, err
	}
	return AssembleModel(doc, info)
}

// AssembleModel runs the full load pipeline over an already parsed
// document: read passes for meshes, nodes and materials, scene selection,
// transform resolution, then ownership transfer into the model.
func AssembleModel(doc *Document, info ModelInfo) (*Model, error) {
	repo, err := newAssetRepository(info)
	if err != nil {
		return nil, err
	}

	if err := repo.meshes.ReadDocument(doc); err != nil {
		return nil, errors.Wrap(err, "Failed to read meshes")
	}
	if err := repo.nodes.ReadDocument(doc); err != nil {
		return nil, errors.Wrap(err, "Failed to read nodes")
	}
	if err := repo.materials.ReadDocument(doc); err != nil {
		return nil, errors.Wrap(err, "Failed to read materials")
	}

	scene, err := SceneFromDocument(doc)
	if err != nil {
		return nil, err
	}
	root := mgl32.Ident4()
	if info.RootTransform != nil {
		root = *info.RootTransform
	}
	if err := repo.nodes.Resolve(scene, &repo.meshes.List, root); err != nil {
		return nil, errors.Wrap(err, "Failed to resolve scene")
	}

	return &Model{
		Attributes:   repo.meshes.Attributes.flags,
		VertexStride: repo.meshes.Attributes.stride,
		VertexCount:  repo.meshes.Attributes.vertexCount,
		VertexBytes:  repo.meshes.Attributes.buffer,
		IndexCount:   repo.meshes.Indices.elementCount,
		IndexBytes:   repo.meshes.Indices.buffer,
		Meshes:       repo.meshes.List,
		Nodes:        repo.nodes.List,
		Materials:    repo.materials.List,
		Attachments:  repo.nodes.Attachments.List(),
	}, nil
}
