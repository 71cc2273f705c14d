package gltfasset

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// Primitive is one drawable geometry unit: its vertex byte range and index
// element range inside the shared buffers of the mesh asset table, plus an
// optional material reference.
type Primitive struct {
	Vertices AttributeRange
	Indices  IndexRange
	Material *ReferenceIndex
}

type Mesh struct {
	Name       string
	Primitives []Primitive
}

// MeshAsset owns the merged attribute buffer, the merged index buffer and
// the assembled mesh list of one load.
type MeshAsset struct {
	Attributes *AttributesData
	Indices    *IndicesData
	List       ElementList[Mesh]
}

func NewMeshAsset(flags AttributeFlag, minIndexWidth uint32) (*MeshAsset, error) {
	attributes, err := NewAttributesData(flags)
	if err != nil {
		return nil, err
	}
	indices, err := NewIndicesData(minIndexWidth)
	if err != nil {
		return nil, err
	}
	return &MeshAsset{Attributes: attributes, Indices: indices}, nil
}

// ReadDocument assembles every mesh in document order. The first failing
// primitive aborts the whole read; the error carries the mesh and primitive
// position for diagnostics.
func (ma *MeshAsset) ReadDocument(doc *Document) error {
	for iMesh, docMesh := range doc.Doc.Meshes {
		primitives := make([]Primitive, 0, len(docMesh.Primitives))
		for iPrim, docPrim := range docMesh.Primitives {
			primitive, err := ma.readPrimitive(doc, docPrim)
			if err != nil {
				return errors.Wrapf(err, "mesh %d primitive %d", iMesh, iPrim)
			}
			primitives = append(primitives, primitive)
		}
		ma.List.Push(ReferenceIndex(iMesh), Mesh{Name: docMesh.Name, Primitives: primitives})
	}
	return nil
}

func (ma *MeshAsset) readPrimitive(doc *Document, docPrim *gltf.Primitive) (Primitive, error) {
	if docPrim.Mode != gltf.PrimitiveTriangles {
		return Primitive{}, errors.Errorf("unsupported render mode %v", docPrim.Mode)
	}

	vertices, err := ma.Attributes.Extend(doc, docPrim)
	if err != nil {
		return Primitive{}, err
	}
	indices, err := ma.Indices.Extend(doc, docPrim)
	if err != nil {
		return Primitive{}, err
	}

	var material *ReferenceIndex
	if docPrim.Material != nil {
		ref := ReferenceIndex(*docPrim.Material)
		material = &ref
	}
	return Primitive{Vertices: vertices, Indices: indices, Material: material}, nil
}
