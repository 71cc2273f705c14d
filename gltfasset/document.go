package gltfasset

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// Document is a read-only view over an externally parsed glTF file. The
// underlying gltf.Document already carries decoded buffer data, so every
// accessor read below is a pure in-memory transform. The view lives only
// for the duration of one load and is dropped afterwards.
type Document struct {
	Doc *gltf.Document
}

func OpenDocument(path string) (*Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse glTF document %q", path)
	}
	return &Document{Doc: doc}, nil
}

func (d *Document) accessor(index uint32) (*gltf.Accessor, error) {
	if int(index) >= len(d.Doc.Accessors) {
		return nil, errors.Errorf("accessor %d is out of range (document has %d)", index, len(d.Doc.Accessors))
	}
	return d.Doc.Accessors[index], nil
}
