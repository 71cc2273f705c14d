package gltfasset

import "github.com/pkg/errors"

// Scene is the ordered root-node set that drives hierarchical resolution.
type Scene struct {
	nodes []ReferenceIndex
}

// SceneFromDocument selects the document's default scene, or the first one
// in document order when no default is set.
func SceneFromDocument(doc *Document) (*Scene, error) {
	d := doc.Doc
	if len(d.Scenes) == 0 {
		return nil, errors.WithStack(ErrNoScene)
	}
	docScene := d.Scenes[0]
	if d.Scene != nil && int(*d.Scene) < len(d.Scenes) {
		docScene = d.Scenes[*d.Scene]
	}

	nodes := make([]ReferenceIndex, len(docScene.Nodes))
	for i, ref := range docScene.Nodes {
		nodes[i] = ReferenceIndex(ref)
	}
	return &Scene{nodes: nodes}, nil
}

func (s *Scene) Roots() []ReferenceIndex {
	return s.nodes
}
