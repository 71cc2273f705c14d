package gltfasset

import "github.com/go-gl/mathgl/mgl32"

// Attachment is one resolved world transform, produced for every traversal
// visit of a mesh-bearing node. The list records instances, not nodes: a
// node referenced by two parents contributes two attachments.
type Attachment struct {
	Mesh      StorageIndex
	Transform mgl32.Mat4
}

type NodeAttachments struct {
	list []Attachment
}

func (a *NodeAttachments) reset() {
	a.list = a.list[:0]
}

func (a *NodeAttachments) append(attachment Attachment) {
	a.list = append(a.list, attachment)
}

func (a *NodeAttachments) Len() int {
	return len(a.list)
}

// List returns the attachments in traversal order.
func (a *NodeAttachments) List() []Attachment {
	return a.list
}
