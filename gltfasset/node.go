package gltfasset

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// Node mirrors one document node: display name, optional mesh reference,
// child references as the document numbers them, and the local transform.
// Nodes form a forest; the same node may be a child of several parents.
type Node struct {
	Name           string
	Mesh           *ReferenceIndex
	Children       []ReferenceIndex
	LocalTransform mgl32.Mat4
}

// NodeAsset owns the node list of one load and the attachments produced
// while resolving a scene against it.
type NodeAsset struct {
	List        ElementList[Node]
	Attachments NodeAttachments
}

// ReadDocument copies every document node in order. Child references stay
// unresolved document indices; resolution happens per scene in Resolve.
func (na *NodeAsset) ReadDocument(doc *Document) error {
	for iNode, docNode := range doc.Doc.Nodes {
		children := make([]ReferenceIndex, len(docNode.Children))
		for i, child := range docNode.Children {
			children[i] = ReferenceIndex(child)
		}
		var mesh *ReferenceIndex
		if docNode.Mesh != nil {
			ref := ReferenceIndex(*docNode.Mesh)
			mesh = &ref
		}
		na.List.Push(ReferenceIndex(iNode), Node{
			Name:           docNode.Name,
			Mesh:           mesh,
			Children:       children,
			LocalTransform: nodeLocalTransform(docNode),
		})
	}
	return nil
}

// Resolve walks the scene depth first and rebuilds the attachment list from
// scratch, so resolving the same scene twice yields identical output. Each
// visit composes world = parentWorld * local; a node reachable through two
// parents is visited once per parent, each visit with its own world
// transform. The walk assumes an acyclic node graph, as glTF guarantees;
// cycles are not detected.
func (na *NodeAsset) Resolve(scene *Scene, meshes *ElementList[Mesh], root mgl32.Mat4) error {
	na.Attachments.reset()
	for _, ref := range scene.nodes {
		if err := na.resolveNode(ref, root, meshes); err != nil {
			return err
		}
	}
	return nil
}

func (na *NodeAsset) resolveNode(ref ReferenceIndex, parentWorld mgl32.Mat4, meshes *ElementList[Mesh]) error {
	node := na.List.Get(ref)
	if node == nil {
		return errors.Errorf("node %d is not present in the document", ref)
	}

	world := parentWorld.Mul4(node.LocalTransform)
	if node.Mesh != nil {
		storage, ok := meshes.Resolve(*node.Mesh)
		if !ok {
			return errors.Errorf("node %d references unknown mesh %d", ref, *node.Mesh)
		}
		na.Attachments.append(Attachment{Mesh: storage, Transform: world})
	}
	for _, child := range node.Children {
		if err := na.resolveNode(child, world, meshes); err != nil {
			return err
		}
	}
	return nil
}

var identityMatrix = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeLocalTransform takes the node matrix verbatim when one is given;
// glTF stores column-major 16-element matrices, same as mgl32.Mat4.
// Otherwise the transform is composed as translation * rotation * scale,
// treating zero-valued fields as their glTF defaults.
func nodeLocalTransform(docNode *gltf.Node) mgl32.Mat4 {
	if docNode.Matrix != identityMatrix && docNode.Matrix != ([16]float32{}) {
		return mgl32.Mat4(docNode.Matrix)
	}

	transform := mgl32.Translate3D(docNode.Translation[0], docNode.Translation[1], docNode.Translation[2])
	if docNode.Rotation != ([4]float32{}) && docNode.Rotation != ([4]float32{0, 0, 0, 1}) {
		q := mgl32.Quat{
			W: docNode.Rotation[3],
			V: mgl32.Vec3{docNode.Rotation[0], docNode.Rotation[1], docNode.Rotation[2]},
		}
		transform = transform.Mul4(q.Normalize().Mat4())
	}
	if docNode.Scale != ([3]float32{}) && docNode.Scale != ([3]float32{1, 1, 1}) {
		transform = transform.Mul4(mgl32.Scale3D(docNode.Scale[0], docNode.Scale[1], docNode.Scale[2]))
	}
	return transform
}
