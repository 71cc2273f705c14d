package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velmoth/gltf_viewer/gltfasset"
	"github.com/velmoth/gltf_viewer/utils"
	"github.com/velmoth/gltf_viewer/webutils"
)

type jPrimitive struct {
	FirstVertex  uint32  `json:"firstVertex"`
	VertexCount  uint32  `json:"vertexCount"`
	VertexOffset uint32  `json:"vertexByteOffset"`
	FirstIndex   uint32  `json:"firstIndex"`
	IndexCount   uint32  `json:"indexCount"`
	IndexOffset  uint32  `json:"indexByteOffset"`
	IndexWidth   uint32  `json:"indexWidth"`
	Material     *uint32 `json:"material,omitempty"`
}

type jMesh struct {
	Name       string       `json:"name"`
	Primitives []jPrimitive `json:"primitives"`
}

func meshToJson(mesh *gltfasset.Mesh) jMesh {
	jm := jMesh{Name: mesh.Name, Primitives: make([]jPrimitive, 0, len(mesh.Primitives))}
	for i := range mesh.Primitives {
		p := &mesh.Primitives[i]
		jp := jPrimitive{
			FirstVertex:  p.Vertices.FirstVertex,
			VertexCount:  p.Vertices.VertexCount,
			VertexOffset: p.Vertices.ByteOffset,
			FirstIndex:   p.Indices.FirstElement,
			IndexCount:   p.Indices.ElementCount,
			IndexOffset:  p.Indices.ByteOffset,
			IndexWidth:   p.Indices.ElementWidth,
		}
		if p.Material != nil {
			material := uint32(*p.Material)
			jp.Material = &material
		}
		jm.Primitives = append(jm.Primitives, jp)
	}
	return jm
}

func HandlerModel(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, map[string]interface{}{
		"name":         servedName,
		"attributes":   servedModel.Attributes.String(),
		"vertexStride": servedModel.VertexStride,
		"vertexCount":  servedModel.VertexCount,
		"indexCount":   servedModel.IndexCount,
		"meshes":       servedModel.Meshes.Len(),
		"nodes":        servedModel.Nodes.Len(),
		"materials":    servedModel.Materials.Len(),
		"attachments":  len(servedModel.Attachments),
	})
}

func HandlerMeshes(w http.ResponseWriter, r *http.Request) {
	meshes := make([]jMesh, 0, servedModel.Meshes.Len())
	for i := 0; i < servedModel.Meshes.Len(); i++ {
		meshes = append(meshes, meshToJson(servedModel.Meshes.At(gltfasset.StorageIndex(i))))
	}
	webutils.WriteJson(w, meshes)
}

func HandlerMesh(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		webutils.WriteError(w, fmt.Errorf("mesh id %q is not integer", mux.Vars(r)["id"]))
		return
	}
	if id < 0 || id >= servedModel.Meshes.Len() {
		webutils.WriteError(w, fmt.Errorf("mesh %d is out of range", id))
		return
	}
	webutils.WriteJson(w, meshToJson(servedModel.Meshes.At(gltfasset.StorageIndex(id))))
}

func HandlerNodes(w http.ResponseWriter, r *http.Request) {
	type jNode struct {
		Name     string   `json:"name"`
		Mesh     *uint32  `json:"mesh,omitempty"`
		Children []uint32 `json:"children,omitempty"`
	}
	nodes := make([]jNode, 0, servedModel.Nodes.Len())
	for i := 0; i < servedModel.Nodes.Len(); i++ {
		node := servedModel.Nodes.At(gltfasset.StorageIndex(i))
		jn := jNode{Name: node.Name}
		if node.Mesh != nil {
			mesh := uint32(*node.Mesh)
			jn.Mesh = &mesh
		}
		for _, child := range node.Children {
			jn.Children = append(jn.Children, uint32(child))
		}
		nodes = append(nodes, jn)
	}
	webutils.WriteJson(w, nodes)
}

func HandlerAttachments(w http.ResponseWriter, r *http.Request) {
	type jAttachment struct {
		Mesh        uint32     `json:"mesh"`
		Translation [3]float32 `json:"translation"`
		Transform   []float64  `json:"transform"`
	}
	attachments := make([]jAttachment, 0, len(servedModel.Attachments))
	for _, attachment := range servedModel.Attachments {
		attachments = append(attachments, jAttachment{
			Mesh:        uint32(attachment.Mesh),
			Translation: utils.MatTranslation(attachment.Transform),
			Transform:   utils.FloatArray32to64(attachment.Transform[:]),
		})
	}
	webutils.WriteJson(w, attachments)
}

func HandlerDumpVertices(w http.ResponseWriter, r *http.Request) {
	webutils.WriteBlob(w, servedModel.VertexBytes, servedName+".vertices.bin")
}

func HandlerDumpIndices(w http.ResponseWriter, r *http.Request) {
	webutils.WriteBlob(w, servedModel.IndexBytes, servedName+".indices.bin")
}
