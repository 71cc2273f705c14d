package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/velmoth/gltf_viewer/gltfasset"
)

func testModel(t *testing.T) *gltfasset.Model {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]uint32{"POSITION": pos},
			Indices:    gltf.Index(idx),
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "root", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	model, err := gltfasset.AssembleModel(&gltfasset.Document{Doc: doc}, gltfasset.ModelInfo{
		Attributes: gltfasset.AttrLayoutP,
	})
	if err != nil {
		t.Fatal(err)
	}
	return model
}

func get(t *testing.T, server *httptest.Server, path string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, body
}

func TestHandlers(t *testing.T) {
	server := httptest.NewServer(newRouter(testModel(t), "triangle.gltf"))
	defer server.Close()

	status, body := get(t, server, "/json/model")
	if status != http.StatusOK {
		t.Fatalf("/json/model status %d", status)
	}
	var summary map[string]interface{}
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("/json/model is not json: %v", err)
	}
	if summary["name"] != "triangle.gltf" || summary["meshes"] != float64(1) {
		t.Errorf("unexpected model summary %v", summary)
	}

	status, body = get(t, server, "/json/meshes")
	if status != http.StatusOK {
		t.Fatalf("/json/meshes status %d", status)
	}
	var meshes []jMesh
	if err := json.Unmarshal(body, &meshes); err != nil {
		t.Fatalf("/json/meshes is not json: %v", err)
	}
	if len(meshes) != 1 || meshes[0].Name != "triangle" || len(meshes[0].Primitives) != 1 {
		t.Errorf("unexpected meshes %v", meshes)
	}
	if p := meshes[0].Primitives[0]; p.VertexCount != 3 || p.IndexCount != 3 || p.IndexWidth != 1 {
		t.Errorf("unexpected primitive %+v", p)
	}

	status, body = get(t, server, "/json/meshes/0")
	if status != http.StatusOK {
		t.Fatalf("/json/meshes/0 status %d", status)
	}
	var mesh jMesh
	if err := json.Unmarshal(body, &mesh); err != nil {
		t.Fatalf("/json/meshes/0 is not json: %v", err)
	}
	if mesh.Name != "triangle" {
		t.Errorf("unexpected mesh %v", mesh)
	}

	status, body = get(t, server, "/json/attachments")
	if status != http.StatusOK {
		t.Fatalf("/json/attachments status %d", status)
	}
	var attachments []map[string]interface{}
	if err := json.Unmarshal(body, &attachments); err != nil {
		t.Fatalf("/json/attachments is not json: %v", err)
	}
	if len(attachments) != 1 {
		t.Fatalf("got %d attachments; expected 1", len(attachments))
	}
	if transform, ok := attachments[0]["transform"].([]interface{}); !ok || len(transform) != 16 {
		t.Errorf("attachment transform %v; expected 16 matrix elements", attachments[0]["transform"])
	}

	status, body = get(t, server, "/dump/vertices")
	if status != http.StatusOK || len(body) != 36 {
		t.Errorf("/dump/vertices status %d with %d bytes; expected 200 with 36", status, len(body))
	}

	status, body = get(t, server, "/dump/indices")
	if status != http.StatusOK || len(body) != 3 {
		t.Errorf("/dump/indices status %d with %d bytes; expected 200 with 3", status, len(body))
	}
}

func TestHandlerMeshErrors(t *testing.T) {
	server := httptest.NewServer(newRouter(testModel(t), "triangle.gltf"))
	defer server.Close()

	if status, _ := get(t, server, "/json/meshes/junk"); status != http.StatusInternalServerError {
		t.Errorf("/json/meshes/junk status %d; expected 500", status)
	}
	if status, _ := get(t, server, "/json/meshes/5"); status != http.StatusInternalServerError {
		t.Errorf("/json/meshes/5 status %d; expected 500", status)
	}
}
