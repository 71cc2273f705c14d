package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/velmoth/gltf_viewer/gltfasset"
)

var (
	servedModel *gltfasset.Model
	servedName  string
)

func newRouter(model *gltfasset.Model, name string) *mux.Router {
	servedModel = model
	servedName = name

	r := mux.NewRouter()
	r.HandleFunc("/json/model", HandlerModel)
	r.HandleFunc("/json/meshes", HandlerMeshes)
	r.HandleFunc("/json/meshes/{id}", HandlerMesh)
	r.HandleFunc("/json/nodes", HandlerNodes)
	r.HandleFunc("/json/attachments", HandlerAttachments)
	r.HandleFunc("/dump/vertices", HandlerDumpVertices)
	r.HandleFunc("/dump/indices", HandlerDumpIndices)
	return r
}

// StartServer serves the inspection API for one loaded model.
func StartServer(addr string, model *gltfasset.Model, name string) error {
	r := newRouter(model, name)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
