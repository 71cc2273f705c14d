package main

import (
	"flag"
	"log"
	"strings"

	"github.com/velmoth/gltf_viewer/gltfasset"
	"github.com/velmoth/gltf_viewer/utils"
)

// meshinfo loads a glTF model and dumps the assembled asset tables without
// touching the GPU. Useful for checking how a document flattens.
func main() {
	var model, attr string
	var minIndexWidth uint
	flag.StringVar(&model, "model", "", "Path to glTF model file")
	flag.StringVar(&attr, "attr", "POSITION", "Comma-separated vertex attributes")
	flag.UintVar(&minIndexWidth, "minidx", 0, "Minimal index element width in bytes")
	flag.Parse()

	if model == "" {
		flag.PrintDefaults()
		return
	}

	flags, err := gltfasset.ParseAttributeFlags(strings.Split(attr, ","))
	if err != nil {
		log.Fatal(err)
	}

	assets, err := gltfasset.LoadModel(gltfasset.ModelInfo{
		Path:          model,
		Attributes:    flags,
		MinIndexWidth: uint32(minIndexWidth),
	})
	if err != nil {
		log.Fatal(err)
	}

	type summary struct {
		Attributes   string
		VertexStride uint32
		VertexCount  uint32
		IndexCount   uint32
		Meshes       int
		Nodes        int
		Materials    int
		Attachments  []gltfasset.Attachment
	}
	utils.Dump(summary{
		Attributes:   assets.Attributes.String(),
		VertexStride: assets.VertexStride,
		VertexCount:  assets.VertexCount,
		IndexCount:   assets.IndexCount,
		Meshes:       assets.Meshes.Len(),
		Nodes:        assets.Nodes.Len(),
		Materials:    assets.Materials.Len(),
		Attachments:  assets.Attachments,
	})

	for i := 0; i < assets.Meshes.Len(); i++ {
		utils.LogDump(assets.Meshes.At(gltfasset.StorageIndex(i)))
	}
}
