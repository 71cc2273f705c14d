package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/velmoth/gltf_viewer/config"
	"github.com/velmoth/gltf_viewer/gltfasset"
	"github.com/velmoth/gltf_viewer/render"
	"github.com/velmoth/gltf_viewer/web"
)

func main() {
	var addr, model, attr, cfg string
	var minIndexWidth uint
	var rootScale float64
	var gpu bool
	flag.StringVar(&addr, "i", "", "Address of server")
	flag.StringVar(&model, "model", "", "Path to glTF model file (.gltf or .glb)")
	flag.StringVar(&attr, "attr", "", "Comma-separated vertex attributes (POSITION,NORMAL,TEXCOORD_0,...)")
	flag.StringVar(&cfg, "cfg", "", "Path to yaml config file")
	flag.UintVar(&minIndexWidth, "minidx", 0, "Minimal index element width in bytes (1, 2 or 4)")
	flag.Float64Var(&rootScale, "rootscale", 0, "Uniform scale applied as the traversal root transform")
	flag.BoolVar(&gpu, "gpu", false, "Upload buffers to a WebGPU device after loading")
	flag.Parse()

	if cfg != "" {
		if err := config.Load(cfg); err != nil {
			log.Fatal(err)
		}
	}
	if addr != "" {
		config.SetListenAddr(addr)
	}
	if attr != "" {
		config.SetAttributes(strings.Split(attr, ","))
	}
	if minIndexWidth != 0 {
		config.SetMinIndexWidth(uint32(minIndexWidth))
	}
	if rootScale != 0 {
		config.SetRootScale(float32(rootScale))
	}

	if model == "" {
		flag.PrintDefaults()
		return
	}

	settings := config.Current()

	flags, err := gltfasset.ParseAttributeFlags(settings.Attributes)
	if err != nil {
		log.Fatal(err)
	}

	info := gltfasset.ModelInfo{
		Path:          model,
		Attributes:    flags,
		MinIndexWidth: settings.MinIndexWidth,
	}
	if gpu && info.MinIndexWidth < 2 {
		// WebGPU supports only 16 and 32 bit index formats
		info.MinIndexWidth = 2
	}
	if settings.RootScale != 1 {
		root := mgl32.Scale3D(settings.RootScale, settings.RootScale, settings.RootScale)
		info.RootTransform = &root
	}

	assets, err := gltfasset.LoadModel(info)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[load] %q: %d meshes, %d nodes, %d attachments, %d vertices (stride %d), %d indices",
		model, assets.Meshes.Len(), assets.Nodes.Len(), len(assets.Attachments),
		assets.VertexCount, assets.VertexStride, assets.IndexCount)

	if gpu {
		device, err := render.NewDevice()
		if err != nil {
			log.Fatal(err)
		}
		gpuModel, err := render.UploadModel(device, assets)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("[gpu] Uploaded %d vertex bytes and %d index bytes", len(assets.VertexBytes), len(assets.IndexBytes))
		defer device.Release()
		defer gpuModel.Release()
	}

	if err := web.StartServer(settings.ListenAddr, assets, filepath.Base(model)); err != nil {
		log.Fatal(err)
	}
}
