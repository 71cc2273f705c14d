package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings is the process-wide viewer configuration. Flag handling in main
// may override individual fields after a file is loaded.
type Settings struct {
	ListenAddr    string   `yaml:"listen_addr"`
	Attributes    []string `yaml:"attributes"`
	MinIndexWidth uint32   `yaml:"min_index_width"`
	RootScale     float32  `yaml:"root_scale"`
}

var settings = Settings{
	ListenAddr:    ":8000",
	Attributes:    []string{"POSITION"},
	MinIndexWidth: 1,
	RootScale:     1,
}

func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "Cannot read config file %q", path)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return errors.Wrapf(err, "Cannot parse config file %q", path)
	}
	return nil
}

func Current() Settings {
	return settings
}

func SetListenAddr(addr string) {
	settings.ListenAddr = addr
}

func SetAttributes(names []string) {
	settings.Attributes = names
}

func SetMinIndexWidth(width uint32) {
	settings.MinIndexWidth = width
}

func SetRootScale(scale float32) {
	settings.RootScale = scale
}
