package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := "listen_addr: \":9000\"\nattributes: [POSITION, NORMAL]\nmin_index_width: 2\nroot_scale: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	s := Current()
	if s.ListenAddr != ":9000" {
		t.Errorf("ListenAddr=%q; expected :9000", s.ListenAddr)
	}
	if len(s.Attributes) != 2 || s.Attributes[1] != "NORMAL" {
		t.Errorf("Attributes=%v; expected [POSITION NORMAL]", s.Attributes)
	}
	if s.MinIndexWidth != 2 {
		t.Errorf("MinIndexWidth=%d; expected 2", s.MinIndexWidth)
	}
	if s.RootScale != 0.5 {
		t.Errorf("RootScale=%v; expected 0.5", s.RootScale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected error for missing config file")
	}
}
