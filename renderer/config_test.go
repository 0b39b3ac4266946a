package renderer

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxQuads != 1024 || cfg.AtlasSize != 512 || cfg.FramesInFlight != 2 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.frameInterval() != time.Second/30 {
		t.Errorf("frame interval = %v, want %v", cfg.frameInterval(), time.Second/30)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	data := []byte("app_name: demo\nmax_quads: 256\nclear_color: [0.1, 0.2, 0.3, 1.0]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AppName != "demo" || cfg.MaxQuads != 256 {
		t.Errorf("loaded = %+v", cfg)
	}
	// Unset fields fall back to the reference configuration.
	if cfg.AtlasSize != DefaultAtlasSize || cfg.FramesInFlight != DefaultFramesInFlight {
		t.Errorf("defaults not filled: %+v", cfg)
	}
	if cfg.ClearColor != [4]float32{0.1, 0.2, 0.3, 1.0} {
		t.Errorf("clear color = %v", cfg.ClearColor)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file must fail")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxQuads = -1
	if err := cfg.validate(); err == nil {
		t.Error("negative max_quads must fail validation")
	}

	cfg = DefaultConfig()
	cfg.MaxQuads = 1 << 14
	if err := cfg.validate(); err != nil {
		t.Errorf("16384 quads fills 16-bit indexing exactly: %v", err)
	}
	cfg.MaxQuads++
	if err := cfg.validate(); err == nil {
		t.Error("max_quads past the 16-bit index space must fail validation")
	}
}

func TestAlignUp(t *testing.T) {
	if alignUp(12, 4) != 12 {
		t.Error("aligned value must not change")
	}
	if alignUp(13, 4) != 16 {
		t.Errorf("alignUp(13,4) = %d, want 16", alignUp(13, 4))
	}
	if alignUp(0, 32) != 0 {
		t.Error("zero stays zero")
	}
}
