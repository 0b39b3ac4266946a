package renderer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Reference configuration values.
const (
	DefaultMaxQuads       = 1024
	DefaultAtlasSize      = 512
	DefaultFramesInFlight = 2
	DefaultLoopRate       = 30

	// minHeapBytes is the floor on heap capacity for the memory type that
	// backs the vertex/index buffer and the texture atlas.
	minHeapBytes = 20 * 1024 * 1024
)

// Config controls engine sizing. The zero value of any field falls back to
// the reference configuration.
type Config struct {
	// AppName is reported to the Vulkan driver.
	AppName string `yaml:"app_name"`

	// MaxQuads is the fixed capacity of the geometry arena. The arena
	// never grows; writes past capacity fail with ErrOutOfCapacity.
	MaxQuads int `yaml:"max_quads"`

	// AtlasSize is the width and height in texels of the square texture
	// atlas.
	AtlasSize int `yaml:"atlas_size"`

	// FramesInFlight is the number of frames the CPU may record ahead of
	// the GPU.
	FramesInFlight int `yaml:"frames_in_flight"`

	// LoopRate caps the Run loop in iterations per second.
	LoopRate int `yaml:"loop_rate"`

	// ClearColor is the render pass clear color, RGBA in [0,1].
	ClearColor [4]float32 `yaml:"clear_color"`

	// Validation enables the Khronos validation layer when available.
	Validation bool `yaml:"validation"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		AppName:        "fontana",
		MaxQuads:       DefaultMaxQuads,
		AtlasSize:      DefaultAtlasSize,
		FramesInFlight: DefaultFramesInFlight,
		LoopRate:       DefaultLoopRate,
	}
}

// LoadConfig reads a YAML config file, filling unset fields from the
// reference configuration.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.AppName == "" {
		c.AppName = d.AppName
	}
	if c.MaxQuads == 0 {
		c.MaxQuads = d.MaxQuads
	}
	if c.AtlasSize == 0 {
		c.AtlasSize = d.AtlasSize
	}
	if c.FramesInFlight == 0 {
		c.FramesInFlight = d.FramesInFlight
	}
	if c.LoopRate == 0 {
		c.LoopRate = d.LoopRate
	}
}

// maxQuadLimit keeps every vertex index within uint16 range: 16384 quads
// times 4 vertices fills the index space exactly.
const maxQuadLimit = 1 << 14

func (c *Config) validate() error {
	if c.MaxQuads < 0 {
		return fmt.Errorf("config: max_quads must be positive, got %d", c.MaxQuads)
	}
	if c.MaxQuads > maxQuadLimit {
		return fmt.Errorf("config: max_quads %d exceeds the %d limit of 16-bit indexing", c.MaxQuads, maxQuadLimit)
	}
	if c.AtlasSize < 0 {
		return fmt.Errorf("config: atlas_size must be positive, got %d", c.AtlasSize)
	}
	if c.FramesInFlight < 0 {
		return fmt.Errorf("config: frames_in_flight must be positive, got %d", c.FramesInFlight)
	}
	return nil
}

func (c *Config) frameInterval() time.Duration {
	return time.Second / time.Duration(c.LoopRate)
}
