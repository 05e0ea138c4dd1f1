package engine

import (
	"bytes"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/systems"
)

type Config struct {
	// The application name, used in logs.
	Name string `toml:"name"`
	// One of debug, info, warn, error, fatal.
	LogLevel string `toml:"log_level"`
	// Directory holding clips, materials and textures. Relative paths are
	// resolved against the working directory.
	AssetsDir string `toml:"assets_dir"`
	// Frames per second the main loop is capped to, 0 disables the cap.
	TargetFrameRate float64 `toml:"target_frame_rate"`
	// Limits of the engine systems.
	Systems systems.SystemManagerConfig `toml:"systems"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:            "animotion",
		LogLevel:        "info",
		AssetsDir:       "assets",
		TargetFrameRate: 60,
		Systems:         systems.DefaultSystemManagerConfig(),
	}
}

// LoadConfig reads a TOML engine configuration. Keys missing from the file
// keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: config file '%s': %s", core.ErrConfiguration, path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level '%s' is not a valid level", core.ErrConfiguration, c.LogLevel)
	}
	if c.AssetsDir == "" {
		return fmt.Errorf("%w: assets_dir is required", core.ErrConfiguration)
	}
	if c.TargetFrameRate < 0 {
		return fmt.Errorf("%w: target_frame_rate must be a non-negative value", core.ErrConfiguration)
	}
	if c.Systems.Builtins.MaxResourceCount == 0 || c.Systems.Samplers.MaxSamplerCount == 0 || c.Systems.Animation.MaxActiveAnimations == 0 {
		return fmt.Errorf("%w: system limits must be > 0", core.ErrConfiguration)
	}
	return nil
}
