package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/engine/math"
	"github.com/spaghettifunk/navview/engine/renderer/metadata"
	"golang.org/x/image/colornames"
)

const (
	ConfigExtension   = ".toml"
	DefaultConfigPath = "assets/config/viewer.toml"

	colourKeyNavMeshSteep = "mesh_steep"
	colourKeyBackground   = "background"
)

type ApplicationConfig struct {
	Name     string `toml:"name"`
	Width    uint32 `toml:"width"`
	Height   uint32 `toml:"height"`
	PosX     uint32 `toml:"pos_x"`
	PosY     uint32 `toml:"pos_y"`
	LogLevel string `toml:"log_level"`
}

type CameraConfig struct {
	// Step is the distance moved per frame while a movement key is held.
	Step float32 `toml:"step"`
	// WheelStep is the distance moved per mouse wheel notch.
	WheelStep float32 `toml:"wheel_step"`
}

type RenderConfig struct {
	Wireframe bool `toml:"wireframe"`
	Terrain   bool `toml:"terrain"`
	Liquid    bool `toml:"liquid"`
	Wmo       bool `toml:"wmo"`
	Doodad    bool `toml:"doodad"`
	Mesh      bool `toml:"mesh"`
}

// Config mirrors the viewer TOML file.
type Config struct {
	Application ApplicationConfig `toml:"application"`
	Camera      CameraConfig      `toml:"camera"`
	Render      RenderConfig      `toml:"render"`
	// Colors maps a category name, mesh_steep or background to a colour.
	Colors map[string]string `toml:"colors"`
}

func DefaultConfig() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:     "Navigation Mesh Viewer",
			Width:    1280,
			Height:   720,
			PosX:     100,
			PosY:     100,
			LogLevel: "info",
		},
		Camera: CameraConfig{
			Step:      2.0,
			WheelStep: 10.0,
		},
		Render: RenderConfig{
			Terrain: true,
			Liquid:  true,
			Wmo:     true,
			Doodad:  true,
			Mesh:    true,
		},
		Colors: map[string]string{},
	}
}

type ConfigLoader struct{}

// Load parses a TOML config. Data is a *Config.
func (cl *ConfigLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeConfig {
		return nil, fmt.Errorf("config loader cannot load `%s` resources", assetType)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrConfigNotFound, path)
		}
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse `%s`: %w", path, err)
	}
	return &metadata.Resource{
		Name:     "config",
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     cfg,
	}, nil
}

func (cl *ConfigLoader) Unload(*metadata.Resource) error {
	return nil
}

// LoadConfig reads the config at path. A missing file is not fatal: the
// defaults come back together with an error wrapping core.ErrConfigNotFound.
func LoadConfig(path string) (*Config, error) {
	res, err := (&ConfigLoader{}).Load(path, metadata.ResourceTypeConfig, nil)
	if err != nil {
		if errors.Is(err, core.ErrConfigNotFound) {
			return DefaultConfig(), err
		}
		return nil, err
	}
	return res.Data.(*Config), nil
}

// ParseConfig decodes a TOML document on top of the defaults and sanitizes
// the result. Unknown keys are reported and ignored.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strictErr *toml.StrictMissingError
		var decodeErr *toml.DecodeError
		switch {
		case errors.As(err, &strictErr):
			core.LogWarn("ignoring unknown config keys:\n%s", strictErr.String())
		case errors.As(err, &decodeErr):
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("line %d, column %d: %w", row, col, err)
		default:
			return nil, err
		}
	}

	cfg.sanitize()
	return cfg, nil
}

func (c *Config) sanitize() {
	if strings.TrimSpace(c.Application.Name) == "" {
		c.Application.Name = DefaultConfig().Application.Name
	}
	c.Application.Width = math.Clamp(c.Application.Width, 320, 7680)
	c.Application.Height = math.Clamp(c.Application.Height, 240, 4320)
	c.Camera.Step = math.Clamp(c.Camera.Step, 0.01, 1000)
	c.Camera.WheelStep = math.Clamp(c.Camera.WheelStep, 0.01, 10000)
	if c.Colors == nil {
		c.Colors = map[string]string{}
	}
}

// RenderFlags returns the [render] section in renderer terms.
func (c *Config) RenderFlags() metadata.RenderFlags {
	return metadata.RenderFlags{
		Wireframe: c.Render.Wireframe,
		Terrain:   c.Render.Terrain,
		Liquid:    c.Render.Liquid,
		Wmo:       c.Render.Wmo,
		Doodad:    c.Render.Doodad,
		NavMesh:   c.Render.Mesh,
	}
}

// Palette applies the [colors] section to the default palette. Bad entries
// are logged and skipped.
func (c *Config) Palette() metadata.Palette {
	palette := metadata.DefaultPalette()

	keys := make([]string, 0, len(c.Colors))
	for k := range c.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		colour, err := ParseColour(c.Colors[key])
		if err != nil {
			core.LogWarn("colour `%s`: %s", key, err)
			continue
		}

		switch strings.ToLower(key) {
		case colourKeyNavMeshSteep:
			palette.NavMeshSteep = colour
		case colourKeyBackground:
			palette.Background = colour
		default:
			category, err := metadata.ParseCategory(key)
			if err != nil {
				core.LogWarn("colour `%s`: %s", key, err)
				continue
			}
			palette.Categories[category] = colour
		}
	}
	return palette
}

// ParseColour accepts #rrggbb, #rrggbbaa or an SVG colour name.
func ParseColour(value string) (math.Vec4, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		if len(hex) == 6 {
			hex += "ff"
		}
		if len(hex) != 8 {
			return math.Vec4{}, fmt.Errorf("invalid hex colour `%s`", value)
		}
		packed, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return math.Vec4{}, fmt.Errorf("invalid hex colour `%s`", value)
		}
		return math.NewVec4(
			float32(packed>>24&0xff)/255.0,
			float32(packed>>16&0xff)/255.0,
			float32(packed>>8&0xff)/255.0,
			float32(packed&0xff)/255.0,
		), nil
	}

	named, ok := colornames.Map[value]
	if !ok {
		return math.Vec4{}, fmt.Errorf("unknown colour name `%s`", value)
	}
	return math.NewVec4(
		float32(named.R)/255.0,
		float32(named.G)/255.0,
		float32(named.B)/255.0,
		float32(named.A)/255.0,
	), nil
}
