package engine

import (
	"github.com/spaghettifunk/navview/engine/assets/loaders"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel string
	// Directory holding the shaders and the config.
	AssetsDir string
	// Config file watched for changes. Empty disables hot reload.
	ConfigPath string
}

// NewApplicationConfig takes the window settings from the [application]
// section of cfg.
func NewApplicationConfig(cfg *loaders.Config, assetsDir, configPath string) *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   cfg.Application.PosX,
		StartPosY:   cfg.Application.PosY,
		StartWidth:  cfg.Application.Width,
		StartHeight: cfg.Application.Height,
		Name:        cfg.Application.Name,
		LogLevel:    cfg.Application.LogLevel,
		AssetsDir:   assetsDir,
		ConfigPath:  configPath,
	}
}
