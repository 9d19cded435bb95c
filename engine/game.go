package engine

import (
	"github.com/spaghettifunk/navview/engine/assets/loaders"
	"github.com/spaghettifunk/navview/engine/renderer"
	"github.com/spaghettifunk/navview/engine/renderer/components"
	"github.com/spaghettifunk/navview/engine/systems"
)

// Window is the part of the platform a game may drive.
type Window interface {
	SetCursorCaptured(captured bool)
}

// Game is filled in by the application. Renderer, Camera, Window and Jobs are
// set by the engine before FnInitialize runs.
type Game struct {
	ApplicationConfig *ApplicationConfig
	Config            *loaders.Config
	Renderer          *renderer.Renderer
	Camera            *components.Camera
	Window            Window
	Jobs              *systems.JobSystem
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
