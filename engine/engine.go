package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/navview/engine/assets"
	"github.com/spaghettifunk/navview/engine/assets/loaders"
	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/engine/platform"
	"github.com/spaghettifunk/navview/engine/renderer"
	"github.com/spaghettifunk/navview/engine/renderer/components"
	"github.com/spaghettifunk/navview/engine/renderer/opengl"
	"github.com/spaghettifunk/navview/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// seconds between two frame metric log lines
const metricsLogInterval = 5.0

const (
	jobWorkers   = 2
	jobQueueSize = 16
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	quitRequest  atomic.Bool
	platform     *platform.Platform
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
	camera       *components.Camera
	jobSystem    *systems.JobSystem
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.FrameMetrics
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	if g.Config == nil {
		g.Config = loaders.DefaultConfig()
	}

	p := platform.New()

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	js, err := systems.NewJobSystem(jobWorkers, jobQueueSize)
	if err != nil {
		return nil, err
	}

	r := renderer.New(opengl.New(am),
		renderer.WithPalette(g.Config.Palette()),
		renderer.WithRenderFlags(g.Config.RenderFlags()),
	)

	return &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
		platform:     p,
		assetManager: am,
		renderer:     r,
		camera:       components.NewCamera(),
		jobSystem:    js,
		isRunning:    true,
		isSuspended:  false,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
		lastTime:     0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	core.SetLogLevel(e.gameInstance.ApplicationConfig.LogLevel)

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	if err := e.platform.Startup(e.gameInstance.ApplicationConfig.Name,
		e.gameInstance.ApplicationConfig.StartPosX,
		e.gameInstance.ApplicationConfig.StartPosY,
		e.gameInstance.ApplicationConfig.StartWidth,
		e.gameInstance.ApplicationConfig.StartHeight); err != nil {
		return err
	}

	// initialize subsystems
	if err := e.assetManager.Initialize(e.gameInstance.ApplicationConfig.AssetsDir); err != nil {
		return err
	}
	if path := e.gameInstance.ApplicationConfig.ConfigPath; path != "" {
		if err := e.assetManager.WatchConfig(path); err != nil {
			core.LogWarn("config hot reload disabled: %s", err)
		}
	}

	if err := e.renderer.Initialize(e.gameInstance.ApplicationConfig.Name); err != nil {
		return err
	}

	e.width, e.height = e.platform.GetFramebufferSize()
	e.camera.UpdateProjection(float32(e.width), float32(e.height))

	e.gameInstance.Renderer = e.renderer
	e.gameInstance.Camera = e.camera
	e.gameInstance.Window = e.platform
	e.gameInstance.Jobs = e.jobSystem

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()

	var runningTime float64 = 0.0

	for e.isRunning {
		if !e.platform.PumpMessages() || e.quitRequest.Load() {
			e.isRunning = false
			break
		}

		e.drainConfigChanges()
		e.jobSystem.Update()

		if !e.isSuspended {
			// Update clock and get delta time.
			e.clock.Update()

			var currentTime float64 = e.clock.Elapsed()
			var delta float64 = (currentTime - e.lastTime)
			var frameStartTime float64 = platform.GetAbsoluteTime()

			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down: %s", err)
				e.isRunning = false
				break
			}

			if err := e.renderer.Render(e.camera, e.width, e.height); err != nil {
				core.LogError("Render failed, shutting down: %s", err)
				e.isRunning = false
				break
			}
			e.platform.SwapBuffers()

			// Figure out how long the frame took
			var frameEndTime float64 = platform.GetAbsoluteTime()
			var frameElapsedTime float64 = frameEndTime - frameStartTime
			e.metrics.Update(frameElapsedTime)

			runningTime += delta
			if runningTime >= metricsLogInterval {
				fps, frameTime := e.metrics.Frame()
				core.LogDebug("%.0f fps, %.3f ms/frame, %d buffers", fps, frameTime, e.renderer.BufferCount())
				runningTime = 0
			}

			// NOTE: Input update/state copying should always be handled
			// after any input should be recorded; I.E. before this line.
			// As a safety, input is the last thing to be updated before
			// this frame ends.
			if err := core.InputUpdate(delta); err != nil {
				core.LogWarn(err.Error())
			}

			// Update last time
			e.lastTime = currentTime
		}
	}

	return nil
}

// RequestQuit makes Run return after the current frame. Safe to call from
// any goroutine.
func (e *Engine) RequestQuit() {
	e.quitRequest.Store(true)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.jobSystem.Shutdown(); err != nil {
		return err
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// drainConfigChanges applies a reloaded config on the render thread.
func (e *Engine) drainConfigChanges() {
	select {
	case cfg := <-e.assetManager.ConfigChanges():
		e.applyConfig(cfg)
	default:
	}
}

// applyConfig takes over the parts of a reloaded config that can change
// while running: the log level and the [render] toggles.
func (e *Engine) applyConfig(cfg *loaders.Config) {
	core.SetLogLevel(cfg.Application.LogLevel)
	e.renderer.ApplyRenderFlags(cfg.RenderFlags())
	e.gameInstance.Config = cfg
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_CONFIG_RELOADED,
		Data: cfg,
	})
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		{
			core.LogInfo("EVENT_CODE_APPLICATION_QUIT recieved, shutting down.")
			e.isRunning = false
			e.quitRequest.Store(true)
		}
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}
}

func (e *Engine) onResized(context core.EventContext) {
	if context.Type == core.EVENT_CODE_RESIZED {
		se, ok := context.Data.(*core.SystemEvent)
		if !ok {
			core.LogError("wrong event associated with the event type `%d`", context.Type)
			return
		}

		width := se.WindowWidth
		height := se.WindowHeight

		// Check if different. If so, trigger a resize event.
		if width != e.width || height != e.height {
			e.width = width
			e.height = height

			core.LogDebug("Window resize: %d, %d", width, height)

			// Handle minimization
			if width == 0 || height == 0 {
				core.LogInfo("Window minimized, suspending application.")
				e.isSuspended = true
				return
			}
			if e.isSuspended {
				core.LogInfo("Window restored, resuming application.")
				e.isSuspended = false
			}
			e.camera.UpdateProjection(float32(width), float32(height))
			if err := e.gameInstance.FnOnResize(width, height); err != nil {
				core.LogError(err.Error())
			}
		}
	}
}
