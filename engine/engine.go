package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/animotion/engine/assets"
	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
	"github.com/spaghettifunk/animotion/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     atomic.Bool
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
	frame         uint64
}

// New creates the engine for g. device creates GPU samplers and may be nil
// when nothing is rendered.
func New(g *Game, device metadata.SamplerDevice) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: func New - game is nil", core.ErrConfiguration)
	}
	if g.Config == nil {
		g.Config = DefaultConfig()
	}
	if err := g.Config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if err := core.SetLogLevel(g.Config.LogLevel); err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(g.Config.Systems, device)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		assetManager:  am,
		systemManager: sm,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	if err := e.assetManager.Initialize(e.gameInstance.Config.AssetsDir); err != nil {
		return e.abortInitialize(err)
	}
	if err := e.systemManager.Initialize(); err != nil {
		return e.abortInitialize(err)
	}
	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return e.abortInitialize(err)
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized", e.gameInstance.Config.Name)
	return nil
}

// abortInitialize stops the asset watcher started by a failed Initialize.
func (e *Engine) abortInitialize(err error) error {
	core.LogError("initialization failed: %s", err)
	if serr := e.assetManager.Shutdown(); serr != nil {
		core.LogError(serr.Error())
	}
	e.currentStage = EngineStageUninitialized
	return err
}

// Run drives the game and the engine systems until Stop is called or an
// update fails.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("func Run - engine is not initialized")
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64
	if e.gameInstance.Config.TargetFrameRate > 0 {
		targetFrameSeconds = 1.0 / e.gameInstance.Config.TargetFrameRate
	}

	for e.isRunning.Load() {
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime

		if e.gameInstance.FnAssetsChanged != nil {
			if changed := e.assetManager.Changes(); len(changed) > 0 {
				if err := e.gameInstance.FnAssetsChanged(e, changed); err != nil {
					core.LogError("asset reload failed, shutting down: %s", err)
					e.isRunning.Store(false)
					return err
				}
			}
		}
		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(e, delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				e.isRunning.Store(false)
				return err
			}
		}
		if err := e.systemManager.Update(delta); err != nil {
			e.isRunning.Store(false)
			return err
		}
		e.frame++

		e.clock.Update()
		frameElapsedTime := e.clock.Elapsed() - currentTime
		e.metrics.Update(frameElapsedTime)

		if remainingSeconds := targetFrameSeconds - frameElapsedTime; remainingSeconds > 0 && e.isRunning.Load() {
			time.Sleep(time.Duration(remainingSeconds * float64(time.Second)))
		}
		e.lastTime = currentTime
	}
	return nil
}

// Stop ends Run after the current frame. It is safe to call from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(e); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}

func (e *Engine) Systems() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

// Frame returns the number of frames run so far.
func (e *Engine) Frame() uint64 {
	return e.frame
}
