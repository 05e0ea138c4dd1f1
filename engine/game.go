package engine

// Game is the application driven by the engine. Every hook is optional.
type Game struct {
	Config       *Config
	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnShutdown   Shutdown
	// FnAssetsChanged receives the assets touched on disk since the last frame.
	FnAssetsChanged AssetsChanged
}

type Initialize func(e *Engine) error
type Update func(e *Engine, deltaTime float64) error
type Shutdown func(e *Engine) error
type AssetsChanged func(e *Engine, paths []string) error
