package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/animotion/engine/animation"
	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

type AnimationSystemConfig struct {
	/** @brief The maximum number of clips playing at once. */
	MaxActiveAnimations uint32 `toml:"max_active_animations"`
}

// AnimationSystem binds clips against scene roots and drives every playing
// state once per frame.
type AnimationSystem struct {
	Config *AnimationSystemConfig

	context *animation.BindingContext

	mutex  sync.Mutex
	active []*animation.State
}

func NewAnimationSystem(config *AnimationSystemConfig, builtins *BuiltinResourceSystem, samplers *SamplerSystem, device metadata.SamplerDevice) (*AnimationSystem, error) {
	if config == nil || config.MaxActiveAnimations == 0 {
		err := fmt.Errorf("%w: func NewAnimationSystem - config.MaxActiveAnimations must be > 0", core.ErrConfiguration)
		core.LogError(err.Error())
		return nil, err
	}

	ctx := &animation.BindingContext{
		Device: device,
		Paths:  animation.NewResolver(),
	}
	// typed nils would defeat the nil checks of the binding code
	if builtins != nil {
		ctx.Resources = builtins
	}
	if samplers != nil {
		ctx.Samplers = samplers
	}

	return &AnimationSystem{
		Config:  config,
		context: ctx,
		active:  make([]*animation.State, 0, config.MaxActiveAnimations),
	}, nil
}

// Context returns the binding context shared by every clip this system plays.
func (as *AnimationSystem) Context() *animation.BindingContext {
	return as.context
}

// RegisterPath makes a custom path tag resolvable by clips played through this system.
func (as *AnimationSystem) RegisterPath(tag string, fn animation.CustomPathFunc) error {
	return as.context.Paths.Register(tag, fn)
}

// Play binds clip against root and starts it. Tracks that fail to bind are
// reported on the returned state and skipped.
func (as *AnimationSystem) Play(clip *animation.Clip, root interface{}, sampler animation.CurveSampler) (*animation.State, error) {
	if clip == nil {
		err := fmt.Errorf("%w: func Play - clip is nil", core.ErrConfiguration)
		core.LogError(err.Error())
		return nil, err
	}

	as.mutex.Lock()
	defer as.mutex.Unlock()

	if uint32(len(as.active)) >= as.Config.MaxActiveAnimations {
		err := fmt.Errorf("%w: cannot play '%s', %d animations already active", core.ErrConfiguration, clip.Name, len(as.active))
		core.LogError(err.Error())
		return nil, err
	}

	state := animation.NewState(clip, root, sampler, as.context)
	as.active = append(as.active, state)
	core.LogDebug("animation '%s' started with %d bound tracks", clip.Name, len(state.Bindings()))
	return state, nil
}

// Stop removes state from playback. It reports whether state was playing.
func (as *AnimationSystem) Stop(state *animation.State) bool {
	as.mutex.Lock()
	defer as.mutex.Unlock()

	for i, s := range as.active {
		if s == state {
			as.active = append(as.active[:i], as.active[i+1:]...)
			return true
		}
	}
	return false
}

// Update advances every active state. States that reached the end of a non
// looping clip are applied one last time and then dropped.
func (as *AnimationSystem) Update(deltaTime float64) error {
	as.mutex.Lock()
	defer as.mutex.Unlock()

	active := as.active[:0]
	for _, s := range as.active {
		s.Update(deltaTime)
		if s.Done() {
			core.LogDebug("animation '%s' finished", s.Clip().Name)
			continue
		}
		active = append(active, s)
	}
	// release references to finished states
	for i := len(active); i < len(as.active); i++ {
		as.active[i] = nil
	}
	as.active = active
	return nil
}

// Active returns the number of states currently playing.
func (as *AnimationSystem) Active() int {
	as.mutex.Lock()
	defer as.mutex.Unlock()
	return len(as.active)
}

func (as *AnimationSystem) Shutdown() error {
	as.mutex.Lock()
	defer as.mutex.Unlock()

	as.active = as.active[:0]
	return nil
}
