package systems

import (
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

type SystemManagerConfig struct {
	Builtins  BuiltinResourceSystemConfig `toml:"builtins"`
	Samplers  SamplerSystemConfig         `toml:"samplers"`
	Animation AnimationSystemConfig       `toml:"animation"`
}

func DefaultSystemManagerConfig() SystemManagerConfig {
	return SystemManagerConfig{
		Builtins:  BuiltinResourceSystemConfig{MaxResourceCount: 64},
		Samplers:  SamplerSystemConfig{MaxSamplerCount: 256},
		Animation: AnimationSystemConfig{MaxActiveAnimations: 1024},
	}
}

type SystemManager struct {
	builtinResourceSystem *BuiltinResourceSystem
	samplerSystem         *SamplerSystem
	animationSystem       *AnimationSystem
}

func NewSystemManager(config SystemManagerConfig, device metadata.SamplerDevice) (*SystemManager, error) {
	brs, err := NewBuiltinResourceSystem(&config.Builtins)
	if err != nil {
		return nil, err
	}
	ss, err := NewSamplerSystem(&config.Samplers)
	if err != nil {
		return nil, err
	}
	as, err := NewAnimationSystem(&config.Animation, brs, ss, device)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		builtinResourceSystem: brs,
		samplerSystem:         ss,
		animationSystem:       as,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	return sm.builtinResourceSystem.Initialize()
}

func (sm *SystemManager) BuiltinResources() *BuiltinResourceSystem {
	return sm.builtinResourceSystem
}

func (sm *SystemManager) Samplers() *SamplerSystem {
	return sm.samplerSystem
}

func (sm *SystemManager) Animations() *AnimationSystem {
	return sm.animationSystem
}

func (sm *SystemManager) Update(deltaTime float64) error {
	return sm.animationSystem.Update(deltaTime)
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.animationSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.samplerSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.builtinResourceSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
