package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

type SamplerSystemConfig struct {
	/** @brief The maximum number of distinct samplers alive at once. */
	MaxSamplerCount uint32 `toml:"max_sampler_count"`
}

type samplerEntry struct {
	sampler *metadata.Sampler
	device  metadata.SamplerDevice
}

// SamplerSystem caches GPU samplers by the hash of their sampler state so
// textures sharing a state share one sampler object.
type SamplerSystem struct {
	Config *SamplerSystemConfig

	mutex    sync.RWMutex
	samplers map[uint32]*samplerEntry
}

func NewSamplerSystem(config *SamplerSystemConfig) (*SamplerSystem, error) {
	if config == nil || config.MaxSamplerCount == 0 {
		err := fmt.Errorf("%w: func NewSamplerSystem - config.MaxSamplerCount must be > 0", core.ErrConfiguration)
		core.LogError(err.Error())
		return nil, err
	}
	return &SamplerSystem{
		Config:   config,
		samplers: make(map[uint32]*samplerEntry),
	}, nil
}

// GetSampler returns the sampler for hash, creating it on device the first
// time the hash is requested.
func (ss *SamplerSystem) GetSampler(device metadata.SamplerDevice, hash uint32) (*metadata.Sampler, error) {
	ss.mutex.RLock()
	entry, ok := ss.samplers[hash]
	ss.mutex.RUnlock()
	if ok {
		return entry.sampler, nil
	}

	if device == nil {
		err := fmt.Errorf("%w: no device to create sampler %#x", core.ErrConfiguration, hash)
		core.LogError(err.Error())
		return nil, err
	}

	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	// another caller may have created it in between
	if entry, ok := ss.samplers[hash]; ok {
		return entry.sampler, nil
	}
	if uint32(len(ss.samplers)) >= ss.Config.MaxSamplerCount {
		err := fmt.Errorf("%w: sampler system is full, cannot create sampler %#x", core.ErrConfiguration, hash)
		core.LogError(err.Error())
		return nil, err
	}

	state := metadata.SamplerStateFromHash(hash)
	handle, err := device.CreateSampler(state)
	if err != nil {
		core.LogError("failed to create sampler %#x: %s", hash, err)
		return nil, err
	}
	sampler := &metadata.Sampler{Hash: hash, State: state, Handle: handle}
	ss.samplers[hash] = &samplerEntry{sampler: sampler, device: device}
	core.LogDebug("sampler %#x created", hash)
	return sampler, nil
}

// Count returns the number of cached samplers.
func (ss *SamplerSystem) Count() int {
	ss.mutex.RLock()
	defer ss.mutex.RUnlock()
	return len(ss.samplers)
}

// Shutdown destroys every cached sampler on the device that created it.
func (ss *SamplerSystem) Shutdown() error {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	for hash, entry := range ss.samplers {
		entry.device.DestroySampler(entry.sampler.Handle)
		delete(ss.samplers, hash)
	}
	return nil
}
