package systems

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

type fakeDevice struct {
	mutex     sync.Mutex
	created   []metadata.SamplerState
	destroyed []interface{}
	err       error
}

func (d *fakeDevice) CreateSampler(state metadata.SamplerState) (interface{}, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	d.created = append(d.created, state)
	return len(d.created), nil
}

func (d *fakeDevice) DestroySampler(handle interface{}) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.destroyed = append(d.destroyed, handle)
}

func TestSamplerSystemCaches(t *testing.T) {
	ss, err := NewSamplerSystem(&SamplerSystemConfig{MaxSamplerCount: 4})
	require.NoError(t, err)
	device := &fakeDevice{}

	state := metadata.DefaultSamplerState()
	state.MaxAnisotropy = 8
	first, err := ss.GetSampler(device, state.Hash())
	require.NoError(t, err)
	assert.Equal(t, state, first.State)
	assert.Equal(t, 1, first.Handle)

	again, err := ss.GetSampler(device, state.Hash())
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Len(t, device.created, 1)

	// cached samplers are served without a device
	again, err = ss.GetSampler(nil, state.Hash())
	require.NoError(t, err)
	assert.Same(t, first, again)

	require.NoError(t, ss.Shutdown())
	assert.Equal(t, []interface{}{1}, device.destroyed)
	assert.Zero(t, ss.Count())
}

func TestSamplerSystemConcurrentFirstUse(t *testing.T) {
	ss, err := NewSamplerSystem(&SamplerSystemConfig{MaxSamplerCount: 4})
	require.NoError(t, err)
	device := &fakeDevice{}
	hash := metadata.DefaultSamplerState().Hash()

	var wg sync.WaitGroup
	results := make([]*metadata.Sampler, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = ss.GetSampler(device, hash)
		}(i)
	}
	wg.Wait()

	assert.Len(t, device.created, 1)
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
}

func TestSamplerSystemErrors(t *testing.T) {
	_, err := NewSamplerSystem(&SamplerSystemConfig{})
	assert.True(t, errors.Is(err, core.ErrConfiguration))

	ss, err := NewSamplerSystem(&SamplerSystemConfig{MaxSamplerCount: 1})
	require.NoError(t, err)

	_, err = ss.GetSampler(nil, 1)
	assert.True(t, errors.Is(err, core.ErrConfiguration))

	boom := errors.New("out of device memory")
	_, err = ss.GetSampler(&fakeDevice{err: boom}, 1)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, ss.Count())

	device := &fakeDevice{}
	_, err = ss.GetSampler(device, 1)
	require.NoError(t, err)
	_, err = ss.GetSampler(device, 2)
	assert.True(t, errors.Is(err, core.ErrConfiguration))
}
