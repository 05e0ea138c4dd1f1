package testbed

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

// HeadlessDevice stands in for a GPU when the testbed runs without a window.
// Its sampler handles are descriptive strings.
type HeadlessDevice struct {
	created atomic.Int32
}

var _ metadata.SamplerDevice = &HeadlessDevice{}

func (d *HeadlessDevice) CreateSampler(state metadata.SamplerState) (interface{}, error) {
	id := d.created.Add(1)
	core.LogDebug("headless sampler %d: %+v", id, state)
	return fmt.Sprintf("sampler-%d", id), nil
}

func (d *HeadlessDevice) DestroySampler(handle interface{}) {
	core.LogDebug("headless sampler %v destroyed", handle)
}
