package animation

import (
	"math"

	"github.com/spaghettifunk/animotion/engine/core"
	emath "github.com/spaghettifunk/animotion/engine/math"
)

// CurveSampler evaluates the curve of a track at a point in time.
type CurveSampler interface {
	Sample(track int, time float64) interface{}
}

// CurveSamplerFunc adapts a plain function to the CurveSampler interface.
type CurveSamplerFunc func(track int, time float64) interface{}

func (f CurveSamplerFunc) Sample(track int, time float64) interface{} {
	return f(track, time)
}

// State is a clip bound to a root and being played back.
type State struct {
	clip     *Clip
	sampler  CurveSampler
	bindings []*Binding
	bindErr  error
	time     float64
	Speed    float64
	done     bool
}

// NewState binds clip to root. Tracks that cannot be bound are reported
// through BindError and skipped during playback.
func NewState(clip *Clip, root interface{}, sampler CurveSampler, ctx *BindingContext) *State {
	bindings, err := clip.Bind(root, ctx)
	if err != nil {
		core.LogWarn("animation '%s' bound with errors: %s", clip.Name, err)
	}
	return &State{
		clip:     clip,
		sampler:  sampler,
		bindings: bindings,
		bindErr:  err,
		Speed:    1,
	}
}

func (s *State) Clip() *Clip {
	return s.clip
}

func (s *State) Bindings() []*Binding {
	return s.bindings
}

func (s *State) BindError() error {
	return s.bindErr
}

func (s *State) Time() float64 {
	return s.time
}

// Done reports whether a non looping state reached the end of its clip.
func (s *State) Done() bool {
	return s.done
}

// SetTime moves the playhead without evaluating.
func (s *State) SetTime(t float64) {
	s.time = s.wrap(t)
	s.done = false
}

// Update advances the playhead by deltaTime seconds and applies every bound track.
func (s *State) Update(deltaTime float64) {
	if s.done {
		return
	}
	next := s.time + deltaTime*s.Speed
	// an empty clip is applied once and then finishes
	if s.clip.WrapMode == WrapModeNormal && (s.clip.Duration <= 0 || next >= s.clip.Duration) {
		s.done = true
	}
	s.time = s.wrap(next)
	s.Sample()
}

// Sample applies the value of every bound track at the current time.
func (s *State) Sample() {
	if s.sampler == nil {
		return
	}
	for _, b := range s.bindings {
		b.Apply(s.sampler.Sample(b.Track, s.time))
	}
}

func (s *State) wrap(t float64) float64 {
	d := s.clip.Duration
	if d <= 0 {
		return 0
	}
	if s.clip.WrapMode == WrapModeLoop {
		t = math.Mod(t, d)
		if t < 0 {
			t += d
		}
		return t
	}
	return emath.Clamp(t, 0, d)
}
