package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSample struct {
	track int
	time  float64
}

func recordingClip(mode WrapMode) (*Clip, *[]recordedSample, *[]interface{}) {
	var samples []recordedSample
	var applied []interface{}
	clip := &Clip{
		Name:     "walk",
		Duration: 1,
		WrapMode: mode,
		Tracks: []*Track{{
			Adapter: adapterFunc(func(target interface{}, ctx *BindingContext) (Setter, error) {
				return SetterFunc(func(v interface{}) { applied = append(applied, v) }), nil
			}),
		}},
	}
	return clip, &samples, &applied
}

type adapterFunc func(target interface{}, ctx *BindingContext) (Setter, error)

func (f adapterFunc) ForTarget(target interface{}, ctx *BindingContext) (Setter, error) {
	return f(target, ctx)
}

func TestStateLoops(t *testing.T) {
	clip, samples, applied := recordingClip(WrapModeLoop)
	state := NewState(clip, "root", CurveSamplerFunc(func(track int, time float64) interface{} {
		*samples = append(*samples, recordedSample{track, time})
		return time
	}), nil)
	require.NoError(t, state.BindError())
	require.Len(t, state.Bindings(), 1)

	state.Update(0.5)
	state.Update(0.75)
	assert.InDelta(t, 0.25, state.Time(), 1e-9)
	assert.False(t, state.Done())
	require.Len(t, *applied, 2)
	assert.InDelta(t, 0.5, (*applied)[0].(float64), 1e-9)
	assert.InDelta(t, 0.25, (*applied)[1].(float64), 1e-9)
	assert.Equal(t, 0, (*samples)[0].track)

	state.SetTime(-0.25)
	assert.InDelta(t, 0.75, state.Time(), 1e-9)
}

func TestStateStopsAtEnd(t *testing.T) {
	clip, _, applied := recordingClip(WrapModeNormal)
	state := NewState(clip, "root", CurveSamplerFunc(func(track int, time float64) interface{} {
		return time
	}), nil)

	state.Update(0.6)
	state.Update(0.6)
	assert.True(t, state.Done())
	assert.Equal(t, 1.0, state.Time())

	state.Update(0.6)
	require.Len(t, *applied, 2)
	assert.Equal(t, 1.0, (*applied)[1])

	state.SetTime(0.1)
	assert.False(t, state.Done())
}

func TestStateZeroDurationFinishes(t *testing.T) {
	clip, _, applied := recordingClip(WrapModeNormal)
	clip.Duration = 0
	state := NewState(clip, "root", CurveSamplerFunc(func(track int, time float64) interface{} {
		return time
	}), nil)

	state.Update(0.016)
	assert.True(t, state.Done())
	assert.Equal(t, 0.0, state.Time())
	require.Len(t, *applied, 1)
	assert.Equal(t, 0.0, (*applied)[0])

	state.Update(0.016)
	assert.Len(t, *applied, 1)

	looping, _, _ := recordingClip(WrapModeLoop)
	looping.Duration = 0
	state = NewState(looping, "root", nil, nil)
	state.Update(0.016)
	assert.False(t, state.Done())
}

func TestStateSpeedAndNilSampler(t *testing.T) {
	clip, _, applied := recordingClip(WrapModeLoop)
	state := NewState(clip, "root", nil, nil)
	state.Speed = 2
	state.Update(0.1)
	assert.InDelta(t, 0.2, state.Time(), 1e-9)
	assert.Empty(t, *applied)
}

func TestStateReportsBindErrors(t *testing.T) {
	clip := &Clip{Name: "empty", Duration: 1, Tracks: []*Track{{}}}
	state := NewState(clip, "root", nil, nil)
	assert.Error(t, state.BindError())
	assert.Empty(t, state.Bindings())
	assert.Same(t, clip, state.Clip())
}
