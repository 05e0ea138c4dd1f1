package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClock()
	c.now = func() time.Time { return now }

	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	now = now.Add(1500 * time.Millisecond)
	c.Update()
	assert.Equal(t, 1.5, c.Elapsed())

	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	assert.Equal(t, 1.5, c.Elapsed())
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 30; i++ {
		m.Update(0.03125)
	}
	assert.Equal(t, 31.25, m.FrameTime())
	assert.Zero(t, m.FPS())

	// 32 frames fill exactly one second, the 33rd crosses it
	for i := 0; i < 3; i++ {
		m.Update(0.03125)
	}
	assert.Equal(t, 32.0, m.FPS())
}

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, SetLogLevel("debug"))
	require.NoError(t, SetLogLevel("info"))

	err := SetLogLevel("loud")
	assert.True(t, errors.Is(err, ErrConfiguration))
}
