package systems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

func TestNewBuiltinResourceSystemRequiresCapacity(t *testing.T) {
	_, err := NewBuiltinResourceSystem(&BuiltinResourceSystemConfig{})
	assert.True(t, errors.Is(err, core.ErrConfiguration))

	_, err = NewBuiltinResourceSystem(nil)
	assert.Error(t, err)
}

func TestBuiltinResourceSystemInitialize(t *testing.T) {
	brs, err := NewBuiltinResourceSystem(&BuiltinResourceSystemConfig{MaxResourceCount: 16})
	require.NoError(t, err)
	require.NoError(t, brs.Initialize())

	assert.Equal(t, []string{
		"black-cube-texture",
		"black-texture",
		"default-cube-texture",
		"default-texture",
		"grey-cube-texture",
		"grey-texture",
		"normal-texture",
		"white-cube-texture",
		"white-texture",
	}, brs.Names())

	def, ok := brs.GetTexture(metadata.DefaultTextureName)
	require.True(t, ok)
	assert.True(t, def.TextureView().Ready())
	assert.Equal(t, metadata.TextureType2d, def.TextureType)
	assert.Len(t, def.Pixels, 256*256*4)
	// first pixel is blue, second white
	assert.Equal(t, []uint8{0, 0, 255, 255}, def.Pixels[0:4])
	assert.Equal(t, []uint8{255, 255, 255, 255}, def.Pixels[4:8])

	cube, ok := brs.GetTexture(metadata.DefaultCubeTextureName)
	require.True(t, ok)
	assert.Equal(t, metadata.TextureTypeCube, cube.TextureType)
	assert.Len(t, cube.Pixels, 256*256*4*6)

	grey, ok := brs.GetTexture("grey-texture")
	require.True(t, ok)
	assert.Equal(t, []uint8{128, 128, 128, 255}, grey.Pixels[len(grey.Pixels)-4:])

	normal, _ := brs.GetTexture("normal-texture")
	assert.Equal(t, []uint8{128, 128, 255, 255}, normal.Pixels[:4])
}

func TestBuiltinResourceSystemInsertKeepsFirst(t *testing.T) {
	brs, err := NewBuiltinResourceSystem(&BuiltinResourceSystemConfig{MaxResourceCount: 2})
	require.NoError(t, err)

	first := &metadata.Texture{Name: "first"}
	stored, err := brs.Insert("custom-texture", first)
	require.NoError(t, err)
	assert.Same(t, first, stored)

	stored, err = brs.Insert("custom-texture", &metadata.Texture{Name: "second"})
	require.NoError(t, err)
	assert.Same(t, first, stored)

	got, ok := brs.Get("custom-texture")
	require.True(t, ok)
	assert.Same(t, first, got)

	_, err = brs.Insert("", first)
	assert.Error(t, err)
	_, err = brs.Insert("nil", nil)
	assert.Error(t, err)

	_, err = brs.Insert("other", "value")
	require.NoError(t, err)
	_, err = brs.Insert("overflow", "value")
	assert.True(t, errors.Is(err, core.ErrConfiguration))

	_, ok = brs.GetTexture("other")
	assert.False(t, ok)

	require.NoError(t, brs.Shutdown())
	assert.Empty(t, brs.Names())
}
