package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/animotion/engine/animation"
	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

const pulseClip = `
duration = 1.5
wrap_mode = "loop"

[[tracks]]
[[tracks.path]]
kind = "hierarchy"
value = "body/arm"
[[tracks.path]]
kind = "component"
value = "MeshRenderer"
[[tracks.path]]
kind = "property"
value = "materials"
[[tracks.path]]
kind = "index"
index = 0
[tracks.uniform]
pass_index = 1
uniform_name = "tint"

[[tracks]]
[[tracks.path]]
kind = "custom"
tag = "bone"
value = "spine"
[[tracks.path]]
kind = "property"
value = "intensity"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClipLoader(t *testing.T) {
	path := writeFile(t, "pulse.clip", pulseClip)

	res, err := (&ClipLoader{}).Load(path, metadata.ResourceTypeAnimationClip, nil)
	require.NoError(t, err)
	assert.Equal(t, "pulse", res.Name)
	assert.Equal(t, path, res.FullPath)

	clip, ok := res.Data.(*animation.Clip)
	require.True(t, ok)
	assert.Equal(t, "pulse", clip.Name)
	assert.Equal(t, 1.5, clip.Duration)
	assert.Equal(t, animation.WrapModeLoop, clip.WrapMode)
	require.Len(t, clip.Tracks, 2)

	assert.Equal(t, []animation.TargetPath{
		animation.HierarchyPath{Path: "body/arm"},
		animation.ComponentPath{Component: "MeshRenderer"},
		animation.PropertyPath("materials"),
		animation.IndexPath(0),
	}, clip.Tracks[0].Modifiers)
	assert.Equal(t, &animation.UniformCurveValueAdapter{PassIndex: 1, UniformName: "tint"}, clip.Tracks[0].Adapter)

	assert.Equal(t, []animation.TargetPath{
		animation.CustomPath{Tag: "bone", Arg: "spine"},
		animation.PropertyPath("intensity"),
	}, clip.Tracks[1].Modifiers)
	assert.Nil(t, clip.Tracks[1].Adapter)
}

func TestClipLoaderRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown kind", "[[tracks]]\n[[tracks.path]]\nkind = \"bone\"\nvalue = \"x\"\n"},
		{"empty property", "[[tracks]]\n[[tracks.path]]\nkind = \"property\"\n"},
		{"custom without tag", "[[tracks]]\n[[tracks.path]]\nkind = \"custom\"\nvalue = \"x\"\n"},
		{"negative index", "[[tracks]]\n[[tracks.path]]\nkind = \"index\"\nindex = -1\n"},
		{"empty track", "[[tracks]]\n"},
		{"uniform without name", "[[tracks]]\n[tracks.uniform]\npass_index = 0\n"},
		{"unknown key", "speed = 2\n"},
		{"unknown wrap mode", "wrap_mode = \"pingpong\"\n"},
		{"negative duration", "duration = -1.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.clip", tt.content)
			_, err := (&ClipLoader{}).Load(path, metadata.ResourceTypeAnimationClip, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrConfiguration), err.Error())
		})
	}
}

func TestClipLoaderMissingFile(t *testing.T) {
	_, err := (&ClipLoader{}).Load(filepath.Join(t.TempDir(), "missing.clip"), metadata.ResourceTypeAnimationClip, nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
