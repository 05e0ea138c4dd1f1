package animation

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/math"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
	"github.com/spaghettifunk/animotion/engine/scene"
)

type meshRenderer struct {
	Materials []*metadata.Material `anim:"materials"`
}

func (*meshRenderer) TypeName() string { return "MeshRenderer" }

func buildScene(t *testing.T) (*scene.Node, *lightComponent, *metadata.Pass) {
	t.Helper()
	p, err := metadata.NewPass(testShaderInfo(), nil)
	require.NoError(t, err)

	root := scene.NewNode("root")
	body := scene.NewNode("body")
	root.AddChild(body)
	body.AddComponent(&meshRenderer{Materials: []*metadata.Material{{Name: "skin", Passes: []metadata.MaterialPass{p}}}})
	l := &lightComponent{Weights: make([]float32, 2)}
	body.AddComponent(l)
	return root, l, p
}

func materialTrack(uniform string) *Track {
	return &Track{
		Modifiers: []TargetPath{
			HierarchyPath{Path: "body"},
			ComponentPath{Component: "MeshRenderer"},
			PropertyPath("materials"),
			IndexPath(0),
		},
		Adapter: &UniformCurveValueAdapter{UniformName: uniform},
	}
}

func TestClipBind(t *testing.T) {
	root, l, p := buildScene(t)
	clip := &Clip{
		Name:     "pulse",
		Duration: 1,
		Tracks: []*Track{
			materialTrack("alpha"),
			{Modifiers: []TargetPath{HierarchyPath{Path: "body"}, ComponentPath{Component: "Light"}, PropertyPath("intensity")}},
			{Modifiers: []TargetPath{HierarchyPath{Path: "body"}, ComponentPath{Component: "Light"}, PropertyPath("Weights"), IndexPath(1)}},
		},
	}

	bindings, err := clip.Bind(root, nil)
	require.NoError(t, err)
	require.Len(t, bindings, 3)

	assert.IsType(t, &metadata.Material{}, bindings[0].Target)
	assert.IsType(t, &UniformSetter{}, bindings[0].Setter)
	assert.IsType(t, &PropertySetter{}, bindings[1].Setter)
	assert.IsType(t, &IndexSetter{}, bindings[2].Setter)

	bindings[0].Apply(float32(0.4))
	bindings[1].Apply(5.0)
	bindings[2].Apply(0.25)

	handle, _ := p.GetHandle("alpha")
	v, _ := p.Uniform(handle)
	assert.Equal(t, float32(0.4), v)
	assert.Equal(t, float32(5), l.Intensity)
	assert.Equal(t, []float32{0, 0.25}, l.Weights)
}

func TestClipBindSkipsBrokenTracks(t *testing.T) {
	root, _, _ := buildScene(t)
	clip := &Clip{
		Name: "broken",
		Tracks: []*Track{
			materialTrack("missing"),
			{Modifiers: []TargetPath{HierarchyPath{Path: "legs"}, PropertyPath("Name")}},
			{Modifiers: []TargetPath{HierarchyPath{Path: "body"}}},
			{},
			{Modifiers: []TargetPath{HierarchyPath{Path: "body"}, PropertyPath("Name")}},
			{Modifiers: []TargetPath{HierarchyPath{Path: "body"}, ComponentPath{Component: "Light"}, PropertyPath("nope")}},
			materialTrack("particles"),
		},
	}

	bindings, err := clip.Bind(root, nil)
	require.Len(t, bindings, 1, spew.Sdump(bindings))
	assert.Equal(t, 4, bindings[0].Track)

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConfiguration))
	assert.True(t, errors.Is(err, core.ErrResolution))
	assert.True(t, errors.Is(err, core.ErrUnsupportedBinding))
	assert.Contains(t, err.Error(), "clip 'broken' track 0")
	assert.Contains(t, err.Error(), "clip 'broken' track 6")
}

func TestTrackWithAdapterOnly(t *testing.T) {
	material, pass := newRecordingMaterial("direct")
	track := &Track{Adapter: &UniformCurveValueAdapter{UniformName: "tint"}}

	target, setter, err := track.Bind(material, nil)
	require.NoError(t, err)
	assert.Same(t, material, target)

	setter.Set(math.NewVec4(0, 0, 0, 1))
	assert.Len(t, pass.calls, 1)
}

func TestClipBindUsesContextResolver(t *testing.T) {
	root, l, _ := buildScene(t)
	r := NewResolver()
	require.NoError(t, r.Register("first-child", func(target interface{}, _ string) (interface{}, error) {
		return target.(*scene.Node).Children()[0], nil
	}))

	clip := &Clip{Tracks: []*Track{{
		Modifiers: []TargetPath{CustomPath{Tag: "first-child"}, ComponentPath{Component: "Light"}, PropertyPath("intensity")},
	}}}

	_, err := clip.Bind(root, nil)
	assert.True(t, errors.Is(err, core.ErrConfiguration))

	bindings, err := clip.Bind(root, &BindingContext{Paths: r})
	require.NoError(t, err)
	bindings[0].Apply(2)
	assert.Equal(t, float32(2), l.Intensity)
}
