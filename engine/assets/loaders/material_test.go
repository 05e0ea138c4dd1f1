package loaders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

const spriteMaterial = `
name = "sprite"
autorelease = true

[[passes]]
[passes.shader]
name = "sprite"

[[passes.shader.blocks]]
name = "Constants"
binding = 0
[[passes.shader.blocks.members]]
name = "tint"
type = "vec4"
count = 1
[[passes.shader.blocks.members]]
name = "offsets"
type = "vec2"
count = 4

[[passes.shader.samplers]]
name = "mainTexture"
type = "sampler2D"
binding = 1
[[passes.shader.samplers]]
name = "envMap"
type = "samplerCube"
binding = 2

[passes.properties.mainTexture]
type = "sampler2D"
value = "white"
`

func TestMaterialLoader(t *testing.T) {
	path := writeFile(t, "sprite.mat", spriteMaterial)

	res, err := (&MaterialLoader{}).Load(path, metadata.ResourceTypeMaterial, nil)
	require.NoError(t, err)
	assert.Equal(t, "sprite", res.Name)

	material, ok := res.Data.(*metadata.Material)
	require.True(t, ok)
	require.Len(t, material.Passes, 1)

	pass, err := material.GetPass(0)
	require.NoError(t, err)

	tint, ok := pass.GetHandle("tint")
	require.True(t, ok)
	assert.Equal(t, metadata.BindingTypeUniformBuffer, tint.BindingType())
	assert.Equal(t, metadata.ShaderUniformTypeFloat32_4, tint.Type())

	offsets, _ := pass.GetHandle("offsets")
	assert.Equal(t, uint32(1), offsets.Index())

	env, ok := pass.GetHandle("envMap")
	require.True(t, ok)
	assert.Equal(t, metadata.BindingTypeSampler, env.BindingType())
	assert.Equal(t, uint32(2), env.Binding())
	assert.Equal(t, metadata.ShaderUniformTypeSamplerCube, env.Type())

	prop, ok := pass.Property("mainTexture")
	require.True(t, ok)
	assert.Equal(t, "white", prop.Value)
	assert.Equal(t, uint32(4), pass.ShaderInfo().Blocks[0].Members[1].Count)
}

func TestMaterialLoaderValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "[[passes]]\n[passes.shader]\nname = \"s\"\n"},
		{"no passes", "name = \"m\"\n"},
		{"missing shader name", "name = \"m\"\n[[passes]]\n[passes.shader]\n"},
		{"bad uniform type", "name = \"m\"\n[[passes]]\n[passes.shader]\nname = \"s\"\n[[passes.shader.blocks]]\nname = \"b\"\n[[passes.shader.blocks.members]]\nname = \"x\"\ntype = \"vec5\"\n"},
		{"sampler with value type", "name = \"m\"\n[[passes]]\n[passes.shader]\nname = \"s\"\n[[passes.shader.samplers]]\nname = \"t\"\ntype = \"vec4\"\n"},
		{"undeclared property", "name = \"m\"\n[[passes]]\n[passes.shader]\nname = \"s\"\n[passes.properties.ghost]\ntype = \"float\"\n"},
		{"suffixed texture default", "name = \"m\"\n[[passes]]\n[passes.shader]\nname = \"s\"\n[[passes.shader.samplers]]\nname = \"t\"\ntype = \"sampler2D\"\n[passes.properties.t]\ntype = \"sampler2D\"\nvalue = \"white-texture\"\n"},
		{"block binding out of range", "name = \"m\"\n[[passes]]\n[passes.shader]\nname = \"s\"\n[[passes.shader.blocks]]\nname = \"b\"\nbinding = 256\n"},
		{"sampler binding out of range", "name = \"m\"\n[[passes]]\n[passes.shader]\nname = \"s\"\n[[passes.shader.samplers]]\nname = \"t\"\ntype = \"sampler2D\"\nbinding = 300\n"},
		{"unknown key", "name = \"m\"\nshininess = 2.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.mat", tt.content)
			_, err := (&MaterialLoader{}).Load(path, metadata.ResourceTypeMaterial, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrConfiguration), err.Error())
		})
	}
}
