package animation

import (
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

type passCall struct {
	op      string
	handle  metadata.UniformHandle
	binding uint32
	value   interface{}
}

// recordingPass keeps the reflection of a real pass and records every write.
type recordingPass struct {
	*metadata.Pass
	calls []passCall
}

func (p *recordingPass) SetUniform(handle metadata.UniformHandle, value interface{}) {
	p.calls = append(p.calls, passCall{op: "uniform", handle: handle, value: value})
}

func (p *recordingPass) SetUniformArray(handle metadata.UniformHandle, value interface{}) {
	p.calls = append(p.calls, passCall{op: "uniform-array", handle: handle, value: value})
}

func (p *recordingPass) BindTextureView(binding uint32, view *metadata.TextureView) {
	p.calls = append(p.calls, passCall{op: "texture-view", binding: binding, value: view})
}

func (p *recordingPass) BindSampler(binding uint32, sampler *metadata.Sampler) {
	p.calls = append(p.calls, passCall{op: "sampler", binding: binding, value: sampler})
}

type registry map[string]interface{}

func (r registry) Get(name string) (interface{}, bool) {
	v, ok := r[name]
	return v, ok
}

type samplerCache struct {
	hashes []uint32
	err    error
}

func (c *samplerCache) GetSampler(device metadata.SamplerDevice, hash uint32) (*metadata.Sampler, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.hashes = append(c.hashes, hash)
	return &metadata.Sampler{Hash: hash, State: metadata.SamplerStateFromHash(hash)}, nil
}

func testShaderInfo() *metadata.ShaderInfo {
	return &metadata.ShaderInfo{
		Name: "sprite",
		Blocks: []metadata.ShaderBlock{
			{
				Name:    "Constants",
				Binding: 0,
				Members: []metadata.ShaderBlockMember{
					{Name: "tint", Type: metadata.ShaderUniformTypeFloat32_4, Count: 1},
					{Name: "offsets", Type: metadata.ShaderUniformTypeFloat32_2, Count: 4},
					{Name: "alpha", Type: metadata.ShaderUniformTypeFloat32},
				},
			},
		},
		Samplers: []metadata.ShaderSampler{
			{Name: "mainTexture", Type: metadata.ShaderUniformTypeSampler, Binding: 1},
			{Name: "maskTexture", Type: metadata.ShaderUniformTypeSampler, Binding: 2},
			{Name: "envMap", Type: metadata.ShaderUniformTypeSamplerCube, Binding: 3},
		},
		Buffers: []metadata.ShaderBuffer{
			{Name: "particles", Binding: 4},
		},
	}
}

func newRecordingMaterial(name string) (*metadata.Material, *recordingPass) {
	p, err := metadata.NewPass(testShaderInfo(), map[string]*metadata.PassProperty{
		"maskTexture": {Type: metadata.ShaderUniformTypeSampler, Value: "black"},
	})
	if err != nil {
		panic(err)
	}
	rp := &recordingPass{Pass: p}
	return &metadata.Material{Name: name, Passes: []metadata.MaterialPass{rp}}, rp
}

func readyTexture(name string, w, h uint32) *metadata.Texture {
	t := &metadata.Texture{
		Name:       name,
		Width:      w,
		Height:     h,
		Generation: metadata.InvalidID,
		Sampler:    metadata.DefaultSamplerState(),
	}
	t.CreateView(name)
	return t
}
