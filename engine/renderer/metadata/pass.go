package metadata

import (
	"fmt"

	"github.com/spaghettifunk/animotion/engine/core"
)

/**
 * @brief An authored property of a pass. Value holds the default the
 * material author wrote down, if any (for samplers the name of a builtin
 * texture such as "white").
 */
type PassProperty struct {
	Type  ShaderUniformType `toml:"type"`
	Value interface{}       `toml:"value,omitempty"`
}

// HasValue reports whether the author supplied an explicit default.
func (pp *PassProperty) HasValue() bool {
	if pp == nil || pp.Value == nil {
		return false
	}
	if s, ok := pp.Value.(string); ok {
		return s != ""
	}
	return true
}

// MaterialPass is the view of a material pass the animation binding layer
// writes through.
type MaterialPass interface {
	GetHandle(name string) (UniformHandle, bool)
	ShaderInfo() *ShaderInfo
	Property(name string) (*PassProperty, bool)
	SetUniform(handle UniformHandle, value interface{})
	SetUniformArray(handle UniformHandle, value interface{})
	BindTextureView(binding uint32, view *TextureView)
	BindSampler(binding uint32, sampler *Sampler)
}

/**
 * @brief One rendering configuration of a material: the shader reflection
 * data, the authored properties and the CPU side copy of every value that
 * has been written to it.
 */
type Pass struct {
	shaderInfo   *ShaderInfo
	properties   map[string]*PassProperty
	handles      map[string]UniformHandle
	uniforms     map[UniformHandle]interface{}
	textureViews map[uint32]*TextureView
	samplers     map[uint32]*Sampler
	dirty        bool
}

var _ MaterialPass = &Pass{}

// NewPass builds the uniform lookup of a pass from its shader reflection data.
// Names are registered in declaration order (blocks and their members, then
// samplers, then storage buffers); when a name is declared twice the first
// declaration wins. Bindings and member indices a handle cannot address are
// rejected.
func NewPass(info *ShaderInfo, properties map[string]*PassProperty) (*Pass, error) {
	if info == nil {
		return nil, fmt.Errorf("func NewPass - shader info is required")
	}
	if err := info.CheckHandleRange(); err != nil {
		return nil, err
	}
	if properties == nil {
		properties = make(map[string]*PassProperty)
	}
	p := &Pass{
		shaderInfo:   info,
		properties:   properties,
		handles:      make(map[string]UniformHandle),
		uniforms:     make(map[UniformHandle]interface{}),
		textureViews: make(map[uint32]*TextureView),
		samplers:     make(map[uint32]*Sampler),
	}

	for _, block := range info.Blocks {
		for i, member := range block.Members {
			p.register(member.Name, NewUniformHandle(BindingTypeUniformBuffer, block.Binding, member.Type, uint32(i)))
		}
	}
	for _, sampler := range info.Samplers {
		p.register(sampler.Name, NewUniformHandle(BindingTypeSampler, sampler.Binding, sampler.Type, 0))
	}
	for _, buffer := range info.Buffers {
		p.register(buffer.Name, NewUniformHandle(BindingTypeStorageBuffer, buffer.Binding, ShaderUniformTypeCustom, 0))
	}
	return p, nil
}

// CheckHandleRange reports the first binding or block member that does not fit
// in a UniformHandle.
func (si *ShaderInfo) CheckHandleRange() error {
	for _, block := range si.Blocks {
		if block.Binding > MaxUniformBinding {
			return fmt.Errorf("%w: block '%s' of shader '%s' uses binding %d, the maximum is %d", core.ErrConfiguration, block.Name, si.Name, block.Binding, MaxUniformBinding)
		}
		if n := uint32(len(block.Members)); n > MaxUniformMemberIndex+1 {
			return fmt.Errorf("%w: block '%s' of shader '%s' has %d members, the maximum is %d", core.ErrConfiguration, block.Name, si.Name, n, MaxUniformMemberIndex+1)
		}
	}
	for _, sampler := range si.Samplers {
		if sampler.Binding > MaxUniformBinding {
			return fmt.Errorf("%w: sampler '%s' of shader '%s' uses binding %d, the maximum is %d", core.ErrConfiguration, sampler.Name, si.Name, sampler.Binding, MaxUniformBinding)
		}
	}
	for _, buffer := range si.Buffers {
		if buffer.Binding > MaxUniformBinding {
			return fmt.Errorf("%w: buffer '%s' of shader '%s' uses binding %d, the maximum is %d", core.ErrConfiguration, buffer.Name, si.Name, buffer.Binding, MaxUniformBinding)
		}
	}
	return nil
}

func (p *Pass) register(name string, handle UniformHandle) {
	if _, exists := p.handles[name]; exists {
		return
	}
	p.handles[name] = handle
}

func (p *Pass) GetHandle(name string) (UniformHandle, bool) {
	h, ok := p.handles[name]
	return h, ok
}

func (p *Pass) ShaderInfo() *ShaderInfo {
	return p.shaderInfo
}

func (p *Pass) Property(name string) (*PassProperty, bool) {
	prop, ok := p.properties[name]
	return prop, ok
}

func (p *Pass) SetUniform(handle UniformHandle, value interface{}) {
	p.uniforms[handle] = value
	p.dirty = true
}

func (p *Pass) SetUniformArray(handle UniformHandle, value interface{}) {
	p.uniforms[handle] = value
	p.dirty = true
}

func (p *Pass) BindTextureView(binding uint32, view *TextureView) {
	p.textureViews[binding] = view
	p.dirty = true
}

func (p *Pass) BindSampler(binding uint32, sampler *Sampler) {
	p.samplers[binding] = sampler
	p.dirty = true
}

// Uniform returns the last value written through the given handle.
func (p *Pass) Uniform(handle UniformHandle) (interface{}, bool) {
	v, ok := p.uniforms[handle]
	return v, ok
}

// TextureViewAt returns the texture view bound to the given slot, if any.
func (p *Pass) TextureViewAt(binding uint32) *TextureView {
	return p.textureViews[binding]
}

// SamplerAt returns the sampler bound to the given slot, if any.
func (p *Pass) SamplerAt(binding uint32) *Sampler {
	return p.samplers[binding]
}

// Update marks the pass as uploaded and reports whether anything changed
// since the previous call.
func (p *Pass) Update() bool {
	dirty := p.dirty
	p.dirty = false
	return dirty
}
