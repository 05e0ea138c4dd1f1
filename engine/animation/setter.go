package animation

import (
	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

// Setter receives the value of a track every time the track is evaluated.
type Setter interface {
	Set(value interface{})
}

// UniformSetter writes a scalar or vector member of a uniform block.
type UniformSetter struct {
	Pass   metadata.MaterialPass
	Handle metadata.UniformHandle
}

func (s *UniformSetter) Set(value interface{}) {
	s.Pass.SetUniform(s.Handle, value)
}

// UniformArraySetter writes a whole array member of a uniform block. The value
// is passed through untouched; its length is not checked against the declaration.
type UniformArraySetter struct {
	Pass   metadata.MaterialPass
	Handle metadata.UniformHandle
}

func (s *UniformArraySetter) Set(value interface{}) {
	s.Pass.SetUniformArray(s.Handle, value)
}

// SamplerSetter binds a texture or sprite frame to a sampler slot.
type SamplerSetter struct {
	Pass    metadata.MaterialPass
	Binding uint32
	// DefaultTexture replaces nil values. It may itself be nil when the
	// builtin texture was not available at bind time.
	DefaultTexture metadata.TextureSource
	Samplers       SamplerCache
	Device         metadata.SamplerDevice
}

// Set binds the view of value. A resource without a view, or whose texture
// has no size yet, is skipped; the next evaluation tries again.
func (s *SamplerSetter) Set(value interface{}) {
	source := s.source(value)
	if source == nil {
		return
	}
	view := source.TextureView()
	if !view.Ready() {
		return
	}
	s.Pass.BindTextureView(s.Binding, view)

	texture, ok := source.(metadata.SampledTexture)
	if !ok || s.Samplers == nil {
		return
	}
	sampler, err := s.Samplers.GetSampler(s.Device, texture.SamplerHash())
	if err != nil {
		core.LogError("unable to obtain sampler for binding %d: %s", s.Binding, err)
		return
	}
	s.Pass.BindSampler(s.Binding, sampler)
}

func (s *SamplerSetter) source(value interface{}) metadata.TextureSource {
	switch v := value.(type) {
	case nil:
		return s.DefaultTexture
	case *metadata.Texture:
		if v == nil {
			return s.DefaultTexture
		}
		return v
	case *metadata.SpriteFrame:
		if v == nil {
			return s.DefaultTexture
		}
		return v
	case metadata.TextureSource:
		return v
	default:
		return nil
	}
}

// PropertySetter writes a named field, map entry or accessor property of Target.
type PropertySetter struct {
	Target interface{}
	Name   string
}

func (s *PropertySetter) Set(value interface{}) {
	if err := SetProperty(s.Target, s.Name, value); err != nil {
		core.LogDebug("property '%s' not written: %s", s.Name, err)
	}
}

// IndexSetter writes an element of an indexed collection.
type IndexSetter struct {
	Target interface{}
	Index  int
}

func (s *IndexSetter) Set(value interface{}) {
	if err := SetIndex(s.Target, s.Index, value); err != nil {
		core.LogDebug("element %d not written: %s", s.Index, err)
	}
}

// SetterFunc adapts a plain function to the Setter interface.
type SetterFunc func(value interface{})

func (f SetterFunc) Set(value interface{}) {
	f(value)
}
