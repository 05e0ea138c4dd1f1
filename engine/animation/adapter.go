package animation

import (
	"fmt"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

// ResourceRegistry is a read-mostly lookup of engine builtin resources.
type ResourceRegistry interface {
	Get(name string) (interface{}, bool)
}

// SamplerCache returns the sampler object for a sampler hash, creating it on
// the given device the first time the hash is seen.
type SamplerCache interface {
	GetSampler(device metadata.SamplerDevice, hash uint32) (*metadata.Sampler, error)
}

// BindingContext carries the shared state adapters and paths need while a
// track is being bound. Any field may be nil.
type BindingContext struct {
	Resources ResourceRegistry
	Samplers  SamplerCache
	Device    metadata.SamplerDevice
	Paths     *Resolver
}

func (ctx *BindingContext) resolver() *Resolver {
	if ctx == nil || ctx.Paths == nil {
		return defaultResolver
	}
	return ctx.Paths
}

// CurveValueAdapter turns the object a track resolved to into a Setter.
type CurveValueAdapter interface {
	ForTarget(target interface{}, ctx *BindingContext) (Setter, error)
}

// UniformCurveValueAdapter drives a uniform or sampler of one material pass.
type UniformCurveValueAdapter struct {
	PassIndex   int    `toml:"pass_index"`
	UniformName string `toml:"uniform_name"`
}

var _ CurveValueAdapter = &UniformCurveValueAdapter{}

// ForTarget resolves the uniform on the material once and returns a setter
// bound to it. Unknown names and binding types that cannot be animated are
// reported here, never by the returned Setter.
func (a *UniformCurveValueAdapter) ForTarget(target interface{}, ctx *BindingContext) (Setter, error) {
	material, ok := target.(*metadata.Material)
	if !ok || material == nil {
		return nil, fmt.Errorf("%w: target of uniform adapter shall be a material, got %T", core.ErrTypeMismatch, target)
	}
	pass, err := material.GetPass(a.PassIndex)
	if err != nil {
		return nil, err
	}
	handle, ok := pass.GetHandle(a.UniformName)
	if !ok {
		return nil, fmt.Errorf("%w: material '%s' has no uniform '%s'", core.ErrConfiguration, material.Name, a.UniformName)
	}

	switch bindingType := handle.BindingType(); bindingType {
	case metadata.BindingTypeUniformBuffer:
		if isUniformArray(pass.ShaderInfo(), a.UniformName) {
			return &UniformArraySetter{Pass: pass, Handle: handle}, nil
		}
		return &UniformSetter{Pass: pass, Handle: handle}, nil
	case metadata.BindingTypeSampler:
		return a.samplerSetter(material, pass, handle, ctx), nil
	default:
		return nil, fmt.Errorf("%w: animations are not available for uniform '%s' with binding type %s", core.ErrUnsupportedBinding, a.UniformName, bindingType)
	}
}

func (a *UniformCurveValueAdapter) samplerSetter(material *metadata.Material, pass metadata.MaterialPass, handle metadata.UniformHandle, ctx *BindingContext) *SamplerSetter {
	if ctx == nil {
		ctx = &BindingContext{}
	}
	setter := &SamplerSetter{
		Pass:     pass,
		Binding:  handle.Binding(),
		Samplers: ctx.Samplers,
		Device:   ctx.Device,
	}

	name := defaultTextureName(pass, a.UniformName, handle.Type())
	if ctx.Resources != nil {
		if res, ok := ctx.Resources.Get(name); ok {
			setter.DefaultTexture, _ = res.(metadata.TextureSource)
		}
	}
	if setter.DefaultTexture == nil {
		core.LogWarn("builtin texture '%s' for uniform '%s' of material '%s' is not available", name, a.UniformName, material.Name)
	}
	return setter
}

// defaultTextureName prefers the authored default ("white" becomes
// "white-texture") and falls back to the default for the declared type.
func defaultTextureName(pass metadata.MaterialPass, uniformName string, declared metadata.ShaderUniformType) string {
	if prop, ok := pass.Property(uniformName); ok && prop.HasValue() {
		return fmt.Sprintf("%v%s", prop.Value, metadata.TextureNameSuffix)
	}
	if name, ok := metadata.DefaultTextureNameForType(declared); ok {
		return name
	}
	return metadata.DefaultTextureName
}

func isUniformArray(info *metadata.ShaderInfo, name string) bool {
	if info == nil {
		return false
	}
	member, ok := info.FindMember(name)
	return ok && member.Count > 1
}
