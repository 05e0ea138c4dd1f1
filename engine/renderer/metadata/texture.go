package metadata

import "github.com/spaghettifunk/animotion/engine/math"

const (
	/** @brief The builtin 2D texture used when nothing else is known. */
	DefaultTextureName string = "default-texture"
	/** @brief The builtin cube texture used when nothing else is known. */
	DefaultCubeTextureName string = "default-cube-texture"

	/** @brief Suffix appended to an authored sampler default to form a builtin texture name. */
	TextureNameSuffix string = "-texture"
)

// DefaultTextureNameForType returns the builtin texture that stands in for an
// unbound sampler of the given type.
func DefaultTextureNameForType(t ShaderUniformType) (string, bool) {
	switch t {
	case ShaderUniformTypeSampler:
		return DefaultTextureName, true
	case ShaderUniformTypeSamplerCube:
		return DefaultCubeTextureName, true
	default:
		return "", false
	}
}

type TextureFlag int

const (
	/** @brief Indicates if the texture has transparency. */
	TextureFlagHasTransparency TextureFlag = 0x1
	/** @brief Indicates if the texture can be written (rendered) to. */
	TextureFlagIsWriteable TextureFlag = 0x2
	/** @brief Indicates if the texture was created via wrapping vs traditional creation. */
	TextureFlagIsWrapped TextureFlag = 0x4
)

/** @brief Holds bit flags for textures.. */
type TextureFlagBits uint8

/**
 * @brief Represents various types of textures.
 */
type TextureType int

const (
	/** @brief A standard two-dimensional texture. */
	TextureType2d TextureType = iota
	/** @brief A cube texture, used for cubemaps. */
	TextureTypeCube
)

// TextureSource is anything that can be bound to a sampler slot.
type TextureSource interface {
	// TextureView returns the GPU view of the resource, or nil if it has not been uploaded.
	TextureView() *TextureView
}

// SampledTexture is a texture resource that carries its own sampling state.
type SampledTexture interface {
	TextureSource
	SamplerHash() uint32
}

/**
 * @brief A GPU view over a texture.
 */
type TextureView struct {
	/** @brief The texture the view was created for. */
	Texture *Texture
	/** @brief Renderer API specific view object. */
	Handle interface{}
}

// Ready reports whether the view is backed by a texture with a non-zero size.
func (tv *TextureView) Ready() bool {
	return tv != nil && tv.Texture != nil && tv.Texture.Width != 0 && tv.Texture.Height != 0
}

/**
 * @brief Represents a texture.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uint32
	/** @brief The texture type. */
	TextureType TextureType
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The texture Name. */
	Name string
	/** @brief The raw texture data (pixels). */
	Pixels []uint8
	/** @brief How the texture is sampled. */
	Sampler SamplerState
	/** @brief The GPU view, nil until the texture has been uploaded. */
	View *TextureView
}

var _ SampledTexture = &Texture{}

func (t *Texture) TextureView() *TextureView {
	return t.View
}

func (t *Texture) SamplerHash() uint32 {
	return t.Sampler.Hash()
}

// CreateView attaches a GPU view to the texture and bumps its generation.
func (t *Texture) CreateView(handle interface{}) *TextureView {
	t.View = &TextureView{Texture: t, Handle: handle}
	if t.Generation == InvalidID {
		t.Generation = 0
	} else {
		t.Generation++
	}
	return t.View
}

/**
 * @brief A rectangular region of a texture, typically one frame of a
 * sprite sheet. Sprite frames are bound through their texture's view but
 * never carry a sampler of their own.
 */
type SpriteFrame struct {
	Name    string
	Texture *Texture
	/** @brief The region in pixels: X, Y is the origin, Z, W the size. */
	Rect math.Vec4
}

var _ TextureSource = &SpriteFrame{}

func (sf *SpriteFrame) TextureView() *TextureView {
	if sf.Texture == nil {
		return nil
	}
	return sf.Texture.TextureView()
}
