package metadata

import "github.com/spaghettifunk/animotion/engine/math"

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
	/** @brief No filtering, only meaningful for mip levels. */
	TextureFilterModeNone TextureFilter = 0x2
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
	TextureRepeatClampToBorder  TextureRepeat = 0x4
)

const MaxSamplerAnisotropy uint32 = 16

/**
 * @brief The fixed-function sampling state of a texture.
 */
type SamplerState struct {
	/** @brief Texture filtering mode for minification. */
	MinFilter TextureFilter
	/** @brief Texture filtering mode for magnification. */
	MagFilter TextureFilter
	/** @brief Filtering between mip levels. */
	MipFilter TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	RepeatU TextureRepeat
	/** @brief The repeat mode on the V axis (or Y, or T) */
	RepeatV TextureRepeat
	/** @brief The repeat mode on the W axis (or Z, or U) */
	RepeatW TextureRepeat
	/** @brief 0 disables anisotropic filtering. */
	MaxAnisotropy uint32
}

func DefaultSamplerState() SamplerState {
	return SamplerState{
		MinFilter: TextureFilterModeLinear,
		MagFilter: TextureFilterModeLinear,
		MipFilter: TextureFilterModeNone,
		RepeatU:   TextureRepeatRepeat,
		RepeatV:   TextureRepeatRepeat,
		RepeatW:   TextureRepeatRepeat,
	}
}

const (
	samplerMinShift   = 0
	samplerMagShift   = 2
	samplerMipShift   = 4
	samplerUShift     = 6
	samplerVShift     = 9
	samplerWShift     = 12
	samplerAnisoShift = 15

	samplerFilterMask = 0x3
	samplerRepeatMask = 0x7
	samplerAnisoMask  = 0x1f
)

// Hash packs the state into a stable key. Equal states always produce the same
// hash and SamplerStateFromHash recovers the state from it.
func (s SamplerState) Hash() uint32 {
	aniso := math.Clamp(s.MaxAnisotropy, 0, MaxSamplerAnisotropy)
	return uint32(s.MinFilter)&samplerFilterMask<<samplerMinShift |
		uint32(s.MagFilter)&samplerFilterMask<<samplerMagShift |
		uint32(s.MipFilter)&samplerFilterMask<<samplerMipShift |
		uint32(s.RepeatU)&samplerRepeatMask<<samplerUShift |
		uint32(s.RepeatV)&samplerRepeatMask<<samplerVShift |
		uint32(s.RepeatW)&samplerRepeatMask<<samplerWShift |
		aniso&samplerAnisoMask<<samplerAnisoShift
}

func SamplerStateFromHash(hash uint32) SamplerState {
	return SamplerState{
		MinFilter:     TextureFilter(hash >> samplerMinShift & samplerFilterMask),
		MagFilter:     TextureFilter(hash >> samplerMagShift & samplerFilterMask),
		MipFilter:     TextureFilter(hash >> samplerMipShift & samplerFilterMask),
		RepeatU:       TextureRepeat(hash >> samplerUShift & samplerRepeatMask),
		RepeatV:       TextureRepeat(hash >> samplerVShift & samplerRepeatMask),
		RepeatW:       TextureRepeat(hash >> samplerWShift & samplerRepeatMask),
		MaxAnisotropy: hash >> samplerAnisoShift & samplerAnisoMask,
	}
}

/**
 * @brief A GPU sampler object created from a sampler state.
 */
type Sampler struct {
	Hash  uint32
	State SamplerState
	/** @brief Renderer API specific sampler object. */
	Handle interface{}
}

// SamplerDevice creates and destroys renderer specific sampler objects.
type SamplerDevice interface {
	CreateSampler(state SamplerState) (interface{}, error)
	DestroySampler(handle interface{})
}
