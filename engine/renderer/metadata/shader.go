package metadata

import "fmt"

/** @brief Available uniform types. */
type ShaderUniformType uint

const (
	ShaderUniformTypeFloat32     ShaderUniformType = 0
	ShaderUniformTypeFloat32_2   ShaderUniformType = 1
	ShaderUniformTypeFloat32_3   ShaderUniformType = 2
	ShaderUniformTypeFloat32_4   ShaderUniformType = 3
	ShaderUniformTypeInt8        ShaderUniformType = 4
	ShaderUniformTypeUint8       ShaderUniformType = 5
	ShaderUniformTypeInt16       ShaderUniformType = 6
	ShaderUniformTypeUint16      ShaderUniformType = 7
	ShaderUniformTypeInt32       ShaderUniformType = 8
	ShaderUniformTypeUint32      ShaderUniformType = 9
	ShaderUniformTypeMatrix4     ShaderUniformType = 10
	ShaderUniformTypeSampler     ShaderUniformType = 11
	ShaderUniformTypeSamplerCube ShaderUniformType = 12
	ShaderUniformTypeCustom      ShaderUniformType = 255
)

var shaderUniformTypeNames = map[ShaderUniformType]string{
	ShaderUniformTypeFloat32:     "float",
	ShaderUniformTypeFloat32_2:   "vec2",
	ShaderUniformTypeFloat32_3:   "vec3",
	ShaderUniformTypeFloat32_4:   "vec4",
	ShaderUniformTypeInt8:        "int8",
	ShaderUniformTypeUint8:       "uint8",
	ShaderUniformTypeInt16:       "int16",
	ShaderUniformTypeUint16:      "uint16",
	ShaderUniformTypeInt32:       "int",
	ShaderUniformTypeUint32:      "uint",
	ShaderUniformTypeMatrix4:     "mat4",
	ShaderUniformTypeSampler:     "sampler2D",
	ShaderUniformTypeSamplerCube: "samplerCube",
	ShaderUniformTypeCustom:      "custom",
}

func ShaderUniformTypeFromString(s string) (ShaderUniformType, error) {
	for t, name := range shaderUniformTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("string %s is not a valid ShaderUniformType", s)
}

func (t ShaderUniformType) String() string {
	if name, ok := shaderUniformTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ShaderUniformType(%d)", uint(t))
}

// IsSampler reports whether the type describes a texture binding.
func (t ShaderUniformType) IsSampler() bool {
	return t == ShaderUniformTypeSampler || t == ShaderUniformTypeSamplerCube
}

func (t ShaderUniformType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ShaderUniformType) UnmarshalText(text []byte) error {
	v, err := ShaderUniformTypeFromString(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

/** @brief The kind of GPU binding a uniform is delivered through. */
type BindingType uint8

const (
	BindingTypeUnknown BindingType = iota
	/** @brief A member of a uniform buffer block. */
	BindingTypeUniformBuffer
	/** @brief A combined texture/sampler slot. */
	BindingTypeSampler
	/** @brief A storage buffer. Not writable through the uniform path. */
	BindingTypeStorageBuffer
)

func (bt BindingType) String() string {
	switch bt {
	case BindingTypeUniformBuffer:
		return "uniform-buffer"
	case BindingTypeSampler:
		return "sampler"
	case BindingTypeStorageBuffer:
		return "storage-buffer"
	default:
		return "unknown"
	}
}

/**
 * @brief A single member of a uniform block as reported by shader reflection.
 */
type ShaderBlockMember struct {
	/** @brief The member name as declared in the shader. */
	Name string `toml:"name"`
	/** @brief The member type. */
	Type ShaderUniformType `toml:"type"`
	/** @brief The array element count. 1 (or 0) for non-array members. */
	Count uint32 `toml:"count"`
}

/**
 * @brief A uniform block (UBO) as reported by shader reflection.
 */
type ShaderBlock struct {
	Name    string              `toml:"name"`
	Binding uint32              `toml:"binding"`
	Members []ShaderBlockMember `toml:"members"`
}

/**
 * @brief A sampler binding as reported by shader reflection.
 */
type ShaderSampler struct {
	Name    string            `toml:"name"`
	Type    ShaderUniformType `toml:"type"`
	Binding uint32            `toml:"binding"`
	Count   uint32            `toml:"count"`
}

/**
 * @brief A storage buffer binding as reported by shader reflection.
 */
type ShaderBuffer struct {
	Name    string `toml:"name"`
	Binding uint32 `toml:"binding"`
}

/**
 * @brief The reflection data of a pass' shader. Declaration order of
 * blocks, members, samplers and buffers is preserved.
 */
type ShaderInfo struct {
	Name     string          `toml:"name"`
	Blocks   []ShaderBlock   `toml:"blocks"`
	Samplers []ShaderSampler `toml:"samplers"`
	Buffers  []ShaderBuffer  `toml:"buffers"`
}

// FindMember returns the first block member with the given name, in declaration order.
func (si *ShaderInfo) FindMember(name string) (*ShaderBlockMember, bool) {
	for b := range si.Blocks {
		for m := range si.Blocks[b].Members {
			if si.Blocks[b].Members[m].Name == name {
				return &si.Blocks[b].Members[m], true
			}
		}
	}
	return nil, false
}

// FindSampler returns the first sampler with the given name, in declaration order.
func (si *ShaderInfo) FindSampler(name string) (*ShaderSampler, bool) {
	for i := range si.Samplers {
		if si.Samplers[i].Name == name {
			return &si.Samplers[i], true
		}
	}
	return nil, false
}
