package metadata

// UniformHandle addresses a single uniform or binding of a pass. It packs the
// binding type, the binding slot, the uniform type and the member index:
//
//	bits 28-31 binding type, 20-27 binding, 12-19 uniform type, 0-11 index
type UniformHandle uint32

const (
	handleBindingTypeShift = 28
	handleBindingShift     = 20
	handleTypeShift        = 12

	handleBindingMask = 0xff
	handleTypeMask    = 0xff
	handleIndexMask   = 0xfff
)

const (
	// MaxUniformBinding is the highest binding slot a handle can address.
	MaxUniformBinding uint32 = handleBindingMask
	// MaxUniformMemberIndex is the highest block member index a handle can address.
	MaxUniformMemberIndex uint32 = handleIndexMask
)

// NewUniformHandle packs the fields into a handle. Callers must keep binding
// and index within MaxUniformBinding and MaxUniformMemberIndex.
func NewUniformHandle(bt BindingType, binding uint32, t ShaderUniformType, index uint32) UniformHandle {
	return UniformHandle(uint32(bt)<<handleBindingTypeShift |
		(binding&handleBindingMask)<<handleBindingShift |
		(uint32(t)&handleTypeMask)<<handleTypeShift |
		index&handleIndexMask)
}

func (h UniformHandle) BindingType() BindingType {
	return BindingType(uint32(h) >> handleBindingTypeShift)
}

func (h UniformHandle) Binding() uint32 {
	return uint32(h) >> handleBindingShift & handleBindingMask
}

func (h UniformHandle) Type() ShaderUniformType {
	return ShaderUniformType(uint32(h) >> handleTypeShift & handleTypeMask)
}

func (h UniformHandle) Index() uint32 {
	return uint32(h) & handleIndexMask
}
