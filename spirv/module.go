// Package spirv is a minimal binary shader-interface module: just enough
// of the public SPIR-V binary module shape (word stream, tagged
// instructions, length-prefixed string literals) to carry one shader
// stage's uniform/push-constant/sampler interface from the front end to
// the reflector, and round-trip it through an encoded []uint32 word
// stream the way a real SPIR-V module would travel between compiler and
// reflector.
//
// It is not a general SPIR-V consumer: the opcode set below is this
// runtime's own, not the Khronos instruction set.
package spirv

// Stage identifies which shader stage a Module describes.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

// ScalarType is a GLSL std140-layout-relevant member type.
type ScalarType int

const (
	TypeFloat ScalarType = iota
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat4
)

// Size returns the std140 byte size of t, ignoring alignment padding
// between members.
func (t ScalarType) Size() uint32 {
	size, _ := t.sizeAlign()
	return size
}

// sizeAlign returns the std140 (size, alignment) of a scalar type, in
// bytes.
func (t ScalarType) sizeAlign() (size, align uint32) {
	switch t {
	case TypeFloat:
		return 4, 4
	case TypeVec2:
		return 8, 8
	case TypeVec3:
		return 12, 16
	case TypeVec4:
		return 16, 16
	case TypeMat4:
		return 64, 16
	default:
		return 4, 4
	}
}

// Member is one field of a uniform buffer or push-constant block.
type Member struct {
	Name   string
	Type   ScalarType
	Offset uint32
}

// Block is a uniform buffer or push-constant interface block.
type Block struct {
	Binding uint32
	Members []Member
	Size    uint32
}

// Sampler is a combined image-sampler declaration.
type Sampler struct {
	Name    string
	Binding uint32
}

// Attribute is a vertex stage input declaration.
type Attribute struct {
	Name     string
	Location uint32
}

// Module is one shader stage's declared interface.
type Module struct {
	Stage        Stage
	UBO          *Block
	PushConstant *Block
	Samplers     []Sampler
	Inputs       []Attribute
	// UBOCount and PushConstantCount are the number of uniform buffer /
	// push-constant block headers the front end saw in this stage,
	// including the first. UBO/PushConstant only ever carry the first
	// one's layout (a Block has no room for more than one), so a
	// reflector that only inspected those fields would never notice a
	// stage declaring two; these counts let it.
	UBOCount          uint32
	PushConstantCount uint32
}

// NewBlockBuilder lays out members in declaration order using std140
// packing rules and returns the finished Block.
func NewBlockBuilder(binding uint32, members []Member) *Block {
	offset := uint32(0)
	laidOut := make([]Member, len(members))
	for i, m := range members {
		size, align := m.Type.sizeAlign()
		offset = alignUp(offset, align)
		m.Offset = offset
		laidOut[i] = m
		offset += size
	}
	return &Block{Binding: binding, Members: laidOut, Size: alignUp(offset, 16)}
}

func alignUp(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	rem := v % align
	if rem == 0 {
		return v
	}
	return v + (align - rem)
}
