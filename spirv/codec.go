package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// magic identifies our word stream, positioned like a SPIR-V module's
// magic number so a hex dump reads the same way a real shader binary
// would.
const magic = 0x07230203

const version = 1

type opcode uint32

const (
	opEntryStage opcode = iota + 1
	opDeclareUBO
	opDeclarePushConstant
	opMember
	opDeclareSampler
	opDeclareInput
	opEnd
)

// ErrBadMagic is returned by Decode when the word stream doesn't begin
// with the expected header.
var ErrBadMagic = errors.New("spirv: bad magic number")

// ErrTruncated is returned by Decode when the word stream ends in the
// middle of an instruction.
var ErrTruncated = errors.New("spirv: truncated module")

// Encode serializes a Module to a word stream: a 3-word header (magic,
// version, word count) followed by a sequence of (opcode, length,
// operands...) instructions, one per declared interface element.
func Encode(m *Module) []uint32 {
	var body []uint32

	body = append(body, uint32(opEntryStage), 5, uint32(m.Stage), m.UBOCount, m.PushConstantCount)

	if m.UBO != nil {
		body = append(body, encodeBlock(opDeclareUBO, m.UBO)...)
	}
	if m.PushConstant != nil {
		body = append(body, encodeBlock(opDeclarePushConstant, m.PushConstant)...)
	}
	for _, s := range m.Samplers {
		words := encodeString(s.Name)
		instr := append([]uint32{uint32(opDeclareSampler), 0, s.Binding}, words...)
		instr[1] = uint32(len(instr))
		body = append(body, instr...)
	}
	for _, in := range m.Inputs {
		words := encodeString(in.Name)
		instr := append([]uint32{uint32(opDeclareInput), 0, in.Location}, words...)
		instr[1] = uint32(len(instr))
		body = append(body, instr...)
	}
	body = append(body, uint32(opEnd), 2)

	out := make([]uint32, 0, 3+len(body))
	out = append(out, magic, version, uint32(len(body)))
	out = append(out, body...)
	return out
}

func encodeBlock(op opcode, b *Block) []uint32 {
	header := []uint32{uint32(op), 0, b.Binding, uint32(len(b.Members)), b.Size}
	var members []uint32
	for _, m := range b.Members {
		words := encodeString(m.Name)
		rec := append([]uint32{uint32(opMember), 0, uint32(m.Type), m.Offset}, words...)
		rec[1] = uint32(len(rec))
		members = append(members, rec...)
	}
	header[1] = uint32(len(header) + len(members))
	return append(header, members...)
}

// encodeString packs a UTF-8 string 4 bytes per word, little-endian,
// null-terminated and padded to a whole word — matching SPIR-V's own
// literal-string encoding.
func encodeString(s string) []uint32 {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return append([]uint32{uint32(len(words))}, words...)
}

func decodeString(words []uint32, pos int) (string, int, error) {
	if pos >= len(words) {
		return "", pos, ErrTruncated
	}
	n := int(words[pos])
	pos++
	if pos+n > len(words) {
		return "", pos, ErrTruncated
	}
	b := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		var w [4]byte
		binary.LittleEndian.PutUint32(w[:], words[pos+i])
		b = append(b, w[:]...)
	}
	pos += n
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end]), pos, nil
}

// Decode parses a word stream produced by Encode back into a Module.
func Decode(words []uint32) (*Module, error) {
	if len(words) < 3 || words[0] != magic {
		return nil, ErrBadMagic
	}
	body := words[3:]

	m := &Module{}
	pos := 0
	for pos < len(body) {
		if pos+2 > len(body) {
			return nil, ErrTruncated
		}
		op := opcode(body[pos])
		length := int(body[pos+1])
		if length < 2 || pos+length > len(body) {
			return nil, ErrTruncated
		}
		instr := body[pos : pos+length]
		pos += length

		switch op {
		case opEntryStage:
			m.Stage = Stage(instr[2])
			if len(instr) >= 5 {
				m.UBOCount = instr[3]
				m.PushConstantCount = instr[4]
			}
		case opEnd:
			// terminal marker
		case opDeclareUBO, opDeclarePushConstant:
			blk, err := decodeBlock(instr)
			if err != nil {
				return nil, err
			}
			if op == opDeclareUBO {
				m.UBO = blk
			} else {
				m.PushConstant = blk
			}
		case opDeclareSampler:
			binding := instr[2]
			name, _, err := decodeString(instr, 3)
			if err != nil {
				return nil, err
			}
			m.Samplers = append(m.Samplers, Sampler{Name: name, Binding: binding})
		case opDeclareInput:
			location := instr[2]
			name, _, err := decodeString(instr, 3)
			if err != nil {
				return nil, err
			}
			m.Inputs = append(m.Inputs, Attribute{Name: name, Location: location})
		default:
			return nil, fmt.Errorf("spirv: unknown opcode %d", op)
		}
	}
	return m, nil
}

func decodeBlock(instr []uint32) (*Block, error) {
	if len(instr) < 5 {
		return nil, ErrTruncated
	}
	binding := instr[2]
	memberCount := int(instr[3])
	size := instr[4]

	blk := &Block{Binding: binding, Size: size}
	pos := 5
	for i := 0; i < memberCount; i++ {
		if pos+2 > len(instr) {
			return nil, ErrTruncated
		}
		memberWords := instr[pos:]
		length := int(memberWords[1])
		if length < 2 || length > len(memberWords) {
			return nil, ErrTruncated
		}
		rec := memberWords[:length]
		typ := ScalarType(rec[2])
		offset := rec[3]
		name, _, err := decodeString(rec, 4)
		if err != nil {
			return nil, err
		}
		blk.Members = append(blk.Members, Member{Name: name, Type: typ, Offset: offset})
		pos += length
	}
	return blk, nil
}
