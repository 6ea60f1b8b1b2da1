package escrow

import (
	"encoding/binary"
)

type InstructionType uint8

const (
	InstructionTypeInitialize InstructionType = iota
	InstructionTypeComplete
	InstructionTypeClose
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitialize:
		return "initialize"
	case InstructionTypeComplete:
		return "complete"
	case InstructionTypeClose:
		return "close"
	}

	return "unknown"
}

// Instruction is one decoded escrow operation. Amount is only meaningful
// for InstructionTypeInitialize.
type Instruction struct {
	Type   InstructionType
	Amount uint64
}

// MarshalInstruction serializes an instruction into its wire format: a one
// byte discriminant, followed by a little-endian uint64 deposit amount for
// initialize.
func MarshalInstruction(ix *Instruction) []byte {
	if ix.Type == InstructionTypeInitialize {
		data := make([]byte, 9)
		data[0] = byte(ix.Type)
		binary.LittleEndian.PutUint64(data[1:], ix.Amount)
		return data
	}

	return []byte{byte(ix.Type)}
}

// UnpackInstruction decodes an instruction from its wire format.
//
// An empty buffer, an unknown discriminant, or an initialize payload whose
// remainder is not exactly the 8 byte amount fails with
// ErrInvalidInstructionData. Complete and close carry no payload; trailing
// bytes after their discriminant are ignored.
func UnpackInstruction(data []byte) (*Instruction, error) {
	if len(data) == 0 {
		return nil, ErrInvalidInstructionData
	}

	switch InstructionType(data[0]) {
	case InstructionTypeInitialize:
		if len(data) != 9 {
			return nil, ErrInvalidInstructionData
		}
		return &Instruction{
			Type:   InstructionTypeInitialize,
			Amount: binary.LittleEndian.Uint64(data[1:]),
		}, nil
	case InstructionTypeComplete:
		return &Instruction{Type: InstructionTypeComplete}, nil
	case InstructionTypeClose:
		return &Instruction{Type: InstructionTypeClose}, nil
	}

	return nil, ErrInvalidInstructionData
}
