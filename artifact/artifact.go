// Package artifact defines the compiled-output bundle stored by the cache.
//
// A Payload carries everything a later compilation stage needs to skip
// recompiling a module: machine code, relocations, address maps, value-label
// location ranges and stack-frame layouts, one element per defined function.
// The cache itself treats the payload as an opaque aggregate with a
// byte-exact round-trip requirement.
package artifact

// RelocKind identifies a relocation's addressing mode.
type RelocKind uint8

const (
	// RelocAbs4 is a 4-byte absolute address.
	RelocAbs4 RelocKind = iota
	// RelocAbs8 is an 8-byte absolute address.
	RelocAbs8
	// RelocPCRel4 is a 4-byte PC-relative offset.
	RelocPCRel4
	// RelocCallPCRel4 is a 4-byte PC-relative call target.
	RelocCallPCRel4
)

// Relocation records a patch site inside a function body.
type Relocation struct {
	Offset uint32    `json:"offset"`
	Kind   RelocKind `json:"kind"`
	Target uint32    `json:"target"`
	Addend int64     `json:"addend"`
}

// Function is the compiled machine code of a single defined function.
type Function struct {
	Body       []byte   `json:"body"`
	JumpTables []uint32 `json:"jump_tables,omitempty"`
}

// InstructionAddress maps one emitted instruction back to its source offset.
type InstructionAddress struct {
	SrcOffset  uint32 `json:"src_offset"`
	CodeOffset uint32 `json:"code_offset"`
	CodeLen    uint32 `json:"code_len"`
}

// AddressMap is the instruction-to-source mapping for one function.
type AddressMap struct {
	Instructions []InstructionAddress `json:"instructions,omitempty"`
	StartSrc     uint32               `json:"start_src"`
	EndSrc       uint32               `json:"end_src"`
	BodyLen      uint32               `json:"body_len"`
}

// LocKind identifies where a value lives over a code range.
type LocKind uint8

const (
	// LocRegister places the value in a machine register.
	LocRegister LocKind = iota
	// LocStack places the value in a stack slot.
	LocStack
)

// ValueLoc is a concrete value location.
type ValueLoc struct {
	Kind   LocKind `json:"kind"`
	Reg    uint16  `json:"reg,omitempty"`
	Offset int32   `json:"offset,omitempty"`
}

// ValueRange records where a value label lives over a code-offset range.
type ValueRange struct {
	Start uint32   `json:"start"`
	End   uint32   `json:"end"`
	Loc   ValueLoc `json:"loc"`
}

// ValueRangeSet maps value labels to their location ranges for one function.
// JSON keys are sorted by the encoder, so the serialized form is stable
// regardless of map iteration order.
type ValueRangeSet map[uint32][]ValueRange

// SlotKind identifies the role of a stack slot.
type SlotKind uint8

const (
	// SlotExplicit is a slot requested by the function itself.
	SlotExplicit SlotKind = iota
	// SlotSpill holds a spilled register value.
	SlotSpill
	// SlotIncomingArg holds an argument passed on the stack.
	SlotIncomingArg
	// SlotOutgoingArg holds an argument for an outgoing call.
	SlotOutgoingArg
)

// StackSlot is one slot in a function's frame.
type StackSlot struct {
	Kind   SlotKind `json:"kind"`
	Size   uint32   `json:"size"`
	Offset int32    `json:"offset"`
}

// FrameLayout is the stack-frame layout of one function.
type FrameLayout struct {
	Slots []StackSlot `json:"slots,omitempty"`
	Size  uint32      `json:"size"`
}

// Payload is the cached compilation result for one module. All slices are
// indexed by defined-function order.
type Payload struct {
	Functions    []Function      `json:"functions"`
	Relocations  [][]Relocation  `json:"relocations,omitempty"`
	AddressMaps  []AddressMap    `json:"address_maps,omitempty"`
	ValueRanges  []ValueRangeSet `json:"value_ranges,omitempty"`
	FrameLayouts []FrameLayout   `json:"frame_layouts,omitempty"`
}
