package testutil

import (
	"encoding/binary"
	"io"
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/modcache/artifact"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint32 returns a pseudo-random uint32.
func (r *RNG) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint32()
}

// FillBytes fills p with pseudo-random bytes.
func (r *RNG) FillBytes(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Read(p)
}

// RandomPayload builds a deterministic payload with numFuncs functions,
// populating every section so round-trip tests exercise the full shape.
// The same seed always yields an identical payload.
func RandomPayload(rng *RNG, numFuncs int) *artifact.Payload {
	p := &artifact.Payload{
		Functions:    make([]artifact.Function, numFuncs),
		Relocations:  make([][]artifact.Relocation, numFuncs),
		AddressMaps:  make([]artifact.AddressMap, numFuncs),
		ValueRanges:  make([]artifact.ValueRangeSet, numFuncs),
		FrameLayouts: make([]artifact.FrameLayout, numFuncs),
	}
	for i := 0; i < numFuncs; i++ {
		body := make([]byte, 32+rng.Intn(256))
		rng.FillBytes(body)
		p.Functions[i] = artifact.Function{
			Body:       body,
			JumpTables: []uint32{rng.Uint32(), rng.Uint32()},
		}
		p.Relocations[i] = []artifact.Relocation{
			{Offset: rng.Uint32() % 64, Kind: artifact.RelocCallPCRel4, Target: uint32(i), Addend: int64(rng.Intn(16))},
		}
		p.AddressMaps[i] = artifact.AddressMap{
			Instructions: []artifact.InstructionAddress{
				{SrcOffset: rng.Uint32() % 1024, CodeOffset: 0, CodeLen: 4},
			},
			StartSrc: 0,
			EndSrc:   rng.Uint32() % 1024,
			BodyLen:  uint32(len(body)),
		}
		p.ValueRanges[i] = artifact.ValueRangeSet{
			rng.Uint32() % 8: {
				{Start: 0, End: 16, Loc: artifact.ValueLoc{Kind: artifact.LocRegister, Reg: uint16(rng.Intn(16))}},
			},
		}
		p.FrameLayouts[i] = artifact.FrameLayout{
			Slots: []artifact.StackSlot{
				{Kind: artifact.SlotSpill, Size: 8, Offset: int32(-8 * (i + 1))},
			},
			Size: uint32(16 * (i + 1)),
		}
	}
	return p
}

// SectionModule is a module representation backed by named sections, in the
// shape compilers keep them: a map. WriteContent visits sections in sorted
// name order, so two SectionModules with equal contents hash identically no
// matter what order they were populated in.
type SectionModule struct {
	Sections map[string][]byte
}

// WriteContent writes each section's name and bytes in sorted name order,
// length-prefixing both so section boundaries cannot alias.
func (m *SectionModule) WriteContent(w io.Writer) error {
	names := make([]string, 0, len(m.Sections))
	for name := range m.Sections {
		names = append(names, name)
	}
	sort.Strings(names)

	var n [8]byte
	for _, name := range names {
		binary.LittleEndian.PutUint64(n[:], uint64(len(name)))
		if _, err := w.Write(n[:]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, name); err != nil {
			return err
		}
		data := m.Sections[name]
		binary.LittleEndian.PutUint64(n[:], uint64(len(data)))
		if _, err := w.Write(n[:]); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}
