package loader

import (
	"testing"
	"unsafe"
)

func TestApplyRelocationRelativeAccumulates(t *testing.T) {
	var target uintptr = 0x42 // pre-existing bytes at the write address
	entry := rela{info: uint64(rX8664Relative), addend: 0x10}
	applyRelocation(entry, nil, &target)

	want := uintptr(0x42) + uintptr(int64(baseAddr)+0x10)
	if target != want {
		t.Fatalf("R_X86_64_RELATIVE should accumulate, got 0x%x want 0x%x", target, want)
	}
}

func TestApplyRelocationCopyAssignsPointerNotBytes(t *testing.T) {
	var target uintptr = 0xaaaa
	var payload int32 = 0x1234
	entry := rela{info: uint64(rX8664Copy)}
	applyRelocation(entry, unsafe.Pointer(&payload), &target)

	if target != uintptr(unsafe.Pointer(&payload)) {
		t.Fatalf("R_X86_64_COPY should assign the pointer value, got 0x%x", target)
	}
}

func TestApplyRelocationGlobDat(t *testing.T) {
	var target uintptr
	var payload int
	entry := rela{info: uint64(rX8664GlobDat)}
	applyRelocation(entry, unsafe.Pointer(&payload), &target)

	if target != uintptr(unsafe.Pointer(&payload)) {
		t.Fatalf("R_X86_64_GLOB_DAT should assign resolved pointer")
	}
}

func TestApplyRelocationJumpSlotNilZeroes(t *testing.T) {
	var target uintptr = 0xdeadbeef
	entry := rela{info: uint64(rX8664JumpSlot)}
	applyRelocation(entry, nil, &target)

	if target != 0 {
		t.Fatalf("unresolved R_X86_64_JUMP_SLOT should zero the slot, got 0x%x", target)
	}
}

func TestApplyRelocationJumpSlotResolved(t *testing.T) {
	var target uintptr
	var payload int
	entry := rela{info: uint64(rX8664JumpSlot)}
	applyRelocation(entry, unsafe.Pointer(&payload), &target)

	if target != uintptr(unsafe.Pointer(&payload)) {
		t.Fatalf("resolved R_X86_64_JUMP_SLOT should assign the pointer")
	}
}

func TestApplyRelocationUnknownTypeIsNoop(t *testing.T) {
	var target uintptr = 7
	entry := rela{info: 0xff}
	applyRelocation(entry, unsafe.Pointer(&target), &target)

	if target != 7 {
		t.Fatalf("unrecognized relocation type must leave the slot untouched, got 0x%x", target)
	}
}
