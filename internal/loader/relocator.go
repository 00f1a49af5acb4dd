package loader

import "unsafe"

// relocate applies the relocation table described by img.relocBase,
// the same way apply_relocation/relocate_data do: two passes over the
// *same* size, one treating it as the main REL/RELA table and one as
// the table immediately following it (the PLT/JMPREL table). size is
// always DT_RELSZ/DT_RELASZ's value for both passes — DT_PLTRELSZ is
// looked up by the caller but never reaches here, matching the
// original's dead lookup. If the guest's PLT table isn't exactly
// DT_RELSZ bytes long, the second pass reads too few or too many
// entries; that mismatch is inherited, not corrected.
func relocate(img *parsedImage, tbl *symbolTable, size uint64) {
	relocatePass(img, tbl, size, false)
	relocatePass(img, tbl, size, true)
}

func relocatePass(img *parsedImage, tbl *symbolTable, size uint64, pltrel bool) {
	base := img.relocBase
	if pltrel {
		base += size
	}

	count := size / relaSize
	for i := uint64(0); i < count; i++ {
		entryAddr := base + i*relaSize
		entry := readRelaAt(entryAddr)

		symIndex := relaSymbol(entry)
		name := img.symbolName(symIndex)
		if name == "" {
			continue
		}

		symPtr := tbl.resolve(name)
		local := symPtr != nil
		if symPtr == nil {
			symPtr = resolveHostSymbol(name)
		}
		logger.Resolve(name, local)

		off := symbolValue(img, symIndex)
		debugf("Relocating [%s] [off: 0x%x] -> [0x%x]\n", name, off, uintptr(symPtr))
		logger.Relocation(name, off, uint64(uintptr(symPtr)))

		target := (*uintptr)(unsafe.Pointer(uintptr(entry.offset + baseAddr)))
		applyRelocation(entry, symPtr, target)
	}
}

func symbolValue(img *parsedImage, index uint32) uint64 {
	off := uint64(index) * symSize
	if off+symSize > uint64(len(img.symtab)) {
		return 0
	}
	return decodeSym(img.symtab[off : off+symSize]).value
}

// readRelaAt reads one Elf64_Rela directly out of live process memory
// at addr, not out of the scratch file image: relocBase is an
// already-biased live address (see parsedImage.relocBase), so by the
// time relocate runs — after mapSegments — this address is backed by
// a real PT_LOAD mapping.
func readRelaAt(addr uint64) rela {
	b := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), relaSize)
	return decodeRela(b)
}

// applyRelocation mirrors apply_relocation's four-way dispatch
// exactly, including its two known divergences from a standard
// dynamic linker:
//
//   - R_X86_64_RELATIVE accumulates into *target (+=) instead of
//     assigning; whatever bytes were already at that address (BSS
//     zero, leftover file content, or a prior relocation's write)
//     survive into the result.
//   - R_X86_64_COPY assigns the resolved pointer value itself rather
//     than copying size bytes from the symbol's storage — a COPY
//     relocation here does not actually perform a copy.
func applyRelocation(entry rela, sym unsafe.Pointer, target *uintptr) {
	switch relaType(entry) {
	case rX8664Relative:
		*target += uintptr(int64(baseAddr) + entry.addend)
	case rX8664Copy:
		*target = uintptr(sym)
	case rX8664GlobDat:
		*target = uintptr(sym)
	case rX8664JumpSlot:
		if sym != nil {
			*target = uintptr(sym)
		} else {
			*target = 0
		}
	}
}
