// Package loader maps a dynamically-linked ELF64/x86-64 executable
// into the current process at a fixed bias, resolves its dynamic
// relocations against a small local symbol table, and jumps to its
// entry point without execve.
package loader

import "errors"

// baseAddr is the fixed virtual-address bias every loaded image is
// mapped at. There is no ASLR and no attempt to honor a PIE's
// preferred base: every segment address and every DT_REL/DT_RELA
// pointer is treated as an offset from this value.
const baseAddr = 0x10000000

// Sentinel error kinds. The CLI treats all of them identically (a
// silent load-abort) but keeping them distinct lets callers and tests
// tell failures apart.
var (
	ErrNotFound         = errors.New("loader: elf not found")
	ErrIO               = errors.New("loader: i/o error")
	ErrBadMagic         = errors.New("loader: bad elf magic")
	ErrNoPhdr           = errors.New("loader: no program header table")
	ErrNoDynamic        = errors.New("loader: no PT_DYNAMIC segment")
	ErrNoStrtabSymtab   = errors.New("loader: missing DT_STRTAB or DT_SYMTAB")
	ErrNoRelocs         = errors.New("loader: missing DT_REL/DT_RELA or size")
	ErrSegmentMapFailed = errors.New("loader: PT_LOAD segment map failed")
)

// parsedImage holds raw views into one scratch-mapped ELF file. Every
// pointer-shaped field here is an offset into image (file-relative),
// except relocBase, which is loaded-address-relative — the same
// asymmetry the original C carries between DT_STRTAB/DT_SYMTAB
// (file-offset reads off binary->memory) and DT_REL/DT_RELA (treated
// as already-biased addresses). Preserved, not fixed.
type parsedImage struct {
	fd   int
	size int64
	image []byte

	hdr   ehdr
	phdrs []phdr

	dynamic []byte // raw PT_DYNAMIC bytes, file-relative

	strtab []byte // file-relative, starts at DT_STRTAB's d_val offset into image
	symtab []byte // file-relative, starts at DT_SYMTAB's d_val offset into image

	// relocBase is DT_REL/DT_RELA's d_val treated not as a file offset
	// but as an already-biased live address (+baseAddr). The relocation
	// table is read directly out of the live PT_LOAD mapping once the
	// Mapper has run, not out of the scratch image — unlike strtab and
	// symtab above. This is the asymmetry the original carries between
	// "memory + d_ptr" (DT_STRTAB/DT_SYMTAB) and "d_ptr + baseAddr"
	// (DT_REL/DT_RELA); preserved, not fixed.
	relocBase uint64
}
