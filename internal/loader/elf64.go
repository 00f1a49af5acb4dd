package loader

import "encoding/binary"

// Raw ELF64/x86-64 binary layouts, decoded by hand from a scratch mmap
// of the whole file. debug/elf is deliberately not used here: it copies
// section data out through an io.ReaderAt and normalizes addresses,
// which would hide the file-offset/loaded-address asymmetry this
// loader depends on between the string/symbol tables and the
// relocation tables.

const (
	ehdrSize = 64
	phdrSize = 56
	dynSize  = 16
	symSize  = 24
	relaSize = 24
)

var elfMagic = [4]byte{0x7f, 'E', 'L', 'F'}

type ehdr struct {
	ident     [16]byte
	typ       uint16
	machine   uint16
	version   uint32
	entry     uint64
	phoff     uint64
	shoff     uint64
	flags     uint32
	ehsize    uint16
	phentsize uint16
	phnum     uint16
	shentsize uint16
	shnum     uint16
	shstrndx  uint16
}

func decodeEhdr(b []byte) (ehdr, bool) {
	var h ehdr
	if len(b) < ehdrSize {
		return h, false
	}
	copy(h.ident[:], b[0:16])
	h.typ = binary.LittleEndian.Uint16(b[16:18])
	h.machine = binary.LittleEndian.Uint16(b[18:20])
	h.version = binary.LittleEndian.Uint32(b[20:24])
	h.entry = binary.LittleEndian.Uint64(b[24:32])
	h.phoff = binary.LittleEndian.Uint64(b[32:40])
	h.shoff = binary.LittleEndian.Uint64(b[40:48])
	h.flags = binary.LittleEndian.Uint32(b[48:52])
	h.ehsize = binary.LittleEndian.Uint16(b[52:54])
	h.phentsize = binary.LittleEndian.Uint16(b[54:56])
	h.phnum = binary.LittleEndian.Uint16(b[56:58])
	h.shentsize = binary.LittleEndian.Uint16(b[58:60])
	h.shnum = binary.LittleEndian.Uint16(b[60:62])
	h.shstrndx = binary.LittleEndian.Uint16(b[62:64])
	return h, true
}

func validMagic(ident [16]byte) bool {
	return ident[0] == elfMagic[0] && ident[1] == elfMagic[1] &&
		ident[2] == elfMagic[2] && ident[3] == elfMagic[3]
}

// Program header types and flags (the subset this loader inspects).
const (
	ptLoad    = 1
	ptDynamic = 2

	pfX = 0x1
	pfW = 0x2
	pfR = 0x4
)

type phdr struct {
	typ    uint32
	flags  uint32
	offset uint64
	vaddr  uint64
	paddr  uint64
	filesz uint64
	memsz  uint64
	align  uint64
}

func decodePhdr(b []byte) phdr {
	return phdr{
		typ:    binary.LittleEndian.Uint32(b[0:4]),
		flags:  binary.LittleEndian.Uint32(b[4:8]),
		offset: binary.LittleEndian.Uint64(b[8:16]),
		vaddr:  binary.LittleEndian.Uint64(b[16:24]),
		paddr:  binary.LittleEndian.Uint64(b[24:32]),
		filesz: binary.LittleEndian.Uint64(b[32:40]),
		memsz:  binary.LittleEndian.Uint64(b[40:48]),
		align:  binary.LittleEndian.Uint64(b[48:56]),
	}
}

// Dynamic section tags this loader resolves.
const (
	dtNull     = 0
	dtPltrelsz = 2
	dtRela     = 7
	dtRelasz   = 8
	dtStrtab   = 5
	dtSymtab   = 6
	dtRel      = 17
	dtRelsz    = 18
)

type dyn struct {
	tag int64
	val uint64
}

func decodeDyn(b []byte) dyn {
	return dyn{
		tag: int64(binary.LittleEndian.Uint64(b[0:8])),
		val: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// findDyn scans a dynamic section for the first non-DT_NULL entry
// matching tag, mirroring resolve_elf_dyn's linear scan.
func findDyn(section []byte, tag int64) (dyn, bool) {
	for off := 0; off+dynSize <= len(section); off += dynSize {
		d := decodeDyn(section[off : off+dynSize])
		if d.tag != dtNull && d.tag == tag {
			return d, true
		}
	}
	return dyn{}, false
}

// findPhdr scans the program header table for the first entry of the
// given type, mirroring resolve_elf_phdr's linear scan.
func findPhdr(phdrs []phdr, typ uint32) (phdr, bool) {
	for _, p := range phdrs {
		if p.typ == typ {
			return p, true
		}
	}
	return phdr{}, false
}

type sym struct {
	name  uint32
	info  uint8
	other uint8
	shndx uint16
	value uint64
	size  uint64
}

func decodeSym(b []byte) sym {
	return sym{
		name:  binary.LittleEndian.Uint32(b[0:4]),
		info:  b[4],
		other: b[5],
		shndx: binary.LittleEndian.Uint16(b[6:8]),
		value: binary.LittleEndian.Uint64(b[8:16]),
		size:  binary.LittleEndian.Uint64(b[16:24]),
	}
}

type rela struct {
	offset uint64
	info   uint64
	addend int64
}

func decodeRela(b []byte) rela {
	return rela{
		offset: binary.LittleEndian.Uint64(b[0:8]),
		info:   binary.LittleEndian.Uint64(b[8:16]),
		addend: int64(binary.LittleEndian.Uint64(b[16:24])),
	}
}

func relaSymbol(r rela) uint32 { return uint32(r.info >> 32) }
func relaType(r rela) uint32   { return uint32(r.info) }

// Relocation types this loader applies (R_X86_64_*).
const (
	rX8664Relative = 8
	rX8664Copy     = 5
	rX8664GlobDat  = 6
	rX8664JumpSlot = 7
)
