package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseImageNotFound(t *testing.T) {
	_, err := parseImage(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseImageBadMagic(t *testing.T) {
	path := writeFixture(t, make([]byte, ehdrSize))
	_, err := parseImage(path)
	if err != ErrBadMagic {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestParseImageNoPhdr(t *testing.T) {
	b := make([]byte, ehdrSize)
	writeEhdr(b, ehdr{}) // e_phoff left 0
	path := writeFixture(t, b)

	_, err := parseImage(path)
	if err != ErrNoPhdr {
		t.Fatalf("expected ErrNoPhdr, got %v", err)
	}
}

func TestParseImageNoDynamic(t *testing.T) {
	h := ehdr{phoff: ehdrSize, phnum: 1}
	b := make([]byte, ehdrSize+phdrSize)
	writeEhdr(b, h)
	writePhdr(b[ehdrSize:], phdr{typ: ptLoad})
	path := writeFixture(t, b)

	_, err := parseImage(path)
	if err != ErrNoDynamic {
		t.Fatalf("expected ErrNoDynamic, got %v", err)
	}
}

func TestParseImageHappyPath(t *testing.T) {
	// Layout: ehdr | phdr(PT_DYNAMIC) | dyn entries | strtab | symtab
	const (
		phdrOff = ehdrSize
		dynOff  = phdrOff + phdrSize
		dynCount = 4
		strOff  = dynOff + dynCount*dynSize
		strData = "\x00__libc_start_main\x00"
		symOff  = strOff + len(strData)
	)

	h := ehdr{phoff: phdrOff, phnum: 1, entry: 0x400}
	total := symOff + symSize
	b := make([]byte, total)
	writeEhdr(b, h)
	writePhdr(b[phdrOff:], phdr{typ: ptDynamic, offset: dynOff, memsz: dynCount * dynSize})

	d := b[dynOff:]
	writeDynAt(d, 0, dtStrtab, strOff)
	writeDynAt(d, 1, dtSymtab, symOff)
	writeDynAt(d, 2, dtRela, 0x2000)
	writeDynAt(d, 3, dtNull, 0)

	copy(b[strOff:], strData)
	writeSymAt(b[symOff:], sym{name: 1, value: 0x400})

	path := writeFixture(t, b)
	img, err := parseImage(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer img.close()

	if img.relocBase != 0x2000+baseAddr {
		t.Fatalf("expected relocBase 0x2000+baseAddr, got 0x%x", img.relocBase)
	}
	if name := img.symbolName(0); name != "__libc_start_main" {
		t.Fatalf("expected symbol name __libc_start_main, got %q", name)
	}
}

func writeFixture(t *testing.T, b []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.elf")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeEhdr(b []byte, h ehdr) {
	copy(b[0:16], elfMagic[:])
	putU64At(b, 24, h.entry)
	putU64At(b, 32, h.phoff)
	putU16At(b, 56, h.phnum)
}

func writePhdr(b []byte, p phdr) {
	putU32At(b, 0, p.typ)
	putU32At(b, 4, p.flags)
	putU64At(b, 8, p.offset)
	putU64At(b, 16, p.vaddr)
	putU64At(b, 32, p.filesz)
	putU64At(b, 40, p.memsz)
}

func writeDynAt(b []byte, idx int, tag int64, val uint64) {
	off := idx * dynSize
	putU64At(b, off, uint64(tag))
	putU64At(b, off+8, val)
}

func writeSymAt(b []byte, s sym) {
	putU32At(b, 0, s.name)
	putU64At(b, 8, s.value)
}

func putU64At(b []byte, off int, v uint64) {
	for i := 0; i < 8; i++ {
		b[off+i] = byte(v >> (8 * i))
	}
}

func putU32At(b []byte, off int, v uint32) {
	for i := 0; i < 4; i++ {
		b[off+i] = byte(v >> (8 * i))
	}
}

func putU16At(b []byte, off int, v uint16) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
}
