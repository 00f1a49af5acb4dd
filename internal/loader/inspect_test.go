package loader

import "testing"

func TestInspectNotFound(t *testing.T) {
	_, err := Inspect("/no/such/path")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInspectReportsEntryAndSegments(t *testing.T) {
	const (
		phdrOff  = ehdrSize
		load1Off = phdrOff + phdrSize
		dynOff   = load1Off + phdrSize
		dynCount = 3
		strOff   = dynOff + dynCount*dynSize
		strData  = "\x00puts\x00"
		symOff   = strOff + len(strData)
	)

	h := ehdr{phoff: phdrOff, phnum: 2, entry: 0x1234}
	total := symOff + symSize*2
	b := make([]byte, total)
	writeEhdr(b, h)
	writePhdr(b[phdrOff:], phdr{typ: ptLoad, vaddr: 0})
	writePhdr(b[load1Off:], phdr{typ: ptDynamic, offset: dynOff, memsz: dynCount * dynSize})

	d := b[dynOff:]
	writeDynAt(d, 0, dtStrtab, strOff)
	writeDynAt(d, 1, dtSymtab, symOff)
	writeDynAt(d, 2, dtRel, 0x3000)

	copy(b[strOff:], strData)
	writeSymAt(b[symOff:], sym{name: 0})
	writeSymAt(b[symOff+symSize:], sym{name: 1, value: 0x10})

	path := writeFixture(t, b)
	summary, err := Inspect(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Entry != 0x1234 {
		t.Fatalf("expected entry 0x1234, got 0x%x", summary.Entry)
	}
	if summary.LoadSegments != 1 {
		t.Fatalf("expected exactly one PT_LOAD segment counted, got %d", summary.LoadSegments)
	}
}
