package loader

import (
	"golang.org/x/sys/unix"
)

const pageMask = 0xfff

// mapSegment MAP_FIXED-maps one PT_LOAD segment's file backing at its
// biased virtual address. Protections are taken from p_flags and set
// once, at map time; nothing re-protects the mapping afterward, so
// relocations later write into segments that may not carry PROT_WRITE
// (see relocator.go).
//
// The mapped length is (p_filesz + address) & ~0xfff, not
// p_filesz rounded to a page and then added to the page offset: this
// mirrors the original's arithmetic exactly, including its tendency to
// under/over-map by a page depending on how address's low bits land.
// The BSS tail beyond p_filesz within the segment is whatever the
// backing file's bytes happen to be; it is never separately zeroed.
func mapSegment(fd int, p phdr) (uintptr, error) {
	address := uintptr(p.vaddr + baseAddr)

	var prot int
	if p.flags&pfX != 0 {
		prot |= unix.PROT_EXEC
	}
	if p.flags&pfW != 0 {
		prot |= unix.PROT_WRITE
	}
	if p.flags&pfR != 0 {
		prot |= unix.PROT_READ
	}

	base := address &^ pageMask
	length := (p.filesz + uint64(address)) &^ pageMask
	fileOffset := int64(p.offset) - int64(address&pageMask)

	got, err := mmapFixed(uintptr(base), uintptr(length), prot, fd, fileOffset)
	if err != nil || got != uintptr(base) {
		return 0, ErrSegmentMapFailed
	}
	return base, nil
}

// mmapFixed issues the MAP_FIXED|MAP_PRIVATE mmap syscall directly:
// x/sys/unix.Mmap always lets the kernel choose the address and
// returns a []byte header, which can't express "map exactly here,
// clobbering whatever was already mapped at that address" the way
// PT_LOAD segment placement requires.
func mmapFixed(addr, length uintptr, prot, fd int, offset int64) (uintptr, error) {
	ret, _, errno := unix.Syscall6(unix.SYS_MMAP, addr, length,
		uintptr(prot), uintptr(unix.MAP_PRIVATE|unix.MAP_FIXED),
		uintptr(fd), uintptr(offset))
	if errno != 0 {
		return 0, errno
	}
	return ret, nil
}

// mapSegments walks every PT_LOAD entry and maps it in program-header
// order. The first failure aborts the whole load; segments already
// mapped are left in place (the original never unwinds them either).
func mapSegments(img *parsedImage, onMapped func(addr uintptr)) error {
	for _, p := range img.loadPhdrs() {
		addr, err := mapSegment(img.fd, p)
		if err != nil {
			return err
		}
		logger.Segment(addr)
		if onMapped != nil {
			onMapped(addr)
		}
	}
	return nil
}
