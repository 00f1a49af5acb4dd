package loader

import (
	"os"

	"golang.org/x/sys/unix"
)

// parseImage opens pathname, scratch-maps the whole file, and
// extracts the handful of header/dynamic-section views the rest of
// the loader needs. The scratch mapping is never unmapped: it stays
// resident for the lifetime of the process, the same way the original
// never calls munmap on it. free_elf only ever closes the fd.
func parseImage(pathname string) (*parsedImage, error) {
	if _, err := os.Stat(pathname); err != nil {
		return nil, ErrNotFound
	}

	fd, err := unix.Open(pathname, unix.O_RDONLY, 0)
	if err != nil {
		return nil, ErrNotFound
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		unix.Close(fd)
		return nil, ErrIO
	}
	size := st.Size
	if size == 0 {
		unix.Close(fd)
		return nil, ErrIO
	}

	image, err := unix.Mmap(fd, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC, unix.MAP_PRIVATE)
	if err != nil {
		unix.Close(fd)
		return nil, ErrIO
	}

	img := &parsedImage{fd: fd, size: size, image: image}

	h, ok := decodeEhdr(image)
	if !ok || !validMagic(h.ident) {
		unix.Close(fd)
		return nil, ErrBadMagic
	}
	img.hdr = h

	if h.phoff == 0 {
		unix.Close(fd)
		return nil, ErrNoPhdr
	}

	phoff := h.phoff
	phdrs := make([]phdr, 0, h.phnum)
	for i := uint16(0); i < h.phnum; i++ {
		off := phoff + uint64(i)*phdrSize
		if off+phdrSize > uint64(len(image)) {
			break
		}
		phdrs = append(phdrs, decodePhdr(image[off:off+phdrSize]))
	}
	img.phdrs = phdrs

	dynPhdr, ok := findPhdr(phdrs, ptDynamic)
	if !ok {
		unix.Close(fd)
		return nil, ErrNoDynamic
	}
	dynStart := dynPhdr.offset
	dynEnd := dynStart + dynPhdr.memsz
	if dynEnd > uint64(len(image)) {
		unix.Close(fd)
		return nil, ErrNoDynamic
	}
	img.dynamic = image[dynStart:dynEnd]

	strtabDyn, ok1 := findDyn(img.dynamic, dtStrtab)
	symtabDyn, ok2 := findDyn(img.dynamic, dtSymtab)
	if !ok1 || !ok2 {
		unix.Close(fd)
		return nil, ErrNoStrtabSymtab
	}
	if strtabDyn.val >= uint64(len(image)) || symtabDyn.val >= uint64(len(image)) {
		unix.Close(fd)
		return nil, ErrNoStrtabSymtab
	}
	img.strtab = image[strtabDyn.val:]
	img.symtab = image[symtabDyn.val:]

	relDyn, ok := findDyn(img.dynamic, dtRel)
	if !ok {
		if relDyn, ok = findDyn(img.dynamic, dtRela); !ok {
			unix.Close(fd)
			return nil, ErrNoRelocs
		}
	}
	img.relocBase = relDyn.val + baseAddr

	return img, nil
}

// close releases the file descriptor only. The scratch mapping is a
// deliberate, permanent leak — see parsedImage.
func (img *parsedImage) close() {
	unix.Close(img.fd)
}

func (img *parsedImage) loadPhdrs() []phdr {
	var out []phdr
	for _, p := range img.phdrs {
		if p.typ == ptLoad {
			out = append(out, p)
		}
	}
	return out
}

func (img *parsedImage) symbolName(index uint32) string {
	off := uint64(index) * symSize
	if off+symSize > uint64(len(img.symtab)) {
		return ""
	}
	s := decodeSym(img.symtab[off : off+symSize])
	return cstr(img.strtab, s.name)
}

func cstr(strtab []byte, off uint32) string {
	if uint64(off) >= uint64(len(strtab)) {
		return ""
	}
	end := off
	for int(end) < len(strtab) && strtab[end] != 0 {
		end++
	}
	return string(strtab[off:end])
}
