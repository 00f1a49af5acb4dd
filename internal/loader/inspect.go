package loader

// Summary is a read-only view of a parsed image, used by the CLI's
// --info mode. Producing one never maps a segment, resolves a
// relocation, or transfers control — it is pure inspection.
type Summary struct {
	Entry         uint64
	LoadSegments  int
	DynSymCount   int
	SampleSymbols []string
}

// Inspect parses pathname and reports its header/segment/symbol shape
// without installing any mapping. This is additive CLI surface; it
// shares parseImage with the real Load path but stops well short of
// mapSegments/relocate.
func Inspect(pathname string) (Summary, error) {
	img, err := parseImage(pathname)
	if err != nil {
		return Summary{}, err
	}
	defer img.close()

	s := Summary{
		Entry:        img.hdr.entry,
		LoadSegments: len(img.loadPhdrs()),
	}

	// Without section headers there is no authoritative symbol count;
	// DT_SYMTAB gives only a starting offset. This walks entries until
	// the scratch image runs out, which over-counts on many binaries
	// (trailing sections get read as garbage symbols) but is good
	// enough for an advisory inspection summary.
	const maxSymbols = 8
	for i := uint32(0); uint64(i+1)*symSize <= uint64(len(img.symtab)); i++ {
		name := img.symbolName(i)
		if name == "" {
			continue
		}
		s.DynSymCount++
		if len(s.SampleSymbols) < maxSymbols {
			s.SampleSymbols = append(s.SampleSymbols, name)
		}
	}

	return s, nil
}
