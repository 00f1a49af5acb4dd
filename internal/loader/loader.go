package loader

import (
	"unsafe"

	"github.com/qpqpin/eldr/internal/elflog"
)

// logger is the structured side channel alongside the fixed
// plain-text debugf lines. It defaults to a no-op so Load never
// depends on a caller remembering to configure one; SetLogger installs
// a real *elflog.Logger, the way cmd/eldr wires in elflog.L.
var logger = elflog.NewNop()

// SetLogger installs l as the package-wide structured logger. A nil l
// is ignored, leaving the current logger (nop by default) in place.
func SetLogger(l *elflog.Logger) {
	if l != nil {
		logger = l
	}
}

// ExtraBinding is an additional, configuration-supplied local symbol
// binding layered on top of the four fixed ones. It is resolved to a
// live pointer lazily, at Load time, since the bound address may
// depend on state that doesn't exist until the process is running.
type ExtraBinding struct {
	Name string
	Ptr  func() uintptr
}

// Options configures one Load call. The zero value reproduces the
// original's fixed behavior exactly: base address 0x10000000 and no
// symbols beyond the four built-in bindings.
type Options struct {
	Extra []ExtraBinding
}

// Load parses, maps, relocates, and transfers control to pathname.
// argv becomes the guest's argc/argv (via the process-lifetime
// argvRelay); argv[0] is conventionally the guest's own path, matching
// main.c's cmdline_argv = argv+1 shift one level up in the call chain.
//
// Load never returns on success: control passes to the guest's entry
// point and from there, eventually, to the shimmed
// __libc_start_main -> exit. It only returns when the load itself
// fails before the jump — in which case the caller sees exactly one
// of the sentinel errors in this package, the same silent-abort shape
// the original's NULL-returning parse_elf/elf_map_segment chain has.
func Load(pathname string, argv []string, opts Options) error {
	img, err := parseImage(pathname)
	if err != nil {
		return err
	}

	setArgvRelay(argv)

	if err := mapSegments(img, func(addr uintptr) {
		debugf("Mapped PT_LOAD segment @ [%p]\n", unsafe.Pointer(addr))
	}); err != nil {
		img.close()
		return err
	}

	// DT_PLTRELSZ is resolved for parity with the original's
	// elf_manual_map, which looks it up and then never uses it: both
	// relocation passes below run against DT_RELSZ/DT_RELASZ's size.
	_, _ = findDyn(img.dynamic, dtPltrelsz)

	relszDyn, ok := findDyn(img.dynamic, dtRelsz)
	if !ok {
		if relszDyn, ok = findDyn(img.dynamic, dtRelasz); !ok {
			img.close()
			return ErrNoRelocs
		}
	}

	bindings := make([]binding, 0, len(opts.Extra))
	for _, e := range opts.Extra {
		e := e
		bindings = append(bindings, binding{name: e.Name, ptr: func() unsafe.Pointer { return unsafe.Pointer(e.Ptr()) }})
	}
	tbl := newSymbolTable(bindings...)

	relocate(img, tbl, relszDyn.val)

	entry := uintptr(img.hdr.entry + baseAddr)
	debugf("Executing ELF entry point @ [0x%x]\n\n", entry)
	logger.Entry(entry)

	img.close()
	jumpToEntry(entry)
	return nil // unreached on a well-formed guest
}
