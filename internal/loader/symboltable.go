package loader

/*
#include <stdio.h>
*/
import "C"

import (
	"strings"
	"unsafe"
)

// binding is one fixed local symbol resolution, grounded on the
// teacher's stub Registry.StubDef: a name plus the pointer a
// relocation referencing that name should receive.
type binding struct {
	name string
	ptr  func() unsafe.Pointer
}

// symbolTable is an ordered, fixed-size local symbol table. resolve
// performs a prefix match bounded by the *stored* binding's name
// length, not the lookup name's — so a binding named "stdin" matches
// a relocation symbol "stdinfoo" too. This is the original's
// strncmp(symbols[i].symbol, symbol, strlen(symbols[i].symbol))
// behavior, preserved rather than corrected.
type symbolTable struct {
	bindings []binding
}

// newSymbolTable builds the four fixed bindings the original's static
// symbols[] array carries, in the same declaration order (order
// matters: resolve returns the first match, so a later, more specific
// binding can never shadow an earlier, shorter prefix).
func newSymbolTable(extra ...binding) *symbolTable {
	t := &symbolTable{bindings: []binding{
		{name: "stdin", ptr: func() unsafe.Pointer { return unsafe.Pointer(C.stdin) }},
		{name: "stdout", ptr: func() unsafe.Pointer { return unsafe.Pointer(C.stdout) }},
		{name: "stderr", ptr: func() unsafe.Pointer { return unsafe.Pointer(C.stderr) }},
		{name: "__libc_start_main", ptr: func() unsafe.Pointer { return libcStartMainPtr() }},
	}}
	t.bindings = append(t.bindings, extra...)
	return t
}

func (t *symbolTable) resolve(name string) unsafe.Pointer {
	for _, b := range t.bindings {
		if len(name) >= len(b.name) && strings.HasPrefix(name, b.name) {
			return b.ptr()
		}
	}
	return nil
}

// argvRelay is the process-lifetime singleton carrying the guest's
// substituted argc/argv. It is written once, before any segment is
// mapped, and read once, from inside the __libc_start_main shim;
// program order is the only synchronization this needs, since there
// is exactly one load per process.
type argvRelay struct {
	argc int
	argv []string
}

var globalArgvRelay argvRelay

func setArgvRelay(argv []string) {
	globalArgvRelay = argvRelay{argc: len(argv), argv: argv}
}
