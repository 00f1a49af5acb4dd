package loader

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

// resolveHostSymbol falls back to the host's own dynamic linker
// default scope (RTLD_DEFAULT) for any name the local symbolTable
// doesn't claim, the same fallback the original reaches for via
// dlsym(RTLD_DEFAULT, symbol).
func resolveHostSymbol(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.dlsym(C.RTLD_DEFAULT, cname)
}

// ResolveHost exposes the same RTLD_DEFAULT fallback lookup the
// relocator falls back to, for callers (config-supplied extra
// bindings) that want to pin a name to the host's own symbol rather
// than supply a literal address.
func ResolveHost(name string) uintptr {
	return uintptr(resolveHostSymbol(name))
}
