package loader

/*
#include <stdlib.h>

typedef int (*entry_fn)(int, char **, char **);

extern int eldrLibcStartMain(entry_fn entry, int argc, char **argv);

// eldr_invoke_entry and eldr_libc_start_main_addr are plain (non-static)
// helpers, not //export targets, so they live in a file cgo never feeds
// through _cgo_export.c: a static definition sharing a preamble with an
// //export directive reappears there and trips -Wunused-function.

int eldr_invoke_entry(entry_fn entry, int argc, char **argv) {
	return entry(argc, argv, NULL);
}

void *eldr_libc_start_main_addr(void) {
	return (void *)eldrLibcStartMain;
}
*/
import "C"

import "unsafe"

func libcStartMainPtr() unsafe.Pointer {
	return C.eldr_libc_start_main_addr()
}

func buildCArgv(argv []string) (**C.char, int) {
	n := len(argv)
	raw := C.malloc(C.size_t(n+1) * C.size_t(unsafe.Sizeof(uintptr(0))))
	slice := unsafe.Slice((**C.char)(raw), n+1)
	for i, a := range argv {
		slice[i] = C.CString(a)
	}
	slice[n] = nil
	return (**C.char)(raw), n
}

func freeCArgv(argv **C.char, n int) {
	slice := unsafe.Slice(argv, n)
	for _, p := range slice {
		C.free(unsafe.Pointer(p))
	}
	C.free(unsafe.Pointer(argv))
}
