package loader

/*
#include <stdlib.h>

typedef int (*entry_fn)(int, char **, char **);

extern int eldr_invoke_entry(entry_fn entry, int argc, char **argv);
*/
import "C"

// eldrLibcStartMain is the guest-callable replacement for
// __libc_start_main. It is exported so the relocator can write its
// real C-ABI address straight into a relocation slot, the same way
// the original's static __libc_start_main_impl is visible enough to
// live in the local symbol table. The guest's own argc/argv are
// discarded in favor of the process-lifetime argvRelay, and the
// guest's return value is passed to exit rather than returned — the
// shim never returns to its caller.
//
//export eldrLibcStartMain
func eldrLibcStartMain(entry C.entry_fn, argc C.int, argv **C.char) C.int {
	cArgv, n := buildCArgv(globalArgvRelay.argv)
	defer freeCArgv(cArgv, n)

	ret := C.eldr_invoke_entry(entry, C.int(n), cArgv)
	C.exit(ret)
	return 0 // unreached
}
