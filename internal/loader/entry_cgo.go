package loader

/*
typedef void (*void_entry_fn)(void);

static void eldr_jump(void *addr) {
	((void_entry_fn)addr)();
}
*/
import "C"

import "unsafe"

// jumpToEntry transfers control to the guest's entry point as a
// niladic function and never returns: the guest either calls exit
// itself (through the shimmed __libc_start_main) or runs off the end
// of mapped memory.
func jumpToEntry(addr uintptr) {
	C.eldr_jump(unsafe.Pointer(addr))
}
