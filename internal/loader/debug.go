//go:build debug

package loader

import "fmt"

// debugf mirrors the original's #ifdef DEBUG / dbglog: every line is
// prefixed "debug: " and printed unconditionally to stdout. Built only
// under the "debug" build tag (go build -tags debug); the default
// build compiles release.go's no-op twin instead.
func debugf(format string, args ...any) {
	fmt.Printf("debug: "+format, args...)
}
