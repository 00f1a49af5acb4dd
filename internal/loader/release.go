//go:build !debug

package loader

func debugf(format string, args ...any) {}
