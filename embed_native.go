//go:build !js || !wasm

package main

import "io/fs"

// Native builds read configs and tilesets from disk; only the default
// config is compiled in.
func GetEmbeddedFS() fs.FS {
	return nil
}

func IsEmbedded() bool {
	return false
}
