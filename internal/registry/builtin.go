package registry

import (
	"embed"
	"io/fs"
)

// BuiltinName prefixes the IDs of bundled presets.
const BuiltinName = "builtin"

//go:embed presets
var bundled embed.FS

// Builtin returns a lookup over the presets shipped with lintcfg.
func Builtin() *FS {
	sub, err := fs.Sub(bundled, "presets")
	if err != nil {
		panic(err)
	}
	return NewFS(BuiltinName, sub)
}
