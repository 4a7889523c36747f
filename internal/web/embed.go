package web

import "embed"

// StaticFS holds the embedded upload UI assets.
//
//go:embed static
var StaticFS embed.FS
