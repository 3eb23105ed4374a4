// Package web carries the embedded static assets for the explorer UI.
package web

import "embed"

//go:embed static
var StaticFS embed.FS
