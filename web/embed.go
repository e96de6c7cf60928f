// Package web carries the static chat widget compiled into the binary.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
