// Package fuzztests houses Go fuzz harnesses for the inputs cargo-marker and
// the driver read from outside: the workspace manifest, the driver handshake
// and the lint level list passed through the environment. The harnesses only
// guard against panics and runaway allocations; they never assert on content.
package fuzztests
