// Package mainboilerplate contains shared boilerplate for this project's
// programs: logging, diagnostics, and configuration parsing. The idea is to
// provide a selection of narrowly scoped functions so callers do not have to
// buy-in to an all-or-nothing approach.
package mainboilerplate

// Version and BuildDate are populated at link time, via
// `-ldflags "-X go.bsuitor.dev/core/mainboilerplate.Version=..."`.
var (
	Version   = "development"
	BuildDate = "unknown"
)
