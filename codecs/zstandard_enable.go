//go:build !nozstd

package codecs

import (
	"io"

	"github.com/DataDog/zstd"
)

// Zstandard input is decoded with the cgo DataDog/zstd bindings. Build with
// the `nozstd` tag to produce a pure-Go binary which refuses zstd inputs.
func init() {
	zstdNewReader = newZstdReader
	zstdNewWriter = newZstdWriter
}

func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	return zstd.NewReader(r), nil
}

func newZstdWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriterLevel(w, zstd.DefaultCompression), nil
}
