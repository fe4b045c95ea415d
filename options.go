// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzokay

// DecompressOptions configures decompression.
// OutLen is required (expected decompressed size); MaxInputSize limits reads when using DecompressFromReader.
type DecompressOptions struct {
	// OutLen is the expected decompressed size (required for buffer allocation and safety).
	OutLen int
	// MaxInputSize limits how many bytes DecompressFromReader may read (0 = no limit).
	MaxInputSize int
}

// DefaultDecompressOptions returns options with the given output length and no input limit.
func DefaultDecompressOptions(outLen int) *DecompressOptions {
	return &DecompressOptions{OutLen: outLen}
}

// CompressOptions configures compression. The lzokay dialect defines exactly
// one match-finding algorithm (spec.md §4), so there is no level knob; the
// struct exists for API parity with callers that want an options pointer
// they can pass as nil, and as a home for any future tuning knob.
type CompressOptions struct{}

// DefaultCompressOptions returns the (currently empty) default options.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{}
}
