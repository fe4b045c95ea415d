// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzokay

import "errors"

// Sentinel errors returned by the core codec and the convenience API.
//
// The core taxonomy (ErrLookBehindOverrun, ErrOutputOverrun, ErrInputOverrun,
// ErrInputNotConsumed, ErrMalformedStream) mirrors the wire-format error
// classes of the LZO1X "lzokay" dialect; callers should match them with
// errors.Is. The remaining sentinels are ambient API conveniences (empty
// input, missing options, oversized reader input) with no bearing on the
// bitstream itself.
var (
	// ErrLookBehindOverrun is returned when a decoded back-reference points
	// before the start of the output written so far (outp < dist).
	ErrLookBehindOverrun = errors.New("lzokay: lookbehind overrun")
	// ErrOutputOverrun is returned when the encoder or decoder would write
	// past the end of dst, including a literal-preamble back-patch into
	// dst[out_pos-2] that underflows.
	ErrOutputOverrun = errors.New("lzokay: output overrun")
	// ErrInputOverrun is returned when the encoder or decoder would read
	// past the end of src, or the input ends before the terminator.
	ErrInputOverrun = errors.New("lzokay: input overrun")
	// ErrInputNotConsumed is returned when the decoder reaches the
	// terminator opcode but bytes remain unread in src.
	ErrInputNotConsumed = errors.New("lzokay: input not fully consumed")
	// ErrMalformedStream is returned for invariant failures that are not one
	// of the more specific classes above: the terminator was reached with a
	// match length other than 3, or a zero-run length extension exceeded
	// the overflow guard.
	ErrMalformedStream = errors.New("lzokay: malformed stream")

	// ErrEmptyInput is returned when the input slice or stream is empty.
	ErrEmptyInput = errors.New("lzokay: empty input")
	// ErrOptionsRequired is returned when Decompress is called with nil
	// options (OutLen is required).
	ErrOptionsRequired = errors.New("lzokay: options required: OutLen must be set")
	// ErrInputTooLarge is returned when DecompressFromReader reads more than
	// MaxInputSize bytes.
	ErrInputTooLarge = errors.New("lzokay: input exceeds MaxInputSize")

	// errInternal marks an invariant violation inside the match finder or
	// opcode emitter that should be unreachable given well-formed dictionary
	// and state. It never escapes a correct caller's control flow; it exists
	// as a defensive backstop, not a documented part of the wire-format
	// error taxonomy above.
	errInternal = errors.New("lzokay: internal compressor invariant violated")
)
