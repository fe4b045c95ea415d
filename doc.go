// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

/*
Package lzokay implements the LZO1X "lzokay" dialect of compression and
decompression.

The format uses match types M1–M4 with different offset and length bounds;
the stream ends with a terminator (distance 0, length 3, encoded as an M4
opcode). Suitable for archives and binary formats that use LZO1X.

# Decompress

OutLen is required (use DecompressOptions). From a byte slice:

	out, err := lzokay.Decompress(compressed, lzokay.DefaultDecompressOptions(expectedLen))

To get the number of input bytes consumed (e.g. for back-to-back compressed blocks):

	out, nRead, err := lzokay.DecompressN(compressed, lzokay.DefaultDecompressOptions(expectedLen))
	// advance: compressed = compressed[nRead:]

From an io.Reader (e.g. stream with known decompressed size):

	out, err := lzokay.DecompressFromReader(r, lzokay.DefaultDecompressOptions(expectedLen))

# Compress

Options may be nil.

	out, err := lzokay.Compress(data, nil)

CompressNoAlloc and a pooled Dict (AcquireDict/ReleaseDict) are available for
callers that want to avoid allocating a fresh dictionary and worst-case
output buffer on every call.
*/
package lzokay
