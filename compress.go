// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package lzokay

// Compress compresses src with LZO1X ("lzokay" dialect) using a freshly
// acquired, pooled Dict. opts may be nil.
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}
	_ = opts // reserved for future tuning knobs; the core has none today

	dict := AcquireDict()
	defer ReleaseDict(dict)

	dst := make([]byte, CompressWorstSize(len(src)))
	n, err := CompressNoAlloc(src, dst, dict)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// CompressWorstSize returns the largest number of bytes Compress could
// ever need to represent n bytes of input.
func CompressWorstSize(n int) int {
	return n + n/16 + 64 + 3
}

// CompressNoAlloc compresses src into dst using dict, without any
// allocation of its own. dst should be at least CompressWorstSize(len(src))
// bytes. dict is re-initialized on entry, so it may be freshly constructed
// or reused from a prior call (including one over different input) with
// identical output either way, per spec.md §8 property 3.
func CompressNoAlloc(src, dst []byte, dict *Dict) (int, error) {
	var st state
	dict.init(&st, src)

	outPos := 0
	litLen := 0
	var bestOff [bestTableSize]int
	literalStart := st.inPos

	lbOff, lbLen := dict.advance(&st, 0, &bestOff, false)

	for st.bufSize > 0 {
		if litLen == 0 {
			literalStart = st.bufPos
		}

		// Filter out candidates that are valid matches algorithmically but
		// cannot be emitted with legal LZO opcodes in this stream context.
		switch {
		case lbLen < 2,
			lbLen == 2 && (lbOff > maxOffsetM1 || litLen == 0 || litLen >= 4),
			lbLen == 2 && outPos == 0,
			outPos == 0 && litLen == 0:
			lbLen = 0
		case lbLen == minLenM2 && lbOff > maxOffsetMX && litLen >= 4:
			lbLen = 0
		}

		if lbLen == 0 {
			litLen++
			lbOff, lbLen = dict.advance(&st, 0, &bestOff, false)
			continue
		}

		findBetterMatch(&bestOff, &lbLen, &lbOff)

		if lbLen < 2 || lbOff < 1 || lbOff > maxDist {
			// The discard-predicate switch above and findBetterMatch together
			// must never let an illegal (length, offset) pair reach the opcode
			// emitter; this is a backstop, not a reachable path.
			return 0, errInternal
		}

		if err := encodeLiteralRun(dst, &outPos, src, literalStart, litLen); err != nil {
			return 0, err
		}
		if err := encodeMatch(dst, &outPos, lbLen, lbOff, litLen); err != nil {
			return 0, err
		}

		prevLen := lbLen
		litLen = 0
		lbOff, lbLen = dict.advance(&st, prevLen, &bestOff, true)
	}

	if err := encodeLiteralRun(dst, &outPos, src, literalStart, litLen); err != nil {
		return 0, err
	}

	// Terminator: M4 opcode with zero distance field.
	if err := writeByte(dst, &outPos, markerM4|1); err != nil {
		return 0, err
	}
	if err := writeByte(dst, &outPos, 0); err != nil {
		return 0, err
	}
	if err := writeByte(dst, &outPos, 0); err != nil {
		return 0, err
	}

	return outPos, nil
}
