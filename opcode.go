// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package lzokay

// Opcode emitter: pure functions mapping (literal-run, match) pairs to
// LZO1X opcode bytes, per spec.md §4.4. The literal preamble rule couples
// the literal emitter to the previously emitted match opcode (the
// lit_len<=3 case back-patches state bits into dst[out_pos-2]), so these
// two emitters are not independent of call order.

// encodeLiteralRun writes the literal-run preamble for litLen bytes
// starting at literalStart, then copies the run itself.
func encodeLiteralRun(out []byte, outPos *int, in []byte, literalStart, litLen int) error {
	if litLen == 0 {
		return nil
	}

	switch {
	case *outPos == 0 && litLen <= 238:
		if err := writeByte(out, outPos, opcodeByte(17+litLen)); err != nil {
			return err
		}

	case litLen <= 3:
		// Back-patch the 2-bit run length into the previous match opcode's
		// state bits. Illegal at stream start or directly after a literal
		// opcode; the encoder driver's discard predicates guarantee this
		// case is only reached when a preceding match opcode exists.
		if *outPos < 2 {
			return ErrOutputOverrun
		}
		out[*outPos-2] |= opcodeByte(litLen)

	case litLen <= 18:
		if err := writeByte(out, outPos, opcodeByte(litLen-3)); err != nil {
			return err
		}

	default:
		if err := writeByte(out, outPos, 0); err != nil {
			return err
		}
		if err := writeZeroRun(out, outPos, litLen-18); err != nil {
			return err
		}
	}

	if literalStart+litLen > len(in) {
		return ErrInputOverrun
	}
	return writeSlice(out, outPos, in[literalStart:literalStart+litLen])
}

// encodeMatch writes one back-reference opcode for a match of length
// lbLen at backward distance lbOff, given the length of the literal run
// that immediately preceded it (lastLitLen, needed for the M1-extension
// case), per spec.md §4.4's five cases in order.
func encodeMatch(out []byte, outPos *int, lbLen, lbOff, lastLitLen int) error {
	switch {
	case lbLen == 2:
		off := lbOff - 1
		if err := writeByte(out, outPos, opcodeByte(markerM1|((off&3)<<2))); err != nil {
			return err
		}
		return writeByte(out, outPos, opcodeByte(off>>2))

	case lbLen <= maxLenM2 && lbOff <= maxOffsetM2:
		off := lbOff - 1
		if err := writeByte(out, outPos, opcodeByte(((lbLen-1)<<5)|((off&7)<<2))); err != nil {
			return err
		}
		return writeByte(out, outPos, opcodeByte(off>>3))

	case lbLen == minLenM2 && lbOff <= maxOffsetMX && lastLitLen >= 4:
		off := lbOff - 1 - maxOffsetM2
		if err := writeByte(out, outPos, opcodeByte(markerM1|((off&3)<<2))); err != nil {
			return err
		}
		return writeByte(out, outPos, opcodeByte(off>>2))

	case lbOff <= maxOffsetM3:
		off := lbOff - 1
		if lbLen <= maxLenM3 {
			if err := writeByte(out, outPos, opcodeByte(markerM3|(lbLen-2))); err != nil {
				return err
			}
		} else {
			if err := writeByte(out, outPos, opcodeByte(markerM3)); err != nil {
				return err
			}
			if err := writeZeroRun(out, outPos, lbLen-maxLenM3); err != nil {
				return err
			}
		}
		if err := writeByte(out, outPos, opcodeByte((off&0x3f)<<2)); err != nil {
			return err
		}
		return writeByte(out, outPos, opcodeByte(off>>6))

	default: // M4
		off := lbOff - 0x4000
		head := (off & 0x4000) >> 11
		if lbLen <= maxLenM4 {
			if err := writeByte(out, outPos, opcodeByte(markerM4|head|(lbLen-2))); err != nil {
				return err
			}
		} else {
			if err := writeByte(out, outPos, opcodeByte(markerM4|head)); err != nil {
				return err
			}
			if err := writeZeroRun(out, outPos, lbLen-maxLenM4); err != nil {
				return err
			}
		}
		if err := writeByte(out, outPos, opcodeByte((off&0x3f)<<2)); err != nil {
			return err
		}
		return writeByte(out, outPos, opcodeByte(off>>6))
	}
}

// writeZeroRun writes the zero-run length extension for a residual length
// r >= 1: a run of 0x00 bytes, one per 255 of r, followed by one tail byte
// equal to whatever remains. Note this is NOT "floor(r/255) zero bytes
// then r mod 255" — that phrasing produces a zero tail byte whenever r is
// an exact multiple of 255, which the decoder's zero-counting loop would
// then fold into the run instead of reading as the tail. Looping while
// r > 255 guarantees the final byte written is always in [1,255], which is
// what readZeroExtendedChunks on the decode side actually relies on.
func writeZeroRun(out []byte, outPos *int, r int) error {
	for r > 255 {
		if err := writeByte(out, outPos, 0); err != nil {
			return err
		}
		r -= 255
	}
	return writeByte(out, outPos, opcodeByte(r))
}

// writeByte appends one byte to out at *outPos.
func writeByte(out []byte, outPos *int, b byte) error {
	if *outPos >= len(out) {
		return ErrOutputOverrun
	}
	out[*outPos] = b
	*outPos++
	return nil
}

// writeSlice appends data to out at *outPos.
func writeSlice(out []byte, outPos *int, data []byte) error {
	if len(data) > len(out)-*outPos {
		return ErrOutputOverrun
	}
	copy(out[*outPos:*outPos+len(data)], data)
	*outPos += len(data)
	return nil
}

// findBetterMatch is the cheaper-opcode heuristic of spec.md §4.5: it may
// substitute a shorter, closer match for one the dictionary search
// preferred, when the substitution yields a cheaper opcode. The three
// branches and their bounds (including the best_off[lbLen] reference in
// the second branch, where the natural symmetry with the first and third
// branches would suggest best_off[lbLen-2]) are preserved verbatim from
// the reference; do not "correct" the asymmetry without a round-trip
// golden-vector suite to validate against; see DESIGN.md.
func findBetterMatch(bestOff *[bestTableSize]int, lbLen, lbOff *int) {
	if *lbLen <= minLenM2 || *lbOff <= maxOffsetM2 {
		return
	}

	if *lbOff > maxOffsetM2 && *lbLen >= minLenM2+1 && *lbLen <= maxLenM2+1 {
		shorter := *lbLen - 1
		if off := bestOffAt(bestOff, shorter); off != 0 && off <= maxOffsetM2 {
			*lbLen = shorter
			*lbOff = off
			return
		}
	}

	if *lbOff > maxOffsetM3 && *lbLen >= maxLenM4+1 && *lbLen <= maxLenM2+2 {
		shorter := *lbLen - 2
		shorterOff := bestOffAt(bestOff, shorter)
		currentOff := bestOffAt(bestOff, *lbLen)
		if shorterOff != 0 && currentOff <= maxOffsetM2 {
			*lbLen = shorter
			*lbOff = shorterOff
			return
		}
	}

	if *lbOff > maxOffsetM3 && *lbLen >= maxLenM4+1 && *lbLen <= maxLenM3+1 {
		shorter := *lbLen - 1
		shorterOff := bestOffAt(bestOff, shorter)
		shortestOff := bestOffAt(bestOff, *lbLen-2)
		if shorterOff != 0 && shortestOff <= maxOffsetM3 {
			*lbLen = shorter
			*lbOff = shorterOff
		}
	}
}

// bestOffAt returns bestOff[idx], or 0 when idx is out of range.
func bestOffAt(bestOff *[bestTableSize]int, idx int) int {
	if idx < 0 || idx >= len(bestOff) {
		return 0
	}
	return bestOff[idx]
}
