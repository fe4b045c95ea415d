// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package lzokay

import (
	"math/bits"
	"sync"
	"unsafe"
)

// match3Table is the hash-chained dictionary keyed by 3-byte prefixes.
// head holds the newest ring position for each bucket; chainSz is a
// saturating-on-read, wrapping-on-insert insertion counter ("empty iff
// zero"); chain is the per-position "older node" pointer; bestLen caches
// the best match length already established starting at a position, so a
// later search that walks through it can stop early instead of
// re-discovering the same bound.
type match3Table struct {
	head    [hashSize]uint16
	chainSz [hashSize]uint16
	chain   [bufSize]uint16
	slotKey [bufSize]uint16
	bestLen [bufSize]uint16
}

// match2Table is the flat direct table keyed by 2-byte prefixes.
type match2Table struct {
	head [1 << 16]uint16
}

// Dict holds all match-finding state for one encoder call: the ring
// buffer (with a mirrored tail so any 3 consecutive bytes starting at a
// valid window position can be read as a flat slice) and the two hash
// indexes described in spec.md §4.1. A Dict may be reused across calls
// (each CompressNoAlloc call re-initializes it); concurrent reuse requires
// external exclusion, and a freshly constructed Dict behaves identically
// to a reused, reset one.
type Dict struct {
	match3 match3Table
	match2 match2Table
	buffer [bufGuardSize]byte
}

// dictPool recycles Dict values across Compress/CompressNoAlloc calls so
// repeated small compressions amortize the ~0.5 MiB allocation.
var dictPool = sync.Pool{
	New: func() any { return new(Dict) },
}

// AcquireDict returns a Dict from the shared pool. Callers must call
// ReleaseDict when done; the Dict is reset on every CompressNoAlloc call,
// so callers never need to reset it themselves.
func AcquireDict() *Dict {
	return dictPool.Get().(*Dict)
}

// ReleaseDict returns dict to the shared pool.
func ReleaseDict(dict *Dict) {
	if dict == nil {
		return
	}
	dictPool.Put(dict)
}

// state tracks the sliding input window during one encoder call.
type state struct {
	src []byte

	inPos int // next unread source byte

	windSize int // valid lookahead length from windB
	windB    int // ring position currently being parsed
	windE    int // ring position where the next source byte is inserted

	cycleCountdown int // delays node eviction until the ring is fully primed

	bufPos  int // absolute source position mapped to windB
	bufSize int // parse positions still available this step
}

// init resets dict and primes state for a fresh encoder call over src.
func (d *Dict) init(st *state, src []byte) {
	clear(d.match3.chainSz[:])
	for i := range d.match2.head {
		d.match2.head[i] = emptyMatch2
	}

	st.src = src
	st.cycleCountdown = maxDist
	st.inPos = 0
	st.windSize = min(len(src), maxMatch)
	st.windB = 0
	st.windE = st.windSize

	if st.windSize > 0 {
		copy(d.buffer[:st.windSize], src[:st.windSize])
	}
	st.inPos += st.windSize

	// Well-defined 3-byte prefix hashing even for tiny inputs.
	if st.windSize < 3 {
		start := st.windB + st.windSize
		end := start + (3 - st.windSize)
		for i := start; i < end; i++ {
			d.buffer[i] = 0
		}
	}
}

// advance is Dict::advance from spec.md §4.3: it re-syncs the dictionary
// over skipped bytes (when skip is set), inserts the current window
// position, searches for the best match starting there, and returns
// (lbOff, lbLen). bestOff[2:34] is filled with the best known offset per
// match length, for the cheaper-opcode heuristic in opcode.go.
func (d *Dict) advance(st *state, prevLen int, bestOff *[bestTableSize]int, skip bool) (lbOff, lbLen int) {
	if skip && prevLen > 1 {
		for i := 0; i < prevLen-1; i++ {
			d.resetNextInputEntry(st)
			d.match3.skipAdvance(st, &d.buffer)
			d.match2.add(st.windB, &d.buffer)
			st.getByte(&d.buffer)
		}
	}

	lbLen = 1
	lbPos := 0
	var bestPos [bestTableSize]int

	head, count := d.match3.advance(st, &d.buffer)
	if head == nilNode {
		count = 0
	}

	terminate := false
	if lbLen >= st.windSize {
		if st.windSize == 0 {
			terminate = true
		}
		d.match3.bestLen[st.windB] = maxMatch + 1
	} else {
		if st.windSize >= 3 {
			d.match2.search(st, &lbPos, &lbLen, &bestPos, &d.buffer)

			node := int(head)
			scanPos := st.windB
			scanLimit := scanPos + st.windSize
			currentBest := lbLen
			probeByte := d.buffer[scanPos+currentBest-1]

			for i := 0; i < count; i++ {
				if node < 0 || node >= bufSize || node == nilNode {
					break
				}
				if currentBest >= st.windSize {
					break
				}

				if d.buffer[node+currentBest-1] != probeByte ||
					d.buffer[node+currentBest] != d.buffer[scanPos+currentBest] ||
					d.buffer[node] != d.buffer[scanPos] ||
					d.buffer[node+1] != d.buffer[scanPos+1] {
					next := d.match3.chain[node]
					if next == nilNode {
						break
					}
					node = int(next)
					continue
				}

				matched := extendMatch(&d.buffer, scanPos, node, 2, scanLimit)
				if matched >= 2 {
					if matched < bestTableSize && bestPos[matched] == 0 {
						bestPos[matched] = node + 1
					}

					if matched > lbLen {
						lbLen = matched
						lbPos = node
						currentBest = matched
						probeByte = d.buffer[scanPos+currentBest-1]

						if matched == st.windSize || matched > int(d.match3.bestLen[node]) {
							break
						}
					}
				}

				next := d.match3.chain[node]
				if next == nilNode {
					break
				}
				node = int(next)
			}
		}

		if lbLen > 1 {
			lbOff = st.posToOffset(lbPos)
		}

		d.match3.bestLen[st.windB] = uint16(lbLen)
		for i := 2; i < bestTableSize; i++ {
			if bestPos[i] > 0 {
				bestOff[i] = st.posToOffset(bestPos[i] - 1)
			} else {
				bestOff[i] = 0
			}
		}
	}

	d.resetNextInputEntry(st)
	d.match2.add(st.windB, &d.buffer)
	st.getByte(&d.buffer)

	if terminate {
		st.bufSize = 0
		lbLen = 0
		lbOff = 0
	} else {
		st.bufSize = st.windSize + 1
	}
	st.bufPos = st.inPos - st.bufSize

	return lbOff, lbLen
}

// resetNextInputEntry evicts the entry at windE from both Match2 and
// Match3 before it is overwritten, once the ring has been primed once
// (cycleCountdown reaches zero).
func (d *Dict) resetNextInputEntry(st *state) {
	if st.cycleCountdown > 0 {
		st.cycleCountdown--
		return
	}
	d.match3.remove(st.windE)
	d.match2.remove(st.windE, &d.buffer)
}

// getByte writes one source byte (zero past EOF) to the ring and its
// mirrored tail slot, then rolls windB/windE/inPos forward.
func (s *state) getByte(buffer *[bufGuardSize]byte) {
	if s.inPos < len(s.src) {
		c := s.src[s.inPos]
		s.inPos++
		buffer[s.windE] = c
		if s.windE < maxMatch {
			buffer[bufSize+s.windE] = c
		}
	} else {
		if s.windSize > 0 {
			s.windSize--
		}
		buffer[s.windE] = 0
		if s.windE < maxMatch {
			buffer[bufSize+s.windE] = 0
		}
	}

	s.windE++
	if s.windE == bufSize {
		s.windE = 0
	}
	s.windB++
	if s.windB == bufSize {
		s.windB = 0
	}
}

// posToOffset converts a ring position to a backward match distance from
// the current window-begin position.
func (s *state) posToOffset(pos int) int {
	if s.windB > pos {
		return s.windB - pos
	}
	return bufSize - (pos - s.windB)
}

// advance inserts the current window position into the chain for its
// 3-byte key and returns the prior chain head and its length (capped at
// maxMatch, the longest match the encoder will ever walk).
func (m *match3Table) advance(st *state, buffer *[bufGuardSize]byte) (uint16, int) {
	key := match3Key(buffer, st.windB)

	count := int(m.chainSz[key])
	head := m.head[key]

	m.chain[st.windB] = head
	m.chainSz[key]++
	if count > maxMatch {
		count = maxMatch
	}

	m.slotKey[st.windB] = uint16(key)
	m.head[key] = uint16(st.windB)
	return head, count
}

// skipAdvance inserts the current position without searching for a
// match, and stamps bestLen so no later search mistakes this position
// for one with real match potential.
func (m *match3Table) skipAdvance(st *state, buffer *[bufGuardSize]byte) {
	key := match3Key(buffer, st.windB)

	head := m.head[key]
	m.chain[st.windB] = head
	m.slotKey[st.windB] = uint16(key)
	m.head[key] = uint16(st.windB)
	m.bestLen[st.windB] = maxMatch + 1
	m.chainSz[key]++
}

// remove decrements the insertion counter for the bucket a position was
// inserted under, saturating at zero (never wrapping below).
func (m *match3Table) remove(pos int) {
	key := int(m.slotKey[pos])
	if m.chainSz[key] == 0 {
		return
	}
	m.chainSz[key]--
}

// add stores pos as the newest candidate for its 2-byte key.
func (m *match2Table) add(pos int, buffer *[bufGuardSize]byte) {
	key := match2Key(buffer, pos)
	m.head[key] = uint16(pos)
}

// remove clears the slot for pos's 2-byte key, but only if that slot
// still holds pos — a later insert that collided into the same bucket
// must not be evicted by an older position's removal.
func (m *match2Table) remove(pos int, buffer *[bufGuardSize]byte) {
	key := match2Key(buffer, pos)
	if m.head[key] == uint16(pos) {
		m.head[key] = emptyMatch2
	}
}

// search seeds a 2-byte candidate match (length 2) if one exists for the
// current window position, without disturbing a longer match already
// found via match3.
func (m *match2Table) search(st *state, lbPos, lbLen *int, bestPos *[bestTableSize]int, buffer *[bufGuardSize]byte) {
	key := match2Key(buffer, st.windB)
	head := m.head[key]
	if head == emptyMatch2 {
		return
	}

	pos := int(head)
	if bestPos[2] == 0 {
		bestPos[2] = pos + 1
	}
	if *lbLen < 2 {
		*lbLen = 2
		*lbPos = pos
	}
}

// match3Key computes the 3-byte hash key per spec.md §4.1: the bit-exact
// mix/multiply/shift chosen by the reference, not an arbitrary hash.
func match3Key(buffer *[bufGuardSize]byte, pos int) int {
	a := uint32(buffer[pos])
	b := uint32(buffer[pos+1])
	c := uint32(buffer[pos+2])
	mix := (((a << 5) ^ b) << 5) ^ c
	prod := mix * 0x9f5f
	return int((prod >> 5) & 0x3fff)
}

// match2Key computes the 2-byte key used by the direct short-match table.
func match2Key(buffer *[bufGuardSize]byte, pos int) int {
	return int(buffer[pos]) ^ (int(buffer[pos+1]) << 8)
}

// extendMatch extends an already-matched 2-byte prefix and returns the
// total matched length, reading from the mirrored tail so the comparison
// never has to special-case the ring wrap.
func extendMatch(buffer *[bufGuardSize]byte, leftPos, rightPos, matched, leftLimit int) int {
	for leftPos+matched+8 <= leftLimit && rightPos+matched+8 <= bufGuardSize {
		leftWord := *(*uint64)(unsafe.Pointer(&buffer[leftPos+matched]))
		rightWord := *(*uint64)(unsafe.Pointer(&buffer[rightPos+matched]))
		if leftWord == rightWord {
			matched += 8
			continue
		}

		diff := leftWord ^ rightWord
		matched += bits.TrailingZeros64(diff) >> 3
		return matched
	}

	for leftPos+matched < leftLimit &&
		rightPos+matched < bufGuardSize &&
		buffer[leftPos+matched] == buffer[rightPos+matched] {
		matched++
	}

	return matched
}
