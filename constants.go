// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package lzokay

// LZO1X "lzokay" dialect constants. These values are authoritative: the
// bitstream produced by Compress and accepted by Decompress depends on
// them bit-for-bit, so they must never be tuned per call site.
const (
	hashSize = 0x4000 // number of match3 hash buckets
	maxDist  = 0xbfff // farthest back-reference distance the encoder emits
	maxMatch = 0x0800 // longest match the encoder will find

	bufSize      = maxDist + maxMatch     // ring size
	bufGuardSize = bufSize + maxMatch + 1 // ring plus mirrored tail for wrap-free reads

	bestTableSize = maxLenM3 + 1 // "best offset per match length" table size
)

// Match offset bounds (max distance for each match type).
const (
	maxOffsetM1 = 0x0400
	maxOffsetM2 = 0x0800
	maxOffsetM3 = 0x4000
	maxOffsetM4 = 0xbfff
	maxOffsetMX = maxOffsetM1 + maxOffsetM2
)

// Match length bounds per type.
const (
	minLenM2 = 3
	maxLenM2 = 8
	maxLenM3 = 33
	maxLenM4 = 9
)

// Instruction byte markers for match types.
const (
	markerM1 = 0
	markerM2 = 0x40
	markerM3 = 0x20
	markerM4 = 0x10
)

// nilNode marks an empty match3 hash-chain slot.
const nilNode = 0xffff

// emptyMatch2 marks an empty match2 slot; see dictionary.go.
const emptyMatch2 = 0xffff
