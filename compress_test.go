package lzokay

import (
	"bytes"
	"errors"
	"testing"
)

func testInputSet() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "short-text", data: []byte("hello world, lzo test")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 12000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
	}
}

func TestCompressDecompress_RoundTrip(t *testing.T) {
	for _, in := range testInputSet() {
		t.Run(in.name, func(t *testing.T) {
			cmp, err := Compress(in.data, nil)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			if len(cmp) < 3 {
				t.Fatalf("compressed data too short: %d", len(cmp))
			}
			if !bytes.Equal(cmp[len(cmp)-3:], []byte{markerM4 | 1, 0, 0}) {
				t.Fatalf("missing stream terminator: % x", cmp[len(cmp)-3:])
			}

			out, err := Decompress(cmp, DefaultDecompressOptions(len(in.data)))
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(out, in.data) {
				t.Fatalf("round-trip mismatch: got=%d want=%d", len(out), len(in.data))
			}

			outReader, err := DecompressFromReader(bytes.NewReader(cmp), DefaultDecompressOptions(len(in.data)))
			if err != nil {
				t.Fatalf("DecompressFromReader failed: %v", err)
			}
			if !bytes.Equal(outReader, in.data) {
				t.Fatalf("reader round-trip mismatch: got=%d want=%d", len(outReader), len(in.data))
			}
		})
	}
}

func TestCompress_PooledDictMatchesFreshDict(t *testing.T) {
	// spec.md §8 property 3: a reused, reset Dict must produce byte-identical
	// output to a freshly constructed one, for any input.
	data := bytes.Repeat([]byte("ABCDEF123456"), 1024)

	dstA := make([]byte, CompressWorstSize(len(data)))
	freshDict := new(Dict)
	nA, err := CompressNoAlloc(data, dstA, freshDict)
	if err != nil {
		t.Fatalf("CompressNoAlloc with fresh dict failed: %v", err)
	}

	dict := AcquireDict()
	defer ReleaseDict(dict)

	// Warm the pooled dict with unrelated input first.
	warmup := bytes.Repeat([]byte{0x7e}, 4096)
	dstWarm := make([]byte, CompressWorstSize(len(warmup)))
	if _, err := CompressNoAlloc(warmup, dstWarm, dict); err != nil {
		t.Fatalf("CompressNoAlloc warmup failed: %v", err)
	}

	dstB := make([]byte, CompressWorstSize(len(data)))
	nB, err := CompressNoAlloc(data, dstB, dict)
	if err != nil {
		t.Fatalf("CompressNoAlloc with reused dict failed: %v", err)
	}

	if !bytes.Equal(dstA[:nA], dstB[:nB]) {
		t.Fatal("reused dict produced different output than a fresh dict")
	}
}

func TestCompressNoAlloc_OutputOverrun(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 4096)
	dict := AcquireDict()
	defer ReleaseDict(dict)

	dst := make([]byte, 4)
	if _, err := CompressNoAlloc(data, dst, dict); !errors.Is(err, ErrOutputOverrun) {
		t.Fatalf("expected ErrOutputOverrun for undersized destination, got %v", err)
	}
}

func FuzzCompressDecompressRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello world"))
	f.Add(bytes.Repeat([]byte{0x00}, 1024))
	f.Add(bytes.Repeat([]byte("abc"), 500))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<16 {
			data = data[:1<<16]
		}

		cmp, err := Compress(data, nil)
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}

		out, err := Decompress(cmp, DefaultDecompressOptions(len(data)))
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}

		if !bytes.Equal(out, data) {
			t.Fatalf("round-trip mismatch: got=%d want=%d", len(out), len(data))
		}
	})
}
