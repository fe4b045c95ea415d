package lzokay

import (
	"bytes"
	"testing"
)

func benchmarkCorpus() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "zeros-64k", data: make([]byte, 64*1024)},
		{name: "text-repeat-64k", data: bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 1500)},
		{name: "byte-cycle-64k", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, 4096)},
	}
}

func BenchmarkCompress(b *testing.B) {
	for _, c := range benchmarkCorpus() {
		b.Run(c.name, func(b *testing.B) {
			b.SetBytes(int64(len(c.data)))
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := Compress(c.data, nil); err != nil {
					b.Fatalf("Compress failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkCompressNoAlloc(b *testing.B) {
	for _, c := range benchmarkCorpus() {
		b.Run(c.name, func(b *testing.B) {
			dict := new(Dict)
			dst := make([]byte, CompressWorstSize(len(c.data)))

			b.SetBytes(int64(len(c.data)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := CompressNoAlloc(c.data, dst, dict); err != nil {
					b.Fatalf("CompressNoAlloc failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	for _, c := range benchmarkCorpus() {
		cmp, err := Compress(c.data, nil)
		if err != nil {
			b.Fatalf("Compress failed: %v", err)
		}

		b.Run(c.name, func(b *testing.B) {
			opts := DefaultDecompressOptions(len(c.data))
			b.SetBytes(int64(len(c.data)))
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := Decompress(cmp, opts); err != nil {
					b.Fatalf("Decompress failed: %v", err)
				}
			}
		})
	}
}
