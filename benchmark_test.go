package bitwise

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
)

// sink keeps results live so the compiler cannot drop benchmarked calls.
var sink uint64

func benchmarkValues[T Unsigned](b *testing.B) []T {
	rng := newTestRNG(b)
	vs := make([]T, 1024)
	for i := range vs {
		vs[i] = randomValue[T](rng)
	}
	return vs
}

func BenchmarkSetLower(b *testing.B) {
	vs := benchmarkValues[uint64](b)
	b.ResetTimer()
	for i := range b.N {
		sink += uint64(SetLower(vs[i&1023], i&63))
	}
}

func BenchmarkClearHigher(b *testing.B) {
	vs := benchmarkValues[uint64](b)
	b.ResetTimer()
	for i := range b.N {
		sink += uint64(ClearHigher(vs[i&1023], i&63))
	}
}

func BenchmarkHighestSetBit(b *testing.B) {
	vs := benchmarkValues[uint64](b)
	b.ResetTimer()
	for i := range b.N {
		sink += uint64(HighestSetBit(vs[i&1023]))
	}
}

func benchmarkCount[T Unsigned](b *testing.B) {
	vs := benchmarkValues[T](b)
	b.ResetTimer()
	for i := range b.N {
		sink += uint64(CountSetBits(vs[i&1023]))
	}
}

func BenchmarkCountSetBits8(b *testing.B)  { benchmarkCount[uint8](b) }
func BenchmarkCountSetBits32(b *testing.B) { benchmarkCount[uint32](b) }
func BenchmarkCountSetBits64(b *testing.B) { benchmarkCount[uint64](b) }

func BenchmarkNextSameCount(b *testing.B) {
	vs := benchmarkValues[uint64](b)
	b.ResetTimer()
	for i := range b.N {
		sink += NextSameCount(vs[i&1023])
	}
}

// BenchmarkNextSameCountChain walks a popcount class, which is what a table
// fill does between chunk starts.
func BenchmarkNextSameCountChain(b *testing.B) {
	v := uint64(0xFF)
	for range b.N {
		v = NextSameCount(v)
	}
	sink += v
}

func BenchmarkRank(b *testing.B) {
	vs := benchmarkValues[uint64](b)
	b.ResetTimer()
	for i := range b.N {
		sink += Rank(vs[i&1023])
	}
}

func BenchmarkUnrank(b *testing.B) {
	total := Binomial(64, 8)
	b.ResetTimer()
	for i := range b.N {
		v, err := Unrank[uint64](8, uint64(i)*0x9E3779B97F4A7C15%total)
		if err != nil {
			b.Fatal(err)
		}
		sink += v
	}
}

func BenchmarkAppendFormat(b *testing.B) {
	buf := make([]byte, 0, 128)
	b.ReportAllocs()
	for i := range b.N {
		buf = AppendFormat(buf[:0], uint64(i)*0x9E3779B97F4A7C15)
	}
	sink += uint64(len(buf))
}

func benchmarkBuild(b *testing.B, width, ones, workers int) {
	path := filepath.Join(b.TempDir(), "bench.bwct")
	ctx := context.Background()

	b.SetBytes(int64(Binomial(width, ones)) * int64(width/8))
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := Build(ctx, path, width, ones, WithWorkers(workers)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuild32x4(b *testing.B) { benchmarkBuild(b, 32, 4, 1) }

func BenchmarkBuild32x4Parallel(b *testing.B) {
	benchmarkBuild(b, 32, 4, runtime.GOMAXPROCS(0))
}

func benchmarkTable(b *testing.B) *Table {
	path := filepath.Join(b.TempDir(), "bench.bwct")
	if err := Build(context.Background(), path, 32, 4, WithWorkers(4)); err != nil {
		b.Fatal(err)
	}
	tbl, err := Open(path)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = tbl.Close() })
	return tbl
}

func BenchmarkTableAt(b *testing.B) {
	tbl := benchmarkTable(b)
	n := tbl.Len()
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		v, err := tbl.At(uint64(i) * 0x9E3779B97F4A7C15 % n)
		if err != nil {
			b.Fatal(err)
		}
		sink += v
	}
}

func BenchmarkTableFind(b *testing.B) {
	tbl := benchmarkTable(b)
	queries := make([]uint64, 1024)
	for i := range queries {
		v, err := tbl.At(uint64(i) * 0x9E3779B97F4A7C15 % tbl.Len())
		if err != nil {
			b.Fatal(err)
		}
		queries[i] = v
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		idx, err := tbl.Find(queries[i&1023])
		if err != nil {
			b.Fatal(err)
		}
		sink += idx
	}
}

func BenchmarkTableFindParallel(b *testing.B) {
	tbl := benchmarkTable(b)
	n := tbl.Len()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		var i uint64
		for pb.Next() {
			v, _ := tbl.At(i % n)
			if _, err := tbl.Find(v); err != nil {
				panic(fmt.Sprintf("Find(0x%X): %v", v, err))
			}
			i += 7919
		}
	})
}

func BenchmarkTableVerify(b *testing.B) {
	tbl := benchmarkTable(b)
	b.SetBytes(int64(tbl.Stats().TableSize))
	b.ResetTimer()
	for range b.N {
		if err := tbl.Verify(); err != nil {
			b.Fatal(err)
		}
	}
}
