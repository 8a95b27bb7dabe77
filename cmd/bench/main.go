// Bench is a benchmarking tool for measuring combination table build
// performance, query throughput, and memory usage.
//
// Usage:
//
//	go run ./cmd/bench -width 32 -ones 6 -workers 8
//
// Flags:
//
//	-width     Bit width of the table values: 8, 16, 32 or 64 (default: 32)
//	-ones      Set bits per value (default: 6)
//	-workers   Number of parallel chunk fillers (default: 1)
//	-chunk     Entries per chunk, 0 for the library default (default: 0)
//	-checksum  Chunk hash: xxhash, xxh3 or murmur3 (default: xxhash)
//	-queries   Number of At and Find queries to time (default: 1,000,000)
//	-seed      Seed for the query positions (default: 0x1234)
//	-verify    Verify the table after building (default: true)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/metrics"
	"runtime/pprof"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/tamirms/bitwise"
	"github.com/tamirms/bitwise/internal/sample"
)

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return maxRSS
}

// peakSampler tracks peak heap and RSS while a build runs.
// Uses runtime/metrics instead of ReadMemStats to avoid stop-the-world pauses.
type peakSampler struct {
	heap atomic.Uint64
	rss  atomic.Uint64
	done chan struct{}
}

func startPeakSampler(interval time.Duration) *peakSampler {
	p := &peakSampler{done: make(chan struct{})}
	go func() {
		samples := []metrics.Sample{{Name: "/memory/classes/heap/objects:bytes"}}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				metrics.Read(samples)
				storeMax(&p.heap, samples[0].Value.Uint64())
				storeMax(&p.rss, getMaxRSS())
			}
		}
	}()
	return p
}

func (p *peakSampler) stop() (heap, rss uint64) {
	close(p.done)
	var final runtime.MemStats
	runtime.ReadMemStats(&final)
	storeMax(&p.heap, final.Alloc)
	storeMax(&p.rss, getMaxRSS())
	return p.heap.Load(), p.rss.Load()
}

func storeMax(a *atomic.Uint64, v uint64) {
	for {
		old := a.Load()
		if v <= old || a.CompareAndSwap(old, v) {
			return
		}
	}
}

func main() {
	widthFlag := flag.Int("width", 32, "bit width of table values (8, 16, 32 or 64)")
	onesFlag := flag.Int("ones", 6, "set bits per value")
	workersFlag := flag.Int("workers", 1, "number of parallel chunk fillers")
	chunkFlag := flag.Int("chunk", 0, "entries per chunk (0 for default)")
	checksumFlag := flag.String("checksum", "xxhash", "chunk hash: xxhash, xxh3 or murmur3")
	queriesFlag := flag.Int("queries", 1_000_000, "number of At and Find queries")
	seedFlag := flag.Uint64("seed", 0x1234, "seed for query positions")
	verifyFlag := flag.Bool("verify", true, "verify the table after building")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file (build phase only)")
	memprofile := flag.String("memprofile", "", "write memory profile to file (build phase only)")
	flag.Parse()

	checksum, err := bitwise.ParseChecksum(*checksumFlag)
	if err != nil {
		fmt.Printf("Invalid checksum: %v\n", err)
		return
	}

	tmpDir, err := os.MkdirTemp("", "bench-")
	if err != nil {
		fmt.Printf("Failed to create temp dir: %v\n", err)
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()
	tablePath := filepath.Join(tmpDir, "bench.bwct")

	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	var baseline runtime.MemStats
	runtime.ReadMemStats(&baseline)
	baselineRSS := getMaxRSS()
	sampler := startPeakSampler(10 * time.Millisecond)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Printf("could not create CPU profile: %v\n", err)
			return
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("could not start CPU profile: %v\n", err)
			return
		}
	}

	fmt.Printf("Building %d-bit table with %d set bits...\n", *widthFlag, *onesFlag)
	opts := []bitwise.BuildOption{
		bitwise.WithWorkers(*workersFlag),
		bitwise.WithChecksum(checksum),
		bitwise.WithChunkSize(*chunkFlag),
	}
	buildStart := time.Now()
	err = bitwise.Build(context.Background(), tablePath, *widthFlag, *onesFlag, opts...)
	buildDuration := time.Since(buildStart)

	if *cpuprofile != "" {
		pprof.StopCPUProfile()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			fmt.Printf("could not create memory profile: %v\n", err)
		} else {
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Printf("could not write memory profile: %v\n", err)
			}
			_ = f.Close()
		}
	}

	peakHeap, peakRSS := sampler.stop()
	if err != nil {
		fmt.Printf("Build failed: %v\n", err)
		return
	}

	tbl, err := bitwise.Open(tablePath)
	if err != nil {
		fmt.Printf("Open failed: %v\n", err)
		return
	}
	defer func() { _ = tbl.Close() }()
	st := tbl.Stats()

	var verifyDuration time.Duration
	if *verifyFlag {
		fmt.Println("Verifying table...")
		verifyStart := time.Now()
		if err := tbl.Verify(); err != nil {
			fmt.Printf("Verify failed: %v\n", err)
			return
		}
		verifyDuration = time.Since(verifyStart)
	}

	numQueries := *queriesFlag
	src := sample.New(*seedFlag)
	positions := make([]uint64, numQueries)
	for i := range positions {
		positions[i] = src.Uint64() % st.Entries
	}

	fmt.Println("Benchmarking At...")
	values := make([]uint64, numQueries)
	atStart := time.Now()
	for i, p := range positions {
		values[i], _ = tbl.At(p) // Benchmark: measuring throughput, not correctness
	}
	atDuration := time.Since(atStart)

	fmt.Println("Benchmarking Find...")
	var misses int
	findStart := time.Now()
	for i, v := range values {
		if idx, err := tbl.Find(v); err != nil || idx != positions[i] {
			misses++
		}
	}
	findDuration := time.Since(findStart)

	perQuery := func(d time.Duration) float64 {
		if numQueries == 0 {
			return 0
		}
		return float64(d.Nanoseconds()) / float64(numQueries)
	}

	fmt.Printf("\n")
	fmt.Printf("╔═════════════════════╦════════════════════╗\n")
	fmt.Printf("║ Width/Ones          ║ %3d / %-12d ║\n", st.Width, st.Ones)
	fmt.Printf("╠═════════════════════╬════════════════════╣\n")
	fmt.Printf("║ Entries             ║ %18d ║\n", st.Entries)
	fmt.Printf("║ Chunks              ║ %18d ║\n", st.Chunks)
	fmt.Printf("║ Checksum            ║ %18s ║\n", st.Checksum)
	fmt.Printf("║ Table size          ║ %15.1f MB ║\n", float64(st.TableSize)/1_000_000)
	fmt.Printf("║ Build time          ║ %14.3f sec ║\n", buildDuration.Seconds())
	fmt.Printf("║ Build throughput    ║ %12.2f M/sec ║\n", float64(st.Entries)/buildDuration.Seconds()/1_000_000)
	if *verifyFlag {
		fmt.Printf("║ Verify time         ║ %14.3f sec ║\n", verifyDuration.Seconds())
	}
	fmt.Printf("║ At latency          ║ %15.1f ns ║\n", perQuery(atDuration))
	fmt.Printf("║ Find latency        ║ %15.1f ns ║\n", perQuery(findDuration))
	fmt.Printf("║ Find mismatches     ║ %18d ║\n", misses)
	fmt.Printf("║ Peak heap memory    ║ %15.1f MB ║\n", float64(peakHeap-min(peakHeap, baseline.Alloc))/1_000_000)
	fmt.Printf("║ Peak RSS memory     ║ %15.1f MB ║\n", float64(peakRSS-min(peakRSS, baselineRSS))/1_000_000)
	fmt.Printf("╚═════════════════════╩════════════════════╝\n")
}
