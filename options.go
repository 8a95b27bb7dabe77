package bitwise

import "log/slog"

const (
	// defaultChunkSize is the number of entries filled and hashed per work unit.
	defaultChunkSize = 1 << 16

	// maxChunks bounds the per-chunk hash slice. Builds that would exceed it
	// with the requested chunk size get a larger chunk size instead.
	maxChunks = 1 << 20
)

// BuildOption is a functional option for configuring table builds.
type BuildOption func(*buildConfig)

type buildConfig struct {
	workers   int
	chunkSize int
	checksum  ChecksumID
	logger    *slog.Logger
}

func defaultBuildConfig() *buildConfig {
	return &buildConfig{
		workers:   1, // Single-threaded unless WithWorkers is given
		chunkSize: defaultChunkSize,
		checksum:  ChecksumXXHash64,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// WithWorkers sets the number of chunks filled in parallel.
// Values below 1 are treated as 1.
func WithWorkers(n int) BuildOption {
	return func(c *buildConfig) {
		c.workers = max(n, 1)
	}
}

// WithChunkSize sets the number of entries per chunk. Chunks are the unit
// of parallel work and of checksumming, so a table built with a different
// chunk size has a different footer hash. Values below 1 are ignored.
func WithChunkSize(n int) BuildOption {
	return func(c *buildConfig) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithChecksum sets the per-chunk hash algorithm.
func WithChecksum(id ChecksumID) BuildOption {
	return func(c *buildConfig) {
		c.checksum = id
	}
}

// WithLogger sets the logger for build progress. Nil is ignored.
// Start and completion are logged at Info, each chunk at Debug.
func WithLogger(l *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
