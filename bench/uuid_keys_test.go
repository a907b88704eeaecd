// This file benchmarks UUID keys with variable-length alphanumeric values,
// representing a common real-world usage pattern.
package slowhash_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/theflywheel/slowhash"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateAlphanumeric(rng *rand.Rand, length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphanumeric[rng.Intn(len(alphanumeric))]
	}
	return string(buf)
}

// BenchmarkUUIDKeys inserts random UUID keys with 16-256 byte values and
// validates every value through an xxhash checksum of the expected data.
func BenchmarkUUIDKeys(b *testing.B) {
	for _, tc := range []struct {
		name string
		opts []slowhash.Option
	}{
		{"string", nil},
		{"xxhash", []slowhash.Option{slowhash.WithXXHash()}},
	} {
		b.Run(tc.name, func(b *testing.B) {
			b.N = 1
			b.StopTimer()

			const numKeys = 100_000
			rng := rand.New(rand.NewSource(1))
			keys := make([]string, numKeys)
			values := make([]string, numKeys)
			checksums := make([]uint64, numKeys)
			for i := range keys {
				keys[i] = uuid.NewString()
				values[i] = generateAlphanumeric(rng, 16+rng.Intn(241))
				checksums[i] = xxhash.Sum64String(values[i])
			}

			metrics := BenchmarkMetrics{
				Name:       "UUIDKeys_" + tc.name,
				Category:   "uuid",
				Operations: numKeys,
				Metrics:    make(map[string]float64),
			}

			tbl := slowhash.New(tc.opts...)
			b.StartTimer()
			start := time.Now()
			for i := range keys {
				tbl.Insert(keys[i], values[i])
			}
			b.StopTimer()
			insertTime := time.Since(start)
			metrics.Metrics["insertion_rate"] = numKeys / insertTime.Seconds()

			b.StartTimer()
			start = time.Now()
			for i := range keys {
				val, found := tbl.Search(keys[i])
				if !found {
					b.Fatalf("UUID key %d not found", i)
				}
				if xxhash.Sum64String(val) != checksums[i] {
					b.Fatalf("Checksum mismatch for UUID key %d", i)
				}
			}
			b.StopTimer()
			lookupTime := time.Since(start)
			metrics.Metrics["lookup_rate"] = numKeys / lookupTime.Seconds()
			recordTableStats(&metrics, tbl)
			metrics.NsPerOp = float64((insertTime + lookupTime).Nanoseconds())

			b.Logf("%s: insert %v, lookup %v, %s", tc.name, insertTime, lookupTime, getMemoryUsage())
			if err := saveBenchmarkResult(metrics, "latest.json"); err != nil {
				b.Logf("Failed to save benchmark result to latest.json: %v", err)
			}
		})
	}
}
