package slowhash_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/theflywheel/slowhash"
)

// BenchmarkMetrics represents metrics for a single benchmark
type BenchmarkMetrics struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Operations  int                `json:"operations"`
	NsPerOp     float64            `json:"ns_per_op"`
	AllocsPerOp int                `json:"allocs_per_op,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// BenchmarkSummary represents all benchmark results
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	CommitID  string             `json:"commit_id"`
	Branch    string             `json:"branch"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

// getMemoryUsage returns the current memory stats as a formatted string
func getMemoryUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("Memory: Alloc=%.1fMB Sys=%.1fMB",
		float64(m.Alloc)/1024/1024,
		float64(m.Sys)/1024/1024)
}

// heapAllocMB returns the live heap in megabytes
func heapAllocMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / (1024 * 1024)
}

// recordTableStats copies the occupancy of tbl into metrics
func recordTableStats(metrics *BenchmarkMetrics, tbl *slowhash.Table) {
	st := tbl.Stats()
	metrics.Metrics["capacity"] = float64(st.Capacity)
	metrics.Metrics["load_percent"] = float64(st.LoadPercent)
	metrics.Metrics["tombstones"] = float64(st.Tombstones)
}

// gitInfo reads the branch and short commit of the repository at root
func gitInfo(root string) (commitID, branch string) {
	commitID, branch = "local", "dev"

	head, err := os.ReadFile(filepath.Join(root, ".git", "HEAD"))
	if err != nil {
		return commitID, branch
	}
	ref := strings.TrimSpace(string(head))
	if !strings.HasPrefix(ref, "ref: ") {
		if len(ref) >= 8 {
			commitID = ref[:8]
		}
		return commitID, "detached"
	}
	ref = strings.TrimPrefix(ref, "ref: ")
	branch = strings.TrimPrefix(ref, "refs/heads/")

	if data, err := os.ReadFile(filepath.Join(root, ".git", ref)); err == nil {
		commitID = strings.TrimSpace(string(data))
		if len(commitID) >= 8 {
			commitID = commitID[:8]
		}
	}
	return commitID, branch
}

// saveBenchmarkResult appends a benchmark result to benchmark_history/<resultsFile>
// in the repository root
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "getting current directory")
	}
	// Benchmarks run from bench/, one level below the repository root.
	repoRoot := filepath.Dir(currentDir)

	benchmarkDir := filepath.Join(repoRoot, "benchmark_history")
	if err := os.MkdirAll(benchmarkDir, 0755); err != nil {
		return errors.Wrap(err, "creating history directory")
	}

	commitID, branch := gitInfo(repoRoot)
	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commitID,
		Branch:    branch,
		GoVersion: runtime.Version(),
		Results:   []BenchmarkMetrics{metrics},
	}

	latestFile := filepath.Join(benchmarkDir, resultsFile)
	if existing, err := os.ReadFile(latestFile); err == nil {
		var prev BenchmarkSummary
		if err := json.Unmarshal(existing, &prev); err == nil {
			summary.Results = append(prev.Results, metrics)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling results")
	}
	if err := os.WriteFile(latestFile, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", latestFile)
	}

	fmt.Printf("Benchmark results saved to: %s\n", latestFile)
	return nil
}
