// Package main provides a performance benchmarking tool for the compscore CLI.
// It measures batch evaluation throughput across roster sizes, running each
// test multiple times, treating the first memoized run as cold and averaging
// the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - compscore binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated rosters and databases
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of one roster size (no-memo average, cold
// run and average of warm runs).
type BenchmarkResult struct {
	RosterSize int
	Workers    int
	NoMemoTime string
	ColdTime   string
	WarmTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoMemoRuns  int
	MemoRuns    int
	RosterSizes []int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     2 * time.Minute,
		Workers:     8,
		NoMemoRuns:  3,
		MemoRuns:    4,
		RosterSizes: []int{100, 1000, 10000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing memo...\n")
	clearCmd := exec.Command("compscore", "memo", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear memo: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Memo cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies the compscore binary and work directory exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("compscore"); err != nil {
		return fmt.Errorf("compscore binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// runBenchmarks executes the benchmark across configured roster sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, %v timeout, %d workers, no-memo: %d runs, memo: %d runs\n",
		config.RosterSizes, config.Timeout, config.Workers, config.NoMemoRuns, config.MemoRuns)

	for _, size := range config.RosterSizes {
		fmt.Printf("Benchmarking roster of %d profiles\n", size)

		rosterPath := filepath.Join(config.WorkDir, fmt.Sprintf("roster_%d.jsonl", size))
		if err := generateRoster(rosterPath, size); err != nil {
			fmt.Printf("  Failed to generate roster: %v\n", err)
			continue
		}

		results = append(results, runBenchmarkSuite(config, rosterPath, size))
	}

	return results
}

// runBenchmarkSuite runs both no-memo and memoized benchmarks for one roster.
func runBenchmarkSuite(config BenchmarkConfig, rosterPath string, size int) BenchmarkResult {
	runPhase := func(memoBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, rosterPath, memoBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-memo runs
	_, noMemoAvg := runPhase("none", config.NoMemoRuns, "No-memo")

	// Phase 2: Memoized runs
	coldTime, warmAvg := runPhase("sqlite", config.MemoRuns, "Memo")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-memo average: %s, Cold time: %s, Warm average: %s\n", noMemoAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		RosterSize: size,
		Workers:    config.Workers,
		NoMemoTime: noMemoAvg,
		ColdTime:   coldTimeStr,
		WarmTime:   warmAvg,
	}
}

// runBenchmark executes compscore batch multiple times with the given memo
// backend and returns the cold time and warm times.
func runBenchmark(config BenchmarkConfig, rosterPath, memoBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"batch", rosterPath,
		"--memo-backend", memoBackend,
		"--workers", fmt.Sprintf("%d", config.Workers),
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("compscore", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if the batch output indicates a completed run.
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Evaluated") &&
		strings.Contains(outputStr, "profile(s)")
}

// generateRoster writes a JSON Lines roster of synthetic candidate profiles.
func generateRoster(path string, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	rng := rand.New(rand.NewSource(42))
	levels := []string{"high_school", "college_diploma", "bachelor_degree"}
	for i := range size {
		line := fmt.Sprintf(`{"id":"cand-%d","work":{"totalYears":%d,"policeRelatedYears":%d},`+
			`"education":{"highestLevel":%q},"volunteer":{"totalHours":%d},`+
			`"fitness":{"prepTestPassed":%t,"shuttleRunLevel":%d},`+
			`"background":{"criminalConviction":false},"driving":{"licenceSuspended":false}}`,
			i,
			rng.Intn(10), rng.Intn(4),
			levels[rng.Intn(len(levels))],
			rng.Intn(400),
			rng.Intn(2) == 0, 4+rng.Intn(8),
		)
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}
	return nil
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/compscore_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"roster_size", "workers", "no_memo_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			fmt.Sprintf("%d", result.RosterSize),
			fmt.Sprintf("%d", result.Workers),
			result.NoMemoTime,
			result.ColdTime,
			result.WarmTime,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %6d profiles: No-memo: %s, Cold: %s, Warm: %s\n",
			result.RosterSize, result.NoMemoTime, result.ColdTime, result.WarmTime)
	}
}
