package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic outlogs and must match the expected loop counts.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	projectRoot = "/home/yifan/Robotics/ReKep/"
	totalLogs   = 200 // Number of outlogs to send
	stepsPerLog = 50  // Solver steps written into every outlog
)

var (
	framePathObjective    = frame("path_solver.py", 114, "objective")
	frameSubgoalObjective = frame("subgoal_solver.py", 112, "objective")
	frameIKSolve          = frame("ik_solver.py", 71, "solve")
	frameObjectByKeypoint = frame("environment.py", 226, "get_object_by_keypoint")
	frameIsGrasping       = frame("environment.py", 285, "is_grasping")
	frameCamObs           = frame("environment.py", 148, "get_cam_obs")
	frameStep             = frame("environment.py", 527, "_step")
	frameMain             = frame("main.py", 301, "perform_task")
)

// ### End - fixed configs

type loopCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

type compactionResponse struct {
	RequestID  string      `json:"requestId"`
	SourceName string      `json:"sourceName"`
	Lines      []string    `json:"lines"`
	Loops      []loopCount `json:"loops"`
	LinesRead  int         `json:"linesRead"`
	LinesKept  int         `json:"linesKept"`
}

// main runs the e2e scenario: 001_solver_loop_collapse
//
// This scenario posts synthetic outlogs to a running `outlog serve` and checks that
// every solver loop is collapsed. Each outlog interleaves noise lines, subgoal solver
// loops (Loop pattern 1), environment step loops (Loop pattern 3) and path solver
// prefix/suffix runs (Loop pattern 7).
//
// What it tests:
//   - POST /compactions with the x-source-name header
//   - Line filtering by project root (noise lines are dropped)
//   - Longest-pattern-first matching and variable suffix counting
//   - Concurrent requests against one compaction service
//
// Expected results:
//   - Every request returns 200
//   - Per outlog: Loop pattern 1 = stepsPerLog*3, Loop pattern 3 = stepsPerLog*2,
//     Loop pattern 7 = stepsPerLog
//   - Totals across all outlogs are the per-outlog counts times totalLogs
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the outlog server
	parallel := 4                      // Number of concurrent requests

	fmt.Println("Starting e2e scenario: 001_solver_loop_collapse")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("TOTAL_LOGS: %d\n", totalLogs)
	fmt.Printf("STEPS_PER_LOG: %d\n", stepsPerLog)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Println()

	body := []byte(generateOutlog())
	expected := map[string]int{
		"Loop pattern 1": stepsPerLog * 3,
		"Loop pattern 3": stepsPerLog * 2,
		"Loop pattern 7": stepsPerLog,
	}

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error
	totals := map[string]int{}
	var okRequests int64

	for i := 0; i < totalLogs; i++ {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(logIndex int) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			sourceName := fmt.Sprintf("run_%04d.log", logIndex)
			resp, err := postOutlog(baseURL, sourceName, body)
			if err == nil {
				err = checkResponse(resp, sourceName, expected)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", sourceName, err))
				fmt.Fprintf(os.Stderr, "ERROR: %s failed: %v\n", sourceName, err)
				return
			}
			for _, lc := range resp.Loops {
				totals[lc.Pattern] += lc.Count
			}
			atomic.AddInt64(&okRequests, 1)
		}(i)
	}

	// Wait for all requests to complete
	wg.Wait()

	fmt.Println()
	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d of %d outlogs failed\n", len(errs), totalLogs)
		os.Exit(1)
	}

	for name, perLog := range expected {
		if totals[name] != perLog*totalLogs {
			fmt.Fprintf(os.Stderr, "ERROR: %s total = %d, want %d\n", name, totals[name], perLog*totalLogs)
			os.Exit(1)
		}
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Successful requests: %d\n", atomic.LoadInt64(&okRequests))
	for _, name := range []string{"Loop pattern 7", "Loop pattern 1", "Loop pattern 3"} {
		fmt.Printf("%s: %d loop(s)\n", name, totals[name])
	}
	fmt.Println("Scenario completed successfully")
}

func frame(file string, line int, function string) string {
	return fmt.Sprintf(">>>>>>%s%s(%d)%s()", projectRoot, file, line, function)
}

// generateOutlog writes stepsPerLog solver steps, each separated by a main frame so runs
// of the same loop never merge across steps.
func generateOutlog() string {
	var b strings.Builder
	write := func(lines ...string) {
		for _, l := range lines {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}

	for step := 0; step < stepsPerLog; step++ {
		write("INFO step " + fmt.Sprint(step) + " started")
		write(frameMain)
		for i := 0; i < 3; i++ {
			write(frameSubgoalObjective, frameIKSolve)
		}
		write(frameMain)
		for i := 0; i < 2; i++ {
			write(frameCamObs, frameStep)
		}
		write(frameMain)
		write(framePathObjective, frameIKSolve, frameIKSolve, frameIKSolve)
		for i := 0; i <= step%3; i++ {
			write(frameObjectByKeypoint, frameIsGrasping)
		}
		write("  DEBUG trailing noise")
	}
	return b.String()
}

func postOutlog(baseURL, sourceName string, body []byte) (*compactionResponse, error) {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/compactions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("x-source-name", sourceName)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out compactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

func checkResponse(resp *compactionResponse, sourceName string, expected map[string]int) error {
	if resp.SourceName != sourceName {
		return fmt.Errorf("sourceName = %q", resp.SourceName)
	}
	for _, lc := range resp.Loops {
		if want := expected[lc.Pattern]; lc.Count != want {
			return fmt.Errorf("%s = %d, want %d", lc.Pattern, lc.Count, want)
		}
	}
	return nil
}
