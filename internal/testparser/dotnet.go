// Package testparser extracts test counts from `dotnet test` console output.
package testparser

import (
	"regexp"
	"strconv"
)

// FailedTest holds information about a single failed test.
type FailedTest struct {
	Name string // Fully qualified test name
}

// TestCounts holds parsed test result counts.
type TestCounts struct {
	Passed      int
	Failed      int
	Skipped     int
	Total       int
	Parsed      bool         // true if counts were successfully extracted
	FailedTests []FailedTest // names of failed tests, in output order
}

// Add adds another TestCounts to this one. Parsed is sticky: the aggregate
// is Parsed if any added TestCounts was.
func (tc *TestCounts) Add(other *TestCounts) {
	if other == nil {
		return
	}
	tc.Passed += other.Passed
	tc.Failed += other.Failed
	tc.Skipped += other.Skipped
	tc.Total += other.Total
	tc.FailedTests = append(tc.FailedTests, other.FailedTests...)
	if other.Parsed {
		tc.Parsed = true
	}
}

var (
	// Passed!  - Failed:     0, Passed:    47, Skipped:     3, Total:    50
	summaryRE = regexp.MustCompile(`Failed:\s*(\d+),\s*Passed:\s*(\d+),\s*Skipped:\s*(\d+)`)

	// Older runners print a multi-line block instead.
	passedRE  = regexp.MustCompile(`(?m)^\s*Passed:\s*(\d+)\s*$`)
	failedRE  = regexp.MustCompile(`(?m)^\s*Failed:\s*(\d+)\s*$`)
	skippedRE = regexp.MustCompile(`(?m)^\s*Skipped:\s*(\d+)\s*$`)

	//   Failed Example.Core.Tests.MathTests.Adds [12 ms]
	failedTestRE = regexp.MustCompile(`(?m)^\s*Failed\s+(\S+)\s+\[[^\]]*\]\s*$`)
)

// ParseDotnet extracts test counts from dotnet test output. A solution-wide
// run prints one summary line per test assembly; all of them are summed.
func ParseDotnet(output string) TestCounts {
	counts := TestCounts{}

	for _, match := range failedTestRE.FindAllStringSubmatch(output, -1) {
		counts.FailedTests = append(counts.FailedTests, FailedTest{Name: match[1]})
	}

	if matches := summaryRE.FindAllStringSubmatch(output, -1); len(matches) > 0 {
		for _, match := range matches {
			failed, _ := strconv.Atoi(match[1])
			passed, _ := strconv.Atoi(match[2])
			skipped, _ := strconv.Atoi(match[3])
			counts.Failed += failed
			counts.Passed += passed
			counts.Skipped += skipped
		}
		counts.Total = counts.Passed + counts.Failed + counts.Skipped
		counts.Parsed = true
		return counts
	}

	if n, ok := firstInt(passedRE, output); ok {
		counts.Passed = n
		counts.Parsed = true
	}
	if n, ok := firstInt(failedRE, output); ok {
		counts.Failed = n
		counts.Parsed = true
	}
	if n, ok := firstInt(skippedRE, output); ok {
		counts.Skipped = n
		counts.Parsed = true
	}

	if counts.Parsed {
		counts.Total = counts.Passed + counts.Failed + counts.Skipped
	}

	return counts
}

func firstInt(re *regexp.Regexp, output string) (int, bool) {
	match := re.FindStringSubmatch(output)
	if len(match) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	return n, err == nil
}
