package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and documents
// ---------------------------------------------------------------------------

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testEnv returns an Environment writing to buffers, never on a terminal.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:        func() time.Time { return fixedNow },
		Stdout:     stdout,
		Stderr:     stderr,
		IsTerminal: func(io.Writer) bool { return false },
		TermWidth:  func(io.Writer) int { return 80 },
	}, stdout, stderr
}

// validDoc passes every lint check under the default dialect.
const validDoc = `# Requirements

## 1. PROJECT

| ID | Title | Description |
|----|-------|-------------|
| **P.1-01** | Scope | The tool lints documents. |

## 2. ENVIRONMENT

**E.1-01** Runs on Linux, see [P.1-01].

## 3. GOALS

**G.1-01** Reports are readable.

## 4. SYSTEM

**S.1-01** The CLI exits non-zero on failure.
`

// invalidDoc misses two sections and uses the disallowed keyword.
const invalidDoc = `## 1. PROJECT

**P.1-01** The tool should lint documents.

## 2. GOALS

**G.1-01** Reports are readable.
`

// writeFile writes content to name under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
