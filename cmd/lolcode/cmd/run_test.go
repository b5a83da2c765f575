package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRunScriptFile exercises runScript end to end against a file on disk,
// the way the teacher's TestRunWithUnits drives runScript against a
// temporary .dws file (CWBudde-go-dws cmd/dwscript/cmd/run_unit_test.go).
func TestRunScriptFile(t *testing.T) {
	tempDir := t.TempDir()
	script := `HAI 1.2
I HAS A NAME ITZ "WORLD"
VISIBLE SMOOSH "HAI " AN NAME AN "!" MKAY
KTHXBYE`

	scriptPath := filepath.Join(tempDir, "main.lol")
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		t.Fatalf("failed to create main.lol: %v", err)
	}

	oldConfigPath := configPath
	defer func() { configPath = oldConfigPath }()
	configPath = ""

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := runScript(runCmd, []string{scriptPath})

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Fatalf("runScript failed: %v\nOutput: %s", err, output)
	}
	if output != "HAI WORLD!\n" {
		t.Errorf("got output %q, want %q", output, "HAI WORLD!\n")
	}
}

// TestRunScriptEvalFlag exercises the -e/--eval inline-source path.
func TestRunScriptEvalFlag(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = `HAI 1.2 VISIBLE "INLINE" KTHXBYE`

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := runScript(runCmd, nil)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Fatalf("runScript failed: %v\nOutput: %s", err, output)
	}
	if output != "INLINE\n" {
		t.Errorf("got output %q, want %q", output, "INLINE\n")
	}
}

// TestRunScriptGimmehSourceConfig exercises the config-driven GIMMEH
// replay path (GimmehSource), which bypasses stdin entirely.
func TestRunScriptGimmehSourceConfig(t *testing.T) {
	tempDir := t.TempDir()

	answersPath := filepath.Join(tempDir, "answers.txt")
	if err := os.WriteFile(answersPath, []byte("BOB\n"), 0644); err != nil {
		t.Fatalf("failed to create answers file: %v", err)
	}

	cfgPath := filepath.Join(tempDir, "lolcode.yaml")
	cfgContents := "gimmehSource: " + answersPath + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContents), 0644); err != nil {
		t.Fatalf("failed to create config file: %v", err)
	}

	script := `HAI 1.2
I HAS A NAME
GIMMEH NAME
VISIBLE SMOOSH "HAI " AN NAME MKAY
KTHXBYE`
	scriptPath := filepath.Join(tempDir, "main.lol")
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		t.Fatalf("failed to create main.lol: %v", err)
	}

	oldConfigPath := configPath
	defer func() { configPath = oldConfigPath }()
	configPath = cfgPath

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := runScript(runCmd, []string{scriptPath})

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Fatalf("runScript failed: %v\nOutput: %s", err, output)
	}
	if output != "HAI BOB\n" {
		t.Errorf("got output %q, want %q", output, "HAI BOB\n")
	}
}

// TestRunScriptTraceFlag checks that --trace emits per-statement tracing
// to stderr.
func TestRunScriptTraceFlag(t *testing.T) {
	tempDir := t.TempDir()
	script := `HAI 1.2
VISIBLE "X"
KTHXBYE`
	scriptPath := filepath.Join(tempDir, "main.lol")
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		t.Fatalf("failed to create main.lol: %v", err)
	}

	oldTrace := trace
	oldConfigPath := configPath
	defer func() {
		trace = oldTrace
		configPath = oldConfigPath
	}()
	trace = true
	configPath = ""

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	err := runScript(runCmd, []string{scriptPath})

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	stderrOutput := buf.String()

	if err != nil {
		t.Fatalf("runScript failed: %v\nStderr: %s", err, stderrOutput)
	}
	if !strings.Contains(stderrOutput, "[trace]") {
		t.Errorf("expected trace output on stderr, got: %s", stderrOutput)
	}
}

// TestRunScriptMissingFileFails checks that a nonexistent file path
// surfaces a readable error instead of panicking.
func TestRunScriptMissingFileFails(t *testing.T) {
	oldConfigPath := configPath
	defer func() { configPath = oldConfigPath }()
	configPath = ""

	err := runScript(runCmd, []string{filepath.Join(t.TempDir(), "nope.lol")})
	if err == nil {
		t.Fatal("expected an error for a missing file, got none")
	}
}

// TestRunScriptNameErrorFails checks that a LOLCODE-level Name error
// (undeclared variable) surfaces as a non-nil error from runScript.
func TestRunScriptNameErrorFails(t *testing.T) {
	tempDir := t.TempDir()
	script := `HAI 1.2
VISIBLE UNKNOWN
KTHXBYE`
	scriptPath := filepath.Join(tempDir, "main.lol")
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		t.Fatalf("failed to create main.lol: %v", err)
	}

	oldConfigPath := configPath
	defer func() { configPath = oldConfigPath }()
	configPath = ""

	oldStdout, oldStderr := os.Stdout, os.Stderr
	_, w1, _ := os.Pipe()
	_, w2, _ := os.Pipe()
	os.Stdout, os.Stderr = w1, w2

	err := runScript(runCmd, []string{scriptPath})

	w1.Close()
	w2.Close()
	os.Stdout, os.Stderr = oldStdout, oldStderr

	if err == nil {
		t.Fatal("expected an error for an undeclared variable, got none")
	}
}
