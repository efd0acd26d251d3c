package util

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunStreamsStdoutLines(t *testing.T) {
	bin := writeScript(t, "echo one\necho two\necho oops >&2\n")

	var lines []string
	res, err := Run(context.Background(), CmdSpec{
		Path:       bin,
		StdoutLine: func(l string) { lines = append(lines, l) },
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Join(lines, ",") != "one,two" {
		t.Errorf("stdout lines = %v, want [one two]", lines)
	}
	if len(res.Stdout) != 0 {
		t.Errorf("stdout captured without CaptureStdout: %q", res.Stdout)
	}
	if LastLine(res.Stderr) != "oops" {
		t.Errorf("stderr = %q, want oops", res.Stderr)
	}
}

func TestRunCapturesStdout(t *testing.T) {
	bin := writeScript(t, "echo '{\"id\":\"x\"}'\n")

	res, err := Run(context.Background(), CmdSpec{Path: bin})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.TrimSpace(string(res.Stdout)) != `{"id":"x"}` {
		t.Errorf("stdout = %q", res.Stdout)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	bin := writeScript(t, "echo 'ERROR: Video unavailable' >&2\nexit 3\n")

	res, err := Run(context.Background(), CmdSpec{Path: bin})
	if err == nil {
		t.Fatal("Run() expected error for exit 3")
	}
	if res.Code != 3 {
		t.Errorf("Code = %d, want 3", res.Code)
	}
	if got := LastLine(res.Stderr); got != "ERROR: Video unavailable" {
		t.Errorf("LastLine(stderr) = %q", got)
	}
}

func TestRunVerboseEchoesCommand(t *testing.T) {
	bin := writeScript(t, "echo hi\n")

	var log bytes.Buffer
	if _, err := Run(context.Background(), CmdSpec{Path: bin, Args: []string{"-o", "%(title)s.%(ext)s"}, Verbose: true, LogOut: &log}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := log.String()
	if !strings.Contains(out, "'%(title)s.%(ext)s'") {
		t.Errorf("verbose log missing quoted arg: %q", out)
	}
	if !strings.Contains(out, "hi\n") {
		t.Errorf("verbose log missing output: %q", out)
	}
}

func TestLastLine(t *testing.T) {
	if got := LastLine([]byte("a\nb\n\n  \n")); got != "b" {
		t.Errorf("LastLine() = %q, want b", got)
	}
	if got := LastLine(nil); got != "" {
		t.Errorf("LastLine(nil) = %q, want empty", got)
	}
}
