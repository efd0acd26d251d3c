package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindDownloaderCustomPath(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := FindDownloader(bin)
	if err != nil {
		t.Fatalf("FindDownloader() error = %v", err)
	}
	if got != bin {
		t.Errorf("FindDownloader() = %q, want %q", got, bin)
	}
}

func TestFindDownloaderMissingCustomPath(t *testing.T) {
	if _, err := FindDownloader(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("FindDownloader() expected error for missing binary")
	}
}

func TestFindDownloaderRejectsDirectory(t *testing.T) {
	if _, err := FindDownloader(t.TempDir()); err == nil {
		t.Fatal("FindDownloader() expected error for a directory")
	}
}

func TestFindDownloaderSearchesPath(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "yt-dlp")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	got, err := FindDownloader("")
	if err != nil {
		t.Fatalf("FindDownloader() error = %v", err)
	}
	if got != bin {
		t.Errorf("FindDownloader() = %q, want %q", got, bin)
	}
}
