package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
)

func newTestFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ytkit", pflag.ContinueOnError)
	fs.StringP("out-dir", "o", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("dl-binary", "", "")
	return fs
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("config dir is only redirectable via XDG_CONFIG_HOME on linux")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "ytkit")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPrecedence(t *testing.T) {
	writeConfig(t, "out_dir: from-file\ndl_binary: /opt/yt-dlp\nverbose: true\n")
	t.Setenv("YTKIT_OUT_DIR", "from-env")

	flags := newTestFlags()
	v, err := Init(flags)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	opts := Options(v)
	if opts.OutDir != "from-env" {
		t.Errorf("OutDir = %q, want env to beat file", opts.OutDir)
	}
	if opts.DLBinary != "/opt/yt-dlp" || !opts.Verbose {
		t.Errorf("file values not applied: %+v", opts)
	}

	if err := flags.Set("out-dir", "from-flag"); err != nil {
		t.Fatal(err)
	}
	if got := Options(v).OutDir; got != "from-flag" {
		t.Errorf("OutDir = %q, want flag to beat env", got)
	}
}

func TestMissingConfigFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	v, err := Init(newTestFlags())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if opts := Options(v); opts.OutDir != "" || opts.Verbose {
		t.Errorf("Options() = %+v, want zero values", opts)
	}
}
