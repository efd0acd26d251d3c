package urllist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "order preserved",
			input: "https://a\nhttps://b\nhttps://c\n",
			want:  []string{"https://a", "https://b", "https://c"},
		},
		{
			name:  "blank and comment lines skipped",
			input: "\n# heading\nhttps://a\n   \n  # indented comment\nhttps://b",
			want:  []string{"https://a", "https://b"},
		},
		{
			name:  "whitespace trimmed and duplicates kept",
			input: "  https://a  \r\nhttps://a\n",
			want:  []string{"https://a", "https://a"},
		},
		{
			name:  "only comments",
			input: "# nothing\n\n",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte("https://x\n#skip\nhttps://y\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 2 || got[0] != "https://x" || got[1] != "https://y" {
		t.Errorf("Read() = %q", got)
	}
}
