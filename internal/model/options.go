package model

// CLIOptions holds user-configurable runtime options as resolved from flags,
// environment and the config file.
type CLIOptions struct {
	OutDir   string // Output directory; empty = command default
	DLBinary string // Optional explicit path to yt-dlp/youtube-dl
	Verbose  bool

	NoUI   bool // Disable TUI when true
	NoSave bool // details: print the digest without writing files
}
