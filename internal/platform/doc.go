package platform

// Package platform contains filesystem helpers and external tooling glue:
// path validation, input file reading, download file detection, and playlist
// expansion via the ytdlp library.
