package tagger

// Package tagger rewrites container metadata of downloaded files with ffmpeg.
// Streams are copied, never re-encoded.
