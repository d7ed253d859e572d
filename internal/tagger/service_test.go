package tagger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newTestService(ffmpegPath string) *Service {
	log, _ := logtest.NewNullLogger()
	s := NewService(log)
	if ffmpegPath != "" {
		s.ffmpegPath = ffmpegPath
	}
	return s
}

// writeFakeFFmpeg installs a script that copies the input file to the output
// file and appends the metadata argument
func writeFakeFFmpeg(t *testing.T, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script ffmpeg stub requires a POSIX shell")
	}

	script := "#!/bin/sh\n"
	if exitCode != 0 {
		script += fmt.Sprintf("echo 'Invalid data found' >&2\nexit %d\n", exitCode)
	}
	script += "for last; do :; done\n" +
		"cp \"$5\" \"$last\"\n" +
		"echo \"${11}\" >> \"$last\"\n"

	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write ffmpeg stub: %v", err)
	}
	return path
}

func TestNewService(t *testing.T) {
	service := newTestService("")

	if service.ffmpegPath != FFmpegCommand {
		t.Errorf("Expected ffmpeg path %s, got %s", FFmpegCommand, service.ffmpegPath)
	}
}

func TestGenerateOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		prefix string
		ext    string
	}{
		{"/path/to/video.mp4", "/path/to/video" + TempFileInfix, ".mp4"},
		{"/path/to/song.mp3", "/path/to/song" + TempFileInfix, ".mp3"},
		{"/no/ext/file", "/no/ext/file" + TempFileInfix, ""},
	}

	for _, test := range tests {
		result := generateOutputPath(test.input)
		if !strings.HasPrefix(result, test.prefix) || filepath.Ext(result) != test.ext {
			t.Errorf("generateOutputPath(%s) = %s, expected prefix %s and extension %q", test.input, result, test.prefix, test.ext)
		}
	}

	if generateOutputPath("/a.mp4") == generateOutputPath("/a.mp4") {
		t.Error("Expected unique temporary paths")
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	args := BuildFFmpegArgs("/input.mp4", "/output.mp4", "Greatest Hits")

	expectedArgs := []string{
		"-y",
		"-v", "error",
		"-i", "/input.mp4",
		"-map", "0",
		"-c", "copy",
		"-metadata", "album=Greatest Hits",
		"/output.mp4",
	}

	if len(args) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d", len(expectedArgs), len(args))
	}

	for i, expected := range expectedArgs {
		if args[i] != expected {
			t.Errorf("Arg %d: expected %s, got %s", i, expected, args[i])
		}
	}
}

func TestSetAlbum_NonExistentFile(t *testing.T) {
	service := newTestService("")

	err := service.SetAlbum(context.Background(), "/path/to/nonexistent/file.mp4", "YouTube")
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestSetAlbum_ReplacesFile(t *testing.T) {
	service := newTestService(writeFakeFFmpeg(t, 0))

	dir := t.TempDir()
	path := filepath.Join(dir, "Song (abc).mp4")
	if err := os.WriteFile(path, []byte("video\n"), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	if err := service.SetAlbum(context.Background(), path, "Greatest Hits"); err != nil {
		t.Fatalf("SetAlbum() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "video\nalbum=Greatest Hits\n" {
		t.Errorf("Unexpected file content %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected temporary file to be gone, found %d entries", len(entries))
	}
}

func TestSetAlbum_FFmpegFailureKeepsOriginal(t *testing.T) {
	service := newTestService(writeFakeFFmpeg(t, 1))

	dir := t.TempDir()
	path := filepath.Join(dir, "Song (abc).mp4")
	if err := os.WriteFile(path, []byte("video\n"), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	err := service.SetAlbum(context.Background(), path, "Greatest Hits")
	if err == nil {
		t.Fatal("Expected error from failing ffmpeg")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("Expected ffmpeg stderr in error, got: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "video\n" {
		t.Errorf("Original file changed: %q", data)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected no leftovers, found %d entries", len(entries))
	}
}
