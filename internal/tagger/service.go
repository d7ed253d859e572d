package tagger

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FFmpeg constants for metadata rewriting
const (
	FFmpegCommand   = "ffmpeg"
	FFmpegLogLevel  = "error"
	AlbumMetadata   = "album=%s"
	TempFileInfix   = ".tagging-"
	maxStderrOutput = 512
)

// Service sets metadata on finished downloads
type Service struct {
	ffmpegPath string
	log        logrus.FieldLogger
}

// NewService creates a new metadata service using ffmpeg from PATH
func NewService(log logrus.FieldLogger) *Service {
	return &Service{
		ffmpegPath: FFmpegCommand,
		log:        log,
	}
}

// SetAlbum writes the album tag into path. The file is rewritten into a
// temporary sibling which then replaces the original; on failure the
// original is left untouched.
func (s *Service) SetAlbum(ctx context.Context, path, album string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("input file does not exist: %s", path)
	}

	outputPath := generateOutputPath(path)
	args := BuildFFmpegArgs(path, outputPath, album)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("ffmpeg failed for %s: %w%s", filepath.Base(path), err, stderrSuffix(stderr.String()))
	}

	if err := os.Rename(outputPath, path); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	s.log.WithFields(logrus.Fields{
		"file":  path,
		"album": album,
	}).Debug("Album tag written")

	return nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func BuildFFmpegArgs(inputPath, outputPath, album string) []string {
	return []string{
		"-y",
		"-v", FFmpegLogLevel,
		"-i", inputPath,
		"-map", "0",
		"-c", "copy",
		"-metadata", fmt.Sprintf(AlbumMetadata, album),
		outputPath,
	}
}

// generateOutputPath returns a unique temporary path next to inputPath that
// keeps its extension, so ffmpeg picks the same container
func generateOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	baseName := strings.TrimSuffix(inputPath, ext)
	return baseName + TempFileInfix + uuid.NewString() + ext
}

func stderrSuffix(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	if len(stderr) > maxStderrOutput {
		stderr = stderr[len(stderr)-maxStderrOutput:]
	}
	return ": " + stderr
}
