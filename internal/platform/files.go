package platform

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxNameDifference bounds how much a truncated file name may differ
const MaxNameDifference = 10

// File extensions left behind by interrupted downloads
var (
	SkippedExtensions = []string{".part", ".ytdl"}
)

// FileSystem validates paths and reads input files relative to the working
// directory
type FileSystem struct{}

// ValidateDirectory reports whether path is an existing directory
func (FileSystem) ValidateDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ValidateFile reports whether path is an existing regular file
func (FileSystem) ValidateFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Read returns the whole content of path
func (FileSystem) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// ReadLines returns the lines of path without line endings
func (FileSystem) ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// StripStrings trims surrounding whitespace from every entry and drops the
// entries left empty
func StripStrings(values []string) []string {
	stripped := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			stripped = append(stripped, value)
		}
	}
	return stripped
}

// HasCompletedDownload reports whether a file sharing filePath's name
// (with any extension) exists and no interrupted download of it is left
func HasCompletedDownload(filePath string) bool {
	matches := siblingsWithBaseName(filePath)
	if len(matches) == 0 {
		return false
	}
	for _, match := range matches {
		if isPartialDownload(match) {
			return false
		}
	}
	return true
}

// FindDownloadedFile returns the file yt-dlp produced for filePath. Post
// processing may change the extension, and some file systems truncate
// names, so files with the same base name or a similar name are accepted.
func FindDownloadedFile(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}

	if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
		return filePath, nil
	}

	var candidates []string
	for _, match := range siblingsWithBaseName(filePath) {
		if !isPartialDownload(match) {
			candidates = append(candidates, match)
		}
	}
	if len(candidates) > 0 {
		sort.Strings(candidates)
		return candidates[0], nil
	}

	dir := filepath.Dir(filePath)
	baseName := trimExt(filepath.Base(filePath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || isPartialDownload(entry.Name()) {
			continue
		}
		if isSimilarFileName(trimExt(entry.Name()), baseName) {
			candidates = append(candidates, filepath.Join(dir, entry.Name()))
		}
	}
	if len(candidates) > 0 {
		sort.Strings(candidates)
		return candidates[0], nil
	}

	return "", fmt.Errorf("file not found: %s", filePath)
}

// siblingsWithBaseName lists the files named like filePath with any extension
func siblingsWithBaseName(filePath string) []string {
	root := trimExt(filePath)
	matches, err := filepath.Glob(escapeGlob(root) + ".*")
	if err != nil {
		return nil
	}
	return matches
}

func isPartialDownload(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) || strings.Contains(name, ext+"-Frag") {
			return true
		}
	}
	return false
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// escapeGlob quotes the pattern characters yt-dlp titles commonly contain
func escapeGlob(path string) string {
	var b strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isSimilarFileName checks if two file names are similar enough to be considered the same file
func isSimilarFileName(name1, name2 string) bool {
	clean1 := strings.TrimSpace(name1)
	clean2 := strings.TrimSpace(name2)

	if clean1 == "" || clean2 == "" {
		return false
	}
	if clean1 == clean2 {
		return true
	}

	// Check if one is contained within the other (for truncated names)
	if strings.Contains(clean1, clean2) || strings.Contains(clean2, clean1) {
		diff := len(clean1) - len(clean2)
		if diff < 0 {
			diff = -diff
		}
		return diff <= MaxNameDifference
	}

	return false
}
