package model

import (
	"fmt"
	"strings"
	"time"
)

// DownloadTask represents a single video download
type DownloadTask struct {
	ID         string
	URL        string // URL as given by the user or harvested from bookmarks
	VideoURL   string // URL of the single video being downloaded
	Album      string // album metadata written after download
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to downloaded file
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
	Title      string    // video title
}

// NewDownloadTask creates a pending task for a single video
func NewDownloadTask(id, url, videoURL, album string) *DownloadTask {
	return &DownloadTask{
		ID:        id,
		URL:       url,
		VideoURL:  videoURL,
		Album:     album,
		Status:    TaskStatusPending,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
}

// Finish moves the task into a finished status
func (dt *DownloadTask) Finish(status TaskStatus, err error) {
	dt.Status = status
	if err != nil {
		dt.LastError = err.Error()
	}
	if status == TaskStatusCompleted {
		dt.Progress = 1.0
		dt.Percent = 100
	}
	dt.FinishedAt = time.Now()
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	if dt.OutputPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	if dt.VideoURL != "" {
		return dt.VideoURL
	}
	return dt.URL
}
