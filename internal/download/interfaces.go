package download

import (
	"context"

	"github.com/ytget/yget/internal/model"
)

// Downloader downloads a batch of video or playlist URLs.
type Downloader interface {
	DownloadVideos(ctx context.Context, urls []string) Summary
}

// Runner executes yt-dlp for a single video.
type Runner interface {
	// Filename returns the path the video would be saved to
	Filename(ctx context.Context, videoURL string, req Request) (string, error)
	// Download saves the video and returns the path yt-dlp reported, which
	// may be empty
	Download(ctx context.Context, videoURL string, req Request, progress func(Progress)) (string, error)
}

// PlaylistResolver expands playlist URLs into their videos.
type PlaylistResolver interface {
	IsPlaylist(url string) bool
	ParsePlaylist(ctx context.Context, url string) (*model.Playlist, error)
}

// Authenticator asks the user for credentials. ok is false when the user
// declined by entering an empty username.
type Authenticator interface {
	RequestCredentials() (creds Credentials, ok bool, err error)
}

// Tagger writes album metadata into a downloaded file.
type Tagger interface {
	SetAlbum(ctx context.Context, path, album string) error
}

// Printer receives user facing output.
type Printer interface {
	WriteLine(line string)
	WriteEmptyLine()
	Printf(format string, args ...any)
}
