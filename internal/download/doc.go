package download

// Package download implements the download pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). It expands playlists, skips videos
// already on disk, asks for credentials when a video requires sign in,
// reports progress, and tags finished files with their album.
