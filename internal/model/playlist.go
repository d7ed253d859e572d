package model

import (
	"time"
)

// PlaylistEntry represents a single video in a playlist
type PlaylistEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Playlist represents a YouTube playlist expanded into its videos
type Playlist struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Entries   []*PlaylistEntry `json:"entries"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewPlaylist creates a new playlist instance
func NewPlaylist(url string) *Playlist {
	return &Playlist{
		URL:       url,
		Entries:   make([]*PlaylistEntry, 0),
		CreatedAt: time.Now(),
	}
}

// AddEntry adds a video to the playlist
func (p *Playlist) AddEntry(entry *PlaylistEntry) {
	p.Entries = append(p.Entries, entry)
}

// Len returns the number of videos in the playlist
func (p *Playlist) Len() int {
	return len(p.Entries)
}

// IsEmpty reports whether the playlist has no videos
func (p *Playlist) IsEmpty() bool {
	return len(p.Entries) == 0
}
