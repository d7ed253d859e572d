package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yget/internal/model"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	MinPrefixLength = 10
	PlaylistPrefix  = "Playlist "
)

// playlistItem is one video returned by the playlist API
type playlistItem struct {
	VideoID string
	Title   string
}

// fetchFunc lists every video of a playlist
type fetchFunc func(ctx context.Context, playlistID string) ([]playlistItem, error)

// YTDLPParserService lists playlist videos using the ytdlp library
type YTDLPParserService struct {
	fetch fetchFunc
}

// NewYTDLPParserService creates a new parser service
func NewYTDLPParserService() *YTDLPParserService {
	return &YTDLPParserService{fetch: fetchWithLibrary}
}

// fetchWithLibrary pages through the playlist without a limit
func fetchWithLibrary(ctx context.Context, playlistID string) ([]playlistItem, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	result := make([]playlistItem, 0, len(items))
	for _, it := range items {
		result = append(result, playlistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return result, nil
}

// Entries returns the videos of playlistID in playlist order. Items without
// a video id (deleted or private videos) are dropped.
func (y *YTDLPParserService) Entries(ctx context.Context, playlistID string) ([]*model.PlaylistEntry, error) {
	items, err := y.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	entries := make([]*model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, &model.PlaylistEntry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}

// extractPlaylistTitle names the playlist after the common prefix of its
// first video titles, falling back to the playlist id
func extractPlaylistTitle(playlistID string, entries []*model.PlaylistEntry) string {
	if len(entries) > 1 {
		commonPrefix := strings.TrimSpace(findCommonPrefix(entries[0].Title, entries[1].Title))
		commonPrefix = strings.TrimRight(commonPrefix, "-–|:#([ ")
		if len(commonPrefix) > MinPrefixLength {
			return commonPrefix
		}
	}
	return PlaylistPrefix + playlistID
}

// findCommonPrefix finds the common prefix between two strings
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
