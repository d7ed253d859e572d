package platform

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yget/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistURLParam = "list"
)

// playlistIDPattern matches bare playlist ids such as PLbpi6ZahtOH5WgR8NbZJtSY6XkO0WQZVe
var playlistIDPattern = regexp.MustCompile(`^(PL|UU|LL|FL|RD|OL|UL|EL)[0-9A-Za-z_-]{10,}$`)

// PlaylistParserService expands playlist URLs into their videos
type PlaylistParserService struct {
	timeout time.Duration
	lister  *YTDLPParserService
	log     logrus.FieldLogger
}

// NewPlaylistParserService creates a new playlist parser service
func NewPlaylistParserService(log logrus.FieldLogger) *PlaylistParserService {
	return &PlaylistParserService{
		timeout: DefaultPlaylistParseTimeout,
		lister:  NewYTDLPParserService(),
		log:     log,
	}
}

// SetTimeout sets the timeout for playlist parsing. Non-positive values keep
// the current timeout.
func (p *PlaylistParserService) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		p.timeout = timeout
	}
}

// IsPlaylist reports whether url names a playlist, either through a list
// parameter or as a bare playlist id
func (p *PlaylistParserService) IsPlaylist(url string) bool {
	_, err := ExtractPlaylistID(url)
	return err == nil
}

// ParsePlaylist lists the videos of the playlist url refers to
func (p *PlaylistParserService) ParsePlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	entries, err := p.lister.Entries(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("playlist %s: %w", playlistID, err)
	}

	playlist := model.NewPlaylist(url)
	playlist.ID = playlistID
	for _, entry := range entries {
		playlist.AddEntry(entry)
	}
	playlist.Title = extractPlaylistTitle(playlistID, entries)

	p.log.WithFields(logrus.Fields{
		"playlist": playlistID,
		"title":    playlist.Title,
		"videos":   playlist.Len(),
	}).Debug("Playlist expanded")

	return playlist, nil
}

// ExtractPlaylistID extracts the playlist ID from a playlist URL or bare id.
// Supported forms:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
//   - PLAYLIST_ID
func ExtractPlaylistID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if playlistIDPattern.MatchString(rawURL) {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid playlist URL %q: %w", rawURL, err)
	}

	values := u.Query()
	if !values.Has(PlaylistURLParam) {
		return "", fmt.Errorf("URL does not contain playlist parameter")
	}
	playlistID := values.Get(PlaylistURLParam)
	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID")
	}
	return playlistID, nil
}
