package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/ytget/yget/internal/model"
)

// fakeRunner writes files into dir instead of running yt-dlp
type fakeRunner struct {
	dir string
	// errs maps a video URL to the errors returned by its next attempts
	errs map[string][]error
	// requests records every request passed to Download
	requests []Request
	// downloads records the downloaded video URLs
	downloads []string
	// progress is reported during every download
	progress []Progress
	// ext replaces the file extension on disk, as audio extraction does
	ext string
}

func newFakeRunner(dir string) *fakeRunner {
	return &fakeRunner{dir: dir, errs: map[string][]error{}}
}

func (f *fakeRunner) filename(videoURL string) string {
	id := videoURL[strings.LastIndex(videoURL, "=")+1:]
	return filepath.Join(f.dir, fmt.Sprintf("Video (%s).mp4", id))
}

func (f *fakeRunner) nextError(videoURL string) error {
	errs := f.errs[videoURL]
	if len(errs) == 0 {
		return nil
	}
	f.errs[videoURL] = errs[1:]
	return errs[0]
}

func (f *fakeRunner) Filename(_ context.Context, videoURL string, _ Request) (string, error) {
	if err := f.nextError(videoURL); err != nil {
		return "", err
	}
	return f.filename(videoURL), nil
}

func (f *fakeRunner) Download(_ context.Context, videoURL string, req Request, progress func(Progress)) (string, error) {
	f.requests = append(f.requests, req)
	f.downloads = append(f.downloads, videoURL)

	path := f.filename(videoURL)
	for _, p := range f.progress {
		p.Filename = path
		progress(p)
	}
	if f.ext != "" {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + f.ext
	}
	if err := os.WriteFile(path, []byte("media"), 0644); err != nil {
		return "", err
	}
	return "", nil
}

// fakePlaylists resolves URLs containing "list=" from a fixed table
type fakePlaylists struct {
	playlists map[string]*model.Playlist
	err       error
}

func (f *fakePlaylists) IsPlaylist(url string) bool {
	return strings.Contains(url, "list=")
}

func (f *fakePlaylists) ParsePlaylist(_ context.Context, url string) (*model.Playlist, error) {
	if f.err != nil {
		return nil, f.err
	}
	playlist, ok := f.playlists[url]
	if !ok {
		return nil, errors.New("playlist not found")
	}
	return playlist, nil
}

func newPlaylist(url, title string, ids ...string) *model.Playlist {
	p := model.NewPlaylist(url)
	p.ID = "PL1"
	p.Title = title
	for _, id := range ids {
		p.AddEntry(&model.PlaylistEntry{ID: id, Title: "Title " + id, URL: "https://www.youtube.com/watch?v=" + id})
	}
	return p
}

// fakeAuth returns scripted credentials and counts prompts
type fakeAuth struct {
	creds []Credentials
	calls int
}

func (f *fakeAuth) RequestCredentials() (Credentials, bool, error) {
	f.calls++
	if len(f.creds) == 0 {
		return Credentials{}, false, nil
	}
	creds := f.creds[0]
	f.creds = f.creds[1:]
	return creds, !creds.IsZero(), nil
}

// fakeTagger records album assignments
type fakeTagger struct {
	albums map[string]string
	err    error
}

func (f *fakeTagger) SetAlbum(_ context.Context, path, album string) error {
	if f.albums == nil {
		f.albums = map[string]string{}
	}
	f.albums[filepath.Base(path)] = album
	return f.err
}

// recordingPrinter keeps the exact output
type recordingPrinter struct {
	mu  sync.Mutex
	out strings.Builder
}

func (r *recordingPrinter) WriteLine(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out.WriteString(line + "\n")
}

func (r *recordingPrinter) WriteEmptyLine() {
	r.WriteLine("")
}

func (r *recordingPrinter) Printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(&r.out, format, args...)
}

func (r *recordingPrinter) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out.String()
}

type testEnv struct {
	runner    *fakeRunner
	playlists *fakePlaylists
	auth      *fakeAuth
	tagger    *fakeTagger
	out       *recordingPrinter
}

func newTestEnv(dir string) *testEnv {
	return &testEnv{
		runner:    newFakeRunner(dir),
		playlists: &fakePlaylists{playlists: map[string]*model.Playlist{}},
		auth:      &fakeAuth{},
		tagger:    &fakeTagger{},
		out:       &recordingPrinter{},
	}
}

func (e *testEnv) service(opts Options) *Service {
	log, _ := logtest.NewNullLogger()
	return NewService(opts, Dependencies{
		Runner:    e.runner,
		Playlists: e.playlists,
		Auth:      e.auth,
		Tagger:    e.tagger,
		Out:       e.out,
		Log:       log,
	})
}
