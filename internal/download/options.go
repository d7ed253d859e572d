package download

import (
	"path/filepath"
	"time"
)

// Default download settings
const (
	DefaultFormat           = "mp4/bestvideo"
	DefaultFilenameTemplate = "%(title)s (%(id)s).%(ext)s"
	DefaultAlbum            = "YouTube"
	DefaultOutputDirectory  = "."
)

// Audio formats passed to the audio extractor
const (
	AudioFormatBest = "best"
	AudioFormatWAV  = "wav"
	AudioFormatMP3  = "mp3"
)

// ProgressInterval is how often yt-dlp progress is reported
const ProgressInterval = 250 * time.Millisecond

// Options configures a download run
type Options struct {
	AudioOnly bool
	WAV       bool
	MP3       bool
	Verbose   bool
	UseNetrc  bool

	OutputDirectory  string
	Format           string
	FilenameTemplate string
	DefaultAlbum     string
}

// withDefaults fills empty settings
func (o Options) withDefaults() Options {
	if o.OutputDirectory == "" {
		o.OutputDirectory = DefaultOutputDirectory
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.FilenameTemplate == "" {
		o.FilenameTemplate = DefaultFilenameTemplate
	}
	if o.DefaultAlbum == "" {
		o.DefaultAlbum = DefaultAlbum
	}
	return o
}

// AudioFormat returns the extraction format, or "" to keep the video.
// wav takes precedence over mp3, which takes precedence over audio only.
func (o Options) AudioFormat() string {
	switch {
	case o.WAV:
		return AudioFormatWAV
	case o.MP3:
		return AudioFormatMP3
	case o.AudioOnly:
		return AudioFormatBest
	default:
		return ""
	}
}

// Credentials for videos that require sign in
type Credentials struct {
	Username string
	Password string
}

// IsZero reports whether no credentials were entered
func (c Credentials) IsZero() bool {
	return c.Username == ""
}

// Request is everything a Runner needs for one video
type Request struct {
	OutputTemplate string
	Format         string
	AudioFormat    string
	UseNetrc       bool
	Credentials    Credentials
	Verbose        bool
}

// newRequest builds the runner request for the current credentials
func newRequest(o Options, creds Credentials) Request {
	return Request{
		OutputTemplate: filepath.Join(o.OutputDirectory, o.FilenameTemplate),
		Format:         o.Format,
		AudioFormat:    o.AudioFormat(),
		UseNetrc:       o.UseNetrc,
		Credentials:    creds,
		Verbose:        o.Verbose,
	}
}

// Progress is a download progress report
type Progress struct {
	Filename        string
	Title           string
	DownloadedBytes int
	TotalBytes      int
	ETA             time.Duration
	Finished        bool
}

// Percent returns completion in percent, or -1 when the size is unknown
func (p Progress) Percent() float64 {
	if p.Finished {
		return 100
	}
	if p.TotalBytes <= 0 {
		return -1
	}
	return float64(p.DownloadedBytes) * 100 / float64(p.TotalBytes)
}

// Summary counts the outcome of a download run
type Summary struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// String renders the summary line shown after a run
func (s Summary) String() string {
	return summaryLine(s)
}
