package download

import (
	"context"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
)

// Print template that makes yt-dlp report the target file without downloading
const filenameTemplate = "filename"

// YTDLPRunner runs the yt-dlp executable through go-ytdlp
type YTDLPRunner struct {
	log logrus.FieldLogger
}

// NewYTDLPRunner creates a runner logging yt-dlp output at debug level
func NewYTDLPRunner(log logrus.FieldLogger) *YTDLPRunner {
	return &YTDLPRunner{log: log}
}

// command configures yt-dlp for req
func (r *YTDLPRunner) command(req Request) *ytdlp.Command {
	dl := ytdlp.New().
		Format(req.Format).
		Output(req.OutputTemplate).
		NoOverwrites().
		EmbedMetadata()

	if req.AudioFormat != "" {
		dl = dl.ExtractAudio().AudioFormat(req.AudioFormat)
	}
	if req.UseNetrc {
		dl = dl.Netrc()
	}
	if !req.Credentials.IsZero() {
		dl = dl.Username(req.Credentials.Username).Password(req.Credentials.Password)
	}
	return dl
}

// Filename asks yt-dlp for the output path of videoURL
func (r *YTDLPRunner) Filename(ctx context.Context, videoURL string, req Request) (string, error) {
	res, err := r.command(req).Print(filenameTemplate).Run(ctx, videoURL)
	r.relay(res)
	if err != nil {
		return "", runError(res, err)
	}

	filename := lastLine(res.Stdout)
	if filename == "" {
		return "", fmt.Errorf("yt-dlp reported no file name for %s", videoURL)
	}
	return filename, nil
}

// Download saves videoURL, reporting progress while bytes arrive
func (r *YTDLPRunner) Download(ctx context.Context, videoURL string, req Request, progress func(Progress)) (string, error) {
	dl := r.command(req)
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		p := Progress{
			Filename:        update.Filename,
			DownloadedBytes: update.DownloadedBytes,
			TotalBytes:      update.TotalBytes,
			ETA:             update.ETA(),
			Finished:        update.Status == ytdlp.ProgressStatusFinished,
		}
		if update.Info != nil && update.Info.Title != nil {
			p.Title = *update.Info.Title
		}
		progress(p)
	})

	res, err := dl.Run(ctx, videoURL)
	r.relay(res)
	if err != nil {
		return "", runError(res, err)
	}

	info, err := res.GetExtractedInfo()
	if err == nil && len(info) > 0 && info[0].Filename != nil {
		return *info[0].Filename, nil
	}
	return "", nil
}

// relay forwards yt-dlp output to the debug log
func (r *YTDLPRunner) relay(res *ytdlp.Result) {
	if res == nil {
		return
	}
	for _, line := range strings.Split(res.Stderr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			r.log.Debug(line)
		}
	}
}

// runError attaches the last yt-dlp error message, classifying sign in
// requests as ErrAuthenticationRequired
func runError(res *ytdlp.Result, err error) error {
	if res != nil {
		if msg := lastErrorLine(res.Stderr); msg != "" && !strings.Contains(err.Error(), msg) {
			err = fmt.Errorf("%w: %s", err, msg)
		}
	}
	return classify(err)
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func lastErrorLine(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); strings.HasPrefix(line, "ERROR:") {
			return line
		}
	}
	return ""
}
