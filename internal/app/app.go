// Package app wires argument parsing, input collection and downloading into
// the yget command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yget/internal/config"
	"github.com/ytget/yget/internal/download"
	"github.com/ytget/yget/internal/logger"
	"github.com/ytget/yget/internal/platform"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// PathValidator checks that paths exist
type PathValidator interface {
	ValidateDirectory(path string) bool
	ValidateFile(path string) bool
}

// FileReader reads input files
type FileReader interface {
	Read(path string) (string, error)
	ReadLines(path string) ([]string, error)
}

// BookmarksParser lets the user pick a bookmarks folder and returns its
// links. valid is false for documents that cannot be parsed.
type BookmarksParser interface {
	Parse(ctx context.Context, document string) (valid bool, urls []string)
}

// LineReader reads URLs typed on standard input
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Output receives messages for the user
type Output interface {
	WriteLine(line string)
}

// DownloaderFactory creates the downloader for one run
type DownloaderFactory func(opts download.Options) download.Downloader

// App is the yget command
type App struct {
	Settings      config.Settings
	Paths         PathValidator
	Files         FileReader
	Bookmarks     BookmarksParser
	Input         LineReader
	Output        Output
	NewDownloader DownloaderFactory
	Log           *logrus.Logger
}

// Run executes the command described by argv and returns the exit code
func (a *App) Run(ctx context.Context, argv []string) int {
	args, err := config.ParseArgs(argv)
	if err != nil {
		a.Log.WithError(err).Debug("Invalid command line")
		a.Output.WriteLine(config.InvalidArgumentsMessage(argv))
		return ExitFailure
	}

	if args.Verbose {
		logger.EnableVerbose(a.Log)
	}

	if args.Mode == config.ModeHelp {
		a.Output.WriteLine(config.HelpMessage(argv[0]))
		return ExitSuccess
	}

	outputDirectory := args.OutputDirectory
	if outputDirectory == "" {
		outputDirectory = a.Settings.OutputDirectory
	}
	if !a.Paths.ValidateDirectory(outputDirectory) {
		a.Output.WriteLine(fmt.Sprintf("Output directory '%s' does not exist", outputDirectory))
		return ExitFailure
	}

	var urls []string
	switch args.Mode {
	case config.ModeFiles:
		if urls, err = a.collectFileURLs(args.Files); err != nil {
			a.Output.WriteLine(err.Error())
			return ExitFailure
		}
	case config.ModeURL:
		urls = []string{args.URL}
	case config.ModeBookmarks:
		if urls, err = a.collectBookmarkURLs(ctx, args.BookmarksFile); err != nil {
			a.Output.WriteLine(err.Error())
			return ExitFailure
		}
	}

	a.Log.WithFields(logrus.Fields{
		"mode": args.Mode,
		"urls": len(urls),
	}).Debug("Starting downloads")

	downloader := a.NewDownloader(a.downloadOptions(args, outputDirectory))
	downloader.DownloadVideos(ctx, urls)

	return ExitSuccess
}

// collectFileURLs reads URLs from the given files, or from standard input
// when there are none
func (a *App) collectFileURLs(files []string) ([]string, error) {
	for _, f := range files {
		if !a.Paths.ValidateFile(f) {
			return nil, fmt.Errorf("Input file '%s' does not exist", f)
		}
	}

	if len(files) == 0 {
		return a.readStdinURLs(), nil
	}

	var urls []string
	for _, f := range files {
		lines, err := a.Files.ReadLines(f)
		if err != nil {
			a.Log.WithError(err).Warn("Failed to read input file")
			return nil, fmt.Errorf("Input file '%s' could not be read", f)
		}
		urls = append(urls, platform.StripStrings(lines)...)
	}
	return urls, nil
}

// readStdinURLs reads one URL per line until end of input
func (a *App) readStdinURLs() []string {
	var lines []string
	for {
		line, err := a.Input.ReadLine("")
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.Log.WithError(err).Warn("Stopped reading standard input")
			}
			break
		}
		lines = append(lines, line)
	}
	return platform.StripStrings(lines)
}

// collectBookmarkURLs lets the user pick a folder from the bookmarks file
func (a *App) collectBookmarkURLs(ctx context.Context, bookmarksFile string) ([]string, error) {
	if !a.Paths.ValidateFile(bookmarksFile) {
		return nil, fmt.Errorf("Bookmarks file '%s' does not exist", bookmarksFile)
	}

	document, err := a.Files.Read(bookmarksFile)
	if err != nil {
		a.Log.WithError(err).Warn("Failed to read bookmarks file")
		return nil, fmt.Errorf("Bookmarks file '%s' not valid", bookmarksFile)
	}

	valid, urls := a.Bookmarks.Parse(ctx, document)
	if !valid {
		return nil, fmt.Errorf("Bookmarks file '%s' not valid", bookmarksFile)
	}
	return urls, nil
}

func (a *App) downloadOptions(args config.Arguments, outputDirectory string) download.Options {
	return download.Options{
		AudioOnly:        args.AudioOnly,
		WAV:              args.WAV,
		MP3:              args.MP3,
		Verbose:          args.Verbose,
		UseNetrc:         args.Netrc,
		OutputDirectory:  outputDirectory,
		Format:           a.Settings.Format,
		FilenameTemplate: a.Settings.FilenameTemplate,
		DefaultAlbum:     a.Settings.DefaultAlbum,
	}
}
