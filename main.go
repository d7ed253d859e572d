package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytget/yget/internal/app"
	"github.com/ytget/yget/internal/bookmarks"
	"github.com/ytget/yget/internal/config"
	"github.com/ytget/yget/internal/console"
	"github.com/ytget/yget/internal/download"
	"github.com/ytget/yget/internal/logger"
	"github.com/ytget/yget/internal/platform"
	"github.com/ytget/yget/internal/tagger"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	settings, err := config.LoadSettings(config.SearchPaths()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yget: %v\n", err)
		os.Exit(app.ExitFailure)
	}

	log := logger.New(settings.LogLevel, false)
	log.WithField("version", version).Debug("yget starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := console.NewStd()
	fs := platform.FileSystem{}

	playlists := platform.NewPlaylistParserService(logger.Component(log, "playlist"))
	playlists.SetTimeout(settings.PlaylistTimeout)

	matcher := bookmarks.NewMatcher(settings.PlatformDomain, settings.PageTypes...)

	cli := &app.App{
		Settings:  settings,
		Paths:     fs,
		Files:     fs,
		Bookmarks: bookmarks.NewParser(term, term, matcher, logger.Component(log, "bookmarks")),
		Input:     term,
		Output:    term,
		NewDownloader: func(opts download.Options) download.Downloader {
			return download.NewService(opts, download.Dependencies{
				Runner:    download.NewYTDLPRunner(logger.Component(log, "yt-dlp")),
				Playlists: playlists,
				Auth:      download.NewAuthenticationProvider(term),
				Tagger:    tagger.NewService(logger.Component(log, "tagger")),
				Out:       term,
				Log:       logger.Component(log, "download"),
			})
		},
		Log: log,
	}

	code := cli.Run(ctx, os.Args)
	stop()
	os.Exit(code)
}
