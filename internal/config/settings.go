package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings keys
const (
	KeyOutputDirectory  = "output_directory"
	KeyFormat           = "format"
	KeyFilenameTemplate = "filename_template"
	KeyPlatformDomain   = "platform_domain"
	KeyPageTypes        = "page_types"
	KeyLogLevel         = "log_level"
	KeyDefaultAlbum     = "default_album"
	KeyPlaylistTimeout  = "playlist_timeout"
)

// Default values
const (
	DefaultOutputDirectory  = "."
	DefaultFormat           = "mp4/bestvideo"
	DefaultFilenameTemplate = "%(title)s (%(id)s).%(ext)s"
	DefaultPlatformDomain   = "youtube"
	DefaultPageTypes        = "watch,playlist"
	DefaultLogLevel         = "info"
	DefaultDefaultAlbum     = "YouTube"
	DefaultPlaylistTimeout  = 60 * time.Second
)

// Settings file lookup
const (
	SettingsName = "yget"
	SettingsType = "yaml"
	EnvPrefix    = "YGET"
)

// Settings holds the values that are not command line flags
type Settings struct {
	OutputDirectory  string        `mapstructure:"output_directory"`
	Format           string        `mapstructure:"format"`
	FilenameTemplate string        `mapstructure:"filename_template"`
	PlatformDomain   string        `mapstructure:"platform_domain"`
	PageTypes        []string      `mapstructure:"page_types"`
	LogLevel         string        `mapstructure:"log_level"`
	DefaultAlbum     string        `mapstructure:"default_album"`
	PlaylistTimeout  time.Duration `mapstructure:"playlist_timeout"`
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	return Settings{
		OutputDirectory:  DefaultOutputDirectory,
		Format:           DefaultFormat,
		FilenameTemplate: DefaultFilenameTemplate,
		PlatformDomain:   DefaultPlatformDomain,
		PageTypes:        strings.Split(DefaultPageTypes, ","),
		LogLevel:         DefaultLogLevel,
		DefaultAlbum:     DefaultDefaultAlbum,
		PlaylistTimeout:  DefaultPlaylistTimeout,
	}
}

// LoadSettings reads an optional .env file, an optional yget.yaml from the
// search paths and YGET_ environment overrides. Missing files are not an
// error.
func LoadSettings(searchPaths ...string) (Settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Settings{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName(SettingsName)
	v.SetConfigType(SettingsType)
	for _, path := range searchPaths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyOutputDirectory, DefaultOutputDirectory)
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyFilenameTemplate, DefaultFilenameTemplate)
	v.SetDefault(KeyPlatformDomain, DefaultPlatformDomain)
	v.SetDefault(KeyPageTypes, DefaultPageTypes)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyDefaultAlbum, DefaultDefaultAlbum)
	v.SetDefault(KeyPlaylistTimeout, DefaultPlaylistTimeout.String())

	if len(searchPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("read settings: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	settings.PageTypes = cleanList(settings.PageTypes)
	if settings.PlaylistTimeout <= 0 {
		settings.PlaylistTimeout = DefaultPlaylistTimeout
	}

	return settings, nil
}

// SearchPaths returns the directories yget.yaml is looked up in
func SearchPaths() []string {
	var paths []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, SettingsName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", SettingsName))
	}
	return append(paths, ".")
}

// cleanList trims entries and splits any that still hold commas
func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cleaned = append(cleaned, part)
			}
		}
	}
	return cleaned
}
