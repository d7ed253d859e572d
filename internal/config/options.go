package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Mode selects what the program downloads
type Mode string

const (
	ModeHelp      Mode = "help"
	ModeURL       Mode = "url"
	ModeBookmarks Mode = "bookmarks"
	ModeFiles     Mode = "files"
)

// StdinArgument is the positional argument that selects standard input
const StdinArgument = "-"

// ErrInvalidArguments is returned for unknown flags, missing flag values and
// conflicting modes
var ErrInvalidArguments = errors.New("invalid arguments")

// Arguments is the parsed command line
type Arguments struct {
	Mode Mode

	// URL is set in ModeURL
	URL string
	// BookmarksFile is set in ModeBookmarks
	BookmarksFile string
	// Files lists input files in ModeFiles; empty means standard input
	Files []string

	// OutputDirectory is empty unless given on the command line
	OutputDirectory string

	Verbose   bool
	AudioOnly bool
	WAV       bool
	MP3       bool
	Netrc     bool
}

// ParseArgs parses argv, whose first element is the program name. Flag values
// are trimmed, so "-o DIR" passed as a single argument is accepted.
func ParseArgs(argv []string) (Arguments, error) {
	if len(argv) == 0 {
		return Arguments{}, fmt.Errorf("%w: empty argument list", ErrInvalidArguments)
	}

	fs := pflag.NewFlagSet(argv[0], pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	help := fs.BoolP("help", "h", false, "Display help information")
	outputDirectory := fs.StringP("output-directory", "o", "", "Directory downloads are saved to")
	url := fs.StringP("url", "u", "", "URL of the YouTube video to download")
	bookmarks := fs.StringP("bookmarks", "b", "", "Bookmarks file to extract YouTube urls from")
	verbose := fs.BoolP("verbose", "v", false, "Output yt-dlp messages")
	audioOnly := fs.Bool("audio-only", false, "Download only audio data")
	wav := fs.Bool("wav", false, "Audio only, converted to wav")
	mp3 := fs.Bool("mp3", false, "Audio only, converted to mp3")
	netrc := fs.Bool("netrc", false, "Use .netrc file for authentication")

	if err := fs.Parse(argv[1:]); err != nil {
		return Arguments{}, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}

	if *help {
		return Arguments{Mode: ModeHelp}, nil
	}

	args := Arguments{
		OutputDirectory: strings.TrimSpace(*outputDirectory),
		Verbose:         *verbose,
		AudioOnly:       *audioOnly,
		WAV:             *wav,
		MP3:             *mp3,
		Netrc:           *netrc,
	}

	hasURL := fs.Changed("url")
	hasBookmarks := fs.Changed("bookmarks")

	switch {
	case hasURL && hasBookmarks:
		return Arguments{}, fmt.Errorf("%w: --url and --bookmarks are exclusive", ErrInvalidArguments)
	case hasURL:
		args.Mode = ModeURL
		args.URL = strings.TrimSpace(*url)
	case hasBookmarks:
		args.Mode = ModeBookmarks
		args.BookmarksFile = strings.TrimSpace(*bookmarks)
	default:
		args.Mode = ModeFiles
		args.Files = fileArguments(fs.Args())
	}

	return args, nil
}

func fileArguments(positional []string) []string {
	if len(positional) == 1 && positional[0] == StdinArgument {
		return []string{}
	}
	files := make([]string, 0, len(positional))
	return append(files, positional...)
}

// InvalidArgumentsMessage explains how to get help after a parse failure
func InvalidArgumentsMessage(argv []string) string {
	prog, args := "yget", ""
	if len(argv) > 0 {
		prog = argv[0]
		args = strings.Join(argv[1:], " ")
	}
	return fmt.Sprintf("%s: invalid arguments '%s'\nTry '%s --help' for more information.", prog, args, prog)
}

// HelpMessage returns the usage text for prog
func HelpMessage(prog string) string {
	var b strings.Builder

	b.WriteString("yget: Downloads YouTube videos.\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Usage: %s [options...] [file]...\n", prog)
	fmt.Fprintf(&b, "   or: %s [options...] -\n", prog)
	fmt.Fprintf(&b, "   or: %s [-u <url> | -b <bookmarks_file>] [options...]\n", prog)
	b.WriteString("\n")
	b.WriteString("Files:\n")
	b.WriteString("  Files should be space separated and contain a line break separated list of YouTube video urls or video ids.\n")
	b.WriteString("  Playlists are valid urls and all videos in the playlist will be downloaded.\n")
	b.WriteString("\n")
	b.WriteString("  If no files are provided or [file]... is -, read from standard input. Use Ctrl-D to signal end of input.\n")
	b.WriteString("\n")
	b.WriteString("Valid Urls:\n")
	b.WriteString("- https://www.youtube.com/watch?v=rdwz7QiG0lk\n")
	b.WriteString("- rdwz7QiG0lk\n")
	b.WriteString("- https://www.youtube.com/watch?list=PLbpi6ZahtOH5WgR8NbZJtSY6XkO0WQZVe\n")
	b.WriteString("- https://www.youtube.com/watch?v=kavB05H3g90&list=PLbpi6ZahtOH5WgR8NbZJtSY6XkO0WQZVe\n")
	b.WriteString("- PLbpi6ZahtOH5WgR8NbZJtSY6XkO0WQZVe\n")
	b.WriteString("\n")
	b.WriteString("Modes:\n")
	b.WriteString("One and only one mode is required\n")
	b.WriteString("\n")
	b.WriteString(" -u, --url=\"URL\"\n")
	b.WriteString("     URL of the YouTube video to download\n")
	b.WriteString(" -b, --bookmarks=BOOKMARKS_FILE\n")
	b.WriteString("     Bookmarks formatted file to extract YouTube urls from\n")
	b.WriteString(" -h, --help\n")
	b.WriteString("     Display help information\n")
	b.WriteString("\n")
	b.WriteString("Options:\n")
	b.WriteString(" -o, --output-directory=OUTPUT_DIRECTORY\n")
	b.WriteString("                    Directory downloads are saved to\n")
	b.WriteString(" -v, --verbose      Output yt-dlp messages\n")
	b.WriteString("     --audio-only   Download only audio data for the provided url(s)\n")
	b.WriteString("     --wav          audio-only but with output forced to wav format\n")
	b.WriteString("     --mp3          audio-only but with output forced to mp3 format\n")
	b.WriteString("     --netrc        Use .netrc file for authentication\n")
	b.WriteString("     Entry must follow the format: machine youtube login <username> password <password>\n")

	return b.String()
}
