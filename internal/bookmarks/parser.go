package bookmarks

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yget/internal/model"
)

// ErrMalformedDocument is returned when a bookmarks document cannot be turned
// into a folder tree
var ErrMalformedDocument = errors.New("malformed bookmarks document")

// ErrNoListMarker is returned when a document has no <dl> list at all
var ErrNoListMarker = fmt.Errorf("%w: no <dl> list marker", ErrMalformedDocument)

// Parser extracts platform links from a bookmarks document by letting the
// operator pick a folder interactively
type Parser struct {
	input   Input
	output  Output
	matcher Matcher
	log     logrus.FieldLogger
}

// NewParser creates a parser reading choices from input and writing menus to output
func NewParser(input Input, output Output, matcher Matcher, log logrus.FieldLogger) *Parser {
	return &Parser{
		input:   input,
		output:  output,
		matcher: matcher,
		log:     log,
	}
}

// Load normalizes and parses document into a folder tree
func (p *Parser) Load(document string) (*model.Folder, error) {
	normalized, err := Normalize(document)
	if err != nil {
		return nil, err
	}

	list, err := parseMarkup(normalized)
	if err != nil {
		return nil, err
	}

	root := BuildTree(list)
	p.log.WithFields(logrus.Fields{
		"folders": countFolders(root),
		"links":   len(root.Links),
	}).Debug("Bookmarks loaded")

	return root, nil
}

// ParseDocument loads document, runs the folder browser and returns the
// matching links of the chosen folder. Exiting from the root menu yields an
// empty list. Malformed documents return an error wrapping
// ErrMalformedDocument.
func (p *Parser) ParseDocument(ctx context.Context, document string) ([]string, error) {
	root, err := p.Load(document)
	if err != nil {
		return nil, err
	}

	outcome, err := NewNavigator(root, p.input, p.output, p.log).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("browse bookmarks: %w", err)
	}
	if !outcome.Harvest {
		return []string{}, nil
	}

	urls := Harvest(outcome.Folder, p.matcher)
	p.log.WithFields(logrus.Fields{
		"folder": outcome.Folder.Name,
		"urls":   len(urls),
	}).Debug("Links harvested")

	return urls, nil
}

// Parse is ParseDocument reduced to a success flag. It is false, with nil
// urls, only when the document is malformed.
func (p *Parser) Parse(ctx context.Context, document string) (bool, []string) {
	urls, err := p.ParseDocument(ctx, document)
	if errors.Is(err, ErrMalformedDocument) {
		p.log.WithError(err).Debug("Bookmarks document rejected")
		return false, nil
	}
	if err != nil {
		p.log.WithError(err).Warn("Bookmarks browsing interrupted")
		return true, []string{}
	}
	return true, urls
}
