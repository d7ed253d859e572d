package tagger

import "context"

// Tagger defines the interface for the metadata service.
type Tagger interface {
	SetAlbum(ctx context.Context, path, album string) error
}
