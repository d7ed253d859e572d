package bookmarks

import (
	"net/url"
	"strings"

	"github.com/ytget/yget/internal/model"
)

// Default target platform
const (
	DefaultPlatformDomain = "youtube"
)

// DefaultPageTypes are the page paths that hold videos or playlists
var DefaultPageTypes = []string{"watch", "playlist"}

// DefaultMatcher recognises YouTube watch and playlist links
var DefaultMatcher = NewMatcher(DefaultPlatformDomain, DefaultPageTypes...)

// Matcher decides whether a link points to a video or playlist page of the
// target platform. It is immutable once built.
type Matcher struct {
	domain    string
	pageTypes []string
}

// NewMatcher creates a matcher for links whose host contains domain and whose
// path starts with one of pageTypes
func NewMatcher(domain string, pageTypes ...string) Matcher {
	types := make([]string, 0, len(pageTypes))
	for _, pageType := range pageTypes {
		if pageType = strings.Trim(pageType, "/ "); pageType != "" {
			types = append(types, pageType)
		}
	}
	return Matcher{domain: domain, pageTypes: types}
}

// Domain returns the host token the matcher looks for
func (m Matcher) Domain() string {
	return m.domain
}

// Match reports whether rawURL is a platform media link. The domain token is
// matched case-sensitively.
func (m Matcher) Match(rawURL string) bool {
	if m.domain == "" {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	// scheme-less links such as youtube.com/watch?v=ID
	if u.Host == "" && u.Scheme == "" {
		if u, err = url.Parse("//" + rawURL); err != nil {
			return false
		}
	}

	if !strings.Contains(u.Host, m.domain) {
		return false
	}

	path := strings.TrimPrefix(u.Path, "/")
	for _, pageType := range m.pageTypes {
		if strings.HasPrefix(path, pageType) {
			return true
		}
	}
	return false
}

// Harvest collects the matching links of folder and all of its descendants.
// A folder's own links come first in stored order, then its subfolders are
// visited left to right, level by level. The result is never nil.
func Harvest(folder *model.Folder, matcher Matcher) []string {
	urls := make([]string, 0)
	if folder == nil {
		return urls
	}

	queue := []*model.Folder{folder}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, link := range current.Links {
			if matcher.Match(link) {
				urls = append(urls, link)
			}
		}
		queue = append(queue, current.Subfolders...)
	}

	return urls
}
