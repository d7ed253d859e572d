package bookmarks

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ytget/yget/internal/model"
)

// Element names of the bookmark markup (lower-cased by the tokenizer)
const (
	entryMarkerTag = "dt"
	anchorTag      = "a"
	listTag        = "dl"
	hrefAttr       = "href"
)

// scanState is what the folder scanner expects from the next element
type scanState int

const (
	// awaitNone: the previous element did not introduce an entry
	awaitNone scanState = iota
	// awaitEntry: a <dt> marker was seen; the next element is a link or a folder heading
	awaitEntry
)

// folderScanner reads the children of one folder body in document order.
// A <dt> followed by <a> is a link; a <dt> followed by a heading names the
// folder whose body is the next <dl>.
type folderScanner struct {
	folder  *model.Folder
	state   scanState
	pending string
	named   bool
}

func newFolderScanner(folder *model.Folder) *folderScanner {
	return &folderScanner{folder: folder}
}

// step consumes one child element. When the element is the body of a named
// subfolder it returns that subfolder so the caller can schedule its body.
func (s *folderScanner) step(el *goquery.Selection) (*model.Folder, bool) {
	tag := goquery.NodeName(el)

	switch {
	case tag == entryMarkerTag:
		s.state = awaitEntry

	case s.state == awaitEntry:
		s.state = awaitNone
		s.named = false
		if tag == anchorTag {
			if href, ok := el.Attr(hrefAttr); ok {
				s.folder.AddLink(href)
			}
		} else if isHeading(tag) {
			s.pending = strings.TrimSpace(el.Text())
			s.named = true
		}

	case tag == listTag && s.named:
		s.named = false
		return s.folder.AddSubfolder(s.pending), true
	}

	return nil, false
}

// isHeading reports whether tag is h1..h6
func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// folderBody is one unit of the breadth-first walk: a list element and the
// folder its entries belong to.
type folderBody struct {
	list   *goquery.Selection
	folder *model.Folder
}

// BuildTree converts the outermost list element of a bookmarks document into
// a folder tree rooted at a folder named model.RootFolderName. Links and
// subfolders keep document order at every depth.
func BuildTree(list *html.Node) *model.Folder {
	root := model.NewFolder(model.RootFolderName)

	queue := []folderBody{{
		list:   goquery.NewDocumentFromNode(list).Selection,
		folder: root,
	}}

	for len(queue) > 0 {
		body := queue[0]
		queue = queue[1:]

		scanner := newFolderScanner(body.folder)
		body.list.Children().Each(func(_ int, child *goquery.Selection) {
			if sub, ok := scanner.step(child); ok {
				queue = append(queue, folderBody{list: child, folder: sub})
			}
		})
	}

	return root
}

// countFolders returns the number of folders in the tree, root included
func countFolders(root *model.Folder) int {
	count := 0
	queue := []*model.Folder{root}
	for len(queue) > 0 {
		folder := queue[0]
		queue = queue[1:]
		count++
		queue = append(queue, folder.Subfolders...)
	}
	return count
}
