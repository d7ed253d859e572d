package model

// RootFolderName is the display name of the folder wrapping the outermost
// list of a bookmarks document.
const RootFolderName = "Root"

// Folder is a node of a bookmark folder tree. A folder owns its subfolders;
// nodes carry no reference back to their parent.
type Folder struct {
	Name       string
	Links      []string
	Subfolders []*Folder
}

// NewFolder creates an empty folder
func NewFolder(name string) *Folder {
	return &Folder{
		Name:       name,
		Links:      make([]string, 0),
		Subfolders: make([]*Folder, 0),
	}
}

// AddLink appends a link to the folder's own links
func (f *Folder) AddLink(link string) {
	f.Links = append(f.Links, link)
}

// AddSubfolder creates a child folder, appends it and returns it
func (f *Folder) AddSubfolder(name string) *Folder {
	child := NewFolder(name)
	f.Subfolders = append(f.Subfolders, child)
	return child
}

// HasSubfolders reports whether the folder has any child folders
func (f *Folder) HasSubfolders() bool {
	return len(f.Subfolders) > 0
}
