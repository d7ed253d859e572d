package bookmarks

// Package bookmarks turns a browser-exported Netscape bookmarks document into
// a folder tree, lets the operator browse that tree from the terminal one menu
// at a time, and harvests the platform video links of the chosen folder.
//
// The pipeline is Normalize -> parseMarkup -> BuildTree -> Navigator -> Harvest;
// Parser wires the stages together.
