package bookmarks

import (
	"fmt"
	"strconv"

	"github.com/ytget/yget/internal/model"
)

// PageSize is the number of subfolders listed on one menu page
const PageSize = 8

// Menu tokens that are not subfolder indices
const (
	PagingToken = "9"
	BackToken   = "0"
)

// Action is what a menu option does when selected
type Action int

const (
	// ActionEnter descends into the option's folder
	ActionEnter Action = iota
	// ActionNextPage shows the next page of subfolders
	ActionNextPage
	// ActionFirstPage wraps from the last page to the first
	ActionFirstPage
	// ActionBack returns to the parent folder
	ActionBack
	// ActionExit leaves the root menu without harvesting
	ActionExit
)

// String returns a readable action name
func (a Action) String() string {
	switch a {
	case ActionEnter:
		return "enter"
	case ActionNextPage:
		return "next_page"
	case ActionFirstPage:
		return "first_page"
	case ActionBack:
		return "back"
	case ActionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// MenuOption binds an action to a token. Folder is set for ActionEnter only.
type MenuOption struct {
	Action Action
	Folder *model.Folder
}

// Menu is one render of the navigator: the lines shown to the operator and
// the options they can select.
type Menu struct {
	Lines   []string
	Options map[string]MenuOption
}

// Lookup returns the option bound to token
func (m Menu) Lookup(token string) (MenuOption, bool) {
	option, ok := m.Options[token]
	return option, ok
}

// buildMenu renders the menu of folder at the given page offset. parent is
// nil at the root.
func buildMenu(folder, parent *model.Folder, offset int) Menu {
	total := len(folder.Subfolders)
	end := min(offset+PageSize, total)
	window := folder.Subfolders[min(offset, end):end]

	menu := Menu{
		Lines:   make([]string, 0, len(window)+3),
		Options: make(map[string]MenuOption, len(window)+2),
	}
	menu.Lines = append(menu.Lines, fmt.Sprintf("Enter: Download links in %s", folder.Name))

	for i, sub := range window {
		token := strconv.Itoa(i + 1)
		menu.Options[token] = MenuOption{Action: ActionEnter, Folder: sub}
		menu.Lines = append(menu.Lines, fmt.Sprintf("    %s: Move to %s", token, sub.Name))
	}

	if total > PageSize {
		if end < total {
			menu.Options[PagingToken] = MenuOption{Action: ActionNextPage}
			menu.Lines = append(menu.Lines, fmt.Sprintf("    %s: Next page", PagingToken))
		} else {
			menu.Options[PagingToken] = MenuOption{Action: ActionFirstPage}
			menu.Lines = append(menu.Lines, fmt.Sprintf("    %s: Back to first page", PagingToken))
		}
	}

	if parent != nil {
		menu.Options[BackToken] = MenuOption{Action: ActionBack}
		menu.Lines = append(menu.Lines, fmt.Sprintf("    %s: Back to %s", BackToken, parent.Name))
	} else {
		menu.Options[BackToken] = MenuOption{Action: ActionExit}
		menu.Lines = append(menu.Lines, fmt.Sprintf("    %s: Exit", BackToken))
	}

	return menu
}
