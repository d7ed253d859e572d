package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yget/internal/model"
)

// Prompt is shown before every option read
const Prompt = "Select an option: "

// InvalidOptionMessage is shown when a token matches no option
const InvalidOptionMessage = "Option not valid"

// Input supplies one line of operator input per call. It returns io.EOF when
// no more input is available, which is distinct from an empty line.
type Input interface {
	ReadLine(prompt string) (string, error)
}

// Output receives menu lines in order
type Output interface {
	WriteLine(line string)
	WriteEmptyLine()
}

// Outcome is how browsing ended. Harvest is false when the operator exited
// from the root menu.
type Outcome struct {
	Folder  *model.Folder
	Harvest bool
}

// Navigator walks a folder tree one menu at a time. The breadcrumb stack
// holds the path from the root to the current folder; the tree itself is
// never modified.
type Navigator struct {
	input       Input
	output      Output
	log         logrus.FieldLogger
	breadcrumbs []*model.Folder
	offset      int
}

// NewNavigator creates a navigator positioned on the first page of root
func NewNavigator(root *model.Folder, input Input, output Output, log logrus.FieldLogger) *Navigator {
	return &Navigator{
		input:       input,
		output:      output,
		log:         log,
		breadcrumbs: []*model.Folder{root},
	}
}

// Current returns the folder whose menu is shown
func (n *Navigator) Current() *model.Folder {
	return n.breadcrumbs[len(n.breadcrumbs)-1]
}

// Depth returns the number of breadcrumbs, 1 at the root
func (n *Navigator) Depth() int {
	return len(n.breadcrumbs)
}

// Offset returns the index of the first subfolder on the current page
func (n *Navigator) Offset() int {
	return n.offset
}

// Menu renders the current state without showing it
func (n *Navigator) Menu() Menu {
	var parent *model.Folder
	if len(n.breadcrumbs) > 1 {
		parent = n.breadcrumbs[len(n.breadcrumbs)-2]
	}
	return buildMenu(n.Current(), parent, n.offset)
}

// Run shows menus and applies the operator's choices until browsing ends.
// An empty line or the end of input selects the current folder; "0" at the
// root exits without harvesting. Errors other than io.EOF from the input
// are returned.
func (n *Navigator) Run(ctx context.Context) (Outcome, error) {
	for {
		menu := n.Menu()
		for _, line := range menu.Lines {
			n.output.WriteLine(line)
		}
		n.output.WriteEmptyLine()

		option, selected, err := n.readOption(ctx, menu)
		if err != nil {
			return Outcome{}, err
		}
		if !selected {
			n.log.WithField("folder", n.Current().Name).Debug("Folder selected")
			return Outcome{Folder: n.Current(), Harvest: true}, nil
		}

		if outcome, done := n.apply(option); done {
			n.log.Debug("Exited from root menu")
			return outcome, nil
		}

		n.output.WriteEmptyLine()
	}
}

// readOption prompts until a known token is entered. selected is false when
// the operator ended browsing with an empty line or end of input.
func (n *Navigator) readOption(ctx context.Context, menu Menu) (MenuOption, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return MenuOption{}, false, err
		}

		line, err := n.input.ReadLine(Prompt)
		if errors.Is(err, io.EOF) {
			return MenuOption{}, false, nil
		}
		if err != nil {
			return MenuOption{}, false, fmt.Errorf("read option: %w", err)
		}
		if line == "" {
			return MenuOption{}, false, nil
		}

		if option, ok := menu.Lookup(line); ok {
			return option, true, nil
		}

		n.log.WithField("token", line).Debug("Unrecognized option")
		n.output.WriteLine(InvalidOptionMessage)
		n.output.WriteEmptyLine()
	}
}

// apply performs an option. done is true when browsing is over.
func (n *Navigator) apply(option MenuOption) (Outcome, bool) {
	switch option.Action {
	case ActionEnter:
		n.breadcrumbs = append(n.breadcrumbs, option.Folder)
		n.offset = 0
	case ActionNextPage:
		n.offset += PageSize
	case ActionFirstPage:
		n.offset = 0
	case ActionBack:
		n.breadcrumbs = n.breadcrumbs[:len(n.breadcrumbs)-1]
		n.offset = 0
	case ActionExit:
		return Outcome{Folder: n.breadcrumbs[0], Harvest: false}, true
	}
	return Outcome{}, false
}
