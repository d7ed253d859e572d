// Package console implements line based interaction with the user: menu
// output, option and credential prompts, and progress lines.
package console
