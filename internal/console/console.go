package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Console reads answers from one stream and writes prompts and messages to
// another. It is safe for use by one prompting goroutine and any number of
// writers.
type Console struct {
	mu       sync.Mutex
	in       *bufio.Reader
	out      io.Writer
	terminal *Terminal
}

// New creates a console over the given streams. Passwords are read with echo
// enabled since in is not known to be a terminal.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// NewStd creates a console over stdin and stdout. When stdin is a terminal,
// password prompts disable echo.
func NewStd() *Console {
	c := New(os.Stdin, os.Stdout)
	if terminal, err := NewTerminal(os.Stdin); err == nil {
		c.terminal = terminal
	}
	return c
}

// ReadLine writes prompt and returns the next line without its line ending.
// io.EOF is returned once the input is exhausted; a final line without a
// line ending is still returned.
func (c *Console) ReadLine(prompt string) (string, error) {
	c.write(prompt)
	return c.readLine()
}

// ReadPassword is ReadLine with terminal echo disabled
func (c *Console) ReadPassword(prompt string) (string, error) {
	if c.terminal == nil {
		return c.ReadLine(prompt)
	}

	c.write(prompt)
	if err := c.terminal.DisableEcho(); err != nil {
		return "", fmt.Errorf("disable echo: %w", err)
	}
	line, err := c.readLine()
	if restoreErr := c.terminal.Restore(); restoreErr != nil && err == nil {
		err = fmt.Errorf("restore terminal: %w", restoreErr)
	}
	// the user's return key was not echoed
	c.write("\n")
	return line, err
}

// WriteLine writes line followed by a newline
func (c *Console) WriteLine(line string) {
	c.write(line + "\n")
}

// WriteEmptyLine writes a blank line
func (c *Console) WriteEmptyLine() {
	c.write("\n")
}

// Printf writes a formatted message as is. Progress lines use it to
// overwrite themselves with a carriage return.
func (c *Console) Printf(format string, args ...any) {
	c.write(fmt.Sprintf(format, args...))
}

func (c *Console) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, s)
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
