package download

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompts shown when credentials are needed
const (
	UsernamePrompt = "Username: "
	PasswordPrompt = "Password: "
)

// ErrAuthenticationRequired marks failures that signing in may fix
var ErrAuthenticationRequired = errors.New("authentication required")

// authenticationMarkers are the yt-dlp messages asking for an account
var authenticationMarkers = []string{
	"Please sign in",
	"Please enter your password",
	"Sign in to confirm",
}

// classify wraps err with ErrAuthenticationRequired when it asks for sign in
func classify(err error) error {
	if err == nil || errors.Is(err, ErrAuthenticationRequired) {
		return err
	}
	if isAuthenticationMessage(err.Error()) {
		return fmt.Errorf("%w: %w", ErrAuthenticationRequired, err)
	}
	return err
}

func isAuthenticationMessage(msg string) bool {
	for _, marker := range authenticationMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// isAuthenticationError reports whether err asks for sign in
func isAuthenticationError(err error) bool {
	return errors.Is(classify(err), ErrAuthenticationRequired)
}

// Prompter reads answers from the user
type Prompter interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// AuthenticationProvider asks for a username and password
type AuthenticationProvider struct {
	prompter Prompter
}

// NewAuthenticationProvider creates a provider prompting through p
func NewAuthenticationProvider(p Prompter) *AuthenticationProvider {
	return &AuthenticationProvider{prompter: p}
}

// RequestCredentials prompts for both values; an empty username declines.
// End of input counts as an empty answer.
func (a *AuthenticationProvider) RequestCredentials() (Credentials, bool, error) {
	username, err := a.prompter.ReadLine(UsernamePrompt)
	if err != nil && !errors.Is(err, io.EOF) {
		return Credentials{}, false, fmt.Errorf("read username: %w", err)
	}
	password, err := a.prompter.ReadPassword(PasswordPrompt)
	if err != nil && !errors.Is(err, io.EOF) {
		return Credentials{}, false, fmt.Errorf("read password: %w", err)
	}

	creds := Credentials{Username: strings.TrimSpace(username), Password: password}
	if creds.IsZero() {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}
