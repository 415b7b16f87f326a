package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// secretPromptText is shown before the hidden secret key read.
const secretPromptText = "Enter your secret_key: "

// SecretPrompter writes prompt to w and returns the secret the user typed.
type SecretPrompter func(w io.Writer, prompt string) (string, error)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalSecretPrompt reads the secret from in without echo when in is a
// terminal. Otherwise it reads a single line, which lets CI pipe the secret
// through stdin instead of exposing it in a flag or environment variable.
func TerminalSecretPrompt(in *os.File) SecretPrompter {
	return func(w io.Writer, prompt string) (string, error) {
		fmt.Fprint(w, prompt)

		if !isTerminal(in) {
			return ReadSecretLine(in)
		}

		secret, err := term.ReadPassword(int(in.Fd()))
		// ReadPassword swallows the user's newline.
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("reading secret key: %w", err)
		}
		return string(secret), nil
	}
}

// ReadSecretLine reads one line from r, dropping the line terminator.
// EOF without input yields an empty secret.
func ReadSecretLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading secret key: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
