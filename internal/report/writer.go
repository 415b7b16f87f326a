package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rshade/policyexport/internal/api"
)

// Write renders policies with f. With a non-empty path the file is replaced
// atomically: output goes to a temp file in the same directory which is then
// renamed over path. With an empty path the output goes to stdout.
func Write(stdout io.Writer, path string, f Formatter, policies []api.Policy) error {
	if path == "" {
		return f.Render(stdout, policies)
	}
	return writeFileAtomic(path, func(w io.Writer) error {
		return f.Render(w, policies)
	})
}

// writeFileAtomic writes via render into a temp file and renames it to path.
// On any failure the temp file is removed and path is left untouched.
func writeFileAtomic(path string, render func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tempName := tempFile.Name()

	if renderErr := render(tempFile); renderErr != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempName)
		return fmt.Errorf("writing %s: %w", path, renderErr)
	}

	if syncErr := tempFile.Sync(); syncErr != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempName)
		return fmt.Errorf("syncing temp file: %w", syncErr)
	}

	if closeErr := tempFile.Close(); closeErr != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if chmodErr := os.Chmod(tempName, 0o644); chmodErr != nil { //nolint:gosec // reports are meant to be shared
		_ = os.Remove(tempName)
		return fmt.Errorf("setting permissions on %s: %w", path, chmodErr)
	}

	if renameErr := os.Rename(tempName, path); renameErr != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("replacing %s: %w", path, renameErr)
	}
	return nil
}

// WriteText writes pre-rendered text to path (atomically) or to stdout.
func WriteText(stdout io.Writer, path, text string) error {
	write := func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	}
	if path == "" {
		return write(stdout)
	}
	return writeFileAtomic(path, write)
}
