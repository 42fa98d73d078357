// Package artifacts persists the processed bytes of completed clips.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no artifact exists for a locator
var ErrNotFound = errors.New("artifact not found")

// Store defines the interface for artifact storage operations
type Store interface {
	// Write stores data for a clip and returns its locator. Writing again
	// for the same clip replaces the bytes and returns the same locator.
	Write(ctx context.Context, clipID string, data []byte) (string, error)

	// Read returns the bytes stored at locator
	Read(ctx context.Context, locator string) ([]byte, error)

	// Delete removes the bytes stored at locator. A missing artifact is not an error.
	Delete(ctx context.Context, locator string) error
}

// LocalStore implements Store using the local filesystem
type LocalStore struct {
	basePath string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates the base directory and returns a store rooted there
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	return &LocalStore{basePath: absPath}, nil
}

// Locator returns the locator used for a clip id
func Locator(clipID string) string {
	return fmt.Sprintf("clip_%s.txt", SanitizeName(clipID))
}

// Write writes the artifact via a temp file and rename so readers never
// observe a partial file
func (s *LocalStore) Write(ctx context.Context, clipID string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if clipID == "" {
		return "", errors.New("clip id is required")
	}

	locator := Locator(clipID)
	finalPath := filepath.Join(s.basePath, locator)

	tmp, err := os.CreateTemp(s.basePath, locator+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	return locator, nil
}

// Read returns the artifact bytes for a locator produced by Write
func (s *LocalStore) Read(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Locators are flat file names; anything else cannot have come from Write.
	if locator == "" || locator != filepath.Base(locator) || strings.HasPrefix(locator, ".") {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.basePath, locator))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete removes the artifact for a locator produced by Write
func (s *LocalStore) Delete(ctx context.Context, locator string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if locator == "" || locator != filepath.Base(locator) || strings.HasPrefix(locator, ".") {
		return nil
	}

	if err := os.Remove(filepath.Join(s.basePath, locator)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Path returns the full filesystem path for a locator
func (s *LocalStore) Path(locator string) string {
	return filepath.Join(s.basePath, locator)
}

// SanitizeName makes a string safe for use as a file name
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")

	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
		".", "_",
	)
	name = replacer.Replace(name)
	name = strings.ToLower(name)
	name = strings.Trim(name, " -_")

	if name == "" {
		name = "unknown"
	}
	return name
}
