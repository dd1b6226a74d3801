// Package media manages the on-disk media tree, organized by page slug
// under a single configured root.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrOutsideRoot is returned for any path whose resolved absolute form
// escapes the media root.
var ErrOutsideRoot = errors.New("path escapes media root")

var errEmptyFilename = errors.New("empty filename")

// Store owns the media root. All paths handed to it are resolved against
// the root and rejected when they escape it.
type Store struct {
	root   string
	logger *zap.Logger
}

func NewStore(root string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve media root: %w", err)
	}
	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &Store{root: absRoot, logger: logger}, nil
}

// Root returns the absolute media root.
func (store *Store) Root() string {
	return store.root
}

// resolve joins a relative path onto the root and enforces containment.
func (store *Store) resolve(relativePath string) (string, error) {
	joined := filepath.Join(store.root, filepath.FromSlash(relativePath))
	absolute, err := filepath.Abs(joined)
	if err != nil {
		return "", ErrOutsideRoot
	}
	if absolute != store.root && !strings.HasPrefix(absolute, store.root+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return absolute, nil
}

// FilePath resolves a public media path to a servable regular file.
func (store *Store) FilePath(relativePath string) (string, error) {
	absolute, err := store.resolve(relativePath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(absolute)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", os.ErrNotExist
	}
	return absolute, nil
}

// DeleteFile removes one previously uploaded file. Traversal attempts are
// rejected; filesystem errors are logged and swallowed.
func (store *Store) DeleteFile(relativePath string) error {
	absolute, err := store.resolve(relativePath)
	if err != nil {
		return err
	}
	info, err := os.Stat(absolute)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	if err := os.Remove(absolute); err != nil {
		store.logger.Warn("delete media file failed",
			zap.String("path", absolute),
			zap.Error(err),
		)
	}
	return nil
}

// DeleteSlugDir removes a page's entire media subdirectory. Filesystem
// errors are logged and swallowed. A slug resolving to the root itself
// (".", "", "./") is rejected so no page can take the whole tree with it.
func (store *Store) DeleteSlugDir(slug string) error {
	absolute, err := store.resolve(slug)
	if err != nil {
		return err
	}
	if absolute == store.root {
		return ErrOutsideRoot
	}
	info, err := os.Stat(absolute)
	if err != nil || !info.IsDir() {
		return nil
	}
	if err := os.RemoveAll(absolute); err != nil {
		store.logger.Warn("delete media directory failed",
			zap.String("path", absolute),
			zap.Error(err),
		)
	}
	return nil
}

// Save writes an upload into the slug's subdirectory and returns the
// public URL it will be served from.
func (store *Store) Save(slug string, filename string, content io.Reader) (string, error) {
	safeSlug := SanitizeSlug(slug)
	safeFilename := SanitizeFilename(filename)
	if safeFilename == "" {
		return "", errEmptyFilename
	}

	directory, err := store.resolve(safeSlug)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	target := filepath.Join(directory, safeFilename)
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/media/" + safeSlug + "/" + safeFilename, nil
}

// SanitizeSlug keeps only characters safe for a directory name. An empty
// result falls back to "general".
func SanitizeSlug(slug string) string {
	trimmed := strings.TrimSpace(slug)
	var builder strings.Builder
	for _, char := range trimmed {
		if char >= 'a' && char <= 'z' || char >= 'A' && char <= 'Z' ||
			char >= '0' && char <= '9' || char == '-' || char == '_' {
			builder.WriteRune(char)
		}
	}
	safe := builder.String()
	if safe == "" {
		return "general"
	}
	return safe
}

// SanitizeFilename replaces spaces and strips any directory components.
func SanitizeFilename(filename string) string {
	safe := strings.ReplaceAll(filename, " ", "_")
	safe = strings.ReplaceAll(safe, "\\", "/")
	safe = filepath.Base(filepath.FromSlash(safe))
	if safe == "." || safe == string(filepath.Separator) || safe == "/" {
		return ""
	}
	return safe
}
