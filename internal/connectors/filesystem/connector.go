// Package filesystem reads documents from local files and directory trees
// and watches them for changes with fsnotify.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
	"github.com/gyf304/sqlite3-fts5-html/internal/logger"
	"github.com/gyf304/sqlite3-fts5-html/internal/normalisers"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// errBufferSize lets a few per-file failures queue while the consumer is
// busy with documents. Once full, the walk waits like it does for documents.
const errBufferSize = 16

// Connector reads documents from a file or a directory tree.
// Hidden files and directories (names starting with '.') are skipped.
type Connector struct {
	rootPath  string
	mimeTypes map[string]bool
	read      func(path string) (*domain.RawDocument, error)

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// New creates a connector rooted at rootPath. When mimeTypes is not empty,
// files found in directories are read only if their detected MIME type is
// listed. A rootPath naming a single file is always read.
func New(rootPath string, mimeTypes ...string) *Connector {
	c := &Connector{rootPath: rootPath, read: readFile}
	if len(mimeTypes) > 0 {
		c.mimeTypes = make(map[string]bool, len(mimeTypes))
		for _, mt := range mimeTypes {
			c.mimeTypes[mt] = true
		}
	}
	return c
}

// Root returns the path the connector reads from.
func (c *Connector) Root() string {
	return c.rootPath
}

// Validate checks the root path exists and is readable.
func (c *Connector) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.stat()
	return err
}

func (c *Connector) stat() (fs.FileInfo, error) {
	info, err := os.Stat(c.rootPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("root path does not exist: %s", c.rootPath)
	}
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	return info, nil
}

// FullSync reads every accepted file under the root.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, errBufferSize)

	go func() {
		defer close(docs)
		defer close(errs)

		if err := ctx.Err(); err != nil {
			return
		}
		info, err := c.stat()
		if err != nil {
			errs <- err
			return
		}

		send := func(path string) error {
			doc, err := c.read(path)
			if err != nil {
				select {
				case errs <- err:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			select {
			case docs <- *doc:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if !info.IsDir() {
			_ = send(c.rootPath)
			return
		}

		err = filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if walkErr != nil {
				logger.Debug("walk %s: %v", path, walkErr)
				return nil
			}
			if c.hidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() || !c.accepts(path) {
				return nil
			}
			return send(path)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			select {
			case errs <- fmt.Errorf("walk %s: %w", c.rootPath, err):
			case <-ctx.Done():
			}
		}
	}()

	return docs, errs
}

// Watch reports created, modified and deleted files under the root until
// ctx is cancelled or the connector is closed.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, errors.New("connector is closed")
	}
	info, err := os.Stat(c.rootPath)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if info.IsDir() {
		err = c.addTree(watcher, c.rootPath)
	} else {
		err = watcher.Add(filepath.Dir(c.rootPath))
	}
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", c.rootPath, err)
	}
	c.watcher = watcher

	changes := make(chan domain.RawDocumentChange)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) && info.IsDir() && !c.hidden(event.Name) {
					if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
						if err := c.addTree(watcher, event.Name); err != nil {
							logger.Warn("watch %s: %v", event.Name, err)
						}
						continue
					}
				}
				change := c.handleFsEvent(event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// addTree watches dir and every non-hidden directory below it.
func (c *Connector) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if c.hidden(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// handleFsEvent converts a filesystem event into a document change.
// It returns nil for events that do not affect an accepted file.
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.RawDocumentChange {
	if c.hidden(event.Name) || !c.covers(event.Name) {
		return nil
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if !c.accepts(event.Name) {
			return nil
		}
		return &domain.RawDocumentChange{
			Type:     domain.ChangeDeleted,
			Document: domain.RawDocument{URI: event.Name},
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return nil
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() || !c.accepts(event.Name) {
		return nil
	}
	doc, err := readFile(event.Name)
	if err != nil {
		logger.Debug("read %s: %v", event.Name, err)
		return nil
	}

	changeType := domain.ChangeUpdated
	if event.Has(fsnotify.Create) {
		changeType = domain.ChangeCreated
	}
	return &domain.RawDocumentChange{Type: changeType, Document: *doc}
}

// covers reports whether path is the root file or lies under the root
// directory.
func (c *Connector) covers(path string) bool {
	rel, err := filepath.Rel(c.rootPath, path)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}

// hidden reports whether path has a hidden element below the root.
func (c *Connector) hidden(path string) bool {
	rel, err := filepath.Rel(c.rootPath, path)
	if err != nil {
		return isHidden(path)
	}
	return isHidden(rel)
}

// accepts reports whether the file at path should be read.
func (c *Connector) accepts(path string) bool {
	if path == c.rootPath || c.mimeTypes == nil {
		return true
	}
	return c.mimeTypes[detectMIMEType(path)]
}

// Close stops any running watch. Close is idempotent.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.watcher != nil {
		err := c.watcher.Close()
		c.watcher = nil
		return err
	}
	return nil
}

// readFile reads path into a raw document.
func readFile(path string) (*domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	filename := filepath.Base(path)
	metadata := map[string]any{
		"filename":  filename,
		"extension": strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		"size":      len(content),
	}
	if info, err := os.Stat(path); err == nil {
		metadata["modified"] = info.ModTime().UTC()
	}

	return &domain.RawDocument{
		URI:      path,
		MIMEType: normalisers.DetectMIME(path, content),
		Content:  content,
		Metadata: metadata,
	}, nil
}

// detectMIMEType guesses a MIME type from the file name alone. Files
// without an extension are taken as text.
func detectMIMEType(filename string) string {
	if mt, ok := normalisers.MIMEFromExtension(filename); ok {
		return mt
	}
	if filepath.Ext(filename) == "" {
		return "text/plain"
	}
	return "application/octet-stream"
}

// isHidden reports whether any element of path starts with a dot.
// The elements "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && part[0] == '.' && part != ".." {
			return true
		}
	}
	return false
}
